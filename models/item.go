package models

// Item type and attribute values the store engine dispatches on. Type is
// free text normalized to upper case on write.
const (
	ItemTypeMagical = "MAGICAL ITEM"

	AttributeHealth     = "health"
	AttributeCoins      = "coins"
	AttributeExperience = "experience"
)

// Item is both a store catalog entry (UserID nil) and an owned inventory
// copy (UserID set). Claimed is the single-use guard: once an owned item is
// used it stays consumed.
type Item struct {
	ID            string  `gorm:"primaryKey;type:uuid" json:"id"`
	Name          string  `gorm:"not null" json:"name"`
	Description   string  `gorm:"not null" json:"description"`
	Price         int     `gorm:"not null" json:"price"`
	Image         string  `json:"image"`
	Type          string  `gorm:"not null" json:"type"`
	Amount        int     `gorm:"not null" json:"amount"`
	Claimed       bool    `gorm:"default:false" json:"claimed"`
	AttributeName string  `json:"attribute_name,omitempty"`
	UserID        *string `gorm:"type:uuid;index" json:"userId,omitempty"`

	Timestamps
}
