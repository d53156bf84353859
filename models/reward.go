package models

// RewardType tags what a reward pays out when its owning entity completes.
type RewardType string

const (
	RewardTypeCoins      RewardType = "COINS"
	RewardTypeExperience RewardType = "EXPERIENCE"
	RewardTypeSkill      RewardType = "SKILL"
	RewardTypeItem       RewardType = "ITEM"
)

// Reward is a payout descriptor attached to exactly one quest or subquest.
// It is immutable for resolution purposes: applying it mutates the user,
// never the reward itself.
type Reward struct {
	ID         string     `gorm:"primaryKey;type:uuid" json:"id"`
	Type       RewardType `gorm:"not null" json:"type"`
	Amount     int        `gorm:"not null" json:"amount"`
	Skill      string     `json:"skill,omitempty"`
	QuestID    *string    `gorm:"type:uuid;index" json:"questId,omitempty"`
	SubQuestID *string    `gorm:"type:uuid;index" json:"subQuestId,omitempty"`
	ItemID     *string    `gorm:"type:uuid" json:"itemId,omitempty"`

	Timestamps
}
