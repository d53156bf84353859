package models

// User holds identity plus the numeric progression state every reward
// eventually lands on (coins, exp, health). Level is tracked but never
// recomputed by the reward engine; only per-skill stat levels are derived.
type User struct {
	ID           string `gorm:"primaryKey;type:uuid" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Password     string `gorm:"not null" json:"-"`
	RefreshToken string `json:"-"`
	ProfilePic   string `json:"profilePic"`

	Level  int `gorm:"default:1" json:"level"`
	Exp    int `gorm:"default:50" json:"exp"`
	Health int `gorm:"default:100" json:"health"`
	Coins  int `gorm:"default:1000" json:"coins"`

	// Free-text character sheet
	Job             string `json:"job"`
	About           string `json:"about"`
	Strength        string `json:"strength"`
	Weakness        string `json:"weakness"`
	MasterObjective string `json:"masterObjective"`
	MinorObjective  string `json:"minorObjective"`

	Timestamps
}
