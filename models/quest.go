package models

import "time"

// Quest completion applies its attached rewards immediately; subquests carry
// their own rewards and a separate claim step.
type Quest struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	Image       string    `json:"image"`
	Name        string    `gorm:"not null" json:"name"`
	EndDate     time.Time `gorm:"not null" json:"endDate"`
	Description string    `gorm:"not null" json:"description"`
	Priority    int       `gorm:"default:1" json:"priority"`
	IsCompleted bool      `gorm:"default:false" json:"isCompleted"`
	UserID      string    `gorm:"type:uuid;not null;index" json:"userId"`

	Rewards   []Reward   `gorm:"foreignKey:QuestID" json:"rewards,omitempty"`
	SubQuests []SubQuest `gorm:"foreignKey:QuestID" json:"subQuests,omitempty"`

	Timestamps
}

// SubQuest decouples work done (Completed) from reward collection (Claim).
// Both flags are monotonic, false to true only.
type SubQuest struct {
	ID        string `gorm:"primaryKey;type:uuid" json:"id"`
	Name      string `gorm:"not null" json:"name"`
	Completed bool   `gorm:"default:false" json:"completed"`
	Claim     bool   `gorm:"default:false" json:"claim"`
	QuestID   string `gorm:"type:uuid;not null;index" json:"questId"`

	Rewards []Reward `gorm:"foreignKey:SubQuestID" json:"rewards,omitempty"`

	Timestamps
}
