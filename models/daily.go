package models

import "time"

// DailyChallenge groups a day's challenges for one user. ClaimedDate doubles
// as the claim marker: nil means rewards not yet collected, and claiming
// requires every child challenge to be completed first.
type DailyChallenge struct {
	ID          string     `gorm:"primaryKey;type:uuid" json:"id"`
	Date        time.Time  `gorm:"not null;index" json:"date"`
	ClaimedDate *time.Time `json:"claimedDate,omitempty"`
	UserID      string     `gorm:"type:uuid;not null;index" json:"userId"`

	Challenges []Challenge        `gorm:"foreignKey:DailyID" json:"challenges,omitempty"`
	Rewards    []DailyReward      `gorm:"foreignKey:DailyID" json:"rewards,omitempty"`
	History    []ChallengeHistory `gorm:"foreignKey:DailyID" json:"history,omitempty"`

	Timestamps
}

// Challenge completion pays a fixed skill bonus when a skill is set.
type Challenge struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"not null" json:"description"`
	Completed   bool   `gorm:"default:false" json:"completed"`
	Skill       string `json:"skill,omitempty"`
	DailyID     string `gorm:"type:uuid;not null;index" json:"dailyId"`

	Timestamps
}

// DailyReward is the lighter payout descriptor for daily challenges:
// type and amount only, no skill or item reference.
type DailyReward struct {
	ID      string     `gorm:"primaryKey;type:uuid" json:"id"`
	Type    RewardType `gorm:"not null" json:"type"`
	Amount  int        `gorm:"not null" json:"amount"`
	DailyID string     `gorm:"type:uuid;not null;index" json:"dailyId"`

	Timestamps
}

// ChallengeHistory is a per-day snapshot of whether a daily challenge's
// rewards were collected, written by the nightly scheduler.
type ChallengeHistory struct {
	ID             string    `gorm:"primaryKey;type:uuid" json:"id"`
	Date           time.Time `gorm:"not null;index" json:"date"`
	RewardsClaimed bool      `gorm:"default:false" json:"rewardsClaimed"`
	DailyID        string    `gorm:"type:uuid;not null;index" json:"dailyId"`

	Timestamps
}
