package models

// Task is the simplest completable: no claim step, completion pays a fixed
// experience bonus immediately.
type Task struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	IsCompleted bool   `gorm:"default:false" json:"isCompleted"`
	UserID      string `gorm:"type:uuid;not null;index" json:"userId"`

	Timestamps
}
