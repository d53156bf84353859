package models

// Stat is the per-(user, skill) aggregate. Value only ever grows through
// reward application; Level is derived as value/100 + 1. The composite
// unique index is what lets the aggregator upsert atomically.
type Stat struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	Skill  string `gorm:"not null;uniqueIndex:idx_stats_user_skill" json:"skill"`
	Level  int    `gorm:"default:1" json:"level"`
	Value  int    `gorm:"default:0" json:"value"`
	UserID string `gorm:"not null;uniqueIndex:idx_stats_user_skill" json:"userId"`

	Timestamps
}

// StatLevel derives the level for a given accumulated value.
func StatLevel(value int) int {
	return value/100 + 1
}
