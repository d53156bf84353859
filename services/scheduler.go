// services/scheduler.go
package services

import (
	"log"
	"time"

	"github.com/DevSujal/level-quest-backend/models"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

// StartHistoryScheduler snapshots every daily challenge into its history once
// the day is over. Runs shortly after midnight so yesterday's claim state is
// final, and skips dailies that already have a snapshot for that date, so a
// restart mid-day never double-writes.
func (s *DailyChallengeService) StartHistoryScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 5, 0))),
		gocron.NewTask(func() {
			s.SnapshotYesterday(time.Now())
		}),
	)
}

// SnapshotYesterday writes a ChallengeHistory row for each daily challenge
// dated the day before now that does not have one yet.
func (s *DailyChallengeService) SnapshotYesterday(now time.Time) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var dailies []models.DailyChallenge
	err := s.DB.Where("date >= ? AND date < ?", dayStart, dayEnd).Find(&dailies).Error
	if err != nil {
		log.Printf("[Scheduler] DB error: %v", err)
		return
	}

	for _, d := range dailies {
		var count int64
		err := s.DB.Model(&models.ChallengeHistory{}).
			Where("daily_id = ? AND date >= ? AND date < ?", d.ID, dayStart, dayEnd).
			Count(&count).Error
		if err != nil {
			log.Printf("[Scheduler] Failed to check history for daily %s: %v", d.ID, err)
			continue
		}
		if count > 0 {
			continue
		}

		history := models.ChallengeHistory{
			ID:             uuid.NewString(),
			Date:           d.Date,
			RewardsClaimed: d.ClaimedDate != nil,
			DailyID:        d.ID,
		}
		if err := s.DB.Create(&history).Error; err != nil {
			log.Printf("[Scheduler] Failed to snapshot daily %s: %v", d.ID, err)
		} else {
			log.Printf("✅ Recorded challenge history for daily: %s", d.ID)
		}
	}
}
