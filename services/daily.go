package services

import (
	"time"

	"github.com/DevSujal/level-quest-backend/models"
	"github.com/DevSujal/level-quest-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DailyChallengeService struct {
	DB *gorm.DB
}

func NewDailyChallengeService(db *gorm.DB) *DailyChallengeService {
	return &DailyChallengeService{DB: db}
}

type challengeBody struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Skill       string `json:"skill"`
}

type dailyRewardBody struct {
	Type   models.RewardType `json:"type"`
	Amount int               `json:"amount"`
}

// CreateDailyChallenge creates a day's challenge set with its challenges and
// rewards in one transaction.
func (s *DailyChallengeService) CreateDailyChallenge(c *fiber.Ctx) error {
	var req struct {
		Date       time.Time         `json:"date"`
		UserID     string            `json:"userId"`
		Challenges []challengeBody   `json:"challenges"`
		Rewards    []dailyRewardBody `json:"rewards"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.NewApiError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Date.IsZero() || req.UserID == "" {
		return utils.NewApiError(fiber.StatusBadRequest, "date and userId are required", "date", "userId")
	}

	daily := models.DailyChallenge{
		ID:     uuid.NewString(),
		Date:   req.Date,
		UserID: req.UserID,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&daily).Error; err != nil {
			return err
		}
		for _, ch := range req.Challenges {
			challenge := models.Challenge{
				ID:          uuid.NewString(),
				Name:        ch.Name,
				Description: ch.Description,
				Skill:       ch.Skill,
				DailyID:     daily.ID,
			}
			if err := tx.Create(&challenge).Error; err != nil {
				return err
			}
		}
		for _, r := range req.Rewards {
			reward := models.DailyReward{
				ID:      uuid.NewString(),
				Type:    r.Type,
				Amount:  r.Amount,
				DailyID: daily.ID,
			}
			if err := tx.Create(&reward).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return utils.FromDB(err, "daily challenge not found")
	}

	populated, err := s.loadDaily(daily.ID)
	if err != nil {
		return utils.FromDB(err, "Daily challenge not found")
	}
	return utils.Success(c, fiber.StatusCreated, populated, "Daily challenge created successfully")
}

func (s *DailyChallengeService) loadDaily(dailyID string) (*models.DailyChallenge, error) {
	var daily models.DailyChallenge
	err := s.DB.Preload("Challenges").
		Preload("Rewards").
		Preload("History").
		First(&daily, "id = ?", dailyID).Error
	if err != nil {
		return nil, err
	}
	return &daily, nil
}

func (s *DailyChallengeService) GetUserDailyChallenges(c *fiber.Ctx) error {
	var dailies []models.DailyChallenge
	err := s.DB.Preload("Challenges").
		Preload("Rewards").
		Preload("History").
		Where("user_id = ?", c.Params("userId")).
		Order("date DESC").
		Find(&dailies).Error
	if err != nil {
		return utils.FromDB(err, "daily challenges not found")
	}
	return utils.Success(c, fiber.StatusOK, dailies, "Daily challenges retrieved successfully")
}

// GetTodayChallenge returns the user's challenge set for the current day,
// or null data when none exists yet.
func (s *DailyChallengeService) GetTodayChallenge(c *fiber.Ctx) error {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)

	var daily models.DailyChallenge
	err := s.DB.Preload("Challenges").
		Preload("Rewards").
		Preload("History").
		Where("user_id = ? AND date >= ? AND date < ?", c.Params("userId"), start, end).
		First(&daily).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.Success(c, fiber.StatusOK, nil, "Today's challenge retrieved successfully")
		}
		return utils.FromDB(err, "daily challenge not found")
	}
	return utils.Success(c, fiber.StatusOK, daily, "Today's challenge retrieved successfully")
}

func (s *DailyChallengeService) GetDailyChallengeByID(c *fiber.Ctx) error {
	daily, err := s.loadDaily(c.Params("dailyChallengeId"))
	if err != nil {
		return utils.FromDB(err, "Daily challenge not found")
	}
	return utils.Success(c, fiber.StatusOK, daily, "Daily challenge retrieved successfully")
}

func (s *DailyChallengeService) UpdateDailyChallenge(c *fiber.Ctx) error {
	var req struct {
		Date        *time.Time `json:"date"`
		ClaimedDate *time.Time `json:"claimedDate"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.NewApiError(fiber.StatusBadRequest, "invalid request body")
	}

	var daily models.DailyChallenge
	if err := s.DB.First(&daily, "id = ?", c.Params("dailyChallengeId")).Error; err != nil {
		return utils.FromDB(err, "Daily challenge not found")
	}
	if req.Date != nil {
		daily.Date = *req.Date
	}
	if req.ClaimedDate != nil {
		daily.ClaimedDate = req.ClaimedDate
	}
	if err := s.DB.Save(&daily).Error; err != nil {
		return utils.FromDB(err, "Daily challenge not found")
	}

	populated, err := s.loadDaily(daily.ID)
	if err != nil {
		return utils.FromDB(err, "Daily challenge not found")
	}
	return utils.Success(c, fiber.StatusOK, populated, "Daily challenge updated successfully")
}

func (s *DailyChallengeService) DeleteDailyChallenge(c *fiber.Ctx) error {
	err := s.DB.Delete(&models.DailyChallenge{}, "id = ?", c.Params("dailyChallengeId")).Error
	if err != nil {
		return utils.FromDB(err, "Daily challenge not found")
	}
	return utils.Success(c, fiber.StatusOK, nil, "Daily challenge deleted successfully")
}

// ClaimDailyRewards collects the day's rewards. Requires every child
// challenge to be completed, and the conditional claimed_date update is the
// re-entry guard: concurrent claims resolve to exactly one payout. Child
// completion flags are monotonic, so the check cannot go stale between the
// read and the claim.
func (s *DailyChallengeService) ClaimDailyRewards(c *fiber.Ctx) error {
	dailyID := c.Params("dailyChallengeId")

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var daily models.DailyChallenge
		err := tx.Preload("Challenges").Preload("Rewards").First(&daily, "id = ?", dailyID).Error
		if err != nil {
			return utils.FromDB(err, "Daily challenge not found")
		}
		if daily.ClaimedDate != nil {
			return utils.NewApiError(fiber.StatusBadRequest, "rewards already claimed")
		}
		for _, challenge := range daily.Challenges {
			if !challenge.Completed {
				return utils.NewApiError(fiber.StatusBadRequest,
					"all challenges must be completed before claiming rewards")
			}
		}

		res := tx.Model(&models.DailyChallenge{}).
			Where("id = ? AND claimed_date IS NULL", dailyID).
			UpdateColumn("claimed_date", time.Now())
		if res.Error != nil {
			return utils.FromDB(res.Error, "Daily challenge not found")
		}
		if res.RowsAffected == 0 {
			return utils.NewApiError(fiber.StatusBadRequest, "rewards already claimed")
		}

		return applyEffects(tx, daily.UserID, ResolveRewards(dailyRewardInputs(daily.Rewards)))
	})
	if err != nil {
		return err
	}

	populated, err := s.loadDaily(dailyID)
	if err != nil {
		return utils.FromDB(err, "Daily challenge not found")
	}
	return utils.Success(c, fiber.StatusOK, populated, "Daily challenge rewards claimed successfully")
}

// --- Challenges ---

func (s *DailyChallengeService) CreateChallenge(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Skill       string `json:"skill"`
		DailyID     string `json:"dailyId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.NewApiError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" || req.Description == "" || req.DailyID == "" {
		return utils.NewApiError(fiber.StatusBadRequest,
			"name, description, and dailyId are required",
			"name", "description", "dailyId")
	}

	challenge := models.Challenge{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Skill:       req.Skill,
		DailyID:     req.DailyID,
	}
	if err := s.DB.Create(&challenge).Error; err != nil {
		return utils.FromDB(err, "challenge not found")
	}
	return utils.Success(c, fiber.StatusCreated, challenge, "Challenge created successfully")
}

func (s *DailyChallengeService) GetDailyChallenges(c *fiber.Ctx) error {
	var challenges []models.Challenge
	err := s.DB.Where("daily_id = ?", c.Params("dailyId")).
		Order("created_at ASC").
		Find(&challenges).Error
	if err != nil {
		return utils.FromDB(err, "challenges not found")
	}
	return utils.Success(c, fiber.StatusOK, challenges, "Challenges retrieved successfully")
}

func (s *DailyChallengeService) GetChallengeByID(c *fiber.Ctx) error {
	var challenge models.Challenge
	if err := s.DB.First(&challenge, "id = ?", c.Params("challengeId")).Error; err != nil {
		return utils.FromDB(err, "Challenge not found")
	}
	return utils.Success(c, fiber.StatusOK, challenge, "Challenge retrieved successfully")
}

func (s *DailyChallengeService) UpdateChallenge(c *fiber.Ctx) error {
	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Completed   *bool   `json:"completed"`
		Skill       *string `json:"skill"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.NewApiError(fiber.StatusBadRequest, "invalid request body")
	}

	var challenge models.Challenge
	if err := s.DB.First(&challenge, "id = ?", c.Params("challengeId")).Error; err != nil {
		return utils.FromDB(err, "Challenge not found")
	}
	if req.Name != nil {
		challenge.Name = *req.Name
	}
	if req.Description != nil {
		challenge.Description = *req.Description
	}
	if req.Completed != nil {
		challenge.Completed = *req.Completed
	}
	if req.Skill != nil {
		challenge.Skill = *req.Skill
	}
	if err := s.DB.Save(&challenge).Error; err != nil {
		return utils.FromDB(err, "Challenge not found")
	}
	return utils.Success(c, fiber.StatusOK, challenge, "Challenge updated successfully")
}

func (s *DailyChallengeService) DeleteChallenge(c *fiber.Ctx) error {
	if err := s.DB.Delete(&models.Challenge{}, "id = ?", c.Params("challengeId")).Error; err != nil {
		return utils.FromDB(err, "Challenge not found")
	}
	return utils.Success(c, fiber.StatusOK, nil, "Challenge deleted successfully")
}

// CompleteChallenge marks the challenge done and, when a skill is set, pays
// the fixed skill bonus to the owning user's stat. Guarded like every other
// completion.
func (s *DailyChallengeService) CompleteChallenge(c *fiber.Ctx) error {
	challengeID := c.Params("challengeId")

	var challenge models.Challenge
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Challenge{}).
			Where("id = ? AND completed = ?", challengeID, false).
			UpdateColumn("completed", true)
		if res.Error != nil {
			return utils.FromDB(res.Error, "Challenge not found")
		}
		if res.RowsAffected == 0 {
			if err := tx.First(&challenge, "id = ?", challengeID).Error; err != nil {
				return utils.FromDB(err, "Challenge not found")
			}
			return utils.NewApiError(fiber.StatusBadRequest, "challenge already completed")
		}
		if err := tx.First(&challenge, "id = ?", challengeID).Error; err != nil {
			return utils.FromDB(err, "Challenge not found")
		}
		if challenge.Skill == "" {
			return nil
		}

		var daily models.DailyChallenge
		if err := tx.First(&daily, "id = ?", challenge.DailyID).Error; err != nil {
			return utils.FromDB(err, "Daily challenge not found")
		}
		return applyEffects(tx, daily.UserID, []Effect{
			{Kind: EffectSkill, Skill: challenge.Skill, Amount: ChallengeSkillBonus},
		})
	})
	if err != nil {
		return err
	}
	return utils.Success(c, fiber.StatusOK, challenge, "Challenge completed successfully")
}
