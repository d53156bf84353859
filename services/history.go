package services

import (
	"time"

	"github.com/DevSujal/level-quest-backend/models"
	"github.com/DevSujal/level-quest-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ChallengeHistory and DailyReward handlers live with the daily challenge
// service since both hang off the same parent entity.

func (s *DailyChallengeService) CreateChallengeHistory(c *fiber.Ctx) error {
	var req struct {
		Date           time.Time `json:"date"`
		RewardsClaimed bool      `json:"rewardsClaimed"`
		DailyID        string    `json:"dailyId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.NewApiError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Date.IsZero() || req.DailyID == "" {
		return utils.NewApiError(fiber.StatusBadRequest, "date and dailyId are required", "date", "dailyId")
	}

	history := models.ChallengeHistory{
		ID:             uuid.NewString(),
		Date:           req.Date,
		RewardsClaimed: req.RewardsClaimed,
		DailyID:        req.DailyID,
	}
	if err := s.DB.Create(&history).Error; err != nil {
		return utils.FromDB(err, "challenge history not found")
	}
	return utils.Success(c, fiber.StatusCreated, history, "Challenge history created successfully")
}

func (s *DailyChallengeService) GetDailyChallengeHistory(c *fiber.Ctx) error {
	var history []models.ChallengeHistory
	err := s.DB.Where("daily_id = ?", c.Params("dailyId")).
		Order("date DESC").
		Find(&history).Error
	if err != nil {
		return utils.FromDB(err, "challenge history not found")
	}
	return utils.Success(c, fiber.StatusOK, history, "Challenge history retrieved successfully")
}

// GetUserChallengeHistory joins through the user's daily challenges.
func (s *DailyChallengeService) GetUserChallengeHistory(c *fiber.Ctx) error {
	var history []models.ChallengeHistory
	err := s.DB.
		Joins("JOIN daily_challenges ON daily_challenges.id = challenge_histories.daily_id").
		Where("daily_challenges.user_id = ?", c.Params("userId")).
		Order("challenge_histories.date DESC").
		Find(&history).Error
	if err != nil {
		return utils.FromDB(err, "challenge history not found")
	}
	return utils.Success(c, fiber.StatusOK, history, "User challenge history retrieved successfully")
}

func (s *DailyChallengeService) GetChallengeHistoryByID(c *fiber.Ctx) error {
	var history models.ChallengeHistory
	if err := s.DB.First(&history, "id = ?", c.Params("historyId")).Error; err != nil {
		return utils.FromDB(err, "Challenge history not found")
	}
	return utils.Success(c, fiber.StatusOK, history, "Challenge history retrieved successfully")
}

func (s *DailyChallengeService) UpdateChallengeHistory(c *fiber.Ctx) error {
	var req struct {
		Date           *time.Time `json:"date"`
		RewardsClaimed *bool      `json:"rewardsClaimed"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.NewApiError(fiber.StatusBadRequest, "invalid request body")
	}

	var history models.ChallengeHistory
	if err := s.DB.First(&history, "id = ?", c.Params("historyId")).Error; err != nil {
		return utils.FromDB(err, "Challenge history not found")
	}
	if req.Date != nil {
		history.Date = *req.Date
	}
	if req.RewardsClaimed != nil {
		history.RewardsClaimed = *req.RewardsClaimed
	}
	if err := s.DB.Save(&history).Error; err != nil {
		return utils.FromDB(err, "Challenge history not found")
	}
	return utils.Success(c, fiber.StatusOK, history, "Challenge history updated successfully")
}

func (s *DailyChallengeService) DeleteChallengeHistory(c *fiber.Ctx) error {
	err := s.DB.Delete(&models.ChallengeHistory{}, "id = ?", c.Params("historyId")).Error
	if err != nil {
		return utils.FromDB(err, "Challenge history not found")
	}
	return utils.Success(c, fiber.StatusOK, nil, "Challenge history deleted successfully")
}

// --- Daily rewards ---

func (s *DailyChallengeService) CreateDailyReward(c *fiber.Ctx) error {
	var req struct {
		Type    models.RewardType `json:"type"`
		Amount  int               `json:"amount"`
		DailyID string            `json:"dailyId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.NewApiError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Type == "" || req.Amount == 0 || req.DailyID == "" {
		return utils.NewApiError(fiber.StatusBadRequest,
			"type, amount, and dailyId are required",
			"type", "amount", "dailyId")
	}

	reward := models.DailyReward{
		ID:      uuid.NewString(),
		Type:    req.Type,
		Amount:  req.Amount,
		DailyID: req.DailyID,
	}
	if err := s.DB.Create(&reward).Error; err != nil {
		return utils.FromDB(err, "daily reward not found")
	}
	return utils.Success(c, fiber.StatusCreated, reward, "Daily reward created successfully")
}

func (s *DailyChallengeService) GetDailyChallengeRewards(c *fiber.Ctx) error {
	var rewards []models.DailyReward
	err := s.DB.Where("daily_id = ?", c.Params("dailyId")).
		Order("created_at ASC").
		Find(&rewards).Error
	if err != nil {
		return utils.FromDB(err, "daily rewards not found")
	}
	return utils.Success(c, fiber.StatusOK, rewards, "Daily challenge rewards retrieved successfully")
}

func (s *DailyChallengeService) GetDailyRewardByID(c *fiber.Ctx) error {
	var reward models.DailyReward
	if err := s.DB.First(&reward, "id = ?", c.Params("rewardId")).Error; err != nil {
		return utils.FromDB(err, "Daily reward not found")
	}
	return utils.Success(c, fiber.StatusOK, reward, "Daily reward retrieved successfully")
}

func (s *DailyChallengeService) UpdateDailyReward(c *fiber.Ctx) error {
	var req struct {
		Type   *models.RewardType `json:"type"`
		Amount *int               `json:"amount"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.NewApiError(fiber.StatusBadRequest, "invalid request body")
	}

	var reward models.DailyReward
	if err := s.DB.First(&reward, "id = ?", c.Params("rewardId")).Error; err != nil {
		return utils.FromDB(err, "Daily reward not found")
	}
	if req.Type != nil {
		reward.Type = *req.Type
	}
	if req.Amount != nil {
		reward.Amount = *req.Amount
	}
	if err := s.DB.Save(&reward).Error; err != nil {
		return utils.FromDB(err, "Daily reward not found")
	}
	return utils.Success(c, fiber.StatusOK, reward, "Daily reward updated successfully")
}

func (s *DailyChallengeService) DeleteDailyReward(c *fiber.Ctx) error {
	if err := s.DB.Delete(&models.DailyReward{}, "id = ?", c.Params("rewardId")).Error; err != nil {
		return utils.FromDB(err, "Daily reward not found")
	}
	return utils.Success(c, fiber.StatusOK, nil, "Daily reward deleted successfully")
}
