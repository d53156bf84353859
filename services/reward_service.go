// services/reward_service.go
package services

import (
	"github.com/DevSujal/level-quest-backend/models"
	"github.com/DevSujal/level-quest-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RewardService manages reward descriptors directly. Attachment is fixed at
// creation: a reward belongs to exactly one quest or subquest.
type RewardService struct {
	DB *gorm.DB
}

func NewRewardService(db *gorm.DB) *RewardService {
	return &RewardService{DB: db}
}

func (s *RewardService) CreateReward(c *fiber.Ctx) error {
	var req struct {
		Type       models.RewardType `json:"type"`
		Amount     int               `json:"amount"`
		Skill      string            `json:"skill"`
		QuestID    *string           `json:"questId"`
		SubQuestID *string           `json:"subQuestId"`
		ItemID     *string           `json:"itemId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.NewApiError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Type == "" || req.Amount == 0 {
		return utils.NewApiError(fiber.StatusBadRequest, "type and amount are required", "type", "amount")
	}
	if req.QuestID == nil && req.SubQuestID == nil {
		return utils.NewApiError(fiber.StatusBadRequest,
			"either questId or subQuestId must be provided",
			"questId", "subQuestId")
	}

	reward := models.Reward{
		ID:         uuid.NewString(),
		Type:       req.Type,
		Amount:     req.Amount,
		Skill:      req.Skill,
		QuestID:    req.QuestID,
		SubQuestID: req.SubQuestID,
		ItemID:     req.ItemID,
	}
	if err := s.DB.Create(&reward).Error; err != nil {
		return utils.FromDB(err, "reward not found")
	}
	return utils.Success(c, fiber.StatusCreated, reward, "Reward created successfully")
}

func (s *RewardService) GetQuestRewards(c *fiber.Ctx) error {
	var rewards []models.Reward
	if err := s.DB.Where("quest_id = ?", c.Params("questId")).Find(&rewards).Error; err != nil {
		return utils.FromDB(err, "rewards not found")
	}
	return utils.Success(c, fiber.StatusOK, rewards, "Quest rewards retrieved successfully")
}

func (s *RewardService) GetSubQuestRewards(c *fiber.Ctx) error {
	var rewards []models.Reward
	if err := s.DB.Where("sub_quest_id = ?", c.Params("subQuestId")).Find(&rewards).Error; err != nil {
		return utils.FromDB(err, "rewards not found")
	}
	return utils.Success(c, fiber.StatusOK, rewards, "SubQuest rewards retrieved successfully")
}

func (s *RewardService) GetRewardByID(c *fiber.Ctx) error {
	var reward models.Reward
	if err := s.DB.First(&reward, "id = ?", c.Params("rewardId")).Error; err != nil {
		return utils.FromDB(err, "Reward not found")
	}
	return utils.Success(c, fiber.StatusOK, reward, "Reward retrieved successfully")
}

func (s *RewardService) UpdateReward(c *fiber.Ctx) error {
	var req struct {
		Type   *models.RewardType `json:"type"`
		Amount *int               `json:"amount"`
		Skill  *string            `json:"skill"`
		ItemID *string            `json:"itemId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.NewApiError(fiber.StatusBadRequest, "invalid request body")
	}

	var reward models.Reward
	if err := s.DB.First(&reward, "id = ?", c.Params("rewardId")).Error; err != nil {
		return utils.FromDB(err, "Reward not found")
	}
	if req.Type != nil {
		reward.Type = *req.Type
	}
	if req.Amount != nil {
		reward.Amount = *req.Amount
	}
	if req.Skill != nil {
		reward.Skill = *req.Skill
	}
	if req.ItemID != nil {
		reward.ItemID = req.ItemID
	}
	if err := s.DB.Save(&reward).Error; err != nil {
		return utils.FromDB(err, "Reward not found")
	}
	return utils.Success(c, fiber.StatusOK, reward, "Reward updated successfully")
}

func (s *RewardService) DeleteReward(c *fiber.Ctx) error {
	if err := s.DB.Delete(&models.Reward{}, "id = ?", c.Params("rewardId")).Error; err != nil {
		return utils.FromDB(err, "Reward not found")
	}
	return utils.Success(c, fiber.StatusOK, nil, "Reward deleted successfully")
}
