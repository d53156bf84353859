package services

import (
	"time"

	"github.com/DevSujal/level-quest-backend/models"
	"github.com/DevSujal/level-quest-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuestService struct {
	DB *gorm.DB
}

func NewQuestService(db *gorm.DB) *QuestService {
	return &QuestService{DB: db}
}

// rewardBody is the inline reward shape accepted on quest/subquest creation.
type rewardBody struct {
	Type   models.RewardType `json:"type"`
	Amount int               `json:"amount"`
	Skill  string            `json:"skill"`
	ItemID *string           `json:"itemId"`
}

type subQuestBody struct {
	Name    string       `json:"name"`
	Rewards []rewardBody `json:"rewards"`
}

// CreateQuest creates a quest together with its rewards and subquests in one
// transaction, the way clients submit them.
func (s *QuestService) CreateQuest(c *fiber.Ctx) error {
	var req struct {
		Image       string         `json:"image"`
		Name        string         `json:"name"`
		EndDate     time.Time      `json:"endDate"`
		Description string         `json:"description"`
		Priority    int            `json:"priority"`
		UserID      string         `json:"userId"`
		Rewards     []rewardBody   `json:"rewards"`
		SubQuests   []subQuestBody `json:"subQuests"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.NewApiError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" || req.EndDate.IsZero() || req.Description == "" || req.UserID == "" {
		return utils.NewApiError(fiber.StatusBadRequest,
			"name, endDate, description, and userId are required",
			"name", "endDate", "description", "userId")
	}
	if req.Priority == 0 {
		req.Priority = 1
	}

	quest := models.Quest{
		ID:          uuid.NewString(),
		Image:       req.Image,
		Name:        req.Name,
		EndDate:     req.EndDate,
		Description: req.Description,
		Priority:    req.Priority,
		UserID:      req.UserID,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&quest).Error; err != nil {
			return err
		}
		for _, r := range req.Rewards {
			reward := models.Reward{
				ID:      uuid.NewString(),
				Type:    r.Type,
				Amount:  r.Amount,
				Skill:   r.Skill,
				ItemID:  r.ItemID,
				QuestID: &quest.ID,
			}
			if err := tx.Create(&reward).Error; err != nil {
				return err
			}
		}
		for _, sq := range req.SubQuests {
			subQuest := models.SubQuest{
				ID:      uuid.NewString(),
				Name:    sq.Name,
				QuestID: quest.ID,
			}
			if err := tx.Create(&subQuest).Error; err != nil {
				return err
			}
			for _, r := range sq.Rewards {
				reward := models.Reward{
					ID:         uuid.NewString(),
					Type:       r.Type,
					Amount:     r.Amount,
					Skill:      r.Skill,
					ItemID:     r.ItemID,
					SubQuestID: &subQuest.ID,
				}
				if err := tx.Create(&reward).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return utils.FromDB(err, "quest not found")
	}

	populated, err := s.loadQuest(quest.ID)
	if err != nil {
		return utils.FromDB(err, "Quest not found")
	}
	return utils.Success(c, fiber.StatusCreated, populated, "Quest created successfully")
}

func (s *QuestService) loadQuest(questID string) (*models.Quest, error) {
	var quest models.Quest
	err := s.DB.Preload("Rewards").
		Preload("SubQuests").
		Preload("SubQuests.Rewards").
		First(&quest, "id = ?", questID).Error
	if err != nil {
		return nil, err
	}
	return &quest, nil
}

func (s *QuestService) GetUserQuests(c *fiber.Ctx) error {
	var quests []models.Quest
	err := s.DB.Preload("Rewards").
		Preload("SubQuests").
		Where("user_id = ?", c.Params("userId")).
		Order("created_at DESC").
		Find(&quests).Error
	if err != nil {
		return utils.FromDB(err, "quests not found")
	}
	return utils.Success(c, fiber.StatusOK, quests, "Quests retrieved successfully")
}

func (s *QuestService) GetQuestByID(c *fiber.Ctx) error {
	quest, err := s.loadQuest(c.Params("questId"))
	if err != nil {
		return utils.FromDB(err, "Quest not found")
	}
	return utils.Success(c, fiber.StatusOK, quest, "Quest retrieved successfully")
}

func (s *QuestService) UpdateQuest(c *fiber.Ctx) error {
	var req struct {
		Image       *string    `json:"image"`
		Name        *string    `json:"name"`
		EndDate     *time.Time `json:"endDate"`
		Description *string    `json:"description"`
		Priority    *int       `json:"priority"`
		IsCompleted *bool      `json:"isCompleted"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.NewApiError(fiber.StatusBadRequest, "invalid request body")
	}

	var quest models.Quest
	if err := s.DB.First(&quest, "id = ?", c.Params("questId")).Error; err != nil {
		return utils.FromDB(err, "Quest not found")
	}
	if req.Image != nil {
		quest.Image = *req.Image
	}
	if req.Name != nil {
		quest.Name = *req.Name
	}
	if req.EndDate != nil {
		quest.EndDate = *req.EndDate
	}
	if req.Description != nil {
		quest.Description = *req.Description
	}
	if req.Priority != nil {
		quest.Priority = *req.Priority
	}
	if req.IsCompleted != nil {
		quest.IsCompleted = *req.IsCompleted
	}
	if err := s.DB.Save(&quest).Error; err != nil {
		return utils.FromDB(err, "Quest not found")
	}

	populated, err := s.loadQuest(quest.ID)
	if err != nil {
		return utils.FromDB(err, "Quest not found")
	}
	return utils.Success(c, fiber.StatusOK, populated, "Quest updated successfully")
}

func (s *QuestService) DeleteQuest(c *fiber.Ctx) error {
	if err := s.DB.Delete(&models.Quest{}, "id = ?", c.Params("questId")).Error; err != nil {
		return utils.FromDB(err, "Quest not found")
	}
	return utils.Success(c, fiber.StatusOK, nil, "Quest deleted successfully")
}

// CompleteQuest marks the quest done and applies its rewards in the same
// transaction. The conditional update guards against repeat completion, so
// rewards fire exactly once per quest.
func (s *QuestService) CompleteQuest(c *fiber.Ctx) error {
	questID := c.Params("questId")

	var quest models.Quest
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Quest{}).
			Where("id = ? AND is_completed = ?", questID, false).
			UpdateColumn("is_completed", true)
		if res.Error != nil {
			return utils.FromDB(res.Error, "Quest not found")
		}
		if res.RowsAffected == 0 {
			if err := tx.First(&quest, "id = ?", questID).Error; err != nil {
				return utils.FromDB(err, "Quest not found")
			}
			return utils.NewApiError(fiber.StatusBadRequest, "quest already completed")
		}
		if err := tx.Preload("Rewards").First(&quest, "id = ?", questID).Error; err != nil {
			return utils.FromDB(err, "Quest not found")
		}
		return applyEffects(tx, quest.UserID, ResolveRewards(rewardInputs(quest.Rewards)))
	})
	if err != nil {
		return err
	}
	return utils.Success(c, fiber.StatusOK, quest, "Quest completed successfully")
}

// --- SubQuests ---

func (s *QuestService) CreateSubQuest(c *fiber.Ctx) error {
	var req struct {
		Name    string       `json:"name"`
		QuestID string       `json:"questId"`
		Rewards []rewardBody `json:"rewards"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.NewApiError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" || req.QuestID == "" {
		return utils.NewApiError(fiber.StatusBadRequest, "name and questId are required", "name", "questId")
	}

	subQuest := models.SubQuest{
		ID:      uuid.NewString(),
		Name:    req.Name,
		QuestID: req.QuestID,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&subQuest).Error; err != nil {
			return err
		}
		for _, r := range req.Rewards {
			reward := models.Reward{
				ID:         uuid.NewString(),
				Type:       r.Type,
				Amount:     r.Amount,
				Skill:      r.Skill,
				ItemID:     r.ItemID,
				SubQuestID: &subQuest.ID,
			}
			if err := tx.Create(&reward).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return utils.FromDB(err, "subquest not found")
	}

	var populated models.SubQuest
	if err := s.DB.Preload("Rewards").First(&populated, "id = ?", subQuest.ID).Error; err != nil {
		return utils.FromDB(err, "SubQuest not found")
	}
	return utils.Success(c, fiber.StatusCreated, populated, "SubQuest created successfully")
}

func (s *QuestService) GetQuestSubQuests(c *fiber.Ctx) error {
	var subQuests []models.SubQuest
	err := s.DB.Preload("Rewards").
		Where("quest_id = ?", c.Params("questId")).
		Order("created_at DESC").
		Find(&subQuests).Error
	if err != nil {
		return utils.FromDB(err, "subquests not found")
	}
	return utils.Success(c, fiber.StatusOK, subQuests, "SubQuests retrieved successfully")
}

func (s *QuestService) GetSubQuestByID(c *fiber.Ctx) error {
	var subQuest models.SubQuest
	err := s.DB.Preload("Rewards").First(&subQuest, "id = ?", c.Params("subQuestId")).Error
	if err != nil {
		return utils.FromDB(err, "SubQuest not found")
	}
	return utils.Success(c, fiber.StatusOK, subQuest, "SubQuest retrieved successfully")
}

func (s *QuestService) UpdateSubQuest(c *fiber.Ctx) error {
	var req struct {
		Name      *string `json:"name"`
		Completed *bool   `json:"completed"`
		Claim     *bool   `json:"claim"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.NewApiError(fiber.StatusBadRequest, "invalid request body")
	}

	var subQuest models.SubQuest
	if err := s.DB.First(&subQuest, "id = ?", c.Params("subQuestId")).Error; err != nil {
		return utils.FromDB(err, "SubQuest not found")
	}
	if req.Name != nil {
		subQuest.Name = *req.Name
	}
	if req.Completed != nil {
		subQuest.Completed = *req.Completed
	}
	if req.Claim != nil {
		subQuest.Claim = *req.Claim
	}
	if err := s.DB.Save(&subQuest).Error; err != nil {
		return utils.FromDB(err, "SubQuest not found")
	}
	return utils.Success(c, fiber.StatusOK, subQuest, "SubQuest updated successfully")
}

func (s *QuestService) DeleteSubQuest(c *fiber.Ctx) error {
	if err := s.DB.Delete(&models.SubQuest{}, "id = ?", c.Params("subQuestId")).Error; err != nil {
		return utils.FromDB(err, "SubQuest not found")
	}
	return utils.Success(c, fiber.StatusOK, nil, "SubQuest deleted successfully")
}

// CompleteSubQuest only marks the work done. The payout happens on claim,
// which is a separate guarded transition.
func (s *QuestService) CompleteSubQuest(c *fiber.Ctx) error {
	subQuestID := c.Params("subQuestId")

	res := s.DB.Model(&models.SubQuest{}).
		Where("id = ? AND completed = ?", subQuestID, false).
		UpdateColumn("completed", true)
	if res.Error != nil {
		return utils.FromDB(res.Error, "SubQuest not found")
	}

	var subQuest models.SubQuest
	if err := s.DB.Preload("Rewards").First(&subQuest, "id = ?", subQuestID).Error; err != nil {
		return utils.FromDB(err, "SubQuest not found")
	}
	if res.RowsAffected == 0 {
		return utils.NewApiError(fiber.StatusBadRequest, "subquest already completed")
	}
	return utils.Success(c, fiber.StatusOK, subQuest, "SubQuest completed successfully")
}

// ClaimSubQuest collects the rewards of a completed subquest. Legal only
// once: the conditional claim-flag update rejects the second caller even
// under concurrent requests.
func (s *QuestService) ClaimSubQuest(c *fiber.Ctx) error {
	subQuestID := c.Params("subQuestId")

	var subQuest models.SubQuest
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Rewards").First(&subQuest, "id = ?", subQuestID).Error; err != nil {
			return utils.FromDB(err, "SubQuest not found")
		}
		if !subQuest.Completed {
			return utils.NewApiError(fiber.StatusBadRequest, "subquest must be completed before claiming rewards")
		}

		res := tx.Model(&models.SubQuest{}).
			Where("id = ? AND claim = ?", subQuestID, false).
			UpdateColumn("claim", true)
		if res.Error != nil {
			return utils.FromDB(res.Error, "SubQuest not found")
		}
		if res.RowsAffected == 0 {
			return utils.NewApiError(fiber.StatusBadRequest, "rewards already claimed")
		}
		subQuest.Claim = true

		var quest models.Quest
		if err := tx.First(&quest, "id = ?", subQuest.QuestID).Error; err != nil {
			return utils.FromDB(err, "Quest not found")
		}
		return applyEffects(tx, quest.UserID, ResolveRewards(rewardInputs(subQuest.Rewards)))
	})
	if err != nil {
		return err
	}
	return utils.Success(c, fiber.StatusOK, subQuest, "SubQuest rewards claimed successfully")
}
