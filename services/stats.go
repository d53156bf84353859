package services

import (
	"time"

	"github.com/DevSujal/level-quest-backend/models"
	"github.com/DevSujal/level-quest-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StatService struct {
	DB *gorm.DB
}

func NewStatService(db *gorm.DB) *StatService {
	return &StatService{DB: db}
}

// upsertSkillStat is the aggregator's single-statement upsert-with-increment.
// The (user_id, skill) unique index makes the conflict target; value and the
// derived level are recomputed server-side so concurrent applications for the
// same skill cannot lose updates.
func upsertSkillStat(tx *gorm.DB, userID, skill string, amount int) error {
	stat := models.Stat{
		ID:     uuid.NewString(),
		Skill:  skill,
		Value:  amount,
		Level:  models.StatLevel(amount),
		UserID: userID,
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "skill"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      gorm.Expr("stats.value + excluded.value"),
			"level":      gorm.Expr("(stats.value + excluded.value) / 100 + 1"),
			"updated_at": time.Now(),
		}),
	}).Create(&stat).Error
}

// --- Handlers ---

func (s *StatService) CreateStat(c *fiber.Ctx) error {
	var req struct {
		Skill  string `json:"skill"`
		Level  int    `json:"level"`
		Value  int    `json:"value"`
		UserID string `json:"userId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.NewApiError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Skill == "" || req.UserID == "" {
		return utils.NewApiError(fiber.StatusBadRequest, "skill and userId are required", "skill", "userId")
	}

	stat := models.Stat{
		ID:     uuid.NewString(),
		Skill:  req.Skill,
		Level:  req.Level,
		Value:  req.Value,
		UserID: req.UserID,
	}
	if stat.Level == 0 {
		stat.Level = models.StatLevel(stat.Value)
	}
	if err := s.DB.Create(&stat).Error; err != nil {
		return utils.FromDB(err, "stat not found")
	}
	return utils.Success(c, fiber.StatusCreated, stat, "Stat created successfully")
}

func (s *StatService) GetUserStats(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var stats []models.Stat
	if err := s.DB.Where("user_id = ?", userID).Order("skill ASC").Find(&stats).Error; err != nil {
		return utils.FromDB(err, "stats not found")
	}
	return utils.Success(c, fiber.StatusOK, stats, "Stats retrieved successfully")
}

func (s *StatService) GetStatByID(c *fiber.Ctx) error {
	var stat models.Stat
	if err := s.DB.First(&stat, "id = ?", c.Params("statId")).Error; err != nil {
		return utils.FromDB(err, "Stat not found")
	}
	return utils.Success(c, fiber.StatusOK, stat, "Stat retrieved successfully")
}

func (s *StatService) GetUserStatBySkill(c *fiber.Ctx) error {
	var stat models.Stat
	err := s.DB.Where("user_id = ? AND skill = ?", c.Params("userId"), c.Params("skill")).
		First(&stat).Error
	if err != nil {
		return utils.FromDB(err, "Stat not found")
	}
	return utils.Success(c, fiber.StatusOK, stat, "Stat retrieved successfully")
}

func (s *StatService) UpdateStat(c *fiber.Ctx) error {
	var req struct {
		Skill *string `json:"skill"`
		Level *int    `json:"level"`
		Value *int    `json:"value"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.NewApiError(fiber.StatusBadRequest, "invalid request body")
	}

	var stat models.Stat
	if err := s.DB.First(&stat, "id = ?", c.Params("statId")).Error; err != nil {
		return utils.FromDB(err, "Stat not found")
	}
	if req.Skill != nil {
		stat.Skill = *req.Skill
	}
	if req.Level != nil {
		stat.Level = *req.Level
	}
	if req.Value != nil {
		stat.Value = *req.Value
	}
	if err := s.DB.Save(&stat).Error; err != nil {
		return utils.FromDB(err, "Stat not found")
	}
	return utils.Success(c, fiber.StatusOK, stat, "Stat updated successfully")
}

func (s *StatService) DeleteStat(c *fiber.Ctx) error {
	if err := s.DB.Delete(&models.Stat{}, "id = ?", c.Params("statId")).Error; err != nil {
		return utils.FromDB(err, "Stat not found")
	}
	return utils.Success(c, fiber.StatusOK, nil, "Stat deleted successfully")
}

// IncrementStat bumps a stat by amount (default 1) and recomputes the level
// in the same statement.
func (s *StatService) IncrementStat(c *fiber.Ctx) error {
	statID := c.Params("statId")
	var req struct {
		Amount int `json:"amount"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.NewApiError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Amount == 0 {
		req.Amount = 1
	}

	res := s.DB.Model(&models.Stat{}).Where("id = ?", statID).UpdateColumns(map[string]interface{}{
		"value":      gorm.Expr("value + ?", req.Amount),
		"level":      gorm.Expr("(value + ?) / 100 + 1", req.Amount),
		"updated_at": time.Now(),
	})
	if res.Error != nil {
		return utils.FromDB(res.Error, "Stat not found")
	}
	if res.RowsAffected == 0 {
		return utils.NewApiError(fiber.StatusNotFound, "Stat not found")
	}

	var stat models.Stat
	if err := s.DB.First(&stat, "id = ?", statID).Error; err != nil {
		return utils.FromDB(err, "Stat not found")
	}
	return utils.Success(c, fiber.StatusOK, stat, "Stat incremented successfully")
}
