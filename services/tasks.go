package services

import (
	"time"

	"github.com/DevSujal/level-quest-backend/models"
	"github.com/DevSujal/level-quest-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskService struct {
	DB *gorm.DB
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{DB: db}
}

func (s *TaskService) CreateTask(c *fiber.Ctx) error {
	var req struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		UserID string `json:"userId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.NewApiError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" || req.UserID == "" {
		return utils.NewApiError(fiber.StatusBadRequest, "name and userId are required", "name", "userId")
	}

	task := models.Task{
		ID:     req.ID,
		Name:   req.Name,
		UserID: req.UserID,
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if err := s.DB.Create(&task).Error; err != nil {
		return utils.FromDB(err, "task not found")
	}
	return utils.Success(c, fiber.StatusCreated, task, "Task created successfully")
}

func (s *TaskService) GetUserTasks(c *fiber.Ctx) error {
	var tasks []models.Task
	err := s.DB.Where("user_id = ?", c.Params("userId")).
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return utils.FromDB(err, "tasks not found")
	}
	return utils.Success(c, fiber.StatusOK, tasks, "Tasks retrieved successfully")
}

// GetTasksByDate lists a user's tasks created on a given calendar day.
func (s *TaskService) GetTasksByDate(c *fiber.Ctx) error {
	date, err := time.Parse("2006-01-02", c.Params("date"))
	if err != nil {
		return utils.NewApiError(fiber.StatusBadRequest, "date must be YYYY-MM-DD", "date")
	}
	start := date
	end := date.AddDate(0, 0, 1)

	var tasks []models.Task
	err = s.DB.Where("user_id = ? AND created_at >= ? AND created_at < ?", c.Params("userId"), start, end).
		Order("created_at ASC").
		Find(&tasks).Error
	if err != nil {
		return utils.FromDB(err, "tasks not found")
	}
	return utils.Success(c, fiber.StatusOK, tasks, "Tasks retrieved successfully")
}

func (s *TaskService) GetTaskByID(c *fiber.Ctx) error {
	var task models.Task
	if err := s.DB.First(&task, "id = ?", c.Params("taskId")).Error; err != nil {
		return utils.FromDB(err, "Task not found")
	}
	return utils.Success(c, fiber.StatusOK, task, "Task retrieved successfully")
}

func (s *TaskService) UpdateTask(c *fiber.Ctx) error {
	var req struct {
		Name        *string `json:"name"`
		IsCompleted *bool   `json:"isCompleted"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.NewApiError(fiber.StatusBadRequest, "invalid request body")
	}

	var task models.Task
	if err := s.DB.First(&task, "id = ?", c.Params("taskId")).Error; err != nil {
		return utils.FromDB(err, "Task not found")
	}
	if req.Name != nil {
		task.Name = *req.Name
	}
	if req.IsCompleted != nil {
		task.IsCompleted = *req.IsCompleted
	}
	if err := s.DB.Save(&task).Error; err != nil {
		return utils.FromDB(err, "Task not found")
	}
	return utils.Success(c, fiber.StatusOK, task, "Task updated successfully")
}

func (s *TaskService) DeleteTask(c *fiber.Ctx) error {
	if err := s.DB.Delete(&models.Task{}, "id = ?", c.Params("taskId")).Error; err != nil {
		return utils.FromDB(err, "Task not found")
	}
	return utils.Success(c, fiber.StatusOK, nil, "Task deleted successfully")
}

// CompleteTask marks the task done and pays the fixed experience bonus.
// The conditional update is the idempotency guard: a task that is already
// completed affects zero rows and is rejected, so the bonus cannot be
// double-applied by repeat or concurrent calls.
func (s *TaskService) CompleteTask(c *fiber.Ctx) error {
	taskID := c.Params("taskId")

	var task models.Task
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Task{}).
			Where("id = ? AND is_completed = ?", taskID, false).
			UpdateColumn("is_completed", true)
		if res.Error != nil {
			return utils.FromDB(res.Error, "Task not found")
		}
		if res.RowsAffected == 0 {
			if err := tx.First(&task, "id = ?", taskID).Error; err != nil {
				return utils.FromDB(err, "Task not found")
			}
			return utils.NewApiError(fiber.StatusBadRequest, "task already completed")
		}
		if err := tx.First(&task, "id = ?", taskID).Error; err != nil {
			return utils.FromDB(err, "Task not found")
		}
		return applyEffects(tx, task.UserID, []Effect{
			{Kind: EffectExperience, Amount: TaskExperienceBonus},
		})
	})
	if err != nil {
		return err
	}
	return utils.Success(c, fiber.StatusOK, task, "Task completed successfully")
}
