// handlers/task_routes.go
package handlers

import (
	"github.com/DevSujal/level-quest-backend/services"

	"github.com/gofiber/fiber/v2"
)

func SetupTaskRoutes(api fiber.Router, auth fiber.Handler, taskService *services.TaskService) {
	tasks := api.Group("/tasks", auth)

	tasks.Post("/create", taskService.CreateTask)
	tasks.Get("/user/:userId", taskService.GetUserTasks)
	tasks.Get("/date/:date/user/:userId", taskService.GetTasksByDate)
	tasks.Get("/:taskId", taskService.GetTaskByID)
	tasks.Put("/:taskId", taskService.UpdateTask)
	tasks.Delete("/:taskId", taskService.DeleteTask)
	tasks.Patch("/:taskId/complete", taskService.CompleteTask)
}
