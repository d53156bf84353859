// handlers/stat_routes.go
package handlers

import (
	"github.com/DevSujal/level-quest-backend/services"

	"github.com/gofiber/fiber/v2"
)

func SetupStatRoutes(api fiber.Router, auth fiber.Handler, statService *services.StatService) {
	stats := api.Group("/stats", auth)

	stats.Post("/create", statService.CreateStat)
	stats.Get("/user/:userId", statService.GetUserStats)
	stats.Get("/user/:userId/skill/:skill", statService.GetUserStatBySkill)
	stats.Get("/:statId", statService.GetStatByID)
	stats.Put("/:statId", statService.UpdateStat)
	stats.Delete("/:statId", statService.DeleteStat)
	stats.Patch("/:statId/increment", statService.IncrementStat)
}
