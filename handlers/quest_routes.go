// handlers/quest_routes.go
package handlers

import (
	"github.com/DevSujal/level-quest-backend/services"

	"github.com/gofiber/fiber/v2"
)

func SetupQuestRoutes(api fiber.Router, auth fiber.Handler, questService *services.QuestService, rewardService *services.RewardService) {
	quests := api.Group("/quests", auth)

	quests.Post("/create", questService.CreateQuest)
	quests.Get("/user/:userId", questService.GetUserQuests)
	quests.Get("/:questId", questService.GetQuestByID)
	quests.Put("/:questId", questService.UpdateQuest)
	quests.Delete("/:questId", questService.DeleteQuest)
	quests.Patch("/:questId/complete", questService.CompleteQuest)

	subQuests := api.Group("/subquests", auth)

	subQuests.Post("/create", questService.CreateSubQuest)
	subQuests.Get("/quest/:questId", questService.GetQuestSubQuests)
	subQuests.Get("/:subQuestId", questService.GetSubQuestByID)
	subQuests.Put("/:subQuestId", questService.UpdateSubQuest)
	subQuests.Delete("/:subQuestId", questService.DeleteSubQuest)
	subQuests.Patch("/:subQuestId/complete", questService.CompleteSubQuest)
	subQuests.Patch("/:subQuestId/claim", questService.ClaimSubQuest)

	rewards := api.Group("/rewards", auth)

	rewards.Post("/create", rewardService.CreateReward)
	rewards.Get("/quest/:questId", rewardService.GetQuestRewards)
	rewards.Get("/subquest/:subQuestId", rewardService.GetSubQuestRewards)
	rewards.Get("/:rewardId", rewardService.GetRewardByID)
	rewards.Put("/:rewardId", rewardService.UpdateReward)
	rewards.Delete("/:rewardId", rewardService.DeleteReward)
}
