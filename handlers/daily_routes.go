// handlers/daily_routes.go
package handlers

import (
	"github.com/DevSujal/level-quest-backend/services"

	"github.com/gofiber/fiber/v2"
)

func SetupDailyChallengeRoutes(api fiber.Router, auth fiber.Handler, dailyService *services.DailyChallengeService) {
	dailies := api.Group("/daily-challenges", auth)

	dailies.Post("/create", dailyService.CreateDailyChallenge)
	dailies.Get("/user/:userId", dailyService.GetUserDailyChallenges)
	dailies.Get("/today/:userId", dailyService.GetTodayChallenge)
	dailies.Get("/:dailyChallengeId", dailyService.GetDailyChallengeByID)
	dailies.Put("/:dailyChallengeId", dailyService.UpdateDailyChallenge)
	dailies.Delete("/:dailyChallengeId", dailyService.DeleteDailyChallenge)
	dailies.Patch("/:dailyChallengeId/claim", dailyService.ClaimDailyRewards)

	challenges := api.Group("/challenges", auth)

	challenges.Post("/create", dailyService.CreateChallenge)
	challenges.Get("/daily/:dailyId", dailyService.GetDailyChallenges)
	challenges.Get("/:challengeId", dailyService.GetChallengeByID)
	challenges.Put("/:challengeId", dailyService.UpdateChallenge)
	challenges.Delete("/:challengeId", dailyService.DeleteChallenge)
	challenges.Patch("/:challengeId/complete", dailyService.CompleteChallenge)

	dailyRewards := api.Group("/daily-rewards", auth)

	dailyRewards.Post("/create", dailyService.CreateDailyReward)
	dailyRewards.Get("/daily/:dailyId", dailyService.GetDailyChallengeRewards)
	dailyRewards.Get("/:rewardId", dailyService.GetDailyRewardByID)
	dailyRewards.Put("/:rewardId", dailyService.UpdateDailyReward)
	dailyRewards.Delete("/:rewardId", dailyService.DeleteDailyReward)

	history := api.Group("/challenge-history", auth)

	history.Post("/create", dailyService.CreateChallengeHistory)
	history.Get("/daily/:dailyId", dailyService.GetDailyChallengeHistory)
	history.Get("/user/:userId", dailyService.GetUserChallengeHistory)
	history.Get("/:historyId", dailyService.GetChallengeHistoryByID)
	history.Put("/:historyId", dailyService.UpdateChallengeHistory)
	history.Delete("/:historyId", dailyService.DeleteChallengeHistory)
}
