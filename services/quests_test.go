package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/DevSujal/level-quest-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupQuestApp(db *gorm.DB) *fiber.App {
	app := newTestApp()
	svc := NewQuestService(db)
	app.Post("/quests/create", svc.CreateQuest)
	app.Get("/quests/user/:userId", svc.GetUserQuests)
	app.Get("/quests/:questId", svc.GetQuestByID)
	app.Patch("/quests/:questId/complete", svc.CompleteQuest)
	app.Post("/subquests/create", svc.CreateSubQuest)
	app.Patch("/subquests/:subQuestId/complete", svc.CompleteSubQuest)
	app.Patch("/subquests/:subQuestId/claim", svc.ClaimSubQuest)
	return app
}

func seedQuest(t *testing.T, db *gorm.DB, userID string, rewards ...models.Reward) *models.Quest {
	t.Helper()

	quest := models.Quest{
		ID:          uuid.NewString(),
		Name:        "Slay the backlog",
		EndDate:     time.Now().AddDate(0, 0, 7),
		Description: "Clear every open ticket",
		Priority:    1,
		UserID:      userID,
	}
	require.NoError(t, db.Create(&quest).Error)
	for i := range rewards {
		rewards[i].ID = uuid.NewString()
		rewards[i].QuestID = &quest.ID
		require.NoError(t, db.Create(&rewards[i]).Error)
	}
	return &quest
}

func TestCreateQuest_WithRewardsAndSubQuests(t *testing.T) {
	db := newTestDB(t)
	app := setupQuestApp(db)
	user := seedUser(t, db)

	status, env := doJSON(t, app, http.MethodPost, "/quests/create", fiber.Map{
		"name":        "Learn the guitar",
		"endDate":     time.Now().AddDate(0, 1, 0),
		"description": "Practice daily for a month",
		"userId":      user.ID,
		"rewards": []fiber.Map{
			{"type": "COINS", "amount": 200},
			{"type": "SKILL", "amount": 30, "skill": "music"},
		},
		"subQuests": []fiber.Map{
			{"name": "Learn three chords", "rewards": []fiber.Map{{"type": "EXPERIENCE", "amount": 15}}},
		},
	})
	require.Equal(t, http.StatusCreated, status)

	var quest models.Quest
	decodeData(t, env, &quest)
	assert.Len(t, quest.Rewards, 2)
	require.Len(t, quest.SubQuests, 1)
	assert.Len(t, quest.SubQuests[0].Rewards, 1)
	assert.False(t, quest.IsCompleted)
}

func TestCompleteQuest_AppliesRewards(t *testing.T) {
	db := newTestDB(t)
	app := setupQuestApp(db)
	user := seedUser(t, db)
	quest := seedQuest(t, db, user.ID,
		models.Reward{Type: models.RewardTypeCoins, Amount: 500},
		models.Reward{Type: models.RewardTypeExperience, Amount: 40},
		models.Reward{Type: models.RewardTypeSkill, Amount: 20, Skill: "discipline"},
		models.Reward{Type: models.RewardTypeItem, Amount: 1},
	)

	status, _ := doJSON(t, app, http.MethodPatch, "/quests/"+quest.ID+"/complete", nil)
	require.Equal(t, http.StatusOK, status)

	got := reloadUser(t, db, user.ID)
	assert.Equal(t, 1500, got.Coins)
	assert.Equal(t, 90, got.Exp)

	var stat models.Stat
	require.NoError(t, db.Where("user_id = ? AND skill = ?", user.ID, "discipline").First(&stat).Error)
	assert.Equal(t, 20, stat.Value)
}

func TestCompleteQuest_RepeatRejected(t *testing.T) {
	db := newTestDB(t)
	app := setupQuestApp(db)
	user := seedUser(t, db)
	quest := seedQuest(t, db, user.ID, models.Reward{Type: models.RewardTypeCoins, Amount: 100})

	status, _ := doJSON(t, app, http.MethodPatch, "/quests/"+quest.ID+"/complete", nil)
	require.Equal(t, http.StatusOK, status)

	status, env := doJSON(t, app, http.MethodPatch, "/quests/"+quest.ID+"/complete", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "quest already completed", env.Error.Message)

	got := reloadUser(t, db, user.ID)
	assert.Equal(t, 1100, got.Coins)
}

func TestSubQuestClaim_RequiresCompletion(t *testing.T) {
	db := newTestDB(t)
	app := setupQuestApp(db)
	user := seedUser(t, db)
	quest := seedQuest(t, db, user.ID)

	subQuest := models.SubQuest{ID: uuid.NewString(), Name: "First step", QuestID: quest.ID}
	require.NoError(t, db.Create(&subQuest).Error)

	status, env := doJSON(t, app, http.MethodPatch, "/subquests/"+subQuest.ID+"/claim", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "subquest must be completed before claiming rewards", env.Error.Message)
}

func TestSubQuestClaim_PaysOnce(t *testing.T) {
	db := newTestDB(t)
	app := setupQuestApp(db)
	user := seedUser(t, db)
	quest := seedQuest(t, db, user.ID)

	subQuest := models.SubQuest{ID: uuid.NewString(), Name: "First step", QuestID: quest.ID}
	require.NoError(t, db.Create(&subQuest).Error)
	reward := models.Reward{ID: uuid.NewString(), Type: models.RewardTypeCoins, Amount: 75, SubQuestID: &subQuest.ID}
	require.NoError(t, db.Create(&reward).Error)

	// Completing the subquest does not pay anything yet.
	status, _ := doJSON(t, app, http.MethodPatch, "/subquests/"+subQuest.ID+"/complete", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1000, reloadUser(t, db, user.ID).Coins)

	// Claiming pays the rewards.
	status, env := doJSON(t, app, http.MethodPatch, "/subquests/"+subQuest.ID+"/claim", nil)
	require.Equal(t, http.StatusOK, status)

	var claimed models.SubQuest
	decodeData(t, env, &claimed)
	assert.True(t, claimed.Claim)
	assert.Equal(t, 1075, reloadUser(t, db, user.ID).Coins)

	// A second claim is rejected without another payout.
	status, env = doJSON(t, app, http.MethodPatch, "/subquests/"+subQuest.ID+"/claim", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "rewards already claimed", env.Error.Message)
	assert.Equal(t, 1075, reloadUser(t, db, user.ID).Coins)
}

func TestCompleteSubQuest_RepeatRejected(t *testing.T) {
	db := newTestDB(t)
	app := setupQuestApp(db)
	user := seedUser(t, db)
	quest := seedQuest(t, db, user.ID)

	subQuest := models.SubQuest{ID: uuid.NewString(), Name: "Step", QuestID: quest.ID}
	require.NoError(t, db.Create(&subQuest).Error)

	status, _ := doJSON(t, app, http.MethodPatch, "/subquests/"+subQuest.ID+"/complete", nil)
	require.Equal(t, http.StatusOK, status)

	status, env := doJSON(t, app, http.MethodPatch, "/subquests/"+subQuest.ID+"/complete", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "subquest already completed", env.Error.Message)
}
