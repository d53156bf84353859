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

func setupDailyApp(db *gorm.DB) *fiber.App {
	app := newTestApp()
	svc := NewDailyChallengeService(db)
	app.Post("/daily-challenges/create", svc.CreateDailyChallenge)
	app.Get("/daily-challenges/user/:userId", svc.GetUserDailyChallenges)
	app.Get("/daily-challenges/:dailyChallengeId", svc.GetDailyChallengeByID)
	app.Patch("/daily-challenges/:dailyChallengeId/claim", svc.ClaimDailyRewards)
	app.Patch("/challenges/:challengeId/complete", svc.CompleteChallenge)
	return app
}

func seedDaily(t *testing.T, db *gorm.DB, userID string) *models.DailyChallenge {
	t.Helper()

	daily := models.DailyChallenge{ID: uuid.NewString(), Date: time.Now(), UserID: userID}
	require.NoError(t, db.Create(&daily).Error)
	return &daily
}

func seedChallenge(t *testing.T, db *gorm.DB, dailyID, skill string) *models.Challenge {
	t.Helper()

	challenge := models.Challenge{
		ID:          uuid.NewString(),
		Name:        "Morning run",
		Description: "Run five kilometers",
		Skill:       skill,
		DailyID:     dailyID,
	}
	require.NoError(t, db.Create(&challenge).Error)
	return &challenge
}

func TestCreateDailyChallenge_Inline(t *testing.T) {
	db := newTestDB(t)
	app := setupDailyApp(db)
	user := seedUser(t, db)

	status, env := doJSON(t, app, http.MethodPost, "/daily-challenges/create", fiber.Map{
		"date":   time.Now(),
		"userId": user.ID,
		"challenges": []fiber.Map{
			{"name": "Meditate", "description": "Ten quiet minutes", "skill": "focus"},
			{"name": "Stretch", "description": "Full routine"},
		},
		"rewards": []fiber.Map{
			{"type": "COINS", "amount": 50},
			{"type": "EXPERIENCE", "amount": 20},
		},
	})
	require.Equal(t, http.StatusCreated, status)

	var daily models.DailyChallenge
	decodeData(t, env, &daily)
	assert.Len(t, daily.Challenges, 2)
	assert.Len(t, daily.Rewards, 2)
	assert.Nil(t, daily.ClaimedDate)
}

func TestCompleteChallenge_PaysSkillBonus(t *testing.T) {
	db := newTestDB(t)
	app := setupDailyApp(db)
	user := seedUser(t, db)
	daily := seedDaily(t, db, user.ID)
	challenge := seedChallenge(t, db, daily.ID, "fitness")

	status, env := doJSON(t, app, http.MethodPatch, "/challenges/"+challenge.ID+"/complete", nil)
	require.Equal(t, http.StatusOK, status)

	var completed models.Challenge
	decodeData(t, env, &completed)
	assert.True(t, completed.Completed)

	var stat models.Stat
	require.NoError(t, db.Where("user_id = ? AND skill = ?", user.ID, "fitness").First(&stat).Error)
	assert.Equal(t, ChallengeSkillBonus, stat.Value)

	// Repeat completion is rejected and the bonus stays single.
	status, _ = doJSON(t, app, http.MethodPatch, "/challenges/"+challenge.ID+"/complete", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	require.NoError(t, db.Where("user_id = ? AND skill = ?", user.ID, "fitness").First(&stat).Error)
	assert.Equal(t, ChallengeSkillBonus, stat.Value)
}

func TestCompleteChallenge_NoSkillNoStat(t *testing.T) {
	db := newTestDB(t)
	app := setupDailyApp(db)
	user := seedUser(t, db)
	daily := seedDaily(t, db, user.ID)
	challenge := seedChallenge(t, db, daily.ID, "")

	status, _ := doJSON(t, app, http.MethodPatch, "/challenges/"+challenge.ID+"/complete", nil)
	require.Equal(t, http.StatusOK, status)

	var count int64
	require.NoError(t, db.Model(&models.Stat{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestClaimDailyRewards_RequiresAllChallengesCompleted(t *testing.T) {
	db := newTestDB(t)
	app := setupDailyApp(db)
	user := seedUser(t, db)
	daily := seedDaily(t, db, user.ID)
	seedChallenge(t, db, daily.ID, "")
	reward := models.DailyReward{ID: uuid.NewString(), Type: models.RewardTypeCoins, Amount: 50, DailyID: daily.ID}
	require.NoError(t, db.Create(&reward).Error)

	status, env := doJSON(t, app, http.MethodPatch, "/daily-challenges/"+daily.ID+"/claim", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "all challenges must be completed before claiming rewards", env.Error.Message)
	assert.Equal(t, 1000, reloadUser(t, db, user.ID).Coins)
}

func TestClaimDailyRewards_PaysOnce(t *testing.T) {
	db := newTestDB(t)
	app := setupDailyApp(db)
	user := seedUser(t, db)
	daily := seedDaily(t, db, user.ID)

	challenge := seedChallenge(t, db, daily.ID, "")
	require.NoError(t, db.Model(&models.Challenge{}).Where("id = ?", challenge.ID).
		UpdateColumn("completed", true).Error)

	for _, r := range []models.DailyReward{
		{ID: uuid.NewString(), Type: models.RewardTypeCoins, Amount: 50, DailyID: daily.ID},
		{ID: uuid.NewString(), Type: models.RewardTypeExperience, Amount: 20, DailyID: daily.ID},
	} {
		require.NoError(t, db.Create(&r).Error)
	}

	status, env := doJSON(t, app, http.MethodPatch, "/daily-challenges/"+daily.ID+"/claim", nil)
	require.Equal(t, http.StatusOK, status)

	var claimed models.DailyChallenge
	decodeData(t, env, &claimed)
	assert.NotNil(t, claimed.ClaimedDate)

	got := reloadUser(t, db, user.ID)
	assert.Equal(t, 1050, got.Coins)
	assert.Equal(t, 70, got.Exp)

	// Second claim is rejected without another payout.
	status, env = doJSON(t, app, http.MethodPatch, "/daily-challenges/"+daily.ID+"/claim", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "rewards already claimed", env.Error.Message)

	got = reloadUser(t, db, user.ID)
	assert.Equal(t, 1050, got.Coins)
	assert.Equal(t, 70, got.Exp)
}

func TestSnapshotYesterday_WritesHistoryOnce(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	svc := NewDailyChallengeService(db)

	yesterday := time.Now().AddDate(0, 0, -1)
	claimed := time.Now()
	dailyClaimed := models.DailyChallenge{
		ID: uuid.NewString(), Date: yesterday, ClaimedDate: &claimed, UserID: user.ID,
	}
	dailyUnclaimed := models.DailyChallenge{ID: uuid.NewString(), Date: yesterday, UserID: user.ID}
	require.NoError(t, db.Create(&dailyClaimed).Error)
	require.NoError(t, db.Create(&dailyUnclaimed).Error)

	svc.SnapshotYesterday(time.Now())

	var claimedHistory models.ChallengeHistory
	require.NoError(t, db.Where("daily_id = ?", dailyClaimed.ID).First(&claimedHistory).Error)
	assert.True(t, claimedHistory.RewardsClaimed)

	var unclaimedHistory models.ChallengeHistory
	require.NoError(t, db.Where("daily_id = ?", dailyUnclaimed.ID).First(&unclaimedHistory).Error)
	assert.False(t, unclaimedHistory.RewardsClaimed)

	// Running again does not duplicate snapshots.
	svc.SnapshotYesterday(time.Now())

	var count int64
	require.NoError(t, db.Model(&models.ChallengeHistory{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}
