package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/DevSujal/level-quest-backend/models"
	"github.com/DevSujal/level-quest-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

// newTestDB opens a fresh in-memory database with the full schema. Each call
// gets its own named database so parallel tests never share state; the shared
// cache keeps it alive across the pooled connections.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// One pooled connection: sqlite's shared cache rejects overlapping write
	// transactions, so concurrent requests must queue at the pool instead.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Stat{},
		&models.Task{},
		&models.Quest{},
		&models.SubQuest{},
		&models.Reward{},
		&models.DailyChallenge{},
		&models.Challenge{},
		&models.DailyReward{},
		&models.ChallengeHistory{},
		&models.Item{},
	)
	require.NoError(t, err)
	return db
}

// newTestApp builds a fiber app with the production error handler so handler
// tests observe the real response envelope.
func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: utils.ErrorHandler})
}

func seedUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := models.User{
		ID:       uuid.NewString(),
		Name:     "Test Hero",
		Email:    uuid.NewString() + "@example.com",
		Password: "hashed",
		Level:    1,
		Exp:      50,
		Health:   100,
		Coins:    1000,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func reloadUser(t *testing.T, db *gorm.DB, id string) *models.User {
	t.Helper()

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", id).Error)
	return &user
}

// envelope is the wire shape every handler responds with.
type envelope struct {
	OK      bool            `json:"ok"`
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   struct {
		Message string             `json:"message"`
		Errors  []utils.FieldError `json:"errors"`
	} `json:"error"`
}

// doJSON performs a request against the app and decodes the envelope.
func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func decodeData(t *testing.T, env envelope, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func decodeBody(r io.Reader, out interface{}) error {
	return json.NewDecoder(r).Decode(out)
}
