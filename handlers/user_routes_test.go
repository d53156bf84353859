package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DevSujal/level-quest-backend/models"
	"github.com/DevSujal/level-quest-backend/services"
	"github.com/DevSujal/level-quest-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupUserRoutes(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:userroutes?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	tokens := services.NewTokenManager("access-secret", "refresh-secret")
	userService := services.NewUserService(db, tokens)

	app := fiber.New(fiber.Config{ErrorHandler: utils.ErrorHandler})
	api := app.Group("/api/v1")
	SetupUserRoutes(api, db, userService)
	return app, db
}

// User details are readable without a session; profile mutation is not.
func TestUserRoutes_UserDetailsIsPublic(t *testing.T) {
	app, db := setupUserRoutes(t)

	user := models.User{
		ID:       uuid.NewString(),
		Name:     "Visible Hero",
		Email:    uuid.NewString() + "@example.com",
		Password: "hashed",
	}
	require.NoError(t, db.Create(&user).Error)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/get-user-details/"+user.ID, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUserRoutes_ProfileUpdateRequiresAuth(t *testing.T) {
	app, _ := setupUserRoutes(t)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/users/update-profile", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
