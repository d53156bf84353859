// middleware/auth.go
package middleware

import (
	"strings"

	"github.com/DevSujal/level-quest-backend/models"
	"github.com/DevSujal/level-quest-backend/services"
	"github.com/DevSujal/level-quest-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RequireAuth validates the access token (cookie first, then the
// Authorization header) and attaches the loaded user to ctx locals.
func RequireAuth(db *gorm.DB, tokens *services.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Cookies("accessToken")
		if tokenStr == "" {
			authHeader := c.Get("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				tokenStr = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}
		if tokenStr == "" {
			return utils.NewApiError(fiber.StatusUnauthorized, "access token missing")
		}

		claims, err := tokens.ValidateAccessToken(tokenStr)
		if err != nil {
			return utils.NewApiError(fiber.StatusUnauthorized, "invalid or expired access token")
		}

		var user models.User
		if err := db.First(&user, "id = ?", claims.UserID).Error; err != nil {
			return utils.NewApiError(fiber.StatusUnauthorized, "user no longer exists")
		}

		c.Locals("user", &user)
		c.Locals("user_id", user.ID)
		return c.Next()
	}
}
