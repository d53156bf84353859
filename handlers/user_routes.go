// handlers/user_routes.go
package handlers

import (
	"github.com/DevSujal/level-quest-backend/middleware"
	"github.com/DevSujal/level-quest-backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupUserRoutes(api fiber.Router, db *gorm.DB, userService *services.UserService) {
	users := api.Group("/users")

	// Public routes
	users.Post("/register", userService.Register)
	users.Post("/login", userService.Login)
	users.Post("/refresh-access-token", userService.RefreshAccessToken)
	users.Get("/get-user-details/:userId", userService.GetUserDetails)

	// Secured routes
	secured := users.Group("/", middleware.RequireAuth(db, userService.Tokens))
	secured.Put("/update-profile", userService.UpdateProfile)
	secured.Put("/update-password", userService.UpdatePassword)
	secured.Get("/logout", userService.Logout)
	secured.Post("/upload-profile-pic", userService.UploadProfilePic)
}
