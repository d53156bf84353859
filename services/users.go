package services

import (
	"time"

	"github.com/DevSujal/level-quest-backend/models"
	"github.com/DevSujal/level-quest-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	DB     *gorm.DB
	Tokens *TokenManager
}

func NewUserService(db *gorm.DB, tokens *TokenManager) *UserService {
	return &UserService{DB: db, Tokens: tokens}
}

func (s *UserService) Register(c *fiber.Ctx) error {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.NewApiError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return utils.NewApiError(fiber.StatusBadRequest,
			"name, email, and password are required", "name", "email", "password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.NewApiError(fiber.StatusInternalServerError, "failed to hash password")
	}

	user := models.User{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
		Level:    1,
		Exp:      50,
		Health:   100,
		Coins:    1000,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		if apiErr := utils.FromDB(err, "User not found"); apiErr.Status == fiber.StatusConflict {
			return utils.NewApiError(fiber.StatusConflict, "user with this email already exists", "email")
		}
		return utils.FromDB(err, "User not found")
	}
	return utils.Success(c, fiber.StatusCreated, user, "User registered successfully")
}

func (s *UserService) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.NewApiError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return utils.NewApiError(fiber.StatusBadRequest, "email and password are required", "email", "password")
	}

	var user models.User
	if err := s.DB.First(&user, "email = ?", req.Email).Error; err != nil {
		return utils.NewApiError(fiber.StatusUnauthorized, "invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return utils.NewApiError(fiber.StatusUnauthorized, "invalid email or password")
	}

	accessToken, refreshToken, err := s.Tokens.Generate(&user)
	if err != nil {
		return utils.NewApiError(fiber.StatusInternalServerError, "failed to generate tokens")
	}
	if err := s.DB.Model(&user).UpdateColumn("refresh_token", refreshToken).Error; err != nil {
		return utils.FromDB(err, "User not found")
	}

	s.setAuthCookies(c, accessToken, refreshToken)
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"user":         user,
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	}, "Logged in successfully")
}

// RefreshAccessToken rotates the token pair. The presented refresh token must
// both verify and match the one stored on the user row, so a stolen token dies
// as soon as the owner refreshes.
func (s *UserService) RefreshAccessToken(c *fiber.Ctx) error {
	tokenStr := c.Cookies("refreshToken")
	if tokenStr == "" {
		return utils.NewApiError(fiber.StatusUnauthorized, "refresh token missing")
	}

	claims, err := s.Tokens.ValidateRefreshToken(tokenStr)
	if err != nil {
		return utils.NewApiError(fiber.StatusUnauthorized, "invalid refresh token")
	}

	var user models.User
	if err := s.DB.First(&user, "id = ?", claims.UserID).Error; err != nil {
		return utils.NewApiError(fiber.StatusUnauthorized, "invalid refresh token")
	}
	if user.RefreshToken != tokenStr {
		return utils.NewApiError(fiber.StatusUnauthorized, "refresh token has been revoked")
	}

	accessToken, refreshToken, err := s.Tokens.Generate(&user)
	if err != nil {
		return utils.NewApiError(fiber.StatusInternalServerError, "failed to generate tokens")
	}
	if err := s.DB.Model(&user).UpdateColumn("refresh_token", refreshToken).Error; err != nil {
		return utils.FromDB(err, "User not found")
	}

	s.setAuthCookies(c, accessToken, refreshToken)
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	}, "Access token refreshed successfully")
}

func (s *UserService) Logout(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	if err := s.DB.Model(user).UpdateColumn("refresh_token", "").Error; err != nil {
		return utils.FromDB(err, "User not found")
	}

	s.clearAuthCookies(c)
	return utils.Success(c, fiber.StatusOK, nil, "Logged out successfully")
}

func (s *UserService) UpdateProfile(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var req struct {
		Name            *string `json:"name"`
		Job             *string `json:"job"`
		About           *string `json:"about"`
		Strength        *string `json:"strength"`
		Weakness        *string `json:"weakness"`
		MasterObjective *string `json:"masterObjective"`
		MinorObjective  *string `json:"minorObjective"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.NewApiError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Job != nil {
		user.Job = *req.Job
	}
	if req.About != nil {
		user.About = *req.About
	}
	if req.Strength != nil {
		user.Strength = *req.Strength
	}
	if req.Weakness != nil {
		user.Weakness = *req.Weakness
	}
	if req.MasterObjective != nil {
		user.MasterObjective = *req.MasterObjective
	}
	if req.MinorObjective != nil {
		user.MinorObjective = *req.MinorObjective
	}
	if err := s.DB.Save(user).Error; err != nil {
		return utils.FromDB(err, "User not found")
	}
	return utils.Success(c, fiber.StatusOK, user, "Profile updated successfully")
}

func (s *UserService) UpdatePassword(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var req struct {
		PrevPassword string `json:"prevPassword"`
		NewPassword  string `json:"newPassword"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.NewApiError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.PrevPassword == "" || req.NewPassword == "" {
		return utils.NewApiError(fiber.StatusBadRequest,
			"prevPassword and newPassword are required", "prevPassword", "newPassword")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.PrevPassword)); err != nil {
		return utils.NewApiError(fiber.StatusBadRequest, "previous password is incorrect", "prevPassword")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return utils.NewApiError(fiber.StatusInternalServerError, "failed to hash password")
	}
	if err := s.DB.Model(user).UpdateColumn("password", string(hash)).Error; err != nil {
		return utils.FromDB(err, "User not found")
	}
	return utils.Success(c, fiber.StatusOK, nil, "Password updated successfully")
}

func (s *UserService) GetUserDetails(c *fiber.Ctx) error {
	var user models.User
	if err := s.DB.First(&user, "id = ?", c.Params("userId")).Error; err != nil {
		return utils.FromDB(err, "User not found")
	}
	return utils.Success(c, fiber.StatusOK, user, "User details retrieved successfully")
}

// UploadProfilePic stores the avatar on R2 when configured, otherwise under
// the local uploads dir, and records the resulting URL on the user.
func (s *UserService) UploadProfilePic(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	fileHeader, err := c.FormFile("profilePic")
	if err != nil {
		return utils.NewApiError(fiber.StatusBadRequest, "profilePic file is required", "profilePic")
	}

	key := utils.ObjectKey("avatars", user.Name, fileHeader.Filename)

	var url string
	if utils.R2Enabled() {
		url, err = utils.UploadFileToR2(fileHeader, key)
		if err != nil {
			return utils.NewApiError(fiber.StatusInternalServerError, "failed to upload profile picture")
		}
	} else {
		path := utils.UploadPath(key)
		if err := utils.SaveFile(fileHeader, path); err != nil {
			return utils.NewApiError(fiber.StatusInternalServerError, "failed to save profile picture")
		}
		url = "/" + path
	}

	if err := s.DB.Model(user).UpdateColumn("profile_pic", url).Error; err != nil {
		return utils.FromDB(err, "User not found")
	}
	user.ProfilePic = url
	return utils.Success(c, fiber.StatusOK, fiber.Map{"profilePic": url}, "Profile picture uploaded successfully")
}

func (s *UserService) setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     "accessToken",
		Value:    accessToken,
		Expires:  time.Now().Add(s.Tokens.accessTTL),
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refreshToken",
		Value:    refreshToken,
		Expires:  time.Now().Add(s.Tokens.refreshTTL),
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func (s *UserService) clearAuthCookies(c *fiber.Ctx) {
	for _, name := range []string{"accessToken", "refreshToken"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
			Secure:   true,
			SameSite: fiber.CookieSameSiteStrictMode,
		})
	}
}
