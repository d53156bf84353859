package services

import (
	"strings"

	"github.com/DevSujal/level-quest-backend/models"
	"github.com/DevSujal/level-quest-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

type ItemService struct {
	DB *gorm.DB
}

func NewItemService(db *gorm.DB) *ItemService {
	return &ItemService{DB: db}
}

var upperCaser = cases.Upper(language.Und)

// normalizeItemType canonicalizes the free-text item type, e.g.
// "magical item" -> "MAGICAL ITEM".
func normalizeItemType(t string) string {
	return upperCaser.String(strings.TrimSpace(t))
}

func (s *ItemService) CreateItem(c *fiber.Ctx) error {
	var req struct {
		Name          string  `json:"name"`
		Description   string  `json:"description"`
		Price         *int    `json:"price"`
		Image         string  `json:"image"`
		Type          string  `json:"type"`
		Amount        *int    `json:"amount"`
		AttributeName string  `json:"attribute_name"`
		UserID        *string `json:"userId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.NewApiError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" || req.Description == "" || req.Price == nil || req.Type == "" || req.Amount == nil {
		return utils.NewApiError(fiber.StatusBadRequest,
			"name, description, price, type, and amount are required",
			"name", "description", "price", "type", "amount")
	}

	item := models.Item{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Description:   req.Description,
		Price:         *req.Price,
		Image:         req.Image,
		Type:          normalizeItemType(req.Type),
		Amount:        *req.Amount,
		AttributeName: req.AttributeName,
		UserID:        req.UserID,
	}
	if err := s.DB.Create(&item).Error; err != nil {
		return utils.FromDB(err, "item not found")
	}
	return utils.Success(c, fiber.StatusCreated, item, "Item created successfully")
}

// GetStoreItems lists the catalog: items owned by nobody.
func (s *ItemService) GetStoreItems(c *fiber.Ctx) error {
	var items []models.Item
	if err := s.DB.Where("user_id IS NULL").Order("price ASC").Find(&items).Error; err != nil {
		return utils.FromDB(err, "items not found")
	}
	return utils.Success(c, fiber.StatusOK, items, "Store items retrieved successfully")
}

func (s *ItemService) GetUserItems(c *fiber.Ctx) error {
	var items []models.Item
	err := s.DB.Where("user_id = ?", c.Params("userId")).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return utils.FromDB(err, "items not found")
	}
	return utils.Success(c, fiber.StatusOK, items, "User items retrieved successfully")
}

func (s *ItemService) GetItemByID(c *fiber.Ctx) error {
	var item models.Item
	if err := s.DB.First(&item, "id = ?", c.Params("itemId")).Error; err != nil {
		return utils.FromDB(err, "Item not found")
	}
	return utils.Success(c, fiber.StatusOK, item, "Item retrieved successfully")
}

func (s *ItemService) UpdateItem(c *fiber.Ctx) error {
	var req struct {
		Name          *string `json:"name"`
		Description   *string `json:"description"`
		Price         *int    `json:"price"`
		Image         *string `json:"image"`
		Type          *string `json:"type"`
		Amount        *int    `json:"amount"`
		Claimed       *bool   `json:"claimed"`
		AttributeName *string `json:"attribute_name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.NewApiError(fiber.StatusBadRequest, "invalid request body")
	}

	var item models.Item
	if err := s.DB.First(&item, "id = ?", c.Params("itemId")).Error; err != nil {
		return utils.FromDB(err, "Item not found")
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Image != nil {
		item.Image = *req.Image
	}
	if req.Type != nil {
		item.Type = normalizeItemType(*req.Type)
	}
	if req.Amount != nil {
		item.Amount = *req.Amount
	}
	if req.Claimed != nil {
		item.Claimed = *req.Claimed
	}
	if req.AttributeName != nil {
		item.AttributeName = *req.AttributeName
	}
	if err := s.DB.Save(&item).Error; err != nil {
		return utils.FromDB(err, "Item not found")
	}
	return utils.Success(c, fiber.StatusOK, item, "Item updated successfully")
}

func (s *ItemService) DeleteItem(c *fiber.Ctx) error {
	if err := s.DB.Delete(&models.Item{}, "id = ?", c.Params("itemId")).Error; err != nil {
		return utils.FromDB(err, "Item not found")
	}
	return utils.Success(c, fiber.StatusOK, nil, "Item deleted successfully")
}

// PurchaseItem clones a catalog item into the buyer's inventory and debits
// the price. The conditional debit ("coins >= price") and the clone run in
// one transaction, so coins are never taken without the item landing, and a
// broke or concurrent buyer is rejected without side effects.
func (s *ItemService) PurchaseItem(c *fiber.Ctx) error {
	itemID := c.Params("itemId")
	var req struct {
		UserID string `json:"userId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.NewApiError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.UserID == "" {
		return utils.NewApiError(fiber.StatusBadRequest, "userId is required", "userId")
	}

	var purchased models.Item
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var storeItem models.Item
		if err := tx.First(&storeItem, "id = ?", itemID).Error; err != nil {
			return utils.FromDB(err, "Item not found")
		}
		if storeItem.UserID != nil {
			return utils.NewApiError(fiber.StatusBadRequest, "item is not available for purchase")
		}

		res := tx.Model(&models.User{}).
			Where("id = ? AND coins >= ?", req.UserID, storeItem.Price).
			UpdateColumn("coins", gorm.Expr("coins - ?", storeItem.Price))
		if res.Error != nil {
			return utils.FromDB(res.Error, "User not found")
		}
		if res.RowsAffected == 0 {
			var user models.User
			if err := tx.First(&user, "id = ?", req.UserID).Error; err != nil {
				return utils.FromDB(err, "User not found")
			}
			return utils.NewApiError(fiber.StatusBadRequest, "insufficient coins")
		}

		purchased = models.Item{
			ID:            uuid.NewString(),
			Name:          storeItem.Name,
			Description:   storeItem.Description,
			Price:         storeItem.Price,
			Image:         storeItem.Image,
			Type:          storeItem.Type,
			Amount:        storeItem.Amount,
			AttributeName: storeItem.AttributeName,
			UserID:        &req.UserID,
		}
		return tx.Create(&purchased).Error
	})
	if err != nil {
		if apiErr, ok := err.(*utils.ApiError); ok {
			return apiErr
		}
		return utils.FromDB(err, "Item not found")
	}
	return utils.Success(c, fiber.StatusCreated, purchased, "Item purchased successfully")
}

// UseItem consumes an owned item. The conditional claimed-flag update is the
// single-use guard; magical items additionally credit the owner's attribute.
// An unrecognized attribute still consumes the item, matching store policy.
func (s *ItemService) UseItem(c *fiber.Ctx) error {
	itemID := c.Params("itemId")

	var item models.Item
	var user *models.User
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, "id = ?", itemID).Error; err != nil {
			return utils.FromDB(err, "Item not found")
		}
		if item.UserID == nil {
			return utils.NewApiError(fiber.StatusBadRequest, "item is not owned by anyone")
		}

		res := tx.Model(&models.Item{}).
			Where("id = ? AND claimed = ?", itemID, false).
			UpdateColumn("claimed", true)
		if res.Error != nil {
			return utils.FromDB(res.Error, "Item not found")
		}
		if res.RowsAffected == 0 {
			return utils.NewApiError(fiber.StatusBadRequest, "item already used")
		}
		item.Claimed = true

		if item.Type == models.ItemTypeMagical && item.AttributeName != "" {
			var column string
			switch strings.ToLower(item.AttributeName) {
			case models.AttributeHealth:
				column = "health"
			case models.AttributeCoins:
				column = "coins"
			case models.AttributeExperience:
				column = "exp"
			}
			if column != "" {
				if err := incrementUserField(tx, *item.UserID, column, item.Amount); err != nil {
					return utils.FromDB(err, "User not found")
				}
				var owner models.User
				if err := tx.First(&owner, "id = ?", *item.UserID).Error; err != nil {
					return utils.FromDB(err, "User not found")
				}
				user = &owner
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"item": item,
		"user": user,
	}, "Item used successfully")
}
