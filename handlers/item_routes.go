// handlers/item_routes.go
package handlers

import (
	"github.com/DevSujal/level-quest-backend/services"

	"github.com/gofiber/fiber/v2"
)

func SetupItemRoutes(api fiber.Router, auth fiber.Handler, itemService *services.ItemService) {
	items := api.Group("/items", auth)

	items.Post("/create", itemService.CreateItem)
	items.Get("/store", itemService.GetStoreItems)
	items.Get("/user/:userId", itemService.GetUserItems)
	items.Get("/:itemId", itemService.GetItemByID)
	items.Put("/:itemId", itemService.UpdateItem)
	items.Delete("/:itemId", itemService.DeleteItem)
	items.Post("/:itemId/purchase", itemService.PurchaseItem)
	items.Patch("/:itemId/use", itemService.UseItem)
}
