package controller

import (
	"github.com/alimikegami/refurbished-store/storefront-service/internal/service"
	"github.com/alimikegami/refurbished-store/storefront-service/pkg/response"
	"github.com/labstack/echo/v4"
)

type InventoryController struct {
	service service.InventoryService
}

func CreateInventoryController(g *echo.Group, service service.InventoryService, isLoggedIn, isAdmin echo.MiddlewareFunc) {
	c := InventoryController{
		service: service,
	}

	inventory := g.Group("/inventory", isLoggedIn, isAdmin)
	inventory.POST("/sync", c.SyncInventory)
	inventory.GET("/status", c.GetInventoryStatus)
}

func (c *InventoryController) SyncInventory(e echo.Context) error {
	resp, err := c.service.SyncInventory(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Inventory sync completed", resp)
}

func (c *InventoryController) GetInventoryStatus(e echo.Context) error {
	resp, err := c.service.GetInventoryStatus(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "successfully retrieved inventory status", resp)
}
