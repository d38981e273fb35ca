package controller

import (
	"github.com/alimikegami/refurbished-store/storefront-service/internal/service"
	"github.com/alimikegami/refurbished-store/storefront-service/pkg/response"
	"github.com/labstack/echo/v4"
)

type SeedController struct {
	service service.SeedService
}

func CreateSeedController(g *echo.Group, service service.SeedService, seedSecret echo.MiddlewareFunc) {
	c := SeedController{
		service: service,
	}

	g.POST("/seed", c.SeedCatalog, seedSecret)
	g.DELETE("/seed", c.ClearCatalog, seedSecret)
	g.GET("/seed/status", c.GetSeedStatus)
}

func (c *SeedController) SeedCatalog(e echo.Context) error {
	resp, err := c.service.SeedCatalog(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Database seeded successfully", resp)
}

func (c *SeedController) ClearCatalog(e echo.Context) error {
	resp, err := c.service.ClearCatalog(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Products cleared", resp)
}

func (c *SeedController) GetSeedStatus(e echo.Context) error {
	resp, err := c.service.GetSeedStatus(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}
