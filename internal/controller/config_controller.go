package controller

import (
	"github.com/alimikegami/refurbished-store/storefront-service/internal/dto"
	"github.com/alimikegami/refurbished-store/storefront-service/pkg/response"
	"github.com/labstack/echo/v4"
)

// CreateConfigController exposes client-side settings the storefront needs
// before checkout.
func CreateConfigController(g *echo.Group, paypalClientID string) {
	g.GET("/config/paypal", func(e echo.Context) error {
		return response.WriteSuccessResponse(e, "", dto.PayPalConfigResponse{ClientID: paypalClientID})
	})
}
