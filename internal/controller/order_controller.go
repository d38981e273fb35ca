package controller

import (
	"github.com/alimikegami/refurbished-store/storefront-service/internal/dto"
	"github.com/alimikegami/refurbished-store/storefront-service/internal/middleware"
	"github.com/alimikegami/refurbished-store/storefront-service/internal/service"
	pkgdto "github.com/alimikegami/refurbished-store/storefront-service/pkg/dto"
	"github.com/alimikegami/refurbished-store/storefront-service/pkg/errs"
	"github.com/alimikegami/refurbished-store/storefront-service/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type OrderController struct {
	service service.OrderService
}

func CreateOrderController(g *echo.Group, service service.OrderService, isLoggedIn, isAdmin echo.MiddlewareFunc) {
	c := OrderController{
		service: service,
	}

	g.POST("/orders", c.AddOrder, isLoggedIn)
	g.GET("/orders", c.GetOrders, isLoggedIn, isAdmin)
	g.GET("/orders/mine", c.GetMyOrders, isLoggedIn)
	g.GET("/orders/:id", c.GetOrderByID, isLoggedIn)
	g.PUT("/orders/:id/pay", c.PayOrder, isLoggedIn)
	g.PUT("/orders/:id/deliver", c.DeliverOrder, isLoggedIn, isAdmin)
}

func (c *OrderController) AddOrder(e echo.Context) error {
	payload := dto.OrderRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "AddOrder").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	user, _ := middleware.CurrentUser(e)

	resp, err := c.service.AddOrder(e.Request().Context(), user, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "successfully created order", resp)
}

func (c *OrderController) GetOrders(e echo.Context) error {
	filter := pkgdto.Filter{}
	err := e.Bind(&filter)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "GetOrders").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	resp, err := c.service.GetOrders(e.Request().Context(), filter)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "successfully retrieved orders", resp)
}

func (c *OrderController) GetMyOrders(e echo.Context) error {
	user, _ := middleware.CurrentUser(e)

	resp, err := c.service.GetMyOrders(e.Request().Context(), user)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "successfully retrieved orders", resp)
}

func (c *OrderController) GetOrderByID(e echo.Context) error {
	user, _ := middleware.CurrentUser(e)

	resp, err := c.service.GetOrderByID(e.Request().Context(), user, e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "successfully retrieved order", resp)
}

func (c *OrderController) PayOrder(e echo.Context) error {
	payload := dto.PayOrderRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "PayOrder").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	user, _ := middleware.CurrentUser(e)

	resp, err := c.service.PayOrder(e.Request().Context(), user, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Order paid", resp)
}

func (c *OrderController) DeliverOrder(e echo.Context) error {
	resp, err := c.service.DeliverOrder(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Order delivered", resp)
}
