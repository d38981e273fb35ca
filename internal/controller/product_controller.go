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

type ProductController struct {
	service service.ProductService
}

func CreateProductController(g *echo.Group, service service.ProductService, isLoggedIn, isAdmin echo.MiddlewareFunc) {
	c := ProductController{
		service: service,
	}

	g.GET("/products", c.GetProducts)
	g.GET("/products/top", c.GetTopProducts)
	g.GET("/products/:id", c.GetProductByID)
	g.POST("/products", c.CreateProduct, isLoggedIn, isAdmin)
	g.PUT("/products/:id", c.UpdateProduct, isLoggedIn, isAdmin)
	g.DELETE("/products/:id", c.DeleteProduct, isLoggedIn, isAdmin)
	g.POST("/products/:id/reviews", c.AddReview, isLoggedIn)
}

func (c *ProductController) GetProducts(e echo.Context) error {
	filter := pkgdto.Filter{}
	err := e.Bind(&filter)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "GetProducts").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	resp, err := c.service.GetProducts(e.Request().Context(), filter)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "successfully retrieved products", resp)
}

func (c *ProductController) GetTopProducts(e echo.Context) error {
	resp, err := c.service.GetTopProducts(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "successfully retrieved top products", resp)
}

func (c *ProductController) GetProductByID(e echo.Context) error {
	resp, err := c.service.GetProductByID(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "successfully retrieved product", resp)
}

func (c *ProductController) CreateProduct(e echo.Context) error {
	user, _ := middleware.CurrentUser(e)

	resp, err := c.service.CreateSampleProduct(e.Request().Context(), user)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "successfully created product", resp)
}

func (c *ProductController) UpdateProduct(e echo.Context) error {
	payload := dto.ProductRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "UpdateProduct").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	resp, err := c.service.UpdateProduct(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "successfully updated product", resp)
}

func (c *ProductController) DeleteProduct(e echo.Context) error {
	err := c.service.DeleteProduct(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Product removed", nil)
}

func (c *ProductController) AddReview(e echo.Context) error {
	payload := dto.ReviewRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "AddReview").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	user, _ := middleware.CurrentUser(e)

	err = c.service.AddReview(e.Request().Context(), user, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "Review added", nil)
}
