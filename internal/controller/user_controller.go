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

type UserController struct {
	service service.UserService
}

func CreateUserController(g *echo.Group, service service.UserService, isLoggedIn, isAdmin echo.MiddlewareFunc) {
	c := UserController{
		service: service,
	}

	g.POST("/users/register", c.Register)
	g.POST("/users/login", c.Login)
	g.GET("/users/profile", c.GetProfile, isLoggedIn)
	g.PUT("/users/profile", c.UpdateProfile, isLoggedIn)
	g.GET("/users", c.GetUsers, isLoggedIn, isAdmin)
	g.GET("/users/:id", c.GetUserByID, isLoggedIn, isAdmin)
	g.PUT("/users/:id", c.UpdateUser, isLoggedIn, isAdmin)
	g.DELETE("/users/:id", c.DeleteUser, isLoggedIn, isAdmin)
}

func (c *UserController) Register(e echo.Context) error {
	payload := dto.UserRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "Register").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	resp, err := c.service.Register(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "successfully registered", resp)
}

func (c *UserController) Login(e echo.Context) error {
	payload := dto.UserRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "Login").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	resp, err := c.service.Login(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "successfully logged in", resp)
}

func (c *UserController) GetProfile(e echo.Context) error {
	user, _ := middleware.CurrentUser(e)

	resp, err := c.service.GetProfile(e.Request().Context(), user)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "successfully retrieved profile", resp)
}

func (c *UserController) UpdateProfile(e echo.Context) error {
	payload := dto.UserRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "UpdateProfile").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	user, _ := middleware.CurrentUser(e)

	resp, err := c.service.UpdateProfile(e.Request().Context(), user, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "successfully updated profile", resp)
}

func (c *UserController) GetUsers(e echo.Context) error {
	filter := pkgdto.Filter{}
	err := e.Bind(&filter)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "GetUsers").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	resp, err := c.service.GetUsers(e.Request().Context(), filter)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "successfully retrieved users", resp)
}

func (c *UserController) GetUserByID(e echo.Context) error {
	resp, err := c.service.GetUserByID(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "successfully retrieved user", resp)
}

func (c *UserController) UpdateUser(e echo.Context) error {
	payload := dto.AdminUserUpdateRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "UpdateUser").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	resp, err := c.service.UpdateUser(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "successfully updated user", resp)
}

func (c *UserController) DeleteUser(e echo.Context) error {
	err := c.service.DeleteUser(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "User removed", nil)
}
