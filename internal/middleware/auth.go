package middleware

import (
	"errors"

	"github.com/alimikegami/refurbished-store/storefront-service/internal/domain"
	"github.com/alimikegami/refurbished-store/storefront-service/internal/repository"
	"github.com/alimikegami/refurbished-store/storefront-service/pkg/errs"
	"github.com/alimikegami/refurbished-store/storefront-service/pkg/response"
	"github.com/alimikegami/refurbished-store/storefront-service/pkg/utils"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
)

const currentUserKey = "currentUser"

type AuthMiddleware struct {
	jwt      echo.MiddlewareFunc
	userRepo repository.UserRepository
}

func CreateAuthMiddleware(secret string, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwt: echomiddleware.JWTWithConfig(echomiddleware.JWTConfig{
			SigningKey: []byte(secret),
			ErrorHandlerWithContext: func(err error, c echo.Context) error {
				return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
			},
		}),
		userRepo: userRepo,
	}
}

// IsLoggedIn validates the bearer token and loads the account it names. A
// token for a deleted account is rejected.
func (m *AuthMiddleware) IsLoggedIn(next echo.HandlerFunc) echo.HandlerFunc {
	return m.jwt(func(c echo.Context) error {
		tokenUser, err := utils.ExtractTokenUser(c)
		if err != nil {
			return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
		}

		ctx := c.Request().Context()
		user, err := m.userRepo.GetUserByID(ctx, tokenUser.UserID)
		if err != nil {
			if errors.Is(err, errs.ErrAccountNotFound) {
				log.Ctx(ctx).Info().Str("component", "IsLoggedIn").Str("user_id", tokenUser.UserID).Msg("token for missing user")
				return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
			}
			return response.WriteErrorResponse(c, err, nil)
		}

		c.Set(currentUserKey, user)

		return next(c)
	})
}

// IsAdmin must run after IsLoggedIn.
func (m *AuthMiddleware) IsAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := CurrentUser(c)
		if !ok || !user.IsAdmin {
			return response.WriteErrorResponse(c, errs.ErrUnauthorized, nil)
		}

		return next(c)
	}
}

func CurrentUser(c echo.Context) (domain.User, bool) {
	user, ok := c.Get(currentUserKey).(domain.User)
	return user, ok
}

// SetCurrentUser is used by tests that bypass token validation.
func SetCurrentUser(c echo.Context, user domain.User) {
	c.Set(currentUserKey, user)
}
