package middleware

import (
	"crypto/subtle"

	"github.com/alimikegami/refurbished-store/storefront-service/pkg/errs"
	"github.com/alimikegami/refurbished-store/storefront-service/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const SeedSecretHeader = "X-Seed-Secret"

func SeedSecret(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if secret == "" {
				log.Ctx(c.Request().Context()).Error().Str("component", "SeedSecret").Msg("SEED_SECRET is not set")
				return response.WriteErrorResponse(c, errs.ErrSeedNotConfigured, nil)
			}

			provided := c.Request().Header.Get(SeedSecretHeader)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
				return response.WriteErrorResponse(c, errs.ErrInvalidSeedSecret, nil)
			}

			return next(c)
		}
	}
}
