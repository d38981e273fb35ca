package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountEquals(t *testing.T) {
	assert.True(t, AmountEquals("130.80", 130.8))
	assert.True(t, AmountEquals("1199", 1199))
	assert.True(t, AmountEquals("0.30", 0.1+0.2))
	assert.False(t, AmountEquals("130.81", 130.8))
	assert.False(t, AmountEquals("not-a-number", 130.8))
	assert.False(t, AmountEquals("", 0))
}

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, 12.35, RoundMoney(decimal.RequireFromString("12.345")))
	assert.Equal(t, 10.0, RoundMoney(decimal.NewFromInt(10)))
}

func TestCreateAndExtractToken(t *testing.T) {
	secret := "secret"
	signed, err := CreateJWTToken(TokenUser{UserID: "abc", ExternalID: "ext", Name: "Ada", IsAdmin: true}, secret, time.Hour)
	require.NoError(t, err)

	parsed, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.Set("user", parsed)

	user, err := ExtractTokenUser(c)
	require.NoError(t, err)
	assert.Equal(t, "abc", user.UserID)
	assert.Equal(t, "ext", user.ExternalID)
	assert.True(t, user.IsAdmin)

	c.Set("user", nil)
	_, err = ExtractTokenUser(c)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
