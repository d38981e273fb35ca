package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
)

var ErrInvalidToken = errors.New("invalid token claims")

type TokenUser struct {
	UserID     string
	ExternalID string
	Name       string
	IsAdmin    bool
}

func CreateJWTToken(user TokenUser, jwtSecretKey string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{}
	claims["authorized"] = true
	claims["userID"] = user.UserID
	claims["externalID"] = user.ExternalID
	claims["name"] = user.Name
	claims["isAdmin"] = user.IsAdmin
	claims["exp"] = time.Now().Add(expiry).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(jwtSecretKey))
}

// ExtractTokenUser reads the claims the echo JWT middleware stored under "user".
func ExtractTokenUser(c echo.Context) (TokenUser, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok || !token.Valid {
		return TokenUser{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenUser{}, ErrInvalidToken
	}

	userID, ok := claims["userID"].(string)
	if !ok || userID == "" {
		return TokenUser{}, ErrInvalidToken
	}

	externalID, _ := claims["externalID"].(string)
	name, _ := claims["name"].(string)
	isAdmin, _ := claims["isAdmin"].(bool)

	return TokenUser{UserID: userID, ExternalID: externalID, Name: name, IsAdmin: isAdmin}, nil
}
