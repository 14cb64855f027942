package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/velmart/ecommerce-api/models"
)

// Tokens are stateless HS256 bearer credentials carrying the user id and
// role, valid for one hour. There is no refresh mechanism.
const tokenTTL = time.Hour

var ErrInvalidToken = errors.New("invalid or expired token")

type Claims struct {
	UserID string
	Role   models.Role
}

func secret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// GenerateToken signs a token for the given user.
func GenerateToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   user.ID,
		"role": string(user.Role),
		"exp":  time.Now().Add(tokenTTL).Unix(),
	})
	return token.SignedString(secret())
}

// ParseToken verifies signature and expiry and extracts the identity claims.
func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return secret(), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	id, _ := claims["id"].(string)
	role, _ := claims["role"].(string)
	if id == "" {
		return nil, ErrInvalidToken
	}
	return &Claims{UserID: id, Role: models.Role(role)}, nil
}
