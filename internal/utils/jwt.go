package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"milmed-app-server/internal/config"
	"milmed-app-server/internal/models"
)

// Claims represents the JWT claims.
type Claims struct {
	AccountID uint        `json:"account_id"`
	Identity  string      `json:"identity"`
	Role      models.Role `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken generates a session token for an account. The mobile client
// holds a single long-lived session; there is no refresh flow.
func GenerateToken(account *models.Account, cfg *config.Config) (string, error) {
	expirationTime := time.Now().Add(time.Duration(cfg.JWTExpirationMinutes) * time.Minute)
	claims := &Claims{
		AccountID: account.ID,
		Identity:  account.Identity,
		Role:      account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   account.Identity,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken validates a JWT token.
func ValidateToken(tokenString string, secretKey string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
