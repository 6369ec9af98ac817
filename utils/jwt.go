package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims carries the authenticated principal through a request. Either
// VisitorID or AdminID is set depending on Role.
type SessionClaims struct {
	UserID    uint   `json:"userId"`
	VisitorID uint   `json:"visitorId,omitempty"`
	AdminID   uint   `json:"adminId,omitempty"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// GenerateSessionToken signs a session token for the given principal.
// rememberMe extends the lifetime from 2 hours to 30 days.
func GenerateSessionToken(userID, visitorID, adminID uint, role string, rememberMe bool) (string, error) {
	lifetime := 2 * time.Hour
	if rememberMe {
		lifetime = 30 * 24 * time.Hour
	}

	claims := SessionClaims{
		UserID:    userID,
		VisitorID: visitorID,
		AdminID:   adminID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(lifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// ParseSessionToken validates a token string and returns its claims.
func ParseSessionToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
