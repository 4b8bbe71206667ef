package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	models "github.com/btair/btair/internal"
)

type Claims struct {
	UserID     int64  `json:"uid"`
	CustomerID int64  `json:"cid,omitempty"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies the HS256 bearer tokens used by the API.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

func (tm *TokenManager) Issue(user *models.User, customerID int64) (string, time.Time, error) {
	expiry := time.Now().Add(tm.ttl)
	claims := Claims{
		UserID:     user.ID,
		CustomerID: customerID,
		Role:       user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiry, nil
}

func (tm *TokenManager) Verify(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return tm.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, models.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, models.ErrInvalidToken
	}
	return claims, nil
}
