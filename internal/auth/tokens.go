package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every token failure mode: malformed input,
// wrong signature, wrong signing method, expiry. Callers never learn
// which one.
var ErrInvalidToken = errors.New("invalid token")

type accessClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}

// TokenManager issues and validates stateless HS256 access tokens.
// The signing secret is process-wide configuration loaded once at
// startup; there is no revocation list, tokens die only by expiry.
type TokenManager struct {
	secret     []byte
	defaultTTL time.Duration
}

func NewTokenManager(secret string, defaultTTL time.Duration) *TokenManager {
	if defaultTTL <= 0 {
		defaultTTL = 30 * time.Minute
	}
	return &TokenManager{secret: []byte(secret), defaultTTL: defaultTTL}
}

// Issue returns a signed token carrying the user id and an absolute
// expiry. A non-positive ttl falls back to the configured default.
func (manager *TokenManager) Issue(userID uint, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = manager.defaultTTL
	}
	now := time.Now()

	claims := accessClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(manager.secret)
}

// Validate verifies signature and expiry and returns the embedded
// user id, or ErrInvalidToken.
func (manager *TokenManager) Validate(rawToken string) (uint, error) {
	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return manager.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(time.Now()) {
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}
