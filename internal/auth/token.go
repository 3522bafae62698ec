// Package auth issues and resolves the bearer tokens used by the API. Tokens
// are HS256 JWTs; logout puts the token's jti on a TTL denylist so a revoked
// token dies before its expiry.
package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/stelihq/steli-backend/internal/models"
)

const tokenTTL = 72 * time.Hour

var ErrInvalidToken = errors.New("invalid or expired token")

type Tokens struct {
	secret  []byte
	revoked *cache.Cache
	now     func() time.Time
}

// NewTokens builds a token service with the given signing secret.
func NewTokens(secret []byte) *Tokens {
	return &Tokens{
		secret:  secret,
		revoked: cache.New(tokenTTL, 10*time.Minute),
		now:     time.Now,
	}
}

// NewTokensFromEnv reads the signing secret from JWT_SECRET.
func NewTokensFromEnv() *Tokens {
	return NewTokens([]byte(os.Getenv("JWT_SECRET")))
}

// Issue signs a token for the user, valid for 72 hours.
func (t *Tokens) Issue(user *models.User) (string, error) {
	now := t.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"jti":      uuid.NewString(),
		"iat":      now.Unix(),
		"exp":      now.Add(tokenTTL).Unix(),
	})
	return token.SignedString(t.secret)
}

// Resolve validates a token string and returns the user id it was issued to.
func (t *Tokens) Resolve(tokenString string) (int, error) {
	claims, err := t.parse(tokenString)
	if err != nil {
		return 0, ErrInvalidToken
	}

	if jti, ok := claims["jti"].(string); ok {
		if _, found := t.revoked.Get(jti); found {
			return 0, ErrInvalidToken
		}
	}

	// Numeric JSON claims decode as float64.
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, ErrInvalidToken
	}
	return int(userID), nil
}

// Revoke denylists a token until its natural expiry. Unparseable tokens are
// ignored: they would never resolve anyway.
func (t *Tokens) Revoke(tokenString string) {
	claims, err := t.parse(tokenString)
	if err != nil {
		return
	}
	jti, ok := claims["jti"].(string)
	if !ok {
		return
	}

	ttl := tokenTTL
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		if remaining := time.Until(exp.Time); remaining > 0 {
			ttl = remaining
		}
	}
	t.revoked.Set(jti, true, ttl)
}

func (t *Tokens) parse(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
