package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL applies when the caller does not specify a TTL.
const DefaultTokenTTL = 30 * time.Minute

var (
	// ErrMissingSecret means the codec was constructed without a signing secret.
	ErrMissingSecret = errors.New("missing token signing secret")

	// ErrTokenInvalid covers every decode rejection: bad signature, wrong
	// algorithm, malformed structure, or expiry. Callers must not be able
	// to tell these cases apart.
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims is what gets signed into a token. Subject carries the user id.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenCodec encodes and decodes HS256-signed tokens against a single
// process-wide secret, loaded once at startup.
type TokenCodec struct {
	secret     []byte
	defaultTTL time.Duration
}

// NewTokenCodec creates a codec. defaultTTL <= 0 falls back to DefaultTokenTTL.
func NewTokenCodec(secret string, defaultTTL time.Duration) (*TokenCodec, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if defaultTTL <= 0 {
		defaultTTL = DefaultTokenTTL
	}
	return &TokenCodec{secret: []byte(secret), defaultTTL: defaultTTL}, nil
}

// Encode signs a token for the subject, expiring after ttl. A zero ttl
// uses the codec default; a negative ttl produces an already-expired token.
func (c *TokenCodec) Encode(subject string, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = c.defaultTTL
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Decode verifies signature, algorithm and expiry, returning the claims.
// Every rejection path returns ErrTokenInvalid.
func (c *TokenCodec) Decode(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{},
		func(t *jwt.Token) (interface{}, error) {
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
