package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token verification failures. Both map to an authentication failure at the
// API boundary; the distinction is kept for logging.
var (
	ErrTokenMalformed = errors.New("auth: malformed token")
	ErrTokenExpired   = errors.New("auth: expired token")
)

// TokenCodec issues and verifies stateless bearer tokens. Tokens carry the
// user id, issue time and expiry; nothing is persisted server-side.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec constructs a codec from the signing secret and token lifetime.
func NewTokenCodec(secret string, ttl time.Duration) (*TokenCodec, error) {
	if secret == "" {
		return nil, errors.New("auth: token secret is empty")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenCodec{secret: []byte(secret), ttl: ttl}, nil
}

// TTL returns the configured token lifetime.
func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token for the given user id.
func (c *TokenCodec) Issue(userID int64) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(userID, 10),
		"iat": now.Unix(),
		"exp": now.Add(c.ttl).Unix(),
		"jti": uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify checks signature and expiry and returns the referenced user id.
func (c *TokenCodec) Verify(tokenString string) (int64, error) {
	if tokenString == "" {
		return 0, ErrTokenMalformed
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, fmt.Errorf("%w: %s", ErrTokenMalformed, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, ErrTokenMalformed
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return 0, ErrTokenMalformed
	}
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, ErrTokenMalformed
	}
	return userID, nil
}
