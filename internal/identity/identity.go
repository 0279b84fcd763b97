// Package identity authenticates requests with JWT bearer tokens and makes
// the authenticated user available to handlers.
package identity

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// contextUser is the gin context key the middleware stores the user ID under.
const contextUser = "identity:user"

var (
	ErrNoToken      = errors.New("no bearer token in the Authorization header")
	ErrInvalidToken = errors.New("the bearer token is invalid")
	ErrNoSecret     = errors.New("the IDENTITY_SECRET environment variable must be set")
)

// secret returns the HMAC signing secret from the environment.
func secret() ([]byte, error) {
	s, ok := os.LookupEnv("IDENTITY_SECRET")
	if !ok || s == "" {
		return nil, ErrNoSecret
	}

	return []byte(s), nil
}

// Middleware returns a gin middleware that requires a valid HS256 signed
// bearer token and stores the user ID from its "sub" claim in the context.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := parseHeader(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, map[string]string{
				"error": err.Error(),
			})
			return
		}

		c.Set(contextUser, userID)
		c.Next()
	}
}

func parseHeader(header string) (uuid.UUID, error) {
	if !strings.HasPrefix(header, "Bearer ") {
		return uuid.Nil, ErrNoToken
	}

	key, err := secret()
	if err != nil {
		return uuid.Nil, err
	}

	token, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: unexpected signing method %q", ErrInvalidToken, t.Method.Alg())
		}

		return key, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	return userID, nil
}

// UserID returns the authenticated user for the request. The boolean is
// false on routes that did not pass the middleware.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(contextUser)
	if !ok {
		return uuid.Nil, false
	}

	userID, ok := v.(uuid.UUID)
	return userID, ok
}

// Mint signs a token for the user, valid for the given duration.
func Mint(userID uuid.UUID, validity time.Duration) (string, error) {
	key, err := secret()
	if err != nil {
		return "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
	})

	return token.SignedString(key)
}
