// Package auth implements the admin panel's shared-password login and the
// opaque bearer tokens it issues. Tokens live in an in-process TTL cache;
// there is deliberately no session framework behind this.
package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/patrickmn/go-cache"

	"github.com/mvgcolleges/voting-go/internal/errors"
)

// Service validates the admin password and tracks issued tokens. It is safe
// for concurrent use; the token cache is internally synchronized.
type Service struct {
	password string
	tokens   *cache.Cache
}

// NewService creates an auth service. Issued tokens expire after ttl.
func NewService(password string, ttl time.Duration) *Service {
	return &Service{
		password: password,
		tokens:   cache.New(ttl, 10*time.Minute),
	}
}

// Login checks the shared admin password and returns a fresh opaque token.
func (s *Service) Login(password string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) != 1 {
		return "", errors.Newf("invalid password").
			Category(errors.CategoryAuth).
			Component("auth").
			Build()
	}

	token := uuid.NewString()
	s.tokens.SetDefault(token, time.Now())
	return token, nil
}

// Validate reports whether the token was issued here and has not expired.
func (s *Service) Validate(token string) bool {
	_, found := s.tokens.Get(token)
	return found
}

// Revoke drops a token, ending its session early.
func (s *Service) Revoke(token string) {
	s.tokens.Delete(token)
}

// unauthorized is the JSON envelope returned on rejected requests.
type unauthorized struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Middleware returns an echo middleware that requires a valid bearer token.
func (s *Service) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return c.JSON(http.StatusUnauthorized, unauthorized{
					Message: "No authorization token provided",
				})
			}

			token := strings.TrimPrefix(header, "Bearer ")
			if !s.Validate(token) {
				return c.JSON(http.StatusUnauthorized, unauthorized{
					Message: "Invalid token",
				})
			}

			return next(c)
		}
	}
}
