package middleware // middleware provides shared request processing for handlers

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
	"github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers

	"github.com/edurelief/edurelief-backend/internal/model"
)

// Context keys under which the resolved identity is stored.
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and resolves it into an identity: the subject claim as a uint64 user ID
// under ContextUserID and the role claim as a model.Role under ContextRole.
// The provided secret must match the one used when issuing tokens.  The
// middleware rejects missing headers, bad signatures, expired tokens and
// tokens whose role claim falls outside the closed role set; handlers
// behind it can therefore trust both context values without re-checking.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// Parse with HS256 only; a token signed with any other method is
			// rejected before its claims are inspected.  Expiry (exp) is
			// validated by the library as part of tok.Valid.
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}

			// JWT numbers decode as float64; sub was issued from a uint64 ID.
			sub, ok := claims["sub"].(float64)
			if !ok || sub <= 0 {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}
			roleRaw, _ := claims["role"].(string)
			role, err := model.ParseRole(roleRaw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}

			c.Set(ContextUserID, uint64(sub))
			c.Set(ContextRole, role)
			return next(c)
		}
	}
}
