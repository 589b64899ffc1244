package handler

import (
	"context"  // context with cancellation for DB calls
	"errors"   // sentinel comparisons via errors.Is
	"net/http" // HTTP status codes
	"strings"  // string normalization helpers
	"time"     // timeouts for DB calls

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/edurelief/edurelief-backend/internal/config"
	"github.com/edurelief/edurelief-backend/internal/middleware"
	"github.com/edurelief/edurelief-backend/internal/model"
	"github.com/edurelief/edurelief-backend/internal/repository"
	"github.com/edurelief/edurelief-backend/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewAuthHandler(cfg config.Config, users UserStore) *AuthHandler {
	if users == nil {
		panic("nil user store passed to NewAuthHandler")
	}
	return &AuthHandler{Cfg: cfg, Users: users}
}

// ----- DTOs -----

type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // STUDENT | PARENT | DONOR | COUNSELOR | ADMIN
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPart struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
type loginResp struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	User        userPart `json:"user"`
}

// Register creates a user with the requested role.  The role must belong to
// the closed set; a duplicate email is a 400 so the client can prompt for a
// different address.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}
	role, err := model.ParseRole(req.Role)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid role"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Users.Create(ctx, req.Email, req.Password, role, h.Cfg.BcryptCost); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "registered"})
}

// Login verifies credentials and returns a signed access token plus the
// user's public profile.  An unknown email and a wrong password produce the
// exact same response so the endpoint does not reveal which check failed.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}

	return c.JSON(http.StatusOK, loginResp{
		AccessToken: access.Token,
		TokenType:   "bearer",
		User:        userPart{ID: u.ID, Email: u.Email, Role: u.Role.String()},
	})
}

// Me echoes the identity resolved by the JWT middleware.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"user_id": c.Get(middleware.ContextUserID),
		"role":    c.Get(middleware.ContextRole),
	})
}
