package handler

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/edurelief/edurelief-backend/internal/middleware"
	"github.com/edurelief/edurelief-backend/internal/model"
)

// UserStore is the slice of the user repository the auth handler needs.
// Declared here so tests can substitute an in-memory implementation.
type UserStore interface {
	Create(ctx context.Context, email, password string, role model.Role, cost int) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
}

// CampaignStore is the slice of the campaign repository the campaign
// handlers need.  Donate must apply the credit-then-threshold transition
// atomically per campaign; the SQL implementation does this with a row lock.
type CampaignStore interface {
	Create(ctx context.Context, c *model.Campaign) (uint64, error)
	GetByID(ctx context.Context, id uint64) (model.Campaign, error)
	ListActive(ctx context.Context) ([]model.Campaign, error)
	ListByOwner(ctx context.Context, ownerID uint64) ([]model.Campaign, error)
	DeleteOwned(ctx context.Context, id, ownerID uint64) error
	Donate(ctx context.Context, id uint64, amount int64) (model.Campaign, error)
}

// campaignResponse is the JSON shape for a campaign in every endpoint that
// returns one.
type campaignResponse struct {
	ID            uint64 `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	GoalAmount    int64  `json:"goal_amount"`
	CurrentAmount int64  `json:"current_amount"`
	OwnerID       uint64 `json:"owner_id"`
	IsVerified    bool   `json:"is_verified"`
	IsActive      bool   `json:"is_active"`
}

func toCampaignResponse(c model.Campaign) campaignResponse {
	return campaignResponse{
		ID:            c.ID,
		Title:         c.Title,
		Description:   c.Description,
		GoalAmount:    c.GoalAmount,
		CurrentAmount: c.CurrentAmount,
		OwnerID:       c.OwnerID,
		IsVerified:    c.IsVerified,
		IsActive:      c.IsActive,
	}
}

func toCampaignResponses(cs []model.Campaign) []campaignResponse {
	out := make([]campaignResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, toCampaignResponse(c))
	}
	return out
}

// getUserID extracts the authenticated user's ID placed in the context by
// the JWT middleware.
func getUserID(c echo.Context) (uint64, error) {
	if id, ok := c.Get(middleware.ContextUserID).(uint64); ok && id > 0 {
		return id, nil
	}
	return 0, errors.New("invalid user_id in context")
}
