package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/edurelief/edurelief-backend/internal/config"
	"github.com/edurelief/edurelief-backend/internal/model"
	"github.com/edurelief/edurelief-backend/internal/repository"
)

// OwnerHandler serves the campaign endpoints reserved for campaign owners
// (students and parents): creating a campaign, listing one's own campaigns
// and deleting one.  JWT and role middleware run before every method, so
// the context always carries a resolved identity.
type OwnerHandler struct {
	Cfg       config.Config
	Campaigns CampaignStore
}

func NewOwnerHandler(cfg config.Config, campaigns CampaignStore) *OwnerHandler {
	if campaigns == nil {
		panic("nil campaign store passed to NewOwnerHandler")
	}
	return &OwnerHandler{Cfg: cfg, Campaigns: campaigns}
}

type createCampaignReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	GoalAmount  int64  `json:"goal_amount"`
}

// Create handles POST /v1/campaigns.  The goal must be positive; a campaign
// that could never deactivate (goal <= 0 would be reached immediately or
// never) is rejected up front.  The verified flag follows the
// CAMPAIGN_AUTO_VERIFY policy switch rather than being hard-coded.
func (h *OwnerHandler) Create(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createCampaignReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	if req.GoalAmount <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "goal_amount must be positive"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	campaign := model.Campaign{
		Title:       req.Title,
		Description: strings.TrimSpace(req.Description),
		GoalAmount:  req.GoalAmount,
		OwnerID:     ownerID,
		IsVerified:  h.Cfg.CampaignAutoVerify,
	}
	id, err := h.Campaigns.Create(ctx, &campaign)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create campaign failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "campaign created", "id": id})
}

// ListMine handles GET /v1/campaigns/me.  Owners see all of their
// campaigns, including those that already reached their goal.
func (h *OwnerHandler) ListMine(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	campaigns, err := h.Campaigns.ListByOwner(ctx, ownerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list campaigns failed"})
	}
	return c.JSON(http.StatusOK, toCampaignResponses(campaigns))
}

// Delete handles DELETE /v1/campaigns/:id.  A campaign that does not exist
// and a campaign owned by someone else produce the same 404 response, so
// the endpoint cannot be used to probe for foreign campaign ids.
func (h *OwnerHandler) Delete(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid campaign id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Campaigns.DeleteOwned(ctx, id, ownerID); err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "campaign not found or unauthorized"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete campaign failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "campaign deleted"})
}
