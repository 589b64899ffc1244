package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/edurelief/edurelief-backend/internal/model"
	"github.com/edurelief/edurelief-backend/internal/queue"
	"github.com/edurelief/edurelief-backend/internal/repository"
	queue_publisher "github.com/edurelief/edurelief-backend/internal/service"
)

// PublicHandler serves the donor-facing endpoints: browsing campaigns and
// donating.  None of them require authentication; anyone may give.
type PublicHandler struct {
	Campaigns CampaignStore

	// Publish sends the post-commit donation event.  Defaults to the
	// RabbitMQ publisher; swappable in tests.
	Publish func(context.Context, queue.DonationReceivedEvent) error
}

func NewPublicHandler(campaigns CampaignStore) *PublicHandler {
	if campaigns == nil {
		panic("nil campaign store passed to NewPublicHandler")
	}
	return &PublicHandler{
		Campaigns: campaigns,
		Publish:   queue_publisher.PublishDonationReceived,
	}
}

// List handles GET /v1/campaigns.  Only campaigns still accepting
// donations appear in the public directory.
func (h *PublicHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	campaigns, err := h.Campaigns.ListActive(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list campaigns failed"})
	}
	return c.JSON(http.StatusOK, toCampaignResponses(campaigns))
}

// Get handles GET /v1/campaigns/:id.  Completed campaigns stay fetchable by
// id; only the public listing hides them.
func (h *PublicHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid campaign id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	campaign, err := h.Campaigns.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "campaign not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "get campaign failed"})
	}
	return c.JSON(http.StatusOK, toCampaignResponse(campaign))
}

type donateReq struct {
	Amount int64 `json:"amount"`
}

// Donate handles POST /v1/campaigns/:id/donate.  The store serializes
// concurrent donations per campaign, so the response reflects a consistent
// total and active flag.  After a successful commit a donation event is
// published best-effort; a broker outage never fails the donation.
func (h *PublicHandler) Donate(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid campaign id"})
	}
	var req donateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Amount <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount must be positive"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	campaign, err := h.Campaigns.Donate(ctx, id, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrCampaignNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "campaign not found"})
		case errors.Is(err, repository.ErrCampaignInactive):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "this campaign has reached its goal and is no longer active"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "donation failed"})
		}
	}

	go h.publishDonation(campaign, req.Amount)

	return c.JSON(http.StatusOK, echo.Map{
		"message":        "donation successful",
		"current_amount": campaign.CurrentAmount,
		"is_active":      campaign.IsActive,
	})
}

// publishDonation emits the donation event on its own short-lived context;
// the HTTP request has already been answered by the time this runs.
func (h *PublicHandler) publishDonation(campaign model.Campaign, amount int64) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = h.Publish(ctx, queue.DonationReceivedEvent{
		CampaignID:    campaign.ID,
		CampaignTitle: campaign.Title,
		OwnerID:       campaign.OwnerID,
		Amount:        amount,
		CurrentAmount: campaign.CurrentAmount,
		GoalAmount:    campaign.GoalAmount,
		GoalReached:   !campaign.IsActive,
		ReceivedAt:    time.Now().UTC().Format(time.RFC3339),
	})
}
