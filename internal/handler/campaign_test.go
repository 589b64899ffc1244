package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/edurelief/edurelief-backend/internal/model"
)

func decodeCampaigns(t *testing.T, body *json.Decoder) []map[string]any {
	t.Helper()
	var out []map[string]any
	if err := body.Decode(&out); err != nil {
		t.Fatalf("decode campaign list: %v", err)
	}
	return out
}

func TestCreateCampaignForbiddenForDonor(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "donor@example.com", "pw", "DONOR")
	token := app.login(t, "donor@example.com", "pw")

	rec := app.do(t, http.MethodPost, "/v1/campaigns", token, map[string]any{
		"title": "Books", "goal_amount": 100,
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403 for DONOR", rec.Code)
	}
}

func TestCreateCampaignRequiresAuth(t *testing.T) {
	app := newTestApp(t)
	rec := app.do(t, http.MethodPost, "/v1/campaigns", "", map[string]any{
		"title": "Books", "goal_amount": 100,
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 without a token", rec.Code)
	}
}

func TestCreateCampaignAsStudent(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "student@example.com", "pw", "STUDENT")
	token := app.login(t, "student@example.com", "pw")

	rec := app.do(t, http.MethodPost, "/v1/campaigns", token, map[string]any{
		"title": "School supplies", "description": "notebooks and pens", "goal_amount": 500,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body %s, want 200", rec.Code, rec.Body.String())
	}
	var resp struct {
		ID uint64 `json:"id"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if resp.ID == 0 {
		t.Fatalf("create must return the new campaign id")
	}

	c, err := app.campaigns.GetByID(context.Background(), resp.ID)
	if err != nil {
		t.Fatalf("created campaign not found: %v", err)
	}
	if !c.IsActive || !c.IsVerified || c.CurrentAmount != 0 {
		t.Fatalf("new campaign state = active:%v verified:%v amount:%d, want active, verified, 0",
			c.IsActive, c.IsVerified, c.CurrentAmount)
	}
}

func TestCreateCampaignRejectsNonPositiveGoal(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "student@example.com", "pw", "STUDENT")
	token := app.login(t, "student@example.com", "pw")

	for _, goal := range []int64{0, -50} {
		rec := app.do(t, http.MethodPost, "/v1/campaigns", token, map[string]any{
			"title": "Bad goal", "goal_amount": goal,
		})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("goal %d: status = %d, want 400", goal, rec.Code)
		}
	}
}

func TestDonateReachesGoalAndDeactivates(t *testing.T) {
	app := newTestApp(t)
	c := app.campaigns.seed(model.Campaign{
		Title: "Laptop", GoalAmount: 100, CurrentAmount: 80, OwnerID: 1,
		IsVerified: true, IsActive: true,
	})

	rec := app.do(t, http.MethodPost, "/v1/campaigns/1/donate", "", map[string]any{"amount": 30})
	if rec.Code != http.StatusOK {
		t.Fatalf("donate status = %d body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		CurrentAmount int64 `json:"current_amount"`
		IsActive      bool  `json:"is_active"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode donate response: %v", err)
	}
	if resp.CurrentAmount != 110 || resp.IsActive {
		t.Fatalf("donate result = (%d, active:%v), want (110, inactive)", resp.CurrentAmount, resp.IsActive)
	}

	// The deactivated campaign refuses further donations.
	rec = app.do(t, http.MethodPost, "/v1/campaigns/1/donate", "", map[string]any{"amount": 1})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("donate to inactive: status = %d, want 400", rec.Code)
	}

	// The goal-reached event went out for the successful donation.
	select {
	case ev := <-app.events:
		if ev.CampaignID != c.ID || ev.Amount != 30 || ev.CurrentAmount != 110 || !ev.GoalReached {
			t.Fatalf("unexpected event %+v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no donation event published")
	}
}

func TestDonateNotFound(t *testing.T) {
	app := newTestApp(t)
	rec := app.do(t, http.MethodPost, "/v1/campaigns/99/donate", "", map[string]any{"amount": 10})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestDonateRejectsNonPositiveAmount(t *testing.T) {
	app := newTestApp(t)
	app.campaigns.seed(model.Campaign{Title: "T", GoalAmount: 100, OwnerID: 1, IsActive: true})

	for _, amount := range []int64{0, -5} {
		rec := app.do(t, http.MethodPost, "/v1/campaigns/1/donate", "", map[string]any{"amount": amount})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("amount %d: status = %d, want 400", amount, rec.Code)
		}
	}
}

func TestConcurrentDonationsLoseNoUpdate(t *testing.T) {
	app := newTestApp(t)
	c := app.campaigns.seed(model.Campaign{
		Title: "Tuition", GoalAmount: 100, CurrentAmount: 0, OwnerID: 1, IsActive: true,
	})

	var wg sync.WaitGroup
	codes := make([]int, 2)
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := app.do(t, http.MethodPost, "/v1/campaigns/1/donate", "", map[string]any{"amount": 60})
			codes[i] = rec.Code
		}(i)
	}
	wg.Wait()

	for i, code := range codes {
		if code != http.StatusOK {
			t.Fatalf("donation %d: status = %d, want 200", i, code)
		}
	}
	got, err := app.campaigns.GetByID(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("reload campaign: %v", err)
	}
	if got.CurrentAmount != 120 {
		t.Fatalf("current_amount = %d, want 120 (no lost update)", got.CurrentAmount)
	}
	if got.IsActive {
		t.Fatalf("campaign must end inactive after passing its goal")
	}
}

func TestDeleteHidesExistence(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "owner@example.com", "pw", "STUDENT")
	app.register(t, "other@example.com", "pw", "PARENT")
	ownerToken := app.login(t, "owner@example.com", "pw")
	otherToken := app.login(t, "other@example.com", "pw")

	rec := app.do(t, http.MethodPost, "/v1/campaigns", ownerToken, map[string]any{
		"title": "Field trip", "goal_amount": 200,
	})
	var created struct {
		ID uint64 `json:"id"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	// Non-owner delete and missing-id delete must be byte-identical 404s.
	foreign := app.do(t, http.MethodDelete, "/v1/campaigns/1", otherToken, nil)
	missing := app.do(t, http.MethodDelete, "/v1/campaigns/999", otherToken, nil)
	if foreign.Code != http.StatusNotFound || missing.Code != http.StatusNotFound {
		t.Fatalf("statuses = (%d, %d), want both 404", foreign.Code, missing.Code)
	}
	if foreign.Body.String() != missing.Body.String() {
		t.Fatalf("bodies differ: foreign %q vs missing %q", foreign.Body.String(), missing.Body.String())
	}
	if _, err := app.campaigns.GetByID(context.Background(), created.ID); err != nil {
		t.Fatalf("campaign must survive a non-owner delete: %v", err)
	}

	// The owner can delete it.
	rec = app.do(t, http.MethodDelete, "/v1/campaigns/1", ownerToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("owner delete: status = %d body %s", rec.Code, rec.Body.String())
	}
	if _, err := app.campaigns.GetByID(context.Background(), created.ID); err == nil {
		t.Fatalf("campaign must be gone after owner delete")
	}
}

func TestPublicListingExcludesInactive(t *testing.T) {
	app := newTestApp(t)
	app.campaigns.seed(model.Campaign{ID: 1, Title: "Running", GoalAmount: 100, OwnerID: 1, IsActive: true})
	app.campaigns.seed(model.Campaign{ID: 2, Title: "Done", GoalAmount: 100, CurrentAmount: 100, OwnerID: 1, IsActive: false})

	rec := app.do(t, http.MethodGet, "/v1/campaigns", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	items := decodeCampaigns(t, json.NewDecoder(rec.Body))
	if len(items) != 1 {
		t.Fatalf("public listing has %d items, want 1", len(items))
	}
	if items[0]["title"] != "Running" {
		t.Fatalf("public listing returned %v, want the active campaign", items[0]["title"])
	}
}

func TestOwnerListingIncludesInactive(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "owner@example.com", "pw", "PARENT")
	token := app.login(t, "owner@example.com", "pw")

	app.campaigns.seed(model.Campaign{ID: 1, Title: "Running", GoalAmount: 100, OwnerID: 1, IsActive: true})
	app.campaigns.seed(model.Campaign{ID: 2, Title: "Done", GoalAmount: 100, CurrentAmount: 120, OwnerID: 1, IsActive: false})
	app.campaigns.seed(model.Campaign{ID: 3, Title: "Foreign", GoalAmount: 100, OwnerID: 2, IsActive: true})

	rec := app.do(t, http.MethodGet, "/v1/campaigns/me", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list mine status = %d body %s", rec.Code, rec.Body.String())
	}
	items := decodeCampaigns(t, json.NewDecoder(rec.Body))
	if len(items) != 2 {
		t.Fatalf("owner listing has %d items, want 2 (active and inactive)", len(items))
	}
}

func TestGetCampaignByIDIgnoresActiveFlag(t *testing.T) {
	app := newTestApp(t)
	app.campaigns.seed(model.Campaign{ID: 1, Title: "Done", GoalAmount: 100, CurrentAmount: 150, OwnerID: 1, IsActive: false})

	rec := app.do(t, http.MethodGet, "/v1/campaigns/1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for an inactive campaign fetched by id", rec.Code)
	}
	var c struct {
		CurrentAmount int64 `json:"current_amount"`
		IsActive      bool  `json:"is_active"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&c); err != nil {
		t.Fatalf("decode campaign: %v", err)
	}
	if c.IsActive || c.CurrentAmount != 150 {
		t.Fatalf("campaign = %+v, want inactive with amount 150", c)
	}

	rec = app.do(t, http.MethodGet, "/v1/campaigns/42", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 for a missing id", rec.Code)
	}
}
