package handler_test

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/edurelief/edurelief-backend/internal/model"
	"github.com/edurelief/edurelief-backend/internal/repository"
	"github.com/edurelief/edurelief-backend/internal/utils"
)

// fakeUserStore is an in-memory stand-in for repository.UserRepo.  It
// mirrors the repository contract: emails are unique keys and lookups for
// unknown emails return repository.ErrUserNotFound.
type fakeUserStore struct {
	mu      sync.Mutex
	nextID  uint64
	byEmail map[string]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: make(map[string]model.User)}
}

func (s *fakeUserStore) Create(_ context.Context, email, password string, role model.Role, cost int) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	if _, ok := s.byEmail[email]; ok {
		return 0, repository.ErrEmailExists
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	s.nextID++
	s.byEmail[email] = model.User{
		ID:           s.nextID,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	return s.nextID, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

// fakeCampaignStore is an in-memory stand-in for repository.CampaignRepo.
// The mutex plays the part of the per-row lock: Donate reads, mutates and
// writes back under it, so concurrent donations serialize exactly as they
// do against the database.
type fakeCampaignStore struct {
	mu     sync.Mutex
	nextID uint64
	items  map[uint64]model.Campaign
}

func newFakeCampaignStore() *fakeCampaignStore {
	return &fakeCampaignStore{items: make(map[uint64]model.Campaign)}
}

func (s *fakeCampaignStore) Create(_ context.Context, c *model.Campaign) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	c.ID = s.nextID
	c.CurrentAmount = 0
	c.IsActive = true
	s.items[c.ID] = *c
	return c.ID, nil
}

func (s *fakeCampaignStore) GetByID(_ context.Context, id uint64) (model.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.items[id]
	if !ok {
		return model.Campaign{}, repository.ErrCampaignNotFound
	}
	return c, nil
}

func (s *fakeCampaignStore) ListActive(_ context.Context) ([]model.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Campaign, 0)
	for _, c := range s.items {
		if c.IsActive {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeCampaignStore) ListByOwner(_ context.Context, ownerID uint64) ([]model.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Campaign, 0)
	for _, c := range s.items {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeCampaignStore) DeleteOwned(_ context.Context, id, ownerID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.items[id]
	if !ok || c.OwnerID != ownerID {
		return repository.ErrCampaignNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *fakeCampaignStore) Donate(_ context.Context, id uint64, amount int64) (model.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.items[id]
	if !ok {
		return model.Campaign{}, repository.ErrCampaignNotFound
	}
	if !c.IsActive {
		return model.Campaign{}, repository.ErrCampaignInactive
	}
	c.ApplyDonation(amount)
	s.items[id] = c
	return c, nil
}

// seed inserts a campaign with explicit state, bypassing Create defaults.
func (s *fakeCampaignStore) seed(c model.Campaign) model.Campaign {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == 0 {
		s.nextID++
		c.ID = s.nextID
	} else if c.ID > s.nextID {
		s.nextID = c.ID
	}
	s.items[c.ID] = c
	return c
}
