package services

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/MethuParoi/share-bites-server-codebase/internal/common"
	"github.com/MethuParoi/share-bites-server-codebase/internal/logging"
	"github.com/MethuParoi/share-bites-server-codebase/internal/server/models"
	"github.com/MethuParoi/share-bites-server-codebase/internal/server/repositories/records"
	"github.com/MethuParoi/share-bites-server-codebase/internal/server/repositories/repomanager"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// FoodService implements the food bank operations. Mutations are allowed
// only to the donator recorded on the entry.
type FoodService struct {
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewFoodService(m repomanager.RepositoryManager, logger logging.Logger) *FoodService {
	return &FoodService{repomanager: m, logger: logger}
}

// Add inserts a new entry owned by email. Any client-supplied id or owner is
// discarded.
func (s *FoodService) Add(ctx context.Context, email string, entry *models.FoodEntry) (*models.FoodEntry, error) {
	now := time.Now().UTC()

	entry.ID = bson.NilObjectID
	entry.DonatorEmail = email
	if entry.Status == "" {
		entry.Status = models.StatusAvailable
	}
	entry.CreatedAt = now
	entry.UpdatedAt = now

	created, err := s.repomanager.Food().Insert(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("add food: %w", err)
	}
	return created, nil
}

func (s *FoodService) List(ctx context.Context, filter models.FoodFilter) ([]models.FoodEntry, error) {
	entries, err := s.repomanager.Food().FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list food: %w", err)
	}
	return entries, nil
}

// Featured returns up to common.FeaturedFoodLimit entries with the largest
// quantity first. Equal quantities keep store order.
func (s *FoodService) Featured(ctx context.Context) ([]models.FoodEntry, error) {
	entries, err := s.List(ctx, models.FoodFilter{})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(entries, func(a, b models.FoodEntry) int {
		return cmp.Compare(b.Quantity.Int(), a.Quantity.Int())
	})

	if len(entries) > common.FeaturedFoodLimit {
		entries = entries[:common.FeaturedFoodLimit]
	}
	return entries, nil
}

// Sorted returns all entries by expiry, soonest first. Entries whose expiry
// cannot be parsed go last in store order.
func (s *FoodService) Sorted(ctx context.Context) ([]models.FoodEntry, error) {
	entries, err := s.List(ctx, models.FoodFilter{})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(entries, compareExpiry)
	return entries, nil
}

func compareExpiry(a, b models.FoodEntry) int {
	ta, okA := models.ParseExpiry(a.ExpiryDate)
	tb, okB := models.ParseExpiry(b.ExpiryDate)

	switch {
	case okA && okB:
		return ta.Compare(tb)
	case okA:
		return -1
	case okB:
		return 1
	default:
		return 0
	}
}

func (s *FoodService) Get(ctx context.Context, id string) (*models.FoodEntry, error) {
	return s.repomanager.Food().FindOne(ctx, id)
}

// owned loads the entry and checks that email is its donator. Entries
// without a recorded donator belong to nobody.
func (s *FoodService) owned(ctx context.Context, email, id string) (*models.FoodEntry, error) {
	entry, err := s.repomanager.Food().FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.DonatorEmail == "" || entry.DonatorEmail != email {
		return nil, common.ErrForbidden
	}
	return entry, nil
}

func (s *FoodService) Update(ctx context.Context, email, id string, patch models.FoodPatch) (models.UpdateResult, error) {
	if _, err := s.owned(ctx, email, id); err != nil {
		return models.UpdateResult{}, err
	}

	res, err := s.repomanager.Food().UpdateFields(ctx, id, patch)
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("update food %s: %w", id, err)
	}
	return res, nil
}

// Delete removes the entry and then pulls it from every user record. The
// cascade is best effort; failures are logged and do not fail the call.
func (s *FoodService) Delete(ctx context.Context, email, id string) (int64, error) {
	if _, err := s.owned(ctx, email, id); err != nil {
		return 0, err
	}

	deleted, err := s.repomanager.Food().Remove(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("delete food %s: %w", id, err)
	}

	if deleted > 0 {
		for name, repo := range map[string]records.Repository{
			"added":     s.repomanager.AddedFood(),
			"requested": s.repomanager.RequestedFood(),
		} {
			n, err := repo.PullFromAll(ctx, id)
			if err != nil {
				s.logger.Warn(ctx, "cascade pull failed", "food", id, "records", name, "error", err)
				continue
			}
			s.logger.Debug(ctx, "cascade pull", "food", id, "records", name, "modified", n)
		}
	}

	return deleted, nil
}

// Requests lists the request records that reference the entry. Only the
// donator may see who asked for their food.
func (s *FoodService) Requests(ctx context.Context, email, id string) ([]models.UserRecord, error) {
	if _, err := s.owned(ctx, email, id); err != nil {
		return nil, err
	}

	recs, err := s.repomanager.RequestedFood().FindAll(ctx, models.RecordFilter{FoodID: id})
	if err != nil {
		return nil, fmt.Errorf("food requests %s: %w", id, err)
	}
	return recs, nil
}
