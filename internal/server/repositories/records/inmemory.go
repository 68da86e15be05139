package records

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/MethuParoi/share-bites-server-codebase/internal/common"
	"github.com/MethuParoi/share-bites-server-codebase/internal/server/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// InMemoryRepository keeps records in process memory. Returned records are
// copies; callers cannot mutate the stored state.
type InMemoryRepository struct {
	mu      sync.RWMutex
	order   []string
	records map[string]*models.UserRecord
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{records: make(map[string]*models.UserRecord)}
}

func clone(rec *models.UserRecord) models.UserRecord {
	c := *rec
	c.Foods = slices.Clone(rec.Foods)
	if c.Foods == nil {
		c.Foods = []models.FoodRef{}
	}
	return c
}

func (r *InMemoryRepository) Upsert(ctx context.Context, userID string, foods []models.FoodRef) (models.UpsertResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	foods = slices.Clone(foods)

	if rec, ok := r.records[userID]; ok {
		modified := int64(0)
		if !slices.Equal(rec.Foods, foods) {
			modified = 1
		}
		rec.Foods = foods
		rec.UpdatedAt = now
		return models.UpsertResult{MatchedCount: 1, ModifiedCount: modified}, nil
	}

	rec := &models.UserRecord{
		ID:        bson.NewObjectID(),
		UserID:    userID,
		Foods:     foods,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.records[userID] = rec
	r.order = append(r.order, userID)

	return models.UpsertResult{UpsertedID: rec.ID.Hex()}, nil
}

func (r *InMemoryRepository) FindOne(ctx context.Context, userID string) (*models.UserRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[userID]
	if !ok {
		return nil, common.ErrNotFound
	}
	c := clone(rec)
	return &c, nil
}

func containsFood(foods []models.FoodRef, foodID string) bool {
	return slices.ContainsFunc(foods, func(f models.FoodRef) bool { return f.FoodID == foodID })
}

func (r *InMemoryRepository) FindAll(ctx context.Context, filter models.RecordFilter) ([]models.UserRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.UserRecord{}
	for _, id := range r.order {
		rec := r.records[id]
		if filter.FoodID != "" && !containsFood(rec.Foods, filter.FoodID) {
			continue
		}
		out = append(out, clone(rec))
	}

	return out, nil
}

func (r *InMemoryRepository) UpdateFields(ctx context.Context, userID string, patch models.RecordPatch) (models.UpdateResult, error) {
	if patch.Foods == nil {
		return models.UpdateResult{}, common.ErrEmptyPatch
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[userID]
	if !ok {
		return models.UpdateResult{}, nil
	}

	foods := slices.Clone(*patch.Foods)
	modified := int64(0)
	if !slices.Equal(rec.Foods, foods) {
		modified = 1
	}
	rec.Foods = foods
	rec.UpdatedAt = time.Now().UTC()

	return models.UpdateResult{MatchedCount: 1, ModifiedCount: modified}, nil
}

func (r *InMemoryRepository) pull(rec *models.UserRecord, foodID string) int64 {
	n := len(rec.Foods)
	rec.Foods = slices.DeleteFunc(rec.Foods, func(f models.FoodRef) bool { return f.FoodID == foodID })
	if len(rec.Foods) == n {
		return 0
	}
	return 1
}

func (r *InMemoryRepository) Pull(ctx context.Context, userID, foodID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[userID]
	if !ok {
		return 0, nil
	}
	return r.pull(rec, foodID), nil
}

func (r *InMemoryRepository) PullFromAll(ctx context.Context, foodID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var total int64
	for _, rec := range r.records {
		total += r.pull(rec, foodID)
	}
	return total, nil
}
