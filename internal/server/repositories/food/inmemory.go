package food

import (
	"context"
	"sync"
	"time"

	"github.com/MethuParoi/share-bites-server-codebase/internal/common"
	"github.com/MethuParoi/share-bites-server-codebase/internal/server/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// InMemoryRepository keeps entries in process memory, in insertion order.
type InMemoryRepository struct {
	mu      sync.RWMutex
	order   []bson.ObjectID
	entries map[bson.ObjectID]models.FoodEntry
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{entries: make(map[bson.ObjectID]models.FoodEntry)}
}

func (r *InMemoryRepository) Insert(ctx context.Context, entry *models.FoodEntry) (*models.FoodEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID.IsZero() {
		entry.ID = bson.NewObjectID()
	}
	r.entries[entry.ID] = *entry
	r.order = append(r.order, entry.ID)

	return entry, nil
}

func (r *InMemoryRepository) FindAll(ctx context.Context, filter models.FoodFilter) ([]models.FoodEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.FoodEntry{}
	for _, id := range r.order {
		e := r.entries[id]
		if filter.DonatorEmail != "" && e.DonatorEmail != filter.DonatorEmail {
			continue
		}
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		out = append(out, e)
	}

	return out, nil
}

func (r *InMemoryRepository) FindOne(ctx context.Context, id string) (*models.FoodEntry, error) {
	oid, err := models.ParseID(id)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[oid]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &e, nil
}

func (r *InMemoryRepository) UpdateFields(ctx context.Context, id string, patch models.FoodPatch) (models.UpdateResult, error) {
	oid, err := models.ParseID(id)
	if err != nil {
		return models.UpdateResult{}, err
	}
	if len(patch.Fields()) == 0 {
		return models.UpdateResult{}, common.ErrEmptyPatch
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[oid]
	if !ok {
		return models.UpdateResult{}, nil
	}

	before := e
	patch.Apply(&e)
	modified := int64(0)
	if e != before {
		modified = 1
	}
	e.UpdatedAt = time.Now().UTC()
	r.entries[oid] = e

	return models.UpdateResult{MatchedCount: 1, ModifiedCount: modified}, nil
}

func (r *InMemoryRepository) Remove(ctx context.Context, id string) (int64, error) {
	oid, err := models.ParseID(id)
	if err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[oid]; !ok {
		return 0, nil
	}
	delete(r.entries, oid)
	for i, o := range r.order {
		if o == oid {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return 1, nil
}
