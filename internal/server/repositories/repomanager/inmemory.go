package repomanager

import (
	"context"

	"github.com/MethuParoi/share-bites-server-codebase/internal/server/repositories/food"
	"github.com/MethuParoi/share-bites-server-codebase/internal/server/repositories/records"
)

// InMemoryRepositoryManager keeps all collections in process memory. It is
// used for local runs and tests.
type InMemoryRepositoryManager struct {
	food      *food.InMemoryRepository
	added     *records.InMemoryRepository
	requested *records.InMemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		food:      food.NewInMemoryRepository(),
		added:     records.NewInMemoryRepository(),
		requested: records.NewInMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) Food() food.Repository             { return m.food }
func (m *InMemoryRepositoryManager) AddedFood() records.Repository     { return m.added }
func (m *InMemoryRepositoryManager) RequestedFood() records.Repository { return m.requested }

func (m *InMemoryRepositoryManager) EnsureIndexes(ctx context.Context) error { return nil }
func (m *InMemoryRepositoryManager) Close(ctx context.Context) error         { return nil }
