// Package repomanager vends the store adapters for the three collections and
// owns the lifecycle of the underlying store.
package repomanager

import (
	"context"

	"github.com/MethuParoi/share-bites-server-codebase/internal/server/repositories/food"
	"github.com/MethuParoi/share-bites-server-codebase/internal/server/repositories/records"
)

type RepositoryManager interface {
	EnsureIndexes(ctx context.Context) error
	Food() food.Repository
	AddedFood() records.Repository
	RequestedFood() records.Repository
	Close(ctx context.Context) error
}
