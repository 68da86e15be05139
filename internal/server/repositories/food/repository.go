// Package food stores food bank entries.
package food

import (
	"context"

	"github.com/MethuParoi/share-bites-server-codebase/internal/server/models"
)

// CollectionName is the document collection holding food bank entries.
const CollectionName = "food-bank"

// Repository is the store adapter for the food bank. Identifiers are hex
// ObjectIDs; malformed ones yield common.ErrInvalidIdentifier.
type Repository interface {
	Insert(ctx context.Context, entry *models.FoodEntry) (*models.FoodEntry, error)
	FindAll(ctx context.Context, filter models.FoodFilter) ([]models.FoodEntry, error)
	FindOne(ctx context.Context, id string) (*models.FoodEntry, error)
	UpdateFields(ctx context.Context, id string, patch models.FoodPatch) (models.UpdateResult, error)
	Remove(ctx context.Context, id string) (int64, error)
}
