// Package records stores per-user food records. The same adapter backs the
// "added" and "requested" collections; they differ only in name.
package records

import (
	"context"

	"github.com/MethuParoi/share-bites-server-codebase/internal/server/models"
)

const (
	AddedCollection     = "user-food"
	RequestedCollection = "requested-food"
)

// Repository is the store adapter for one record collection. Records are
// keyed by user id and are never removed as a whole.
type Repository interface {
	// Upsert replaces the foods of the user's record, creating it if absent.
	Upsert(ctx context.Context, userID string, foods []models.FoodRef) (models.UpsertResult, error)
	FindOne(ctx context.Context, userID string) (*models.UserRecord, error)
	FindAll(ctx context.Context, filter models.RecordFilter) ([]models.UserRecord, error)
	UpdateFields(ctx context.Context, userID string, patch models.RecordPatch) (models.UpdateResult, error)
	// Pull removes the item with foodID from the user's record. Pulling an
	// absent item is a no-op.
	Pull(ctx context.Context, userID, foodID string) (int64, error)
	// PullFromAll removes foodID from every record in the collection.
	PullFromAll(ctx context.Context, foodID string) (int64, error)
}
