package repomanager

import (
	"context"

	"github.com/MethuParoi/share-bites-server-codebase/internal/server/repositories/food"
	"github.com/MethuParoi/share-bites-server-codebase/internal/server/repositories/records"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// MongoRepositoryManager vends MongoDB-backed repositories sharing one client.
type MongoRepositoryManager struct {
	client    *mongo.Client
	food      *food.MongoRepository
	added     *records.MongoRepository
	requested *records.MongoRepository
}

// ensureIndexes is a seam for testing index creation without a server.
var ensureIndexes = func(ctx context.Context, r *records.MongoRepository) error {
	return r.EnsureIndexes(ctx)
}

func NewMongoRepositoryManager(client *mongo.Client, dbName string) *MongoRepositoryManager {
	db := client.Database(dbName)
	return &MongoRepositoryManager{
		client:    client,
		food:      food.NewMongoRepository(db),
		added:     records.NewMongoRepository(db, records.AddedCollection),
		requested: records.NewMongoRepository(db, records.RequestedCollection),
	}
}

func (m *MongoRepositoryManager) Food() food.Repository             { return m.food }
func (m *MongoRepositoryManager) AddedFood() records.Repository     { return m.added }
func (m *MongoRepositoryManager) RequestedFood() records.Repository { return m.requested }

// EnsureIndexes creates the unique user_id index on both record collections.
func (m *MongoRepositoryManager) EnsureIndexes(ctx context.Context) error {
	for _, r := range []*records.MongoRepository{m.added, m.requested} {
		if err := ensureIndexes(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

// Close disconnects the client.
func (m *MongoRepositoryManager) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
