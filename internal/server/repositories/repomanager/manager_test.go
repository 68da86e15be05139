package repomanager

import (
	"context"
	"errors"
	"testing"

	"github.com/MethuParoi/share-bites-server-codebase/internal/server/repositories/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func newClient(t *testing.T) *mongo.Client {
	t.Helper()
	c, err := mongo.Connect(options.Client().ApplyURI("mongodb://localhost:1"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Disconnect(context.Background()) })
	return c
}

func TestInMemoryRepositoryManager(t *testing.T) {
	var m RepositoryManager = NewInMemoryRepositoryManager()

	assert.NotNil(t, m.Food())
	assert.NotNil(t, m.AddedFood())
	assert.NotNil(t, m.RequestedFood())
	assert.NotSame(t, m.AddedFood(), m.RequestedFood())
	assert.NoError(t, m.EnsureIndexes(context.Background()))
	assert.NoError(t, m.Close(context.Background()))
}

func TestMongoRepositoryManager_EnsureIndexes(t *testing.T) {
	m := NewMongoRepositoryManager(newClient(t), "share-bites-test")
	var _ RepositoryManager = m

	var seen []*records.MongoRepository
	orig := ensureIndexes
	ensureIndexes = func(ctx context.Context, r *records.MongoRepository) error {
		seen = append(seen, r)
		return nil
	}
	defer func() { ensureIndexes = orig }()

	require.NoError(t, m.EnsureIndexes(context.Background()))
	assert.Equal(t, []*records.MongoRepository{m.added, m.requested}, seen)
}

func TestMongoRepositoryManager_EnsureIndexes_Error(t *testing.T) {
	m := NewMongoRepositoryManager(newClient(t), "share-bites-test")

	calls := 0
	orig := ensureIndexes
	ensureIndexes = func(ctx context.Context, r *records.MongoRepository) error {
		calls++
		return errors.New("boom")
	}
	defer func() { ensureIndexes = orig }()

	err := m.EnsureIndexes(context.Background())
	assert.EqualError(t, err, "boom")
	assert.Equal(t, 1, calls)
}
