package records

import (
	"context"
	"testing"
	"time"

	"github.com/MethuParoi/share-bites-server-codebase/internal/common"
	"github.com/MethuParoi/share-bites-server-codebase/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func TestRecordQuery(t *testing.T) {
	tests := []struct {
		name   string
		filter models.RecordFilter
		want   bson.D
	}{
		{"empty matches all", models.RecordFilter{}, bson.D{}},
		{"by food id", models.RecordFilter{FoodID: "abc"}, bson.D{{Key: "foods.foodId", Value: "abc"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, recordQuery(tt.filter))
		})
	}
}

func TestUpdateDocuments(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	foods := []models.FoodRef{{FoodID: "abc", FoodName: "Rice"}}

	set := bson.D{{Key: "$set", Value: bson.D{
		{Key: "foods", Value: foods},
		{Key: "updatedAt", Value: now},
	}}}

	tests := []struct {
		name string
		got  bson.D
		want bson.D
	}{
		{"by user", byUser("a@x.io"), bson.D{{Key: "user_id", Value: "a@x.io"}}},
		{"set foods", setFoods(foods, now), set},
		{
			"upsert sets createdAt on insert only",
			upsertFoods(foods, now),
			append(set, bson.E{Key: "$setOnInsert", Value: bson.D{{Key: "createdAt", Value: now}}}),
		},
		{
			"pull by food id",
			pullFood("abc"),
			bson.D{{Key: "$pull", Value: bson.D{{Key: "foods", Value: bson.D{{Key: "foodId", Value: "abc"}}}}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestUpsertFoods_DocumentEncodes(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	b, err := bson.Marshal(upsertFoods([]models.FoodRef{{FoodID: "abc"}}, now))
	require.NoError(t, err)

	var doc struct {
		Set         bson.M `bson:"$set"`
		SetOnInsert bson.M `bson:"$setOnInsert"`
	}
	require.NoError(t, bson.Unmarshal(b, &doc))
	assert.Contains(t, doc.Set, "foods")
	assert.Contains(t, doc.Set, "updatedAt")
	assert.NotContains(t, doc.Set, "createdAt")
	assert.Contains(t, doc.SetOnInsert, "createdAt")
}

func TestMongoRepository_EmptyPatch(t *testing.T) {
	client, err := mongo.Connect(options.Client().ApplyURI("mongodb://localhost:1"))
	require.NoError(t, err)
	defer func() { _ = client.Disconnect(context.Background()) }()

	r := NewMongoRepository(client.Database("share-bites-test"), AddedCollection)
	_, err = r.UpdateFields(context.Background(), "a@x.io", models.RecordPatch{})
	assert.ErrorIs(t, err, common.ErrEmptyPatch)
}
