package records

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MethuParoi/share-bites-server-codebase/internal/common"
	"github.com/MethuParoi/share-bites-server-codebase/internal/server/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoRepository implements Repository over a MongoDB collection.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database, collection string) *MongoRepository {
	return &MongoRepository{coll: db.Collection(collection)}
}

// EnsureIndexes creates the unique user_id index that makes Upsert safe under
// concurrent first writes.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("user_id_unique"),
	})
	if err != nil {
		return fmt.Errorf("create index on %s: %w", r.coll.Name(), err)
	}
	return nil
}

func byUser(userID string) bson.D {
	return bson.D{{Key: "user_id", Value: userID}}
}

// recordQuery matches records holding an item with the filter's food id; an
// empty id matches all.
func recordQuery(filter models.RecordFilter) bson.D {
	q := bson.D{}
	if filter.FoodID != "" {
		q = append(q, bson.E{Key: "foods.foodId", Value: filter.FoodID})
	}
	return q
}

func setFoods(foods []models.FoodRef, now time.Time) bson.D {
	return bson.D{{Key: "$set", Value: bson.D{
		{Key: "foods", Value: foods},
		{Key: "updatedAt", Value: now},
	}}}
}

// upsertFoods replaces foods and sets createdAt only when the record is
// inserted.
func upsertFoods(foods []models.FoodRef, now time.Time) bson.D {
	return append(setFoods(foods, now),
		bson.E{Key: "$setOnInsert", Value: bson.D{{Key: "createdAt", Value: now}}})
}

func (r *MongoRepository) Upsert(ctx context.Context, userID string, foods []models.FoodRef) (models.UpsertResult, error) {
	if foods == nil {
		foods = []models.FoodRef{}
	}

	res, err := r.coll.UpdateOne(ctx, byUser(userID), upsertFoods(foods, time.Now().UTC()),
		options.UpdateOne().SetUpsert(true))
	if err != nil {
		return models.UpsertResult{}, fmt.Errorf("db error: %w", err)
	}

	out := models.UpsertResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}
	if oid, ok := res.UpsertedID.(bson.ObjectID); ok {
		out.UpsertedID = oid.Hex()
	}

	return out, nil
}

func (r *MongoRepository) FindOne(ctx context.Context, userID string) (*models.UserRecord, error) {
	var rec models.UserRecord
	if err := r.coll.FindOne(ctx, byUser(userID)).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if rec.Foods == nil {
		rec.Foods = []models.FoodRef{}
	}

	return &rec, nil
}

func (r *MongoRepository) FindAll(ctx context.Context, filter models.RecordFilter) ([]models.UserRecord, error) {
	cur, err := r.coll.Find(ctx, recordQuery(filter))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	recs := []models.UserRecord{}
	if err := cur.All(ctx, &recs); err != nil {
		return nil, fmt.Errorf("decode error: %w", err)
	}

	return recs, nil
}

func (r *MongoRepository) UpdateFields(ctx context.Context, userID string, patch models.RecordPatch) (models.UpdateResult, error) {
	if patch.Foods == nil {
		return models.UpdateResult{}, common.ErrEmptyPatch
	}
	foods := *patch.Foods
	if foods == nil {
		foods = []models.FoodRef{}
	}

	res, err := r.coll.UpdateOne(ctx, byUser(userID), setFoods(foods, time.Now().UTC()))
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("db error: %w", err)
	}

	return models.UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

// pullFood removes every embedded item whose foodId matches.
func pullFood(foodID string) bson.D {
	return bson.D{{Key: "$pull", Value: bson.D{
		{Key: "foods", Value: bson.D{{Key: "foodId", Value: foodID}}},
	}}}
}

func (r *MongoRepository) Pull(ctx context.Context, userID, foodID string) (int64, error) {
	res, err := r.coll.UpdateOne(ctx, byUser(userID), pullFood(foodID))
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *MongoRepository) PullFromAll(ctx context.Context, foodID string) (int64, error) {
	res, err := r.coll.UpdateMany(ctx, recordQuery(models.RecordFilter{FoodID: foodID}), pullFood(foodID))
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return res.ModifiedCount, nil
}
