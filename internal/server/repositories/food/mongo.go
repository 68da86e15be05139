package food

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MethuParoi/share-bites-server-codebase/internal/common"
	"github.com/MethuParoi/share-bites-server-codebase/internal/server/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// MongoRepository implements Repository over a MongoDB collection.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CollectionName)}
}

func byID(oid bson.ObjectID) bson.D {
	return bson.D{{Key: "_id", Value: oid}}
}

// foodQuery matches entries by donator and status; empty fields match all.
func foodQuery(filter models.FoodFilter) bson.D {
	q := bson.D{}
	if filter.DonatorEmail != "" {
		q = append(q, bson.E{Key: "donatorEmail", Value: filter.DonatorEmail})
	}
	if filter.Status != "" {
		q = append(q, bson.E{Key: "foodStatus", Value: filter.Status})
	}
	return q
}

// setFields sets the patched fields and stamps updatedAt.
func setFields(fields bson.D, now time.Time) bson.D {
	set := make(bson.D, 0, len(fields)+1)
	set = append(set, fields...)
	set = append(set, bson.E{Key: "updatedAt", Value: now})
	return bson.D{{Key: "$set", Value: set}}
}

func (r *MongoRepository) Insert(ctx context.Context, entry *models.FoodEntry) (*models.FoodEntry, error) {
	res, err := r.coll.InsertOne(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	oid, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	entry.ID = oid

	return entry, nil
}

func (r *MongoRepository) FindAll(ctx context.Context, filter models.FoodFilter) ([]models.FoodEntry, error) {
	cur, err := r.coll.Find(ctx, foodQuery(filter))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	entries := []models.FoodEntry{}
	if err := cur.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode error: %w", err)
	}

	return entries, nil
}

func (r *MongoRepository) FindOne(ctx context.Context, id string) (*models.FoodEntry, error) {
	oid, err := models.ParseID(id)
	if err != nil {
		return nil, err
	}

	var entry models.FoodEntry
	if err := r.coll.FindOne(ctx, byID(oid)).Decode(&entry); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &entry, nil
}

func (r *MongoRepository) UpdateFields(ctx context.Context, id string, patch models.FoodPatch) (models.UpdateResult, error) {
	oid, err := models.ParseID(id)
	if err != nil {
		return models.UpdateResult{}, err
	}

	fields := patch.Fields()
	if len(fields) == 0 {
		return models.UpdateResult{}, common.ErrEmptyPatch
	}

	res, err := r.coll.UpdateOne(ctx, byID(oid), setFields(fields, time.Now().UTC()))
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("db error: %w", err)
	}

	return models.UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

func (r *MongoRepository) Remove(ctx context.Context, id string) (int64, error) {
	oid, err := models.ParseID(id)
	if err != nil {
		return 0, err
	}

	res, err := r.coll.DeleteOne(ctx, byID(oid))
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return res.DeletedCount, nil
}
