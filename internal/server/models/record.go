package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// FoodRef is one food item embedded in a user's record. FoodID is the hex id
// of the food bank entry it refers to.
type FoodRef struct {
	FoodID         string    `bson:"foodId"          json:"foodId"`
	FoodName       string    `bson:"foodName"        json:"foodName"`
	FoodImage      string    `bson:"foodImage"       json:"foodImage"`
	Quantity       Quantity  `bson:"foodQuantity"    json:"foodQuantity"`
	PickupLocation string    `bson:"pickupLocation"  json:"pickupLocation"`
	ExpiryDate     string    `bson:"expiredDateTime" json:"expiredDateTime"`
	Notes          string    `bson:"additionalNotes" json:"additionalNotes"`
	AddedAt        time.Time `bson:"addedAt"         json:"addedAt"`
}

// UserRecord aggregates the food a user supplied or requested. There is one
// record per user per collection, keyed by UserID (the user's email).
type UserRecord struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID    string        `bson:"user_id"       json:"user_id"`
	Foods     []FoodRef     `bson:"foods"         json:"foods"`
	CreatedAt time.Time     `bson:"createdAt"     json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt"     json:"updatedAt"`
}

// RecordPatch is a partial update of a UserRecord.
type RecordPatch struct {
	Foods *[]FoodRef `json:"foods"`
}

// UpsertResult reports the outcome of a record upsert.
type UpsertResult struct {
	MatchedCount  int64  `json:"matchedCount"`
	ModifiedCount int64  `json:"modifiedCount"`
	UpsertedID    string `json:"upsertedId,omitempty"`
}

// RecordFilter narrows FindAll over a record collection. An empty FoodID
// matches every record.
type RecordFilter struct {
	FoodID string
}
