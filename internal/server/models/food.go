// Package models defines the documents persisted in the food store.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	StatusAvailable = "available"
	StatusRequested = "requested"
)

// FoodEntry is a listing in the shared food bank. DonatorEmail is the owner;
// it is taken from the session on insert and never changes.
type FoodEntry struct {
	ID             bson.ObjectID `bson:"_id,omitempty"   json:"_id"`
	FoodName       string        `bson:"foodName"        json:"foodName"`
	FoodImage      string        `bson:"foodImage"       json:"foodImage"`
	Quantity       Quantity      `bson:"foodQuantity"    json:"foodQuantity"`
	PickupLocation string        `bson:"pickupLocation"  json:"pickupLocation"`
	ExpiryDate     string        `bson:"expiredDateTime" json:"expiredDateTime"`
	Notes          string        `bson:"additionalNotes" json:"additionalNotes"`
	Status         string        `bson:"foodStatus"      json:"foodStatus"`
	DonatorName    string        `bson:"donatorName"     json:"donatorName"`
	DonatorEmail   string        `bson:"donatorEmail"    json:"donatorEmail"`
	DonatorImage   string        `bson:"donatorImage"    json:"donatorImage"`
	CreatedAt      time.Time     `bson:"createdAt"       json:"createdAt"`
	UpdatedAt      time.Time     `bson:"updatedAt"       json:"updatedAt"`
}

// FoodPatch is a partial update of a FoodEntry. Nil fields are left alone.
// The owner fields are deliberately absent.
type FoodPatch struct {
	FoodName       *string   `json:"foodName"`
	FoodImage      *string   `json:"foodImage"`
	Quantity       *Quantity `json:"foodQuantity"`
	PickupLocation *string   `json:"pickupLocation"`
	ExpiryDate     *string   `json:"expiredDateTime"`
	Notes          *string   `json:"additionalNotes"`
	Status         *string   `json:"foodStatus"`
}

// Fields returns the set fields keyed by their document names.
func (p FoodPatch) Fields() bson.D {
	var d bson.D
	add := func(key string, v *string) {
		if v != nil {
			d = append(d, bson.E{Key: key, Value: *v})
		}
	}

	add("foodName", p.FoodName)
	add("foodImage", p.FoodImage)
	if p.Quantity != nil {
		d = append(d, bson.E{Key: "foodQuantity", Value: *p.Quantity})
	}
	add("pickupLocation", p.PickupLocation)
	add("expiredDateTime", p.ExpiryDate)
	add("additionalNotes", p.Notes)
	add("foodStatus", p.Status)

	return d
}

// Apply copies the set fields onto e.
func (p FoodPatch) Apply(e *FoodEntry) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}

	set(&e.FoodName, p.FoodName)
	set(&e.FoodImage, p.FoodImage)
	if p.Quantity != nil {
		e.Quantity = *p.Quantity
	}
	set(&e.PickupLocation, p.PickupLocation)
	set(&e.ExpiryDate, p.ExpiryDate)
	set(&e.Notes, p.Notes)
	set(&e.Status, p.Status)
}

// FoodFilter narrows FindAll. Empty fields match everything.
type FoodFilter struct {
	DonatorEmail string
	Status       string
}

// UpdateResult reports how many documents an update touched.
type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}
