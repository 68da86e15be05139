package models

import (
	"fmt"

	"github.com/MethuParoi/share-bites-server-codebase/internal/common"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// ParseID resolves a path identifier into an ObjectID.
func ParseID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.NilObjectID, fmt.Errorf("%w: %q", common.ErrInvalidIdentifier, id)
	}
	return oid, nil
}
