package repository

import (
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// idFilter builds a document-store filter from a raw path identifier. A
// valid ObjectID hex string addresses the native _id; a plain integer
// addresses the allocated surrogate id field. Anything else is rejected as
// ErrInvalidID.
func idFilter(raw string) (bson.M, error) {
	if oid, err := primitive.ObjectIDFromHex(raw); err == nil {
		return bson.M{"_id": oid}, nil
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return bson.M{"id": n}, nil
	}
	return nil, ErrInvalidID
}
