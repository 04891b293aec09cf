package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iliyamo/movie-catalog/internal/database"
)

// SequenceRepo allocates monotonically increasing integer surrogate ids for
// document-store entities. Counters live in the 'counters' collection as
// {_id: <sequence name>, seq: <last allocated value>}.
//
// Steady-state allocation is a single atomic find-and-increment with
// upsert, so concurrent callers can never observe the same value twice.
// Cold start seeds the counter from the highest existing id in the entity
// collection via $setOnInsert, which is itself atomic: when two first
// callers race, only one seed document is created and both increments land
// on it.
type SequenceRepo struct {
	db       *mongo.Database
	counters *mongo.Collection
}

func NewSequenceRepo(db *mongo.Database) *SequenceRepo {
	return &SequenceRepo{db: db, counters: db.Collection(database.CountersCollection)}
}

// Next returns the next value of the named sequence. When the counter does
// not exist yet and fallback names an entity collection, the counter is
// seeded so that the first allocated value is one past the highest id
// already present in that collection (or 1 when it is empty).
func (r *SequenceRepo) Next(ctx context.Context, name, fallback string) (int64, error) {
	err := r.counters.FindOne(ctx, bson.M{"_id": name}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		seed, err := r.maxID(ctx, fallback)
		if err != nil {
			return 0, err
		}
		// $setOnInsert leaves an existing counter untouched, so a lost
		// seeding race is harmless.
		if _, err := r.counters.UpdateOne(ctx,
			bson.M{"_id": name},
			bson.M{"$setOnInsert": bson.M{"seq": seed}},
			options.Update().SetUpsert(true),
		); err != nil {
			return 0, err
		}
	} else if err != nil {
		return 0, err
	}

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err = r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

// maxID scans the fallback collection for the highest id field. Returns 0
// when the collection is empty or no fallback was given, so the first
// increment yields 1.
func (r *SequenceRepo) maxID(ctx context.Context, fallback string) (int64, error) {
	if fallback == "" {
		return 0, nil
	}
	var doc struct {
		ID int64 `bson:"id"`
	}
	err := r.db.Collection(fallback).FindOne(ctx, bson.M{},
		options.FindOne().SetSort(bson.D{{Key: "id", Value: -1}}),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return doc.ID, nil
}
