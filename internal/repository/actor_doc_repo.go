package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iliyamo/movie-catalog/internal/database"
)

// ActorDoc mirrors the 'atores' collection. The document-store mirror keeps
// only the surrogate id and the name; age and nationality stay relational.
type ActorDoc struct {
	ObjectID primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID       int64              `bson:"id" json:"id"`
	Name     string             `bson:"nome" json:"name"`
}

type ActorDocRepo struct {
	actors *mongo.Collection
	seq    *SequenceRepo
}

func NewActorDocRepo(db *mongo.Database, seq *SequenceRepo) *ActorDocRepo {
	return &ActorDocRepo{actors: db.Collection(database.ActorsCollection), seq: seq}
}

// EnsureIndexes creates the unique index on the actor name backing the
// idempotent insert.
func (r *ActorDocRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.actors.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "nome", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// InsertIdempotent inserts an actor document keyed by name, returning the
// existing document unchanged when one is already present.
func (r *ActorDocRepo) InsertIdempotent(ctx context.Context, name string) (*ActorDoc, error) {
	var existing ActorDoc
	err := r.actors.FindOne(ctx, bson.M{"nome": name}).Decode(&existing)
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	id, err := r.seq.Next(ctx, database.ActorsCollection, database.ActorsCollection)
	if err != nil {
		return nil, err
	}
	doc := ActorDoc{ID: id, Name: name}

	res, err := r.actors.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if err := r.actors.FindOne(ctx, bson.M{"nome": name}).Decode(&existing); err != nil {
				return nil, err
			}
			return &existing, nil
		}
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ObjectID = oid
	}
	return &doc, nil
}

// FindByID fetches an actor document by ObjectID hex or numeric surrogate
// id.
func (r *ActorDocRepo) FindByID(ctx context.Context, rawID string) (*ActorDoc, error) {
	filter, err := idFilter(rawID)
	if err != nil {
		return nil, err
	}
	var doc ActorDoc
	err = r.actors.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrActorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// List returns all actor documents ordered by surrogate id.
func (r *ActorDocRepo) List(ctx context.Context) ([]ActorDoc, error) {
	cur, err := r.actors.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var out []ActorDoc
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateByID applies a $set of the patch fields and returns the updated
// document.
func (r *ActorDocRepo) UpdateByID(ctx context.Context, rawID string, patch map[string]any) (*ActorDoc, error) {
	filter, err := idFilter(rawID)
	if err != nil {
		return nil, err
	}
	delete(patch, "_id")
	var doc ActorDoc
	err = r.actors.FindOneAndUpdate(ctx, filter,
		bson.M{"$set": patch},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrActorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// DeleteByID removes an actor document by ObjectID hex or numeric surrogate
// id.
func (r *ActorDocRepo) DeleteByID(ctx context.Context, rawID string) error {
	filter, err := idFilter(rawID)
	if err != nil {
		return err
	}
	res, err := r.actors.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrActorNotFound
	}
	return nil
}
