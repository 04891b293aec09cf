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

// MovieDoc mirrors the 'filmes' collection. Unlike the relational row, the
// document is denormalized: the genre is embedded as a plain name and the
// cast as an ordered list of actor names, not references. ID is an
// allocator-generated surrogate whose sequence is independent from the
// relational primary key, so the two must never be joined on.
type MovieDoc struct {
	ObjectID    primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID          int64              `bson:"id" json:"id"`
	Title       string             `bson:"titulo" json:"title"`
	Year        int                `bson:"ano" json:"year"`
	Description string             `bson:"descricao" json:"description"`
	Genre       string             `bson:"genero" json:"genre"`
	Actors      []string           `bson:"atores" json:"actors"`
}

type MovieDocRepo struct {
	movies *mongo.Collection
	seq    *SequenceRepo
}

func NewMovieDocRepo(db *mongo.Database, seq *SequenceRepo) *MovieDocRepo {
	return &MovieDocRepo{movies: db.Collection(database.MoviesCollection), seq: seq}
}

// EnsureIndexes creates the unique index on the title. The find-then-insert
// idempotency of InsertIdempotent is only safe against concurrent callers
// because this constraint exists at the storage layer.
func (r *MovieDocRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.movies.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "titulo", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// InsertIdempotent inserts a movie document keyed by its title. When a
// document with the same title already exists it is returned unchanged; a
// surrogate id is only allocated for genuinely new documents.
func (r *MovieDocRepo) InsertIdempotent(ctx context.Context, doc MovieDoc) (*MovieDoc, error) {
	var existing MovieDoc
	err := r.movies.FindOne(ctx, bson.M{"titulo": doc.Title}).Decode(&existing)
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	id, err := r.seq.Next(ctx, database.MoviesCollection, database.MoviesCollection)
	if err != nil {
		return nil, err
	}
	doc.ID = id
	if doc.Actors == nil {
		doc.Actors = []string{}
	}

	res, err := r.movies.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Lost an insert race on the title index; the winner's
			// document is the idempotent result.
			if err := r.movies.FindOne(ctx, bson.M{"titulo": doc.Title}).Decode(&existing); err != nil {
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

// FindByTitle fetches a movie document by its exact title.
func (r *MovieDocRepo) FindByTitle(ctx context.Context, title string) (*MovieDoc, error) {
	var doc MovieDoc
	err := r.movies.FindOne(ctx, bson.M{"titulo": title}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrMovieNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// FindByID fetches a movie document by ObjectID hex or numeric surrogate
// id, auto-detected by format.
func (r *MovieDocRepo) FindByID(ctx context.Context, rawID string) (*MovieDoc, error) {
	filter, err := idFilter(rawID)
	if err != nil {
		return nil, err
	}
	var doc MovieDoc
	err = r.movies.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrMovieNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// List returns all movie documents ordered by surrogate id.
func (r *MovieDocRepo) List(ctx context.Context) ([]MovieDoc, error) {
	cur, err := r.movies.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var out []MovieDoc
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByID removes a movie document by its numeric surrogate id.
func (r *MovieDocRepo) DeleteByID(ctx context.Context, id int64) error {
	res, err := r.movies.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrMovieNotFound
	}
	return nil
}

// MergeUpdate applies merge-patch semantics: the existing document is
// fetched, the patch fields are laid over it, and the merged result is
// persisted and returned. Patch fields win on collision; the _id is never
// replaced.
func (r *MovieDocRepo) MergeUpdate(ctx context.Context, rawID string, patch map[string]any) (*MovieDoc, error) {
	filter, err := idFilter(rawID)
	if err != nil {
		return nil, err
	}

	var current bson.M
	if err := r.movies.FindOne(ctx, filter).Decode(&current); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}

	merged := bson.M{}
	for k, v := range current {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}
	delete(merged, "_id")

	var doc MovieDoc
	err = r.movies.FindOneAndUpdate(ctx, filter,
		bson.M{"$set": merged},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrMovieNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// DistinctGenres returns the distinct genre names embedded in movie
// documents. The document store has no standalone genre entity.
func (r *MovieDocRepo) DistinctGenres(ctx context.Context) ([]string, error) {
	vals, err := r.movies.Distinct(ctx, "genero", bson.M{})
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out, nil
}

// FindByGenre returns all movie documents with the given embedded genre
// name.
func (r *MovieDocRepo) FindByGenre(ctx context.Context, genre string) ([]MovieDoc, error) {
	cur, err := r.movies.Find(ctx, bson.M{"genero": genre})
	if err != nil {
		return nil, err
	}
	var out []MovieDoc
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindByActor returns all movie documents whose embedded actor list
// contains the given name.
func (r *MovieDocRepo) FindByActor(ctx context.Context, name string) ([]MovieDoc, error) {
	cur, err := r.movies.Find(ctx, bson.M{"atores": name})
	if err != nil {
		return nil, err
	}
	var out []MovieDoc
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PushActor appends an actor name to a movie's embedded list. Membership
// checking is the caller's responsibility; this is a plain array push.
func (r *MovieDocRepo) PushActor(ctx context.Context, rawID, name string) error {
	filter, err := idFilter(rawID)
	if err != nil {
		return err
	}
	res, err := r.movies.UpdateOne(ctx, filter, bson.M{"$push": bson.M{"atores": name}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrMovieNotFound
	}
	return nil
}

// PullActor removes all occurrences of an actor name from a movie's
// embedded list.
func (r *MovieDocRepo) PullActor(ctx context.Context, rawID, name string) error {
	filter, err := idFilter(rawID)
	if err != nil {
		return err
	}
	res, err := r.movies.UpdateOne(ctx, filter, bson.M{"$pull": bson.M{"atores": name}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrMovieNotFound
	}
	return nil
}
