package repository

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iliyamo/movie-catalog/internal/database"
)

// User mirrors the 'users' collection. Email is stored lowercased and acts
// as the unique key; Password holds the hex SHA-256 digest and is never
// serialized into API responses.
type User struct {
	ObjectID primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`
	Role     string             `bson:"role" json:"role"`
}

// ErrUserNotFound indicates that no user document matches the given email.
var ErrUserNotFound = errors.New("user not found")

type UserRepo struct{ users *mongo.Collection }

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{users: db.Collection(database.UsersCollection)}
}

// EnsureIndexes creates the unique index on email that backs the
// idempotent-insert semantics of InsertIdempotent under concurrency.
func (r *UserRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// InsertIdempotent stores a credential entry unless one already exists for
// the email, in which case the existing entry is returned unchanged. The
// caller is expected to have normalized the email and digested the
// password.
func (r *UserRepo) InsertIdempotent(ctx context.Context, u User) (*User, error) {
	var existing User
	err := r.users.FindOne(ctx, bson.M{"email": u.Email}).Decode(&existing)
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	res, err := r.users.InsertOne(ctx, u)
	if err != nil {
		// A concurrent insert of the same email hits the unique index;
		// resolve it the same way as a plain duplicate.
		if mongo.IsDuplicateKeyError(err) {
			if err := r.users.FindOne(ctx, bson.M{"email": u.Email}).Decode(&existing); err != nil {
				return nil, err
			}
			return &existing, nil
		}
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ObjectID = oid
	}
	return &u, nil
}

// GetByEmail fetches a user by exact (already lowercased) email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns all users with the password digest projected out.
func (r *UserRepo) List(ctx context.Context) ([]User, error) {
	cur, err := r.users.Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"password": 0}))
	if err != nil {
		return nil, err
	}
	var out []User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// emailFilter matches an email ignoring case. Admin role updates and
// deletions are case-insensitive lookups, unlike the normalize-on-write
// rule applied to new accounts.
func emailFilter(email string) bson.M {
	return bson.M{"email": bson.M{
		"$regex":   "^" + regexp.QuoteMeta(email) + "$",
		"$options": "i",
	}}
}

// UpdateRoleByEmail sets the role of the user whose email matches
// case-insensitively and returns the updated document.
func (r *UserRepo) UpdateRoleByEmail(ctx context.Context, email, role string) (*User, error) {
	var u User
	err := r.users.FindOneAndUpdate(ctx,
		emailFilter(email),
		bson.M{"$set": bson.M{"role": role}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// DeleteByEmail removes the user whose email matches case-insensitively.
func (r *UserRepo) DeleteByEmail(ctx context.Context, email string) error {
	res, err := r.users.DeleteOne(ctx, emailFilter(email))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
