package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names of the document store. The movie documents embed the
// genre name and the actor name list, so there is no standalone genre
// collection; counters holds one {_id, seq} document per surrogate-id
// sequence.
const (
	MoviesCollection   = "filmes"
	ActorsCollection   = "atores"
	UsersCollection    = "users"
	CountersCollection = "counters"
)

// OpenMongo connects to MongoDB, verifies the connection with a ping and
// returns a handle to the application database.
func OpenMongo(uri, dbName string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}
	return client.Database(dbName), nil
}
