package main // seeds the first admin account

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/movie-catalog/internal/database"
	"github.com/iliyamo/movie-catalog/internal/repository"
	"github.com/iliyamo/movie-catalog/internal/service"
)

// Every role-granting endpoint requires an existing admin token, and public
// signup only issues the view role, so the first admin account has to be
// created out of band. Run this once against the document store:
//
//	createadmin -email admin@example.com -password <password>
func main() {
	email := flag.String("email", "", "admin email")
	password := flag.String("password", "", "admin password")
	flag.Parse()
	if *email == "" || *password == "" {
		log.Fatal("usage: createadmin -email <email> -password <password>")
	}

	_ = godotenv.Load()
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		log.Fatal("missing required env var: MONGO_URI")
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "filmes_api"
	}

	db, err := database.OpenMongo(uri, dbName)
	if err != nil {
		log.Fatalf("mongo connect failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := repository.NewUserRepo(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatalf("ensure index failed: %v", err)
	}

	// Registration is an idempotent insert; no token is minted here, so the
	// signing secret is not needed.
	auth := service.NewAuth(users, "")
	u, err := auth.Register(ctx, *email, *password, "admin")
	if err != nil {
		log.Fatalf("create admin failed: %v", err)
	}
	if u.Role != "admin" {
		log.Fatalf("account %s already exists with role %q; promote it via PUT /v1/users/:email/role", u.Email, u.Role)
	}
	log.Printf("admin account ready: %s", u.Email)
}
