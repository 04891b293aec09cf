package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/movie-catalog/internal/config"
	"github.com/iliyamo/movie-catalog/internal/database"
	"github.com/iliyamo/movie-catalog/internal/handler"
	"github.com/iliyamo/movie-catalog/internal/logging"
	"github.com/iliyamo/movie-catalog/internal/omdb"
	"github.com/iliyamo/movie-catalog/internal/queue"
	"github.com/iliyamo/movie-catalog/internal/repository"
	"github.com/iliyamo/movie-catalog/internal/router"
	"github.com/iliyamo/movie-catalog/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment
	cfg := config.Load()

	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	pg, err := database.OpenPostgres(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("postgres connect failed", zap.Error(err))
	}
	mongoDB, err := database.OpenMongo(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Fatal("mongo connect failed", zap.Error(err))
	}

	// Repositories.
	genres := repository.NewGenreRepo(pg)
	movies := repository.NewMovieRepo(pg)
	actors := repository.NewActorRepo(pg)
	seq := repository.NewSequenceRepo(mongoDB)
	movieDocs := repository.NewMovieDocRepo(mongoDB, seq)
	actorDocs := repository.NewActorDocRepo(mongoDB, seq)
	users := repository.NewUserRepo(mongoDB)

	// Natural-key uniqueness backs the idempotent inserts; create the
	// indexes up front.
	idxCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for name, ensure := range map[string]func(context.Context) error{
		"filmes": movieDocs.EnsureIndexes,
		"atores": actorDocs.EnsureIndexes,
		"users":  users.EnsureIndexes,
	} {
		if err := ensure(idxCtx); err != nil {
			logger.Fatal("ensure index failed", zap.String("collection", name), zap.Error(err))
		}
	}

	// Services.
	auth := service.NewAuth(users, cfg.JWTSecret)
	gateway := omdb.NewClient(cfg.OMDBAPIKey)
	publish := func(ctx context.Context, ev queue.MovieImportedEvent) error {
		return queue.PublishMovieImported(ctx, logger, ev)
	}
	importer := service.NewImporter(gateway, genres, movies, actors,
		movieDocs, actorDocs, publish, logger)
	relationships := service.NewRelationships(movieDocs)

	// Import audit consumer.
	go queue.StartImportConsumer(logger)

	// HTTP shell.
	e := echo.New()
	e.HideBanner = true
	router.Register(e, router.Handlers{
		Auth:        handler.NewAuthHandler(auth, users),
		Movies:      handler.NewMovieHandler(movies, movieDocs, importer),
		Actors:      handler.NewActorHandler(actors, actorDocs, importer),
		Genres:      handler.NewGenreHandler(genres, movieDocs),
		MovieActors: handler.NewMovieActorHandler(relationships),
	}, cfg, config.NewRedisClient())

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := e.Start(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
