// Package router wires the HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/movie-catalog/internal/config"
	"github.com/iliyamo/movie-catalog/internal/handler"
	"github.com/iliyamo/movie-catalog/internal/middleware"
)

// Handlers carries every handler the router mounts.
type Handlers struct {
	Auth        *handler.AuthHandler
	Movies      *handler.MovieHandler
	Actors      *handler.ActorHandler
	Genres      *handler.GenreHandler
	MovieActors *handler.MovieActorHandler
}

// Register mounts all routes. Read endpoints require the view role, write
// endpoints edit, destructive and account-management endpoints admin; the
// role hierarchy means higher roles pass lower requirements. The response
// cache sits on the read group only; the rate limiter covers everything.
func Register(e *echo.Echo, h Handlers, cfg config.Config, rdb *redis.Client) {
	e.Use(middleware.NewRedisRateLimit(config.LoadRateLimitConfig(), rdb))

	e.GET("/healthz", handler.Health)

	// Unauthenticated credential endpoints.
	auth := e.Group("/v1/auth")
	auth.POST("/signup", h.Auth.Signup)
	auth.POST("/login", h.Auth.Login)

	// Read endpoints: any authenticated role, cached.
	view := e.Group("/v1")
	view.Use(middleware.JWTAuth(cfg.JWTSecret))
	view.Use(middleware.RequireRole("view"))
	view.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	view.GET("/me", h.Auth.Me)
	view.GET("/movies/relational", h.Movies.ListRelational)
	view.GET("/movies/document", h.Movies.ListDocument)
	view.GET("/movies/:title/genre", h.Movies.GenreOfTitle)
	view.GET("/movies/:id/actors", h.MovieActors.ActorsOfMovie)
	view.GET("/actors/relational", h.Actors.ListRelational)
	view.GET("/actors/document", h.Actors.ListDocument)
	view.GET("/actors/relational/:id", h.Actors.GetRelational)
	view.GET("/actors/document/:id", h.Actors.GetDocument)
	view.GET("/actors/:name/movies", h.MovieActors.MoviesOfActor)
	view.GET("/genres", h.Genres.List)
	view.GET("/genres/relational", h.Genres.ListRelational)
	view.GET("/genres/:name/movies", h.Genres.MoviesByGenre)

	// Write endpoints: edit role or above.
	edit := e.Group("/v1")
	edit.Use(middleware.JWTAuth(cfg.JWTSecret))
	edit.Use(middleware.RequireRole("edit"))
	edit.POST("/movies/import", h.Movies.Import)
	edit.PUT("/movies/document/:id", h.Movies.UpdateDocument)
	edit.POST("/movies/:id/actors/:name", h.MovieActors.AddActor)
	edit.DELETE("/movies/:id/actors/:name", h.MovieActors.RemoveActor)
	edit.POST("/actors/import", h.Actors.Import)
	edit.PUT("/actors/document/:id", h.Actors.UpdateDocument)

	// Destructive and account management: admin only.
	admin := e.Group("/v1")
	admin.Use(middleware.JWTAuth(cfg.JWTSecret))
	admin.Use(middleware.RequireRole("admin"))
	admin.DELETE("/movies/relational/:id", h.Movies.DeleteRelational)
	admin.DELETE("/movies/document/:id", h.Movies.DeleteDocument)
	admin.DELETE("/actors/relational/:id", h.Actors.DeleteRelational)
	admin.DELETE("/actors/document/:id", h.Actors.DeleteDocument)
	admin.POST("/users", h.Auth.Register)
	admin.GET("/users", h.Auth.List)
	admin.PUT("/users/:email/role", h.Auth.UpdateRole)
	admin.DELETE("/users/:email", h.Auth.Delete)
}
