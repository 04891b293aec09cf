package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/service"
)

// MovieActorHandler serves the movie↔actor relationship endpoints over the
// document store's embedded actor-name arrays.
type MovieActorHandler struct {
	Rel *service.Relationships
}

func NewMovieActorHandler(rel *service.Relationships) *MovieActorHandler {
	return &MovieActorHandler{Rel: rel}
}

// ActorsOfMovie lists the embedded actor names of a movie.
func (h *MovieActorHandler) ActorsOfMovie(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	title, actors, err := h.Rel.ListActorsOfMovie(ctx, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"title": title, "actors": actors})
}

// MoviesOfActor lists every movie document naming the actor.
func (h *MovieActorHandler) MoviesOfActor(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	movies, err := h.Rel.ListMoviesOfActor(ctx, c.Param("name"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, movies)
}

// AddActor appends an actor name to a movie's embedded list; 409 when the
// name is already present.
func (h *MovieActorHandler) AddActor(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Rel.AddActorToMovie(ctx, c.Param("id"), c.Param("name")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"added": c.Param("name")})
}

// RemoveActor removes all occurrences of an actor name from a movie's
// embedded list; 404 when the name is absent.
func (h *MovieActorHandler) RemoveActor(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Rel.RemoveActorFromMovie(ctx, c.Param("id"), c.Param("name")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"removed": c.Param("name")})
}
