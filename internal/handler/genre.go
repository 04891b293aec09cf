package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/repository"
)

// GenreHandler serves genre views from both stores: rows of the generos
// table on the relational side, distinct denormalized strings on the
// document side.
type GenreHandler struct {
	Genres *repository.GenreRepo
	Docs   *repository.MovieDocRepo
}

func NewGenreHandler(genres *repository.GenreRepo, docs *repository.MovieDocRepo) *GenreHandler {
	return &GenreHandler{Genres: genres, Docs: docs}
}

// ListRelational returns the genre rows ordered by name.
func (h *GenreHandler) ListRelational(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	genres, err := h.Genres.List(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, genres)
}

// List returns the distinct genre names across all movie documents.
func (h *GenreHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	genres, err := h.Docs.DistinctGenres(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"total": len(genres), "genres": genres})
}

// MoviesByGenre returns all movie documents carrying the given genre name,
// 404 when there are none.
func (h *GenreHandler) MoviesByGenre(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	name := c.Param("name")
	movies, err := h.Docs.FindByGenre(ctx, name)
	if err != nil {
		return writeError(c, err)
	}
	if len(movies) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no movies for genre"})
	}
	return c.JSON(http.StatusOK, echo.Map{"genre": name, "total": len(movies), "movies": movies})
}
