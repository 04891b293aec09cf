package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/repository"
	"github.com/iliyamo/movie-catalog/internal/service"
)

// MovieHandler bundles dependencies for movie endpoints. Listings and
// deletes go straight to the repositories; the import flows through the
// reconciler service.
type MovieHandler struct {
	Movies   *repository.MovieRepo
	Docs     *repository.MovieDocRepo
	Importer *service.Importer
}

func NewMovieHandler(movies *repository.MovieRepo, docs *repository.MovieDocRepo, imp *service.Importer) *MovieHandler {
	return &MovieHandler{Movies: movies, Docs: docs, Importer: imp}
}

type importReq struct {
	Title string `json:"title"`
}

// ListRelational returns the relational movies joined with genre names.
func (h *MovieHandler) ListRelational(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	movies, err := h.Movies.ListWithGenre(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, movies)
}

// ListDocument returns the document-store movies ordered by surrogate id.
func (h *MovieHandler) ListDocument(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	movies, err := h.Docs.List(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, movies)
}

// Import resolves a title via OMDb and mirrors it into both stores. A
// document-store failure is reported inside the 201 body, not as a request
// failure.
func (h *MovieHandler) Import(c echo.Context) error {
	var req importReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title required"})
	}

	// Import touches OMDb plus both stores; give it a wider deadline than
	// single-store handlers.
	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	res, err := h.Importer.ImportMovie(ctx, strings.TrimSpace(req.Title))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

// DeleteRelational removes a movie row by integer primary key, cleaning up
// its join-table rows.
func (h *MovieHandler) DeleteRelational(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Movies.Delete(ctx, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": id})
}

// DeleteDocument removes a movie document by its numeric surrogate id.
func (h *MovieHandler) DeleteDocument(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Docs.DeleteByID(ctx, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": id})
}

// UpdateDocument merge-patches a movie document addressed by ObjectID hex
// or numeric surrogate id.
func (h *MovieHandler) UpdateDocument(c echo.Context) error {
	var patch map[string]any
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	doc, err := h.Docs.MergeUpdate(ctx, c.Param("id"), patch)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, doc)
}

// GenreOfTitle returns the embedded genre of a movie document looked up by
// exact title.
func (h *MovieHandler) GenreOfTitle(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	doc, err := h.Docs.FindByTitle(ctx, c.Param("title"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"title": doc.Title, "genre": doc.Genre})
}
