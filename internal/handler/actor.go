package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/repository"
	"github.com/iliyamo/movie-catalog/internal/service"
)

// ActorHandler bundles dependencies for actor endpoints.
type ActorHandler struct {
	Actors   *repository.ActorRepo
	Docs     *repository.ActorDocRepo
	Importer *service.Importer
}

func NewActorHandler(actors *repository.ActorRepo, docs *repository.ActorDocRepo, imp *service.Importer) *ActorHandler {
	return &ActorHandler{Actors: actors, Docs: docs, Importer: imp}
}

type importActorsReq struct {
	Title  string `json:"title"`
	Mirror bool   `json:"mirror"` // also mirror into the document store
}

// Import resolves a title via OMDb and imports its cast into the
// relational store, optionally mirroring into the document store.
func (h *ActorHandler) Import(c echo.Context) error {
	var req importActorsReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	actors, err := h.Importer.ImportActors(ctx, strings.TrimSpace(req.Title), req.Mirror)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"actors": actors})
}

// ListRelational returns all relational actors ordered by name.
func (h *ActorHandler) ListRelational(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	actors, err := h.Actors.List(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, actors)
}

// ListDocument returns all actor documents ordered by surrogate id.
func (h *ActorHandler) ListDocument(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	actors, err := h.Docs.List(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, actors)
}

// GetRelational fetches one relational actor by UUID.
func (h *ActorHandler) GetRelational(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	actor, err := h.Actors.GetByID(ctx, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, actor)
}

// GetDocument fetches one actor document by ObjectID hex or surrogate id.
func (h *ActorHandler) GetDocument(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	actor, err := h.Docs.FindByID(ctx, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, actor)
}

// UpdateDocument applies a $set patch to an actor document. An empty patch
// is rejected up front; the store would refuse a bare $set anyway.
func (h *ActorHandler) UpdateDocument(c echo.Context) error {
	var patch map[string]any
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if len(patch) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "empty patch"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	actor, err := h.Docs.UpdateByID(ctx, c.Param("id"), patch)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, actor)
}

// DeleteRelational removes a relational actor row by UUID.
func (h *ActorHandler) DeleteRelational(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Actors.Delete(ctx, c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": c.Param("id")})
}

// DeleteDocument removes an actor document by ObjectID hex or surrogate id.
func (h *ActorHandler) DeleteDocument(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Docs.DeleteByID(ctx, c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": c.Param("id")})
}
