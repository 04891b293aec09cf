// Package handler implements the HTTP endpoints. Handlers bind and
// validate input, delegate to the services and repositories, and translate
// the error taxonomy into HTTP statuses.
package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/omdb"
	"github.com/iliyamo/movie-catalog/internal/repository"
	"github.com/iliyamo/movie-catalog/internal/service"
)

// writeError maps a domain error onto an HTTP response. Anything not in the
// taxonomy is a store-level failure and surfaces as 500 with the verbatim
// message.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrMovieNotFound),
		errors.Is(err, repository.ErrActorNotFound),
		errors.Is(err, repository.ErrGenreNotFound),
		errors.Is(err, repository.ErrNotFound),
		errors.Is(err, service.ErrActorInNoMovies),
		errors.Is(err, service.ErrActorNotInMovie),
		errors.Is(err, omdb.ErrMovieUnavailable):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrActorAlreadyInMovie),
		errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrInvalidID),
		errors.Is(err, service.ErrUnknownRole):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrBadPassword):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	case errors.Is(err, omdb.ErrUpstream):
		return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
}
