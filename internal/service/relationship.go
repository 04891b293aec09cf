package service

import (
	"context"
	"errors"

	"github.com/iliyamo/movie-catalog/internal/repository"
)

// ErrActorAlreadyInMovie is returned when the actor name is already present
// in the movie's embedded list.
var ErrActorAlreadyInMovie = errors.New("actor already in movie")

// ErrActorNotInMovie is returned when the actor name is absent from the
// movie's embedded list.
var ErrActorNotInMovie = errors.New("actor not in movie")

// ErrActorInNoMovies is returned when no movie document lists the actor.
// This deliberately conflates "no such actor" with "actor with zero
// movies": the embedded-array model has no standalone actor identity to
// tell the two apart.
var ErrActorInNoMovies = errors.New("actor not found in any movie")

// MovieActorStore is the slice of the movie document repository the
// relationship manager operates on.
type MovieActorStore interface {
	FindByID(ctx context.Context, rawID string) (*repository.MovieDoc, error)
	FindByActor(ctx context.Context, name string) ([]repository.MovieDoc, error)
	PushActor(ctx context.Context, rawID, name string) error
	PullActor(ctx context.Context, rawID, name string) error
}

// Relationships maintains the movie↔actor association embedded in movie
// documents. All mutations are check-then-act over the array, which is only
// safe under low write concurrency per movie document; concurrent editors
// of the same movie could still race the membership check.
type Relationships struct {
	movies MovieActorStore
}

func NewRelationships(movies MovieActorStore) *Relationships {
	return &Relationships{movies: movies}
}

// ListActorsOfMovie returns the title and embedded actor list of a movie.
func (s *Relationships) ListActorsOfMovie(ctx context.Context, movieID string) (string, []string, error) {
	doc, err := s.movies.FindByID(ctx, movieID)
	if err != nil {
		return "", nil, err
	}
	actors := doc.Actors
	if actors == nil {
		actors = []string{}
	}
	return doc.Title, actors, nil
}

// ListMoviesOfActor returns every movie document whose actor list contains
// the name. An empty result yields ErrActorInNoMovies.
func (s *Relationships) ListMoviesOfActor(ctx context.Context, name string) ([]repository.MovieDoc, error) {
	movies, err := s.movies.FindByActor(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return nil, ErrActorInNoMovies
	}
	return movies, nil
}

// AddActorToMovie appends an actor name to a movie's list after checking it
// is not already present.
func (s *Relationships) AddActorToMovie(ctx context.Context, movieID, name string) error {
	doc, err := s.movies.FindByID(ctx, movieID)
	if err != nil {
		return err
	}
	if contains(doc.Actors, name) {
		return ErrActorAlreadyInMovie
	}
	return s.movies.PushActor(ctx, movieID, name)
}

// RemoveActorFromMovie removes all occurrences of an actor name from a
// movie's list. Removing a name that is not present is an error so a
// retried removal reports NotFound instead of silently succeeding.
func (s *Relationships) RemoveActorFromMovie(ctx context.Context, movieID, name string) error {
	doc, err := s.movies.FindByID(ctx, movieID)
	if err != nil {
		return err
	}
	if !contains(doc.Actors, name) {
		return ErrActorNotInMovie
	}
	return s.movies.PullActor(ctx, movieID, name)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
