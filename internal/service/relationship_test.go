package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-catalog/internal/repository"
)

type fakeMovieActorStore struct {
	byID map[string]*repository.MovieDoc
}

func (f *fakeMovieActorStore) FindByID(_ context.Context, rawID string) (*repository.MovieDoc, error) {
	if _, err := strconv.ParseInt(rawID, 10, 64); err != nil {
		return nil, repository.ErrInvalidID
	}
	if d, ok := f.byID[rawID]; ok {
		return d, nil
	}
	return nil, repository.ErrMovieNotFound
}

func (f *fakeMovieActorStore) FindByActor(_ context.Context, name string) ([]repository.MovieDoc, error) {
	var out []repository.MovieDoc
	for _, d := range f.byID {
		for _, a := range d.Actors {
			if a == name {
				out = append(out, *d)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeMovieActorStore) PushActor(_ context.Context, rawID, name string) error {
	d, ok := f.byID[rawID]
	if !ok {
		return repository.ErrMovieNotFound
	}
	d.Actors = append(d.Actors, name)
	return nil
}

func (f *fakeMovieActorStore) PullActor(_ context.Context, rawID, name string) error {
	d, ok := f.byID[rawID]
	if !ok {
		return repository.ErrMovieNotFound
	}
	kept := d.Actors[:0]
	for _, a := range d.Actors {
		if a != name {
			kept = append(kept, a)
		}
	}
	d.Actors = kept
	return nil
}

func newRelEnv() (*Relationships, *fakeMovieActorStore) {
	store := &fakeMovieActorStore{byID: map[string]*repository.MovieDoc{
		"1": {ID: 1, Title: "Inception", Actors: []string{"Leonardo DiCaprio"}},
		"2": {ID: 2, Title: "Heat", Actors: []string{}},
	}}
	return NewRelationships(store), store
}

func TestListActorsOfMovie(t *testing.T) {
	rel, _ := newRelEnv()

	title, actors, err := rel.ListActorsOfMovie(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Inception", title)
	assert.Equal(t, []string{"Leonardo DiCaprio"}, actors)

	_, _, err = rel.ListActorsOfMovie(context.Background(), "99")
	require.ErrorIs(t, err, repository.ErrMovieNotFound)

	_, _, err = rel.ListActorsOfMovie(context.Background(), "not-an-id")
	require.ErrorIs(t, err, repository.ErrInvalidID)
}

func TestListMoviesOfActor(t *testing.T) {
	rel, _ := newRelEnv()

	movies, err := rel.ListMoviesOfActor(context.Background(), "Leonardo DiCaprio")
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "Inception", movies[0].Title)

	// An empty result is NotFound, whether the actor is unknown or simply
	// appears in no movie.
	_, err = rel.ListMoviesOfActor(context.Background(), "Nobody")
	require.ErrorIs(t, err, ErrActorInNoMovies)
}

func TestAddActorToMovie(t *testing.T) {
	rel, store := newRelEnv()

	require.NoError(t, rel.AddActorToMovie(context.Background(), "1", "Elliot Page"))
	assert.Equal(t, []string{"Leonardo DiCaprio", "Elliot Page"}, store.byID["1"].Actors)

	// Adding the same name again conflicts and leaves a single entry.
	err := rel.AddActorToMovie(context.Background(), "1", "Elliot Page")
	require.ErrorIs(t, err, ErrActorAlreadyInMovie)
	count := 0
	for _, a := range store.byID["1"].Actors {
		if a == "Elliot Page" {
			count++
		}
	}
	assert.Equal(t, 1, count)

	require.ErrorIs(t, rel.AddActorToMovie(context.Background(), "99", "X"),
		repository.ErrMovieNotFound)
}

func TestRemoveActorFromMovie(t *testing.T) {
	rel, store := newRelEnv()

	// Absent name is NotFound.
	err := rel.RemoveActorFromMovie(context.Background(), "1", "Nobody")
	require.ErrorIs(t, err, ErrActorNotInMovie)

	// Removal drops every occurrence; a retry then reports NotFound.
	store.byID["1"].Actors = []string{"A", "B", "A"}
	require.NoError(t, rel.RemoveActorFromMovie(context.Background(), "1", "A"))
	assert.Equal(t, []string{"B"}, store.byID["1"].Actors)
	err = rel.RemoveActorFromMovie(context.Background(), "1", "A")
	require.ErrorIs(t, err, ErrActorNotInMovie)
}
