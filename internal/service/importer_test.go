package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/movie-catalog/internal/omdb"
	"github.com/iliyamo/movie-catalog/internal/queue"
	"github.com/iliyamo/movie-catalog/internal/repository"
)

// ----- fakes -----

type fakeMeta struct {
	movies map[string]*omdb.Movie
}

func (f *fakeMeta) Fetch(_ context.Context, title string) (*omdb.Movie, error) {
	if m, ok := f.movies[title]; ok {
		return m, nil
	}
	return nil, omdb.ErrMovieUnavailable
}

type fakeGenres struct {
	byName map[string]*repository.Genre
	nextID int64
}

func (f *fakeGenres) GetOrCreate(_ context.Context, name string) (*repository.Genre, error) {
	if g, ok := f.byName[name]; ok {
		return g, nil
	}
	f.nextID++
	g := &repository.Genre{ID: f.nextID, Name: name}
	f.byName[name] = g
	return g, nil
}

type link struct {
	movieID int64
	actorID string
}

type fakeMovies struct {
	byTitle map[string]*repository.Movie
	links   []link
	nextID  int64
}

func (f *fakeMovies) GetByTitle(_ context.Context, title string) (*repository.Movie, error) {
	if m, ok := f.byTitle[title]; ok {
		return m, nil
	}
	return nil, repository.ErrMovieNotFound
}

func (f *fakeMovies) Create(_ context.Context, m *repository.Movie) error {
	f.nextID++
	m.ID = f.nextID
	cp := *m
	f.byTitle[m.Title] = &cp
	return nil
}

func (f *fakeMovies) LinkActor(_ context.Context, movieID int64, actorID string) error {
	f.links = append(f.links, link{movieID: movieID, actorID: actorID})
	return nil
}

type fakeActors struct {
	byName map[string]*repository.Actor
	nextID int
}

func (f *fakeActors) GetOrCreate(_ context.Context, name string) (*repository.Actor, error) {
	if a, ok := f.byName[name]; ok {
		return a, nil
	}
	f.nextID++
	a := &repository.Actor{ID: fmt.Sprintf("uuid-%d", f.nextID), Name: name}
	f.byName[name] = a
	return a, nil
}

type fakeMovieDocs struct {
	byTitle map[string]*repository.MovieDoc
	nextID  int64
	failErr error
}

func (f *fakeMovieDocs) InsertIdempotent(_ context.Context, doc repository.MovieDoc) (*repository.MovieDoc, error) {
	if f.failErr != nil {
		return nil, f.failErr
	}
	if d, ok := f.byTitle[doc.Title]; ok {
		return d, nil
	}
	f.nextID++
	doc.ID = f.nextID
	f.byTitle[doc.Title] = &doc
	return &doc, nil
}

type fakeActorDocs struct {
	byName map[string]*repository.ActorDoc
	nextID int64
}

func (f *fakeActorDocs) InsertIdempotent(_ context.Context, name string) (*repository.ActorDoc, error) {
	if d, ok := f.byName[name]; ok {
		return d, nil
	}
	f.nextID++
	d := &repository.ActorDoc{ID: f.nextID, Name: name}
	f.byName[name] = d
	return d, nil
}

type env struct {
	meta      *fakeMeta
	genres    *fakeGenres
	movies    *fakeMovies
	actors    *fakeActors
	docs      *fakeMovieDocs
	actorDocs *fakeActorDocs
	events    []queue.MovieImportedEvent
	importer  *Importer
}

func newEnv() *env {
	e := &env{
		meta: &fakeMeta{movies: map[string]*omdb.Movie{
			"Inception": {
				Title:    "Inception",
				Year:     "2010",
				Plot:     "A thief who steals corporate secrets.",
				Genre:    "Action, Sci-Fi",
				Actors:   "Leonardo DiCaprio, Joseph Gordon-Levitt",
				Response: "True",
			},
		}},
		genres:    &fakeGenres{byName: map[string]*repository.Genre{}},
		movies:    &fakeMovies{byTitle: map[string]*repository.Movie{}},
		actors:    &fakeActors{byName: map[string]*repository.Actor{}},
		docs:      &fakeMovieDocs{byTitle: map[string]*repository.MovieDoc{}},
		actorDocs: &fakeActorDocs{byName: map[string]*repository.ActorDoc{}},
	}
	publish := func(_ context.Context, ev queue.MovieImportedEvent) error {
		e.events = append(e.events, ev)
		return nil
	}
	e.importer = NewImporter(e.meta, e.genres, e.movies, e.actors,
		e.docs, e.actorDocs, publish, zap.NewNop())
	return e
}

// ----- tests -----

func TestImportMovieWritesBothStores(t *testing.T) {
	e := newEnv()

	res, err := e.importer.ImportMovie(context.Background(), "Inception")
	require.NoError(t, err)

	// Relational leg: one genre, one movie, two actors, two join rows.
	assert.False(t, res.Relational.AlreadyExists)
	require.NotNil(t, res.Relational.Genre)
	assert.Equal(t, "Action", res.Relational.Genre.Name)
	assert.Equal(t, res.Relational.Genre.ID, res.Relational.Movie.GenreID)
	assert.Equal(t, 2010, res.Relational.Movie.Year)
	require.Len(t, res.Relational.Actors, 2)
	assert.Equal(t, "Leonardo DiCaprio", res.Relational.Actors[0].Name)
	assert.Equal(t, "Joseph Gordon-Levitt", res.Relational.Actors[1].Name)
	require.Len(t, e.movies.links, 2)
	assert.Equal(t, res.Relational.Movie.ID, e.movies.links[0].movieID)

	// Document leg: denormalized mirror with embedded genre and cast.
	require.NotNil(t, res.Document.Movie)
	assert.Empty(t, res.Document.Error)
	assert.Equal(t, "Inception", res.Document.Movie.Title)
	assert.Equal(t, "Action", res.Document.Movie.Genre)
	assert.Equal(t, []string{"Leonardo DiCaprio", "Joseph Gordon-Levitt"}, res.Document.Movie.Actors)

	require.Len(t, e.events, 1)
	assert.Equal(t, "Inception", e.events[0].Title)
	assert.False(t, e.events[0].AlreadyExisted)
}

func TestImportMovieIsIdempotent(t *testing.T) {
	e := newEnv()

	first, err := e.importer.ImportMovie(context.Background(), "Inception")
	require.NoError(t, err)
	second, err := e.importer.ImportMovie(context.Background(), "Inception")
	require.NoError(t, err)

	assert.True(t, second.Relational.AlreadyExists)
	assert.Equal(t, first.Relational.Movie.ID, second.Relational.Movie.ID)
	assert.Nil(t, second.Relational.Actors)

	// No duplicate rows or links were created.
	assert.Len(t, e.movies.byTitle, 1)
	assert.Len(t, e.genres.byName, 1)
	assert.Len(t, e.actors.byName, 2)
	assert.Len(t, e.movies.links, 2)

	// Document leg was a no-op find returning the first document.
	require.NotNil(t, second.Document.Movie)
	assert.Equal(t, first.Document.Movie.ID, second.Document.Movie.ID)
	assert.Len(t, e.docs.byTitle, 1)
}

func TestImportMovieDocumentFailureIsIsolated(t *testing.T) {
	e := newEnv()
	e.docs.failErr = errors.New("mongo down")

	res, err := e.importer.ImportMovie(context.Background(), "Inception")
	require.NoError(t, err, "a document-store failure must not fail the import")

	assert.False(t, res.Relational.AlreadyExists)
	assert.Len(t, e.movies.byTitle, 1)
	assert.Nil(t, res.Document.Movie)
	assert.Equal(t, "mongo down", res.Document.Error)

	require.Len(t, e.events, 1)
	assert.Equal(t, "mongo down", e.events[0].DocumentError)
}

func TestImportMovieUnknownTitle(t *testing.T) {
	e := newEnv()

	_, err := e.importer.ImportMovie(context.Background(), "No Such Movie")
	require.ErrorIs(t, err, omdb.ErrMovieUnavailable)
	assert.Empty(t, e.movies.byTitle)
	assert.Empty(t, e.docs.byTitle)
}

func TestImportMovieGenreAndPlotFallbacks(t *testing.T) {
	e := newEnv()
	e.meta.movies["Obscure"] = &omdb.Movie{
		Title:    "Obscure",
		Year:     "1999",
		Response: "True",
	}

	res, err := e.importer.ImportMovie(context.Background(), "Obscure")
	require.NoError(t, err)
	assert.Equal(t, "Unknown", res.Relational.Genre.Name)
	assert.Equal(t, "No description", res.Relational.Movie.Description)
	assert.Empty(t, res.Relational.Actors)
	assert.Equal(t, []string{}, res.Document.Movie.Actors)
}

func TestImportActors(t *testing.T) {
	e := newEnv()

	actors, err := e.importer.ImportActors(context.Background(), "Inception", true)
	require.NoError(t, err)
	require.Len(t, actors, 2)
	assert.Len(t, e.actors.byName, 2)
	assert.Len(t, e.actorDocs.byName, 2, "mirror writes the document store")

	// Without the mirror flag no new actor documents appear.
	e2 := newEnv()
	_, err = e2.importer.ImportActors(context.Background(), "Inception", false)
	require.NoError(t, err)
	assert.Empty(t, e2.actorDocs.byName)
}

func TestPrimaryGenre(t *testing.T) {
	assert.Equal(t, "Action", primaryGenre("Action, Sci-Fi"))
	assert.Equal(t, "Drama", primaryGenre("Drama"))
	assert.Equal(t, "Unknown", primaryGenre(""))
	assert.Equal(t, "Unknown", primaryGenre("  ,Thriller"))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, splitList(" A ,B, "))
	assert.Equal(t, []string{}, splitList(""))
}

func TestParseYear(t *testing.T) {
	assert.Equal(t, 2010, parseYear("2010"))
	assert.Equal(t, 2010, parseYear("2010–2016")) // series range
	assert.Equal(t, 0, parseYear("N/A"))
}
