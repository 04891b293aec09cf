package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"github.com/iliyamo/movie-catalog/internal/omdb"
	"github.com/iliyamo/movie-catalog/internal/queue"
	"github.com/iliyamo/movie-catalog/internal/repository"
)

// unknownGenre is the sentinel used when OMDb reports no genre.
const unknownGenre = "Unknown"

// noDescription fills in for movies OMDb has no plot for.
const noDescription = "No description"

// MetadataFetcher resolves a movie title to canonical attributes.
type MetadataFetcher interface {
	Fetch(ctx context.Context, title string) (*omdb.Movie, error)
}

// GenreStore, MovieStore and ActorStore are the relational slices the
// reconciler writes through. Their GetOrCreate methods carry the
// idempotent-insert semantics: find by natural key first, insert only when
// absent.
type GenreStore interface {
	GetOrCreate(ctx context.Context, name string) (*repository.Genre, error)
}

type MovieStore interface {
	GetByTitle(ctx context.Context, title string) (*repository.Movie, error)
	Create(ctx context.Context, m *repository.Movie) error
	LinkActor(ctx context.Context, movieID int64, actorID string) error
}

type ActorStore interface {
	GetOrCreate(ctx context.Context, name string) (*repository.Actor, error)
}

// MovieDocStore and ActorDocStore are the document-store mirrors.
type MovieDocStore interface {
	InsertIdempotent(ctx context.Context, doc repository.MovieDoc) (*repository.MovieDoc, error)
}

type ActorDocStore interface {
	InsertIdempotent(ctx context.Context, name string) (*repository.ActorDoc, error)
}

// PublishFunc forwards an import event to the message broker. It may be nil
// when no broker is configured.
type PublishFunc func(ctx context.Context, event queue.MovieImportedEvent) error

// RelationalImport reports the relational leg of an import. When the movie
// already existed the existing row is carried and nothing was mutated.
type RelationalImport struct {
	AlreadyExists bool               `json:"already_exists"`
	Movie         repository.Movie   `json:"movie"`
	Genre         *repository.Genre  `json:"genre,omitempty"`
	Actors        []repository.Actor `json:"actors,omitempty"`
}

// DocumentImport reports the document leg. A store failure on this leg is
// captured here as an error string instead of failing the import: the two
// stores are not transactionally consistent and the relational outcome must
// stand on its own.
type DocumentImport struct {
	Movie *repository.MovieDoc `json:"movie,omitempty"`
	Error string               `json:"error,omitempty"`
}

// ImportResult is the combined outcome of one import request.
type ImportResult struct {
	Relational RelationalImport `json:"relational"`
	Document   DocumentImport   `json:"document"`
}

// Importer reconciles one logical movie into both stores. The relational
// store is written first and is the source of truth for referential
// entities; the document store is a best-effort denormalized mirror.
type Importer struct {
	meta      MetadataFetcher
	genres    GenreStore
	movies    MovieStore
	actors    ActorStore
	docs      MovieDocStore
	docActors ActorDocStore
	publish   PublishFunc
	log       *zap.Logger
}

func NewImporter(meta MetadataFetcher, genres GenreStore, movies MovieStore,
	actors ActorStore, docs MovieDocStore, docActors ActorDocStore,
	publish PublishFunc, log *zap.Logger) *Importer {
	return &Importer{
		meta:      meta,
		genres:    genres,
		movies:    movies,
		actors:    actors,
		docs:      docs,
		docActors: docActors,
		publish:   publish,
		log:       log,
	}
}

// ImportMovie resolves a title through the metadata gateway and writes the
// movie into both stores.
//
// Relational leg (first): when a row with the canonical title exists the
// leg short-circuits without mutation. Otherwise the genre is resolved or
// created, the movie row inserted, and each cast member resolved or created
// and linked through the join table — strictly in that order, since each
// insert depends on the previous id.
//
// Document leg (second, independent): an idempotent upsert by title. Its
// failure is recorded in the result, never propagated; cross-store rollback
// is deliberately not attempted.
func (s *Importer) ImportMovie(ctx context.Context, title string) (*ImportResult, error) {
	meta, err := s.meta.Fetch(ctx, title)
	if err != nil {
		return nil, err
	}

	genreName := primaryGenre(meta.Genre)
	cast := splitList(meta.Actors)
	year := parseYear(meta.Year)
	desc := meta.Plot
	if desc == "" {
		desc = noDescription
	}

	res := &ImportResult{}

	existing, err := s.movies.GetByTitle(ctx, meta.Title)
	switch {
	case err == nil:
		res.Relational = RelationalImport{AlreadyExists: true, Movie: *existing}
	case errors.Is(err, repository.ErrMovieNotFound):
		rel, err := s.importRelational(ctx, meta.Title, year, desc, genreName, cast)
		if err != nil {
			return nil, err
		}
		res.Relational = *rel
	default:
		return nil, err
	}

	doc, derr := s.docs.InsertIdempotent(ctx, repository.MovieDoc{
		Title:       meta.Title,
		Year:        year,
		Description: desc,
		Genre:       genreName,
		Actors:      cast,
	})
	if derr != nil {
		s.log.Warn("document-store leg of import failed",
			zap.String("title", meta.Title), zap.Error(derr))
		res.Document.Error = derr.Error()
	} else {
		res.Document.Movie = doc
	}

	s.publishImported(ctx, meta.Title, year, genreName, cast, res)
	return res, nil
}

// importRelational runs the ordered relational write sequence for a movie
// that does not exist yet.
func (s *Importer) importRelational(ctx context.Context, title string, year int,
	desc, genreName string, cast []string) (*RelationalImport, error) {
	genre, err := s.genres.GetOrCreate(ctx, genreName)
	if err != nil {
		return nil, err
	}

	movie := &repository.Movie{Title: title, Year: year, Description: desc, GenreID: genre.ID}
	if err := s.movies.Create(ctx, movie); err != nil {
		return nil, err
	}

	actors := make([]repository.Actor, 0, len(cast))
	for _, name := range cast {
		actor, err := s.actors.GetOrCreate(ctx, name)
		if err != nil {
			return nil, err
		}
		if err := s.movies.LinkActor(ctx, movie.ID, actor.ID); err != nil {
			return nil, err
		}
		actors = append(actors, *actor)
	}
	return &RelationalImport{Movie: *movie, Genre: genre, Actors: actors}, nil
}

// ImportActors imports only the cast of a title into the relational store,
// optionally mirroring each actor into the document store.
func (s *Importer) ImportActors(ctx context.Context, title string, mirror bool) ([]repository.Actor, error) {
	meta, err := s.meta.Fetch(ctx, title)
	if err != nil {
		return nil, err
	}

	actors := make([]repository.Actor, 0)
	for _, name := range splitList(meta.Actors) {
		actor, err := s.actors.GetOrCreate(ctx, name)
		if err != nil {
			return nil, err
		}
		if mirror {
			if _, err := s.docActors.InsertIdempotent(ctx, name); err != nil {
				s.log.Warn("document-store actor mirror failed",
					zap.String("actor", name), zap.Error(err))
			}
		}
		actors = append(actors, *actor)
	}
	return actors, nil
}

func (s *Importer) publishImported(ctx context.Context, title string, year int,
	genre string, cast []string, res *ImportResult) {
	if s.publish == nil {
		return
	}
	ev := queue.MovieImportedEvent{
		Title:          title,
		Year:           year,
		Genre:          genre,
		Actors:         cast,
		RelationalID:   res.Relational.Movie.ID,
		AlreadyExisted: res.Relational.AlreadyExists,
		DocumentError:  res.Document.Error,
		ImportedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	if res.Document.Movie != nil {
		ev.DocumentID = res.Document.Movie.ID
	}
	_ = s.publish(ctx, ev) // best-effort; publish failures are logged inside
}

// primaryGenre extracts the first entry of OMDb's comma-separated genre
// list, falling back to the Unknown sentinel.
func primaryGenre(genres string) string {
	first := strings.TrimSpace(strings.Split(genres, ",")[0])
	if first == "" {
		return unknownGenre
	}
	return first
}

// splitList splits and trims a comma-separated list, dropping empties.
func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseYear reads the leading digits of an OMDb year value. Series entries
// come as ranges like "2010–2016"; the first year is used.
func parseYear(s string) int {
	n := 0
	seen := false
	for _, r := range strings.TrimSpace(s) {
		if !unicode.IsDigit(r) {
			break
		}
		seen = true
		n = n*10 + int(r-'0')
	}
	if !seen {
		return 0
	}
	return n
}
