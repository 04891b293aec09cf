package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Movie mirrors the 'filmes' table. The integer primary key is generated by
// the database; GenreID references the generos table and cascades on
// delete. Title is the natural key used by the import path to decide
// whether a movie already exists.
type Movie struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Year        int    `json:"year"`
	Description string `json:"description"`
	GenreID     int64  `json:"genre_id"`
}

// MovieSummary is a movie row joined with its genre name, used by listings.
type MovieSummary struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Year        int    `json:"year"`
	Description string `json:"description"`
	Genre       string `json:"genre"`
}

// ErrMovieNotFound indicates that no movie row matches the given key.
var ErrMovieNotFound = errors.New("movie not found")

type MovieRepo struct{ db *sql.DB }

func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{db: db} }

// GetByTitle fetches a movie row by its exact title.
func (r *MovieRepo) GetByTitle(ctx context.Context, title string) (*Movie, error) {
	var m Movie
	err := r.db.QueryRowContext(ctx,
		`SELECT id, titulo, ano, descricao, genero_id FROM filmes WHERE titulo = $1`,
		title).Scan(&m.ID, &m.Title, &m.Year, &m.Description, &m.GenreID)
	if err == sql.ErrNoRows {
		return nil, ErrMovieNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a movie row and assigns the generated id back to m.
func (r *MovieRepo) Create(ctx context.Context, m *Movie) error {
	return r.db.QueryRowContext(ctx,
		`INSERT INTO filmes (titulo, ano, descricao, genero_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		m.Title, m.Year, m.Description, m.GenreID).Scan(&m.ID)
}

// LinkActor inserts a join-table row associating a movie with an actor.
func (r *MovieRepo) LinkActor(ctx context.Context, movieID int64, actorID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO filmes_atores (filme_id, ator_id) VALUES ($1, $2)`,
		movieID, actorID)
	return err
}

// ListWithGenre returns all movies joined with their genre name.
func (r *MovieRepo) ListWithGenre(ctx context.Context) ([]MovieSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT f.id, f.titulo, f.ano, f.descricao, COALESCE(g.nome, '')
		 FROM filmes f LEFT JOIN generos g ON f.genero_id = g.id
		 ORDER BY f.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MovieSummary
	for rows.Next() {
		var m MovieSummary
		if err := rows.Scan(&m.ID, &m.Title, &m.Year, &m.Description, &m.Genre); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Delete removes a movie row by id. Join-table rows referencing the movie
// are removed first; the FK cascade would also cover them, but the explicit
// delete keeps the behavior independent of how the schema was provisioned.
// Returns ErrMovieNotFound when no row matched.
func (r *MovieRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM filmes_atores WHERE filme_id = $1`, id); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM filmes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrMovieNotFound
	}
	return nil
}
