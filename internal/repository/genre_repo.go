package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// Genre mirrors the 'generos' table. Name carries a unique constraint; the
// repository treats it as the natural key for idempotent inserts.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ErrGenreNotFound indicates that no genre row matches the given name.
var ErrGenreNotFound = errors.New("genre not found")

type GenreRepo struct{ db *sql.DB }

func NewGenreRepo(db *sql.DB) *GenreRepo { return &GenreRepo{db: db} }

// FindByName fetches a genre row by its unique name.
func (r *GenreRepo) FindByName(ctx context.Context, name string) (*Genre, error) {
	var g Genre
	err := r.db.QueryRowContext(ctx,
		`SELECT id, nome FROM generos WHERE nome = $1`, name).Scan(&g.ID, &g.Name)
	if err == sql.ErrNoRows {
		return nil, ErrGenreNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// GetOrCreate resolves a genre by name, inserting it when absent. A
// concurrent insert of the same name loses the race on the unique
// constraint and falls back to reading the winner's row.
func (r *GenreRepo) GetOrCreate(ctx context.Context, name string) (*Genre, error) {
	g, err := r.FindByName(ctx, name)
	if err == nil {
		return g, nil
	}
	if !errors.Is(err, ErrGenreNotFound) {
		return nil, err
	}

	g = &Genre{Name: name}
	err = r.db.QueryRowContext(ctx,
		`INSERT INTO generos (nome) VALUES ($1) RETURNING id`, name).Scan(&g.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			return r.FindByName(ctx, name)
		}
		return nil, err
	}
	return g, nil
}

// List returns all genre rows ordered by name.
func (r *GenreRepo) List(ctx context.Context) ([]Genre, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, nome FROM generos ORDER BY nome`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Genre
	for rows.Next() {
		var g Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
