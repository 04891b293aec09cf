package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Actor mirrors the 'atores' table. The primary key is a UUID generated by
// the application; Age and Nationality are optional columns only filled in
// by manual edits, never by the OMDb import.
type Actor struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Age         *int    `json:"age,omitempty"`
	Nationality *string `json:"nationality,omitempty"`
}

// ErrActorNotFound indicates that no actor row matches the given key.
var ErrActorNotFound = errors.New("actor not found")

type ActorRepo struct{ db *sql.DB }

func NewActorRepo(db *sql.DB) *ActorRepo { return &ActorRepo{db: db} }

// FindByName fetches an actor row by name, the natural key of the import
// path.
func (r *ActorRepo) FindByName(ctx context.Context, name string) (*Actor, error) {
	var a Actor
	err := r.db.QueryRowContext(ctx,
		`SELECT id, nome, idade, nacionalidade FROM atores WHERE nome = $1`,
		name).Scan(&a.ID, &a.Name, &a.Age, &a.Nationality)
	if err == sql.ErrNoRows {
		return nil, ErrActorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetOrCreate resolves an actor by name, inserting a new row with a fresh
// UUID when absent. Like GenreRepo.GetOrCreate, a lost insert race falls
// back to reading the existing row.
func (r *ActorRepo) GetOrCreate(ctx context.Context, name string) (*Actor, error) {
	a, err := r.FindByName(ctx, name)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, ErrActorNotFound) {
		return nil, err
	}

	a = &Actor{ID: uuid.NewString(), Name: name}
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO atores (id, nome) VALUES ($1, $2)`, a.ID, a.Name); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			return r.FindByName(ctx, name)
		}
		return nil, err
	}
	return a, nil
}

// GetByID fetches an actor row by its UUID.
func (r *ActorRepo) GetByID(ctx context.Context, id string) (*Actor, error) {
	var a Actor
	err := r.db.QueryRowContext(ctx,
		`SELECT id, nome, idade, nacionalidade FROM atores WHERE id = $1`,
		id).Scan(&a.ID, &a.Name, &a.Age, &a.Nationality)
	if err == sql.ErrNoRows {
		return nil, ErrActorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns all actors ordered by name.
func (r *ActorRepo) List(ctx context.Context) ([]Actor, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, nome, idade, nacionalidade FROM atores ORDER BY nome`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Actor
	for rows.Next() {
		var a Actor
		if err := rows.Scan(&a.ID, &a.Name, &a.Age, &a.Nationality); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Delete removes an actor row by id. Join-table rows cascade at the schema
// level. Returns ErrActorNotFound when no row matched.
func (r *ActorRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM atores WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrActorNotFound
	}
	return nil
}
