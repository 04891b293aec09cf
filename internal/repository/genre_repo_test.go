package repository

import (
	"context"
	"database/sql"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	genreSelect = `SELECT id, nome FROM generos WHERE nome = $1`
	genreInsert = `INSERT INTO generos (nome) VALUES ($1) RETURNING id`
)

func newGenreMock(t *testing.T) (*GenreRepo, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewGenreRepo(db), mock
}

func TestGenreGetOrCreateInserts(t *testing.T) {
	repo, mock := newGenreMock(t)

	mock.ExpectQuery(genreSelect).WithArgs("Action").WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(genreInsert).WithArgs("Action").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	g, err := repo.GetOrCreate(context.Background(), "Action")
	require.NoError(t, err)
	assert.Equal(t, int64(7), g.ID)
	assert.Equal(t, "Action", g.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGenreGetOrCreateLosesInsertRace(t *testing.T) {
	repo, mock := newGenreMock(t)

	// The insert trips the unique constraint because a concurrent caller got
	// there first; the fallback read resolves the winner's row.
	mock.ExpectQuery(genreSelect).WithArgs("Action").WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(genreInsert).WithArgs("Action").
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectQuery(genreSelect).WithArgs("Action").
		WillReturnRows(sqlmock.NewRows([]string{"id", "nome"}).AddRow(int64(3), "Action"))

	g, err := repo.GetOrCreate(context.Background(), "Action")
	require.NoError(t, err)
	assert.Equal(t, int64(3), g.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGenreGetOrCreateReturnsExisting(t *testing.T) {
	repo, mock := newGenreMock(t)

	mock.ExpectQuery(genreSelect).WithArgs("Drama").
		WillReturnRows(sqlmock.NewRows([]string{"id", "nome"}).AddRow(int64(2), "Drama"))

	g, err := repo.GetOrCreate(context.Background(), "Drama")
	require.NoError(t, err)
	assert.Equal(t, int64(2), g.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
