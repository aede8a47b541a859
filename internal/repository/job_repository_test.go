package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jobColumns = []string{"id", "title", "description", "requirements", "location", "salary", "created_at", "updated_at"}

func jobRow(id uint64, title string, created time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(jobColumns).
		AddRow(id, title, "desc", "reqs", "Remote", "", created, created)
}

func TestJobRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC().Truncate(time.Second)
	mock.ExpectExec("INSERT INTO jobs .*").
		WithArgs("Dub Director", "desc", "reqs", "Remote", "").
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectQuery("SELECT .* FROM jobs WHERE id = .*").
		WithArgs(uint64(5)).
		WillReturnRows(jobRow(5, "Dub Director", now))

	repo := NewJobRepo(db)
	j := &Job{Title: "Dub Director", Description: "desc", Requirements: "reqs", Location: "Remote"}
	require.NoError(t, repo.Create(context.Background(), j))

	assert.Equal(t, uint64(5), j.ID)
	assert.Equal(t, now, j.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepo_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT .* FROM jobs WHERE id = .*").
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows(jobColumns))

	repo := NewJobRepo(db)
	_, err = repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestJobRepo_Update_IdenticalResaveSucceeds(t *testing.T) {
	// A full overwrite matching the current values reports zero affected
	// rows; the repo must not misread that as a missing row.
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC().Truncate(time.Second)
	mock.ExpectExec("UPDATE jobs SET .*").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT .* FROM jobs WHERE id = .*").
		WithArgs(uint64(5)).
		WillReturnRows(jobRow(5, "Dub Director", now))
	mock.ExpectQuery("SELECT .* FROM jobs WHERE id = .*").
		WithArgs(uint64(5)).
		WillReturnRows(jobRow(5, "Dub Director", now))

	repo := NewJobRepo(db)
	j := &Job{ID: 5, Title: "Dub Director", Description: "desc", Requirements: "reqs", Location: "Remote"}
	assert.NoError(t, repo.Update(context.Background(), j))
}

func TestJobRepo_Update_Missing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE jobs SET .*").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT .* FROM jobs WHERE id = .*").
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows(jobColumns))

	repo := NewJobRepo(db)
	j := &Job{ID: 404, Title: "gone", Description: "d", Requirements: "r", Location: "l"}
	assert.ErrorIs(t, repo.Update(context.Background(), j), ErrJobNotFound)
}

func TestJobRepo_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM jobs WHERE id = .*").
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM jobs WHERE id = .*").
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewJobRepo(db)
	assert.NoError(t, repo.Delete(context.Background(), 5))
	assert.ErrorIs(t, repo.Delete(context.Background(), 5), ErrJobNotFound)
}

func TestJobRepo_ListNewestFirst(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC().Truncate(time.Second)
	rows := sqlmock.NewRows(jobColumns).
		AddRow(3, "newest", "d", "r", "l", "", now, now).
		AddRow(1, "oldest", "d", "r", "l", "", now.Add(-time.Hour), now.Add(-time.Hour))
	mock.ExpectQuery("SELECT .* FROM jobs ORDER BY created_at DESC, id DESC").
		WillReturnRows(rows)

	repo := NewJobRepo(db)
	jobs, err := repo.ListNewestFirst(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "newest", jobs[0].Title)
	assert.Equal(t, "oldest", jobs[1].Title)
}

func TestJobRepo_ListNewestFirst_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT .* FROM jobs ORDER BY .*").
		WillReturnError(errors.New("connection lost"))

	repo := NewJobRepo(db)
	_, err = repo.ListNewestFirst(context.Background())
	assert.Error(t, err)
}
