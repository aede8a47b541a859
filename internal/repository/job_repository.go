// This file contains data access logic for job postings.  A Job is a public
// opening shown on the careers page; all four descriptive fields are
// required, salary is free text and optional.  Edits are full-field
// overwrites and deletion is immediate with no soft-delete.
package repository

import (
	"context"
	"database/sql"
	"time"
)

// Job mirrors the 'jobs' table.  CreatedAt and UpdatedAt are assigned by
// the database so ordering does not depend on application clocks.
type Job struct {
	ID           uint64    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Requirements string    `json:"requirements"`
	Location     string    `json:"location"`
	Salary       string    `json:"salary,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// JobRepo manages persistence for job postings.
type JobRepo struct {
	db *sql.DB
}

// NewJobRepo constructs a JobRepo with the given DB handle.
func NewJobRepo(db *sql.DB) *JobRepo {
	return &JobRepo{db: db}
}

// Create inserts a new job and populates the generated ID and the
// DB-assigned timestamps on the given struct.
func (r *JobRepo) Create(ctx context.Context, j *Job) error {
	const q = `INSERT INTO jobs (title, description, requirements, location, salary) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, j.Title, j.Description, j.Requirements, j.Location, j.Salary)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	j.ID = uint64(id)
	const sel = `SELECT id, title, description, requirements, location, salary, created_at, updated_at
	             FROM jobs WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, j.ID).Scan(
		&j.ID, &j.Title, &j.Description, &j.Requirements, &j.Location, &j.Salary, &j.CreatedAt, &j.UpdatedAt,
	)
}

// GetByID retrieves a job by its ID.  It returns ErrJobNotFound if there is
// no matching row.
func (r *JobRepo) GetByID(ctx context.Context, id uint64) (*Job, error) {
	const q = `SELECT id, title, description, requirements, location, salary, created_at, updated_at
	           FROM jobs WHERE id = ?`
	var j Job
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&j.ID, &j.Title, &j.Description, &j.Requirements, &j.Location, &j.Salary, &j.CreatedAt, &j.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// Update performs a full-field overwrite of the job row and refreshes the
// struct with the DB state, including the new updated_at.  It returns
// ErrJobNotFound if the row is gone.
func (r *JobRepo) Update(ctx context.Context, j *Job) error {
	const q = `UPDATE jobs SET title=?, description=?, requirements=?, location=?, salary=? WHERE id=?`
	res, err := r.db.ExecContext(ctx, q, j.Title, j.Description, j.Requirements, j.Location, j.Salary, j.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Either the row does not exist or the overwrite matched the current
		// values.  Distinguish with a lookup so an identical re-save still
		// succeeds.
		if _, err := r.GetByID(ctx, j.ID); err != nil {
			return err
		}
	}
	const sel = `SELECT id, title, description, requirements, location, salary, created_at, updated_at
	             FROM jobs WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, j.ID).Scan(
		&j.ID, &j.Title, &j.Description, &j.Requirements, &j.Location, &j.Salary, &j.CreatedAt, &j.UpdatedAt,
	)
}

// Delete removes a job immediately.  Applications referencing the job are
// intentionally left in place; they keep the denormalized title snapshot.
func (r *JobRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrJobNotFound
	}
	return nil
}

// ListNewestFirst returns all jobs ordered by creation time, newest first.
// Ties fall back to id so the ordering is stable for display.
func (r *JobRepo) ListNewestFirst(ctx context.Context) ([]Job, error) {
	const q = `SELECT id, title, description, requirements, location, salary, created_at, updated_at
	           FROM jobs ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]Job, 0)
	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.Title, &j.Description, &j.Requirements, &j.Location, &j.Salary, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}
