// This file contains data access logic for submitted job applications.
// Applications are write-once: created by the submission flow, listed and
// deleted by admins, never updated.  JobTitle is a denormalized snapshot
// taken at submission time so a later job deletion does not blank the
// listing (the job_id reference itself is not enforced).
package repository

import (
	"context"
	"database/sql"
	"time"
)

// Application status values.  The submission flow only ever produces
// StatusPending; the enum exists so stored rows are self-describing.
const StatusPending = "pending"

// Application mirrors the 'applications' table.
type Application struct {
	ID             uint64    `json:"id"`
	JobID          uint64    `json:"job_id"`
	JobTitle       string    `json:"job_title"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	CoverLetter    string    `json:"cover_letter,omitempty"`
	ResumeURL      string    `json:"resume_url,omitempty"`
	ResumePublicID string    `json:"resume_public_id,omitempty"`
	UserID         uint64    `json:"user_id"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// ApplicationRepo manages persistence for applications.
type ApplicationRepo struct {
	db *sql.DB
}

// NewApplicationRepo constructs an ApplicationRepo with the given DB handle.
func NewApplicationRepo(db *sql.DB) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

// Create inserts a new application and populates the generated ID, status
// and server-assigned created_at on the given struct.
func (r *ApplicationRepo) Create(ctx context.Context, a *Application) error {
	const q = `INSERT INTO applications
	           (job_id, job_title, full_name, email, phone, cover_letter, resume_url, resume_public_id, user_id, status)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		a.JobID, a.JobTitle, a.FullName, a.Email, a.Phone, a.CoverLetter,
		a.ResumeURL, a.ResumePublicID, a.UserID, StatusPending)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	const sel = `SELECT id, job_id, job_title, full_name, email, phone, cover_letter,
	                    resume_url, resume_public_id, user_id, status, created_at
	             FROM applications WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, a.ID).Scan(
		&a.ID, &a.JobID, &a.JobTitle, &a.FullName, &a.Email, &a.Phone, &a.CoverLetter,
		&a.ResumeURL, &a.ResumePublicID, &a.UserID, &a.Status, &a.CreatedAt,
	)
}

// GetByID retrieves an application by its ID.  It returns
// ErrApplicationNotFound when no row matches.
func (r *ApplicationRepo) GetByID(ctx context.Context, id uint64) (*Application, error) {
	const q = `SELECT id, job_id, job_title, full_name, email, phone, cover_letter,
	                  resume_url, resume_public_id, user_id, status, created_at
	           FROM applications WHERE id = ?`
	var a Application
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&a.ID, &a.JobID, &a.JobTitle, &a.FullName, &a.Email, &a.Phone, &a.CoverLetter,
		&a.ResumeURL, &a.ResumePublicID, &a.UserID, &a.Status, &a.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrApplicationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Delete removes an application after operator confirmation on the client.
func (r *ApplicationRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM applications WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

// ListNewestFirst returns all applications ordered by submission time,
// newest first, with id as the tie-break.
func (r *ApplicationRepo) ListNewestFirst(ctx context.Context) ([]Application, error) {
	const q = `SELECT id, job_id, job_title, full_name, email, phone, cover_letter,
	                  resume_url, resume_public_id, user_id, status, created_at
	           FROM applications ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := make([]Application, 0)
	for rows.Next() {
		var a Application
		if err := rows.Scan(&a.ID, &a.JobID, &a.JobTitle, &a.FullName, &a.Email, &a.Phone, &a.CoverLetter,
			&a.ResumeURL, &a.ResumePublicID, &a.UserID, &a.Status, &a.CreatedAt); err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}
