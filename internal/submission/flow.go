// Package submission orchestrates the application submit path: local
// validation, a single resume upload to the external host, then a single
// durable record write.  A successful call produces exactly one application
// record whose resume URL is either empty or the URL returned by this
// call's upload.  A failed call leaves no record behind; the only partial
// state possible is an orphaned blob at the upload host when the record
// write fails after a successful upload, which is accepted and not
// reconciled.  Nothing here retries automatically.
package submission

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/verbalate/careers-api/internal/repository"
	"github.com/verbalate/careers-api/internal/session"
	"github.com/verbalate/careers-api/internal/uploader"
)

// ApplicationStore is the slice of the repository the flow needs: one
// create call per successful submission.
type ApplicationStore interface {
	Create(ctx context.Context, a *repository.Application) error
}

// ResumeUploader transfers one attachment and reports the host's answer.
type ResumeUploader interface {
	Upload(ctx context.Context, f uploader.File) (uploader.Result, error)
}

// Policy fixes which attachments this deployment accepts.  Required
// controls the flow variant: when true, an application without a resume is
// rejected during local validation.
type Policy struct {
	AllowedTypes []string
	MaxBytes     int64
	Required     bool
}

// Allows reports whether the MIME type is on the allow-list.
func (p Policy) Allows(contentType string) bool {
	for _, t := range p.AllowedTypes {
		if strings.EqualFold(t, contentType) {
			return true
		}
	}
	return false
}

// Form holds the applicant-supplied fields.  FullName and Email are
// required; beyond presence no schema is enforced on the free-form values.
type Form struct {
	FullName    string
	Email       string
	Phone       string
	CoverLetter string
}

// Resume is the optional attachment.  Size is the declared byte size from
// the multipart header and is checked against the policy ceiling before
// any upload attempt.
type Resume struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}

// Flow wires the submission dependencies together.  Trusted, when set,
// rejects an upload result whose delivery URL is off the configured host
// before anything is persisted; a stored record never carries a resume URL
// this predicate refuses.  AfterPersist, when set, runs once per
// successfully stored application; it exists for side channels like broker
// events and live-feed invalidation whose failures must never affect the
// caller-visible result.
type Flow struct {
	Store        ApplicationStore
	Uploader     ResumeUploader
	Policy       Policy
	Trusted      func(url string) bool
	AfterPersist func(ctx context.Context, a repository.Application)
}

// New constructs a Flow.
func New(store ApplicationStore, up ResumeUploader, policy Policy) *Flow {
	return &Flow{Store: store, Uploader: up, Policy: policy}
}

// Submit runs the full submission path.  Steps, in order, with no step
// skipped on the success path:
//
//  1. local validation of target, session, form and attachment; any
//     violation returns before network traffic,
//  2. a single upload attempt when a resume is present,
//  3. a single record create denormalizing the job title and attaching the
//     upload result,
//  4. the AfterPersist hook.
//
// The returned application is the stored row including its server-assigned
// id and timestamp.
func (f *Flow) Submit(ctx context.Context, job *repository.Job, sess *session.Session, form Form, resume *Resume) (*repository.Application, error) {
	if job == nil || job.ID == 0 {
		return nil, ErrInvalidTarget
	}
	if sess == nil {
		return nil, ErrUnauthenticated
	}
	if err := f.validate(form, resume); err != nil {
		return nil, err
	}

	var resumeURL, resumePublicID string
	if resume != nil {
		res, err := f.Uploader.Upload(ctx, uploader.File{
			Name:        resume.Name,
			ContentType: resume.ContentType,
			Content:     resume.Content,
		})
		if err != nil {
			return nil, &UploadError{Err: err}
		}
		if f.Trusted != nil && !f.Trusted(res.SecureURL) {
			return nil, &UploadError{Err: fmt.Errorf("host returned a delivery url outside the trusted host")}
		}
		resumeURL = res.SecureURL
		resumePublicID = res.PublicID
	}

	app := &repository.Application{
		JobID:          job.ID,
		JobTitle:       job.Title,
		FullName:       strings.TrimSpace(form.FullName),
		Email:          strings.TrimSpace(form.Email),
		Phone:          strings.TrimSpace(form.Phone),
		CoverLetter:    strings.TrimSpace(form.CoverLetter),
		ResumeURL:      resumeURL,
		ResumePublicID: resumePublicID,
		UserID:         sess.UID,
		Status:         repository.StatusPending,
	}
	if err := f.Store.Create(ctx, app); err != nil {
		if resumeURL != "" {
			// Known gap: the uploaded blob is now orphaned at the host.
			log.Printf("submission: record write failed after upload, orphaned blob public_id=%s: %v", resumePublicID, err)
		}
		return nil, &PersistError{Err: err}
	}

	if f.AfterPersist != nil {
		f.AfterPersist(ctx, *app)
	}
	return app, nil
}

// validate performs every local check.  It never touches the network.
func (f *Flow) validate(form Form, resume *Resume) error {
	if strings.TrimSpace(form.FullName) == "" {
		return &ValidationError{Reason: "full name is required"}
	}
	if strings.TrimSpace(form.Email) == "" {
		return &ValidationError{Reason: "email is required"}
	}
	if resume == nil {
		if f.Policy.Required {
			return &ValidationError{Reason: "resume is required"}
		}
		return nil
	}
	if !f.Policy.Allows(resume.ContentType) {
		return &ValidationError{Reason: fmt.Sprintf("resume type %s is not allowed", resume.ContentType)}
	}
	if resume.Size > f.Policy.MaxBytes {
		return &ValidationError{Reason: fmt.Sprintf("resume must be under %dMB", f.Policy.MaxBytes/(1024*1024))}
	}
	return nil
}
