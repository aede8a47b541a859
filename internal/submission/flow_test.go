package submission

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verbalate/careers-api/internal/repository"
	"github.com/verbalate/careers-api/internal/session"
	"github.com/verbalate/careers-api/internal/uploader"
)

type fakeStore struct {
	created []repository.Application
	err     error
}

func (s *fakeStore) Create(_ context.Context, a *repository.Application) error {
	if s.err != nil {
		return s.err
	}
	a.ID = uint64(len(s.created) + 1)
	a.CreatedAt = time.Now().UTC()
	s.created = append(s.created, *a)
	return nil
}

type fakeUploader struct {
	res   uploader.Result
	err   error
	calls int
}

func (u *fakeUploader) Upload(_ context.Context, _ uploader.File) (uploader.Result, error) {
	u.calls++
	if u.err != nil {
		return uploader.Result{}, u.err
	}
	return u.res, nil
}

func pdfPolicy() Policy {
	return Policy{AllowedTypes: []string{"application/pdf"}, MaxBytes: 2 * 1024 * 1024}
}

func testJob() *repository.Job {
	return &repository.Job{ID: 7, Title: "Subtitle QA Specialist"}
}

func testSession() *session.Session {
	return &session.Session{UID: 42, Email: "jane@x.com", Role: "user"}
}

func pdfResume(size int64) *Resume {
	return &Resume{
		Name:        "resume.pdf",
		ContentType: "application/pdf",
		Size:        size,
		Content:     strings.NewReader("%PDF-1.4"),
	}
}

func TestSubmit_SuccessWithResume(t *testing.T) {
	store := &fakeStore{}
	up := &fakeUploader{res: uploader.Result{
		SecureURL: "https://res.cloudinary.com/demo/raw/upload/v1/resumes/abc.pdf",
		PublicID:  "resumes/abc",
	}}
	flow := New(store, up, pdfPolicy())

	app, err := flow.Submit(context.Background(), testJob(), testSession(),
		Form{FullName: "Jane Doe", Email: "jane@x.com"}, pdfResume(1500*1024))

	require.NoError(t, err)
	require.Len(t, store.created, 1)
	assert.Equal(t, 1, up.calls)
	// The stored URL is exactly the one this invocation's upload returned.
	assert.Equal(t, up.res.SecureURL, app.ResumeURL)
	assert.Equal(t, up.res.PublicID, app.ResumePublicID)
	assert.Equal(t, repository.StatusPending, app.Status)
	assert.Equal(t, uint64(7), app.JobID)
	assert.Equal(t, "Subtitle QA Specialist", app.JobTitle)
	assert.Equal(t, uint64(42), app.UserID)
	assert.NotZero(t, app.ID)
}

func TestSubmit_UntrustedUploadResultNeverStored(t *testing.T) {
	store := &fakeStore{}
	up := &fakeUploader{res: uploader.Result{
		SecureURL: "https://elsewhere.example.com/raw/upload/v1/resumes/abc.pdf",
		PublicID:  "resumes/abc",
	}}
	flow := New(store, up, pdfPolicy())
	client := uploader.New("", "", "", "https://res.cloudinary.com/demo/")
	flow.Trusted = client.Trusted

	_, err := flow.Submit(context.Background(), testJob(), testSession(),
		Form{FullName: "Jane Doe", Email: "jane@x.com"}, pdfResume(1024))

	var upErr *UploadError
	require.ErrorAs(t, err, &upErr)
	assert.Empty(t, store.created)
}

func TestSubmit_SuccessWithoutResume(t *testing.T) {
	store := &fakeStore{}
	up := &fakeUploader{}
	flow := New(store, up, pdfPolicy())

	app, err := flow.Submit(context.Background(), testJob(), testSession(),
		Form{FullName: "Jane Doe", Email: "jane@x.com"}, nil)

	require.NoError(t, err)
	assert.Equal(t, 0, up.calls)
	assert.Empty(t, app.ResumeURL)
	assert.Empty(t, app.ResumePublicID)
}

func TestSubmit_ValidationBeforeNetwork(t *testing.T) {
	testCases := []struct {
		name   string
		form   Form
		resume *Resume
	}{
		{
			name:   "missing full name",
			form:   Form{Email: "jane@x.com"},
			resume: pdfResume(1024),
		},
		{
			name:   "missing email",
			form:   Form{FullName: "Jane Doe"},
			resume: pdfResume(1024),
		},
		{
			name:   "whitespace only name",
			form:   Form{FullName: "   ", Email: "jane@x.com"},
			resume: pdfResume(1024),
		},
		{
			name:   "oversized resume",
			form:   Form{FullName: "Jane Doe", Email: "jane@x.com"},
			resume: pdfResume(3 * 1024 * 1024),
		},
		{
			name: "disallowed type",
			form: Form{FullName: "Jane Doe", Email: "jane@x.com"},
			resume: &Resume{
				Name:        "resume.docx",
				ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
				Size:        1024,
				Content:     strings.NewReader("x"),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeStore{}
			up := &fakeUploader{}
			flow := New(store, up, pdfPolicy())

			_, err := flow.Submit(context.Background(), testJob(), testSession(), tc.form, tc.resume)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			// Validation failures never reach the network.
			assert.Equal(t, 0, up.calls)
			assert.Empty(t, store.created)
		})
	}
}

func TestSubmit_InvalidTarget(t *testing.T) {
	store := &fakeStore{}
	up := &fakeUploader{}
	flow := New(store, up, pdfPolicy())

	for _, job := range []*repository.Job{nil, {ID: 0, Title: "ghost"}} {
		_, err := flow.Submit(context.Background(), job, testSession(),
			Form{FullName: "Jane Doe", Email: "jane@x.com"}, nil)
		assert.ErrorIs(t, err, ErrInvalidTarget)
	}
	assert.Equal(t, 0, up.calls)
	assert.Empty(t, store.created)
}

func TestSubmit_Unauthenticated(t *testing.T) {
	store := &fakeStore{}
	up := &fakeUploader{}
	flow := New(store, up, pdfPolicy())

	_, err := flow.Submit(context.Background(), testJob(), nil,
		Form{FullName: "Jane Doe", Email: "jane@x.com"}, pdfResume(1024))

	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Equal(t, 0, up.calls)
	assert.Empty(t, store.created)
}

func TestSubmit_ResumeRequiredPolicy(t *testing.T) {
	policy := pdfPolicy()
	policy.Required = true
	flow := New(&fakeStore{}, &fakeUploader{}, policy)

	_, err := flow.Submit(context.Background(), testJob(), testSession(),
		Form{FullName: "Jane Doe", Email: "jane@x.com"}, nil)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Error(), "resume is required")
}

func TestSubmit_UploadFailure(t *testing.T) {
	store := &fakeStore{}
	up := &fakeUploader{err: errors.New("connection reset")}
	flow := New(store, up, pdfPolicy())

	_, err := flow.Submit(context.Background(), testJob(), testSession(),
		Form{FullName: "Jane Doe", Email: "jane@x.com"}, pdfResume(1024))

	var upErr *UploadError
	require.ErrorAs(t, err, &upErr)
	// No record is ever written when the upload fails.
	assert.Empty(t, store.created)
}

func TestSubmit_PersistFailureAfterUpload(t *testing.T) {
	store := &fakeStore{err: errors.New("write rejected")}
	up := &fakeUploader{res: uploader.Result{
		SecureURL: "https://res.cloudinary.com/demo/raw/upload/v1/resumes/orphan.pdf",
		PublicID:  "resumes/orphan",
	}}
	flow := New(store, up, pdfPolicy())
	hookFired := false
	flow.AfterPersist = func(context.Context, repository.Application) { hookFired = true }

	_, err := flow.Submit(context.Background(), testJob(), testSession(),
		Form{FullName: "Jane Doe", Email: "jane@x.com"}, pdfResume(1024))

	var pErr *PersistError
	require.ErrorAs(t, err, &pErr)
	// Upload happened, record did not: the blob is orphaned at the host.
	assert.Equal(t, 1, up.calls)
	assert.Empty(t, store.created)
	assert.False(t, hookFired)
}

func TestSubmit_StaleJobAccepted(t *testing.T) {
	// A posting deleted while the form was open still produces a record
	// referencing the now-nonexistent job; the reference is not enforced.
	store := &fakeStore{}
	flow := New(store, &fakeUploader{}, pdfPolicy())

	app, err := flow.Submit(context.Background(),
		&repository.Job{ID: 99, Title: "Removed Opening"}, testSession(),
		Form{FullName: "Jane Doe", Email: "jane@x.com"}, nil)

	require.NoError(t, err)
	assert.Equal(t, uint64(99), app.JobID)
	assert.Equal(t, "Removed Opening", app.JobTitle)
}

func TestSubmit_AfterPersistSeesStoredRow(t *testing.T) {
	store := &fakeStore{}
	flow := New(store, &fakeUploader{}, pdfPolicy())

	var got repository.Application
	flow.AfterPersist = func(_ context.Context, a repository.Application) { got = a }

	app, err := flow.Submit(context.Background(), testJob(), testSession(),
		Form{FullName: "Jane Doe", Email: "jane@x.com"}, nil)

	require.NoError(t, err)
	assert.Equal(t, app.ID, got.ID)
	assert.Equal(t, repository.StatusPending, got.Status)
}

func TestPolicy_Allows(t *testing.T) {
	p := Policy{AllowedTypes: []string{"application/pdf", "application/msword"}}
	assert.True(t, p.Allows("application/pdf"))
	assert.True(t, p.Allows("Application/PDF"))
	assert.False(t, p.Allows("image/png"))
	assert.False(t, p.Allows(""))
}
