package submission

import (
	"errors"
	"fmt"
)

// ErrInvalidTarget is returned when the submission targets a job without a
// valid identifier.  It is raised before any external call is made.
var ErrInvalidTarget = errors.New("job not found, please refresh the listing")

// ErrUnauthenticated is returned when no session accompanies the
// submission.  No network call is made.
var ErrUnauthenticated = errors.New("please log in to apply")

// ValidationError reports a locally detected problem with the form or the
// attachment: a missing required field, a disallowed file type or an
// oversized file.  Validation always happens before any network traffic.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// UploadError wraps a failed transfer to the resume host.  The wrapped
// error carries the host-reported message when one was available.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string { return fmt.Sprintf("couldn't upload your file: %v", e.Err) }
func (e *UploadError) Unwrap() error { return e.Err }

// PersistError wraps a failed application record write.  When it follows a
// successful upload the uploaded blob is orphaned at the host; no cleanup
// is attempted.
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string { return fmt.Sprintf("couldn't save your application: %v", e.Err) }
func (e *PersistError) Unwrap() error { return e.Err }
