// Package queue defines message payloads exchanged over the message broker.
package queue

// ApplicationReceivedEvent is published after an application record has
// been durably stored.  It carries enough for downstream consumers to log
// or notify without querying the primary database.  Publishing is
// best-effort: a broker failure never surfaces to the applicant.
type ApplicationReceivedEvent struct {
	ApplicationID uint64 `json:"application_id"`
	JobID         uint64 `json:"job_id"`
	JobTitle      string `json:"job_title"`
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	ResumeURL     string `json:"resume_url,omitempty"`
	SubmittedAt   string `json:"submitted_at"`
}
