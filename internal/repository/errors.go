// Package repository defines error values shared across repositories.
// Sentinel errors let handlers distinguish failure scenarios without
// inspecting driver-specific error strings at the call site.
package repository

import "errors"

// ErrJobNotFound is returned when a job posting does not exist.  Handlers
// translate this into an HTTP 404 response.
var ErrJobNotFound = errors.New("job not found")

// ErrApplicationNotFound is returned when an application does not exist.
var ErrApplicationNotFound = errors.New("application not found")

// ErrEmailExists is returned when registration collides with an existing
// account.  Handlers translate this into an HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")
