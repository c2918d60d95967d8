package domain

import "errors"

// ErrNotFound is returned by repo, upstream and service functions when the
// requested resource does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. unknown status filter, page size not offered).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrForbidden is returned when the current admin's role lacks the
// permission an operation requires.
// Handlers should map this to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrUpstream is returned when the hotel backend fails or answers with an
// unexpected status. Handlers should map this to HTTP 502.
var ErrUpstream = errors.New("upstream error")
