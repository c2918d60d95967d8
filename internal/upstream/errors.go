package upstream

import (
	"fmt"
	"net/http"

	"github.com/pkordes/frontdesk/internal/domain"
)

// StatusError is a non-2xx answer from the hotel backend.
// It unwraps to domain.ErrNotFound for 404 and domain.ErrUpstream otherwise,
// so callers can branch with errors.Is.
type StatusError struct {
	Op      string
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream.%s: [%d] %s", e.Op, e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("upstream.%s: [%d] %s", e.Op, e.Status, e.Message)
}

func (e *StatusError) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return domain.ErrNotFound
	}
	return domain.ErrUpstream
}
