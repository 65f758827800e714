package client

import (
	"errors"
	"fmt"
)

// RequestError is returned for any failed API call. Status is the HTTP
// status for non-2xx responses and 0 for transport failures; Body holds the
// raw response body when one was read. The client never retries; deciding
// recoverable vs fatal is the caller's job.
type RequestError struct {
	Status int
	Body   []byte
	err    error
}

func (e *RequestError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("request failed: %v", e.err)
	}
	if len(e.Body) > 0 {
		return fmt.Sprintf("request failed: status %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("request failed: status %d", e.Status)
}

func (e *RequestError) Unwrap() error { return e.err }

// IsStatus reports whether err is a RequestError with the given HTTP status.
func IsStatus(err error, status int) bool {
	var re *RequestError
	return errors.As(err, &re) && re.Status == status
}
