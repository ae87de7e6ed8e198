package api

import "fmt"

// Error carries the outcome of a failed request: the HTTP status (0 when no
// response was received) and the raw, unmodified response body. Translation
// into user-facing text happens in the errmsg package, not here, so the
// adapter stays protocol-only.
type Error struct {
	StatusCode int
	Body       []byte
	Err        error // transport failure, set only when StatusCode is 0
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("request failed: %v", e.Err)
	}
	return fmt.Sprintf("status %d: %s", e.StatusCode, string(e.Body))
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsNetwork reports whether no HTTP response was received at all.
func (e *Error) IsNetwork() bool {
	return e.StatusCode == 0
}
