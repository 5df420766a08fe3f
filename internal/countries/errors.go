package countries

import (
	"errors"
	"fmt"
)

// HTTPError is returned for any non-2xx backend response. It carries the
// status code only; the response body is not inspected.
type HTTPError struct {
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("Error %d", e.Status)
}

// StatusOf returns the status carried by an *HTTPError anywhere in err's
// chain, or 0 if there is none.
func StatusOf(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}
	return 0
}
