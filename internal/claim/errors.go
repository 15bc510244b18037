package claim

import "fmt"

// maxErrorBody caps how much of an unexpected response is kept for logging.
const maxErrorBody = 4 << 10

// StatusError reports a response with a status other than 200.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status code %d", e.Op, e.StatusCode)
}
