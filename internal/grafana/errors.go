package grafana

import "fmt"

// ConnectivityError indicates the API could not be reached at all.
type ConnectivityError struct {
	URL string
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("could not reach %s: %v", e.URL, e.Err)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// APIError indicates the API answered with a non-2xx status or an error
// envelope. Message carries the server's own message verbatim when present.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" && e.Status != 0 {
		return fmt.Sprintf("API error (status %d): %s", e.Status, e.Message)
	}
	if e.Message != "" {
		return "API error: " + e.Message
	}
	return fmt.Sprintf("API error (status %d)", e.Status)
}

// MalformedResponseError indicates a body that does not parse as JSON.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return "response is not valid JSON: " + e.Err.Error()
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// ShapeError indicates a parseable body whose top-level shape is not the
// expected collection.
type ShapeError struct {
	Want string
	Got  string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("unexpected response shape: want %s, got %s", e.Want, e.Got)
}
