package httprelay

import (
	"errors"
	"fmt"
)

// Sentinel errors for registry failures. These are configuration
// mistakes: they are returned synchronously and never pass through the
// error-handler policy.
var (
	// ErrDuplicateInstance is returned when a named instance is defined twice.
	ErrDuplicateInstance = errors.New("httprelay: instance already defined")

	// ErrDefaultExists is returned when an unnamed configuration arrives
	// after the default instance exists alongside named instances.
	ErrDefaultExists = errors.New("httprelay: default instance already defined, InstanceName required")

	// ErrInstanceNotFound is returned by lookups for unknown instance names.
	ErrInstanceNotFound = errors.New("httprelay: instance not found")
)

// ResponseError is the failure produced when the server answered with a
// non-2xx status. The full envelope remains available for inspection:
//
//	var respErr *httprelay.ResponseError
//	if errors.As(err, &respErr) {
//	    log.Printf("status %d: %s", respErr.Response.StatusCode, respErr.Response.Body)
//	}
type ResponseError struct {
	Response *Response
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("httprelay: request failed: %s", e.Response.Status)
}

// DecodeError is the failure produced when a response body could not be
// decoded into the Result target supplied on the Config.
type DecodeError struct {
	Response *Response
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("httprelay: decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
