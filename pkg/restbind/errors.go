package restbind

import (
	"errors"
	"fmt"
)

// Static errors for err113 compliance.
var (
	ErrUnknownOperation      = errors.New("unknown leaf operation")
	ErrOperationNotSupported = errors.New("operation not supported by route")
	ErrRouteNotFound         = errors.New("no route at path")
	ErrNotARoute             = errors.New("path does not terminate at a route")
	ErrMissingPathParam      = errors.New("missing path parameter")
	ErrTransportRequired     = errors.New("transport is required")
	ErrEngineRequired        = errors.New("caching engine is required")
	ErrBaseURLRequired       = errors.New("base URL is required")
	ErrConfigRequired        = errors.New("config is required")
	ErrInvalidMutationInput  = errors.New("mutation input must be CallArgs")
)

// ResponseError is the error outcome produced when a query-style call
// completes with a non-success status. Data carries the response payload:
// the declared shape's payload when the route declares the status, an
// unknown payload otherwise.
type ResponseError struct {
	Status   int
	Data     any
	Declared bool
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	if e.Declared {
		return fmt.Sprintf("request failed with declared status %d", e.Status)
	}

	return fmt.Sprintf("request failed with status %d", e.Status)
}

// AsResponseError unwraps a *ResponseError from err, if present.
func AsResponseError(err error) (*ResponseError, bool) {
	respErr := &ResponseError{}
	if errors.As(err, &respErr) {
		return respErr, true
	}

	return nil, false
}

// IsDeclaredFailure checks whether err is a response error whose status the
// route's contract declares a shape for.
func IsDeclaredFailure(err error) bool {
	respErr, ok := AsResponseError(err)

	return ok && respErr.Declared
}
