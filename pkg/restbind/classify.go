package restbind

import (
	"github.com/hexennacht/restbind/internal/constants"
)

// Outcome is the tagged success/error value produced by classifying a
// transport result against a route's response declaration.
type Outcome struct {
	Success bool
	Status  int

	// Payload is the success payload. When the route enumerates discrete
	// status-keyed shapes it is the inner Data value; when the route
	// declares a single catch-all shape it is the entire *Result.
	Payload any

	// Err is set on the error branch.
	Err *ResponseError
}

// Classify routes a transport result down the success path when its status
// is in the 200-299 range and down the error path otherwise. Statuses the
// route does not declare still classify, producing an undeclared error
// outcome.
func Classify(result *Result, route Route) Outcome {
	if result.Status < constants.StatusSuccessMin || result.Status > constants.StatusSuccessMax {
		return Outcome{
			Status: result.Status,
			Err: &ResponseError{
				Status:   result.Status,
				Data:     result.Data,
				Declared: route.Responses.ShapeFor(result.Status) != nil,
			},
		}
	}

	if route.Responses.Enumerated() {
		return Outcome{Success: true, Status: result.Status, Payload: result.Data}
	}

	return Outcome{Success: true, Status: result.Status, Payload: result}
}
