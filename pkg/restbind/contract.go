package restbind

import (
	"fmt"
	"net/http"
	"strings"
)

// Node is one position in a route tree: either a Route leaf or a nested Tree.
type Node interface {
	isNode()
}

// Tree maps route keys to nested trees or route descriptors. Trees are
// arbitrary-depth and immutable once bound.
type Tree map[string]Node

func (Tree) isNode() {}

// PathFunc resolves path parameters into a concrete request path.
type PathFunc func(params map[string]string) (string, error)

// Shape validates a payload against a declared contract shape. Shapes are
// owned by whoever defines the API contract; the core only hands values to
// them and never inspects payloads itself.
type Shape interface {
	Validate(value any) error
}

// AnyShape accepts every payload. Useful when a contract only cares about
// status codes.
type AnyShape struct{}

// Validate implements Shape.
func (AnyShape) Validate(any) error { return nil }

// StatusShapes declares the expected response payload shapes of a route.
// Either ByStatus enumerates discrete status codes, or CatchAll declares a
// single generic shape for every response. The two styles classify success
// payloads differently, see Classify.
type StatusShapes struct {
	ByStatus map[int]Shape
	CatchAll Shape
}

// Enumerated reports whether the declaration names discrete status codes.
func (s StatusShapes) Enumerated() bool {
	return len(s.ByStatus) > 0
}

// ShapeFor returns the declared shape for a status code, or nil when the
// status is not covered by the declaration.
func (s StatusShapes) ShapeFor(status int) Shape {
	if s.Enumerated() {
		return s.ByStatus[status]
	}

	return s.CatchAll
}

// Route describes one endpoint leaf: the HTTP method, a path template
// function, and the expected request/response shapes. Immutable once
// constructed.
type Route struct {
	Method    string
	Path      PathFunc
	Responses StatusShapes
	Body      Shape
	Query     Shape
}

func (Route) isNode() {}

// Readable reports whether the route supports query-style (read) operations.
func (r Route) Readable() bool {
	return r.Method == http.MethodGet || r.Method == http.MethodHead
}

// Writable reports whether the route supports mutation-style (write)
// operations.
func (r Route) Writable() bool {
	return !r.Readable()
}

// PathTemplate builds a PathFunc from a ":name" template, e.g. "/users/:id".
// Resolution fails when a named parameter is absent from the call params.
func PathTemplate(template string) PathFunc {
	return func(params map[string]string) (string, error) {
		segments := strings.Split(template, "/")
		for i, segment := range segments {
			if !strings.HasPrefix(segment, ":") {
				continue
			}

			name := segment[1:]

			value, ok := params[name]
			if !ok {
				return "", fmt.Errorf("%w: %s", ErrMissingPathParam, name)
			}

			segments[i] = value
		}

		return strings.Join(segments, "/"), nil
	}
}

// StaticPath builds a PathFunc that resolves to a fixed path regardless of
// params.
func StaticPath(path string) PathFunc {
	return func(map[string]string) (string, error) {
		return path, nil
	}
}
