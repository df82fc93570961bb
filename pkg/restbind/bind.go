package restbind

import (
	"fmt"
	"strings"
)

// OpKind is the closed enumeration of recognized leaf operation requests.
type OpKind int

const (
	// OpQuery is a direct, one-shot read with no caching side effects.
	OpQuery OpKind = iota

	// OpMutation is a direct, one-shot write.
	OpMutation

	// OpUseQuery is a keyed, deduplicated read through the caching engine.
	OpUseQuery

	// OpUseMutation is an imperative write handle through the caching
	// engine.
	OpUseMutation
)

// String implements fmt.Stringer.
func (k OpKind) String() string {
	switch k {
	case OpQuery:
		return "query"
	case OpMutation:
		return "mutation"
	case OpUseQuery:
		return "useQuery"
	case OpUseMutation:
		return "useMutation"
	default:
		return fmt.Sprintf("OpKind(%d)", int(k))
	}
}

// ParseOpKind maps an operation name to its OpKind. Unrecognized names fail
// with an error naming the offending key.
func ParseOpKind(name string) (OpKind, error) {
	switch name {
	case "query":
		return OpQuery, nil
	case "mutation":
		return OpMutation, nil
	case "useQuery":
		return OpUseQuery, nil
	case "useMutation":
		return OpUseMutation, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
	}
}

// Operation is the tagged result of resolving a leaf operation request.
// Exactly one field besides Kind is set.
type Operation struct {
	Kind        OpKind
	Query       QueryFunc
	Mutation    MutationFunc
	UseQuery    CachedQueryFunc
	UseMutation CachedMutationFunc
}

// Bound is one position in the mirrored tree. Navigation is lazy: a Bound
// records only the path of keys taken so far, and the route tree is walked
// when a terminal operation is requested. Every access yields a fresh value;
// none are memoized.
type Bound struct {
	root Node
	args ConnectionArgs
	path []string
}

// Bind mirrors a route tree onto connection arguments. The mirrored tree's
// key structure equals the route tree's at every depth; only the leaves
// differ, exposing bound operations instead of raw route descriptors.
func Bind(node Node, args ConnectionArgs) *Bound {
	return &Bound{root: node, args: args}
}

// Child navigates one key deeper. No validation happens here: a key that
// does not exist in the tree surfaces as an error only when a terminal
// operation is requested. A sub-tree named "query" or "mutation" is still a
// sub-tree; operations are requested through the OpKind methods, never by
// key collision.
func (b *Bound) Child(key string) *Bound {
	path := make([]string, len(b.path)+1)
	copy(path, b.path)
	path[len(b.path)] = key

	return &Bound{root: b.root, args: b.args, path: path}
}

// At navigates a dotted path, e.g. "users.byId".
func (b *Bound) At(dotted string) *Bound {
	bound := b
	for _, key := range strings.Split(dotted, ".") {
		bound = bound.Child(key)
	}

	return bound
}

// Path returns the keys navigated so far, joined with dots.
func (b *Bound) Path() string {
	return strings.Join(b.path, ".")
}

// Route walks the recorded path down the tree and returns the leaf route
// descriptor. This is where navigation failures surface.
func (b *Bound) Route() (Route, error) {
	node := b.root

	for i, key := range b.path {
		tree, ok := node.(Tree)
		if !ok {
			return Route{}, fmt.Errorf("%w: %q descends below route %q",
				ErrRouteNotFound, strings.Join(b.path, "."), strings.Join(b.path[:i], "."))
		}

		child, ok := tree[key]
		if !ok {
			return Route{}, fmt.Errorf("%w: %q", ErrRouteNotFound, strings.Join(b.path[:i+1], "."))
		}

		node = child
	}

	route, ok := node.(Route)
	if !ok {
		return Route{}, fmt.Errorf("%w: %q", ErrNotARoute, strings.Join(b.path, "."))
	}

	return route, nil
}

// Query returns the direct one-shot read operation for this leaf. Only
// read-style routes support it.
func (b *Bound) Query() (QueryFunc, error) {
	route, err := b.leaf(OpQuery, Route.Readable)
	if err != nil {
		return nil, err
	}

	return makeQuery(route, b.args), nil
}

// Mutation returns the direct one-shot write operation for this leaf. Only
// write-style routes support it.
func (b *Bound) Mutation() (MutationFunc, error) {
	route, err := b.leaf(OpMutation, Route.Writable)
	if err != nil {
		return nil, err
	}

	return makeMutation(route, b.args), nil
}

// UseQuery returns the engine-backed keyed read operation for this leaf.
func (b *Bound) UseQuery() (CachedQueryFunc, error) {
	route, err := b.leaf(OpUseQuery, Route.Readable)
	if err != nil {
		return nil, err
	}

	return makeCachedQuery(route, b.args), nil
}

// UseMutation returns the engine-backed mutation factory for this leaf.
func (b *Bound) UseMutation() (CachedMutationFunc, error) {
	route, err := b.leaf(OpUseMutation, Route.Writable)
	if err != nil {
		return nil, err
	}

	return makeCachedMutation(route, b.args), nil
}

// Operation resolves one of the four recognized leaf operation requests as a
// tagged value. Any other kind fails carrying the unrecognized value.
func (b *Bound) Operation(kind OpKind) (*Operation, error) {
	switch kind {
	case OpQuery:
		fn, err := b.Query()
		if err != nil {
			return nil, err
		}

		return &Operation{Kind: kind, Query: fn}, nil

	case OpMutation:
		fn, err := b.Mutation()
		if err != nil {
			return nil, err
		}

		return &Operation{Kind: kind, Mutation: fn}, nil

	case OpUseQuery:
		fn, err := b.UseQuery()
		if err != nil {
			return nil, err
		}

		return &Operation{Kind: kind, UseQuery: fn}, nil

	case OpUseMutation:
		fn, err := b.UseMutation()
		if err != nil {
			return nil, err
		}

		return &Operation{Kind: kind, UseMutation: fn}, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, kind)
	}
}

// leaf resolves the route and checks that it supports the requested
// operation style.
func (b *Bound) leaf(kind OpKind, supports func(Route) bool) (Route, error) {
	route, err := b.Route()
	if err != nil {
		return Route{}, err
	}

	if !supports(route) {
		return Route{}, fmt.Errorf("%w: %s on %s %q", ErrOperationNotSupported, kind, route.Method, b.Path())
	}

	return route, nil
}
