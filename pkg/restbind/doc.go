// Package restbind turns a declarative description of a remote API's routes
// into a tree of callable operations bound to a transport and a caching
// lifecycle engine.
//
// # Overview
//
// A contract is a Tree whose leaves are Route descriptors: an HTTP method, a
// path template function, and the expected response shapes. Bind mirrors the
// tree onto ConnectionArgs (base URL, base headers, transport, engine) and
// returns a Bound root. Navigating the mirror with Child or At reaches a
// leaf whose operations build the request, execute one transport call, and
// classify the result by status code.
//
//	contract := restbind.Tree{
//	  "users": restbind.Tree{
//	    "byId": restbind.Route{
//	      Method: "GET",
//	      Path:   restbind.PathTemplate("/users/:id"),
//	      Responses: restbind.StatusShapes{ByStatus: map[int]restbind.Shape{
//	        200: restbind.AnyShape{},
//	        404: restbind.AnyShape{},
//	      }},
//	    },
//	  },
//	}
//
//	bound, err := bindclient.New(&restbind.Config{BaseURL: "https://api.example.com"}, contract)
//	if err != nil { log.Fatal(err) }
//
//	query, err := bound.At("users.byId").Query()
//	if err != nil { log.Fatal(err) }
//
//	data, err := query(ctx, restbind.CallArgs{
//	  Params: map[string]string{"id": "42"},
//	  Query:  map[string]any{"active": "true"},
//	})
//
// # Operations
//
// Each leaf exposes four operations, requested through a closed OpKind
// enumeration: Query and Mutation are direct one-shot calls; UseQuery and
// UseMutation delegate lifecycle (pending/success/error/stale, keyed
// deduplication, retry) to the lifecycle engine. Read-style routes (GET,
// HEAD) carry query operations, write-style routes carry mutation
// operations.
//
// # Laziness
//
// Navigation is lazy and unvalidated: Child never errors, and every access
// produces a fresh value. A path that leaves the tree fails only when a
// terminal operation is requested, with an error naming the offending key.
//
// # Errors
//
// Non-success query responses surface as *ResponseError carrying the status
// and payload; AsResponseError and IsDeclaredFailure branch on them.
// Mutations instead hand the raw *Result back to the caller, whose consumer
// owns failure semantics.
package restbind
