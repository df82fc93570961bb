package restbind

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hexennacht/restbind/internal/constants"
)

// opStyle distinguishes the two request-construction paths shared by query
// and mutation operations.
type opStyle int

const (
	styleQuery opStyle = iota
	styleMutation
)

// invoke resolves the route's path template, builds the complete URL, and
// performs exactly one transport call. Query-style calls carry no body.
// Mutation-style calls carry the base headers merged with a JSON content
// type and the call body JSON-encoded; an absent body still encodes (to
// "null") and is sent as-is.
func invoke(ctx context.Context, route Route, args ConnectionArgs, call CallArgs, style opStyle) (*Result, error) {
	if args.Transport == nil {
		return nil, ErrTransportRequired
	}

	path, err := route.Path(call.Params)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	fullURL := BuildURL(call.Query, args.BaseURL, path)

	headers := make(map[string]string, len(args.BaseHeaders)+1)
	for key, value := range args.BaseHeaders {
		headers[key] = value
	}

	var body []byte

	if style == styleMutation {
		headers[constants.HeaderContentType] = constants.ContentTypeJSON

		body, err = json.Marshal(call.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
	}

	result, err := args.Transport.Do(ctx, &Request{
		Method:  route.Method,
		URL:     fullURL,
		Headers: headers,
		Body:    body,
	})
	if err != nil {
		return nil, fmt.Errorf("executing %s %s: %w", route.Method, path, err)
	}

	return result, nil
}
