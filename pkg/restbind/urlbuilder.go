package restbind

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// BuildURL assembles the complete request URL from the base URL, a resolved
// path, and flat query values. Every key and value is escaped individually;
// values serialize via stringification with no special casing of slices or
// nested maps. The "?" separator is appended only when the serialized query
// is non-empty. Keys are emitted in sorted order so equal logical queries
// produce equal URLs.
func BuildURL(query map[string]any, baseURL, path string) string {
	if len(query) == 0 {
		return baseURL + path
	}

	keys := make([]string, 0, len(query))
	for key := range query {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, url.QueryEscape(key)+"="+url.QueryEscape(fmt.Sprint(query[key])))
	}

	return baseURL + path + "?" + strings.Join(pairs, "&")
}
