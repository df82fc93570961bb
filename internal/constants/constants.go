package constants

import "time"

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits applied by the default transport when retries are enabled.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Response classification bounds.
const (
	// StatusSuccessMin is the lowest status code classified as a success.
	StatusSuccessMin = 200

	// StatusSuccessMax is the highest status code classified as a success.
	StatusSuccessMax = 299
)

// Cache lifecycle defaults.
const (
	// DefaultCacheSize is the default maximum number of entries held by the
	// in-memory store.
	DefaultCacheSize = 1000

	// DefaultTTL is the default lifetime of a cached query result.
	DefaultTTL = 5 * time.Minute

	// DefaultStaleTime is how long a cached result is considered fresh
	// before a refetch is allowed.
	DefaultStaleTime = 30 * time.Second
)

// Header names and values.
const (
	// HeaderContentType is the Content-Type header name.
	HeaderContentType = "Content-Type"

	// HeaderAccept is the Accept header name.
	HeaderAccept = "Accept"

	// HeaderUserAgent is the User-Agent header name.
	HeaderUserAgent = "User-Agent"

	// ContentTypeJSON is the JSON media type sent with mutation bodies.
	ContentTypeJSON = "application/json"

	// DefaultUserAgent identifies the default transport.
	DefaultUserAgent = "restbind/1.0"
)
