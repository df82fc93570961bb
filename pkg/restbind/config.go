package restbind

import (
	"time"

	"github.com/hexennacht/restbind/pkg/lifecycle"
)

// Config represents connection configuration for binding a route tree
// through the bindclient facade.
//
// # Transport and engine
//
// Transport and Engine are optional: when nil, bindclient.New wires the
// default retryable HTTP transport and an in-memory lifecycle manager. Both
// can be supplied explicitly, e.g. a TransportFunc stub in tests or an
// engine backed by a shared NATS KV store.
//
// # Retries
//
// Retry settings apply only to the default transport. The binding core
// itself never retries; retry of failed query fetches is the lifecycle
// engine's concern and is configured through Cache.
type Config struct {
	// BaseURL is the base URL every bound operation prefixes its resolved
	// path with. Required. bindclient.New normalizes it by trimming a
	// trailing slash and adding "https://" when no scheme is present.
	BaseURL string

	// BaseHeaders are merged into every request issued through the bound
	// tree.
	BaseHeaders map[string]string

	// Transport overrides the default HTTP transport.
	Transport Transport

	// Engine overrides the default lifecycle engine.
	Engine lifecycle.Engine

	// Cache configures the default lifecycle engine. Ignored when Engine is
	// set.
	Cache *lifecycle.Config

	// RetryMax is the maximum number of transport retries for transient
	// failures (>=500, 429, and connection errors). 0 disables retries.
	RetryMax int

	// RetryWaitMin is the minimum backoff between transport retries.
	RetryWaitMin time.Duration

	// RetryWaitMax is the maximum backoff between transport retries.
	RetryWaitMax time.Duration

	// Debug enables verbose request/response logging when a Logger is
	// provided.
	Debug bool

	// Logger is an optional structured logger used by the transport.
	Logger Logger

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// HTTPTimeout is the default timeout applied by the default transport.
	// Per-request deadlines should generally use context.
	HTTPTimeout time.Duration
}
