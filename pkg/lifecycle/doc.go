// Package lifecycle is the caching and request-deduplication engine that
// restbind query and mutation operations delegate to.
//
// The Engine interface accepts a cache key, a fetch function, and options
// for queries, and an execute function for mutations. Manager is the default
// implementation: stored results carry a TTL and a stale time, concurrent
// fetches for equal keys are coalesced into one call, failed fetches can be
// retried, and a failed refetch serves the last stale value when one exists.
//
// Storage is pluggable through the Store interface: a sharded bounded
// MemoryStore, a NATSStore backed by a JetStream KV bucket for
// cross-process sharing, a NoopStore that keeps deduplication but drops
// caching, and a StoreChain layering tiers (L1 memory in front of L2 NATS,
// for example).
//
//	manager := lifecycle.NewManager(lifecycle.WithStore(lifecycle.NewMemoryStore(500)))
//	handle, err := manager.Query(ctx, "users:42", fetchUser, lifecycle.WithTTL(time.Minute))
//	if err == nil && handle.State() == lifecycle.StateSuccess {
//	  _ = handle.Data()
//	}
//
// The engine never constructs requests and never inspects payloads; the
// binding core owns request construction and response classification.
package lifecycle
