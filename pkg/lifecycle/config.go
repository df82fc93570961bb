package lifecycle

import (
	"errors"
	"fmt"

	"github.com/hexennacht/restbind/internal/constants"
)

// StoreType identifies a store backend.
type StoreType string

const (
	// StoreTypeMemory is the bounded in-memory store.
	StoreTypeMemory StoreType = "memory"

	// StoreTypeNATS is the NATS JetStream KV store.
	StoreTypeNATS StoreType = "nats"

	// StoreTypeNone disables storage, keeping deduplication only.
	StoreTypeNone StoreType = "none"
)

// Static errors for err113 compliance.
var (
	ErrNATSConfigRequired = errors.New("NATS configuration required for NATS store")
	ErrUnsupportedStore   = errors.New("unsupported store type")
)

// Config configures the default lifecycle engine.
type Config struct {
	// Store selects the backend type.
	Store StoreType

	// MemorySize bounds the memory store entry count. 0 applies the
	// default.
	MemorySize int

	// NATS configures the NATS KV backend. Required for StoreTypeNATS.
	NATS *NATSConfig

	// Defaults overrides the engine-wide entry options.
	Defaults *EntryOptions
}

// DefaultConfig returns the default engine configuration: a bounded memory
// store with package defaults.
func DefaultConfig() *Config {
	return &Config{
		Store:      StoreTypeMemory,
		MemorySize: constants.DefaultCacheSize,
	}
}

// NewStoreFromConfig creates a store backend from configuration.
func NewStoreFromConfig(cfg *Config) (Store, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	switch cfg.Store {
	case StoreTypeMemory, "":
		return NewMemoryStore(cfg.MemorySize), nil

	case StoreTypeNATS:
		if cfg.NATS == nil {
			return nil, ErrNATSConfigRequired
		}

		return NewNATSStore(cfg.NATS)

	case StoreTypeNone:
		return NewNoopStore(), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedStore, cfg.Store)
	}
}

// NewManagerFromConfig creates the default engine from configuration.
func NewManagerFromConfig(cfg *Config) (*Manager, error) {
	store, err := NewStoreFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	opts := []ManagerOption{WithStore(store)}

	if cfg != nil && cfg.Defaults != nil {
		opts = append(opts, WithDefaults(*cfg.Defaults))
	}

	return NewManager(opts...), nil
}
