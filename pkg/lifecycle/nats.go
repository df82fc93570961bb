package lifecycle

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
)

// NATSConfig configures the NATS JetStream KV store backend.
type NATSConfig struct {
	// URL is the NATS server URL, e.g. nats://localhost:4222. Ignored when
	// Conn is set.
	URL string

	// Conn reuses an existing connection instead of dialing URL.
	Conn *nats.Conn

	// Bucket is the KV bucket name. Created when it does not exist.
	Bucket string

	// Description is applied when the bucket is created.
	Description string
}

// NATSStore is a Store backed by a NATS JetStream key-value bucket, letting
// multiple processes share one query cache.
type NATSStore struct {
	kv       nats.KeyValue
	ownsConn bool
	conn     *nats.Conn
}

// NewNATSStore connects (or reuses cfg.Conn) and binds the KV bucket.
func NewNATSStore(cfg *NATSConfig) (*NATSStore, error) {
	if cfg == nil || cfg.Bucket == "" {
		return nil, ErrNATSBucketRequired
	}

	conn := cfg.Conn
	ownsConn := false

	if conn == nil {
		var err error

		conn, err = nats.Connect(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("connecting to NATS: %w", err)
		}

		ownsConn = true
	}

	js, err := conn.JetStream()
	if err != nil {
		if ownsConn {
			conn.Close()
		}

		return nil, fmt.Errorf("opening JetStream context: %w", err)
	}

	kv, err := js.KeyValue(cfg.Bucket)
	if errors.Is(err, nats.ErrBucketNotFound) {
		kv, err = js.CreateKeyValue(&nats.KeyValueConfig{
			Bucket:      cfg.Bucket,
			Description: cfg.Description,
		})
	}

	if err != nil {
		if ownsConn {
			conn.Close()
		}

		return nil, fmt.Errorf("binding KV bucket %q: %w", cfg.Bucket, err)
	}

	return &NATSStore{kv: kv, conn: conn, ownsConn: ownsConn}, nil
}

// ErrNATSBucketRequired is returned when the KV bucket name is missing.
var ErrNATSBucketRequired = errors.New("NATS bucket name is required")

// encodeKey maps arbitrary cache keys onto the NATS KV key alphabet.
func encodeKey(key string) string {
	return base64.URLEncoding.EncodeToString([]byte(key))
}

// Get retrieves an entry. Expired entries are deleted and reported as
// expired.
func (s *NATSStore) Get(ctx context.Context, key string) (*Entry, error) {
	kvEntry, err := s.kv.Get(encodeKey(key))
	if errors.Is(err, nats.ErrKeyNotFound) {
		return nil, ErrEntryNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("reading KV entry: %w", err)
	}

	var entry Entry

	if err := json.Unmarshal(kvEntry.Value(), &entry); err != nil {
		return nil, fmt.Errorf("decoding KV entry: %w", err)
	}

	if entry.Expired() {
		_ = s.kv.Delete(encodeKey(key))

		return nil, ErrEntryExpired
	}

	return &entry, nil
}

// Set stores an entry.
func (s *NATSStore) Set(ctx context.Context, key string, entry *Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding KV entry: %w", err)
	}

	if _, err := s.kv.Put(encodeKey(key), data); err != nil {
		return fmt.Errorf("writing KV entry: %w", err)
	}

	return nil
}

// Delete removes an entry.
func (s *NATSStore) Delete(ctx context.Context, key string) error {
	err := s.kv.Delete(encodeKey(key))
	if err != nil && !errors.Is(err, nats.ErrKeyNotFound) {
		return fmt.Errorf("deleting KV entry: %w", err)
	}

	return nil
}

// Clear removes all entries in the bucket.
func (s *NATSStore) Clear(ctx context.Context) error {
	keys, err := s.kv.Keys()
	if errors.Is(err, nats.ErrNoKeysFound) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("listing KV keys: %w", err)
	}

	for _, key := range keys {
		if err := s.kv.Delete(key); err != nil {
			return fmt.Errorf("deleting KV entry: %w", err)
		}
	}

	return nil
}

// Has checks whether a live entry exists for key.
func (s *NATSStore) Has(ctx context.Context, key string) bool {
	_, err := s.Get(ctx, key)

	return err == nil
}

// Close releases the NATS connection when this store owns it.
func (s *NATSStore) Close() {
	if s.ownsConn {
		s.conn.Close()
	}
}
