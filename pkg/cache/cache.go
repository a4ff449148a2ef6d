// Package cache provides content-addressed caching of layout results and
// introspected schemas.
//
// Layout computation is deterministic, so a result can be keyed purely by
// the schema content hash plus the layout options. The CLI uses a file-based
// cache under the user cache dir; the server can point at Redis for shared
// caching across instances. The Null cache disables caching without
// branching at call sites.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mhartmann/schemap/pkg/layout"
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a value; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// =============================================================================
// Keys
// =============================================================================

// Hash computes the SHA-256 hash of data as a 64-character hex string.
func Hash(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...).
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	h := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(h[:]))
}

// SchemaKey returns the cache key for an introspected schema, keyed by its
// source identity (for example a redacted connection string or file path).
func SchemaKey(source string) string {
	return hashKey("schema", source)
}

// LayoutKey returns the cache key for a layout result. schemaHash is the
// content hash of the serialized schema; the options participate in the key
// because they change the geometry.
func LayoutKey(schemaHash string, opts layout.Options) string {
	return hashKey("layout", schemaHash, opts)
}

// =============================================================================
// Null Cache
// =============================================================================

// Null is a no-op cache: every Get misses and Set discards.
type Null struct{}

// NewNull returns a cache that stores nothing.
func NewNull() Cache { return Null{} }

func (Null) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (Null) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (Null) Delete(context.Context, string) error { return nil }

func (Null) Close() error { return nil }
