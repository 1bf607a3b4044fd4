package view

import "github.com/cespare/xxhash/v2"

// mapShardCount is a fixed power of two, kept for a cheap modulo via
// bitmask.
const mapShardCount = 32

// shardedMap is a TagKey-keyed map split across mapShardCount buckets by
// an xxhash of the key. It holds no lock of its own: Data performs no
// internal locking, so sharding here only buys Go's map implementation
// smaller, more cache-friendly buckets on a hot row set, not
// concurrency safety — callers remain responsible for serializing
// access exactly as they do for the unsharded fields.
type shardedMap[V any] struct {
	shards [mapShardCount]map[TagKey]V
}

func newShardedMap[V any]() *shardedMap[V] {
	m := &shardedMap[V]{}
	for i := range m.shards {
		m.shards[i] = make(map[TagKey]V)
	}

	return m
}

func (m *shardedMap[V]) shardFor(key TagKey) map[TagKey]V {
	h := xxhash.Sum64String(string(key))

	return m.shards[h&(mapShardCount-1)]
}

// Get returns the value stored under key and whether it was present.
func (m *shardedMap[V]) Get(key TagKey) (V, bool) {
	v, ok := m.shardFor(key)[key]

	return v, ok
}

// Set stores v under key, overwriting any existing value.
func (m *shardedMap[V]) Set(key TagKey, v V) {
	m.shardFor(key)[key] = v
}

// Len returns the total number of keys across all shards.
func (m *shardedMap[V]) Len() int {
	n := 0
	for _, shard := range m.shards {
		n += len(shard)
	}

	return n
}

// Snapshot returns a single flattened copy of every key/value pair, for
// callers (the exported accessors) that need a plain map view.
func (m *shardedMap[V]) Snapshot() map[TagKey]V {
	out := make(map[TagKey]V, m.Len())

	for _, shard := range m.shards {
		for k, v := range shard {
			out[k] = v
		}
	}

	return out
}
