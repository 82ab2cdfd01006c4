package engine

import (
	"sync"
	"sync/atomic"

	"github.com/mmazzocchetti/tablut/internal/board"
)

// TTFlag indicates the type of bound stored in the transposition table.
type TTFlag uint8

const (
	TTExact      TTFlag = iota // Exact score
	TTLowerBound               // Failed high (beta cutoff)
	TTUpperBound               // Failed low
)

// Number of shards for TT locking (power of 2 for fast modulo)
const ttShardCount = 256
const ttShardMask = ttShardCount - 1

// TTEntry represents an entry in the transposition table.
type TTEntry struct {
	Key      uint64     // Full 64-bit Zobrist hash for verification
	Score    int32      // Score (bounded by flag)
	BestMove board.Move // Best move found
	Depth    int8       // Search depth
	Flag     TTFlag     // Type of bound
	used     bool
}

// TranspositionTable is a hash table for storing search results, shared
// across root-parallel workers. Sharded locking keeps concurrent access
// safe; last-writer-wins races across shards are acceptable since entries
// are an optimization, not a correctness requirement.
type TranspositionTable struct {
	entries []TTEntry
	shards  [ttShardCount]sync.RWMutex
	size    uint64
	mask    uint64

	hits   atomic.Uint64
	probes atomic.Uint64
}

// NewTranspositionTable creates a transposition table with the given size in MB.
func NewTranspositionTable(sizeMB int) *TranspositionTable {
	entrySize := uint64(24)
	numEntries := (uint64(sizeMB) * 1024 * 1024) / entrySize

	// Round down to power of 2 for fast modulo
	numEntries = roundDownToPowerOf2(numEntries)

	return &TranspositionTable{
		entries: make([]TTEntry, numEntries),
		size:    numEntries,
		mask:    numEntries - 1,
	}
}

// roundDownToPowerOf2 rounds n down to the nearest power of 2.
func roundDownToPowerOf2(n uint64) uint64 {
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

// shardIndex returns the shard index for a given entry index.
func (tt *TranspositionTable) shardIndex(idx uint64) int {
	return int(idx & ttShardMask)
}

// Probe looks up a position in the transposition table.
// Returns the entry and true if found, otherwise an empty entry and false.
func (tt *TranspositionTable) Probe(hash uint64) (TTEntry, bool) {
	tt.probes.Add(1)

	idx := hash & tt.mask
	shard := tt.shardIndex(idx)

	tt.shards[shard].RLock()
	entry := tt.entries[idx]
	tt.shards[shard].RUnlock()

	// Verify the full 64-bit key matches (eliminates hash collisions)
	if entry.used && entry.Key == hash {
		tt.hits.Add(1)
		return entry, true
	}

	return TTEntry{}, false
}

// Store saves a position in the transposition table, always overwriting
// the slot. The table is cleared before each move decision, so a newer
// result is never staler than what it replaces.
func (tt *TranspositionTable) Store(hash uint64, depth int, score int, flag TTFlag, bestMove board.Move) {
	idx := hash & tt.mask
	shard := tt.shardIndex(idx)

	tt.shards[shard].Lock()
	tt.entries[idx] = TTEntry{
		Key:      hash,
		Score:    int32(score),
		BestMove: bestMove,
		Depth:    int8(depth),
		Flag:     flag,
		used:     true,
	}
	tt.shards[shard].Unlock()
}

// Clear wipes the transposition table.
func (tt *TranspositionTable) Clear() {
	for s := 0; s < ttShardCount; s++ {
		tt.shards[s].Lock()
	}
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
	for s := 0; s < ttShardCount; s++ {
		tt.shards[s].Unlock()
	}
	tt.hits.Store(0)
	tt.probes.Store(0)
}

// HitRate returns the cache hit rate as a percentage.
func (tt *TranspositionTable) HitRate() float64 {
	probes := tt.probes.Load()
	if probes == 0 {
		return 0
	}
	return float64(tt.hits.Load()) / float64(probes) * 100
}

// Size returns the number of entries in the table.
func (tt *TranspositionTable) Size() uint64 {
	return tt.size
}
