package raftstorage

import (
	"math"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// NoLimit disables the size budget of Entries.
const NoLimit uint64 = math.MaxUint64

// MemoryStorage keeps the log in memory. ents[i].Index == snapshot.Index+1+i,
// snapshot is the compaction boundary and is the only source of the first
// index.
type MemoryStorage struct {
	lock      sync.RWMutex
	config    *Config
	logger    zerolog.Logger
	hardState HardState
	snapshot  SnapshotMetadata
	ents      []Entry
	metrics   storageMetrics
}

func NewMemoryStorage(config *Config) *MemoryStorage {
	if config == nil {
		config = DefaultConfig()
	}
	return &MemoryStorage{
		config: config,
		logger: config.newLogger(),
		ents:   make([]Entry, 0, config.InitialCapacity),
	}
}

// NewMemoryStorageFrom creates a store restored at boundary and holding ents,
// which must start at boundary.Index+1 and be contiguous.
func NewMemoryStorageFrom(config *Config, boundary SnapshotMetadata, ents []Entry) (*MemoryStorage, error) {
	for i := range ents {
		if ents[i].Index != boundary.Index+1+uint64(i) {
			return nil, errors.WithMessagef(ErrInvalidEntries, "entry %d has index %d, expected %d",
				i, ents[i].Index, boundary.Index+1+uint64(i))
		}
	}
	store := NewMemoryStorage(config)
	store.snapshot = boundary
	for i := range ents {
		store.ents = append(store.ents, cloneEntry(ents[i]))
	}
	return store, nil
}

func (store *MemoryStorage) firstIndex() uint64 {
	return store.snapshot.Index + 1
}

func (store *MemoryStorage) lastIndex() uint64 {
	return store.snapshot.Index + uint64(len(store.ents))
}

func (store *MemoryStorage) term(index uint64) (uint64, error) {
	if index < store.snapshot.Index {
		store.metrics.IncrCompactedHits()
		return 0, errors.WithMessagef(ErrCompacted, "term of index %d, boundary %d", index, store.snapshot.Index)
	}
	if index == store.snapshot.Index {
		return store.snapshot.Term, nil
	}
	if index > store.lastIndex() {
		store.metrics.IncrUnavailableHits()
		return 0, errors.WithMessagef(ErrUnavailable, "term of index %d, last index %d", index, store.lastIndex())
	}
	return store.ents[index-store.firstIndex()].Term, nil
}

func (store *MemoryStorage) Term(index uint64) (uint64, error) {
	store.lock.RLock()
	defer store.lock.RUnlock()
	return store.term(index)
}

func (store *MemoryStorage) Entries(lo, hi, maxSize uint64) ([]Entry, error) {
	store.lock.RLock()
	defer store.lock.RUnlock()

	if lo <= store.snapshot.Index {
		store.metrics.IncrCompactedHits()
		return nil, errors.WithMessagef(ErrCompacted, "entries from %d, boundary %d", lo, store.snapshot.Index)
	}
	if hi > store.lastIndex()+1 {
		store.metrics.IncrUnavailableHits()
		return nil, errors.WithMessagef(ErrUnavailable, "entries up to %d, last index %d", hi, store.lastIndex())
	}
	if lo > hi {
		store.logger.Panic().Msgf("invalid entries range [%d, %d)", lo, hi)
	}

	offset := store.firstIndex()
	ents := limitSize(store.ents[lo-offset:hi-offset], maxSize)
	result := make([]Entry, len(ents))
	for i := range ents {
		result[i] = cloneEntry(ents[i])
	}
	return result, nil
}

func (store *MemoryStorage) LastIndex() uint64 {
	store.lock.RLock()
	defer store.lock.RUnlock()
	return store.lastIndex()
}

func (store *MemoryStorage) FirstIndex() uint64 {
	store.lock.RLock()
	defer store.lock.RUnlock()
	return store.firstIndex()
}

func (store *MemoryStorage) LastEntry() (lastLogIndex, lastLogTerm uint64) {
	store.lock.RLock()
	defer store.lock.RUnlock()
	if len(store.ents) == 0 {
		return store.snapshot.Index, store.snapshot.Term
	}
	last := &store.ents[len(store.ents)-1]
	return last.Index, last.Term
}

// Append writes a copy of ents, which must be contiguous. Entries already stored at or
// after ents[0].Index are replaced, positions at or before the compaction
// boundary are dropped from ents.
func (store *MemoryStorage) Append(ents []Entry) error {
	if len(ents) == 0 {
		return nil
	}
	for i := 1; i < len(ents); i++ {
		if ents[i].Index != ents[i-1].Index+1 {
			store.logger.Panic().Msgf("append non-contiguous entries: index %d follows %d", ents[i].Index, ents[i-1].Index)
		}
	}

	store.lock.Lock()
	defer store.lock.Unlock()

	boundary := store.snapshot.Index
	if ents[len(ents)-1].Index <= boundary {
		store.logger.Debug().Uint64("last", ents[len(ents)-1].Index).Uint64("boundary", boundary).
			Msg("drop append batch, already compacted")
		return nil
	}
	if ents[0].Index <= boundary {
		store.logger.Debug().Uint64("first", ents[0].Index).Uint64("boundary", boundary).
			Msg("clip append batch at compaction boundary")
		ents = ents[boundary+1-ents[0].Index:]
	}

	first := ents[0].Index
	if first > store.lastIndex()+1 {
		store.logger.Panic().Msgf("missing log entries [last: %d, append at: %d]", store.lastIndex(), first)
	}

	offset := first - store.firstIndex()
	if truncated := uint64(len(store.ents)) - offset; truncated > 0 {
		store.logger.Debug().Uint64("from", first).Uint64("count", truncated).Msg("truncate conflicting entries")
		store.metrics.IncrTruncated(truncated)
	}
	store.ents = store.ents[:offset]
	for i := range ents {
		store.ents = append(store.ents, cloneEntry(ents[i]))
	}
	store.metrics.IncrAppended(uint64(len(ents)))
	return nil
}

// Compact discards the entries up to and including compactIndex, which
// becomes the new boundary. The caller must not compact past the applied
// index.
func (store *MemoryStorage) Compact(compactIndex uint64) error {
	store.lock.Lock()
	defer store.lock.Unlock()

	if compactIndex <= store.snapshot.Index {
		return errors.WithMessagef(ErrCompacted, "compact %d, boundary %d", compactIndex, store.snapshot.Index)
	}
	if compactIndex > store.lastIndex() {
		store.logger.Panic().Msgf("compact %d is out of bound lastindex(%d)", compactIndex, store.lastIndex())
	}

	i := compactIndex - store.firstIndex()
	store.snapshot = SnapshotMetadata{Index: compactIndex, Term: store.ents[i].Term}

	// copy the kept suffix so the compacted prefix can be collected
	ents := make([]Entry, len(store.ents)-int(i)-1, max(cap(store.ents)-int(i)-1, store.config.InitialCapacity))
	copy(ents, store.ents[i+1:])
	store.ents = ents

	store.metrics.IncrCompacted(i + 1)
	store.logger.Debug().Uint64("index", compactIndex).Uint64("term", store.snapshot.Term).
		Int("remaining", len(store.ents)).Msg("compacted log")
	return nil
}

// ApplySnapshot resets the log to the boundary of a snapshot received from
// the leader. All stored entries are dropped.
func (store *MemoryStorage) ApplySnapshot(meta SnapshotMetadata) error {
	store.lock.Lock()
	defer store.lock.Unlock()

	if meta.Index <= store.snapshot.Index {
		return errors.WithMessagef(ErrSnapOutOfDate, "snapshot %d, boundary %d", meta.Index, store.snapshot.Index)
	}

	store.metrics.IncrCompacted(uint64(len(store.ents)))
	store.snapshot = meta
	store.ents = make([]Entry, 0, store.config.InitialCapacity)
	store.logger.Debug().Uint64("index", meta.Index).Uint64("term", meta.Term).Msg("applied snapshot")
	return nil
}

func (store *MemoryStorage) Snapshot() SnapshotMetadata {
	store.lock.RLock()
	defer store.lock.RUnlock()
	return store.snapshot
}

func (store *MemoryStorage) InitialState() (HardState, SnapshotMetadata) {
	store.lock.RLock()
	defer store.lock.RUnlock()
	return store.hardState, store.snapshot
}

func (store *MemoryStorage) SetHardState(st HardState) {
	store.lock.Lock()
	store.hardState = st
	store.lock.Unlock()
}

func (store *MemoryStorage) Metrics() StorageMetrics {
	return store.metrics.snapshot()
}

func (store *MemoryStorage) Describe() string {
	store.lock.RLock()
	defer store.lock.RUnlock()
	return describeEntries(store.snapshot, store.ents)
}
