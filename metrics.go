package raftstorage

import "sync/atomic"

type storageMetrics struct {
	appendedEntries  uint64
	truncatedEntries uint64
	compactedEntries uint64

	compactedHits   uint64
	unavailableHits uint64
}

// StorageMetrics is a point-in-time copy of the counters of one store.
type StorageMetrics struct {
	AppendedEntries  uint64 // entries written by Append
	TruncatedEntries uint64 // conflicting entries replaced by Append
	CompactedEntries uint64 // entries dropped by Compact and ApplySnapshot
	CompactedHits    uint64 // reads answered with ErrCompacted
	UnavailableHits  uint64 // reads answered with ErrUnavailable
}

func (m *storageMetrics) IncrAppended(n uint64) {
	atomic.AddUint64(&m.appendedEntries, n)
}

func (m *storageMetrics) IncrTruncated(n uint64) {
	atomic.AddUint64(&m.truncatedEntries, n)
}

func (m *storageMetrics) IncrCompacted(n uint64) {
	atomic.AddUint64(&m.compactedEntries, n)
}

func (m *storageMetrics) IncrCompactedHits() {
	atomic.AddUint64(&m.compactedHits, 1)
}

func (m *storageMetrics) IncrUnavailableHits() {
	atomic.AddUint64(&m.unavailableHits, 1)
}

func (m *storageMetrics) snapshot() StorageMetrics {
	return StorageMetrics{
		AppendedEntries:  atomic.LoadUint64(&m.appendedEntries),
		TruncatedEntries: atomic.LoadUint64(&m.truncatedEntries),
		CompactedEntries: atomic.LoadUint64(&m.compactedEntries),
		CompactedHits:    atomic.LoadUint64(&m.compactedHits),
		UnavailableHits:  atomic.LoadUint64(&m.unavailableHits),
	}
}
