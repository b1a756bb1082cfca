package raftstorage

// LogStore is the log storage contract the consensus core reads and writes
// through. Term and Entries fail with ErrCompacted or ErrUnavailable,
// LastIndex, FirstIndex and LastEntry always succeed.
type LogStore interface {
	Term(index uint64) (uint64, error)
	// Entries returns entries in [lo, hi), at least one if any, cut once the
	// accumulated Size exceeds maxSize.
	Entries(lo, hi, maxSize uint64) ([]Entry, error)
	LastIndex() uint64
	FirstIndex() uint64
	LastEntry() (lastLogIndex, lastLogTerm uint64)
	Append(ents []Entry) error
	Compact(compactIndex uint64) error
}

var _ LogStore = (*MemoryStorage)(nil)
