package raftstorage

import (
	"bytes"
	"fmt"
)

// SnapshotMetadata is the compaction boundary: the newest index (and its
// term) whose entries were discarded because a snapshot covers them.
type SnapshotMetadata struct {
	Index uint64 `json:"index" toml:"index"`
	Term  uint64 `json:"term" toml:"term"`
}

// HardState is the raft state that must survive a restart.
type HardState struct {
	Term   uint64 `json:"term"`
	Vote   string `json:"vote"`
	Commit uint64 `json:"commit"`
}

func (st HardState) IsEmpty() bool {
	return st == HardState{}
}

func (st HardState) String() string {
	buffer := bytes.NewBuffer(nil)
	buffer.WriteString(fmt.Sprintf("Term  :%d\n", st.Term))
	buffer.WriteString(fmt.Sprintf("Vote  :%s\n", st.Vote))
	buffer.WriteString(fmt.Sprintf("Commit:%d\n", st.Commit))
	return buffer.String()
}
