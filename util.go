package raftstorage

import (
	"bytes"
	"fmt"
	"strconv"
)

// padCenter centers s in a field of width l.
func padCenter(s string, l int) string {
	if len(s) >= l {
		return s
	}

	var result []byte = make([]byte, l)
	left := (l - len(s)) >> 1
	for i := 0; i < left; i++ {
		result[i] = ' '
	}
	for i := left + len(s); i < l; i++ {
		result[i] = ' '
	}
	copy(result[left:left+len(s)], []byte(s))
	return string(result)
}

func createBorderLine(l int) []byte {
	buf := make([]byte, l+1)
	for i := 0; i < l; i++ {
		buf[i] = '-'
	}
	buf[l] = '\n'
	return buf
}

const describeColWidth = 12

// describeEntries renders the boundary row followed by one row per entry.
func describeEntries(boundary SnapshotMetadata, ents []Entry) string {
	cols := []string{"index", "term", "type", "size"}
	width := len(cols)*(describeColWidth+1) + 1

	buffer := bytes.NewBuffer(nil)
	writeRow := func(values ...string) {
		buffer.WriteByte('|')
		for _, v := range values {
			buffer.WriteString(padCenter(v, describeColWidth))
			buffer.WriteByte('|')
		}
		buffer.WriteByte('\n')
	}

	buffer.Write(createBorderLine(width))
	writeRow(cols...)
	buffer.Write(createBorderLine(width))
	writeRow(strconv.FormatUint(boundary.Index, 10), strconv.FormatUint(boundary.Term, 10), "boundary", "-")
	for i := range ents {
		e := &ents[i]
		writeRow(strconv.FormatUint(e.Index, 10), strconv.FormatUint(e.Term, 10),
			strconv.Itoa(int(e.Type)), strconv.FormatUint(e.Size(), 10))
	}
	buffer.Write(createBorderLine(width))
	buffer.WriteString(fmt.Sprintf("entries:%d\n", len(ents)))
	return buffer.String()
}

// cloneEntry copies e with its own payload, so the store and its callers
// never share Data.
func cloneEntry(e Entry) Entry {
	e.Data = bytes.Clone(e.Data)
	return e
}

// limitSize keeps the longest prefix of ents whose accumulated Size does not
// exceed maxSize. The first entry is always kept.
func limitSize(ents []Entry, maxSize uint64) []Entry {
	if len(ents) == 0 || maxSize == NoLimit {
		return ents
	}
	var total uint64
	var i int
	for i = 0; i < len(ents); i++ {
		total += ents[i].Size()
		if i != 0 && total > maxSize {
			break
		}
	}
	return ents[:i]
}
