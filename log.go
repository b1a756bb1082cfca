package raftstorage

import (
	"fmt"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

type EntryType uint16

const (
	EntryNoop          EntryType = 0
	EntryCommand       EntryType = 1
	EntryClusterConfig EntryType = 2
)

// wire field numbers of an encoded entry
const (
	fieldTerm  protowire.Number = 1
	fieldIndex protowire.Number = 2
	fieldType  protowire.Number = 3
	fieldData  protowire.Number = 4
)

type Entry struct {
	Type  EntryType `json:"type"`
	Index uint64    `json:"index"`
	Term  uint64    `json:"term"`
	Data  []byte    `json:"data"`
}

func (e *Entry) String() string {
	return fmt.Sprintf("(index=%d, term=%d, type=%d, data=%q)", e.Index, e.Term, e.Type, e.Data)
}

// Size returns the length of the wire encoding of the entry. It is the unit
// the maxSize budget of Entries is measured in.
func (e *Entry) Size() uint64 {
	n := protowire.SizeTag(fieldTerm) + protowire.SizeVarint(e.Term)
	n += protowire.SizeTag(fieldIndex) + protowire.SizeVarint(e.Index)
	n += protowire.SizeTag(fieldType) + protowire.SizeVarint(uint64(e.Type))
	if e.Data != nil {
		n += protowire.SizeTag(fieldData) + protowire.SizeBytes(len(e.Data))
	}
	return uint64(n)
}

func (e *Entry) Marshal() []byte {
	buf := make([]byte, 0, e.Size())
	buf = protowire.AppendTag(buf, fieldTerm, protowire.VarintType)
	buf = protowire.AppendVarint(buf, e.Term)
	buf = protowire.AppendTag(buf, fieldIndex, protowire.VarintType)
	buf = protowire.AppendVarint(buf, e.Index)
	buf = protowire.AppendTag(buf, fieldType, protowire.VarintType)
	buf = protowire.AppendVarint(buf, uint64(e.Type))
	if e.Data != nil {
		buf = protowire.AppendTag(buf, fieldData, protowire.BytesType)
		buf = protowire.AppendBytes(buf, e.Data)
	}
	return buf
}

var ErrDecodeEntry = errors.New("decode entry failed")

func (e *Entry) Unmarshal(buf []byte) error {
	*e = Entry{}
	for len(buf) > 0 {
		num, typ, n := protowire.ConsumeTag(buf)
		if n < 0 {
			return errors.WithMessage(ErrDecodeEntry, protowire.ParseError(n).Error())
		}
		buf = buf[n:]

		switch {
		case num == fieldData && typ == protowire.BytesType:
			v, m := protowire.ConsumeBytes(buf)
			if m < 0 {
				return errors.WithMessage(ErrDecodeEntry, protowire.ParseError(m).Error())
			}
			e.Data = append(make([]byte, 0, len(v)), v...)
			n = m
		case (num == fieldTerm || num == fieldIndex || num == fieldType) && typ == protowire.VarintType:
			v, m := protowire.ConsumeVarint(buf)
			if m < 0 {
				return errors.WithMessage(ErrDecodeEntry, protowire.ParseError(m).Error())
			}
			switch num {
			case fieldTerm:
				e.Term = v
			case fieldIndex:
				e.Index = v
			default:
				e.Type = EntryType(v)
			}
			n = m
		default:
			// unknown field, skip it
			n = protowire.ConsumeFieldValue(num, typ, buf)
			if n < 0 {
				return errors.WithMessage(ErrDecodeEntry, protowire.ParseError(n).Error())
			}
		}
		buf = buf[n:]
	}
	return nil
}
