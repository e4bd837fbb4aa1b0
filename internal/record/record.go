package record

import (
	"encoding/binary"
	"time"

	"github.com/pingcap/errors"
)

// Size is the encoded length of a Record in bytes.
const Size = 12

var (
	// ErrDecode is returned when a chunk is not exactly Size bytes long.
	ErrDecode = errors.New("record decode error")

	// ErrTruncated is returned when a source of known size ends before all
	// of its records have been read.
	ErrTruncated = errors.New("record stream truncated")
)

// Record is one instance-count observation.
type Record struct {
	Timestamp uint32 // epoch seconds
	Address   uint32
	MaxCount  uint32
}

// Time returns the record timestamp in loc. A nil loc means time.Local.
func (r Record) Time(loc *time.Location) time.Time {
	t := time.Unix(int64(r.Timestamp), 0)
	if loc != nil {
		t = t.In(loc)
	}
	return t
}

// Decode parses one chunk. Fields are stored big-endian in the order
// timestamp, address, max count.
func Decode(b []byte) (Record, error) {
	if len(b) != Size {
		return Record{}, errors.Annotatef(ErrDecode, "got %d bytes, want %d", len(b), Size)
	}
	return Record{
		Timestamp: binary.BigEndian.Uint32(b[0:4]),
		Address:   binary.BigEndian.Uint32(b[4:8]),
		MaxCount:  binary.BigEndian.Uint32(b[8:12]),
	}, nil
}
