package dump

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/pingcap/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minuteman3/icdump/internal/record"
)

func TestFormatRecord(t *testing.T) {
	tests := []struct {
		name     string
		rec      record.Record
		expected string
	}{
		{
			name:     "Typical record",
			rec:      record.Record{Timestamp: 1234567890, Address: 0xdeadbeef, MaxCount: 42},
			expected: "Fri Feb 13 23:31:30 2009 0xdeadbeef 42",
		},
		{
			name:     "Single digit day is space padded",
			rec:      record.Record{Timestamp: 1230768000, Address: 0x1000, MaxCount: 1},
			expected: "Thu Jan  1 00:00:00 2009 0x1000 1",
		},
		{
			name:     "Zero values",
			rec:      record.Record{},
			expected: "Thu Jan  1 00:00:00 1970 0x0 0",
		},
		{
			name:     "Maximum values",
			rec:      record.Record{Timestamp: 0xffffffff, Address: 0xffffffff, MaxCount: 0xffffffff},
			expected: "Sun Feb  7 06:28:15 2106 0xffffffff 4294967295",
		},
		{
			name:     "No padding on short addresses",
			rec:      record.Record{Timestamp: 1234567890, Address: 0xa, MaxCount: 1000000},
			expected: "Fri Feb 13 23:31:30 2009 0xa 1000000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatRecord(tt.rec, time.UTC))
		})
	}
}

func TestFormatRecordLocation(t *testing.T) {
	rec := record.Record{Timestamp: 1234567890, Address: 0xbeef, MaxCount: 3}

	tokyo := time.FixedZone("JST", 9*60*60)
	assert.Equal(t, "Sat Feb 14 08:31:30 2009 0xbeef 3", FormatRecord(rec, tokyo))

	local := time.Unix(1234567890, 0).Format(time.ANSIC)
	assert.Equal(t, local+" 0xbeef 3", FormatRecord(rec, nil))
}

func TestNewFormatter(t *testing.T) {
	f, err := NewFormatter("text", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, TextFormatter{Location: time.UTC}, f)

	f, err = NewFormatter("", time.UTC)
	require.NoError(t, err)
	assert.IsType(t, TextFormatter{}, f)

	f, err = NewFormatter("JSON", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, JSONFormatter{Location: time.UTC}, f)

	_, err = NewFormatter("xml", time.UTC)
	assert.Equal(t, ErrUnknownFormat, errors.Cause(err))
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := JSONFormatter{Location: time.UTC}

	require.NoError(t, f.WriteSize(&buf, 24))
	require.NoError(t, f.WriteRecord(&buf, record.Record{Timestamp: 1234567890, Address: 0xdeadbeef, MaxCount: 42}))
	require.NoError(t, f.WriteRecord(&buf, record.Record{Timestamp: 0, Address: 0, MaxCount: 7}))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)

	var size jsonSize
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &size))
	assert.Equal(t, int64(24), size.Size)

	var rec jsonRecord
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &rec))
	assert.Equal(t, jsonRecord{
		Time:      "2009-02-13T23:31:30Z",
		Timestamp: 1234567890,
		Address:   "0xdeadbeef",
		MaxCount:  42,
	}, rec)

	assert.JSONEq(t, `{"time":"1970-01-01T00:00:00Z","timestamp":0,"address":"0x0","max_count":7}`, lines[2])
}
