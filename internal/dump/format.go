package dump

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/pingcap/errors"

	"github.com/minuteman3/icdump/internal/record"
)

// ErrUnknownFormat is returned by NewFormatter for an unsupported name.
var ErrUnknownFormat = errors.New("unknown output format")

// Formatter writes the dump header and records.
type Formatter interface {
	WriteSize(w io.Writer, size int64) error
	WriteRecord(w io.Writer, rec record.Record) error
}

// NewFormatter returns the formatter called name ("text" or "json")
// rendering times in loc.
func NewFormatter(name string, loc *time.Location) (Formatter, error) {
	switch strings.ToLower(name) {
	case "", "text":
		return TextFormatter{Location: loc}, nil
	case "json":
		return JSONFormatter{Location: loc}, nil
	}
	return nil, errors.Annotatef(ErrUnknownFormat, "%q", name)
}

// FormatRecord renders rec as "<ctime> 0x<hex address> <max count>".
func FormatRecord(rec record.Record, loc *time.Location) string {
	var sb strings.Builder
	sb.WriteString(rec.Time(loc).Format(time.ANSIC))
	sb.WriteString(" 0x")
	sb.WriteString(strconv.FormatUint(uint64(rec.Address), 16))
	sb.WriteByte(' ')
	sb.WriteString(strconv.FormatUint(uint64(rec.MaxCount), 10))
	return sb.String()
}

// TextFormatter writes one FormatRecord line per record.
type TextFormatter struct {
	Location *time.Location
}

func (f TextFormatter) WriteSize(w io.Writer, size int64) error {
	_, err := io.WriteString(w, strconv.FormatInt(size, 10)+"\n")
	return errors.Trace(err)
}

func (f TextFormatter) WriteRecord(w io.Writer, rec record.Record) error {
	_, err := io.WriteString(w, FormatRecord(rec, f.Location)+"\n")
	return errors.Trace(err)
}

// JSONFormatter writes one JSON object per line.
type JSONFormatter struct {
	Location *time.Location
}

type jsonSize struct {
	Size int64 `json:"size"`
}

type jsonRecord struct {
	Time      string `json:"time"`
	Timestamp uint32 `json:"timestamp"`
	Address   string `json:"address"`
	MaxCount  uint32 `json:"max_count"`
}

func (f JSONFormatter) WriteSize(w io.Writer, size int64) error {
	return writeJSONLine(w, jsonSize{Size: size})
}

func (f JSONFormatter) WriteRecord(w io.Writer, rec record.Record) error {
	return writeJSONLine(w, jsonRecord{
		Time:      rec.Time(f.Location).Format(time.RFC3339),
		Timestamp: rec.Timestamp,
		Address:   "0x" + strconv.FormatUint(uint64(rec.Address), 16),
		MaxCount:  rec.MaxCount,
	})
}

func writeJSONLine(w io.Writer, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return errors.Trace(err)
	}
	_, err = w.Write(append(b, '\n'))
	return errors.Trace(err)
}
