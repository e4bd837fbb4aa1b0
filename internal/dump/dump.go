package dump

import (
	"bufio"
	"io"
	"time"

	"github.com/pingcap/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/minuteman3/icdump/internal/record"
	"github.com/minuteman3/icdump/internal/source"
)

// Stats summarises a finished dump.
type Stats struct {
	Size     int64
	Records  int
	Trailing int
}

// Dumper prints logs with Formatter. The zero value prints text in local
// time and does not log.
type Dumper struct {
	Formatter Formatter
	Logger    *zap.Logger
}

// DumpFile opens path with codec c and writes its dump to w. The size line
// is the size of the file on disk.
func (d *Dumper) DumpFile(w io.Writer, path string, c source.Compression) (stats Stats, err error) {
	f, err := source.Open(path, c)
	if err != nil {
		return stats, err
	}
	defer func() {
		err = multierr.Append(err, errors.Annotatef(f.Close(), "closing %s", path))
	}()

	d.logger().Debug("opened log",
		zap.String("path", path),
		zap.Int64("size", f.Size),
		zap.String("compression", string(f.Compression)))

	return d.dump(w, f, f.Size, f.StreamSize())
}

// Dump writes the dump of r, which holds exactly size bytes of raw records.
func (d *Dumper) Dump(w io.Writer, r io.Reader, size int64) (Stats, error) {
	return d.dump(w, r, size, size)
}

func (d *Dumper) dump(w io.Writer, r io.Reader, size, streamSize int64) (stats Stats, err error) {
	stats.Size = size
	fm := d.formatter()
	bw := bufio.NewWriter(w)
	defer func() {
		err = multierr.Append(err, errors.Trace(bw.Flush()))
	}()

	if err := fm.WriteSize(bw, size); err != nil {
		return stats, err
	}

	rd := record.NewReader(r, streamSize)
	for {
		rec, err := rd.Record()
		if err == io.EOF {
			break
		}
		if err != nil {
			return stats, err
		}
		if err := fm.WriteRecord(bw, rec); err != nil {
			return stats, err
		}
		stats.Records++
	}

	stats.Trailing = rd.Trailing()
	d.logger().Debug("dump finished",
		zap.Int("records", stats.Records),
		zap.Int("trailing_bytes", stats.Trailing))
	return stats, nil
}

func (d *Dumper) formatter() Formatter {
	if d.Formatter == nil {
		return TextFormatter{Location: time.Local}
	}
	return d.Formatter
}

func (d *Dumper) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}
