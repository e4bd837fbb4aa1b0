// Package source opens instance-count log files and optionally decompresses
// them before records are read.
package source

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/pingcap/errors"
	"go.uber.org/multierr"
)

// Compression names a stream codec applied to the file contents.
type Compression string

const (
	None   Compression = "none"
	Auto   Compression = "auto"
	Gzip   Compression = "gzip"
	Zstd   Compression = "zstd"
	LZ4    Compression = "lz4"
	Snappy Compression = "snappy"
)

var (
	// ErrNotRegular is returned when a path exists but is not a regular file.
	ErrNotRegular = errors.New("not a regular file")

	// ErrUnknownCompression is returned for an unsupported codec name.
	ErrUnknownCompression = errors.New("unknown compression")
)

var magics = []struct {
	c     Compression
	magic []byte
}{
	{Gzip, []byte{0x1f, 0x8b}},
	{Zstd, []byte{0x28, 0xb5, 0x2f, 0xfd}},
	{LZ4, []byte{0x04, 0x22, 0x4d, 0x18}},
	{Snappy, []byte("\xff\x06\x00\x00sNaPpY")},
}

// sniffLen is the longest magic above.
const sniffLen = 10

// ParseCompression maps a codec name, case-insensitively, to a Compression.
// The empty string means None.
func ParseCompression(s string) (Compression, error) {
	c := Compression(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case "":
		return None, nil
	case None, Auto, Gzip, Zstd, LZ4, Snappy:
		return c, nil
	}
	return "", errors.Annotatef(ErrUnknownCompression, "%q", s)
}

// Stat checks that path names an existing regular file.
func Stat(path string) (os.FileInfo, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if !fi.Mode().IsRegular() {
		return nil, errors.Annotatef(ErrNotRegular, "%s (%s)", path, fi.Mode().Type())
	}
	return fi, nil
}

// File is an opened log. Reads return decompressed bytes.
type File struct {
	Path string

	// Size is the length of the file on disk.
	Size int64

	// Compression is the codec in use. It is never Auto.
	Compression Compression

	f      *os.File
	r      io.Reader
	closer io.Closer
}

// Open opens path and sets up the codec c. With Auto the codec is chosen
// from the leading magic bytes and falls back to None.
func Open(path string, c Compression) (*File, error) {
	fi, err := Stat(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}

	file := &File{Path: path, Size: fi.Size(), Compression: c, f: f, r: f}
	if c == Auto {
		br := bufio.NewReader(f)
		file.r = br
		file.Compression = detect(br)
	}
	if err := file.wrap(); err != nil {
		return nil, multierr.Append(err, f.Close())
	}
	return file, nil
}

func detect(br *bufio.Reader) Compression {
	// Peek reports an error for files shorter than sniffLen but still
	// returns what it has.
	head, _ := br.Peek(sniffLen)
	for _, m := range magics {
		if bytes.HasPrefix(head, m.magic) {
			return m.c
		}
	}
	return None
}

func (f *File) wrap() error {
	switch f.Compression {
	case None:
	case Gzip:
		zr, err := gzip.NewReader(f.r)
		if err != nil {
			return errors.Annotatef(err, "gzip header of %s", f.Path)
		}
		f.r, f.closer = zr, zr
	case Zstd:
		zr, err := zstd.NewReader(f.r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return errors.Annotatef(err, "zstd decoder for %s", f.Path)
		}
		rc := zr.IOReadCloser()
		f.r, f.closer = rc, rc
	case LZ4:
		f.r = lz4.NewReader(f.r)
	case Snappy:
		f.r = snappy.NewReader(f.r)
	default:
		return errors.Annotatef(ErrUnknownCompression, "%q", string(f.Compression))
	}
	return nil
}

func (f *File) Read(p []byte) (int, error) {
	return f.r.Read(p)
}

// StreamSize is the number of bytes Read will deliver, or -1 when the file
// is compressed and the decoded length is not known up front.
func (f *File) StreamSize() int64 {
	if f.Compression == None {
		return f.Size
	}
	return -1
}

// Close releases the codec and the underlying file.
func (f *File) Close() error {
	var err error
	if f.closer != nil {
		err = f.closer.Close()
	}
	return multierr.Append(err, f.f.Close())
}
