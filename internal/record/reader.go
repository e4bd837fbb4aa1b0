package record

import (
	"io"

	"github.com/pingcap/errors"
)

// maxConsecutiveEmptyReads matches the limit bufio uses before giving up
// with io.ErrNoProgress.
const maxConsecutiveEmptyReads = 100

// Reader yields Size byte chunks from an underlying source, one per record.
//
// When the total size of the source is known, Reader reads exactly size/Size
// chunks and never touches the trailing bytes. When it is unknown (size < 0)
// Reader reads until EOF and treats a final partial chunk as trailing bytes.
type Reader struct {
	r        io.Reader
	size     int64
	remain   int64
	buf      [Size]byte
	count    int
	trailing int
	err      error
}

// NewReader returns a Reader over r. size is the total number of bytes r
// will deliver, or a negative value if that is not known in advance.
func NewReader(r io.Reader, size int64) *Reader {
	rd := &Reader{r: r, size: size}
	if size >= 0 {
		rd.remain = size / Size
		rd.trailing = int(size % Size)
	}
	return rd
}

// Next returns the next chunk. The returned slice is only valid until the
// following call to Next. At the end of the records Next returns io.EOF;
// any other error is sticky.
func (rd *Reader) Next() ([]byte, error) {
	if rd.err != nil {
		return nil, rd.err
	}
	if rd.size >= 0 && rd.remain == 0 {
		rd.err = io.EOF
		return nil, rd.err
	}

	n, err := fill(rd.r, rd.buf[:])
	switch {
	case err == nil:
		rd.count++
		if rd.size >= 0 {
			rd.remain--
		}
		return rd.buf[:], nil
	case err == io.EOF && rd.size < 0:
		rd.trailing = n
		rd.err = io.EOF
	case err == io.EOF:
		rd.err = errors.Annotatef(ErrTruncated, "record %d: got %d of %d bytes, %d records missing",
			rd.count, n, Size, rd.remain)
	default:
		rd.err = errors.Annotatef(err, "reading record %d", rd.count)
	}
	return nil, rd.err
}

// Record reads and decodes the next record.
func (rd *Reader) Record() (Record, error) {
	b, err := rd.Next()
	if err != nil {
		return Record{}, err
	}
	return Decode(b)
}

// Count reports how many chunks have been returned so far.
func (rd *Reader) Count() int {
	return rd.count
}

// Trailing reports the number of bytes after the last full record that were
// ignored. It is only final once Next has returned io.EOF.
func (rd *Reader) Trailing() int {
	return rd.trailing
}

// fill reads into p until it is full. Short reads are accumulated; a source
// that keeps returning nothing without an error fails with io.ErrNoProgress.
func fill(r io.Reader, p []byte) (int, error) {
	n, empty := 0, 0
	for n < len(p) {
		m, err := r.Read(p[n:])
		n += m
		if n == len(p) {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		if m > 0 {
			empty = 0
			continue
		}
		empty++
		if empty >= maxConsecutiveEmptyReads {
			return n, io.ErrNoProgress
		}
	}
	return n, nil
}
