// Package stream implements the seekable little-endian binary source used by
// the genie resource decoders.
//
// A Reader remembers the first error it encounters. After that, every read
// returns the zero value and Err reports the error, so decoders can read a
// run of header fields and check for failure once.
package stream

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"badc0de.net/pkg/go-genie/fault"
)

// Reader decodes fixed-width little-endian values from an io.ReadSeeker.
type Reader struct {
	r    io.ReadSeeker
	tmp  [4]byte
	pos  int64
	size int64
	err  error
}

// NewReader wraps r. The total size of r is determined by seeking to its end,
// after which r is put back to where it was.
func NewReader(r io.ReadSeeker) (*Reader, error) {
	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, errors.Wrapf(fault.ErrIO, "could not query stream position: %v", err)
	}
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, errors.Wrapf(fault.ErrIO, "could not query stream size: %v", err)
	}
	if _, err := r.Seek(pos, io.SeekStart); err != nil {
		return nil, errors.Wrapf(fault.ErrIO, "could not rewind stream: %v", err)
	}
	return &Reader{r: r, pos: pos, size: size}, nil
}

// Err returns the error which stopped reading, or nil.
func (r *Reader) Err() error {
	return r.err
}

// SetError stops reading from the stream with the passed error, unless an
// error was already recorded.
func (r *Reader) SetError(err error) {
	if r.err == nil {
		r.err = err
	}
}

// Tell returns the current absolute position in the stream.
func (r *Reader) Tell() int64 {
	return r.pos
}

// Size returns the total length of the stream.
func (r *Reader) Size() int64 {
	return r.size
}

// Remaining returns the number of bytes between the current position and the
// end of the stream.
func (r *Reader) Remaining() int64 {
	if r.pos >= r.size {
		return 0
	}
	return r.size - r.pos
}

// EOF reports whether the current position is at (or beyond) the end of the
// stream.
func (r *Reader) EOF() bool {
	return r.pos >= r.size
}

// Seek moves to the passed absolute position. Seeking beyond the end of the
// stream is an error.
func (r *Reader) Seek(pos int64) {
	if r.err != nil {
		return
	}
	if pos < 0 || pos > r.size {
		r.err = errors.Wrapf(fault.ErrIO, "seek to %d outside of stream of %d bytes", pos, r.size)
		return
	}
	if _, err := r.r.Seek(pos, io.SeekStart); err != nil {
		r.err = errors.Wrapf(fault.ErrIO, "seek to %d: %v", pos, err)
		return
	}
	r.pos = pos
}

// Data reads exactly len(p) bytes.
func (r *Reader) Data(p []byte) {
	if r.err != nil {
		return
	}
	if int64(len(p)) > r.Remaining() {
		r.err = errors.Wrapf(fault.ErrIO, "read of %d bytes at %d goes beyond stream of %d bytes", len(p), r.pos, r.size)
		return
	}
	n, err := io.ReadFull(r.r, p)
	r.pos += int64(n)
	if err != nil {
		r.err = errors.Wrapf(fault.ErrIO, "%v after reading %d bytes at %d", err, n, r.pos)
	}
}

func (r *Reader) Uint8() uint8 {
	r.Data(r.tmp[:1])
	if r.err != nil {
		return 0
	}
	return r.tmp[0]
}

func (r *Reader) Uint16() uint16 {
	r.Data(r.tmp[:2])
	if r.err != nil {
		return 0
	}
	return binary.LittleEndian.Uint16(r.tmp[:2])
}

func (r *Reader) Uint32() uint32 {
	r.Data(r.tmp[:4])
	if r.err != nil {
		return 0
	}
	return binary.LittleEndian.Uint32(r.tmp[:4])
}

func (r *Reader) Int32() int32 {
	return int32(r.Uint32())
}
