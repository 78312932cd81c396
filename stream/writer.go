package stream

import (
	"encoding/binary"
	"io"
)

// Writer encodes fixed-width little-endian values to an io.Writer. Like
// Reader, it stops at the first error.
//
// The decoders in this module never write resources back; Writer exists so
// that fixtures can be produced with the exact layout Reader consumes.
type Writer struct {
	w   io.Writer
	tmp [4]byte
	n   int64
	err error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Err returns the error which stopped writing, or nil.
func (w *Writer) Err() error {
	return w.err
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int64 {
	return w.n
}

func (w *Writer) Data(p []byte) {
	if w.err != nil {
		return
	}
	n, err := w.w.Write(p)
	w.n += int64(n)
	if err != nil {
		w.err = err
	} else if n != len(p) {
		w.err = io.ErrShortWrite
	}
}

func (w *Writer) Uint8(v uint8) {
	w.tmp[0] = v
	w.Data(w.tmp[:1])
}

func (w *Writer) Uint16(v uint16) {
	binary.LittleEndian.PutUint16(w.tmp[:2], v)
	w.Data(w.tmp[:2])
}

func (w *Writer) Uint32(v uint32) {
	binary.LittleEndian.PutUint32(w.tmp[:4], v)
	w.Data(w.tmp[:4])
}

func (w *Writer) Int32(v int32) {
	w.Uint32(uint32(v))
}
