package stream

import (
	"bytes"
	"testing"

	"badc0de.net/pkg/go-genie/fault"
	"badc0de.net/pkg/go-genie/ttesting"
)

func TestReaderRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewWriter(buf)
	w.Uint8(0xAB)
	w.Uint16(0x1234)
	w.Uint32(0xDEADBEEF)
	w.Int32(-5)
	if err := w.Err(); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	ttesting.AssertEqualInt(t, "writer length", int(w.Len()), 11)

	r, err := NewReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("failed to create reader: %v", err)
	}
	ttesting.AssertEqualInt(t, "uint8", int(r.Uint8()), 0xAB)
	ttesting.AssertEqualInt(t, "uint16", int(r.Uint16()), 0x1234)
	ttesting.AssertEqualUint32(t, "uint32", r.Uint32(), 0xDEADBEEF)
	ttesting.AssertEqualInt(t, "int32", int(r.Int32()), -5)
	ttesting.AssertEqualBool(t, "at eof", r.EOF(), true)
	if err := r.Err(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestReaderSeekAndTell(t *testing.T) {
	r, err := NewReader(bytes.NewReader([]byte{1, 0, 2, 0, 3, 0}))
	if err != nil {
		t.Fatalf("failed to create reader: %v", err)
	}
	r.Seek(4)
	ttesting.AssertEqualInt(t, "tell after seek", int(r.Tell()), 4)
	ttesting.AssertEqualInt(t, "value after seek", int(r.Uint16()), 3)
	r.Seek(0)
	ttesting.AssertEqualInt(t, "value after rewind", int(r.Uint16()), 1)
	ttesting.AssertEqualInt(t, "remaining", int(r.Remaining()), 4)
}

func TestReaderShortReadIsSticky(t *testing.T) {
	r, err := NewReader(bytes.NewReader([]byte{1, 2, 3}))
	if err != nil {
		t.Fatalf("failed to create reader: %v", err)
	}
	if v := r.Uint32(); v != 0 {
		t.Errorf("got %d from short read; want 0", v)
	}
	ttesting.AssertErrorIs(t, "short read", r.Err(), fault.ErrIO)
	ttesting.AssertEqualInt(t, "position untouched", int(r.Tell()), 0)

	// Subsequent reads must not succeed even though a byte is available.
	if v := r.Uint8(); v != 0 {
		t.Errorf("got %d after error; want 0", v)
	}
}

func TestReaderSeekBeyondEnd(t *testing.T) {
	r, err := NewReader(bytes.NewReader(make([]byte, 8)))
	if err != nil {
		t.Fatalf("failed to create reader: %v", err)
	}
	r.Seek(9)
	ttesting.AssertErrorIs(t, "seek beyond end", r.Err(), fault.ErrIO)
}

func TestNewReaderKeepsPosition(t *testing.T) {
	br := bytes.NewReader([]byte{9, 8, 7, 6})
	br.Seek(2, 0)
	r, err := NewReader(br)
	if err != nil {
		t.Fatalf("failed to create reader: %v", err)
	}
	ttesting.AssertEqualInt(t, "tell", int(r.Tell()), 2)
	ttesting.AssertEqualInt(t, "size", int(r.Size()), 4)
	ttesting.AssertEqualInt(t, "value", int(r.Uint8()), 7)
}
