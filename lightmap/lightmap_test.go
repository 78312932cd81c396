package lightmap

import (
	"bytes"
	"testing"

	"badc0de.net/pkg/go-genie/fault"
	"badc0de.net/pkg/go-genie/stream"
	"badc0de.net/pkg/go-genie/ttesting"
)

func TestDecode(t *testing.T) {
	src, err := stream.NewReader(bytes.NewReader([]byte{1, 2, 3, 4, 5, 6}))
	if err != nil {
		t.Fatalf("failed to create reader: %v", err)
	}
	tbl, err := Decode(src, 3)
	if err != nil {
		t.Fatalf("failed to decode lightmap: %v", err)
	}
	ttesting.AssertEqualInt(t, "rows", tbl.Len(), 2)

	v, ok := tbl.Lookup(1, 2)
	ttesting.AssertEqualBool(t, "in range", ok, true)
	ttesting.AssertEqualInt(t, "value", v, 6)

	_, ok = tbl.Lookup(2, 0)
	ttesting.AssertEqualBool(t, "row out of range", ok, false)
	_, ok = tbl.Lookup(0, 3)
	ttesting.AssertEqualBool(t, "column out of range", ok, false)
}

func TestDecodePartialRow(t *testing.T) {
	src, err := stream.NewReader(bytes.NewReader([]byte{1, 2, 3, 4}))
	if err != nil {
		t.Fatalf("failed to create reader: %v", err)
	}
	_, err = Decode(src, 3)
	ttesting.AssertErrorIs(t, "partial row", err, fault.ErrFormat)
}
