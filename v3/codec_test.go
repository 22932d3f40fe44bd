package v3

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncDecRoundTrip(t *testing.T) {
	r := &record{}
	r.u16(0x1234).u32(0xdeadbeef).i16(-1).str([]byte("HI"), 5)

	d := newDecoder(r.bytes())
	if got := d.u16(); got != 0x1234 {
		t.Errorf("u16 = %#x, want %#x", got, 0x1234)
	}
	if got := d.u32(); got != 0xdeadbeef {
		t.Errorf("u32 = %#x, want %#x", got, 0xdeadbeef)
	}
	if got := d.i16(); got != -1 {
		t.Errorf("i16 = %d, want -1", got)
	}
	if got := d.str(5); !cmp.Equal(got, []byte("HI")) {
		t.Errorf("str = %q, want %q", got, "HI")
	}
	if d.Err() != nil {
		t.Fatalf("unexpected error: %v", d.Err())
	}
}

func TestEncI16SentinelBitPattern(t *testing.T) {
	got := encI16(-1)
	want := []byte{0xff, 0xff}
	if !cmp.Equal(got, want) {
		t.Errorf("encI16(-1) = %v, want %v", got, want)
	}
}

func TestDecodeShortRecord(t *testing.T) {
	d := newDecoder([]byte{0x01})
	_ = d.u16()
	if d.Err() == nil {
		t.Fatal("expected short record error, got nil")
	}
	if _, ok := d.Err().(*shortRecordError); !ok {
		t.Fatalf("expected *shortRecordError, got %T", d.Err())
	}
}

func TestEncStrPadAndTruncate(t *testing.T) {
	if got := encStr([]byte("ab"), 5); !cmp.Equal(got, []byte("ab   ")) {
		t.Errorf("pad: got %q", got)
	}
	if got := encStr([]byte("abcdef"), 4); !cmp.Equal(got, []byte("abcd")) {
		t.Errorf("truncate: got %q", got)
	}
}

func TestAdditiveByteSum(t *testing.T) {
	if got := additiveByteSum([]byte{1, 2, 3}); got != 6 {
		t.Errorf("sum = %d, want 6", got)
	}
}

func TestRecordChecksumMatchesStandaloneSum(t *testing.T) {
	r := &record{}
	r.u16(1).u16(2).u8(3)
	if r.checksum() != additiveByteSum(r.bytes()) {
		t.Errorf("record checksum mismatch")
	}
}
