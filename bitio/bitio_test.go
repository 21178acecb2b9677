package bitio

import "testing"

func TestWriteReadRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteBit(1)
	w.WriteBits(0b101, 3)
	w.WriteByte(0xAB)

	r := NewReader(w.Bytes(), w.Len())
	bit, err := r.ReadBit()
	if err != nil || bit != 1 {
		t.Fatalf("ReadBit() = %d, %v, want 1, nil", bit, err)
	}
	v, err := r.ReadBits(3)
	if err != nil || v != 0b101 {
		t.Fatalf("ReadBits(3) = %d, %v, want 5, nil", v, err)
	}
	b, err := r.ReadByte()
	if err != nil || b != 0xAB {
		t.Fatalf("ReadByte() = %x, %v, want ab, nil", b, err)
	}
}

func TestMSBFirstOrdering(t *testing.T) {
	w := NewWriter()
	w.WriteBits(0b1, 1)
	w.WriteBits(0b0000000, 7)
	buf := w.Bytes()
	if len(buf) != 1 || buf[0] != 0x80 {
		t.Fatalf("Bytes() = %08b, want 10000000", buf)
	}
}

func TestReadPastEndFails(t *testing.T) {
	r := NewReader(nil, 0)
	if _, err := r.ReadBit(); err == nil {
		t.Fatal("ReadBit() on empty reader: want error, got nil")
	}
}

func TestInt8RoundTrip(t *testing.T) {
	w := NewWriter()
	neg := int8(-5)
	w.WriteBits(uint64(uint8(neg)), 8)
	r := NewReader(w.Bytes(), w.Len())
	v, err := r.ReadInt8()
	if err != nil || v != -5 {
		t.Fatalf("ReadInt8() = %d, %v, want -5, nil", v, err)
	}
}

func TestRemaining(t *testing.T) {
	w := NewWriter()
	w.WriteBits(0, 10)
	r := NewReader(w.Bytes(), w.Len())
	if r.Remaining() != 10 {
		t.Fatalf("Remaining() = %d, want 10", r.Remaining())
	}
	r.ReadBits(4)
	if r.Remaining() != 6 {
		t.Fatalf("Remaining() after ReadBits(4) = %d, want 6", r.Remaining())
	}
}
