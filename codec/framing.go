package codec

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/chesscodec/cgn/bitio"
	"github.com/chesscodec/cgn/game"
	"github.com/klauspost/compress/zlib"
)

// maxHeaderBytes is the largest DEFLATE-compressed header block the 8-bit
// signed length prefix can address.
const maxHeaderBytes = 127

// headerTuple is the structural representation of the seven mandatory tags,
// gob-encoded and then DEFLATE-compressed to form the header block. gob is
// the standard library's self-describing structural serializer; see
// DESIGN.md for why it was chosen over a hand-rolled format.
type headerTuple struct {
	Event, Site, Date, Round, White, Black, Result string
}

func tupleFromGame(g *game.Game) headerTuple {
	return headerTuple{g.Event, g.Site, g.Date, g.Round, g.White, g.Black, g.Result}
}

func (t headerTuple) applyTo(g *game.Game) {
	g.Event, g.Site, g.Date, g.Round = t.Event, t.Site, t.Date, t.Round
	g.White, g.Black, g.Result = t.White, t.Black, t.Result
}

// compressHeaders gob-encodes and then zlib-compresses (max level) the
// header tuple.
func compressHeaders(g *game.Game) ([]byte, error) {
	var gobBuf bytes.Buffer
	if err := gob.NewEncoder(&gobBuf).Encode(tupleFromGame(g)); err != nil {
		return nil, fmt.Errorf("%w: gob encode headers: %v", ErrSerializationFailure, err)
	}

	var zBuf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&zBuf, zlib.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("%w: zlib writer: %v", ErrSerializationFailure, err)
	}
	if _, err := zw.Write(gobBuf.Bytes()); err != nil {
		return nil, fmt.Errorf("%w: zlib write: %v", ErrSerializationFailure, err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: zlib close: %v", ErrSerializationFailure, err)
	}
	return zBuf.Bytes(), nil
}

func decompressHeaders(data []byte) (headerTuple, error) {
	var t headerTuple
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return t, fmt.Errorf("%w: zlib reader: %v", ErrDeserializationFailure, err)
	}
	defer zr.Close()

	if err := gob.NewDecoder(zr).Decode(&t); err != nil {
		return t, fmt.Errorf("%w: gob decode headers: %v", ErrDeserializationFailure, err)
	}
	return t, nil
}

// writeFrame writes the 1-bit "no headers" marker or the 8-bit signed
// header-length prefix followed by the compressed header block, per §4.3.
// A game counts as headerless only when all seven mandatory tags are
// empty — the spec's binding resolution of the "empty headers" open
// question.
func writeFrame(w *bitio.Writer, g *game.Game) error {
	if !g.HasHeaders() {
		w.WriteBit(1)
		return nil
	}

	headerBytes, err := compressHeaders(g)
	if err != nil {
		return err
	}
	if len(headerBytes) > maxHeaderBytes {
		return fmt.Errorf("%w: header block is %d bytes, max %d", ErrIndexOverflow, len(headerBytes), maxHeaderBytes)
	}

	w.WriteBit(0)
	w.WriteBits(uint64(uint8(int8(len(headerBytes)))), 7)
	w.WriteBytes(headerBytes)
	return nil
}

// frameHeader is the byte-aligned header portion of a decoded frame: the
// headers, if present, and the bit offset at which the move body begins.
type frameHeader struct {
	headers      headerTuple
	hasHeaders   bool
	moveBodyBit  int
}

// readFrame reads the framing marker and, if present, the header block from
// the start of r.
func readFrame(r *bitio.Reader) (frameHeader, error) {
	marker, err := r.ReadBit()
	if err != nil {
		return frameHeader{}, fmt.Errorf("%w: framing marker: %v", ErrTruncated, err)
	}
	if marker == 1 {
		return frameHeader{hasHeaders: false, moveBodyBit: 1}, nil
	}

	lengthBits, err := r.ReadBits(7)
	if err != nil {
		return frameHeader{}, fmt.Errorf("%w: header length prefix: %v", ErrTruncated, err)
	}
	length := int(lengthBits)

	headerBytes := make([]byte, length)
	for i := range headerBytes {
		b, err := r.ReadByte()
		if err != nil {
			return frameHeader{}, fmt.Errorf("%w: header block byte %d: %v", ErrTruncated, i, err)
		}
		headerBytes[i] = b
	}

	tuple, err := decompressHeaders(headerBytes)
	if err != nil {
		return frameHeader{}, err
	}
	return frameHeader{headers: tuple, hasHeaders: true, moveBodyBit: 8 + 8*length}, nil
}

// moveBitsFieldSize is the width, in bits, of the move-body bit-length field
// the dynamic codec writes after the header block. 32 bits comfortably
// bounds any real game's move count times the widest Huffman codeword.
const moveBitsFieldSize = 32

// writeDynamicFrame writes the shared header framing followed by the exact
// bit length of the move body that follows it. Unlike the static codec,
// whose decoder tolerates trailing pad bits at end-of-supply (§4.4, see
// DESIGN.md), the dynamic codec's per-move weight perturbation makes that
// tolerance unsafe: a few stray pad bits can still decode to a spurious
// extra move under a codebook that has drifted toward very short codewords.
// Carrying the exact bit count here lets the decoder stop precisely at the
// true end of the move body.
func writeDynamicFrame(w *bitio.Writer, g *game.Game, moveBodyBits int) error {
	if err := writeFrame(w, g); err != nil {
		return err
	}
	w.WriteBits(uint64(moveBodyBits), moveBitsFieldSize)
	return nil
}

// readDynamicFrame reads the shared header framing followed by the
// move-body bit count writeDynamicFrame wrote.
func readDynamicFrame(r *bitio.Reader) (frameHeader, int, error) {
	fh, err := readFrame(r)
	if err != nil {
		return frameHeader{}, 0, err
	}
	bits, err := r.ReadBits(moveBitsFieldSize)
	if err != nil {
		return frameHeader{}, 0, fmt.Errorf("%w: move-body bit length: %v", ErrTruncated, err)
	}
	return fh, int(bits), nil
}
