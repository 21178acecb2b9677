package codec

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/chesscodec/cgn/game"
	"github.com/klauspost/compress/zlib"
)

// fallbackRecord is the structural representation serialized by the
// generic-fallback codec: the full game, headers and moves together, with
// no chess-aware ranking at all.
type fallbackRecord struct {
	Event, Site, Date, Round, White, Black, Result string
	Moves                                           []string
}

// EncodeFallback serializes g with gob and wraps the result in zlib at
// maximum compression, providing a chess-agnostic correctness floor that
// the static and dynamic codecs are expected to beat.
func EncodeFallback(g *game.Game) ([]byte, error) {
	rec := fallbackRecord{g.Event, g.Site, g.Date, g.Round, g.White, g.Black, g.Result, g.Moves}

	var gobBuf bytes.Buffer
	if err := gob.NewEncoder(&gobBuf).Encode(rec); err != nil {
		return nil, fmt.Errorf("%w: gob encode game: %v", ErrSerializationFailure, err)
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

// DecodeFallback reconstructs a Game from a byte buffer produced by
// EncodeFallback.
func DecodeFallback(data []byte) (*game.Game, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: zlib reader: %v", ErrDeserializationFailure, err)
	}
	defer zr.Close()

	var rec fallbackRecord
	if err := gob.NewDecoder(zr).Decode(&rec); err != nil {
		return nil, fmt.Errorf("%w: gob decode game: %v", ErrDeserializationFailure, err)
	}

	return &game.Game{
		Event: rec.Event, Site: rec.Site, Date: rec.Date, Round: rec.Round,
		White: rec.White, Black: rec.Black, Result: rec.Result, Moves: rec.Moves,
	}, nil
}
