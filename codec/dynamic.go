package codec

import (
	"fmt"
	"math"

	"github.com/chesscodec/cgn/bitio"
	"github.com/chesscodec/cgn/game"
	"github.com/chesscodec/cgn/huffman"
	"github.com/chesscodec/cgn/rank"
	"github.com/corentings/chess/v2"
)

// DefaultGaussianHeight and DefaultGaussianDeviation are the canonical
// parameters for the dynamic codec's weight-perturbation kernel, as tuned
// by the genetic-algorithm parameter search. The CLI defaults to these
// when the caller doesn't override them.
const (
	DefaultGaussianHeight     = 742325.3537353727
	DefaultGaussianDeviation  = 2.5635425103971308
)

// colorTables holds the two per-color weight tables the dynamic codec
// mutates as it walks a game.
type colorTables struct {
	white, black huffman.WeightTable
}

func newColorTables() colorTables {
	return colorTables{white: huffman.BaselineWeights(), black: huffman.BaselineWeights()}
}

func (c *colorTables) table(turn chess.Color) *huffman.WeightTable {
	if turn == chess.White {
		return &c.white
	}
	return &c.black
}

// bumpWeights adds a Gaussian kernel centered on symbol i to every entry of
// w, floor-rounding the float accumulation back to a nonnegative integer
// and saturating at the uint64 maximum on overflow.
func bumpWeights(w *huffman.WeightTable, i int, height, deviation float64) {
	twoSigmaSq := 2 * deviation * deviation
	for k := range w {
		delta := float64(k - i)
		bump := height * math.Exp(-(delta*delta)/twoSigmaSq)
		updated := float64(w[k]) + bump
		if updated < 0 {
			updated = 0
		}
		if updated > math.MaxUint64 {
			w[k] = math.MaxUint64
			continue
		}
		w[k] = uint64(math.Floor(updated))
	}
}

// EncodeDynamic compresses g with the adaptive Huffman codec: per-color
// weight tables start at the baseline and are perturbed by a Gaussian
// kernel after every move, so the codebook tightens around recently played
// move ranks.
func EncodeDynamic(g *game.Game, height, deviation float64) ([]byte, error) {
	tables := newColorTables()

	// The move body is built in its own bit writer first so its exact bit
	// length is known before it's framed; see writeDynamicFrame.
	body := bitio.NewWriter()

	pos := chess.StartingPosition()
	notation := chess.AlgebraicNotation{}
	for _, san := range g.Moves {
		mv, err := notation.Decode(pos, san)
		if err != nil {
			return nil, fmt.Errorf("%w: move %q: %v", ErrIllegalInput, san, err)
		}

		moves := rank.LegalMoves(pos)
		idx := indexOfMove(moves, mv)
		if idx < 0 {
			return nil, fmt.Errorf("%w: move %q not found among legal moves", ErrIllegalInput, san)
		}
		if idx >= huffman.NumSymbols {
			return nil, fmt.Errorf("%w: %d legal moves exceeds %d symbols", ErrIndexOverflow, len(moves), huffman.NumSymbols)
		}

		turn := pos.Turn()
		book, _ := huffman.BuildCodebook(*tables.table(turn))
		cw := book[idx]
		body.WriteBits(cw.Bits, int(cw.Size))

		bumpWeights(tables.table(turn), idx, height, deviation)
		pos = pos.Update(mv)
	}

	w := bitio.NewWriter()
	if err := writeDynamicFrame(w, g, body.Len()); err != nil {
		return nil, err
	}
	appendBits(w, body)

	return w.Bytes(), nil
}

// appendBits copies every bit src has accumulated onto the end of dst.
func appendBits(dst *bitio.Writer, src *bitio.Writer) {
	r := bitio.NewReader(src.Bytes(), src.Len())
	for r.Remaining() > 0 {
		bit, _ := r.ReadBit()
		dst.WriteBit(bit)
	}
}

// DecodeDynamic reconstructs a Game from a byte buffer produced by
// EncodeDynamic with the same (height, deviation) parameters. It stops
// exactly at the move-body bit count EncodeDynamic recorded in the frame,
// rather than at end-of-buffer: the dynamic codebook drifts toward very
// short codewords as play continues, so trailing pad bits can otherwise
// decode to a spurious extra move instead of failing.
func DecodeDynamic(data []byte, height, deviation float64) (*game.Game, error) {
	tables := newColorTables()

	r := bitio.NewReader(data, len(data)*8)
	fh, moveBodyBits, err := readDynamicFrame(r)
	if err != nil {
		return nil, err
	}

	g := &game.Game{}
	if fh.hasHeaders {
		fh.headers.applyTo(g)
	}

	pos := chess.StartingPosition()
	notation := chess.AlgebraicNotation{}
	bitsRead := 0
	for bitsRead < moveBodyBits {
		turn := pos.Turn()
		_, tree := huffman.BuildCodebook(*tables.table(turn))

		before := r.Remaining()
		idx, err := tree.Decode(r.ReadBit)
		if err != nil {
			return nil, fmt.Errorf("%w: move body: %v", ErrTruncated, err)
		}
		bitsRead += before - r.Remaining()

		moves := rank.LegalMoves(pos)
		if idx < 0 || idx >= len(moves) {
			return nil, fmt.Errorf("%w: decoded index %d among %d legal moves", ErrIndexOutOfRange, idx, len(moves))
		}
		mv := &moves[idx]
		g.Moves = append(g.Moves, notation.Encode(pos, mv))

		bumpWeights(tables.table(turn), idx, height, deviation)
		pos = pos.Update(mv)

		// Terminal position is a belt-and-braces guard; the bit count above
		// is the authoritative termination condition.
		if pos.Status() != chess.NoMethod {
			break
		}
	}

	return g, nil
}
