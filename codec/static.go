package codec

import (
	"fmt"

	"github.com/chesscodec/cgn/bitio"
	"github.com/chesscodec/cgn/game"
	"github.com/chesscodec/cgn/huffman"
	"github.com/chesscodec/cgn/rank"
	"github.com/corentings/chess/v2"
)

// EncodeStatic compresses g using the fixed baseline codebook: every move
// is encoded against the same weight table regardless of color or game
// history.
func EncodeStatic(g *game.Game) ([]byte, error) {
	book, _ := huffman.BuildCodebook(huffman.BaselineWeights())

	w := bitio.NewWriter()
	if err := writeFrame(w, g); err != nil {
		return nil, err
	}

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

		cw := book[idx]
		w.WriteBits(cw.Bits, int(cw.Size))
		pos = pos.Update(mv)
	}

	// Pad the final partial byte with a prefix of the longest codeword: a
	// proper prefix of a codeword always stops mid-codeword, so the decoder
	// cannot read the padding as an extra move.
	if pad := (8 - w.Len()%8) % 8; pad > 0 {
		longest := book[0]
		for _, cw := range book {
			if cw.Size > longest.Size {
				longest = cw
			}
		}
		w.WriteBits(longest.Bits>>(longest.Size-uint8(pad)), pad)
	}

	return w.Bytes(), nil
}

// DecodeStatic reconstructs a Game from a byte buffer produced by
// EncodeStatic.
func DecodeStatic(data []byte) (*game.Game, error) {
	_, tree := huffman.BuildCodebook(huffman.BaselineWeights())

	r := bitio.NewReader(data, len(data)*8)
	fh, err := readFrame(r)
	if err != nil {
		return nil, err
	}

	g := &game.Game{}
	if fh.hasHeaders {
		fh.headers.applyTo(g)
	}

	pos := chess.StartingPosition()
	notation := chess.AlgebraicNotation{}
	for r.Remaining() > 0 {
		idx, err := tree.Decode(r.ReadBit)
		if err != nil {
			// Trailing pad bits that can't complete a codeword are expected
			// byte-alignment padding, not an error.
			break
		}

		moves := rank.LegalMoves(pos)
		if idx < 0 || idx >= len(moves) {
			return nil, fmt.Errorf("%w: decoded index %d among %d legal moves", ErrIndexOutOfRange, idx, len(moves))
		}
		mv := &moves[idx]
		g.Moves = append(g.Moves, notation.Encode(pos, mv))
		pos = pos.Update(mv)
	}

	return g, nil
}

// indexOfMove finds mv's position in moves by origin/destination/promotion,
// since the decoded chess.Move value from notation.Decode is a distinct
// allocation from the entries rank.LegalMoves produces for the same
// position.
func indexOfMove(moves []chess.Move, mv *chess.Move) int {
	for i := range moves {
		if moves[i].S1() == mv.S1() && moves[i].S2() == mv.S2() && moves[i].Promo() == mv.Promo() {
			return i
		}
	}
	return -1
}
