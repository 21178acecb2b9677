// Package rank implements the deterministic move-ranking scheme that bounds
// the legal moves from any chess position to a stable index in [0, 256).
//
// The packed sort key and piece-square tables are grounded on the Lichess
// empirical move-rank distribution; see score_move.rs in the reference
// implementation this codec was distilled from.
package rank

import (
	"sort"

	"github.com/corentings/chess/v2"
)

// MaxMoves is the largest legal-move count any reachable position may
// produce under this scheme. Standard chess never approaches it; the codec
// rejects a rank index at or beyond it with codec.ErrIndexOverflow.
const MaxMoves = 256

// Score computes the packed sort key for mv played from pos. Lower keys
// sort first. The key is, from most to least significant: promotion tier,
// capture flag, pawn-defense score, piece-square-table delta, destination
// square, source square.
func Score(pos *chess.Position, mv *chess.Move) uint32 {
	promo := promotionScore(mv)
	capture := captureScore(mv)
	defense := pawnDefenseScore(pos, mv)
	pst := movePSTScore(pos, mv)

	to := uint32(mv.S2())
	from := uint32(mv.S1())

	// Fields are packed into disjoint bit ranges, most to least significant:
	// promotion(3) | capture(1) | pawn-defense(3) | pst delta(12) | dest(6) | source(6).
	return (promo << 28) | (capture << 27) | (defense << 24) | (pst << 12) | (to << 6) | from
}

// promotionScore: 0 none, 1 knight, 2 bishop, 3 rook, 4 queen.
func promotionScore(mv *chess.Move) uint32 {
	switch mv.Promo() {
	case chess.Knight:
		return 1
	case chess.Bishop:
		return 2
	case chess.Rook:
		return 3
	case chess.Queen:
		return 4
	default:
		return 0
	}
}

func captureScore(mv *chess.Move) uint32 {
	if mv.HasTag(chess.Capture) || mv.HasTag(chess.EnPassant) {
		return 1
	}
	return 0
}

// pieceRoleValue mirrors shakmaty's Role discriminant ordering
// (Pawn=1, Knight=2, Bishop=3, Rook=4, Queen=5, King=6), which the
// pawn-defense formula subtracts from 6.
func pieceRoleValue(pt chess.PieceType) uint32 {
	switch pt {
	case chess.Pawn:
		return 1
	case chess.Knight:
		return 2
	case chess.Bishop:
		return 3
	case chess.Rook:
		return 4
	case chess.Queen:
		return 5
	case chess.King:
		return 6
	default:
		return 0
	}
}

// pawnDefenseScore returns 6 - role_value(moved piece) if any enemy pawn
// attacks the destination square, otherwise 6.
func pawnDefenseScore(pos *chess.Position, mv *chess.Move) uint32 {
	board := pos.Board()
	mover := board.Piece(mv.S1())
	enemy := chess.Black
	if pos.Turn() == chess.Black {
		enemy = chess.White
	}

	if enemyPawnAttacks(board, enemy, mv.S2()) {
		return 6 - pieceRoleValue(mover.Type())
	}
	return 6
}

// enemyPawnAttacks reports whether a pawn of color attacker occupies one of
// the two squares diagonally behind dst (from attacker's perspective of
// "behind" being the direction it advances from).
func enemyPawnAttacks(board *chess.Board, attacker chess.Color, dst chess.Square) bool {
	file := int(dst.File())
	r := int(dst.Rank())

	// The rank a pawn of `attacker` would have advanced from to reach dst.
	var fromRank int
	if attacker == chess.White {
		fromRank = r - 1
	} else {
		fromRank = r + 1
	}
	if fromRank < 0 || fromRank > 7 {
		return false
	}

	for _, df := range [...]int{-1, 1} {
		fromFile := file + df
		if fromFile < 0 || fromFile > 7 {
			continue
		}
		sq := chess.NewSquare(chess.File(fromFile), chess.Rank(fromRank))
		p := board.Piece(sq)
		if p.Type() == chess.Pawn && p.Color() == attacker {
			return true
		}
	}
	return false
}

// movePSTScore returns 512 + PST[role][to] - PST[role][from], vertically
// flipping the table lookup for White (the tables are authored from Black's
// view of the board, rank 8 downward).
func movePSTScore(pos *chess.Position, mv *chess.Move) uint32 {
	mover := pos.Board().Piece(mv.S1())
	to := pstScore(mover, mv.S2())
	from := pstScore(mover, mv.S1())
	return uint32(512 + to - from)
}

func pstScore(p chess.Piece, sq chess.Square) int32 {
	s := sq
	if p.Color() == chess.White {
		s = flipVertical(sq)
	}
	return int32(lichessTables[pieceTableIndex(p.Type())][s])
}

func flipVertical(sq chess.Square) chess.Square {
	file := sq.File()
	r := chess.Rank(7 - int(sq.Rank()))
	return chess.NewSquare(file, r)
}

func pieceTableIndex(pt chess.PieceType) int {
	switch pt {
	case chess.Pawn:
		return 0
	case chess.Knight:
		return 1
	case chess.Bishop:
		return 2
	case chess.Rook:
		return 3
	case chess.Queen:
		return 4
	case chess.King:
		return 5
	default:
		return 0
	}
}

// LegalMoves returns every legal move from pos, stably sorted ascending by
// Score. The index of a move within the returned slice is the symbol the
// codecs encode and decode.
func LegalMoves(pos *chess.Position) []chess.Move {
	moves := pos.ValidMoves()
	sort.SliceStable(moves, func(i, j int) bool {
		return Score(pos, &moves[i]) < Score(pos, &moves[j])
	})
	return moves
}
