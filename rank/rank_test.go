package rank

import (
	"testing"

	"github.com/corentings/chess/v2"
)

func TestLegalMovesInitialPositionCount(t *testing.T) {
	pos := chess.StartingPosition()
	moves := LegalMoves(pos)
	if len(moves) != 20 {
		t.Fatalf("LegalMoves(initial) = %d moves, want 20", len(moves))
	}
}

func TestLegalMovesStableAcrossCalls(t *testing.T) {
	pos := chess.StartingPosition()
	a := LegalMoves(pos)
	b := LegalMoves(pos)
	if len(a) != len(b) {
		t.Fatalf("len mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].S1() != b[i].S1() || a[i].S2() != b[i].S2() || a[i].Promo() != b[i].Promo() {
			t.Fatalf("index %d differs between repeated calls: %v vs %v", i, a[i], b[i])
		}
	}
}

func positionFromFEN(t *testing.T, fen string) *chess.Position {
	t.Helper()
	opt, err := chess.FEN(fen)
	if err != nil {
		t.Fatalf("chess.FEN(%q) failed: %v", fen, err)
	}
	return chess.NewGame(opt).Position()
}

// TestPromotionDominatesOrdering exercises the promotion tier field: from a
// position with both a queen-promoting and a non-promoting pawn move
// available, the queen promotion must sort after any non-promotion move,
// since promotion is the most significant field and queen is the highest
// tier.
func TestPromotionDominatesOrdering(t *testing.T) {
	pos := positionFromFEN(t, "4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	moves := LegalMoves(pos)
	if len(moves) == 0 {
		t.Fatal("expected at least one legal move")
	}
	last := moves[len(moves)-1]
	if last.Promo() != chess.Queen {
		t.Fatalf("highest-ranked move promo = %v, want Queen", last.Promo())
	}
}

// TestCaptureOutranksNonCaptureAmongNonPromotions exercises the capture
// field: among non-promoting moves, a capture must sort after every
// non-capturing move.
func TestCaptureOutranksNonCaptureAmongNonPromotions(t *testing.T) {
	pos := positionFromFEN(t, "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	moves := LegalMoves(pos)

	lastNonPromoIdx := -1
	for i, mv := range moves {
		if mv.Promo() == chess.NoPieceType {
			lastNonPromoIdx = i
		}
	}
	if lastNonPromoIdx < 0 {
		t.Fatal("expected at least one non-promoting move")
	}
	if !moves[lastNonPromoIdx].HasTag(chess.Capture) {
		t.Fatalf("highest-ranked non-promoting move is not a capture: %v", moves[lastNonPromoIdx])
	}
}

func TestScoreDeterministic(t *testing.T) {
	pos := chess.StartingPosition()
	moves := pos.ValidMoves()
	for _, mv := range moves {
		if Score(pos, &mv) != Score(pos, &mv) {
			t.Fatalf("Score is not a pure function of (pos, mv) for %v", mv)
		}
	}
}
