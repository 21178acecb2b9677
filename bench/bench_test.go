package bench

import (
	"strings"
	"testing"

	"github.com/chesscodec/cgn/codec"
	"github.com/chesscodec/cgn/game"
)

const twoGameDB = `[Event "Game One"]
[Site "?"]
[Date "2023.01.01"]
[Round "1"]
[White "A"]
[Black "B"]
[Result "1-0"]

1. e4 e5 2. Nf3 Nc6 1-0

[Event "Game Two"]
[Site "?"]
[Date "2023.01.02"]
[Round "2"]
[White "C"]
[Black "D"]
[Result "0-1"]

1. d4 d5 2. c4 e6 0-1
`

func TestCorpusSplitsGames(t *testing.T) {
	corpus := NewCorpus(strings.NewReader(twoGameDB))
	var games []string
	for g := range corpus.Games() {
		games = append(games, g)
	}
	if len(games) != 2 {
		t.Fatalf("Games() yielded %d games, want 2", len(games))
	}
	if !strings.Contains(games[0], "Game One") || !strings.Contains(games[1], "Game Two") {
		t.Fatalf("games out of order or malformed: %q, %q", games[0], games[1])
	}
}

func TestCollectDynamicReportsPositiveBitsPerMove(t *testing.T) {
	g, err := game.Parse(games(t)[0])
	if err != nil {
		t.Fatalf("game.Parse() error: %v", err)
	}
	m, err := CollectDynamic(g, codec.DefaultGaussianHeight, codec.DefaultGaussianDeviation)
	if err != nil {
		t.Fatalf("CollectDynamic() error: %v", err)
	}
	if m.BitsPerMove <= 0 {
		t.Fatalf("BitsPerMove = %f, want > 0", m.BitsPerMove)
	}
	if m.BitsPerMoveExcludingHeaders <= 0 || m.BitsPerMoveExcludingHeaders > m.BitsPerMove {
		t.Fatalf("BitsPerMoveExcludingHeaders = %f, want in (0, %f]", m.BitsPerMoveExcludingHeaders, m.BitsPerMove)
	}
}

func TestSummarizeAverages(t *testing.T) {
	s := Summarize([]Metrics{
		{BitsPerMove: 2, BitsPerMoveExcludingHeaders: 1, CompressedSizeBytes: 10, DecompressedSizeBytes: 100},
		{BitsPerMove: 4, BitsPerMoveExcludingHeaders: 3, CompressedSizeBytes: 20, DecompressedSizeBytes: 100},
	})
	if s.Games != 2 {
		t.Fatalf("Games = %d, want 2", s.Games)
	}
	if s.AvgBitsPerMove != 3 {
		t.Fatalf("AvgBitsPerMove = %f, want 3", s.AvgBitsPerMove)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if s := Summarize(nil); s.Games != 0 {
		t.Fatalf("Summarize(nil).Games = %d, want 0", s.Games)
	}
}

func games(t *testing.T) []string {
	t.Helper()
	corpus := NewCorpus(strings.NewReader(twoGameDB))
	var out []string
	for g := range corpus.Games() {
		out = append(out, g)
	}
	return out
}
