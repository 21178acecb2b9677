package bench

import (
	"time"

	"github.com/chesscodec/cgn/codec"
	"github.com/chesscodec/cgn/game"
)

// Metrics records one game's compression outcome under a given codec.
type Metrics struct {
	TimeToCompress            time.Duration
	TimeToDecompress          time.Duration
	CompressedSizeBytes       int
	DecompressedSizeBytes     int
	BitsPerMove               float64
	BitsPerMoveExcludingHeaders float64
}

// CollectDynamic runs the dynamic codec over g and reports its Metrics,
// along with bits/move computed a second time with headers cleared so the
// header-overhead contribution can be isolated.
func CollectDynamic(g *game.Game, height, deviation float64) (Metrics, error) {
	start := time.Now()
	data, err := codec.EncodeDynamic(g, height, deviation)
	if err != nil {
		return Metrics{}, err
	}
	compressTime := time.Since(start)

	start = time.Now()
	decoded, err := codec.DecodeDynamic(data, height, deviation)
	if err != nil {
		return Metrics{}, err
	}
	decompressTime := time.Since(start)

	headerless := *g
	headerless.ClearHeaders()
	bareData, err := codec.EncodeDynamic(&headerless, height, deviation)
	if err != nil {
		return Metrics{}, err
	}

	numMoves := len(g.Moves)
	m := Metrics{
		TimeToCompress:        compressTime,
		TimeToDecompress:      decompressTime,
		CompressedSizeBytes:   len(data),
		DecompressedSizeBytes: len(decoded.String()),
	}
	if numMoves > 0 {
		m.BitsPerMove = float64(len(data)*8) / float64(numMoves)
		m.BitsPerMoveExcludingHeaders = float64(len(bareData)*8) / float64(numMoves)
	}
	return m, nil
}

// Summary aggregates Metrics across a corpus sample into averages, matching
// the benchmarking harness's headline KPI: average bits/move.
type Summary struct {
	Games                          int
	AvgBitsPerMove                 float64
	AvgBitsPerMoveExcludingHeaders float64
	AvgCompressionRatio            float64
}

// Summarize averages a slice of per-game Metrics.
func Summarize(all []Metrics) Summary {
	if len(all) == 0 {
		return Summary{}
	}
	var s Summary
	s.Games = len(all)
	for _, m := range all {
		s.AvgBitsPerMove += m.BitsPerMove
		s.AvgBitsPerMoveExcludingHeaders += m.BitsPerMoveExcludingHeaders
		if m.DecompressedSizeBytes > 0 {
			s.AvgCompressionRatio += float64(m.CompressedSizeBytes) / float64(m.DecompressedSizeBytes)
		}
	}
	n := float64(len(all))
	s.AvgBitsPerMove /= n
	s.AvgBitsPerMoveExcludingHeaders /= n
	s.AvgCompressionRatio /= n
	return s
}
