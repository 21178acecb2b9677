// Command cgn compresses and decompresses chess games recorded in PGN,
// and runs the genetic-algorithm search that tunes the dynamic codec's
// Gaussian kernel parameters.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/chesscodec/cgn/bench"
	"github.com/chesscodec/cgn/codec"
	"github.com/chesscodec/cgn/ga"
	"github.com/chesscodec/cgn/game"
)

var log = slog.Default().With("package", "main")

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "compress":
		err = runCompress(os.Args[2:])
	case "decompress":
		err = runDecompress(os.Args[2:])
	case "gen-algo":
		if err = runGenAlgo(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: cgn compress -o <0|1|2> [-height H] [-dev D] <input> <output>")
	fmt.Fprintln(os.Stderr, "       cgn decompress -o <0|1|2> [-height H] [-dev D] <input> <output>")
	fmt.Fprintln(os.Stderr, "       cgn gen-algo <init_pop> <n_games|all> <generations> <mutation_rate> <tournament_size> <h_min> <h_max> <dev_min> <dev_max> <input_db> <output_log>")
}

// codecLevel selects which move codec a -o flag names: 0 fallback DEFLATE,
// 1 static Huffman, 2 dynamic Huffman.
type codecLevel int

const (
	levelFallback codecLevel = 0
	levelStatic   codecLevel = 1
	levelDynamic  codecLevel = 2
)

func runCompress(args []string) error {
	fs := flag.NewFlagSet("compress", flag.ContinueOnError)
	level := fs.Int("o", int(levelDynamic), "codec level: 0 fallback, 1 static, 2 dynamic")
	height := fs.Float64("height", codec.DefaultGaussianHeight, "dynamic codec Gaussian kernel height")
	dev := fs.Float64("dev", codec.DefaultGaussianDeviation, "dynamic codec Gaussian kernel deviation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		usage()
		return fmt.Errorf("compress: want <input> <output>")
	}
	input, output := fs.Arg(0), fs.Arg(1)

	text, err := os.ReadFile(input)
	if err != nil {
		log.Debug("compress failed", "err", err)
		fmt.Fprintln(os.Stderr, "Compression failed")
		return err
	}
	g, err := game.Parse(string(text))
	if err != nil {
		log.Debug("compress failed", "err", err)
		fmt.Fprintln(os.Stderr, "Compression failed")
		return err
	}

	data, err := encodeAt(codecLevel(*level), g, *height, *dev)
	if err != nil {
		log.Debug("compress failed", "err", err)
		fmt.Fprintln(os.Stderr, "Compression failed")
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		log.Debug("compress failed", "err", err)
		fmt.Fprintln(os.Stderr, "Compression failed")
		return err
	}
	return nil
}

func runDecompress(args []string) error {
	fs := flag.NewFlagSet("decompress", flag.ContinueOnError)
	level := fs.Int("o", int(levelDynamic), "codec level: 0 fallback, 1 static, 2 dynamic")
	height := fs.Float64("height", codec.DefaultGaussianHeight, "dynamic codec Gaussian kernel height")
	dev := fs.Float64("dev", codec.DefaultGaussianDeviation, "dynamic codec Gaussian kernel deviation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		usage()
		return fmt.Errorf("decompress: want <input> <output>")
	}
	input, output := fs.Arg(0), fs.Arg(1)

	data, err := os.ReadFile(input)
	if err != nil {
		log.Debug("decompress failed", "err", err)
		fmt.Fprintln(os.Stderr, "Decompression failed")
		return err
	}

	g, err := decodeAt(codecLevel(*level), data, *height, *dev)
	if err != nil {
		log.Debug("decompress failed", "err", err)
		fmt.Fprintln(os.Stderr, "Decompression failed")
		return err
	}
	if err := os.WriteFile(output, []byte(g.String()), 0o644); err != nil {
		log.Debug("decompress failed", "err", err)
		fmt.Fprintln(os.Stderr, "Decompression failed")
		return err
	}
	return nil
}

func encodeAt(level codecLevel, g *game.Game, height, dev float64) ([]byte, error) {
	switch level {
	case levelFallback:
		return codec.EncodeFallback(g)
	case levelStatic:
		return codec.EncodeStatic(g)
	case levelDynamic:
		return codec.EncodeDynamic(g, height, dev)
	default:
		return nil, fmt.Errorf("unknown codec level %d", level)
	}
}

func decodeAt(level codecLevel, data []byte, height, dev float64) (*game.Game, error) {
	switch level {
	case levelFallback:
		return codec.DecodeFallback(data)
	case levelStatic:
		return codec.DecodeStatic(data)
	case levelDynamic:
		return codec.DecodeDynamic(data, height, dev)
	default:
		return nil, fmt.Errorf("unknown codec level %d", level)
	}
}

func runGenAlgo(args []string) error {
	if len(args) != 11 {
		usage()
		return fmt.Errorf("gen-algo: want 11 positional arguments, got %d", len(args))
	}

	initPop, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("gen-algo: init_pop: %w", err)
	}
	nGamesArg := args[1]
	generations, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("gen-algo: generations: %w", err)
	}
	mutationRate, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		return fmt.Errorf("gen-algo: mutation_rate: %w", err)
	}
	tournamentSize, err := strconv.Atoi(args[4])
	if err != nil {
		return fmt.Errorf("gen-algo: tournament_size: %w", err)
	}
	hMin, err := strconv.ParseFloat(args[5], 64)
	if err != nil {
		return fmt.Errorf("gen-algo: h_min: %w", err)
	}
	hMax, err := strconv.ParseFloat(args[6], 64)
	if err != nil {
		return fmt.Errorf("gen-algo: h_max: %w", err)
	}
	devMin, err := strconv.ParseFloat(args[7], 64)
	if err != nil {
		return fmt.Errorf("gen-algo: dev_min: %w", err)
	}
	devMax, err := strconv.ParseFloat(args[8], 64)
	if err != nil {
		return fmt.Errorf("gen-algo: dev_max: %w", err)
	}
	inputDB := args[9]
	outputLog := args[10]

	raw, err := os.ReadFile(inputDB)
	if err != nil {
		return fmt.Errorf("gen-algo: reading corpus: %w", err)
	}
	corpus := bench.NewCorpus(bytes.NewReader(raw))
	var games []string
	for g := range corpus.Games() {
		games = append(games, g)
	}
	if nGamesArg != "all" {
		n, err := strconv.Atoi(nGamesArg)
		if err != nil {
			return fmt.Errorf("gen-algo: n_games: %w", err)
		}
		if n < len(games) {
			games = games[:n]
		}
	}

	logFile, err := os.Create(outputLog)
	if err != nil {
		return fmt.Errorf("gen-algo: creating output log: %w", err)
	}
	defer logFile.Close()

	cfg := ga.Config{
		InitialPopulation: initPop,
		Generations:       generations,
		MutationRate:      mutationRate,
		TournamentSize:    tournamentSize,
		HeightMin:         hMin,
		HeightMax:         hMax,
		DeviationMin:      devMin,
		DeviationMax:      devMax,
	}

	_, err = ga.Search(context.Background(), cfg, games, nil, func(e ga.LogEntry) {
		fmt.Fprintln(logFile, e.String())
	})
	if err != nil {
		return fmt.Errorf("gen-algo: search: %w", err)
	}
	return nil
}
