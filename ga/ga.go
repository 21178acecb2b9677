// Package ga implements the genetic-algorithm parameter search that tunes
// the dynamic Huffman codec's Gaussian kernel (height, deviation) against a
// corpus of games. The search is a pure function of its configuration and
// a random source; it proposes parameters but never alters the codec's
// canonical constants.
package ga

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/chesscodec/cgn/codec"
	"github.com/chesscodec/cgn/game"
	"golang.org/x/sync/errgroup"
)

// Individual is one candidate (height, deviation) pair.
type Individual struct {
	Height     float64
	Deviation  float64
	Fitness    float64 // average bits/move; lower is fitter
}

// Config parameterizes one run of the search.
type Config struct {
	InitialPopulation int
	Generations       int
	MutationRate      float64
	TournamentSize    int
	HeightMin, HeightMax       float64
	DeviationMin, DeviationMax float64
	// Workers bounds fitness-evaluation concurrency; 0 means unbounded.
	Workers int
}

// LogEntry is one evaluated individual, emitted for every member of the
// initial population (generation 0) and for every child of every later
// generation.
type LogEntry struct {
	Generation int
	Rank       int
	Height     float64
	Deviation  float64
	Fitness    float64
}

func (e LogEntry) String() string {
	return fmt.Sprintf("Generation: %d, Rank: %d, Height: %v, Dev: %v, Fitness: %v",
		e.Generation, e.Rank, e.Height, e.Deviation, e.Fitness)
}

// Search runs cfg.Generations rounds of tournament selection, crossover,
// and mutation over a population initialized uniformly within the
// configured ranges, scoring fitness as average bits/move over games
// (raw PGN texts, one game each, parsed here; unparseable texts are skipped)
// using the dynamic codec. It emits one LogEntry per evaluated individual
// via emit (the initial population as generation 0, then each generation's
// children), and returns the final generation.
func Search(ctx context.Context, cfg Config, games []string, rng *rand.Rand, emit func(LogEntry)) ([]Individual, error) {
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 2))
	}

	parsed := make([]*game.Game, 0, len(games))
	for _, text := range games {
		g, err := game.Parse(text)
		if err != nil {
			continue // skip unparseable games; the search tolerates a noisy corpus
		}
		parsed = append(parsed, g)
	}
	if len(parsed) == 0 {
		return nil, fmt.Errorf("ga: no parseable games in corpus")
	}

	pop := initPopulation(cfg, rng)
	if err := evaluate(ctx, cfg, pop, parsed); err != nil {
		return nil, err
	}
	logGeneration(0, pop, emit)

	for gen := 1; gen <= cfg.Generations; gen++ {
		parents := selectParents(cfg, pop, rng)
		pop = reproduce(cfg, parents, len(pop), rng)
		if err := evaluate(ctx, cfg, pop, parsed); err != nil {
			return nil, err
		}
		logGeneration(gen, pop, emit)
	}

	return pop, nil
}

func initPopulation(cfg Config, rng *rand.Rand) []Individual {
	pop := make([]Individual, cfg.InitialPopulation)
	for i := range pop {
		pop[i] = Individual{
			Height:    uniform(rng, cfg.HeightMin, cfg.HeightMax),
			Deviation: uniform(rng, cfg.DeviationMin, cfg.DeviationMax),
		}
	}
	return pop
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// evaluate scores every individual's fitness in parallel, one errgroup
// goroutine per individual, with at most cfg.Workers running at once when
// cfg.Workers > 0 (unbounded otherwise). Each goroutine encodes the games
// one after another; no single game's encode/decode path is parallelized.
func evaluate(ctx context.Context, cfg Config, pop []Individual, games []*game.Game) error {
	g, _ := errgroup.WithContext(ctx)
	if cfg.Workers > 0 {
		g.SetLimit(cfg.Workers)
	}
	for i := range pop {
		i := i
		g.Go(func() error {
			fitness, err := fitnessOf(pop[i], games)
			if err != nil {
				return err
			}
			pop[i].Fitness = fitness
			return nil
		})
	}
	return g.Wait()
}

// fitnessOf is the average bits/move the dynamic codec achieves over games
// using individual's (height, deviation), with headers cleared first so the
// score isolates move-body compression from header overhead, the same
// measurement bench.CollectDynamic reports as BitsPerMoveExcludingHeaders.
func fitnessOf(ind Individual, games []*game.Game) (float64, error) {
	var totalBits, totalMoves float64
	for _, gm := range games {
		if len(gm.Moves) == 0 {
			continue
		}
		headerless := *gm
		headerless.ClearHeaders()
		data, err := codec.EncodeDynamic(&headerless, ind.Height, ind.Deviation)
		if err != nil {
			return 0, fmt.Errorf("ga: fitness encode: %w", err)
		}
		totalBits += float64(len(data) * 8)
		totalMoves += float64(len(gm.Moves))
	}
	if totalMoves == 0 {
		return 0, fmt.Errorf("ga: corpus sample produced zero moves")
	}
	return totalBits / totalMoves, nil
}

// selectParents runs tournament selection: repeatedly sample
// cfg.TournamentSize distinct individuals (at most len(pop)) and keep the
// fittest, until floor(len(pop)/2) parents are chosen.
func selectParents(cfg Config, pop []Individual, rng *rand.Rand) []Individual {
	numParents := len(pop) / 2
	parents := make([]Individual, 0, numParents)
	size := min(max(cfg.TournamentSize, 1), len(pop))
	for len(parents) < numParents {
		entrants := rng.Perm(len(pop))[:size]
		best := pop[entrants[0]]
		for _, j := range entrants[1:] {
			if pop[j].Fitness < best.Fitness {
				best = pop[j]
			}
		}
		parents = append(parents, best)
	}
	return parents
}

// reproduce fills a new population of exactly populationSize children: each
// child averages two uniformly chosen parents' coordinates, then mutates
// each coordinate independently with probability cfg.MutationRate.
func reproduce(cfg Config, parents []Individual, populationSize int, rng *rand.Rand) []Individual {
	children := make([]Individual, populationSize)
	for i := range children {
		a := parents[rng.IntN(len(parents))]
		b := parents[rng.IntN(len(parents))]

		child := Individual{
			Height:    (a.Height + b.Height) / 2,
			Deviation: (a.Deviation + b.Deviation) / 2,
		}
		if rng.Float64() < cfg.MutationRate {
			child.Height = uniform(rng, cfg.HeightMin, cfg.HeightMax)
		}
		if rng.Float64() < cfg.MutationRate {
			child.Deviation = uniform(rng, cfg.DeviationMin, cfg.DeviationMax)
		}
		children[i] = child
	}
	return children
}

func logGeneration(gen int, pop []Individual, emit func(LogEntry)) {
	if emit == nil {
		return
	}
	for rank, ind := range pop {
		emit(LogEntry{Generation: gen, Rank: rank, Height: ind.Height, Deviation: ind.Deviation, Fitness: ind.Fitness})
	}
}
