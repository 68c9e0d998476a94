package genetic

import (
	"context"
	"math/rand/v2"
	"sort"
)

// sortPopulation orders by score then birth generation. Stable so genomes
// that tie on both keep their relative order.
func sortPopulation(pop []*Genome) {
	sort.SliceStable(pop, func(i, j int) bool {
		return better(pop[i], pop[j])
	})
}

// tournament samples size genomes uniformly with replacement and keeps the best
func tournament(pop []*Genome, size int, rng *rand.Rand) *Genome {
	winner := pop[rng.IntN(len(pop))]
	for i := 1; i < size; i++ {
		contender := pop[rng.IntN(len(pop))]
		if better(contender, winner) {
			winner = contender
		}
	}
	return winner
}

// crossover builds a child into a fresh gene slice. With probability rate
// each slot independently takes the gene of one parent or the other,
// otherwise the first parent is copied.
func crossover(a, b *Genome, rate float64, rng *rand.Rand, born int) *Genome {
	genes := make([]Gene, len(a.genes))
	if rng.Float64() < rate {
		for i := range genes {
			if rng.IntN(2) == 0 {
				genes[i] = a.genes[i]
			} else {
				genes[i] = b.genes[i]
			}
		}
	} else {
		copy(genes, a.genes)
	}
	return &Genome{genes: genes, born: born}
}

// mutate redraws each gene of a freshly built child with probability rate.
// It is the only operator that brings recipes absent from the population.
func mutate(ctx context.Context, child *Genome, pools *Pools, rate float64, rng *rand.Rand) error {
	if rate == 0 {
		return nil
	}
	for i := range child.genes {
		if rng.Float64() >= rate {
			continue
		}
		gene, err := pools.Draw(ctx, i, rng)
		if err != nil {
			return err
		}
		child.genes[i] = gene
	}
	return nil
}
