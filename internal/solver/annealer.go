package solver

import "math/rand"

const (
	// DefaultSeed makes identical requests yield identical schedules.
	DefaultSeed int64 = 42
	// DefaultIterations bounds the annealing search per request.
	DefaultIterations = 200

	// Probability of keeping a cost-increasing swap.
	uphillChance = 0.05
)

// Params configures the annealing search.
type Params struct {
	Seed       int64
	Iterations int
}

// DefaultParams returns the standard search parameters.
func DefaultParams() Params {
	return Params{Seed: DefaultSeed, Iterations: DefaultIterations}
}

// ConflictCost scores a sequence by write contention: the sequence is
// cut into consecutive buckets of capacity slots, and every writer
// beyond the first in a bucket costs one point. Capacity values below 1
// count as 1. Ids missing from writes count as readers.
func ConflictCost(seq []string, writes map[string]bool, capacity int) int {
	if capacity < 1 {
		capacity = 1
	}
	cost := 0
	for start := 0; start < len(seq); start += capacity {
		end := start + capacity
		if end > len(seq) {
			end = len(seq)
		}
		writers := 0
		for _, id := range seq[start:end] {
			if writes[id] {
				writers++
			}
		}
		if writers > 1 {
			cost += writers - 1
		}
	}
	return cost
}

// Anneal searches for a permutation of order with lower conflict cost by
// random pairwise swaps. A swap that does not raise the cost is kept; a
// worsening swap is kept with probability uphillChance; everything else
// is reverted. The best order seen is returned, so the result never
// costs more than the input.
//
// The generator is seeded per call from p.Seed, keeping equal inputs on
// equal outputs with no global state. Drawing the same position twice
// consumes the iteration.
func Anneal(order []string, writes map[string]bool, capacity int, p Params) []string {
	best := make([]string, len(order))
	copy(best, order)
	if len(order) < 2 || p.Iterations <= 0 {
		return best
	}
	if capacity < 1 {
		capacity = 1
	}

	cur := make([]string, len(order))
	copy(cur, order)
	curCost := ConflictCost(cur, writes, capacity)
	bestCost := curCost

	rng := rand.New(rand.NewSource(p.Seed))
	for it := 0; it < p.Iterations; it++ {
		i, j := rng.Intn(len(cur)), rng.Intn(len(cur))
		if i == j {
			continue
		}
		cur[i], cur[j] = cur[j], cur[i]
		cost := ConflictCost(cur, writes, capacity)
		if cost <= curCost || rng.Float64() < uphillChance {
			curCost = cost
			if cost < bestCost {
				bestCost = cost
				copy(best, cur)
			}
		} else {
			cur[i], cur[j] = cur[j], cur[i]
		}
	}
	return best
}
