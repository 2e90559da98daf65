package solver

import (
	"context"

	"github.com/me/schedopt/pkg/model"
)

// CompareResult reports a head-to-head run of two optimizers on one
// instance, both orders scored with the weighted cost.
type CompareResult struct {
	BaselineCost  int64           `json:"baseline_cost"`
	CandidateCost int64           `json:"candidate_cost"`
	Winner        string          `json:"winner"` // "candidate", "baseline" or "tie"
	Baseline      *model.Schedule `json:"baseline"`
	Candidate     *model.Schedule `json:"candidate"`
}

// WeightedCost scores an order against the instance's weights: each slot
// charges its position times the lateness weight, each task refunds its
// priority times the priority weight, and each bucket charges 10 per
// writer above the horizon's write cap. Weight factors are truncated to
// whole numbers before multiplying. Zero-valued weights fall back to
// model.DefaultWeights. Ids in the order but not in the task set count
// as priority-0 readers.
func WeightedCost(inst *model.Instance, order []string) int64 {
	w := inst.Weights
	if w.IsZero() {
		w = model.DefaultWeights()
	}

	priority := make(map[string]int, len(inst.Tasks))
	writes := make(map[string]bool, len(inst.Tasks))
	for _, t := range inst.Tasks {
		priority[t.ID] = t.Priority
		writes[t.ID] = t.Write
	}

	var cost int64
	for pos, id := range order {
		cost += int64(pos) * int64(w.Lateness)
		cost -= int64(priority[id]) * int64(w.Priority)
	}

	capacity := inst.Horizon.EffectiveCapacity()
	writeCap := inst.Horizon.EffectiveWriteCap()
	for start := 0; start < len(order); start += capacity {
		end := start + capacity
		if end > len(order) {
			end = len(order)
		}
		writers := 0
		for _, id := range order[start:end] {
			if writes[id] {
				writers++
			}
		}
		if writers > writeCap {
			cost += int64(writers-writeCap) * 10
		}
	}
	return cost
}

// Compare runs baseline and candidate on the instance and scores both
// orders with WeightedCost. A failing baseline degrades to the input
// task order with zero confidence; a failing candidate reuses the
// baseline's schedule, so the comparison itself never fails.
func Compare(ctx context.Context, baseline, candidate Optimizer, inst *model.Instance) CompareResult {
	base, err := baseline.Optimize(ctx, inst)
	if err != nil || base == nil {
		base = inputOrderSchedule(inst)
	}
	cand, err := candidate.Optimize(ctx, inst)
	if err != nil || cand == nil {
		cand = base
	}

	res := CompareResult{
		BaselineCost:  WeightedCost(inst, base.Order),
		CandidateCost: WeightedCost(inst, cand.Order),
		Baseline:      base,
		Candidate:     cand,
	}
	switch {
	case res.CandidateCost < res.BaselineCost:
		res.Winner = "candidate"
	case res.BaselineCost < res.CandidateCost:
		res.Winner = "baseline"
	default:
		res.Winner = "tie"
	}
	return res
}

// inputOrderSchedule is the last-resort schedule: tasks in request order,
// zero confidence.
func inputOrderSchedule(inst *model.Instance) *model.Schedule {
	return &model.Schedule{
		Order:         inst.TaskIDs(),
		PriorityBumps: []model.PriorityBump{},
		Deferrals:     []string{},
		Cancellations: []string{},
		Confidence:    0,
	}
}
