package solver

import (
	"context"
	"log/slog"
	"slices"

	"github.com/me/schedopt/pkg/model"
)

// Confidence values reported on schedules. Two-valued on purpose: the
// service distinguishes "annealing changed the order" from "resolver
// order stood", nothing finer.
const (
	confidenceImproved = 0.6
	confidenceBaseline = 0.5
)

// Optimizer produces a Schedule for an Instance. Implementations must
// not mutate the instance and must be safe for concurrent use.
type Optimizer interface {
	Optimize(ctx context.Context, inst *model.Instance) (*model.Schedule, error)
}

// Annealing is the standard Optimizer: precedence resolution followed by
// annealing refinement of the bucketed conflict cost. It never returns
// an error; malformed inputs degrade to a best-effort order instead.
type Annealing struct {
	params Params
	logger *slog.Logger
}

// NewAnnealing creates an Annealing optimizer. params supplies the
// process defaults; instances carrying seed or max_iter override them
// per call.
func NewAnnealing(params Params, logger *slog.Logger) *Annealing {
	return &Annealing{
		params: params,
		logger: logger.With("component", "solver"),
	}
}

// Optimize implements Optimizer.
func (a *Annealing) Optimize(_ context.Context, inst *model.Instance) (*model.Schedule, error) {
	p := a.params
	if inst.Seed != nil {
		p.Seed = *inst.Seed
	}
	if inst.MaxIter != nil && *inst.MaxIter > 0 {
		p.Iterations = *inst.MaxIter
	}

	initial := Resolve(inst.Tasks)
	writes := inst.WriteFlags()
	capacity := inst.Horizon.EffectiveCapacity()

	final := Anneal(initial, writes, capacity, p)
	improved := !slices.Equal(final, initial)

	confidence := confidenceBaseline
	if improved {
		confidence = confidenceImproved
	}

	a.logger.Debug("instance solved",
		"tasks", len(inst.Tasks),
		"capacity", capacity,
		"initial_cost", ConflictCost(initial, writes, capacity),
		"final_cost", ConflictCost(final, writes, capacity),
		"improved", improved,
	)

	return &model.Schedule{
		Order:         final,
		PriorityBumps: []model.PriorityBump{},
		Deferrals:     []string{},
		Cancellations: []string{},
		Confidence:    confidence,
		Metadata: &model.ScheduleMetadata{
			InitialOrder: initial,
			Improved:     improved,
		},
	}, nil
}

// Classical resolves precedence and stops. It is the baseline the
// annealing path is measured against: baseline confidence, no metadata.
type Classical struct{}

// Optimize implements Optimizer.
func (Classical) Optimize(_ context.Context, inst *model.Instance) (*model.Schedule, error) {
	return &model.Schedule{
		Order:         Resolve(inst.Tasks),
		PriorityBumps: []model.PriorityBump{},
		Deferrals:     []string{},
		Cancellations: []string{},
		Confidence:    confidenceBaseline,
	}, nil
}
