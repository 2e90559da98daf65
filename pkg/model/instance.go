package model

// Task is one schedulable unit in an optimization request.
//
// DependsOn may name ids absent from the request; the solver treats such
// references as already satisfied. Resources, DeadlineMS and DurationMS
// are carried for wire compatibility and do not influence the computed
// order.
type Task struct {
	ID         string   `json:"id"`
	DependsOn  []string `json:"depends_on,omitempty"`
	Priority   int      `json:"priority"`
	Write      bool     `json:"write"`
	Resources  []string `json:"resources,omitempty"`
	DeadlineMS *int64   `json:"deadline_ms,omitempty"`
	DurationMS *int64   `json:"duration_ms,omitempty"`
}

// Horizon describes the execution window tasks are scheduled into.
// Capacity is the bucket size used by the conflict cost; WriteCap is the
// number of writers a bucket admits before the weighted comparison cost
// charges for contention. Buckets is accepted on the wire but the solver
// derives the bucket count from the sequence length.
type Horizon struct {
	Buckets  int `json:"buckets,omitempty"`
	Capacity int `json:"capacity"`
	WriteCap int `json:"write_cap,omitempty"`
}

// EffectiveCapacity returns the bucket size, treating absent or
// non-positive values as 1.
func (h Horizon) EffectiveCapacity() int {
	if h.Capacity < 1 {
		return 1
	}
	return h.Capacity
}

// EffectiveWriteCap returns the writers allowed per bucket, treating
// absent or non-positive values as 1.
func (h Horizon) EffectiveWriteCap() int {
	if h.WriteCap < 1 {
		return 1
	}
	return h.WriteCap
}

// Weights tunes the weighted cost used when comparing schedules.
// The conflict cost driving the optimizer ignores them. Fairness and
// ReorderCost are accepted on the wire but not scored yet.
type Weights struct {
	Lateness    float64 `json:"lateness"`
	Priority    float64 `json:"priority"`
	Fairness    float64 `json:"fairness"`
	ReorderCost float64 `json:"reorder_cost"`
}

// IsZero reports whether no weight was supplied.
func (w Weights) IsZero() bool {
	return w == Weights{}
}

// DefaultWeights returns the weights used when a request supplies none.
func DefaultWeights() Weights {
	return Weights{Lateness: 1, Priority: 1, Fairness: 0.5, ReorderCost: 0.1}
}

// Instance is one optimization request: the tasks to order and the
// horizon they run in. Seed and MaxIter, when present, override the
// solver's configured annealing parameters for this call only. TimeoutMS
// is a deadline hint honored by the HTTP client.
type Instance struct {
	Tasks     []Task  `json:"tasks"`
	Horizon   Horizon `json:"horizon"`
	Weights   Weights `json:"weights"`
	Seed      *int64  `json:"seed,omitempty"`
	MaxIter   *int    `json:"max_iter,omitempty"`
	TimeoutMS *int64  `json:"timeout_ms,omitempty"`
}

// TaskIDs returns the task ids in input order. Duplicate ids keep their
// first position and appear once.
func (in *Instance) TaskIDs() []string {
	ids := make([]string, 0, len(in.Tasks))
	seen := make(map[string]bool, len(in.Tasks))
	for _, t := range in.Tasks {
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		ids = append(ids, t.ID)
	}
	return ids
}

// WriteFlags returns the write flag per task id. On duplicate ids the
// last declaration wins.
func (in *Instance) WriteFlags() map[string]bool {
	flags := make(map[string]bool, len(in.Tasks))
	for _, t := range in.Tasks {
		flags[t.ID] = t.Write
	}
	return flags
}
