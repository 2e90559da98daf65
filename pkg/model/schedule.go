package model

// PriorityBump records a priority adjustment suggested by an optimizer.
// Part of the wire contract; the current solver never emits one.
type PriorityBump struct {
	ID          string `json:"id"`
	NewPriority int    `json:"new_priority"`
}

// ScheduleMetadata reports how a schedule was produced: the resolver's
// order before annealing and whether annealing changed it.
type ScheduleMetadata struct {
	InitialOrder []string `json:"initial_order"`
	Improved     bool     `json:"improved"`
}

// Schedule is the result of one optimization call. Order contains every
// input task id exactly once. PriorityBumps, Deferrals and Cancellations
// are reserved adjustment lists, always present and empty, never null.
// Confidence is 0.6 when annealing improved on the resolver's order and
// 0.5 otherwise. Optimizers that skip annealing leave Metadata nil,
// which serializes as JSON null.
type Schedule struct {
	Order         []string          `json:"order"`
	PriorityBumps []PriorityBump    `json:"priority_bumps"`
	Deferrals     []string          `json:"deferrals"`
	Cancellations []string          `json:"cancellations"`
	Confidence    float64           `json:"confidence"`
	Metadata      *ScheduleMetadata `json:"metadata"`
}
