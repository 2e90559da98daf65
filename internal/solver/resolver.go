package solver

import (
	"sort"

	"github.com/me/schedopt/pkg/model"
)

// Resolve orders tasks so that every dependency naming a task in the set
// is placed before its dependents. Among ready tasks, higher priority
// goes first; equal priorities keep input order. Dependencies on absent
// ids count as satisfied. Members of dependency cycles never become
// ready and are appended in input order once the frontier drains, so
// Resolve returns a complete order for any input and never fails.
//
// Duplicate ids keep their first input position and last declared
// attributes, and appear once in the output.
func Resolve(tasks []model.Task) []string {
	ids := make([]string, 0, len(tasks))
	position := make(map[string]int, len(tasks))
	priority := make(map[string]int, len(tasks))
	declared := make(map[string][]string, len(tasks))

	for _, t := range tasks {
		if _, seen := position[t.ID]; !seen {
			position[t.ID] = len(ids)
			ids = append(ids, t.ID)
		}
		priority[t.ID] = t.Priority
		declared[t.ID] = t.DependsOn
	}

	// Pending sets hold only dependencies present in the task set;
	// anything else is vacuously satisfied. A self-reference stays
	// pending forever and falls through to the cycle append.
	pending := make(map[string]map[string]struct{}, len(ids))
	for _, id := range ids {
		set := make(map[string]struct{}, len(declared[id]))
		for _, dep := range declared[id] {
			if _, present := position[dep]; present {
				set[dep] = struct{}{}
			}
		}
		pending[id] = set
	}

	ready := make([]string, 0, len(ids))
	queued := make(map[string]bool, len(ids))
	for _, id := range ids {
		if len(pending[id]) == 0 {
			ready = append(ready, id)
			queued[id] = true
		}
	}

	order := make([]string, 0, len(ids))
	placed := make(map[string]bool, len(ids))
	for len(ready) > 0 {
		sort.Slice(ready, func(i, j int) bool {
			if priority[ready[i]] != priority[ready[j]] {
				return priority[ready[i]] > priority[ready[j]]
			}
			return position[ready[i]] < position[ready[j]]
		})
		next := ready[0]
		ready = ready[1:]
		order = append(order, next)
		placed[next] = true

		for _, id := range ids {
			if placed[id] || queued[id] {
				continue
			}
			if _, ok := pending[id][next]; ok {
				delete(pending[id], next)
				if len(pending[id]) == 0 {
					ready = append(ready, id)
					queued[id] = true
				}
			}
		}
	}

	// Whatever never became ready sits on a cycle.
	for _, id := range ids {
		if !placed[id] {
			order = append(order, id)
		}
	}
	return order
}
