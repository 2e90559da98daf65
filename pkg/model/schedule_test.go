package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSchedule_MarshalEmptyListsNotNull(t *testing.T) {
	sched := Schedule{
		Order:         []string{"a"},
		PriorityBumps: []PriorityBump{},
		Deferrals:     []string{},
		Cancellations: []string{},
		Confidence:    0.5,
	}

	data, err := json.Marshal(sched)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(data)

	for _, want := range []string{`"priority_bumps":[]`, `"deferrals":[]`, `"cancellations":[]`} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %s: %s", want, body)
		}
	}
	if !strings.Contains(body, `"metadata":null`) {
		t.Errorf("nil metadata should serialize as null: %s", body)
	}
}

func TestSchedule_MarshalMetadata(t *testing.T) {
	sched := Schedule{
		Order:      []string{"b", "a"},
		Confidence: 0.6,
		Metadata: &ScheduleMetadata{
			InitialOrder: []string{"a", "b"},
			Improved:     true,
		},
	}

	data, err := json.Marshal(sched)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	meta, ok := decoded["metadata"].(map[string]any)
	if !ok {
		t.Fatalf("metadata = %v, want object", decoded["metadata"])
	}
	if meta["improved"] != true {
		t.Errorf("improved = %v, want true", meta["improved"])
	}
	initial, ok := meta["initial_order"].([]any)
	if !ok || len(initial) != 2 || initial[0] != "a" {
		t.Errorf("initial_order = %v, want [a b]", meta["initial_order"])
	}
}

func TestSchedule_WireKeys(t *testing.T) {
	data, err := json.Marshal(Schedule{Order: []string{}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"order", "priority_bumps", "deferrals", "cancellations", "confidence", "metadata"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing wire key %q in %s", key, data)
		}
	}
	if len(decoded) != 6 {
		t.Errorf("wire keys = %d, want 6: %s", len(decoded), data)
	}
}
