package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker"

	"github.com/me/schedopt/pkg/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fastRetry keeps test retries in the millisecond range.
func fastRetry() RetryConfig {
	return RetryConfig{
		InitialInterval:     time.Millisecond,
		MaxInterval:         5 * time.Millisecond,
		MaxElapsedTime:      2 * time.Second,
		Multiplier:          2.0,
		RandomizationFactor: 0,
	}
}

func scheduleJSON(order ...string) []byte {
	data, _ := json.Marshal(model.Schedule{
		Order:         order,
		PriorityBumps: []model.PriorityBump{},
		Deferrals:     []string{},
		Cancellations: []string{},
		Confidence:    0.5,
	})
	return data
}

func testInstance() *model.Instance {
	return &model.Instance{
		Tasks:   []model.Task{{ID: "a"}, {ID: "b"}},
		Horizon: model.Horizon{Capacity: 2},
	}
}

func TestOptimize_Success(t *testing.T) {
	var gotPath string
	var gotBody model.Instance
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.Write(scheduleJSON("a", "b"))
	}))
	defer ts.Close()

	c := New(ts.URL, testLogger(), WithRetryConfig(fastRetry()))
	sched, err := c.Optimize(context.Background(), testInstance())
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}

	if gotPath != "/optimize" {
		t.Errorf("path = %q, want /optimize", gotPath)
	}
	if len(gotBody.Tasks) != 2 {
		t.Errorf("server saw %d tasks, want 2", len(gotBody.Tasks))
	}
	if !slices.Equal(sched.Order, []string{"a", "b"}) {
		t.Errorf("order = %v, want [a b]", sched.Order)
	}
	if sched.Confidence != 0.5 {
		t.Errorf("confidence = %v, want 0.5", sched.Confidence)
	}
}

func TestOptimize_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Write(scheduleJSON("a", "b"))
	}))
	defer ts.Close()

	c := New(ts.URL, testLogger(), WithRetryConfig(fastRetry()))
	sched, err := c.Optimize(context.Background(), testInstance())
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}
	if len(sched.Order) != 2 {
		t.Errorf("order = %v, want 2 entries", sched.Order)
	}
}

func TestOptimize_ClientErrorsArePermanent(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(model.NewValidationError("invalid JSON body"))
	}))
	defer ts.Close()

	c := New(ts.URL, testLogger(), WithRetryConfig(fastRetry()))
	_, err := c.Optimize(context.Background(), testInstance())
	if err == nil {
		t.Fatal("expected error")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1 (no retry on 4xx)", got)
	}

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want StatusError", err)
	}
	if se.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", se.StatusCode)
	}
	if se.APIErr == nil || se.APIErr.Code != model.ErrValidation {
		t.Errorf("api error = %+v, want VALIDATION_ERROR", se.APIErr)
	}
}

func TestOptimize_InstanceTimeoutHonored(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write(scheduleJSON("a"))
	}))
	defer ts.Close()

	timeout := int64(20)
	inst := testInstance()
	inst.TimeoutMS = &timeout

	c := New(ts.URL, testLogger(), WithRetryConfig(fastRetry()))
	_, err := c.Optimize(context.Background(), inst)
	if err == nil {
		t.Fatal("expected deadline error")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want context.DeadlineExceeded", err)
	}
}

func TestOptimize_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := New(ts.URL, testLogger(), WithRetryConfig(fastRetry()))

	// The first call burns through five failing attempts, tripping the
	// breaker mid-retry.
	if _, err := c.Optimize(context.Background(), testInstance()); err == nil {
		t.Fatal("expected error")
	}
	before := calls.Load()
	if before != 5 {
		t.Errorf("calls = %d, want 5 before the breaker opens", before)
	}

	_, err := c.Optimize(context.Background(), testInstance())
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("error = %v, want gobreaker.ErrOpenState", err)
	}
	if calls.Load() != before {
		t.Errorf("calls = %d, want %d (open breaker must not hit the server)", calls.Load(), before)
	}
}

func TestHealth(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/healthz" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","version":"0.1.0","go_version":"go1.24.0","uptime":"5s"}`))
	}))
	defer ts.Close()

	c := New(ts.URL, testLogger())
	health, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if health.Status != "healthy" || health.Version != "0.1.0" {
		t.Errorf("health = %+v", health)
	}
}

func TestHealth_ServerDown(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	c := New(ts.URL, testLogger())
	_, err := c.Health(context.Background())
	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("error = %v, want StatusError 503", err)
	}
}
