package server

import (
	"encoding/json"
	"net/http"

	"github.com/me/schedopt/internal/solver"
	"github.com/me/schedopt/pkg/model"
)

// handleOptimize decodes an Instance, solves it and responds with the
// Schedule. A body that is not valid JSON is the only client error; any
// decodable instance, however degenerate, produces a schedule.
func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var inst model.Instance
	if err := json.NewDecoder(r.Body).Decode(&inst); err != nil {
		respondError(w, http.StatusBadRequest, model.NewValidationError("invalid JSON body: "+err.Error()))
		return
	}

	sched, err := s.optimizer.Optimize(r.Context(), &inst)
	if err != nil {
		s.logger.Error("optimize failed", "request_id", reqID, "error", err)
		respondError(w, http.StatusInternalServerError, &model.APIError{
			Code:    model.ErrInternal,
			Message: "optimization failed",
		})
		return
	}

	writes := inst.WriteFlags()
	capacity := inst.Horizon.EffectiveCapacity()
	s.logger.Info("schedule optimized",
		"request_id", reqID,
		"tasks", len(inst.Tasks),
		"capacity", capacity,
		"cost", solver.ConflictCost(sched.Order, writes, capacity),
		"confidence", sched.Confidence,
	)

	writeJSON(w, http.StatusOK, sched)
}
