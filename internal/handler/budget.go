package handler

import (
	"net/http"

	"github.com/globetrotter/planner/internal/api"
)

// GetBudget handles GET /trips/{tripId}/budget.
func (s *Server) GetBudget(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripId", tripNotFound)
	if !ok {
		return
	}
	sum, err := s.trips.Budget(r.Context(), id)
	if err != nil {
		s.fail(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, api.BudgetFrom(sum))
}
