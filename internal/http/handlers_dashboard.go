package http

import (
	"net/http"
	"time"

	applog "cartao/internal/log"
)

const dashboardCacheKey = "dashboard"

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if sum, found := s.dashboardCache.Get(dashboardCacheKey); found {
		applog.FromContext(r.Context()).DebugContext(r.Context(), "Dashboard cache hit")
		writeJSON(w, http.StatusOK, toDashboardJSON(sum))
		return
	}

	sum, err := s.ledger.Dashboard(r.Context(), time.Now())
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.dashboardCache.Set(dashboardCacheKey, sum)
	writeJSON(w, http.StatusOK, toDashboardJSON(sum))
}
