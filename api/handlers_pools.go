package api

import (
	"net/http"
)

// handleTopPoolCoins returns the coin types present in the top pools by
// volume
func (s *Server) handleTopPoolCoins(w http.ResponseWriter, r *http.Request) {
	s.sendJSONResponse(w, map[string]interface{}{
		"topPoolCoins": s.poolsService.TopPoolCoins(),
	})
}

// handlePools returns the pool dashboard snapshot
func (s *Server) handlePools(w http.ResponseWriter, r *http.Request) {
	s.sendJSONResponse(w, map[string]interface{}{
		"pools": s.poolsService.PoolList(),
	})
}

// handleBalances returns the aggregated portfolio of a wallet address
func (s *Server) handleBalances(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	if address == "" {
		s.sendError(w, http.StatusBadRequest, "Missing required parameter",
			"address query parameter is required")
		return
	}

	portfolio, err := s.balancesService.GetBalances(r.Context(), address)
	if err != nil {
		s.sendError(w, http.StatusInternalServerError, "Failed to get balances", err.Error())
		return
	}

	s.sendJSONResponse(w, portfolio)
}

// handleHealth reports process liveness and per-service readiness
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	services := map[string]string{
		"swap":     serviceStatus(s.swapService.Healthy()),
		"pools":    serviceStatus(s.poolsService.Healthy()),
		"prices":   serviceStatus(s.pricesService.Healthy()),
		"balances": serviceStatus(s.balancesService.Healthy()),
	}

	s.sendJSONResponse(w, map[string]interface{}{
		"status":      "ok",
		"initialized": s.poolsService.Initialized(),
		"services":    services,
	})
}

func serviceStatus(healthy bool) string {
	if healthy {
		return "up"
	}
	return "down"
}
