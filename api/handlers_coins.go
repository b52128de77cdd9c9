package api

import (
	"net/http"
	"strings"
)

// handleSupportedCoins lists the coin types the router can trade
func (s *Server) handleSupportedCoins(w http.ResponseWriter, r *http.Request) {
	coins, err := s.swapService.SupportedCoins(r.Context())
	if err != nil {
		s.sendError(w, http.StatusInternalServerError, "Failed to fetch supported coins", err.Error())
		return
	}

	s.sendJSONResponse(w, map[string]interface{}{"supportedCoins": coins})
}

// handlePrices returns USD prices for a comma-separated coins parameter
func (s *Server) handlePrices(w http.ResponseWriter, r *http.Request) {
	coinsParam := r.URL.Query().Get("coins")
	if coinsParam == "" {
		s.sendError(w, http.StatusBadRequest, "Missing required parameter",
			"coins query parameter is required")
		return
	}

	coinTypes := make([]string, 0)
	for _, part := range strings.Split(coinsParam, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			coinTypes = append(coinTypes, trimmed)
		}
	}
	if len(coinTypes) == 0 {
		s.sendError(w, http.StatusBadRequest, "Missing required parameter",
			"coins query parameter is required")
		return
	}

	prices, err := s.pricesService.GetPrices(r.Context(), coinTypes)
	if err != nil {
		s.sendError(w, http.StatusInternalServerError, "Failed to get coin prices", err.Error())
		return
	}

	s.sendJSONResponse(w, prices)
}
