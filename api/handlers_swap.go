package api

import (
	"errors"
	"net/http"

	"github.com/jake1318/afternew/swap"
)

type quoteRequest struct {
	CoinInType   string `json:"coinInType"`
	CoinOutType  string `json:"coinOutType"`
	CoinInAmount string `json:"coinInAmount"`
}

type transactionRequest struct {
	WalletAddress string   `json:"walletAddress"`
	RouteID       string   `json:"routeId"`
	Slippage      *float64 `json:"slippage"`
}

// handleQuote fetches a trade route for the requested pair and amount
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if !s.decodeJSONBody(w, r, &req) {
		return
	}

	if req.CoinInType == "" || req.CoinOutType == "" || req.CoinInAmount == "" {
		s.sendError(w, http.StatusBadRequest, "Missing required parameters",
			"coinInType, coinOutType, and coinInAmount are required")
		return
	}

	quote, err := s.swapService.GetQuote(r.Context(), req.CoinInType, req.CoinOutType, req.CoinInAmount)
	if err != nil {
		if errors.Is(err, swap.ErrMissingCoinType) || errors.Is(err, swap.ErrInvalidAmount) {
			s.sendError(w, http.StatusBadRequest, "Invalid parameters", err.Error())
			return
		}
		s.sendError(w, http.StatusInternalServerError, "Failed to get quote", err.Error())
		return
	}

	s.sendJSONResponse(w, quote)
}

// handleTransaction builds a transaction for a previously quoted route
func (s *Server) handleTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if !s.decodeJSONBody(w, r, &req) {
		return
	}

	if req.WalletAddress == "" || req.RouteID == "" {
		s.sendError(w, http.StatusBadRequest, "Missing required parameters",
			"walletAddress and routeId are required")
		return
	}

	// Slippage is a percentage; default to 1% when the caller omits it
	slippage := 1.0
	if req.Slippage != nil {
		slippage = *req.Slippage
	}

	tx, err := s.swapService.BuildTransaction(r.Context(), req.WalletAddress, req.RouteID, slippage)
	if err != nil {
		switch {
		case errors.Is(err, swap.ErrRouteNotFound):
			s.sendError(w, http.StatusNotFound, "Route not found", err.Error())
		case errors.Is(err, swap.ErrMissingTxParams):
			s.sendError(w, http.StatusBadRequest, "Missing required parameters", err.Error())
		default:
			s.sendError(w, http.StatusInternalServerError, "Failed to build transaction", err.Error())
		}
		return
	}

	s.sendJSONResponse(w, tx)
}
