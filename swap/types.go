package swap

import (
	"time"

	"github.com/jake1318/afternew/aftermath"
)

// CoinAmount restates one side of a trade in a response
type CoinAmount struct {
	Type      string `json:"type"`
	Amount    string `json:"amount"`
	Formatted string `json:"formatted,omitempty"`
}

// QuoteResponse is the answer to a quote request. Steps is always >= 1.
type QuoteResponse struct {
	RouteID     string     `json:"routeId"`
	CoinIn      CoinAmount `json:"coinIn"`
	CoinOut     CoinAmount `json:"coinOut"`
	SpotPrice   float64    `json:"spotPrice"`
	PriceImpact float64    `json:"priceImpact"`
	Steps       int        `json:"steps"`
}

// Transaction build methods
const (
	MethodRouteBased = "route-based"
	MethodSimpleSwap = "simple-swap"
)

// TransactionResponse carries the built transaction, which construction
// method produced it, and a restatement of the trade for confirmation
type TransactionResponse struct {
	Transaction aftermath.TransactionPayload `json:"transaction"`
	Method      string                       `json:"method"`
	CoinIn      CoinAmount                   `json:"coinIn"`
	CoinOut     CoinAmount                   `json:"coinOut"`
}

// routeEntry is what the route cache stores per issued route id
type routeEntry struct {
	Route     *aftermath.CompleteRoute `json:"route"`
	CreatedAt time.Time                `json:"createdAt"`
}
