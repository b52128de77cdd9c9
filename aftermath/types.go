package aftermath

import "encoding/json"

// RouteCoin is one side of a route or step: a coin type and an amount in
// base units, serialized as a decimal string the way the upstream API
// renders bigints
type RouteCoin struct {
	CoinType string `json:"coinType"`
	Amount   string `json:"amount"`
}

// RouteStep is a single hop of a trade route
type RouteStep struct {
	Type    string    `json:"type"`
	CoinIn  RouteCoin `json:"coinIn"`
	CoinOut RouteCoin `json:"coinOut"`
	Route   string    `json:"route,omitempty"`
}

// CompleteRoute is the routing engine's answer for a given input amount.
// PriceImpact is optional; older router versions omit it.
type CompleteRoute struct {
	CoinIn      RouteCoin   `json:"coinIn"`
	CoinOut     RouteCoin   `json:"coinOut"`
	SpotPrice   float64     `json:"spotPrice"`
	PriceImpact *float64    `json:"priceImpact,omitempty"`
	Steps       []RouteStep `json:"steps"`
}

// PoolCoin describes one constituent coin of a liquidity pool
type PoolCoin struct {
	Balance  string  `json:"balance"`
	Weight   float64 `json:"weight"`
	Decimals int     `json:"decimals"`
}

// Pool is a liquidity pool as listed by the pools endpoint
type Pool struct {
	ObjectID   string              `json:"objectId"`
	Name       string              `json:"name"`
	LpCoinType string              `json:"lpCoinType"`
	TVL        float64             `json:"tvl"`
	APR        float64             `json:"apr"`
	Coins      map[string]PoolCoin `json:"coins"`
}

// tradeRouteRequest is the route-finder request body
type tradeRouteRequest struct {
	CoinInType   string `json:"coinInType"`
	CoinOutType  string `json:"coinOutType"`
	CoinInAmount string `json:"coinInAmount"`
}

// routeTxRequest asks for a transaction built from a complete route
type routeTxRequest struct {
	WalletAddress string         `json:"walletAddress"`
	CompleteRoute *CompleteRoute `json:"completeRoute"`
	Slippage      float64        `json:"slippage"`
}

// swapTxRequest asks for a direct swap transaction, bypassing the route
// object
type swapTxRequest struct {
	WalletAddress string  `json:"walletAddress"`
	CoinInType    string  `json:"coinInType"`
	CoinOutType   string  `json:"coinOutType"`
	CoinInAmount  string  `json:"coinInAmount"`
	Slippage      float64 `json:"slippage"`
}

// coinsRequest is the body shared by the decimals and price endpoints
type coinsRequest struct {
	Coins []string `json:"coins"`
}

// volumeResponse is the pool 24h volume payload
type volumeResponse struct {
	Volume float64 `json:"volume"`
}

// priceInfo is one entry of the price endpoint response
type priceInfo struct {
	Price float64 `json:"price"`
}

// TransactionPayload is an opaque serialized transaction block, passed
// through to the caller for wallet signing
type TransactionPayload = json.RawMessage
