package aftermath

//go:generate mockgen -destination=../swap/mocks/aftermath.go -package=mocks github.com/jake1318/afternew/aftermath API

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	mainnetBaseURL = "https://aftermath.finance/api"
	testnetBaseURL = "https://testnet.aftermath.finance/api"

	connectionTimeout = 10 * time.Second
	requestTimeout    = 30 * time.Second

	// Public API allowance; kept below the documented per-IP limit
	requestsPerSecond = 10
)

// StatusHandler receives the outcome of each upstream request
type StatusHandler interface {
	OnRequest(status string)
}

// API is the surface of the routing backend the services depend on
type API interface {
	GetSupportedCoins(ctx context.Context) ([]string, error)
	GetCoinsToDecimals(ctx context.Context, coins []string) (map[string]int, error)
	GetCoinsToPrice(ctx context.Context, coins []string) (map[string]float64, error)
	GetAllPools(ctx context.Context) ([]Pool, error)
	GetPoolVolume24h(ctx context.Context, poolID string) (float64, error)
	GetCompleteTradeRoute(ctx context.Context, coinInType, coinOutType string, coinInAmount *big.Int) (*CompleteRoute, error)
	BuildTradeRouteTx(ctx context.Context, walletAddress string, route *CompleteRoute, slippage float64) (TransactionPayload, error)
	BuildSwapTx(ctx context.Context, walletAddress, coinInType, coinOutType, coinInAmount string, slippage float64) (TransactionPayload, error)
}

// Client talks to the Aftermath HTTP API for the selected network
type Client struct {
	baseURL       string
	httpClient    *http.Client
	limiter       *rate.Limiter
	statusHandler StatusHandler
}

// NewClient creates a client for the given network (MAINNET or TESTNET).
// overrideURL, when non-empty, replaces the network base URL; tests and
// self-hosted routers use it.
func NewClient(network, overrideURL string, statusHandler StatusHandler) *Client {
	baseURL := mainnetBaseURL
	if strings.EqualFold(network, "TESTNET") {
		baseURL = testnetBaseURL
	}
	if overrideURL != "" {
		baseURL = overrideURL
	}

	httpClient := &http.Client{
		Timeout: requestTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: connectionTimeout,
			}).DialContext,
		},
	}

	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		httpClient:    httpClient,
		limiter:       rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
		statusHandler: statusHandler,
	}
}

// GetSupportedCoins lists the coin types the router can trade
func (c *Client) GetSupportedCoins(ctx context.Context) ([]string, error) {
	var coins []string
	if err := c.doJSON(ctx, http.MethodGet, "/router/supported-coins", nil, &coins); err != nil {
		return nil, fmt.Errorf("fetching supported coins: %w", err)
	}
	return coins, nil
}

// GetCoinsToDecimals returns decimal precision per coin type
func (c *Client) GetCoinsToDecimals(ctx context.Context, coins []string) (map[string]int, error) {
	var decimals map[string]int
	if err := c.doJSON(ctx, http.MethodPost, "/coins/decimals", coinsRequest{Coins: coins}, &decimals); err != nil {
		return nil, fmt.Errorf("fetching coin decimals: %w", err)
	}
	return decimals, nil
}

// GetCoinsToPrice returns the USD price per coin type. Coins the feed does
// not know come back with a negative price upstream; those are dropped here.
func (c *Client) GetCoinsToPrice(ctx context.Context, coins []string) (map[string]float64, error) {
	var info map[string]priceInfo
	if err := c.doJSON(ctx, http.MethodPost, "/price-info", coinsRequest{Coins: coins}, &info); err != nil {
		return nil, fmt.Errorf("fetching coin prices: %w", err)
	}

	prices := make(map[string]float64, len(info))
	for coinType, entry := range info {
		if entry.Price >= 0 {
			prices[coinType] = entry.Price
		}
	}
	return prices, nil
}

// GetAllPools lists every liquidity pool
func (c *Client) GetAllPools(ctx context.Context) ([]Pool, error) {
	var pools []Pool
	if err := c.doJSON(ctx, http.MethodGet, "/pools", nil, &pools); err != nil {
		return nil, fmt.Errorf("fetching pools: %w", err)
	}
	return pools, nil
}

// GetPoolVolume24h returns the trailing 24h volume of one pool in USD
func (c *Client) GetPoolVolume24h(ctx context.Context, poolID string) (float64, error) {
	var resp volumeResponse
	path := "/pools/" + url.PathEscape(poolID) + "/volume-24hrs"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return 0, fmt.Errorf("fetching volume for pool %s: %w", poolID, err)
	}
	return resp.Volume, nil
}

// GetCompleteTradeRoute asks the router for a route converting coinInAmount
// of coinInType into coinOutType
func (c *Client) GetCompleteTradeRoute(ctx context.Context, coinInType, coinOutType string, coinInAmount *big.Int) (*CompleteRoute, error) {
	request := tradeRouteRequest{
		CoinInType:   coinInType,
		CoinOutType:  coinOutType,
		CoinInAmount: coinInAmount.String(),
	}

	var route CompleteRoute
	if err := c.doJSON(ctx, http.MethodPost, "/router/trade-route", request, &route); err != nil {
		return nil, fmt.Errorf("fetching trade route: %w", err)
	}
	return &route, nil
}

// BuildTradeRouteTx materializes a transaction from a complete route.
// Slippage is a fraction (0.01 for 1%).
func (c *Client) BuildTradeRouteTx(ctx context.Context, walletAddress string, route *CompleteRoute, slippage float64) (TransactionPayload, error) {
	request := routeTxRequest{
		WalletAddress: walletAddress,
		CompleteRoute: route,
		Slippage:      slippage,
	}

	var tx json.RawMessage
	if err := c.doJSON(ctx, http.MethodPost, "/router/transactions/trade", request, &tx); err != nil {
		return nil, fmt.Errorf("building route transaction: %w", err)
	}
	return TransactionPayload(tx), nil
}

// BuildSwapTx builds a direct swap transaction from the top-level coin
// pair, without a route object
func (c *Client) BuildSwapTx(ctx context.Context, walletAddress, coinInType, coinOutType, coinInAmount string, slippage float64) (TransactionPayload, error) {
	request := swapTxRequest{
		WalletAddress: walletAddress,
		CoinInType:    coinInType,
		CoinOutType:   coinOutType,
		CoinInAmount:  coinInAmount,
		Slippage:      slippage,
	}

	var tx json.RawMessage
	if err := c.doJSON(ctx, http.MethodPost, "/router/transactions/swap", request, &tx); err != nil {
		return nil, fmt.Errorf("building swap transaction: %w", err)
	}
	return TransactionPayload(tx), nil
}

// doJSON executes one request against the API and decodes the JSON
// response into out. Retrying is the caller's policy, not the client's.
func (c *Client) doJSON(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait failed: %w", err)
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordStatus("error")
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.recordStatus("error")
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		status := "error"
		if resp.StatusCode == http.StatusTooManyRequests {
			status = "rate_limited"
		}
		c.recordStatus(status)
		return fmt.Errorf("API request %s %s failed with status %d: %s",
			method, path, resp.StatusCode, truncateBody(responseBody))
	}

	if err := json.Unmarshal(responseBody, out); err != nil {
		c.recordStatus("error")
		return fmt.Errorf("decoding response from %s: %w", path, err)
	}

	c.recordStatus("success")
	return nil
}

func (c *Client) recordStatus(status string) {
	if c.statusHandler != nil {
		c.statusHandler.OnRequest(status)
	}
}

func truncateBody(body []byte) string {
	const limit = 512
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}
