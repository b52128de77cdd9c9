// Package suirpc is a minimal Sui JSON-RPC client covering the single read
// the balance aggregator needs: every coin object owned by an address.
package suirpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

const (
	mainnetRPCURL = "https://fullnode.mainnet.sui.io"
	testnetRPCURL = "https://fullnode.testnet.sui.io"

	connectionTimeout = 10 * time.Second
	requestTimeout    = 30 * time.Second

	// Fullnode page limit for suix_getAllCoins
	pageSize = 50
)

// CoinRecord is one owned coin object: a coin type plus its balance in
// base units
type CoinRecord struct {
	CoinType     string `json:"coinType"`
	CoinObjectID string `json:"coinObjectId"`
	Balance      string `json:"balance"`
}

// WalletReader is the read surface the balance aggregator depends on
type WalletReader interface {
	GetAllCoins(ctx context.Context, address string) ([]CoinRecord, error)
}

// Client is an HTTP JSON-RPC 2.0 client for a Sui fullnode
type Client struct {
	rpcURL     string
	httpClient *http.Client
}

// NewClient creates a client for the given network; overrideURL replaces
// the default fullnode URL when non-empty
func NewClient(network, overrideURL string) *Client {
	rpcURL := mainnetRPCURL
	if strings.EqualFold(network, "TESTNET") {
		rpcURL = testnetRPCURL
	}
	if overrideURL != "" {
		rpcURL = overrideURL
	}

	return &Client{
		rpcURL: rpcURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: connectionTimeout,
				}).DialContext,
			},
		},
	}
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

type coinPage struct {
	Data        []CoinRecord `json:"data"`
	HasNextPage bool         `json:"hasNextPage"`
	NextCursor  *string      `json:"nextCursor"`
}

// GetAllCoins returns every coin object owned by address, following
// pagination until the fullnode reports the last page
func (c *Client) GetAllCoins(ctx context.Context, address string) ([]CoinRecord, error) {
	if address == "" {
		return nil, fmt.Errorf("address is required")
	}

	var records []CoinRecord
	var cursor *string

	for {
		params := []interface{}{address, cursor, pageSize}

		var page coinPage
		if err := c.call(ctx, "suix_getAllCoins", params, &page); err != nil {
			return nil, fmt.Errorf("fetching coins for %s: %w", address, err)
		}

		records = append(records, page.Data...)

		if !page.HasNextPage || page.NextCursor == nil {
			return records, nil
		}
		cursor = page.NextCursor
	}
}

// call executes one JSON-RPC request and decodes the result into out
func (c *Client) call(ctx context.Context, method string, params []interface{}, out interface{}) error {
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rpcURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("RPC request failed with status %d: %s", resp.StatusCode, string(responseBody))
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(responseBody, &rpcResp); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	if rpcResp.Error != nil {
		return fmt.Errorf("RPC error %d: %s", rpcResp.Error.Code, rpcResp.Error.Message)
	}

	if err := json.Unmarshal(rpcResp.Result, out); err != nil {
		return fmt.Errorf("decoding %s result: %w", method, err)
	}
	return nil
}
