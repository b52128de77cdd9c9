// Package swap quotes trade routes with bounded retry, caches them under
// opaque route ids and builds executable transactions from cached routes.
package swap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jake1318/afternew/aftermath"
	"github.com/jake1318/afternew/cache"
	"github.com/jake1318/afternew/config"
	"github.com/jake1318/afternew/metrics"
	"github.com/jake1318/afternew/retry"
)

// Validation and lookup errors surfaced to the API layer
var (
	ErrMissingCoinType = errors.New("coinInType and coinOutType are required")
	ErrInvalidAmount   = errors.New("coinInAmount must be a non-negative amount")
	ErrMissingTxParams = errors.New("walletAddress and routeId are required")
	ErrRouteNotFound   = errors.New("route expired or not found, request a new quote")
)

const routeCacheKeyPrefix = "route:"

// RouterAPI is the slice of the upstream client this service depends on
type RouterAPI interface {
	GetSupportedCoins(ctx context.Context) ([]string, error)
	GetCoinsToDecimals(ctx context.Context, coins []string) (map[string]int, error)
	GetCompleteTradeRoute(ctx context.Context, coinInType, coinOutType string, coinInAmount *big.Int) (*aftermath.CompleteRoute, error)
	BuildTradeRouteTx(ctx context.Context, walletAddress string, route *aftermath.CompleteRoute, slippage float64) (aftermath.TransactionPayload, error)
	BuildSwapTx(ctx context.Context, walletAddress, coinInType, coinOutType, coinInAmount string, slippage float64) (aftermath.TransactionPayload, error)
}

// Service is the route quote cache and transaction builder
type Service struct {
	cfg           *config.Config
	client        RouterAPI
	routeCache    cache.Cache
	metricsWriter *metrics.MetricsWriter
	now           func() time.Time
}

// NewService creates a new swap service backed by the given route cache
func NewService(cfg *config.Config, client RouterAPI, routeCache cache.Cache) *Service {
	return &Service{
		cfg:           cfg,
		client:        client,
		routeCache:    routeCache,
		metricsWriter: metrics.NewMetricsWriter(metrics.ServiceSwap),
		now:           time.Now,
	}
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	if s.routeCache == nil {
		return fmt.Errorf("route cache dependency not provided")
	}
	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {}

// SupportedCoins lists the coin types the router can trade
func (s *Service) SupportedCoins(ctx context.Context) ([]string, error) {
	return s.client.GetSupportedCoins(ctx)
}

// GetQuote fetches a trade route for the given pair and amount, caches it
// under a fresh route id and returns the normalized quote.
//
// coinInAmount accepts base units ("1000000000") or a decimal amount
// ("1.5") which is scaled by the input coin's decimals.
func (s *Service) GetQuote(ctx context.Context, coinInType, coinOutType, coinInAmount string) (*QuoteResponse, error) {
	if coinInType == "" || coinOutType == "" {
		return nil, ErrMissingCoinType
	}

	inDecimals, outDecimals := s.coinDecimals(ctx, coinInType, coinOutType)

	amount, err := parseAmount(coinInAmount, inDecimals)
	if err != nil {
		return nil, err
	}

	route, err := retry.Do(ctx, s.cfg.Swap.MaxRetries, s.cfg.Swap.RetryDelay,
		func(ctx context.Context) (*aftermath.CompleteRoute, error) {
			return s.client.GetCompleteTradeRoute(ctx, coinInType, coinOutType, amount)
		},
		func(attempt int, lastErr error) {
			s.metricsWriter.RecordRetryAttempt()
		})
	if err != nil {
		return nil, fmt.Errorf("failed to get trade route: %w", err)
	}

	normalizeRoute(route)

	routeID := uuid.NewString()
	if err := s.storeRoute(routeID, route); err != nil {
		return nil, err
	}

	return &QuoteResponse{
		RouteID: routeID,
		CoinIn: CoinAmount{
			Type:      route.CoinIn.CoinType,
			Amount:    route.CoinIn.Amount,
			Formatted: formatBaseUnits(route.CoinIn.Amount, inDecimals),
		},
		CoinOut: CoinAmount{
			Type:      route.CoinOut.CoinType,
			Amount:    route.CoinOut.Amount,
			Formatted: formatBaseUnits(route.CoinOut.Amount, outDecimals),
		},
		SpotPrice:   route.SpotPrice,
		PriceImpact: priceImpact(route),
		Steps:       len(route.Steps),
	}, nil
}

// BuildTransaction materializes a transaction for a previously quoted
// route. Slippage is a percentage (1.0 means 1%); everything below this
// boundary works with the fractional tolerance.
//
// Reading the entry does not consume it: repeated builds with the same id
// are idempotent until the entry expires.
func (s *Service) BuildTransaction(ctx context.Context, walletAddress, routeID string, slippagePct float64) (*TransactionResponse, error) {
	if walletAddress == "" || routeID == "" {
		return nil, ErrMissingTxParams
	}

	entry, err := s.loadRoute(routeID)
	if err != nil {
		return nil, err
	}
	route := entry.Route
	slippage := slippagePct / 100

	response := &TransactionResponse{
		CoinIn:  CoinAmount{Type: route.CoinIn.CoinType, Amount: route.CoinIn.Amount},
		CoinOut: CoinAmount{Type: route.CoinOut.CoinType, Amount: route.CoinOut.Amount},
	}

	tx, err := s.client.BuildTradeRouteTx(ctx, walletAddress, route, slippage)
	if err == nil {
		response.Transaction = tx
		response.Method = MethodRouteBased
		return response, nil
	}
	log.Printf("Swap: route-based transaction build failed, trying simple swap: %v", err)

	tx, fallbackErr := s.client.BuildSwapTx(ctx, walletAddress,
		route.CoinIn.CoinType, route.CoinOut.CoinType, route.CoinIn.Amount, slippage)
	if fallbackErr != nil {
		return nil, fmt.Errorf("failed to build transaction: %w", fallbackErr)
	}

	response.Transaction = tx
	response.Method = MethodSimpleSwap
	return response, nil
}

// Healthy reports whether the service is wired
func (s *Service) Healthy() bool {
	return s.routeCache != nil
}

func (s *Service) storeRoute(routeID string, route *aftermath.CompleteRoute) error {
	entry := routeEntry{Route: route, CreatedAt: s.now()}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding route entry: %w", err)
	}
	s.routeCache.Set(map[string][]byte{routeCacheKeyPrefix + routeID: data}, s.cfg.Swap.RouteTTL)
	return nil
}

func (s *Service) loadRoute(routeID string) (*routeEntry, error) {
	key := routeCacheKeyPrefix + routeID
	found, _ := s.routeCache.Get([]string{key})
	data, ok := found[key]
	if !ok {
		return nil, ErrRouteNotFound
	}

	var entry routeEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("decoding route entry: %w", err)
	}

	// The cache TTL already bounds the entry's life; the timestamp check
	// keeps the window exact even if the sweep runs coarser than the TTL
	if s.now().Sub(entry.CreatedAt) > s.cfg.Swap.RouteTTL {
		s.routeCache.Delete([]string{key})
		return nil, ErrRouteNotFound
	}
	return &entry, nil
}

// coinDecimals fetches decimal precision for the trade pair, defaulting to
// 9 for coins the endpoint does not know
func (s *Service) coinDecimals(ctx context.Context, coinInType, coinOutType string) (int, int) {
	inDecimals, outDecimals := 9, 9
	decimals, err := s.client.GetCoinsToDecimals(ctx, []string{coinInType, coinOutType})
	if err != nil {
		log.Printf("Swap: error fetching coin decimals: %v", err)
		return inDecimals, outDecimals
	}
	if d, ok := decimals[coinInType]; ok {
		inDecimals = d
	}
	if d, ok := decimals[coinOutType]; ok {
		outDecimals = d
	}
	return inDecimals, outDecimals
}

// parseAmount converts an amount string into base units. Plain integers
// pass through; decimal strings are scaled by the coin's decimals with
// excess fractional digits truncated.
func parseAmount(raw string, decimals int) (*big.Int, error) {
	if raw == "" {
		return nil, ErrInvalidAmount
	}

	if !strings.Contains(raw, ".") {
		amount, ok := new(big.Int).SetString(raw, 10)
		if !ok || amount.Sign() < 0 {
			return nil, ErrInvalidAmount
		}
		return amount, nil
	}

	value, err := decimal.NewFromString(raw)
	if err != nil || value.IsNegative() {
		return nil, ErrInvalidAmount
	}

	scaled := value.Shift(int32(decimals)).Truncate(0)
	return scaled.BigInt(), nil
}

// normalizeRoute guarantees a non-empty steps list, synthesizing a single
// direct step when the router omitted them
func normalizeRoute(route *aftermath.CompleteRoute) {
	if len(route.Steps) > 0 {
		return
	}
	log.Printf("Swap: route has no steps, synthesizing a direct step")
	route.Steps = []aftermath.RouteStep{{
		Type:    "swap",
		CoinIn:  route.CoinIn,
		CoinOut: route.CoinOut,
		Route:   "direct",
	}}
}

// priceImpact returns the route's own impact estimate when present,
// otherwise (1 - out*spot/in) * 100. The result is always finite.
func priceImpact(route *aftermath.CompleteRoute) float64 {
	if route.PriceImpact != nil {
		return *route.PriceImpact
	}

	amountIn, errIn := strconv.ParseFloat(route.CoinIn.Amount, 64)
	amountOut, errOut := strconv.ParseFloat(route.CoinOut.Amount, 64)
	if errIn != nil || errOut != nil || amountIn == 0 {
		return 0
	}
	return (1 - amountOut*route.SpotPrice/amountIn) * 100
}

// formatBaseUnits renders a base-unit amount for display using the coin's
// decimal precision
func formatBaseUnits(amount string, decimals int) string {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return amount
	}
	return value.Shift(int32(-decimals)).String()
}
