package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jake1318/afternew/balances"
	"github.com/jake1318/afternew/pools"
	"github.com/jake1318/afternew/swap"
)

// SwapService is the quote/transaction surface the server depends on
type SwapService interface {
	GetQuote(ctx context.Context, coinInType, coinOutType, coinInAmount string) (*swap.QuoteResponse, error)
	BuildTransaction(ctx context.Context, walletAddress, routeID string, slippagePct float64) (*swap.TransactionResponse, error)
	SupportedCoins(ctx context.Context) ([]string, error)
	Healthy() bool
}

// PoolsService is the pool aggregator surface the server depends on
type PoolsService interface {
	TopPoolCoins() []string
	PoolList() []pools.PoolInfo
	Initialized() bool
	Healthy() bool
	SubscribeOnUpdate() chan struct{}
	Unsubscribe(ch chan struct{})
}

// PricesService is the price surface the server depends on
type PricesService interface {
	GetPrices(ctx context.Context, coinTypes []string) (map[string]float64, error)
	LatestPrices() map[string]float64
	Healthy() bool
	SubscribeOnUpdate() chan struct{}
	Unsubscribe(ch chan struct{})
}

// BalancesService is the portfolio surface the server depends on
type BalancesService interface {
	GetBalances(ctx context.Context, address string) (*balances.Portfolio, error)
	Healthy() bool
}

// Server is the HTTP API over the backend services
type Server struct {
	port            string
	frontendOrigin  string
	swapService     SwapService
	poolsService    PoolsService
	pricesService   PricesService
	balancesService BalancesService
	hub             *Hub
	server          *http.Server
}

// New creates a new API server listening on the given port
func New(port, frontendOrigin string, swapService SwapService, poolsService PoolsService, pricesService PricesService, balancesService BalancesService) *Server {
	return &Server{
		port:            port,
		frontendOrigin:  frontendOrigin,
		swapService:     swapService,
		poolsService:    poolsService,
		pricesService:   pricesService,
		balancesService: balancesService,
		hub:             NewHub(poolsService, pricesService),
	}
}

// Start implements core.Interface
func (s *Server) Start(ctx context.Context) error {
	router := mux.NewRouter()

	router.HandleFunc("/api/quote", s.handleQuote).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/api/transaction", s.handleTransaction).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/api/coins", s.handleSupportedCoins).Methods(http.MethodGet)
	router.HandleFunc("/api/prices", s.handlePrices).Methods(http.MethodGet)
	router.HandleFunc("/api/topPoolCoins", s.handleTopPoolCoins).Methods(http.MethodGet)
	router.HandleFunc("/api/pools", s.handlePools).Methods(http.MethodGet)
	router.HandleFunc("/api/balances", s.handleBalances).Methods(http.MethodGet)
	router.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/api/ws", s.hub.HandleConnection)
	router.Handle("/metrics", promhttp.Handler())

	router.Use(s.corsMiddleware)

	s.server = &http.Server{
		Addr:    ":" + s.port,
		Handler: router,
	}

	go s.hub.Run(ctx)

	log.Printf("Server starting at http://localhost:%s", s.port)
	log.Println("Prometheus metrics available at /metrics endpoint")

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	return nil
}

// Stop gracefully shuts down the server
func (s *Server) Stop() {
	s.hub.Stop()
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down server: %v", err)
		}
	}
}

// corsMiddleware allows the configured frontend origin
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.frontendOrigin != "" {
			w.Header().Set("Access-Control-Allow-Origin", s.frontendOrigin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
