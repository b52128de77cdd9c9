package core

import (
	"context"
	"os"

	"github.com/jake1318/afternew/aftermath"
	"github.com/jake1318/afternew/api"
	"github.com/jake1318/afternew/balances"
	"github.com/jake1318/afternew/cache"
	"github.com/jake1318/afternew/config"
	"github.com/jake1318/afternew/metrics"
	"github.com/jake1318/afternew/pools"
	"github.com/jake1318/afternew/prices"
	"github.com/jake1318/afternew/suirpc"
	"github.com/jake1318/afternew/swap"
)

// Setup creates and registers all services
func Setup(ctx context.Context, cfg *config.Config) (*Registry, error) {
	registry := NewRegistry()

	// Cache backs the route, price and portfolio stores
	cacheService := cache.NewService(cfg.Cache)
	registry.Register(cacheService)

	// Upstream clients
	aftermathClient := aftermath.NewClient(cfg.Network, cfg.OverrideAftermathURL,
		metrics.NewMetricsWriter(metrics.ServiceSwap))
	suiClient := suirpc.NewClient(cfg.Network, cfg.OverrideSuiRPCURL)

	poolsService := pools.NewService(cfg, aftermathClient)
	registry.Register(poolsService)

	pricesService := prices.NewService(cfg, aftermathClient, cacheService)
	registry.Register(pricesService)

	swapService := swap.NewService(cfg, aftermathClient, cacheService)
	registry.Register(swapService)

	balancesService := balances.NewService(cfg, suiClient, pricesService, cacheService)
	registry.Register(balancesService)

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}

	server := api.New(port, cfg.FrontendOrigin, swapService, poolsService, pricesService, balancesService)
	registry.Register(server)

	return registry, nil
}
