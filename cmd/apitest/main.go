// apitest is a manual probe for the AlgoBulls API client. It runs the
// unauthenticated instrument search and, when an access token is
// configured, lists the user's strategies.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/algobulls/gobulls/pkg/config"
	"github.com/algobulls/gobulls/pkg/logger"
	"github.com/algobulls/gobulls/pkg/sdk/api"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to YAML config (optional)")
	search := flag.String("search", "SBIN", "trading symbol to search for")
	exchange := flag.String("exchange", "NSE", "exchange to search on")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.Log.Level,
		OutputFile: cfg.Log.File,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAgeDays,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}

	opts := []api.Option{
		api.WithTimeout(time.Duration(cfg.API.TimeoutSeconds) * time.Second),
	}
	if cfg.API.PageSize > 0 {
		opts = append(opts, api.WithPageSize(cfg.API.PageSize))
	}
	client := api.NewClient(cfg.API.BaseURL, opts...)
	if cfg.API.AccessToken != "" {
		client.SetAccessToken(cfg.API.AccessToken)
	}

	ctx := context.Background()

	logger.Infof("searching instrument %s on %s", *search, *exchange)
	result, err := client.SearchInstrument(ctx, *search, *exchange)
	if err != nil {
		logger.Errorf("search instrument: %v", err)
		os.Exit(1)
	}
	dump(result)

	if cfg.API.AccessToken == "" {
		logger.Infof("no access token configured, skipping authorized calls")
		return
	}

	logger.Infof("fetching strategies")
	strategies, err := client.GetAllStrategies(ctx)
	if err != nil {
		logger.Errorf("get strategies: %v", err)
		os.Exit(1)
	}
	dump(strategies)
}

func dump(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logger.Errorf("marshal response: %v", err)
		return
	}
	fmt.Println(string(data))
}
