package api

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
)

// keyCacheKey identifies one strategy registration. One session key exists
// per (strategy, trading type) pair for the lifetime of the client.
type keyCacheKey struct {
	strategyCode string
	tradingType  TradingType
}

// strategyKey returns the platform session key for the pair, registering
// the strategy on first use. The mutex is held across the registration
// round trip so concurrent first use of the same pair issues exactly one
// registration call. A failed registration leaves the pair absent; the
// next call retries.
func (c *Client) strategyKey(ctx context.Context, strategyCode string, tradingType TradingType) (string, error) {
	c.keyMu.Lock()
	defer c.keyMu.Unlock()

	cacheKey := keyCacheKey{strategyCode: strategyCode, tradingType: tradingType}
	if key, ok := c.keys[cacheKey]; ok {
		return key, nil
	}

	key, err := c.fetchKey(ctx, strategyCode, tradingType)
	if err != nil {
		return "", err
	}

	c.keys[cacheKey] = key
	return key, nil
}

// fetchKey registers the strategy for the trading type and returns the key
// the platform hands back. The registration verb is the platform's
// protocol: POST for real trading, PUT for paper trading, PATCH for
// backtesting, all against the same endpoint.
func (c *Client) fetchKey(ctx context.Context, strategyCode string, tradingType TradingType) (string, error) {
	var method string
	switch tradingType {
	case TradingTypeRealtrading:
		method = http.MethodPost
	case TradingTypePapertrading:
		method = http.MethodPut
	case TradingTypeBacktesting:
		method = http.MethodPatch
	default:
		return "", errors.Errorf("unsupported trading type %v", tradingType)
	}

	body := map[string]any{
		"strategyId":  strategyCode,
		"tradingType": int(tradingType),
	}

	resp, err := c.sendRequest(ctx, method, "v2/portfolio/strategy", requestOptions{json: body})
	if err != nil {
		return "", err
	}

	key, _ := resp["key"].(string)
	if key == "" {
		return "", errors.Errorf("registration of strategy %s for %s returned no key", strategyCode, tradingType)
	}

	return key, nil
}
