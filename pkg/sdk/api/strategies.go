package api

import (
	"context"
	"fmt"
	"net/http"
)

const strategyCodeEndpoint = "v3/build/python/user/strategy/code"

// CreateStrategy uploads a new strategy. Strategy names are unique per
// user. When the platform answers Forbidden or InsufficientBalance the
// failure is logged and absorbed: the call returns (nil, nil).
func (c *Client) CreateStrategy(ctx context.Context, name, details, abcVersion string) (map[string]any, error) {
	body := map[string]any{
		"strategyName":    name,
		"strategyDetails": details,
		"abcVersion":      abcVersion,
	}

	c.log.WithField("strategy", name).Debug("uploading strategy")
	resp, err := c.sendRequest(ctx, http.MethodPost, strategyCodeEndpoint, requestOptions{json: body})
	if err != nil {
		if c.swallowQuotaError(err, "create strategy") {
			return nil, nil
		}
		return nil, err
	}
	return resp, nil
}

// UpdateStrategy replaces the source of an existing strategy. The same
// Forbidden / InsufficientBalance soft-failure as CreateStrategy applies.
func (c *Client) UpdateStrategy(ctx context.Context, strategyCode, name, details, abcVersion string) (map[string]any, error) {
	body := map[string]any{
		"strategyId":      strategyCode,
		"strategyName":    name,
		"strategyDetails": details,
		"abcVersion":      abcVersion,
	}

	c.log.WithField("strategy", strategyCode).Debug("updating strategy")
	resp, err := c.sendRequest(ctx, http.MethodPut, strategyCodeEndpoint, requestOptions{json: body})
	if err != nil {
		if c.swallowQuotaError(err, "update strategy") {
			return nil, nil
		}
		return nil, err
	}
	return resp, nil
}

// GetAllStrategies lists the strategies the user has created. The platform
// serves the listing on the OPTIONS verb of the strategy code endpoint.
func (c *Client) GetAllStrategies(ctx context.Context) (map[string]any, error) {
	return c.sendRequest(ctx, http.MethodOptions, strategyCodeEndpoint, requestOptions{})
}

// GetStrategyDetails fetches one strategy's metadata and source.
func (c *Client) GetStrategyDetails(ctx context.Context, strategyCode string) (map[string]any, error) {
	endpoint := fmt.Sprintf("%s/%s", strategyCodeEndpoint, strategyCode)
	return c.sendRequest(ctx, http.MethodGet, endpoint, requestOptions{})
}

// SearchInstrument looks up an instrument by trading symbol. This is the
// one unauthenticated call in the API.
func (c *Client) SearchInstrument(ctx context.Context, tradingSymbol, exchange string) (map[string]any, error) {
	params := map[string]any{
		"search":   tradingSymbol,
		"exchange": exchange,
	}
	return c.sendRequest(ctx, http.MethodGet, "v4/portfolio/searchInstrument", requestOptions{
		params: params,
		noAuth: true,
	})
}

// DeletePreviousTrades purges the trades of earlier runs of the strategy.
// Errors propagate; there is no soft-failure here.
func (c *Client) DeletePreviousTrades(ctx context.Context, strategyCode string) (map[string]any, error) {
	params := map[string]any{"strategyId": strategyCode}
	return c.sendRequest(ctx, http.MethodDelete, "v3/build/python/user/strategy/deleteAll", requestOptions{params: params})
}
