package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const strategiesEndpoint = "v5/portfolio/strategies"

// jobTimestampLayout is ISO-8601 without a timezone suffix. Timestamps are
// converted to UTC first; the platform expects naive UTC times.
const jobTimestampLayout = "2006-01-02T15:04:05"

// dateRangeKeys maps a trading type to the field name the execution config
// carries the date range under.
var dateRangeKeys = map[TradingType]string{
	TradingTypeRealtrading:  "liveDataTime",
	TradingTypePapertrading: "backDataTime",
	TradingTypeBacktesting:  "backDataDate",
}

// SetStrategyConfig pushes the strategy configuration for a trading type.
// It registers the strategy for that type if this client has not done so
// yet, and returns the session key along with the platform response.
func (c *Client) SetStrategyConfig(ctx context.Context, strategyCode string, config map[string]any, tradingType TradingType) (string, map[string]any, error) {
	key, err := c.strategyKey(ctx, strategyCode, tradingType)
	if err != nil {
		return "", nil, err
	}

	endpoint := fmt.Sprintf("v4/portfolio/tweak/%s", key)
	c.log.WithField("strategy", strategyCode).Debug("setting strategy config")
	resp, err := c.sendRequest(ctx, http.MethodPost, endpoint, requestOptions{
		params: map[string]any{"isPythonBuild": true},
		json:   config,
	})
	if err != nil {
		return "", nil, err
	}

	return key, resp, nil
}

// StartParams describes one execution job submission.
type StartParams struct {
	StrategyCode string
	Start        time.Time
	End          time.Time
	TradingType  TradingType
	Lots         int
	// Location names the exchange's region, e.g. "IN".
	Location string
	// InitialFundsVirtual seeds simulated runs; zero means the platform
	// default of 1e9. Ignored for real trading.
	InitialFundsVirtual float64
	BrokerDetails       map[string]any
}

// StartStrategyAlgotrading submits a backtesting, paper-trading or
// real-trading job. Forbidden / InsufficientBalance answers are logged and
// absorbed, like CreateStrategy.
func (c *Client) StartStrategyAlgotrading(ctx context.Context, p StartParams) (map[string]any, error) {
	if !p.TradingType.valid() {
		return nil, errors.Errorf("unsupported trading type %v", p.TradingType)
	}

	key, err := c.strategyKey(ctx, p.StrategyCode, p.TradingType)
	if err != nil {
		if c.swallowQuotaError(err, "start job") {
			return nil, nil
		}
		return nil, err
	}

	executeConfig := map[string]any{
		dateRangeKeys[p.TradingType]: []string{
			p.Start.UTC().Format(jobTimestampLayout),
			p.End.UTC().Format(jobTimestampLayout),
		},
		"isLiveDataTestMode":     p.TradingType != TradingTypeBacktesting,
		"customizationsQuantity": p.Lots,
		"brokingDetails":         p.BrokerDetails,
		"mode":                   p.TradingType.String(),
	}
	if p.TradingType != TradingTypeRealtrading {
		funds := p.InitialFundsVirtual
		if funds == 0 {
			funds = 1e9
		}
		executeConfig["initialFundsVirtual"] = funds
	}

	body := map[string]any{
		"method":    "update",
		"newVal":    1,
		"key":       key,
		"record":    map[string]any{"status": 0, "lots": p.Lots, "executeConfig": executeConfig},
		"dataIndex": "executeConfig",
	}
	params := map[string]any{
		"isPythonBuild": true,
		"isLive":        p.TradingType.isLive(),
		"location":      p.Location,
	}

	c.log.WithFields(logrus.Fields{
		"strategy": p.StrategyCode,
		"mode":     p.TradingType.String(),
	}).Debug("submitting job")
	resp, err := c.sendRequest(ctx, http.MethodPatch, strategiesEndpoint, requestOptions{
		params: params,
		json:   body,
	})
	if err != nil {
		if c.swallowQuotaError(err, "start job") {
			return nil, nil
		}
		return nil, err
	}

	return resp, nil
}

// StopStrategyAlgotrading stops the running job for the pair by patching a
// status-reset record. The same soft-failure policy as start applies.
func (c *Client) StopStrategyAlgotrading(ctx context.Context, strategyCode string, tradingType TradingType) (map[string]any, error) {
	key, err := c.strategyKey(ctx, strategyCode, tradingType)
	if err != nil {
		if c.swallowQuotaError(err, "stop job") {
			return nil, nil
		}
		return nil, err
	}

	body := map[string]any{
		"method":    "update",
		"newVal":    0,
		"key":       key,
		"record":    map[string]any{"status": 2},
		"dataIndex": "executeConfig",
	}

	c.log.WithFields(logrus.Fields{
		"strategy": strategyCode,
		"mode":     tradingType.String(),
	}).Debug("stopping job")
	resp, err := c.sendRequest(ctx, http.MethodPatch, strategiesEndpoint, requestOptions{json: body})
	if err != nil {
		if c.swallowQuotaError(err, "stop job") {
			return nil, nil
		}
		return nil, err
	}

	return resp, nil
}

// GetJobStatus reads the job status for the pair. Response keys come back
// camelCased from the platform and are normalized to snake_case.
func (c *Client) GetJobStatus(ctx context.Context, strategyCode string, tradingType TradingType) (map[string]any, error) {
	key, err := c.strategyKey(ctx, strategyCode, tradingType)
	if err != nil {
		return nil, err
	}

	resp, err := c.sendRequest(ctx, http.MethodGet, "v2/user/strategy/status", requestOptions{
		params: map[string]any{"key": key},
	})
	if err != nil {
		return nil, err
	}

	return NormalizeKeys(resp), nil
}

// GetLogs fetches one page of execution logs. Pass the next-forward token
// of the previous page to continue; an empty token starts from the top.
func (c *Client) GetLogs(ctx context.Context, strategyCode string, tradingType TradingType, nextToken string) (map[string]any, error) {
	key, err := c.strategyKey(ctx, strategyCode, tradingType)
	if err != nil {
		return nil, err
	}

	body := map[string]any{
		"key":       key,
		"limit":     c.pageSize,
		"direction": "forward",
		"type":      "userLogs",
	}
	if nextToken != "" {
		body["nextForwardToken"] = nextToken
	} else {
		body["nextForwardToken"] = nil
	}
	params := map[string]any{
		"isPythonBuild": true,
		"isLive":        tradingType.isLive(),
	}

	return c.sendRequest(ctx, http.MethodPost, "v4/user/strategy/logs", requestOptions{
		params: params,
		json:   body,
	})
}

// GetReports fetches the P&L table or the order history for the pair.
// currentPage only matters for order history; the P&L endpoint returns the
// whole table.
func (c *Client) GetReports(ctx context.Context, strategyCode string, tradingType TradingType, reportType ReportType, country string, currentPage int) (map[string]any, error) {
	if _, err := c.strategyKey(ctx, strategyCode, tradingType); err != nil {
		return nil, err
	}

	var endpoint string
	var params map[string]any

	switch reportType {
	case ReportPnLTable:
		filters, err := json.Marshal(map[string]any{"tradingType": int(tradingType)})
		if err != nil {
			return nil, errors.Wrap(err, "encode report filters")
		}
		endpoint = "v4/book/pl/data"
		params = map[string]any{
			"pageSize":      0,
			"isPythonBuild": true,
			"strategyId":    strategyCode,
			"isLive":        tradingType.isLive(),
			"country":       country,
			"filters":       string(filters),
		}
	case ReportOrderHistory:
		endpoint = "v5/build/python/user/order/charts"
		params = map[string]any{
			"strategyId":  strategyCode,
			"country":     country,
			"currentPage": currentPage,
			"pageSize":    c.pageSize,
			"isLive":      tradingType.isLive(),
		}
	default:
		return nil, errors.Errorf("unsupported report type %v", reportType)
	}

	return c.sendRequest(ctx, http.MethodGet, endpoint, requestOptions{params: params})
}
