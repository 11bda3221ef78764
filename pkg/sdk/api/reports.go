package api

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// pnlTimestampLayout is how the P&L endpoint renders trade timestamps.
const pnlTimestampLayout = "2006-01-02 15:04:05"

// PnLRow is one round trip (entry + exit) from the P&L table.
type PnLRow struct {
	Instrument     string
	EntryTimestamp time.Time
	EntryPrice     decimal.Decimal
	EntryQuantity  decimal.Decimal
	ExitTimestamp  time.Time
	ExitPrice      decimal.Decimal
	ExitQuantity   decimal.Decimal
	PnLAbsolute    decimal.Decimal
}

// ParsePnLTable flattens a PNL_TABLE response body into typed rows. Rows
// the platform returns with a missing or malformed shape are skipped
// rather than failing the whole table.
func ParsePnLTable(body map[string]any) ([]PnLRow, error) {
	data, ok := body["data"].([]any)
	if !ok {
		return nil, errors.New("pnl response has no data list")
	}

	rows := make([]PnLRow, 0, len(data))
	for _, item := range data {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}

		row := PnLRow{}
		row.Instrument, _ = entry["instrument"].(string)

		if leg, ok := entry["entry"].(map[string]any); ok {
			row.EntryTimestamp = parseTimestamp(leg["timestamp"])
			row.EntryPrice = toDecimal(leg["price"])
			row.EntryQuantity = toDecimal(leg["quantity"])
		}
		if leg, ok := entry["exit"].(map[string]any); ok {
			row.ExitTimestamp = parseTimestamp(leg["timestamp"])
			row.ExitPrice = toDecimal(leg["price"])
			row.ExitQuantity = toDecimal(leg["quantity"])
		}
		if pnl, ok := entry["pnlAbsolute"].(map[string]any); ok {
			row.PnLAbsolute = toDecimal(pnl["value"])
		} else {
			row.PnLAbsolute = toDecimal(entry["pnlAbsolute"])
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// toDecimal converts platform numbers, which may arrive as JSON numbers or
// quoted strings, into a decimal. Anything unparseable becomes zero.
func toDecimal(v any) decimal.Decimal {
	switch t := v.(type) {
	case float64:
		return decimal.NewFromFloat(t)
	case int:
		return decimal.NewFromInt(int64(t))
	case string:
		d, err := decimal.NewFromString(t)
		if err != nil {
			return decimal.Zero
		}
		return d
	case nil:
		return decimal.Zero
	default:
		d, err := decimal.NewFromString(fmt.Sprint(t))
		if err != nil {
			return decimal.Zero
		}
		return d
	}
}

func parseTimestamp(v any) time.Time {
	s, ok := v.(string)
	if !ok {
		return time.Time{}
	}
	ts, err := time.Parse(pnlTimestampLayout, s)
	if err != nil {
		return time.Time{}
	}
	return ts
}
