package api

import "fmt"

// TradingType selects the execution context a strategy runs under. The
// integer values are what the platform expects on the wire (registration
// payloads and report filters).
type TradingType int

const (
	TradingTypeBacktesting  TradingType = 1
	TradingTypePapertrading TradingType = 2
	TradingTypeRealtrading  TradingType = 3
)

func (t TradingType) String() string {
	switch t {
	case TradingTypeBacktesting:
		return "BACKTESTING"
	case TradingTypePapertrading:
		return "PAPERTRADING"
	case TradingTypeRealtrading:
		return "REALTRADING"
	default:
		return fmt.Sprintf("TradingType(%d)", int(t))
	}
}

func (t TradingType) valid() bool {
	switch t {
	case TradingTypeBacktesting, TradingTypePapertrading, TradingTypeRealtrading:
		return true
	}
	return false
}

// isLive is true for modes that run against live market data.
func (t TradingType) isLive() bool {
	return t == TradingTypeRealtrading
}

// ReportType selects which report endpoint GetReports hits.
type ReportType int

const (
	ReportPnLTable ReportType = iota + 1
	ReportOrderHistory
)

func (r ReportType) String() string {
	switch r {
	case ReportPnLTable:
		return "PNL_TABLE"
	case ReportOrderHistory:
		return "ORDER_HISTORY"
	default:
		return fmt.Sprintf("ReportType(%d)", int(r))
	}
}
