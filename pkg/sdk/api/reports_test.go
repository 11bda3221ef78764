package api

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePnLTable(t *testing.T) {
	payload := `{
		"data": [
			{
				"instrument": "NSE:SBIN",
				"entry": {"timestamp": "2023-01-15 09:30:00", "price": "584.20", "quantity": 10},
				"exit": {"timestamp": "2023-01-15 14:45:00", "price": "590.05", "quantity": "10"},
				"pnlAbsolute": {"value": 58.5}
			},
			{
				"instrument": "NSE:TCS",
				"entry": {"timestamp": "2023-01-16 10:00:00", "price": 3300, "quantity": 2},
				"exit": {"timestamp": "2023-01-16 15:00:00", "price": 3275.5, "quantity": 2},
				"pnlAbsolute": -49
			}
		]
	}`

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(payload), &body))

	rows, err := ParsePnLTable(body)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, "NSE:SBIN", first.Instrument)
	assert.Equal(t, time.Date(2023, 1, 15, 9, 30, 0, 0, time.UTC), first.EntryTimestamp)
	assert.True(t, first.EntryPrice.Equal(mustDecimal(t, "584.20")), "entry price %s", first.EntryPrice)
	assert.True(t, first.ExitQuantity.Equal(mustDecimal(t, "10")))
	assert.True(t, first.PnLAbsolute.Equal(mustDecimal(t, "58.5")))

	second := rows[1]
	assert.Equal(t, "NSE:TCS", second.Instrument)
	assert.True(t, second.PnLAbsolute.Equal(mustDecimal(t, "-49")), "bare pnlAbsolute values parse too")
}

func TestParsePnLTableMalformed(t *testing.T) {
	t.Run("missing data list", func(t *testing.T) {
		_, err := ParsePnLTable(map[string]any{"response": "oops"})
		require.Error(t, err)
	})

	t.Run("bad rows skipped", func(t *testing.T) {
		body := map[string]any{
			"data": []any{
				"not an object",
				map[string]any{"instrument": "NSE:INFY"},
			},
		}

		rows, err := ParsePnLTable(body)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "NSE:INFY", rows[0].Instrument)
		assert.True(t, rows[0].PnLAbsolute.IsZero())
		assert.True(t, rows[0].EntryTimestamp.IsZero())
	})
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}
