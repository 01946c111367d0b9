package main

import (
	"encoding/json"
	"strconv"

	client "github.com/influxdata/influxdb1-client/v2"
)

// extractLastByMAC reduces one query result to the most recent non-null
// value per "mac" tag. A series without a mac tag, or whose every row is
// null, contributes nothing. If the store ever returned two series with
// the same tag, the later one would win; grouped queries produce at most
// one series per MAC so this never matters in practice.
func extractLastByMAC(result client.Result) map[string]float64 {
	out := make(map[string]float64)

	for _, series := range result.Series {
		mac := series.Tags["mac"]
		if mac == "" {
			continue
		}

		// Scan newest to oldest for the first usable value.
		for i := len(series.Values) - 1; i >= 0; i-- {
			row := series.Values[i]
			if len(row) < 2 || row[1] == nil {
				continue
			}
			val, ok := toFloat(row[1])
			if !ok {
				continue
			}
			out[mac] = val
			break
		}
	}

	return out
}

// toFloat converts one value cell. The influx client decodes with
// UseNumber, so cells normally arrive as json.Number.
func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}
