// Package treasury_client fetches the current treasury yield used as the
// default base risk-free rate when config does not pin one.
package treasury_client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const benchmarkKey = "yield_10y"

// lazy, in-memory cache for API requests
var cache map[string]float64 = map[string]float64{}

type yieldCurveSnapshot struct {
	Data []map[string]interface{} `json:"data"`
}

// GetRiskFreeRate returns the latest 10-year treasury yield as an annual
// fraction (0.04 = 4%).
func GetRiskFreeRate() (float64, error) {
	return getRateOnDay(time.Now().UTC())
}

func getRateOnDay(date time.Time) (float64, error) {
	tStr := date.Format(time.DateOnly)
	if rate, ok := cache[tStr]; ok {
		return rate, nil
	}

	url := fmt.Sprintf("https://www.ustreasuryyieldcurve.com/api/v1/yield_curve_snapshot?date=%s&offset=0", tStr)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	response, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer response.Body.Close()

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return 0, fmt.Errorf("received status code %d and failed to read body: %w", response.StatusCode, err)
	}
	if response.StatusCode != 200 {
		return 0, fmt.Errorf("failed with status code %d: %s", response.StatusCode, string(responseBytes))
	}

	snapshot := yieldCurveSnapshot{}
	if err := json.Unmarshal(responseBytes, &snapshot); err != nil {
		return 0, fmt.Errorf("failed to parse yield curve response: %w", err)
	}
	if len(snapshot.Data) == 0 {
		return 0, fmt.Errorf("no yield curve data for %s", tStr)
	}

	raw, ok := snapshot.Data[0][benchmarkKey]
	if !ok {
		return 0, fmt.Errorf("yield curve response missing %s", benchmarkKey)
	}
	pct, ok := raw.(float64)
	if !ok {
		return 0, fmt.Errorf("unexpected type %T for %s", raw, benchmarkKey)
	}

	rate := pct / 100
	cache[tStr] = rate
	return rate, nil
}
