package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const SINK_TIMEOUT = time.Second * 15

// postHolding submits the payload to the gofutura holding-register write
// API and returns the decoded response. In dry-run mode no request is
// made; the would-be payload is echoed back with a success marker.
func postHolding(baseURL string, payload map[string]float64, dryRun bool) (map[string]interface{}, error) {
	if dryRun {
		echoed := make(map[string]interface{}, len(payload))
		for field, val := range payload {
			echoed[field] = val
		}
		return map[string]interface{}{
			"success": true,
			"dry_run": true,
			"payload": echoed,
		}, nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := strings.TrimRight(baseURL, "/") + "/api/write-holding"
	req, err := http.NewRequest("POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	httpClient := &http.Client{Timeout: SINK_TIMEOUT}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reply, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("write-holding failed: %s: %s",
			resp.Status, strings.TrimSpace(string(reply)))
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding write-holding response: %w", err)
	}
	return result, nil
}
