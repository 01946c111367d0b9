package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	client "github.com/influxdata/influxdb1-client/v2"
)

// buildPayload routes extracted values through the slot mapping into
// holding-register field names. Slots are walked in ascending order and
// each slot's MAC list in declared order, so when several MACs under one
// slot report a value, the last listed one wins.
func buildPayload(config Config, tempByMAC, humiByMAC map[string]float64) map[string]float64 {
	payload := make(map[string]float64)

	for _, slot := range config.slots() {
		for _, mac := range config.SlotMACs[slot] {
			if val, ok := tempByMAC[mac]; ok {
				payload[fmt.Sprintf("ExtSensTemp%d", slot)] = val
			}
			if val, ok := humiByMAC[mac]; ok {
				payload[fmt.Sprintf("ExtSensRH%d", slot)] = val
			}
		}
	}

	return payload
}

// runCycle performs one poll: the temperature query, then the humidity
// query, extraction, routing, and the write (or dry-run echo). Returns
// the number of fields submitted; 0 means the cycle had nothing to write.
func runCycle(c client.Client, config Config) (int, error) {
	tempResult, err := queryLast(c, config.Database, lastValueQuery(config.Measurement, config.TempField))
	if err != nil {
		return 0, err
	}
	humiResult, err := queryLast(c, config.Database, lastValueQuery(config.Measurement, config.HumiField))
	if err != nil {
		return 0, err
	}

	payload := buildPayload(config, extractLastByMAC(tempResult), extractLastByMAC(humiResult))

	if len(payload) == 0 {
		fmt.Println("No values found for configured MACs; nothing to write.")
		emptyCycles.Inc()
		return 0, nil
	}

	result, err := postHolding(config.FuturaURL, payload, config.DryRun)
	if err != nil {
		return 0, err
	}

	// Maps marshal with sorted keys, so the report is stable run to run.
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return 0, err
	}
	fmt.Println(string(out))

	updateMetrics(payload)
	return len(payload), nil
}

// runLoop polls until ctx is cancelled. Any query or write failure is
// returned immediately: there is no retry beyond the supervisor
// restarting the process.
func runLoop(ctx context.Context, c client.Client, config Config) error {
	for {
		if _, err := runCycle(c, config); err != nil {
			return err
		}
		cyclesTotal.Inc()

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(config.Interval):
		}
	}
}
