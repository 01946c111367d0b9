package main

import (
	"fmt"
	"time"

	client "github.com/influxdata/influxdb1-client/v2"
)

const INFLUX_TIMEOUT = time.Second * 15

func influxDBClient(config Config) (client.Client, error) {
	return client.NewHTTPClient(client.HTTPConfig{
		Addr:     config.InfluxURL,
		Username: config.User,
		Password: config.Password,
		Timeout:  INFLUX_TIMEOUT,
	})
}

// lastValueQuery builds the grouped last-value InfluxQL for one field.
// The 1d lookback keeps dead sensors from resurfacing week-old readings.
func lastValueQuery(measurement, field string) string {
	return fmt.Sprintf(`SELECT last(%q) FROM %q WHERE time > now() - 1d GROUP BY "mac"::tag`,
		field, measurement)
}

// queryLast runs one query with millisecond timestamps and returns its
// first result. An error reported by the store in the response body is a
// fatal query error, same as a transport failure.
func queryLast(c client.Client, db, cmd string) (client.Result, error) {
	resp, err := c.Query(client.NewQuery(cmd, db, "ms"))
	if err != nil {
		return client.Result{}, err
	}
	if err := resp.Error(); err != nil {
		return client.Result{}, fmt.Errorf("InfluxDB error: %w", err)
	}
	if len(resp.Results) == 0 {
		return client.Result{}, nil
	}
	return resp.Results[0], nil
}
