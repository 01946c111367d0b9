package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	docopt "github.com/docopt/docopt-go"
)

const version = "0.2"

const usage = `futura-sensor-sync copies last InfluxDB sensor values to gofutura external sensors.

Usage:
  futura-sensor-sync --influx-url=URL --db=NAME --futura-url=URL [options]
  futura-sensor-sync -h | --help
  futura-sensor-sync --version

Options:
  --influx-url=URL     InfluxDB base URL, e.g. http://localhost:8086
  --db=NAME            InfluxDB database name
  --futura-url=URL     gofutura base URL, e.g. http://localhost:9090
  --user=USER          InfluxDB username
  --password=PW        InfluxDB password
  --interval=SECONDS   Polling interval in seconds [default: 30]
  --mapping=FILE       TOML file replacing the built-in sensor mapping
  --metrics-addr=ADDR  Serve Prometheus metrics on this address
  --dry-run            Do not write to gofutura, just print the payload
  -h --help            Show this help
  --version            Show version
`

func optString(opts map[string]interface{}, key string) string {
	if v, ok := opts[key].(string); ok {
		return v
	}
	return ""
}

func main() {
	opts, err := docopt.Parse(usage, nil, true, version, false)
	if err != nil {
		log.Fatalln("Error:", err)
	}

	config := Config{
		InfluxURL:   optString(opts, "--influx-url"),
		Database:    optString(opts, "--db"),
		User:        optString(opts, "--user"),
		Password:    optString(opts, "--password"),
		FuturaURL:   optString(opts, "--futura-url"),
		DryRun:      opts["--dry-run"] == true,
		MetricsAddr: optString(opts, "--metrics-addr"),
		Measurement: defaultMeasurement,
		TempField:   defaultTempField,
		HumiField:   defaultHumiField,
		SlotMACs:    defaultSlotMACs,
	}

	seconds, err := strconv.Atoi(optString(opts, "--interval"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "--interval must be a whole number of seconds")
		os.Exit(2)
	}
	config.Interval = time.Duration(seconds) * time.Second

	if path := optString(opts, "--mapping"); path != "" {
		if err := ReadMapping(path, &config); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}

	if err := config.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if config.MetricsAddr != "" {
		registerBridgeMetrics()
		serveMetrics(config.MetricsAddr)
	}

	c, err := influxDBClient(config)
	if err != nil {
		log.Fatalln("Error:", err)
	}
	defer c.Close()

	if err := runLoop(context.Background(), c, config); err != nil {
		log.Fatalln("Error:", err)
	}
}
