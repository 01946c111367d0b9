package main

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Map gofutura external sensor slot (1..8) -> list of InfluxDB MACs.
// A single MAC may feed multiple slots. Edit here, or point --mapping at
// a TOML file to replace the table without rebuilding.
// Example:
//
//	var defaultSlotMACs = map[int][]string{
//	    1: {"AA:BB:CC:DD:EE:FF"},
//	    2: {"AA:BB:CC:DD:EE:FF", "11:22:33:44:55:66"},
//	}
var defaultSlotMACs = map[int][]string{
	1: {"a4:c1:38:cb:ca:c0"},
	2: {"a4:c1:38:57:a4:87"},
	3: {"a4:c1:38:a4:86:84"},
	4: {"a4:c1:38:a4:86:84"},
}

const (
	defaultMeasurement = "atc_thermometer"
	defaultTempField   = "temperature"
	defaultHumiField   = "humidity"
)

type Config struct {
	InfluxURL   string
	Database    string
	User        string
	Password    string
	FuturaURL   string
	Interval    time.Duration
	DryRun      bool
	MetricsAddr string

	Measurement string
	TempField   string
	HumiField   string

	SlotMACs map[int][]string
}

// mappingFile is the on-disk shape of a --mapping override. TOML table
// keys are strings, so sensor slots arrive as "1", "2", ... and get
// converted below.
type mappingFile struct {
	Measurement      string              `toml:"measurement"`
	TemperatureField string              `toml:"temperature_field"`
	HumidityField    string              `toml:"humidity_field"`
	Sensors          map[string][]string `toml:"sensors"`
}

// ReadMapping loads a TOML mapping file into config, replacing the
// built-in sensor table and optionally the measurement/field names.
func ReadMapping(path string, config *Config) error {
	var mf mappingFile
	if _, err := toml.DecodeFile(path, &mf); err != nil {
		return fmt.Errorf("reading mapping file %s: %w", path, err)
	}

	if mf.Measurement != "" {
		config.Measurement = mf.Measurement
	}
	if mf.TemperatureField != "" {
		config.TempField = mf.TemperatureField
	}
	if mf.HumidityField != "" {
		config.HumiField = mf.HumidityField
	}

	if mf.Sensors != nil {
		slots := make(map[int][]string, len(mf.Sensors))
		for key, macs := range mf.Sensors {
			slot, err := strconv.Atoi(key)
			if err != nil || slot <= 0 {
				return fmt.Errorf("mapping file %s: sensor slot %q is not a positive integer", path, key)
			}
			slots[slot] = macs
		}
		config.SlotMACs = slots
	}
	return nil
}

// Validate checks everything that must hold before the first query is
// sent. Errors here are configuration errors, reported on stderr with
// exit status 2.
func (c *Config) Validate() error {
	if len(c.SlotMACs) == 0 {
		return fmt.Errorf("sensor mapping is empty; fill defaultSlotMACs in config.go or pass --mapping")
	}
	for slot, macs := range c.SlotMACs {
		if slot <= 0 {
			return fmt.Errorf("sensor slot %d must be positive", slot)
		}
		if len(macs) == 0 {
			return fmt.Errorf("sensor slot %d lists no MACs", slot)
		}
	}
	if c.Interval <= 0 {
		return fmt.Errorf("--interval must be > 0")
	}
	return nil
}

// slots returns the configured slot IDs in ascending order so that each
// cycle walks the table deterministically.
func (c *Config) slots() []int {
	out := make([]int, 0, len(c.SlotMACs))
	for slot := range c.SlotMACs {
		out = append(out, slot)
	}
	sort.Ints(out)
	return out
}
