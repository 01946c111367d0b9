package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// The gofutura gateway exposes its register state as Prometheus gauges;
// the bridge mirrors the values it routes so both sides can be compared
// on one dashboard.
var (
	cyclesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bridge_cycles_total",
		Help: "Completed polling cycles",
	})
	emptyCycles = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bridge_empty_cycles_total",
		Help: "Cycles that produced no payload",
	})
	fieldsWritten = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bridge_fields_written_total",
		Help: "Holding fields submitted to gofutura",
	})
	extSensTemp = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "bridge_ext_sens_temp_celsius",
		Help: "Last routed external sensor temperature (°C)",
	}, []string{"instance"})
	extSensRH = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "bridge_ext_sens_rh_percent",
		Help: "Last routed external sensor relative humidity (%)",
	}, []string{"instance"})
)

func registerBridgeMetrics() {
	prometheus.MustRegister(cyclesTotal, emptyCycles, fieldsWritten, extSensTemp, extSensRH)
}

// updateMetrics mirrors one submitted payload into the bridge gauges.
func updateMetrics(payload map[string]float64) {
	fieldsWritten.Add(float64(len(payload)))
	for field, val := range payload {
		if inst, ok := strings.CutPrefix(field, "ExtSensTemp"); ok {
			extSensTemp.WithLabelValues(inst).Set(val)
		} else if inst, ok := strings.CutPrefix(field, "ExtSensRH"); ok {
			extSensRH.WithLabelValues(inst).Set(val)
		}
	}
}

// serveMetrics starts the optional metrics listener. The polling loop
// itself stays on the main goroutine.
func serveMetrics(addr string) {
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Printf("Serving metrics on %s", addr)
		if err := http.ListenAndServe(addr, nil); err != nil {
			log.Fatalf("Metrics server failed: %v", err)
		}
	}()
}
