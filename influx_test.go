package main

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLastValueQuery(t *testing.T) {
	q := lastValueQuery("atc_thermometer", "temperature")

	assert.Equal(t,
		`SELECT last("temperature") FROM "atc_thermometer" WHERE time > now() - 1d GROUP BY "mac"::tag`,
		q)
}

func TestQueryLastSendsBasicAuth(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"results":[]}`)
	}))
	defer srv.Close()

	c, err := influxDBClient(Config{
		InfluxURL: srv.URL,
		User:      "grafana",
		Password:  "secret",
	})
	require.NoError(t, err)
	defer c.Close()

	_, err = queryLast(c, "sensors", lastValueQuery("atc_thermometer", "temperature"))

	require.NoError(t, err)
	want := "Basic " + base64.StdEncoding.EncodeToString([]byte("grafana:secret"))
	assert.Equal(t, want, gotAuth)
}

func TestQueryLastNoCredentialsNoHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"results":[]}`)
	}))
	defer srv.Close()

	c, err := influxDBClient(Config{InfluxURL: srv.URL})
	require.NoError(t, err)
	defer c.Close()

	_, err = queryLast(c, "sensors", lastValueQuery("atc_thermometer", "humidity"))

	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestQueryLastStoreError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"error": "authorization failed"}`)
	}))
	defer srv.Close()

	c, err := influxDBClient(Config{InfluxURL: srv.URL})
	require.NoError(t, err)
	defer c.Close()

	_, err = queryLast(c, "sensors", lastValueQuery("atc_thermometer", "temperature"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "authorization failed")
}

func TestQueryLastNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"results":[]}`)
	}))
	defer srv.Close()

	c, err := influxDBClient(Config{InfluxURL: srv.URL})
	require.NoError(t, err)
	defer c.Close()

	result, err := queryLast(c, "sensors", lastValueQuery("atc_thermometer", "temperature"))

	require.NoError(t, err)
	assert.Empty(t, result.Series)
}
