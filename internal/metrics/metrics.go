package metrics

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	reg *prometheus.Registry

	Queries       *prometheus.CounterVec // outcome label: found|no_route|unknown_station|invalid
	QueryDuration prometheus.Histogram
	RouteDistance prometheus.Histogram

	NetworkStations prometheus.Gauge
	NetworkEdges    prometheus.Gauge

	NATSRequests  *prometheus.CounterVec // result label: ok|error
	NATSConnected prometheus.Gauge
}

func NewCollector(stations, edges int) *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		Queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "routefinder_queries_total",
			Help: "Route queries by outcome.",
		}, []string{"outcome"}),
		QueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "routefinder_query_duration_seconds",
			Help:    "Time spent computing a route.",
			Buckets: prometheus.ExponentialBuckets(0.000005, 2, 15),
		}),
		RouteDistance: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "routefinder_route_distance_km",
			Help:    "Distance of found routes.",
			Buckets: []float64{2, 5, 10, 15, 20, 25, 30, 40},
		}),
		NetworkStations: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "routefinder_network_stations",
			Help: "Stations in the loaded network.",
		}),
		NetworkEdges: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "routefinder_network_edges",
			Help: "Connected station pairs in the loaded network.",
		}),
		NATSRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "routefinder_nats_requests_total",
			Help: "Route requests received over NATS.",
		}, []string{"result"}),
		NATSConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "routefinder_nats_connected",
			Help: "1 if NATS connection is established, 0 otherwise.",
		}),
	}

	reg.MustRegister(
		c.Queries, c.QueryDuration, c.RouteDistance,
		c.NetworkStations, c.NetworkEdges,
		c.NATSRequests, c.NATSConnected,
	)

	c.NetworkStations.Set(float64(stations))
	c.NetworkEdges.Set(float64(edges))

	return c
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

// Serve starts an HTTP server exposing /metrics on the given address.
func (c *Collector) Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server error: %v", err)
		}
	}()
	log.Printf("metrics listening on %s", addr)
	return srv
}
