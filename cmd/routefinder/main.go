package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"metro-router/internal/api"
	"metro-router/internal/config"
	"metro-router/internal/db"
	"metro-router/internal/metrics"
	"metro-router/internal/natsapi"
	"metro-router/internal/network"
	"metro-router/internal/planner"
	"metro-router/internal/transit"
)

func main() {
	from := flag.String("from", "", "source station for a one-shot query")
	to := flag.String("to", "", "destination station for a one-shot query")
	listStations := flag.Bool("stations", false, "print the station list and exit")
	flag.Parse()

	// Load configuration from .env and environment
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	// Root context with cancellation on SIGINT/SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// The graph is fully built here, before anything can query it.
	graph, err := loadGraph(ctx, cfg)
	if err != nil {
		log.Fatalf("network error: %v", err)
	}
	log.Printf("network loaded source=%s stations=%d edges=%d lines=%s",
		cfg.NetworkSource, graph.StationCount(), graph.EdgeCount(), strings.Join(graph.Lines(), ","))

	if *listStations || *from != "" || *to != "" {
		svc := planner.NewService(graph, nil, cfg.LogQueries)
		os.Exit(runOnce(ctx, svc, *listStations, *from, *to))
	}

	// Metrics setup
	var mcol *metrics.Collector
	var metricsSrv *http.Server
	if cfg.MetricsAddr != "" {
		mcol = metrics.NewCollector(graph.StationCount(), graph.EdgeCount())
		metricsSrv = mcol.Serve(cfg.MetricsAddr)
	}

	svc := planner.NewService(graph, wrapQueryMetrics(mcol), cfg.LogQueries)

	// NATS responder
	var responder *natsapi.Responder
	if cfg.NATSURL != "" {
		nm := wrapNATSMetrics(mcol)
		nc, err := natsapi.Connect(cfg.NATSURL, nm)
		if err != nil {
			log.Fatalf("nats error: %v", err)
		}
		defer nc.Close()
		responder, err = natsapi.NewResponder(ctx, nc, cfg.NATSSubject, cfg.NATSQueue, svc, nm)
		if err != nil {
			log.Fatalf("nats subscribe error: %v", err)
		}
	}

	// HTTP API
	var apiSrv *http.Server
	if cfg.HTTPAddr != "" {
		apiSrv = &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      api.NewHandler(svc).Routes(),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		}
		go func() {
			log.Printf("http listening on %s", cfg.HTTPAddr)
			if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
				cancel()
			}
		}()
	}

	if apiSrv == nil && responder == nil {
		log.Fatalf("nothing to serve: set HTTP_ADDR or NATS_URL")
	}

	// Block until context cancelled
	<-ctx.Done()
	log.Println("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if apiSrv != nil {
		if err := apiSrv.Shutdown(shutdownCtx); err != nil {
			log.Printf("http shutdown error: %v", err)
		}
	}
	if responder != nil {
		responder.Close(cfg.ShutdownTimeout)
	}
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
	log.Println("shutdown complete")
}

func loadGraph(ctx context.Context, cfg *config.Config) (*transit.Graph, error) {
	switch cfg.NetworkSource {
	case config.SourceFile:
		tab, err := network.LoadFile(cfg.NetworkFile)
		if err != nil {
			return nil, err
		}
		return tab.Build()
	case config.SourcePostgres:
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("db open: %w", err)
		}
		defer conn.Close()
		if err := db.Ping(ctx, conn); err != nil {
			return nil, fmt.Errorf("db ping: %w", err)
		}
		segs, version, err := db.LoadSegments(ctx, conn, cfg.NetworkVersion, cfg.City)
		if err != nil {
			return nil, err
		}
		log.Printf("using network version %q (%d segments)", version, len(segs))
		return network.Build(segs)
	default:
		tab, err := network.Default()
		if err != nil {
			return nil, err
		}
		return tab.Build()
	}
}

func runOnce(ctx context.Context, svc *planner.Service, listStations bool, from, to string) int {
	if listStations {
		for _, st := range svc.Stations() {
			fmt.Printf("%-28s %s\n", st.Name, st.Line)
		}
		return 0
	}
	route, err := svc.Plan(ctx, from, to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	if !route.Found() {
		fmt.Println(planner.MessageNoRoute)
		return 2
	}
	for i, name := range route.Path {
		fmt.Printf("%2d. %-28s %s\n", i+1, name, route.Lines[i])
	}
	fmt.Printf("distance: %.1f km\nfare: %d\ntime: %d min\ninterchanges: %d\n",
		route.Distance, route.Fare, route.EstimatedTime, route.Interchanges)
	return 0
}

// wrapQueryMetrics adapts our Collector to the planner.Metrics interface.
func wrapQueryMetrics(c *metrics.Collector) planner.Metrics {
	if c == nil {
		return nil
	}
	return &queryMetrics{c: c}
}

type queryMetrics struct{ c *metrics.Collector }

func (q *queryMetrics) QueryObserve(outcome string, d time.Duration, km float64) {
	q.c.Queries.WithLabelValues(outcome).Inc()
	q.c.QueryDuration.Observe(d.Seconds())
	if outcome == planner.OutcomeFound {
		q.c.RouteDistance.Observe(km)
	}
}

// wrapNATSMetrics adapts our Collector to the natsapi.ResponderMetrics interface.
func wrapNATSMetrics(c *metrics.Collector) natsapi.ResponderMetrics {
	if c == nil {
		return nil
	}
	return &natsMetrics{c: c}
}

type natsMetrics struct{ c *metrics.Collector }

func (n *natsMetrics) NATSRequestInc(ok bool) {
	if ok {
		n.c.NATSRequests.WithLabelValues("ok").Inc()
	} else {
		n.c.NATSRequests.WithLabelValues("error").Inc()
	}
}

func (n *natsMetrics) NATSSetConnected(b bool) {
	if b {
		n.c.NATSConnected.Set(1)
	} else {
		n.c.NATSConnected.Set(0)
	}
}
