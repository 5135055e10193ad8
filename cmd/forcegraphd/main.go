// Command forcegraphd serves the live force-directed graph over a
// channel upgrade endpoint: it ingests the markdown corpus, builds the
// graph, starts the physics driver, and accepts streaming sessions.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/golang/glog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sbl8/forcegraph/config"
	"github.com/sbl8/forcegraph/device"
	"github.com/sbl8/forcegraph/ingest"
	"github.com/sbl8/forcegraph/metrics"
	"github.com/sbl8/forcegraph/model"
	"github.com/sbl8/forcegraph/registry"
	"github.com/sbl8/forcegraph/transport"
)

func main() {
	configPath := flag.String("config", "./forcegraph.yaml", "Path to the YAML settings file")
	workers := flag.Int("workers", 0, "Physics worker pool size (0 = GOMAXPROCS)")
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		glog.Exitf("forcegraphd: loading config: %v", err)
	}

	metadata, err := ingest.LoadMetadataStore(settings.Ingestion.MetadataPath)
	if err != nil {
		glog.Exitf("forcegraphd: loading metadata store: %v", err)
	}

	var graph *model.Graph
	if len(metadata) > 0 {
		graph, err = model.Build(metadata)
	} else {
		graph, err = ingest.BuildGraph(settings, nil)
	}
	if err != nil {
		glog.Exitf("forcegraphd: building graph: %v", err)
	}
	model.SeedPositions(graph, nil)

	reg := registry.New(graph, settings.Physics)
	promReg := prometheus.NewRegistry()
	collector := metrics.NewCollector(promReg)

	driver := device.NewDriver(reg, device.NewWorkerPoolBackend(*workers), collector)
	sup := transport.NewSupervisor(reg, settings, collector)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go driver.Run(ctx)
	go refreshLoop(ctx, reg, settings)

	mux := http.NewServeMux()
	mux.Handle("/wss", sup)
	mux.Handle("/metrics", promhttp.HandlerFor(promReg, promhttp.HandlerOpts{}))

	addr := settings.Network.BindAddress + ":" + strconv.Itoa(settings.Network.Port)
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		glog.Infof("forcegraphd: shutting down")
		_ = srv.Close()
	}()

	glog.Infof("forcegraphd: serving on %s (%d nodes, %d edges)", addr, graph.NodeCount(), len(graph.Edges))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		glog.Exitf("forcegraphd: server exited: %v", err)
	}
	os.Exit(0)
}

// refreshLoop re-ingests the markdown corpus on a periodic timer
// (spec.md §5, scheduled task (d)) and installs the result via
// reg.ReplaceGraph, preserving position and velocity for every node
// that survives the rebuild.
func refreshLoop(ctx context.Context, reg *registry.Registry, settings config.Settings) {
	interval := time.Duration(settings.Ingestion.RefreshInterval) * time.Second
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			var prev *model.Graph
			reg.ReadGraph(func(g *model.Graph) { prev = g.Snapshot() })

			fresh, err := ingest.BuildGraph(settings, prev)
			if err != nil {
				glog.Warningf("forcegraphd: ingestion refresh failed: %v", err)
				continue
			}
			reg.ReplaceGraph(fresh)
			glog.Infof("forcegraphd: ingestion refresh applied (%d nodes, %d edges)", fresh.NodeCount(), len(fresh.Edges))
		}
	}
}
