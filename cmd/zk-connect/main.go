// Command zk-connect is a demo client: it loads a cluster configuration,
// registers a balancer for it, and drives the connection loop once,
// logging the cluster and policy it connected with. It also serves
// Prometheus metrics on a separate HTTP listener (ZK_METRICS_LISTEN,
// default ":9100"), following the shape of the upstream demo server this
// project was grounded on.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"zk-connbalancer/internal/balancer"
	"zk-connbalancer/internal/conn"
	"zk-connbalancer/internal/config"
	"zk-connbalancer/internal/coordsession"
	"zk-connbalancer/internal/dnsprobe"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	table := balancer.NewTable()
	bal, err := table.Register(cfg.Cluster, cfg.Policy, cfg.Hosts, os.Hostname)
	if err != nil {
		log.Fatalf("registering balancer for cluster %s: %v", cfg.Cluster, err)
	}

	prober := dnsprobe.NewResolverProber(nil)
	construct := coordsession.NewTCPConstructor(cfg.DialTimeout, cfg.HandshakeTimeout)

	metricsAddr := ":9100"
	if v := os.Getenv("ZK_METRICS_LISTEN"); v != "" {
		metricsAddr = v
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Printf("serving metrics on %s", metricsAddr)
		if err := http.ListenAndServe(metricsAddr, mux); err != nil {
			log.Printf("metrics server exited: %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	sess, err := conn.CreateClient(ctx, conn.Options{
		Cluster:            cfg.Cluster,
		Balancer:           bal,
		DNSProber:          prober,
		Construct:          construct,
		FallbackMinSeconds: cfg.FallbackSessionMinSeconds,
		FallbackMaxSeconds: cfg.FallbackSessionMaxSeconds,
		Policy:             string(cfg.Policy),
	})
	if err != nil {
		log.Fatalf("could not connect to cluster %s: %v", cfg.Cluster, err)
	}
	defer sess.Close()

	log.Printf("connected to cluster %s using policy %s", cfg.Cluster, cfg.Policy)
	time.Sleep(time.Second)
}
