// Package config loads the connection-balancer's runtime configuration
// from a .env file (via godotenv) and the process environment, the same
// layering the demo binaries use.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"zk-connbalancer/internal/balancer"
)

// Config is the fully-resolved configuration for one cluster connection.
type Config struct {
	// Cluster names this configuration; it is also the key under which the
	// resulting balancer is registered in the process-wide table.
	Cluster string
	Hosts   []string
	Policy  balancer.Policy

	FallbackSessionMinSeconds int
	FallbackSessionMaxSeconds int

	DialTimeout      time.Duration
	HandshakeTimeout time.Duration
	ConnectTimeout   time.Duration
}

const (
	defaultPolicy                    = balancer.PolicyRandom
	defaultFallbackSessionMinSeconds = 5
	defaultFallbackSessionMaxSeconds = 30
	defaultDialTimeout               = 3 * time.Second
	defaultHandshakeTimeout          = 2 * time.Second
	defaultConnectTimeout            = 10 * time.Second
	defaultCluster                   = "default"
)

// Load reads .env (if present, ignored if missing) then the process
// environment, returning a validated Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cluster := getEnv("ZK_CLUSTER", defaultCluster)

	rawHosts := strings.TrimSpace(os.Getenv("ZK_HOSTS"))
	if rawHosts == "" {
		return nil, errors.New("ZK_HOSTS must be defined (comma-separated host:port list)")
	}
	var hosts []string
	for _, h := range strings.Split(rawHosts, ",") {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		hosts = append(hosts, h)
	}
	if len(hosts) == 0 {
		return nil, errors.New("ZK_HOSTS provided but no valid entries parsed")
	}

	policyRaw := strings.ToUpper(strings.TrimSpace(os.Getenv("ZK_POLICY")))
	policy := defaultPolicy
	if policyRaw != "" {
		policy = balancer.Policy(policyRaw)
		if !validPolicy(policy) {
			return nil, fmt.Errorf("invalid ZK_POLICY %q", policyRaw)
		}
	}

	minSec := getEnvInt("ZK_FALLBACK_SESSION_MIN_SECONDS", defaultFallbackSessionMinSeconds)
	maxSec := getEnvInt("ZK_FALLBACK_SESSION_MAX_SECONDS", defaultFallbackSessionMaxSeconds)
	if maxSec < minSec {
		return nil, fmt.Errorf("ZK_FALLBACK_SESSION_MAX_SECONDS (%d) must be >= ZK_FALLBACK_SESSION_MIN_SECONDS (%d)", maxSec, minSec)
	}

	return &Config{
		Cluster:                   cluster,
		Hosts:                     hosts,
		Policy:                    policy,
		FallbackSessionMinSeconds: minSec,
		FallbackSessionMaxSeconds: maxSec,
		DialTimeout:               getEnvDuration("ZK_DIAL_TIMEOUT", defaultDialTimeout),
		HandshakeTimeout:          getEnvDuration("ZK_HANDSHAKE_TIMEOUT", defaultHandshakeTimeout),
		ConnectTimeout:            getEnvDuration("ZK_CONNECT_TIMEOUT", defaultConnectTimeout),
	}, nil
}

func validPolicy(p balancer.Policy) bool {
	switch p {
	case balancer.PolicyRandom,
		balancer.PolicyRoundRobin,
		balancer.PolicyFirstOrRandom,
		balancer.PolicyInOrder,
		balancer.PolicyNearestHostname,
		balancer.PolicyHostnameLevenshteinDistance:
		return true
	default:
		return false
	}
}

// getEnv retrieves an environment variable or returns the default value.
func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// getEnvInt retrieves an integer environment variable or returns the
// default value.
func getEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return parsed
}

// getEnvDuration retrieves a duration environment variable (Go duration
// syntax, e.g. "3s") or returns the default value.
func getEnvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
