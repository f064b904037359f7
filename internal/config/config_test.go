package config_test

import (
	"os"
	"testing"

	"zk-connbalancer/internal/config"
)

func withEnvs(t *testing.T, kv map[string]string, fn func()) {
	t.Helper()
	orig := map[string]*string{}
	for k, v := range kv {
		if ov, ok := os.LookupEnv(k); ok {
			tmp := ov
			orig[k] = &tmp
		} else {
			orig[k] = nil
		}
		if err := os.Setenv(k, v); err != nil {
			t.Fatalf("set env %s: %v", k, err)
		}
	}
	fn()
	for k, ov := range orig {
		if ov == nil {
			_ = os.Unsetenv(k)
		} else {
			_ = os.Setenv(k, *ov)
		}
	}
}

func TestLoadRequiresHosts(t *testing.T) {
	withEnvs(t, map[string]string{"ZK_HOSTS": ""}, func() {
		if _, err := config.Load(); err == nil {
			t.Fatal("expected error when ZK_HOSTS is unset")
		}
	})
}

func TestLoadDefaults(t *testing.T) {
	withEnvs(t, map[string]string{
		"ZK_HOSTS":  "a:2181,b:2181",
		"ZK_POLICY": "",
	}, func() {
		cfg, err := config.Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cfg.Hosts) != 2 {
			t.Fatalf("expected 2 hosts, got %v", cfg.Hosts)
		}
		if cfg.Cluster != "default" {
			t.Fatalf("expected default cluster name, got %q", cfg.Cluster)
		}
		if cfg.FallbackSessionMinSeconds != 5 || cfg.FallbackSessionMaxSeconds != 30 {
			t.Fatalf("unexpected fallback session bounds: %+v", cfg)
		}
	})
}

func TestLoadRejectsUnknownPolicy(t *testing.T) {
	withEnvs(t, map[string]string{
		"ZK_HOSTS":  "a:2181",
		"ZK_POLICY": "NOT_A_POLICY",
	}, func() {
		if _, err := config.Load(); err == nil {
			t.Fatal("expected error for unknown policy")
		}
	})
}

func TestLoadRejectsInvertedFallbackRange(t *testing.T) {
	withEnvs(t, map[string]string{
		"ZK_HOSTS":                         "a:2181",
		"ZK_FALLBACK_SESSION_MIN_SECONDS":  "30",
		"ZK_FALLBACK_SESSION_MAX_SECONDS":  "5",
	}, func() {
		if _, err := config.Load(); err == nil {
			t.Fatal("expected error for inverted fallback session range")
		}
	})
}

func TestLoadTrimsAndSkipsBlankHosts(t *testing.T) {
	withEnvs(t, map[string]string{
		"ZK_HOSTS": " a:2181 , , b:2181 ",
	}, func() {
		cfg, err := config.Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cfg.Hosts) != 2 || cfg.Hosts[0] != "a:2181" || cfg.Hosts[1] != "b:2181" {
			t.Fatalf("unexpected hosts: %v", cfg.Hosts)
		}
	})
}
