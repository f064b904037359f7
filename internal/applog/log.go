// Package applog is the structured logging sink shared by the balancer and
// connection loop. It mirrors the surrounding codebase's logging shape: a
// package-level Emit that prints locally (suppressed under `go test`) and
// fire-and-forgets a copy to Loki, with independently toggleable
// info/debug/error levels read from an optional YAML config file.
package applog

import (
	"bytes"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	lokiURL    string
	lokiOnce   sync.Once
	lokiClient = &http.Client{Timeout: 200 * time.Millisecond}

	infoEnabled  = true
	debugEnabled = false
	errorEnabled = true
)

// Emit prints locally (if enabled) and pushes the same line to Loki with a
// "level" label.
func Emit(level, component string, labels map[string]string, line string) {
	lvl := strings.ToLower(level)
	if logEnabled() && levelEnabled(lvl) {
		log.Print(line)
	}
	pushLoki(lvl, component, labels, line)
}

func levelEnabled(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return debugEnabled
	case "error":
		return errorEnabled
	default:
		return infoEnabled
	}
}

// logEnabled disables local log printing under `go test` so test output
// stays readable.
func logEnabled() bool {
	if flag.Lookup("test.v") != nil || flag.Lookup("test.run") != nil || flag.Lookup("test.bench") != nil {
		return false
	}
	return true
}

func pushLoki(level, component string, labels map[string]string, line string) {
	lokiOnce.Do(initLoki)
	if lokiURL == "" || !levelEnabled(level) {
		return
	}

	streamLabels := map[string]string{
		"component": component,
		"level":     level,
	}
	for k, v := range labels {
		if strings.TrimSpace(k) == "" {
			continue
		}
		streamLabels[k] = v
	}

	ts := strconv.FormatInt(time.Now().UnixNano(), 10)
	payload := struct {
		Streams []struct {
			Stream map[string]string `json:"stream"`
			Values [][2]string       `json:"values"`
		} `json:"streams"`
	}{
		Streams: []struct {
			Stream map[string]string `json:"stream"`
			Values [][2]string       `json:"values"`
		}{
			{Stream: streamLabels, Values: [][2]string{{ts, line}}},
		},
	}

	b, _ := json.Marshal(payload)
	req, err := http.NewRequest(http.MethodPost, lokiURL, bytes.NewReader(b))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")
	_, _ = lokiClient.Do(req) // fire-and-forget
}

// initLoki lazily reads configs/config.yaml|yml for the Loki push URL and
// the per-level toggles.
func initLoki() {
	lokiURL = ""

	configPath := ""
	for _, candidate := range []string{"configs/config.yaml", "configs/config.yml"} {
		if _, err := os.Stat(candidate); err == nil {
			configPath = candidate
			break
		}
	}
	if configPath == "" {
		return
	}

	var cfg struct {
		Metrics *struct {
			LokiURL string `yaml:"loki_url"`
		} `yaml:"metrics"`
		Logging *struct {
			InfoEnabled  *bool `yaml:"info_enabled"`
			DebugEnabled *bool `yaml:"debug_enabled"`
			ErrorEnabled *bool `yaml:"error_enabled"`
		} `yaml:"logging"`
	}
	b, err := os.ReadFile(configPath)
	if err != nil {
		return
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return
	}
	if cfg.Metrics != nil && strings.TrimSpace(cfg.Metrics.LokiURL) != "" {
		lokiURL = strings.TrimSpace(cfg.Metrics.LokiURL)
	}
	if cfg.Logging != nil {
		if cfg.Logging.InfoEnabled != nil {
			infoEnabled = *cfg.Logging.InfoEnabled
		}
		if cfg.Logging.DebugEnabled != nil {
			debugEnabled = *cfg.Logging.DebugEnabled
		}
		if cfg.Logging.ErrorEnabled != nil {
			errorEnabled = *cfg.Logging.ErrorEnabled
		}
	}
	if lokiURL != "" && !strings.Contains(lokiURL, "/loki/api/v1/push") {
		lokiURL = strings.TrimRight(lokiURL, "/") + "/loki/api/v1/push"
	}
}

// MustHostname returns the current hostname or "unknown" on error.
func MustHostname() string {
	h, err := os.Hostname()
	if err != nil || h == "" {
		return "unknown"
	}
	return h
}
