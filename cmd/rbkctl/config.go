package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/rbkctl/internal/client"
)

// rbkctl config.toml key mapping to client connection settings.
type fileConfig struct {
	Host                 string `toml:"host"`
	ConnectTimeoutMillis int64  `toml:"connect_timeout_ms"`
	RequestTimeoutMillis int64  `toml:"request_timeout_ms"`
}

// rbkctl loader for TOML config with default overlay.
func loadClientConfig(path string) (client.Config, error) {
	cfg := client.DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return client.Config{}, fmt.Errorf("load rbkctl config: %w", err)
	}

	if meta.IsDefined("host") {
		cfg.Host = strings.TrimSpace(raw.Host)
	}
	if meta.IsDefined("connect_timeout_ms") {
		cfg.ConnectTimeout = time.Duration(raw.ConnectTimeoutMillis) * time.Millisecond
	}
	if meta.IsDefined("request_timeout_ms") {
		cfg.RequestTimeout = time.Duration(raw.RequestTimeoutMillis) * time.Millisecond
	}
	return cfg, nil
}
