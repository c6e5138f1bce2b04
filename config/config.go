package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/skylane/rosterops/core/metrics"
	"github.com/skylane/rosterops/infra/notify"
	"github.com/skylane/rosterops/infra/optimizer"
)

type Config struct {
	Optimizer optimizer.Config `json:"optimizer"`
	Metrics   metrics.Config   `json:"metrics"`
	Notify    notify.Config    `json:"notify"`
	Weather   WeatherConfig    `json:"weather"`
	API       APIConfig        `json:"api"`
	Insights  InsightsConfig   `json:"insights"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("ROSTEROPS_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "rosterops_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Optimizer.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.Notify.SetDefaults()
	cfg.Weather.SetDefaults()
	cfg.API.SetDefaults()
	cfg.Insights.SetDefaults()
	if err := cfg.Optimizer.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Notify.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.API.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Insights.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
