package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"legend-of-kiro/internal/observability"
	"legend-of-kiro/internal/sim"
	"legend-of-kiro/internal/telemetry"
	"legend-of-kiro/logging"
)

const defaultAddr = ":8080"

// Config is the server configuration: an optional YAML file, then
// environment overrides.
type Config struct {
	Addr          string               `yaml:"addr"`
	ClientDir     string               `yaml:"clientDir"`
	Session       sim.Config           `yaml:"session"`
	Loop          sim.LoopConfig       `yaml:"loop"`
	Logging       logging.Config       `yaml:"logging"`
	Observability observability.Config `yaml:"observability"`

	Logger telemetry.Logger `yaml:"-"`
}

func DefaultConfig() Config {
	return Config{
		Addr:    defaultAddr,
		Session: sim.DefaultConfig(),
		Loop:    sim.LoopConfig{TickRate: sim.DefaultTickRate, CommandCapacity: sim.DefaultCommandCapacity},
		Logging: logging.DefaultConfig(),
	}
}

// LoadConfig reads path over the defaults. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) normalized() Config {
	if c.Addr == "" {
		c.Addr = defaultAddr
	}
	if c.Loop.TickRate <= 0 {
		c.Loop.TickRate = sim.DefaultTickRate
	}
	if c.Loop.CommandCapacity <= 0 {
		c.Loop.CommandCapacity = sim.DefaultCommandCapacity
	}
	if len(c.Logging.EnabledSinks) == 0 {
		c.Logging.EnabledSinks = []string{logging.SinkConsole}
	}
	if c.Logging.BufferSize <= 0 {
		c.Logging.BufferSize = logging.DefaultConfig().BufferSize
	}
	return c
}

// applyEnv overrides fields from the environment. Invalid values are
// logged and ignored.
func applyEnv(cfg Config, logger telemetry.Logger, lookup func(string) (string, bool)) Config {
	if raw, ok := lookup("KIRO_ADDR"); ok && raw != "" {
		cfg.Addr = raw
	}
	if raw, ok := lookup("TICK_RATE"); ok && raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.Loop.TickRate = value
		} else {
			logger.Printf("invalid TICK_RATE=%q: %v", raw, err)
		}
	}
	if raw, ok := lookup("ENABLE_PPROF"); ok && raw != "" {
		if value, err := strconv.ParseBool(raw); err == nil {
			cfg.Observability.EnablePprof = value
		} else {
			logger.Printf("invalid ENABLE_PPROF=%q: %v", raw, err)
		}
	}
	if raw, ok := lookup("LOG_JSON_PATH"); ok && raw != "" {
		cfg.Logging.JSON.FilePath = raw
		if !cfg.Logging.HasSink(logging.SinkJSON) {
			cfg.Logging.EnabledSinks = append(cfg.Logging.EnabledSinks, logging.SinkJSON)
		}
	}
	if raw, ok := lookup("LOG_LEVEL"); ok && raw != "" {
		if value, err := logging.ParseSeverity(raw); err == nil {
			cfg.Logging.MinimumSeverity = value
		} else {
			logger.Printf("invalid LOG_LEVEL=%q: %v", raw, err)
		}
	}
	if raw, ok := lookup("CLIENT_DIR"); ok {
		cfg.ClientDir = raw
	}
	return cfg
}
