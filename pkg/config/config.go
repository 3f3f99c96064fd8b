package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/ritzau/trailgraph/pkg/geo"
	"github.com/spf13/pflag"
)

// FileName is the optional config file looked up in the working directory
const FileName = "trailgraph.toml"

// Config holds all configuration for the application
type Config struct {
	File          string `koanf:"file"`
	IncludeTracks bool   `koanf:"include-tracks"`
	Distance      string `koanf:"distance"`
	Port          int    `koanf:"port"`
	Watch         bool   `koanf:"watch"`
	Verbosity     string `koanf:"verbosity"`
	VerboseCnt    int    `koanf:"verbose"`
	LogFormat     string `koanf:"log-format"`

	// Command specific
	Out    string `koanf:"out"`
	Dot    string `koanf:"dot"`
	Export string `koanf:"export"`
	From   string `koanf:"from"`
	To     string `koanf:"to"`
}

// Load loads configuration from defaults, config file, environment variables, and flags.
// Priority: Flags > Env > Config File > Defaults
func Load(f *pflag.FlagSet) (*Config, error) {
	return load(f, FileName)
}

func load(f *pflag.FlagSet, path string) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	defaults := map[string]interface{}{
		"file":           "",
		"include-tracks": false,
		"distance":       string(geo.Haversine),
		"port":           8080,
		"watch":          false,
		"verbosity":      "",
		"verbose":        0,
		"log-format":     "compact",
	}
	if err := k.Load(makeMapProvider(defaults), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config File (optional)
	// We ignore errors here as the file might not exist
	_ = k.Load(file.Provider(path), toml.Parser())

	// 3. Environment Variables
	// Prefix: TRAILGRAPH_ (e.g., TRAILGRAPH_INCLUDE_TRACKS=true)
	if err := k.Load(env.Provider("TRAILGRAPH_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(
			strings.TrimPrefix(s, "TRAILGRAPH_")), "_", "-")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if f != nil {
		if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// Unmarshal into struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, cfg.Validate()
}

// Validate rejects settings no command can work with
func (c *Config) Validate() error {
	if _, err := geo.ForMethod(geo.Method(c.Distance)); err != nil {
		return err
	}
	switch c.LogFormat {
	case "compact", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	return nil
}

// DistanceFunc returns the configured distance function
func (c *Config) DistanceFunc() geo.DistanceFunc {
	fn, err := geo.ForMethod(geo.Method(c.Distance))
	if err != nil {
		return geo.Kilometers
	}
	return fn
}

// Helper to use map as a provider
type mapProvider struct {
	m map[string]interface{}
}

func makeMapProvider(m map[string]interface{}) *mapProvider {
	return &mapProvider{m: m}
}

func (p *mapProvider) Read() (map[string]interface{}, error) {
	return p.m, nil
}

func (p *mapProvider) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("not implemented")
}
