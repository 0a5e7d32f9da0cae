package app

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/urfave/cli/v3"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server" validate:"required"`
	Metadata  MetadataConfig  `koanf:"metadata" validate:"required"`
	Sources   []SourceConfig  `koanf:"sources" validate:"required,min=1,dive"`
	Devices   []DeviceConfig  `koanf:"devices" validate:"required,min=1,dive"`
	Selection SelectionConfig `koanf:"selection"`
	Network   NetworkConfig   `koanf:"network" validate:"required"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `koanf:"addr" validate:"required"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required"`
}

// MetadataConfig selects and configures the metadata backend.
type MetadataConfig struct {
	Backend string        `koanf:"backend" validate:"required,oneof=omdb tmdb"`
	APIKey  string        `koanf:"apikey"`
	Timeout time.Duration `koanf:"timeout" validate:"required"`
}

// SourceConfig defines a YAML-configured video source provider.
type SourceConfig struct {
	Name    string        `koanf:"name" validate:"required"`
	Kind    string        `koanf:"kind" validate:"required,oneof=quality direct"`
	URL     string        `koanf:"url" validate:"required,url"`
	Timeout time.Duration `koanf:"timeout" validate:"required"`
}

// DeviceConfig is one entry of the static device registry.
type DeviceConfig struct {
	Name    string `koanf:"name" validate:"required"`
	Address string `koanf:"address" validate:"required"`
	Type    string `koanf:"type" validate:"omitempty,oneof=roku chromecast dlna"`
}

// SelectionConfig holds the default stream-selection policy applied when a
// request carries no explicit stream index.
type SelectionConfig struct {
	Policy string `koanf:"policy" validate:"omitempty,oneof=first quality"`
}

// NetworkConfig holds settings for device dispatch and discovery.
type NetworkConfig struct {
	Timeout         time.Duration `koanf:"timeout" validate:"required"`
	DiscoveryWindow time.Duration `koanf:"discovery_window" validate:"required"`
}

// Load reads and validates configuration from a YAML file. The metadata API
// key may be left empty in the file and supplied through OMDB_API_KEY or
// TMDB_API_KEY instead, so credentials stay out of checked-in configs.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.Metadata.APIKey == "" {
		switch cfg.Metadata.Backend {
		case "tmdb":
			cfg.Metadata.APIKey = os.Getenv("TMDB_API_KEY")
		default:
			cfg.Metadata.APIKey = os.Getenv("OMDB_API_KEY")
		}
	}

	for i := range cfg.Devices {
		if cfg.Devices[i].Type == "" {
			cfg.Devices[i].Type = "roku"
		}
	}
	if cfg.Selection.Policy == "" {
		cfg.Selection.Policy = "first"
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// ConfigFrom extracts the Config from the CLI command metadata.
func ConfigFrom(cmd *cli.Command) (*Config, error) {
	v, ok := cmd.Root().Metadata["config"]
	if !ok {
		return nil, fmt.Errorf("config not found in command metadata")
	}
	cfg, ok := v.(*Config)
	if !ok {
		return nil, fmt.Errorf("config has unexpected type %T", v)
	}
	return cfg, nil
}
