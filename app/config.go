package app

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// Default data sources.
const (
	DefaultLandURL      = "https://raw.githubusercontent.com/martynafford/natural-earth-geojson/master/110m/physical/ne_110m_land.json"
	DefaultCountryAURL  = "https://raw.githubusercontent.com/glynnbird/countriesgeojson/master/uzbekistan.geojson"
	DefaultCountryBURL  = "https://raw.githubusercontent.com/nvkelso/natural-earth-vector/master/geojson/ne_110m_admin_0_countries.geojson"
	DefaultCountryBCode = "KR"
)

// Config holds all application configuration.
type Config struct {
	Labels   LabelsConfig   `mapstructure:"labels"`
	Data     DataConfig     `mapstructure:"data"`
	Window   WindowConfig   `mapstructure:"window"`
	Headless HeadlessConfig `mapstructure:"headless"`
	HUD      HUDConfig      `mapstructure:"hud"`
	Debug    DebugConfig    `mapstructure:"debug"`
	Log      LogConfig      `mapstructure:"log"`
}

// LabelsConfig is the text shown above the two markers.
type LabelsConfig struct {
	Source      string `mapstructure:"source"`
	Destination string `mapstructure:"destination"`
}

type DataConfig struct {
	Fetch        bool   `mapstructure:"fetch"`
	LandURL      string `mapstructure:"land_url"`
	CountryAURL  string `mapstructure:"country_a_url"`
	CountryBURL  string `mapstructure:"country_b_url"`
	CountryBCode string `mapstructure:"country_b_code"`
}

type WindowConfig struct {
	Title  string `mapstructure:"title"`
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
}

type HeadlessConfig struct {
	Width  int     `mapstructure:"width"`
	Height int     `mapstructure:"height"`
	DPR    float64 `mapstructure:"dpr"`
}

type HUDConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// DebugConfig enables the debug HTTP server when Addr is set.
type DebugConfig struct {
	Addr string `mapstructure:"addr"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() Config {
	cfg, _ := load(viper.New(), "")
	return *cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("labels.source", "NEVONA")
	v.SetDefault("labels.destination", "J-Smart Solution")
	v.SetDefault("data.fetch", true)
	v.SetDefault("data.land_url", DefaultLandURL)
	v.SetDefault("data.country_a_url", DefaultCountryAURL)
	v.SetDefault("data.country_b_url", DefaultCountryBURL)
	v.SetDefault("data.country_b_code", DefaultCountryBCode)
	v.SetDefault("window.title", "Globe")
	v.SetDefault("window.width", 960)
	v.SetDefault("window.height", 640)
	v.SetDefault("headless.width", 960)
	v.SetDefault("headless.height", 640)
	v.SetDefault("headless.dpr", 1.0)
	v.SetDefault("hud.enabled", false)
	v.SetDefault("debug.addr", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// LoadConfig reads configuration from defaults, an optional globe.yaml and
// GLOBE_* environment variables, in increasing priority. An explicit path
// must exist; the default search locations may be empty.
func LoadConfig(path string) (*Config, error) {
	return load(viper.New(), path)
}

func load(v *viper.Viper, path string) (*Config, error) {
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("globe")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if err := v.ReadInConfig(); err != nil {
			var nf viper.ConfigFileNotFoundError
			if !errors.As(err, &nf) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	// Environment variables: GLOBE_LABELS_SOURCE → labels.source
	v.SetEnvPrefix("GLOBE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Data.Fetch {
		for key, raw := range map[string]string{
			"data.land_url":      c.Data.LandURL,
			"data.country_a_url": c.Data.CountryAURL,
			"data.country_b_url": c.Data.CountryBURL,
		} {
			if err := checkURL(raw); err != nil {
				errs = append(errs, fmt.Sprintf("%s %v", key, err))
			}
		}
		if len(c.Data.CountryBCode) != 2 || strings.ToUpper(c.Data.CountryBCode) != c.Data.CountryBCode {
			errs = append(errs, fmt.Sprintf("data.country_b_code must be a two-letter ISO code, got %q", c.Data.CountryBCode))
		}
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Sprintf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Headless.Width <= 0 || c.Headless.Height <= 0 {
		errs = append(errs, fmt.Sprintf("headless size must be positive, got %dx%d", c.Headless.Width, c.Headless.Height))
	}
	if c.Headless.DPR <= 0 || c.Headless.DPR > 8 {
		errs = append(errs, fmt.Sprintf("headless.dpr must be in (0, 8], got %v", c.Headless.DPR))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("log.format must be text or json, got %q", c.Log.Format))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level must be one of debug|info|warn|error, got %q", c.Log.Level))
	}

	if len(errs) > 0 {
		sort.Strings(errs)
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func checkURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("is not a valid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("must be an http(s) url, got %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("has no host: %q", raw)
	}
	return nil
}
