// Package config loads server and CLI settings with viper.
//
// Values come, in increasing priority, from built-in defaults, an optional
// YAML file, IMAGE_MCP_* environment variables and bound command line flags.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/ironsheep/image-list-mcp/internal/imaging"
	"github.com/ironsheep/image-list-mcp/internal/logging"
	"github.com/ironsheep/image-list-mcp/internal/order"
)

// EnvPrefix is prepended to every environment variable, so log.level is read
// from IMAGE_MCP_LOG_LEVEL.
const EnvPrefix = "IMAGE_MCP"

// Config holds the resolved settings.
type Config struct {
	Log       logging.Config
	Sort      SortConfig
	Selection SelectionConfig
	Overlay   OverlayConfig
}

// SortConfig holds the default sort policy and the metadata worker count.
type SortConfig struct {
	Options order.Options
	Workers int
}

// SelectionConfig holds selection drawing settings.
type SelectionConfig struct {
	HandleSize float64
}

// OverlayConfig holds preview rendering settings.
type OverlayConfig struct {
	Color string
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "stderr")
	v.SetDefault("sort.order_by", order.Name.String())
	v.SetDefault("sort.order_type", order.Asc.String())
	v.SetDefault("sort.group_by_dir", false)
	v.SetDefault("sort.workers", runtime.NumCPU())
	v.SetDefault("selection.handle_size", 8.0)
	v.SetDefault("overlay.color", imaging.DefaultOverlayColor)
}

// ReadFile reads path into v. An empty path searches for
// ".image-list-mcp.yaml" in the working and home directories, and a missing
// file is not an error.
func ReadFile(v *viper.Viper, path, home string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".image-list-mcp")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home != "" {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// Decode resolves v into a Config and validates it.
func Decode(v *viper.Viper) (*Config, error) {
	by, err := order.ParseOrderBy(v.GetString("sort.order_by"))
	if err != nil {
		return nil, fmt.Errorf("sort.order_by: %w", err)
	}
	typ, err := order.ParseOrderType(v.GetString("sort.order_type"))
	if err != nil {
		return nil, fmt.Errorf("sort.order_type: %w", err)
	}

	workers := v.GetInt("sort.workers")
	if workers < 1 {
		return nil, fmt.Errorf("sort.workers must be at least 1, got %d", workers)
	}
	handle := v.GetFloat64("selection.handle_size")
	if handle < 0 {
		return nil, fmt.Errorf("selection.handle_size must not be negative, got %g", handle)
	}

	level := v.GetString("log.level")
	if _, err := logging.ParseLevel(level); err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}
	format := strings.ToLower(v.GetString("log.format"))
	if format != "json" && format != "console" {
		return nil, fmt.Errorf("log.format must be json or console, got %q", format)
	}

	return &Config{
		Log: logging.Config{
			Level:      level,
			Format:     format,
			OutputPath: v.GetString("log.output"),
		},
		Sort: SortConfig{
			Options: order.Options{
				OrderBy:    by,
				OrderType:  typ,
				GroupByDir: v.GetBool("sort.group_by_dir"),
			},
			Workers: workers,
		},
		Selection: SelectionConfig{HandleSize: handle},
		Overlay:   OverlayConfig{Color: v.GetString("overlay.color")},
	}, nil
}

// Default returns the built-in settings, ignoring files and the environment.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := Decode(v)
	if err != nil {
		panic(fmt.Sprintf("config: invalid defaults: %v", err))
	}
	return cfg
}

// Load builds a Config from defaults, the environment and the optional file
// at path.
func Load(path, home string) (*Config, error) {
	v := New()
	if err := ReadFile(v, path, home); err != nil {
		return nil, err
	}
	return Decode(v)
}
