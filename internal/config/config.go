package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gompdf/labelsheet/internal/pagination"
	"github.com/gompdf/labelsheet/pkg/api"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Generate GenerateConfig
	Layout   LayoutConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host           string
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	RequestLogging bool
}

// Addr returns host:port
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// GenerateConfig holds request defaults and limits
type GenerateConfig struct {
	DefaultLocation string
	DefaultCount    int
	MaxCount        int
	WorkDir         string
	KeepArtifacts   bool
}

// LayoutConfig overrides the sheet geometry
type LayoutConfig struct {
	PageSize      string
	RowsPerPage   int
	RowGap        float64
	MarginLeft    float64
	MarginTop     float64
	BarcodeWidth  float64
	BarcodeHeight float64
	FontSize      float64
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// Load reads configuration. Priority (highest to lowest):
// 1. Environment variables with LABELSHEET_ prefix (e.g., LABELSHEET_SERVER_PORT)
// 2. The config file: path if given, else labelsheet.yaml in . or /etc/labelsheet
// 3. Built-in defaults
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("labelsheet")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/labelsheet")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix("LABELSHEET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Host:           v.GetString("server.host"),
			Port:           v.GetInt("server.port"),
			ReadTimeout:    v.GetDuration("server.read_timeout"),
			WriteTimeout:   v.GetDuration("server.write_timeout"),
			RequestLogging: v.GetBool("server.request_logging"),
		},
		Generate: GenerateConfig{
			DefaultLocation: v.GetString("generate.default_location"),
			DefaultCount:    v.GetInt("generate.default_count"),
			MaxCount:        v.GetInt("generate.max_count"),
			WorkDir:         v.GetString("generate.work_dir"),
			KeepArtifacts:   v.GetBool("generate.keep_artifacts"),
		},
		Layout: LayoutConfig{
			PageSize:      v.GetString("layout.page_size"),
			RowsPerPage:   v.GetInt("layout.rows_per_page"),
			RowGap:        v.GetFloat64("layout.row_gap"),
			MarginLeft:    v.GetFloat64("layout.margin_left"),
			MarginTop:     v.GetFloat64("layout.margin_top"),
			BarcodeWidth:  v.GetFloat64("layout.barcode_width"),
			BarcodeHeight: v.GetFloat64("layout.barcode_height"),
			FontSize:      v.GetFloat64("layout.font_size"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	layout := pagination.DefaultConfig()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 10000)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 2*time.Minute)
	v.SetDefault("server.request_logging", true)

	v.SetDefault("generate.default_location", "TXT")
	v.SetDefault("generate.default_count", 60)
	v.SetDefault("generate.max_count", 10000)
	v.SetDefault("generate.work_dir", "static")
	v.SetDefault("generate.keep_artifacts", false)

	v.SetDefault("layout.page_size", layout.PageSize.Name)
	v.SetDefault("layout.rows_per_page", layout.RowsPerPage)
	v.SetDefault("layout.row_gap", layout.RowGap)
	v.SetDefault("layout.margin_left", layout.MarginLeft)
	v.SetDefault("layout.margin_top", layout.MarginTop)
	v.SetDefault("layout.barcode_width", layout.BarcodeWidth)
	v.SetDefault("layout.barcode_height", layout.BarcodeHeight)
	v.SetDefault("layout.font_size", layout.FontSize)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stderr")
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Generate.DefaultCount < 0 {
		return fmt.Errorf("generate.default_count must not be negative")
	}
	if c.Generate.MaxCount < c.Generate.DefaultCount {
		return fmt.Errorf("generate.max_count %d is below default_count %d", c.Generate.MaxCount, c.Generate.DefaultCount)
	}
	if c.Generate.WorkDir == "" {
		return fmt.Errorf("generate.work_dir is required")
	}
	if _, err := c.Layout.Pagination(); err != nil {
		return fmt.Errorf("invalid layout: %w", err)
	}
	return nil
}

// Pagination converts the layout section into a validated sheet geometry
func (l LayoutConfig) Pagination() (pagination.Config, error) {
	cfg := pagination.DefaultConfig()
	if l.PageSize != "" {
		size, ok := pagination.PageSizeByName(l.PageSize)
		if !ok {
			return cfg, fmt.Errorf("unknown page size %q", l.PageSize)
		}
		cfg.PageSize = size
	}
	cfg.RowsPerPage = l.RowsPerPage
	cfg.RowGap = l.RowGap
	cfg.MarginLeft = l.MarginLeft
	cfg.MarginTop = l.MarginTop
	cfg.BarcodeWidth = l.BarcodeWidth
	cfg.BarcodeHeight = l.BarcodeHeight
	cfg.FontSize = l.FontSize
	return cfg, cfg.Validate()
}

// GeneratorOptions maps the configuration onto generator options
func (c *Config) GeneratorOptions() (api.Options, error) {
	layout, err := c.Layout.Pagination()
	if err != nil {
		return api.Options{}, err
	}
	o := api.DefaultOptions()
	o.PageWidth = layout.PageSize.Width
	o.PageHeight = layout.PageSize.Height
	o.MarginLeft = layout.MarginLeft
	o.MarginTop = layout.MarginTop
	o.RowGap = layout.RowGap
	o.RowsPerPage = layout.RowsPerPage
	o.BarcodeWidth = layout.BarcodeWidth
	o.BarcodeHeight = layout.BarcodeHeight
	o.FontSize = layout.FontSize
	o.MaxCount = c.Generate.MaxCount
	o.WorkDir = c.Generate.WorkDir
	o.KeepArtifacts = c.Generate.KeepArtifacts
	return o, nil
}
