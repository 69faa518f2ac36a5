package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/rugwirobaker/logshape/internal/csvfile"
	"github.com/rugwirobaker/logshape/internal/flag"
	"github.com/rugwirobaker/logshape/internal/pointer"
	"github.com/rugwirobaker/logshape/internal/shape"
)

type Config struct {
	Output      Output  `yaml:"output" toml:"output"`
	MetricsFile *string `yaml:"metrics_file,omitempty" toml:"metrics_file"` // /var/lib/node_exporter/logshape.prom
	Strict      bool    `yaml:"strict" toml:"strict"`                       // exit non-zero on read/write failure
	Log         Log     `yaml:"log" toml:"log"`
}

type Output struct {
	Dir    string `yaml:"dir" toml:"dir"`       // empty means the working directory
	Name   string `yaml:"name" toml:"name"`     // log.csv
	Header string `yaml:"header" toml:"header"` // timestamp,messageType,path,message
}

type Log struct {
	Format    string  `yaml:"format" toml:"format"`                     // "text", "json"
	Timestamp bool    `yaml:"timestamp" toml:"timestamp"`               // show timestamp
	Debug     bool    `yaml:"debug" toml:"debug"`                       // include debug logging
	Path      *string `yaml:"path,omitempty" toml:"path"`               // /var/log/logshape.log
	MaxSizeMB int     `yaml:"max_size_mb,omitempty" toml:"max_size_mb"` // rotate the log file past this size
}

func Default() *Config {
	return &Config{
		Output: Output{
			Name:   csvfile.DefaultName,
			Header: shape.Header,
		},
		Log: Log{
			Format:    "text",
			Timestamp: true,
			Debug:     false,
			MaxSizeMB: 10,
		},
	}
}

func (cfg *Config) Write(w io.Writer) error {
	encoder := yaml.NewEncoder(w)

	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// FromFile loads path on top of the defaults. Files ending in .toml are
// decoded as TOML, everything else as YAML.
func FromFile(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	var cfg = Default()

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		md, err := toml.NewDecoder(file).Decode(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("failed to decode config file: unknown keys %v", undecoded)
		}
		return cfg, cfg.Validate()
	}

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}
	return cfg, cfg.Validate()
}

// Load reads the config file named by the "config" flag. A missing file is
// only an error when the flag was set explicitly.
func Load(ctx context.Context) (*Config, error) {
	path := flag.GetString(ctx, "config")
	if path == "" {
		return Default(), nil
	}
	cfg, err := FromFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !flag.IsSet(ctx, "config") {
			return Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	switch cfg.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format: %q", cfg.Log.Format)
	}
	if cfg.Output.Header == "" {
		return fmt.Errorf("output header must not be empty")
	}
	return nil
}

func (cfg *Config) OverrideWithFlags(ctx context.Context) {
	if dir := flag.GetString(ctx, "output-dir"); dir != "" {
		cfg.Output.Dir = dir
	}
	if name := flag.GetString(ctx, "output-name"); name != "" {
		cfg.Output.Name = name
	}
	if metricsFile := flag.GetString(ctx, "metrics-file"); metricsFile != "" {
		cfg.MetricsFile = pointer.String(metricsFile)
	}
	if strict := flag.GetBool(ctx, "strict"); strict {
		cfg.Strict = strict
	}
	if logFormat := flag.GetString(ctx, "log-format"); logFormat != "" {
		cfg.Log.Format = logFormat
	}
	if debug := flag.GetBool(ctx, "debug"); debug {
		cfg.Log.Debug = debug
	}
	if logPath := flag.GetString(ctx, "log-path"); logPath != "" {
		cfg.Log.Path = pointer.String(logPath)
	}
}
