// Package config loads the YAML run configuration for journeyload.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Header is either "auto" or a fixed 0-based row index.
type Header struct {
	Auto bool
	Row  int
}

// AutoHeader is the default header setting.
var AutoHeader = Header{Auto: true}

func (h Header) String() string {
	if h.Auto {
		return "auto"
	}
	return strconv.Itoa(h.Row)
}

// ParseHeader accepts "auto" or a non-negative integer.
func ParseHeader(s string) (Header, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "auto") {
		return AutoHeader, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return Header{}, fmt.Errorf("%w: header must be \"auto\" or a row index, got %q", ErrInvalid, s)
	}
	return Header{Row: n}, nil
}

func (h *Header) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseHeader(node.Value)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

func (h Header) MarshalYAML() (interface{}, error) {
	if h.Auto {
		return "auto", nil
	}
	return h.Row, nil
}

// Config mirrors the YAML file. Absent keys keep the values from Default.
type Config struct {
	SheetName   string   `yaml:"sheet_name"`
	Header      Header   `yaml:"header"`
	UseCols     string   `yaml:"usecols,omitempty"`
	NRows       int      `yaml:"nrows,omitempty"`
	DateCols    []string `yaml:"date_cols,omitempty"`
	DayFirst    bool     `yaml:"dayfirst"`
	DropUnnamed bool     `yaml:"drop_unnamed"`
	KeepCols    []string `yaml:"keep_cols,omitempty"`
	Validate    bool     `yaml:"validate"`

	// Output is where the tidy table is written; empty skips writing.
	Output         string  `yaml:"output,omitempty"`
	SpeedTolerance float64 `yaml:"speed_tolerance,omitempty"`
	LogLevel       string  `yaml:"log_level,omitempty"`
	LogFormat      string  `yaml:"log_format,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		SheetName:      "Journey_Event_Sample",
		Header:         AutoHeader,
		DayFirst:       true,
		DropUnnamed:    true,
		SpeedTolerance: 1e-6,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// Load reads a YAML file on top of Default and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Check(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// OutputFormats maps supported destination extensions to their format.
var OutputFormats = map[string]string{
	".parquet": "parquet",
	".csv":     "csv",
	".txt":     "csv",
}

// OutputFormat returns the format for a destination path, or an error
// wrapping ErrInvalid for an unsupported extension.
func OutputFormat(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	format, ok := OutputFormats[ext]
	if !ok {
		return "", fmt.Errorf("%w: unsupported output extension %q (use .parquet, .csv or .txt)", ErrInvalid, ext)
	}
	return format, nil
}

// Check rejects values that YAML typing alone cannot.
func (c Config) Check() error {
	if c.NRows < 0 {
		return fmt.Errorf("%w: nrows must not be negative, got %d", ErrInvalid, c.NRows)
	}
	if !c.Header.Auto && c.Header.Row < 0 {
		return fmt.Errorf("%w: header must not be negative, got %d", ErrInvalid, c.Header.Row)
	}
	if c.SpeedTolerance < 0 {
		return fmt.Errorf("%w: speed_tolerance must not be negative", ErrInvalid)
	}
	if c.Output != "" {
		if _, err := OutputFormat(c.Output); err != nil {
			return err
		}
	}
	return nil
}
