package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/ytget/progdeck/internal/model"
	"github.com/ytget/progdeck/internal/platform"
)

// Environment variables that override the settings file
const (
	EnvDocument     = "PROGDECK_DOCUMENT"
	EnvDurationUnit = "PROGDECK_DURATION_UNIT"
	EnvDefaultColor = "PROGDECK_DEFAULT_COLOR"
	EnvLogLevel     = "PROGDECK_LOG_LEVEL"
	EnvIndent       = "PROGDECK_INDENT"
)

// Default values
const (
	DefaultDocumentName = "programs.yaml"
	DefaultSettingsName = "settings.yaml"
	DefaultColor        = "white"
	DefaultLogLevel     = zapcore.InfoLevel
	DefaultIndent       = platform.DefaultIndent
	MaxIndent           = platform.MaxIndent
)

// values is the on-disk layout of the settings file
type values struct {
	Document     string `yaml:"document,omitempty"`
	DurationUnit string `yaml:"duration_unit,omitempty"`
	DefaultColor string `yaml:"default_color,omitempty"`
	LogLevel     string `yaml:"log_level,omitempty"`
	Indent       *int   `yaml:"indent,omitempty"`
}

// Settings manages application configuration
type Settings struct {
	v values
}

// NewSettings creates settings holding only defaults
func NewSettings() *Settings {
	return &Settings{}
}

// DefaultSettingsPath returns the settings file in the user config dir
func DefaultSettingsPath() string {
	dir, err := platform.GetConfigDir()
	if err != nil {
		return DefaultSettingsName
	}
	return filepath.Join(dir, DefaultSettingsName)
}

// LoadSettings reads settings from path.
// A missing file yields default settings and no error.
func LoadSettings(path string) (*Settings, error) {
	s := NewSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &s.v); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	return s, nil
}

// SaveSettings writes settings to path atomically
func SaveSettings(path string, s *Settings) error {
	data, err := yaml.Marshal(&s.v)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := platform.WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// LoadEnvFile loads variables from a .env file without overriding ones
// already set in the environment. A missing file is not an error.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// ApplyEnv overrides settings from PROGDECK_* environment variables
func (s *Settings) ApplyEnv() error {
	return s.applyEnv(os.LookupEnv)
}

func (s *Settings) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvDocument); ok && v != "" {
		s.SetDocumentPath(v)
	}
	if v, ok := lookup(EnvDurationUnit); ok && v != "" {
		if err := s.SetDurationUnit(model.DurationUnit(v)); err != nil {
			return fmt.Errorf("%s: %w", EnvDurationUnit, err)
		}
	}
	if v, ok := lookup(EnvDefaultColor); ok && v != "" {
		s.SetDefaultColor(v)
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		if err := s.SetLogLevel(v); err != nil {
			return fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
	}
	if v, ok := lookup(EnvIndent); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvIndent, err)
		}
		s.SetIndent(n)
	}
	return nil
}

// GetDocumentPath returns the configured Programs document
func (s *Settings) GetDocumentPath() string {
	if s.v.Document != "" {
		return s.v.Document
	}
	dir, err := platform.GetConfigDir()
	if err != nil {
		return DefaultDocumentName
	}
	return filepath.Join(dir, DefaultDocumentName)
}

// SetDocumentPath sets the Programs document
func (s *Settings) SetDocumentPath(path string) {
	s.v.Document = strings.TrimSpace(path)
}

// GetDurationUnit returns the unit used to read Program.Duration
func (s *Settings) GetDurationUnit() model.DurationUnit {
	u := model.DurationUnit(s.v.DurationUnit)
	if !u.IsValid() {
		return model.DefaultDurationUnit
	}
	return u
}

// SetDurationUnit sets the duration unit
func (s *Settings) SetDurationUnit(u model.DurationUnit) error {
	if !u.IsValid() {
		return fmt.Errorf("unknown duration unit %q, expected one of %v", u, s.GetDurationUnitOptions())
	}
	s.v.DurationUnit = u.String()
	return nil
}

// GetDefaultColor returns the color given to programs created without one
func (s *Settings) GetDefaultColor() string {
	if s.v.DefaultColor == "" {
		return DefaultColor
	}
	return s.v.DefaultColor
}

// SetDefaultColor sets the default color; an empty value restores the default
func (s *Settings) SetDefaultColor(color string) {
	s.v.DefaultColor = strings.TrimSpace(color)
}

// GetLogLevel returns the configured log level
func (s *Settings) GetLogLevel() zapcore.Level {
	if s.v.LogLevel == "" {
		return DefaultLogLevel
	}
	level, err := zapcore.ParseLevel(s.v.LogLevel)
	if err != nil {
		return DefaultLogLevel
	}
	return level
}

// SetLogLevel sets the log level by name (debug, info, warn, error)
func (s *Settings) SetLogLevel(name string) error {
	level, err := zapcore.ParseLevel(name)
	if err != nil {
		return err
	}
	s.v.LogLevel = level.String()
	return nil
}

// GetIndent returns the indentation width for written documents
func (s *Settings) GetIndent() int {
	if s.v.Indent == nil {
		return DefaultIndent
	}
	width := *s.v.Indent
	if width < 0 {
		return 0
	}
	if width > MaxIndent {
		return MaxIndent
	}
	return width
}

// SetIndent sets the indentation width, clamped to [0, MaxIndent]
func (s *Settings) SetIndent(width int) {
	if width < 0 {
		width = 0
	}
	if width > MaxIndent {
		width = MaxIndent
	}
	s.v.Indent = &width
}

// GetDurationUnitOptions returns available duration units
func (s *Settings) GetDurationUnitOptions() []model.DurationUnit {
	return model.DurationUnits()
}
