// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for siteshell.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - $SITESHELL_HOME/config.toml (default ~/.siteshell/config.toml)
//   - $SITESHELL_HOME/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/jeranaias/siteshell/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete siteshell configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	Shell    ShellConfig    `toml:"shell" json:"shell"`
	Profile  ProfileConfig  `toml:"profile" json:"profile"`
	ASCII    ASCIIConfig    `toml:"ascii" json:"ascii"`
	Sections SectionsConfig `toml:"sections" json:"sections"`
	Index    IndexConfig    `toml:"index" json:"index"`
	UI       UIConfig       `toml:"ui" json:"ui"`
	Timing   TimingConfig   `toml:"timing" json:"timing"`
	Logging  LoggingConfig  `toml:"logging" json:"logging"`
}

// ShellConfig controls the prompt and interpreter behavior.
type ShellConfig struct {
	// Username shown by whoami and in the prompt.
	Username string `toml:"username" json:"username"`
	// PromptSymbol is printed after the path, usually "$".
	PromptSymbol string `toml:"prompt_symbol" json:"prompt_symbol"`
	// ShowGitBranch appends "(branch)" to the prompt.
	ShowGitBranch bool   `toml:"show_git_branch" json:"show_git_branch"`
	GitBranch     string `toml:"git_branch" json:"git_branch"`
	// ReportUnknown shows "command not found" instead of ignoring unknown commands.
	ReportUnknown bool `toml:"report_unknown" json:"report_unknown"`
	// HistoryDisplay is how many entries the history command prints.
	HistoryDisplay int `toml:"history_display" json:"history_display"`
}

// Social is a named profile link.
type Social struct {
	Name string `toml:"name" json:"name"`
	URL  string `toml:"url" json:"url"`
}

// ProfileConfig holds the values read by resume, email and socials.
type ProfileConfig struct {
	ResumeURL string   `toml:"resume_url" json:"resume_url"`
	Email     string   `toml:"email" json:"email"`
	Socials   []Social `toml:"socials" json:"socials"`
}

// ASCIIConfig holds user supplied art for the ascii command.
type ASCIIConfig struct {
	Art []string `toml:"art" json:"art"`
}

// SectionsConfig describes the virtual directory tree.
type SectionsConfig struct {
	// Root is the ordered list of top-level sections.
	Root []string `toml:"root" json:"root"`
	// Dynamic names the one section whose children come from the record index.
	Dynamic string `toml:"dynamic" json:"dynamic"`
}

// IndexConfig selects and configures the record index backend.
type IndexConfig struct {
	// Source is one of "sqlite", "http", "markdown", "none".
	Source      string  `toml:"source" json:"source"`
	DBPath      string  `toml:"db_path" json:"db_path"`
	URL         string  `toml:"url" json:"url"`
	Dir         string  `toml:"dir" json:"dir"`
	TimeoutSecs int     `toml:"timeout_secs" json:"timeout_secs"`
	RatePerSec  float64 `toml:"rate_per_sec" json:"rate_per_sec"`
}

// UIConfig contains user interface preferences.
type UIConfig struct {
	// Theme is "dark", "light" or "auto".
	Theme     string `toml:"theme" json:"theme"`
	AltScreen bool   `toml:"alt_screen" json:"alt_screen"`
	Confetti  bool   `toml:"confetti" json:"confetti"`
}

// TimingConfig holds animation and delay durations in milliseconds.
type TimingConfig struct {
	DiscoIntervalMs int `toml:"disco_interval_ms" json:"disco_interval_ms"`
	DiscoDurationMs int `toml:"disco_duration_ms" json:"disco_duration_ms"`
	RebootDelayMs   int `toml:"reboot_delay_ms" json:"reboot_delay_ms"`
	TransientMs     int `toml:"transient_ms" json:"transient_ms"`
}

// LoggingConfig controls the file logger.
type LoggingConfig struct {
	Level string `toml:"level" json:"level"`
	// File is the log file path. "-" disables logging.
	File string `toml:"file" json:"file"`
}

// DiscoInterval returns the disco frame interval.
func (t TimingConfig) DiscoInterval() time.Duration {
	return time.Duration(t.DiscoIntervalMs) * time.Millisecond
}

// DiscoDuration returns the total disco run time.
func (t TimingConfig) DiscoDuration() time.Duration {
	return time.Duration(t.DiscoDurationMs) * time.Millisecond
}

// RebootDelay returns the pause between the reboot warning and the reload.
func (t TimingConfig) RebootDelay() time.Duration {
	return time.Duration(t.RebootDelayMs) * time.Millisecond
}

// Transient returns how long a transient buffer message stays in the prompt.
func (t TimingConfig) Transient() time.Duration {
	return time.Duration(t.TransientMs) * time.Millisecond
}

// Timeout returns the index fetch timeout.
func (i IndexConfig) Timeout() time.Duration {
	return time.Duration(i.TimeoutSecs) * time.Second
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Version: "1",
		Shell: ShellConfig{
			Username:       "Visitor",
			PromptSymbol:   "$",
			ShowGitBranch:  false,
			GitBranch:      "main",
			ReportUnknown:  false,
			HistoryDisplay: 10,
		},
		Profile: ProfileConfig{},
		ASCII:   ASCIIConfig{},
		Sections: SectionsConfig{
			Root:    []string{"about", "projects", "blogs", "experience", "contact"},
			Dynamic: "blogs",
		},
		Index: IndexConfig{
			Source:      "none",
			TimeoutSecs: 10,
			RatePerSec:  1,
		},
		UI: UIConfig{
			Theme:     "dark",
			AltScreen: true,
			Confetti:  true,
		},
		Timing: TimingConfig{
			DiscoIntervalMs: 150,
			DiscoDurationMs: 3000,
			RebootDelayMs:   1500,
			TransientMs:     2000,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the siteshell configuration directory path.
// SITESHELL_HOME overrides the default of ~/.siteshell.
func ConfigDir() (string, error) {
	if dir := os.Getenv("SITESHELL_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".siteshell"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	var loadErr error

	if tomlPath, err := ConfigPathTOML(); err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			cfg := Default()
			if err := LoadTOML(cfg, tomlPath); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
			} else {
				return finish(cfg)
			}
		}
	}

	if jsonPath, err := ConfigPathJSON(); err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			cfg := Default()
			if err := LoadJSON(cfg, jsonPath); err != nil {
				loadErr = fmt.Errorf("failed to load JSON config: %w", err)
			} else {
				return finish(cfg)
			}
		}
	}

	cfg, err := finish(Default())
	if err != nil {
		return nil, err
	}
	// Defaults are returned alongside any load error for informational purposes.
	return cfg, loadErr
}

// finish applies env overrides, migration, defaults and validation.
func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	if err := cfg.Migrate(); err != nil {
		return nil, fmt.Errorf("config migration failed: %w", err)
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return fillDefaults(cfg)
}

// LoadJSON loads configuration from a JSON file.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return fillDefaults(cfg)
}

// LoadFromPath loads configuration from a specific file path with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	return finish(cfg)
}

// fillDefaults fills in any missing values with defaults.
func fillDefaults(cfg *Config) error {
	defaults := Default()

	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}

	// Shell
	if strings.TrimSpace(cfg.Shell.Username) == "" {
		cfg.Shell.Username = defaults.Shell.Username
	}
	if cfg.Shell.PromptSymbol == "" {
		cfg.Shell.PromptSymbol = defaults.Shell.PromptSymbol
	}
	if cfg.Shell.GitBranch == "" {
		cfg.Shell.GitBranch = defaults.Shell.GitBranch
	}
	if cfg.Shell.HistoryDisplay == 0 {
		cfg.Shell.HistoryDisplay = defaults.Shell.HistoryDisplay
	}

	// Sections
	if len(cfg.Sections.Root) == 0 {
		cfg.Sections.Root = defaults.Sections.Root
	}

	// Index
	if cfg.Index.Source == "" {
		cfg.Index.Source = defaults.Index.Source
	}
	if cfg.Index.TimeoutSecs == 0 {
		cfg.Index.TimeoutSecs = defaults.Index.TimeoutSecs
	}
	if cfg.Index.RatePerSec == 0 {
		cfg.Index.RatePerSec = defaults.Index.RatePerSec
	}

	// UI
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = defaults.UI.Theme
	}

	// Timing
	if cfg.Timing.DiscoIntervalMs == 0 {
		cfg.Timing.DiscoIntervalMs = defaults.Timing.DiscoIntervalMs
	}
	if cfg.Timing.DiscoDurationMs == 0 {
		cfg.Timing.DiscoDurationMs = defaults.Timing.DiscoDurationMs
	}
	if cfg.Timing.RebootDelayMs == 0 {
		cfg.Timing.RebootDelayMs = defaults.Timing.RebootDelayMs
	}
	if cfg.Timing.TransientMs == 0 {
		cfg.Timing.TransientMs = defaults.Timing.TransientMs
	}

	// Logging
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaults.Logging.Level
	}

	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	var buf strings.Builder
	buf.WriteString("# siteshell configuration file\n")
	buf.WriteString("# Generated by siteshell - edit with care\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, []byte(buf.String()), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON saves the configuration to a JSON file.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// Sections
	seen := make(map[string]bool, len(c.Sections.Root))
	for _, name := range c.Sections.Root {
		key := strings.ToLower(name)
		switch {
		case name == "" || strings.ContainsAny(name, "/ \t"):
			errs = append(errs, ValidationError{
				Field:   "sections.root",
				Message: fmt.Sprintf("invalid section name %q: must be non-empty without spaces or '/'", name),
			})
		case seen[key]:
			errs = append(errs, ValidationError{
				Field:   "sections.root",
				Message: fmt.Sprintf("duplicate section name %q", name),
			})
		}
		seen[key] = true
	}
	if c.Sections.Dynamic != "" && !seen[strings.ToLower(c.Sections.Dynamic)] {
		errs = append(errs, ValidationError{
			Field:   "sections.dynamic",
			Message: fmt.Sprintf("dynamic section %q is not listed in sections.root", c.Sections.Dynamic),
		})
	}

	// Index
	validSources := map[string]bool{"sqlite": true, "http": true, "markdown": true, "none": true}
	if !validSources[strings.ToLower(c.Index.Source)] {
		errs = append(errs, ValidationError{
			Field:   "index.source",
			Message: fmt.Sprintf("invalid source '%s', must be one of: sqlite, http, markdown, none", c.Index.Source),
		})
	}
	switch strings.ToLower(c.Index.Source) {
	case "http":
		if u, err := url.Parse(c.Index.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, ValidationError{
				Field:   "index.url",
				Message: fmt.Sprintf("invalid URL '%s': must be an absolute http(s) URL", c.Index.URL),
			})
		}
	case "markdown":
		if c.Index.Dir == "" {
			errs = append(errs, ValidationError{Field: "index.dir", Message: "required when index.source is markdown"})
		}
	}
	if c.Index.TimeoutSecs < 1 || c.Index.TimeoutSecs > 120 {
		errs = append(errs, ValidationError{
			Field:   "index.timeout_secs",
			Message: fmt.Sprintf("timeout %d out of range (1-120)", c.Index.TimeoutSecs),
		})
	}
	if c.Index.RatePerSec <= 0 {
		errs = append(errs, ValidationError{Field: "index.rate_per_sec", Message: "must be positive"})
	}

	// UI
	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	// Timing
	if c.Timing.DiscoIntervalMs < 20 {
		errs = append(errs, ValidationError{Field: "timing.disco_interval_ms", Message: "must be at least 20"})
	}
	if c.Timing.DiscoDurationMs < c.Timing.DiscoIntervalMs {
		errs = append(errs, ValidationError{Field: "timing.disco_duration_ms", Message: "must be at least one interval"})
	}
	if c.Timing.RebootDelayMs < 0 {
		errs = append(errs, ValidationError{Field: "timing.reboot_delay_ms", Message: "must not be negative"})
	}
	if c.Timing.TransientMs <= 0 {
		errs = append(errs, ValidationError{Field: "timing.transient_ms", Message: "must be positive"})
	}

	// Shell
	if c.Shell.HistoryDisplay < 1 {
		errs = append(errs, ValidationError{Field: "shell.history_display", Message: "must be at least 1"})
	}

	// Profile
	if c.Profile.Email != "" && !strings.Contains(c.Profile.Email, "@") {
		errs = append(errs, ValidationError{
			Field:   "profile.email",
			Message: fmt.Sprintf("invalid email address '%s'", c.Profile.Email),
		})
	}
	for i, s := range c.Profile.Socials {
		if s.Name == "" || s.URL == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("profile.socials[%d]", i),
				Message: "name and url are required",
			})
		}
	}

	// Logging
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Logging.Level),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults normalizes values that have a canonical form.
func (c *Config) SetDefaults() {
	c.Index.Source = strings.ToLower(c.Index.Source)
	c.UI.Theme = strings.ToLower(c.UI.Theme)
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	if c.Logging.Level == "warning" {
		c.Logging.Level = "warn"
	}

	if c.Index.Source == "sqlite" && c.Index.DBPath == "" {
		if dir, err := ConfigDir(); err == nil {
			c.Index.DBPath = filepath.Join(dir, "index.db")
		}
	}
	if c.Logging.File == "" {
		if dir, err := ConfigDir(); err == nil {
			c.Logging.File = filepath.Join(dir, "siteshell.log")
		}
	}
}

// Migrate upgrades configuration written by older releases.
func (c *Config) Migrate() error {
	switch c.Version {
	case "", "1":
		c.Version = "1"
		return nil
	case "0":
		// Version 0 kept the blog feed URL under profile and had no index section.
		if c.Index.URL != "" && (c.Index.Source == "" || c.Index.Source == "none") {
			c.Index.Source = "http"
		}
		c.Version = "1"
		return nil
	default:
		return fmt.Errorf("unsupported config version %q", c.Version)
	}
}

// ApplyEnvOverrides applies SITESHELL_* environment variables.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("SITESHELL_USERNAME"); v != "" {
		c.Shell.Username = v
	}
	if v := os.Getenv("SITESHELL_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("SITESHELL_INDEX_SOURCE"); v != "" {
		c.Index.Source = v
	}
	if v := os.Getenv("SITESHELL_INDEX_URL"); v != "" {
		c.Index.URL = v
	}
	if v := os.Getenv("SITESHELL_INDEX_DB"); v != "" {
		c.Index.DBPath = v
	}
	if v := os.Getenv("SITESHELL_INDEX_DIR"); v != "" {
		c.Index.Dir = v
	}
	if v := os.Getenv("SITESHELL_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("SITESHELL_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
	if v := os.Getenv("SITESHELL_REPORT_UNKNOWN"); v != "" {
		c.Shell.ReportUnknown = v == "1" || strings.ToLower(v) == "true"
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "shell.username").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "ui.theme").
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Float64:
			floatVal, err := strconv.ParseFloat(strVal, 64)
			if err != nil {
				return fmt.Errorf("invalid float value: %v", err)
			}
			field.SetFloat(floatVal)
			return nil
		case reflect.Bool:
			lower := strings.ToLower(strVal)
			field.SetBool(lower == "1" || lower == "true" || lower == "yes")
			return nil
		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.String {
				var items []string
				for _, s := range strings.Split(strVal, ",") {
					if s = strings.TrimSpace(s); s != "" {
						items = append(items, s)
					}
				}
				field.Set(reflect.ValueOf(items))
				return nil
			}
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// GetAllKeys returns all scalar configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"shell.username",
		"shell.prompt_symbol",
		"shell.show_git_branch",
		"shell.git_branch",
		"shell.report_unknown",
		"shell.history_display",
		"profile.resume_url",
		"profile.email",
		"sections.root",
		"sections.dynamic",
		"index.source",
		"index.db_path",
		"index.url",
		"index.dir",
		"index.timeout_secs",
		"index.rate_per_sec",
		"ui.theme",
		"ui.alt_screen",
		"ui.confetti",
		"timing.disco_interval_ms",
		"timing.disco_duration_ms",
		"timing.reboot_delay_ms",
		"timing.transient_ms",
		"logging.level",
		"logging.file",
	}
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Profile.Socials = append([]Social(nil), c.Profile.Socials...)
	clone.ASCII.Art = append([]string(nil), c.ASCII.Art...)
	clone.Sections.Root = append([]string(nil), c.Sections.Root...)
	return &clone
}

// String returns the config as indented JSON for debugging.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access and falls back to defaults. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		}
		if cfg == nil {
			cfg = Default()
			cfg.SetDefaults()
		}
		globalConfigMu.Lock()
		if globalConfig == nil {
			globalConfig = cfg
		}
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk. Thread-safe.
func ReloadGlobal() error {
	cfg, err := Load()
	if cfg == nil {
		return err
	}
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
	return err
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
