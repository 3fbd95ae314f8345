// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/textanim/internal/animator"
	"github.com/jeranaias/textanim/internal/util"
	"github.com/jeranaias/textanim/internal/widget"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// CurrentVersion is written to new config files.
const CurrentVersion = "1"

// Config represents the complete textanim configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Defaults for blocks that do not set their own
	Animation AnimationConfig `toml:"animation" json:"animation"`

	// Motion preference
	Motion MotionConfig `toml:"motion" json:"motion"`

	// Terminal preview settings
	Display DisplayConfig `toml:"display" json:"display"`

	Logging LoggingConfig `toml:"logging" json:"logging"`
}

// AnimationConfig holds the default effect and timings.
type AnimationConfig struct {
	// Effect is one of typewriter, matrix, fade, flash, burst, glitch.
	Effect string `toml:"effect" json:"effect"`

	// AnimationMS is the transition duration in milliseconds.
	AnimationMS int `toml:"animation_ms" json:"animation_ms"`

	// DisplayMS is how long each item stays on screen in milliseconds.
	DisplayMS int `toml:"display_ms" json:"display_ms"`
}

// MotionConfig holds the reduced-motion preference. It is the terminal
// counterpart of the prefers-reduced-motion media query and is read once
// at startup.
type MotionConfig struct {
	ReducedMotion bool `toml:"reduced_motion" json:"reduced_motion"`
}

// DisplayConfig controls the terminal previewer.
type DisplayConfig struct {
	// Layout is row or column.
	Layout string `toml:"layout" json:"layout"`

	// Measurer is "cells" (terminal cells) or "font" (proportional font
	// metrics, used by trace output).
	Measurer string `toml:"measurer" json:"measurer"`

	// FontSize in px for the font measurer.
	FontSize float64 `toml:"font_size" json:"font_size"`

	// LetterSpacing is added per character, in measurer units.
	LetterSpacing float64 `toml:"letter_spacing" json:"letter_spacing"`

	// Width limits the animated text; 0 uses the terminal width.
	Width int `toml:"width" json:"width"`

	// Color is the animated text color as #rrggbb; empty uses the theme.
	Color string `toml:"color" json:"color"`

	NoColor bool   `toml:"no_color" json:"no_color"`
	Theme   string `toml:"theme" json:"theme"`
}

// LoggingConfig controls structured logging.
type LoggingConfig struct {
	// Level is debug, info, warn or error.
	Level string `toml:"level" json:"level"`

	// Format is text or json.
	Format string `toml:"format" json:"format"`

	// Output is stdout, stderr, discard, or a file path.
	Output string `toml:"output" json:"output"`
}

// Measurer kinds.
const (
	MeasurerCells = "cells"
	MeasurerFont  = "font"
)

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a new Config with default values.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Animation: AnimationConfig{
			Effect:      string(animator.DefaultEffect),
			AnimationMS: int(animator.DefaultAnimationDuration / time.Millisecond),
			DisplayMS:   int(animator.DefaultDisplayDuration / time.Millisecond),
		},
		Motion: MotionConfig{
			ReducedMotion: false,
		},
		Display: DisplayConfig{
			Layout:   string(widget.LayoutRow),
			Measurer: MeasurerCells,
			FontSize: 16,
			Theme:    "dark",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			// The previewer owns the terminal; logs go nowhere unless asked.
			Output: "discard",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the textanim configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".textanim"), nil
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

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
//
// A file that fails to parse is not fatal: defaults are returned together
// with the load error so callers can warn and continue.
func Load() (*Config, error) {
	var loadErr error

	tomlPath, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			cfg := Default()
			if err := LoadTOML(cfg, tomlPath); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
			} else {
				return finish(cfg)
			}
		}
	}

	jsonPath, err := ConfigPathJSON()
	if err == nil && loadErr == nil {
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
	return cfg, loadErr
}

// finish applies env overrides, fills gaps and validates.
func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg. Unknown keys are rejected so a
// misspelt option does not silently fall back to its default.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file path with full
// validation. Files ending in .json are read as JSON, anything else as TOML.
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

// SetDefaults fills zero values with defaults.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.Animation.Effect == "" {
		c.Animation.Effect = defaults.Animation.Effect
	}
	if c.Animation.AnimationMS <= 0 {
		c.Animation.AnimationMS = defaults.Animation.AnimationMS
	}
	if c.Animation.DisplayMS <= 0 {
		c.Animation.DisplayMS = defaults.Animation.DisplayMS
	}
	if c.Display.Layout == "" {
		c.Display.Layout = defaults.Display.Layout
	}
	if c.Display.Measurer == "" {
		c.Display.Measurer = defaults.Display.Measurer
	}
	if c.Display.FontSize <= 0 {
		c.Display.FontSize = defaults.Display.FontSize
	}
	if c.Display.Theme == "" {
		c.Display.Theme = defaults.Display.Theme
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = defaults.Logging.Format
	}
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

// SaveTOML writes cfg to path atomically, with a header comment.
func SaveTOML(cfg *Config, path string) error {
	data, err := EncodeTOML(cfg)
	if err != nil {
		return err
	}
	if err := util.AtomicWriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// EncodeTOML renders cfg as a commented TOML document.
func EncodeTOML(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# textanim configuration file")
	fmt.Fprintln(&buf, "# Generated by textanim - edit with care")
	fmt.Fprintln(&buf, "#")
	fmt.Fprintln(&buf, "# Environment overrides: TEXTANIM_EFFECT, TEXTANIM_ANIMATION_MS,")
	fmt.Fprintln(&buf, "# TEXTANIM_DISPLAY_MS, TEXTANIM_REDUCED_MOTION, NO_MOTION, TEXTANIM_LOG_LEVEL,")
	fmt.Fprintln(&buf, "# TEXTANIM_LOG_FORMAT, TEXTANIM_LOG_OUTPUT, TEXTANIM_MEASURER, NO_COLOR")
	fmt.Fprintln(&buf, "")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
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
//
// An unknown effect is NOT an error: blocks with one swap their text
// without animation, and a config file may name an effect a newer build
// knows about.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.Animation.AnimationMS < 0 {
		errs = append(errs, ValidationError{
			Field:   "animation.animation_ms",
			Message: fmt.Sprintf("must not be negative, got %d", c.Animation.AnimationMS),
		})
	}
	if c.Animation.DisplayMS < 0 {
		errs = append(errs, ValidationError{
			Field:   "animation.display_ms",
			Message: fmt.Sprintf("must not be negative, got %d", c.Animation.DisplayMS),
		})
	}

	if _, err := widget.ParseLayout(c.Display.Layout); err != nil {
		errs = append(errs, ValidationError{Field: "display.layout", Message: err.Error()})
	}

	switch strings.ToLower(c.Display.Measurer) {
	case MeasurerCells, MeasurerFont:
	default:
		errs = append(errs, ValidationError{
			Field:   "display.measurer",
			Message: fmt.Sprintf("invalid measurer '%s', must be one of: cells, font", c.Display.Measurer),
		})
	}

	if c.Display.Width < 0 {
		errs = append(errs, ValidationError{
			Field:   "display.width",
			Message: fmt.Sprintf("must not be negative, got %d", c.Display.Width),
		})
	}

	if c.Display.Color != "" && !isHexColor(c.Display.Color) {
		errs = append(errs, ValidationError{
			Field:   "display.color",
			Message: fmt.Sprintf("invalid color '%s', want #rrggbb", c.Display.Color),
		})
	}

	switch strings.ToLower(c.Display.Theme) {
	case "dark", "light":
	default:
		errs = append(errs, ValidationError{
			Field:   "display.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light", c.Display.Theme),
		})
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Logging.Level),
		})
	}

	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		errs = append(errs, ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("invalid format '%s', must be one of: text, json", c.Logging.Format),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func isHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	_, err := strconv.ParseUint(s[1:], 16, 32)
	return err == nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - TEXTANIM_EFFECT: overrides animation.effect
//   - TEXTANIM_ANIMATION_MS, TEXTANIM_DISPLAY_MS: override the timings
//   - TEXTANIM_REDUCED_MOTION: "1"/"true" enables, "0"/"false" disables
//   - NO_MOTION: any non-empty value enables reduced motion
//   - TEXTANIM_MEASURER: overrides display.measurer
//   - NO_COLOR: any non-empty value disables color (no-color.org)
//   - TEXTANIM_LOG_LEVEL, TEXTANIM_LOG_FORMAT, TEXTANIM_LOG_OUTPUT
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("TEXTANIM_EFFECT"); v != "" {
		c.Animation.Effect = v
	}
	if v := os.Getenv("TEXTANIM_ANIMATION_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			c.Animation.AnimationMS = ms
		}
	}
	if v := os.Getenv("TEXTANIM_DISPLAY_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			c.Animation.DisplayMS = ms
		}
	}

	if v := os.Getenv("TEXTANIM_REDUCED_MOTION"); v != "" {
		c.Motion.ReducedMotion = parseBool(v)
	}
	if os.Getenv("NO_MOTION") != "" {
		c.Motion.ReducedMotion = true
	}

	if v := os.Getenv("TEXTANIM_MEASURER"); v != "" {
		c.Display.Measurer = v
	}
	if os.Getenv("NO_COLOR") != "" {
		c.Display.NoColor = true
	}

	if v := os.Getenv("TEXTANIM_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("TEXTANIM_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("TEXTANIM_LOG_OUTPUT"); v != "" {
		c.Logging.Output = v
	}
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// =============================================================================
// ANIMATOR BRIDGE
// =============================================================================

// AnimatorConfig builds an animator.Config for items from the animation
// defaults.
func (c *Config) AnimatorConfig(items []string) animator.Config {
	return animator.Config{
		TextStrings:       items,
		AnimationType:     animator.ParseEffectType(c.Animation.Effect),
		AnimationDuration: time.Duration(c.Animation.AnimationMS) * time.Millisecond,
		DisplayDuration:   time.Duration(c.Animation.DisplayMS) * time.Millisecond,
	}
}

// FillBlock gives b the configured timings where it has none of its own.
func (c *Config) FillBlock(b widget.Block) widget.Block {
	if b.Config.AnimationDuration <= 0 {
		b.Config.AnimationDuration = time.Duration(c.Animation.AnimationMS) * time.Millisecond
	}
	if b.Config.DisplayDuration <= 0 {
		b.Config.DisplayDuration = time.Duration(c.Animation.DisplayMS) * time.Millisecond
	}
	if b.Config.AnimationType == "" {
		b.Config.AnimationType = animator.ParseEffectType(c.Animation.Effect)
	}
	if b.Layout == "" {
		if l, err := widget.ParseLayout(c.Display.Layout); err == nil {
			b.Layout = l
		}
	}
	return b
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g. "animation.effect").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation. String values are
// converted to the field's type.
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
	if strings.TrimSpace(key) == "" {
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
			if field.Kind() == reflect.Struct {
				return reflect.Value{}, fmt.Errorf("field '%s' is a section", key)
			}
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go
// field equivalent. "animation_ms" and "AnimationMS" compare equal under
// EqualFold.
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
			field.SetBool(parseBool(strVal))
			return nil
		}
	}

	val := reflect.ValueOf(value)
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

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"animation.effect",
		"animation.animation_ms",
		"animation.display_ms",
		"motion.reduced_motion",
		"display.layout",
		"display.measurer",
		"display.font_size",
		"display.letter_spacing",
		"display.width",
		"display.color",
		"display.no_color",
		"display.theme",
		"logging.level",
		"logging.format",
		"logging.output",
	}
}
