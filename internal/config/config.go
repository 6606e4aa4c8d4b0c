// Package config loads optional tuning overrides for the splash cursor.
// Absent or invalid settings always degrade to the stock defaults; loading
// never fails the effect.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"go.uber.org/zap"

	"github.com/softglow/splash/internal/huecycle"
	"github.com/softglow/splash/internal/track"
)

type Settings struct {
	HueStep    float64 `json:"hue_step"`
	Saturation float64 `json:"saturation"`
	Lightness  float64 `json:"lightness"`
	BaseRadius float64 `json:"base_radius"`
	SpeedScale float64 `json:"speed_scale"`
	SpeedCap   float64 `json:"speed_cap"`
}

// Defaults are the stock splash cursor constants.
func Defaults() *Settings {
	return &Settings{
		HueStep:    huecycle.Step,
		Saturation: huecycle.Saturation,
		Lightness:  huecycle.Lightness,
		BaseRadius: track.BaseRadius,
		SpeedScale: track.SpeedScale,
		SpeedCap:   track.SpeedCap,
	}
}

// TrackParams converts the settings to tracker parameters.
func (s *Settings) TrackParams() track.Params {
	return track.Params{
		SpeedScale: s.SpeedScale,
		SpeedCap:   s.SpeedCap,
		BaseRadius: s.BaseRadius,
	}
}

// Cycle converts the settings to a color cycle.
func (s *Settings) Cycle() huecycle.Cycle {
	return huecycle.Cycle{
		Step:       s.HueStep,
		Saturation: s.Saturation,
		Lightness:  s.Lightness,
	}
}

func GetSettingsPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(homeDir, ".config", "splash")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(configDir, "settings.json"), nil
}

// LoadSettings reads the settings file, creating it with defaults when
// missing. Unknown keys are warned about; out-of-range values are clamped
// back to their defaults.
func LoadSettings(log *zap.Logger) (*Settings, error) {
	settingsPath, err := GetSettingsPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(settingsPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Info("creating default settings file", zap.String("path", settingsPath))
			if err := createDefaultSettings(settingsPath); err != nil {
				log.Warn("failed to create default settings file", zap.Error(err))
			}
			return Defaults(), nil
		}
		return nil, err
	}

	return Parse(data, log), nil
}

// Parse decodes settings from JSON, falling back to defaults on malformed
// input and clamping field values.
func Parse(data []byte, log *zap.Logger) *Settings {
	defaults := Defaults()

	// Check for unrecognised keys
	var rawSettings map[string]interface{}
	if err := json.Unmarshal(data, &rawSettings); err != nil {
		log.Warn("invalid settings file, using defaults", zap.Error(err))
		return defaults
	}

	knownKeys := getKnownKeys(Settings{})
	for key := range rawSettings {
		if !knownKeys[key] {
			log.Warn("unrecognised setting key", zap.String("key", key))
		}
	}

	settings := Defaults()
	if err := json.Unmarshal(data, settings); err != nil {
		log.Warn("invalid settings file, using defaults", zap.Error(err))
		return defaults
	}

	clamp := func(name string, v *float64, def, lo, hi float64) {
		if *v < lo || *v > hi {
			log.Warn("setting out of range, using default",
				zap.String("key", name),
				zap.Float64("value", *v),
				zap.Float64("default", def))
			*v = def
		}
	}
	clamp("hue_step", &settings.HueStep, defaults.HueStep, 0, 360)
	clamp("saturation", &settings.Saturation, defaults.Saturation, 0, 1)
	clamp("lightness", &settings.Lightness, defaults.Lightness, 0, 1)
	clamp("base_radius", &settings.BaseRadius, defaults.BaseRadius, 0, 1)
	clamp("speed_scale", &settings.SpeedScale, defaults.SpeedScale, 0, 1000)
	clamp("speed_cap", &settings.SpeedCap, defaults.SpeedCap, 0, 1)

	return settings
}

func createDefaultSettings(path string) error {
	data, err := json.MarshalIndent(Defaults(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func getKnownKeys(v interface{}) map[string]bool {
	keys := make(map[string]bool)
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if jsonTag := field.Tag.Get("json"); jsonTag != "" {
			// Handle json tags like "field,omitempty"
			tagName := strings.Split(jsonTag, ",")[0]
			if tagName != "-" {
				keys[tagName] = true
			}
		}
	}
	return keys
}
