// Package config loads the application's drift.yaml and resolves defaults
// for the values it leaves out.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"runtime/debug"
	"strings"
	"time"

	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/nagaoyuriko/fusedlocation/internal/locationflow"
)

// DefaultModulePath is used when build info carries no main module path.
const DefaultModulePath = "github.com/nagaoyuriko/fusedlocation"

const (
	// DefaultBannerDuration matches the long duration of an Android snackbar.
	DefaultBannerDuration = 2750 * time.Millisecond
	// DefaultRequestTimeout bounds the OS permission dialog and each location query.
	DefaultRequestTimeout = 30 * time.Second
)

// Config represents drift.yaml.
type Config struct {
	App      AppConfig      `yaml:"app"`
	Engine   EngineConfig   `yaml:"engine"`
	Location LocationConfig `yaml:"location"`
}

// AppConfig contains application metadata. The Drift CLI reads the same keys.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
	ID   string `yaml:"id,omitempty"`
}

// EngineConfig is only read by the Drift CLI. It is accepted here so the
// strict decoder does not reject a file the CLI understands.
type EngineConfig struct {
	Version string `yaml:"version,omitempty"`
}

// LocationConfig configures the location screen.
type LocationConfig struct {
	LogTag         string         `yaml:"log_tag,omitempty"`
	Debug          bool           `yaml:"debug,omitempty"`
	BannerDuration time.Duration  `yaml:"banner_duration,omitempty"`
	RequestTimeout time.Duration  `yaml:"request_timeout,omitempty"`
	Messages       MessagesConfig `yaml:"messages"`
	Labels         LabelsConfig   `yaml:"labels"`
}

// MessagesConfig holds the banner texts.
type MessagesConfig struct {
	LocationUnavailable string `yaml:"location_unavailable,omitempty"`
	Rationale           string `yaml:"rationale,omitempty"`
	RationaleAction     string `yaml:"rationale_action,omitempty"`
	Denied              string `yaml:"denied,omitempty"`
	DeniedAction        string `yaml:"denied_action,omitempty"`
	SettingsUnavailable string `yaml:"settings_unavailable,omitempty"`
}

// LabelsConfig holds the static screen texts.
type LabelsConfig struct {
	Title     string `yaml:"title,omitempty"`
	Latitude  string `yaml:"latitude,omitempty"`
	Longitude string `yaml:"longitude,omitempty"`
	Button    string `yaml:"button,omitempty"`
}

// Labels are the resolved static screen texts.
type Labels struct {
	Title     string
	Latitude  string
	Longitude string
	Button    string
}

// Resolved contains resolved configuration values.
type Resolved struct {
	ModulePath     string
	AppName        string
	AppID          string
	LogTag         string
	Debug          bool
	BannerDuration time.Duration
	RequestTimeout time.Duration
	Messages       locationflow.Messages
	Labels         Labels
}

var defaultMessages = locationflow.Messages{
	LocationUnavailable: "Could not get the location.",
	Rationale:           "Location permission is required.",
	RationaleAction:     "OK",
	Denied:              "Location permission is required. Please allow it in Settings.",
	DeniedAction:        "Open settings",
	SettingsUnavailable: "Could not open Settings.",
}

var defaultLabels = Labels{
	Title:     "Fused Location",
	Latitude:  "Latitude",
	Longitude: "Longitude",
	Button:    "Get location",
}

// Load decodes drift.yaml. Unknown keys are rejected. Empty input yields an
// empty Config.
func Load(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse drift.yaml: %w", err)
	}
	return &cfg, nil
}

// Resolve loads data and resolves defaults against modulePath.
func Resolve(data []byte, modulePath string) (*Resolved, error) {
	if err := module.CheckImportPath(modulePath); err != nil {
		return nil, fmt.Errorf("invalid module path: %w", err)
	}

	cfg, err := Load(data)
	if err != nil {
		return nil, err
	}

	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(modulePath)
	}

	appID := strings.TrimSpace(cfg.App.ID)
	if appID == "" {
		appID = defaultAppID(modulePath, appName)
	}
	if err := validateAppID(appID); err != nil {
		return nil, err
	}

	loc := cfg.Location
	if loc.BannerDuration < 0 {
		return nil, fmt.Errorf("location.banner_duration must not be negative (got %s)", loc.BannerDuration)
	}
	if loc.RequestTimeout < 0 {
		return nil, fmt.Errorf("location.request_timeout must not be negative (got %s)", loc.RequestTimeout)
	}

	logTag := strings.TrimSpace(loc.LogTag)
	if logTag == "" {
		logTag = appName
	}

	return &Resolved{
		ModulePath:     modulePath,
		AppName:        appName,
		AppID:          appID,
		LogTag:         logTag,
		Debug:          loc.Debug,
		BannerDuration: durationOr(loc.BannerDuration, DefaultBannerDuration),
		RequestTimeout: durationOr(loc.RequestTimeout, DefaultRequestTimeout),
		Messages:       resolveMessages(loc.Messages),
		Labels:         resolveLabels(loc.Labels),
	}, nil
}

// ModulePath returns the main module path recorded in the binary's build
// info.
func ModulePath() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Path != "" && module.CheckImportPath(info.Main.Path) == nil {
		return info.Main.Path
	}
	return DefaultModulePath
}

func resolveMessages(m MessagesConfig) locationflow.Messages {
	return locationflow.Messages{
		LocationUnavailable: stringOr(m.LocationUnavailable, defaultMessages.LocationUnavailable),
		Rationale:           stringOr(m.Rationale, defaultMessages.Rationale),
		RationaleAction:     stringOr(m.RationaleAction, defaultMessages.RationaleAction),
		Denied:              stringOr(m.Denied, defaultMessages.Denied),
		DeniedAction:        stringOr(m.DeniedAction, defaultMessages.DeniedAction),
		SettingsUnavailable: stringOr(m.SettingsUnavailable, defaultMessages.SettingsUnavailable),
	}
}

func resolveLabels(l LabelsConfig) Labels {
	return Labels{
		Title:     stringOr(l.Title, defaultLabels.Title),
		Latitude:  stringOr(l.Latitude, defaultLabels.Latitude),
		Longitude: stringOr(l.Longitude, defaultLabels.Longitude),
		Button:    stringOr(l.Button, defaultLabels.Button),
	}
}

func stringOr(s, fallback string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return fallback
}

func durationOr(d, fallback time.Duration) time.Duration {
	if d == 0 {
		return fallback
	}
	return d
}
