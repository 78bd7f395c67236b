// Package config loads planner configuration with koanf v2, layering
// three providers from lowest to highest priority — in-code defaults
// (confmap), an optional YAML file, then PLANNER_-prefixed environment
// variables — the same three-tier shape
// Hola-to-network_logistics_problem/pkg/config/loader.go uses, adapted
// from that service's gRPC/report surface to this one's weight, routing,
// geocoder, VRP, database and log settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"loadplanner/internal/domain"
	"loadplanner/internal/vrp"
)

const (
	envPrefix    = "PLANNER_"
	configEnvVar = "PLANNER_CONFIG_PATH"
)

// WeightConfig mirrors domain.WeightConfig for unmarshalling; the two
// are kept distinct so the domain package never imports koanf tags.
type WeightConfig struct {
	TexasMax float64 `koanf:"texas_max"`
	TexasMin float64 `koanf:"texas_min"`
	OtherMax float64 `koanf:"other_max"`
	OtherMin float64 `koanf:"other_min"`
}

func (w WeightConfig) ToDomain() domain.WeightConfig {
	return domain.WeightConfig{TexasMax: w.TexasMax, TexasMin: w.TexasMin, OtherMax: w.OtherMax, OtherMin: w.OtherMin}
}

type RoutingParams struct {
	SoftFullRatio        float64 `koanf:"soft_full_ratio"`
	RemainderSafetyBound int     `koanf:"remainder_safety_bound"`
	TopperEpsilon        float64 `koanf:"topper_epsilon"`
}

type GeocoderParams struct {
	WorkerCount  int     `koanf:"worker_count"`
	Provider     string  `koanf:"provider"`
	DetourFactor float64 `koanf:"detour_factor"`
	AvgSpeedMph  float64 `koanf:"avg_speed_mph"`
}

type VRPParams struct {
	MaxWeightPerTruck         float64 `koanf:"max_weight_per_truck"`
	MaxDriveTimeMinutes       float64 `koanf:"max_drive_time_minutes"`
	ServiceTimePerStopMinutes float64 `koanf:"service_time_per_stop_minutes"`
	MaxStopsPerTruck          int     `koanf:"max_stops_per_truck"`
	MaxTrucks                 int     `koanf:"max_trucks"`
	WallClockSec              float64 `koanf:"wall_clock_sec"`
	DropPenalty               float64 `koanf:"drop_penalty"`
	TwoOptMaxIterations       int     `koanf:"two_opt_max_iterations"`
	LargeMatrixCutoff         int     `koanf:"large_matrix_cutoff"`
}

func (v VRPParams) ToDomain() vrp.Params {
	return vrp.Params{
		MaxWeightPerTruck:         v.MaxWeightPerTruck,
		MaxDriveTimeMinutes:       v.MaxDriveTimeMinutes,
		ServiceTimePerStopMinutes: v.ServiceTimePerStopMinutes,
		MaxStopsPerTruck:          v.MaxStopsPerTruck,
		MaxTrucks:                 v.MaxTrucks,
		WallClockSec:              v.WallClockSec,
		DropPenalty:               v.DropPenalty,
		TwoOptMaxIterations:       v.TwoOptMaxIterations,
	}
}

type DatabaseConfig struct {
	Driver string `koanf:"driver"`
	URL    string `koanf:"url"`
}

type LogConfig struct {
	Level    string `koanf:"level"`
	Format   string `koanf:"format"`
	File     string `koanf:"file"`
	MaxSizeMB  int  `koanf:"max_size_mb"`
	MaxBackups int  `koanf:"max_backups"`
	MaxAgeDays int  `koanf:"max_age_days"`
}

type Config struct {
	Weight               WeightConfig   `koanf:"weight"`
	NoMultiStopCustomers []string       `koanf:"no_multi_stop_customers"`
	AllowedPlanningWhse  []string       `koanf:"allowed_planning_whse"`
	Routing              RoutingParams  `koanf:"routing"`
	Geocoder             GeocoderParams `koanf:"geocoder"`
	VRP                  VRPParams      `koanf:"vrp"`
	Database             DatabaseConfig `koanf:"database"`
	Log                  LogConfig      `koanf:"log"`
	Server               ServerConfig   `koanf:"server"`
	Depot                DepotConfig    `koanf:"depot"`
}

type ServerConfig struct {
	Port int `koanf:"port"`
}

// DepotConfig is the single fixed origin/return point every route plan
// anchors to (spec.md §6 "depot": {latitude, longitude, name}).
type DepotConfig struct {
	Name      string  `koanf:"name"`
	Latitude  float64 `koanf:"latitude"`
	Longitude float64 `koanf:"longitude"`
}

func defaults() map[string]any {
	return map[string]any{
		"weight.texas_max": 52000.0,
		"weight.texas_min": 47000.0,
		"weight.other_max": 48000.0,
		"weight.other_min": 44000.0,

		"no_multi_stop_customers": []string{},
		"allowed_planning_whse":   []string{},

		"routing.soft_full_ratio":         0.98,
		"routing.remainder_safety_bound":  100,
		"routing.topper_epsilon":          1e-4,

		"geocoder.worker_count":  10,
		"geocoder.provider":      "nominatim",
		"geocoder.detour_factor": 1.25,
		"geocoder.avg_speed_mph": 45.0,

		"vrp.max_weight_per_truck":            52000.0,
		"vrp.max_drive_time_minutes":          720.0,
		"vrp.service_time_per_stop_minutes":   30.0,
		"vrp.max_stops_per_truck":             20,
		"vrp.max_trucks":                      50,
		"vrp.wall_clock_sec":                  30.0,
		"vrp.drop_penalty":                    100000.0,
		"vrp.two_opt_max_iterations":          100,
		"vrp.large_matrix_cutoff":             100,

		"database.driver": "sqlite",
		"database.url":    "file:loadplanner.db?_pragma=busy_timeout(5000)",

		"log.level":        "info",
		"log.format":        "json",
		"log.file":          "",
		"log.max_size_mb":   100,
		"log.max_backups":   3,
		"log.max_age_days":  28,

		"server.port": 8080,

		"depot.name":      "Main Yard",
		"depot.latitude":  0.0,
		"depot.longitude": 0.0,
	}
}

// Load layers defaults, an optional YAML file (PLANNER_CONFIG_PATH, or
// ./config.yaml / ./config/config.yaml if unset), then PLANNER_*
// environment variables, highest priority last.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	if path := resolveConfigPath(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load file %q: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("config: load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	return &cfg, nil
}

func resolveConfigPath() string {
	if p := os.Getenv(configEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range []string{"config.yaml", "config/config.yaml"} {
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		if _, err := os.Stat(abs); err == nil {
			return abs
		}
	}
	return ""
}
