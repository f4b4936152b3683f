package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	kjson "github.com/knadh/koanf/parsers/json"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"

	"github.com/Agrid-Dev/heizlast/internal/heatload"
)

// EnvPrefix prefixes every environment override, e.g. HEIZLAST_LOG_LEVEL.
const EnvPrefix = "HEIZLAST_"

type Config struct {
	DeviceID    string    `koanf:"device_id" yaml:"device_id"`
	Log         LogConfig `koanf:"log" yaml:"log"`
	Controllers struct {
		HTTP   HTTPConfig   `koanf:"http" yaml:"http"`
		MQTT   MQTTConfig   `koanf:"mqtt" yaml:"mqtt"`
		MODBUS ModbusConfig `koanf:"modbus" yaml:"modbus"`
	} `koanf:"controllers" yaml:"controllers"`

	Building BuildingConfig `koanf:"building" yaml:"building"`
}

type LogConfig struct {
	Level  string `koanf:"level" yaml:"level"`
	Format string `koanf:"format" yaml:"format"` // "text" | "json"
}

// BuildingConfig overrides the default input. Unset values keep the
// default, or the preset's value for thermal properties.
type BuildingConfig struct {
	Preset string `koanf:"preset,omitempty" yaml:"preset,omitempty"`

	LengthA    *float64 `koanf:"length_a,omitempty" yaml:"length_a,omitempty"`
	LengthB    *float64 `koanf:"length_b,omitempty" yaml:"length_b,omitempty"`
	RoomHeight *float64 `koanf:"room_height,omitempty" yaml:"room_height,omitempty"`
	Floors     *int     `koanf:"floors,omitempty" yaml:"floors,omitempty"`
	RoofPitch  *float64 `koanf:"roof_pitch,omitempty" yaml:"roof_pitch,omitempty"`
	RidgeAxis  *string  `koanf:"ridge_axis,omitempty" yaml:"ridge_axis,omitempty"` // "A" | "B"
	WindowArea *float64 `koanf:"window_area,omitempty" yaml:"window_area,omitempty"`

	UWall        *float64 `koanf:"u_wall,omitempty" yaml:"u_wall,omitempty"`
	URoof        *float64 `koanf:"u_roof,omitempty" yaml:"u_roof,omitempty"`
	UFloor       *float64 `koanf:"u_floor,omitempty" yaml:"u_floor,omitempty"`
	UWindow      *float64 `koanf:"u_window,omitempty" yaml:"u_window,omitempty"`
	Infiltration *float64 `koanf:"infiltration,omitempty" yaml:"infiltration,omitempty"`
	DeltaT       *float64 `koanf:"delta_t,omitempty" yaml:"delta_t,omitempty"`
}

type HTTPConfig struct {
	Enabled bool   `koanf:"enabled" yaml:"enabled"`
	Addr    string `koanf:"addr" yaml:"addr"`
}

type MQTTConfig struct {
	Enabled         bool          `koanf:"enabled" yaml:"enabled"`
	BrokerURL       string        `koanf:"broker_url" yaml:"broker_url"`
	ClientID        string        `koanf:"client_id" yaml:"client_id"`
	BaseTopic       string        `koanf:"base_topic" yaml:"base_topic"`
	QoS             byte          `koanf:"qos" yaml:"qos"`
	RetainSnapshot  bool          `koanf:"retain_snapshot" yaml:"retain_snapshot"`
	PublishInterval time.Duration `koanf:"publish_interval" yaml:"publish_interval"`
	Username        string        `koanf:"username" yaml:"username"`
	Password        string        `koanf:"password" yaml:"password"`
}

type ModbusConfig struct {
	Enabled bool   `koanf:"enabled" yaml:"enabled"`
	Addr    string `koanf:"addr" yaml:"addr"`
	UnitID  byte   `koanf:"unit_id" yaml:"unit_id"`
}

func defaultConfig() Config {
	var cfg Config
	cfg.DeviceID = "default"
	cfg.Log = LogConfig{Level: "info", Format: "text"}
	cfg.Controllers.HTTP.Addr = ":8080"
	cfg.Controllers.MQTT.BrokerURL = "tcp://localhost:1883"
	cfg.Controllers.MQTT.PublishInterval = 1 * time.Second
	cfg.Controllers.MODBUS.Addr = "127.0.0.1:1502"
	cfg.Controllers.MODBUS.UnitID = 1
	return cfg
}

// LoadConfig layers defaults, the config file (a missing file is not an
// error) and HEIZLAST_* environment variables, in that order.
func LoadConfig(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if err := loadFile(k, path); err != nil {
			return Config{}, err
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return envKeyTransform(strings.TrimPrefix(key, EnvPrefix)), value
		},
	}), nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	applyPort(&cfg)
	applyDefaults(&cfg)
	return cfg, nil
}

func loadFile(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// Config file missing → use defaults
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}

	var parser koanf.Parser
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		parser = kyaml.Parser()
	case ".json":
		parser = kjson.Parser()
	default:
		return fmt.Errorf("unsupported config extension %q", ext)
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return fmt.Errorf("parse %s: %w", ext, err)
	}
	return nil
}

// envKeyTransform maps an unprefixed env key to a koanf path:
// CONTROLLERS_HTTP_ADDR → controllers.http.addr, BUILDING_U_WALL → building.u_wall,
// LOG_LEVEL → log.level. Anything else is lowercased as is.
func envKeyTransform(k string) string {
	k = strings.ToLower(strings.TrimSpace(k))
	if k == "" {
		return ""
	}

	parts := strings.Split(k, "_")
	switch parts[0] {
	case "controllers":
		// controllers.<controller>.<field_with_underscores>
		if len(parts) < 3 {
			return k
		}
		return "controllers." + parts[1] + "." + strings.Join(parts[2:], "_")
	case "building", "log":
		if len(parts) < 2 {
			return k
		}
		return parts[0] + "." + strings.Join(parts[1:], "_")
	default:
		return k
	}
}

// applyPort honours PORT (common in containers) unless the HTTP addr was
// set explicitly through the environment.
func applyPort(cfg *Config) {
	if os.Getenv(EnvPrefix+"CONTROLLERS_HTTP_ADDR") != "" {
		return
	}
	if v := os.Getenv("PORT"); v != "" {
		// listen on all interfaces on that port
		cfg.Controllers.HTTP.Addr = ":" + v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.DeviceID == "" {
		cfg.DeviceID = "default"
	}
	if cfg.Controllers.HTTP.Addr == "" {
		cfg.Controllers.HTTP.Addr = ":8080"
	}
	if !cfg.Controllers.HTTP.Enabled && !cfg.Controllers.MQTT.Enabled && !cfg.Controllers.MODBUS.Enabled {
		cfg.Controllers.HTTP.Enabled = true
	}
	if cfg.Controllers.MQTT.PublishInterval == 0 {
		cfg.Controllers.MQTT.PublishInterval = 1 * time.Second
	}
	if cfg.Controllers.MODBUS.UnitID == 0 {
		cfg.Controllers.MODBUS.UnitID = 1
	}
}

// Input builds the initial building input: defaults, then the preset,
// then explicit overrides.
func (c Config) Input() (heatload.DetailedInput, error) {
	in := heatload.DefaultDetailedInput()
	b := c.Building

	if b.Preset != "" {
		in.ThermalInput = heatload.LookupPreset(b.Preset).Apply(in.ThermalInput)
	}

	override(&in.LengthA, b.LengthA)
	override(&in.LengthB, b.LengthB)
	override(&in.RoomHeight, b.RoomHeight)
	override(&in.Floors, b.Floors)
	override(&in.RoofPitch, b.RoofPitch)
	override(&in.WindowArea, b.WindowArea)
	override(&in.UWall, b.UWall)
	override(&in.URoof, b.URoof)
	override(&in.UFloor, b.UFloor)
	override(&in.UWindow, b.UWindow)
	override(&in.Infiltration, b.Infiltration)
	override(&in.DeltaT, b.DeltaT)

	if b.RidgeAxis != nil {
		axis, err := heatload.ParseRidgeAxis(*b.RidgeAxis)
		if err != nil {
			return heatload.DetailedInput{}, err
		}
		in.RidgeAxis = axis
	}

	if err := in.Validate(); err != nil {
		return heatload.DetailedInput{}, fmt.Errorf("building config: %w", err)
	}
	return in, nil
}

func override[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// WriteSample writes a YAML config with every default spelled out.
func WriteSample(w io.Writer) error {
	cfg := defaultConfig()
	cfg.Controllers.HTTP.Enabled = true

	in := heatload.DefaultDetailedInput()
	axis := in.RidgeAxis.String()
	cfg.Building = BuildingConfig{
		LengthA:      &in.LengthA,
		LengthB:      &in.LengthB,
		RoomHeight:   &in.RoomHeight,
		Floors:       &in.Floors,
		RoofPitch:    &in.RoofPitch,
		RidgeAxis:    &axis,
		WindowArea:   &in.WindowArea,
		UWall:        &in.UWall,
		URoof:        &in.URoof,
		UFloor:       &in.UFloor,
		UWindow:      &in.UWindow,
		Infiltration: &in.Infiltration,
		DeltaT:       &in.DeltaT,
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode sample: %w", err)
	}
	return enc.Close()
}
