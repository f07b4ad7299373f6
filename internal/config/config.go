package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// MockRobotConfig is the mockrobot runtime configuration. TOML values are
// overlaid by RBK_* environment variables before validation.
type MockRobotConfig struct {
	Robot     RobotConfig     `toml:"robot"`
	Listen    ListenConfig    `toml:"listen"`
	Sidecar   SidecarConfig   `toml:"sidecar"`
	Log       LogConfig       `toml:"log"`
	Waypoints []WaypointEntry `toml:"waypoints" ignored:"true"`
}

// RobotConfig tunes the simulated robot. Zero values fall back to the
// simulator defaults.
type RobotConfig struct {
	ID              string   `toml:"id"`
	Version         string   `toml:"version"`
	Model           string   `toml:"model"`
	TickMillis      int      `toml:"tick_ms" envconfig:"TICK_MS"`
	BatteryDrain    float64  `toml:"battery_drain" envconfig:"BATTERY_DRAIN"`
	MoveSpeed       float64  `toml:"move_speed" envconfig:"MOVE_SPEED"`
	ArriveThreshold float64  `toml:"arrive_threshold" envconfig:"ARRIVE_THRESHOLD"`
	MaxJackHeight   float64  `toml:"max_jack_height" envconfig:"MAX_JACK_HEIGHT"`
	MaxForkHeight   float64  `toml:"max_fork_height" envconfig:"MAX_FORK_HEIGHT"`
	IOLines         int      `toml:"io_lines" envconfig:"IO_LINES"`
	InitialBattery  float64  `toml:"initial_battery" envconfig:"INITIAL_BATTERY"`
	InitialMap      string   `toml:"initial_map" envconfig:"INITIAL_MAP"`
	MapList         []string `toml:"map_list" envconfig:"MAP_LIST"`
}

type ListenConfig struct {
	Host               string `toml:"host"`
	ReadTimeoutMillis  int    `toml:"read_timeout_ms" envconfig:"READ_TIMEOUT_MS"`
	WriteTimeoutMillis int    `toml:"write_timeout_ms" envconfig:"WRITE_TIMEOUT_MS"`
}

type SidecarConfig struct {
	Addr        string   `toml:"addr"`
	CorsOrigins []string `toml:"cors_origins" envconfig:"CORS_ORIGINS"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type WaypointEntry struct {
	ID string  `toml:"id"`
	X  float64 `toml:"x"`
	Y  float64 `toml:"y"`
}

// ClientConfig is the rbkctl connection configuration.
type ClientConfig struct {
	Host                 string `toml:"host"`
	ConnectTimeoutMillis int    `toml:"connect_timeout_ms" envconfig:"CONNECT_TIMEOUT_MS"`
	RequestTimeoutMillis int    `toml:"request_timeout_ms" envconfig:"REQUEST_TIMEOUT_MS"`
}

// DefaultWaypoints is installed when neither file nor environment define any,
// so navigation targets resolve on a fresh install.
func DefaultWaypoints() []WaypointEntry {
	return []WaypointEntry{
		{ID: "station_a", X: 10, Y: 5},
		{ID: "station_b", X: 12, Y: 5},
		{ID: "charge_dock", X: 0, Y: 0},
	}
}

// LoadMockRobotConfig reads path (skipped when empty), applies RBK_*
// environment overrides and validates the result.
func LoadMockRobotConfig(path string) (MockRobotConfig, error) {
	var cfg MockRobotConfig
	if path != "" {
		if err := loadToml(path, &cfg); err != nil {
			return MockRobotConfig{}, err
		}
	}
	if err := envconfig.Process("rbk", &cfg); err != nil {
		return MockRobotConfig{}, fmt.Errorf("config env overlay failed: %w", err)
	}
	if cfg.Sidecar.Addr == "" {
		cfg.Sidecar.Addr = ":8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if len(cfg.Waypoints) == 0 {
		cfg.Waypoints = DefaultWaypoints()
	}
	if err := ValidateMockRobotConfig(cfg); err != nil {
		return MockRobotConfig{}, err
	}
	return cfg, nil
}

func LoadClientConfig(path string) (ClientConfig, error) {
	var cfg ClientConfig
	if path != "" {
		if err := loadToml(path, &cfg); err != nil {
			return ClientConfig{}, err
		}
	}
	if err := envconfig.Process("rbk", &cfg); err != nil {
		return ClientConfig{}, fmt.Errorf("config env overlay failed: %w", err)
	}
	if err := ValidateClientConfig(cfg); err != nil {
		return ClientConfig{}, err
	}
	return cfg, nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func ValidateMockRobotConfig(cfg MockRobotConfig) error {
	if cfg.Robot.TickMillis < 0 {
		return fmt.Errorf("mockrobot config tick_ms must not be negative")
	}
	if cfg.Robot.InitialBattery < 0 || cfg.Robot.InitialBattery > 1 {
		return fmt.Errorf("mockrobot config initial_battery must be within [0, 1]")
	}
	if cfg.Robot.IOLines < 0 || cfg.Robot.IOLines > 64 {
		return fmt.Errorf("mockrobot config io_lines must be within [0, 64]")
	}
	if strings.TrimSpace(cfg.Sidecar.Addr) == "" {
		return fmt.Errorf("mockrobot config missing sidecar addr")
	}
	for i, entry := range cfg.Waypoints {
		if err := ValidateWaypointEntry(entry); err != nil {
			return fmt.Errorf("waypoint[%d] invalid: %w", i, err)
		}
	}
	return nil
}

func ValidateClientConfig(cfg ClientConfig) error {
	if cfg.ConnectTimeoutMillis < 0 {
		return fmt.Errorf("client config connect_timeout_ms must not be negative")
	}
	if cfg.RequestTimeoutMillis < 0 {
		return fmt.Errorf("client config request_timeout_ms must not be negative")
	}
	return nil
}

func ValidateWaypointEntry(entry WaypointEntry) error {
	if strings.TrimSpace(entry.ID) == "" {
		return fmt.Errorf("id is required")
	}
	return nil
}
