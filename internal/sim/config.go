package sim

import "time"

// Config tunes the simulated robot. Zero values take defaults.
type Config struct {
	ID      string
	Version string
	Model   string

	TickPeriod       time.Duration
	BatteryDrain     float64 // fraction removed per tick
	MoveSpeed        float64 // meters per second while moving
	ArriveThreshold  float64 // meters; closer than this snaps to target
	MaxJackHeight    float64 // meters
	MaxForkHeight    float64 // meters
	IOLines          int     // digital input and output line count
	InitialBattery   float64
	InitialMap       string
	InitialMapList   []string
	InitialOdometer  float64
	InitialTotalTime float64 // milliseconds
}

func DefaultConfig() Config {
	return Config{
		ID:      "MOCK_ROBOT_001",
		Version: "v1.0.0-mock",
		Model:   "RBK-MOCK",

		TickPeriod:       time.Second,
		BatteryDrain:     0.0001,
		MoveSpeed:        0.5,
		ArriveThreshold:  0.01,
		MaxJackHeight:    1.0,
		MaxForkHeight:    3.0,
		IOLines:          8,
		InitialBattery:   0.85,
		InitialMap:       "default_map",
		InitialMapList:   []string{"default_map", "warehouse_map"},
		InitialOdometer:  1234.56,
		InitialTotalTime: 3600000,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.ID == "" {
		c.ID = d.ID
	}
	if c.Version == "" {
		c.Version = d.Version
	}
	if c.Model == "" {
		c.Model = d.Model
	}
	if c.TickPeriod <= 0 {
		c.TickPeriod = d.TickPeriod
	}
	if c.BatteryDrain <= 0 {
		c.BatteryDrain = d.BatteryDrain
	}
	if c.MoveSpeed <= 0 {
		c.MoveSpeed = d.MoveSpeed
	}
	if c.ArriveThreshold <= 0 {
		c.ArriveThreshold = d.ArriveThreshold
	}
	if c.MaxJackHeight <= 0 {
		c.MaxJackHeight = d.MaxJackHeight
	}
	if c.MaxForkHeight <= 0 {
		c.MaxForkHeight = d.MaxForkHeight
	}
	if c.IOLines <= 0 {
		c.IOLines = d.IOLines
	}
	if c.InitialBattery <= 0 {
		c.InitialBattery = d.InitialBattery
	}
	if c.InitialMap == "" {
		c.InitialMap = d.InitialMap
	}
	if len(c.InitialMapList) == 0 {
		c.InitialMapList = append([]string(nil), d.InitialMapList...)
	}
	if c.InitialOdometer <= 0 {
		c.InitialOdometer = d.InitialOdometer
	}
	if c.InitialTotalTime <= 0 {
		c.InitialTotalTime = d.InitialTotalTime
	}
	return c
}
