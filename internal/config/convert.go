package config

import (
	"time"

	"github.com/danmuck/rbkctl/internal/client"
	"github.com/danmuck/rbkctl/internal/mock"
	"github.com/danmuck/rbkctl/internal/sim"
	"github.com/danmuck/rbkctl/internal/waypoint"
)

func (c MockRobotConfig) SimConfig() sim.Config {
	return sim.Config{
		ID:              c.Robot.ID,
		Version:         c.Robot.Version,
		Model:           c.Robot.Model,
		TickPeriod:      time.Duration(c.Robot.TickMillis) * time.Millisecond,
		BatteryDrain:    c.Robot.BatteryDrain,
		MoveSpeed:       c.Robot.MoveSpeed,
		ArriveThreshold: c.Robot.ArriveThreshold,
		MaxJackHeight:   c.Robot.MaxJackHeight,
		MaxForkHeight:   c.Robot.MaxForkHeight,
		IOLines:         c.Robot.IOLines,
		InitialBattery:  c.Robot.InitialBattery,
		InitialMap:      c.Robot.InitialMap,
		InitialMapList:  append([]string(nil), c.Robot.MapList...),
	}
}

func (c MockRobotConfig) MockConfig() mock.Config {
	return mock.Config{
		Host:         c.Listen.Host,
		ReadTimeout:  time.Duration(c.Listen.ReadTimeoutMillis) * time.Millisecond,
		WriteTimeout: time.Duration(c.Listen.WriteTimeoutMillis) * time.Millisecond,
	}
}

func (c MockRobotConfig) WaypointSeed() []waypoint.Point {
	points := make([]waypoint.Point, 0, len(c.Waypoints))
	for _, entry := range c.Waypoints {
		points = append(points, waypoint.Point{ID: entry.ID, X: entry.X, Y: entry.Y})
	}
	return points
}

func (c ClientConfig) Client() client.Config {
	return client.Config{
		Host:           c.Host,
		ConnectTimeout: time.Duration(c.ConnectTimeoutMillis) * time.Millisecond,
		RequestTimeout: time.Duration(c.RequestTimeoutMillis) * time.Millisecond,
	}
}
