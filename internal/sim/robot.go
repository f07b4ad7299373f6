package sim

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/danmuck/rbkctl/internal/observability"
	"github.com/danmuck/rbkctl/internal/protocol"
)

var (
	ErrUnknownWaypoint = errors.New("sim: unknown waypoint")
	ErrOutOfRange      = errors.New("sim: value out of range")
	ErrMissingParam    = errors.New("sim: required parameter missing")
)

// Resolver looks a waypoint id up in the externally owned waypoint set.
type Resolver interface {
	Resolve(id string) (x, y float64, ok bool)
}

// Robot is the single shared simulated robot record. All access goes
// through its methods; critical sections stay short and never block on I/O.
type Robot struct {
	mu  sync.RWMutex
	cfg Config

	resolver Resolver

	x, y, angle float64
	confidence  float64

	battery     float64
	batteryTemp float64
	charging    bool
	voltage     float64
	current     float64

	blocked bool

	odometer    float64
	totalTimeMS float64

	nav navState

	currentMap string
	maps       []string

	lockHolder string
	params     map[string]any

	jackHeight  float64
	jackLoaded  bool
	jackEnabled bool
	forkHeight  float64
	rollerOn    bool
	di, do      []bool
	audioID     string
}

// NewRobot builds a robot with the fixed startup defaults.
func NewRobot(cfg Config, resolver Resolver) *Robot {
	cfg = cfg.withDefaults()
	return &Robot{
		cfg:         cfg,
		resolver:    resolver,
		confidence:  0.98,
		battery:     cfg.InitialBattery,
		batteryTemp: 25.0,
		voltage:     48.0,
		current:     2.5,
		odometer:    cfg.InitialOdometer,
		totalTimeMS: cfg.InitialTotalTime,
		currentMap:  cfg.InitialMap,
		maps:        append([]string(nil), cfg.InitialMapList...),
		jackEnabled: true,
		params:      make(map[string]any),
		di:          make([]bool, cfg.IOLines),
		do:          make([]bool, cfg.IOLines),
	}
}

// Run advances the robot on the configured tick period until ctx ends.
func (r *Robot) Run(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.TickPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Tick(r.cfg.TickPeriod)
			observability.RecordSimTick(r.cfg.ID)
		}
	}
}

func (r *Robot) Info() protocol.RobotInfo {
	return protocol.RobotInfo{ID: r.cfg.ID, Version: r.cfg.Version, Model: r.cfg.Model}
}

func (r *Robot) RunInfo() protocol.RunInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return protocol.RunInfo{
		Odometer:          r.odometer,
		Total:             r.totalTimeMS,
		TotalTime:         r.totalTimeMS,
		ControllerTemp:    35.5,
		ControllerHumi:    45.0,
		ControllerVoltage: 12.0,
	}
}

func (r *Robot) Pose() protocol.Pose {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return protocol.Pose{X: r.x, Y: r.y, Angle: r.angle, Confidence: r.confidence}
}

func (r *Robot) Speed() protocol.Speed {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.nav.status == protocol.TaskStatusRunning {
		return protocol.Speed{Vx: r.cfg.MoveSpeed}
	}
	return protocol.Speed{}
}

func (r *Robot) BlockStatus() protocol.BlockStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return protocol.BlockStatus{Blocked: r.blocked}
}

func (r *Robot) Battery() protocol.BatteryStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return protocol.BatteryStatus{
		Level:    r.battery,
		Temp:     r.batteryTemp,
		Charging: r.charging,
		Voltage:  r.voltage,
		Current:  r.current,
	}
}

func (r *Robot) IOStatus() protocol.IOStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := protocol.IOStatus{
		DI: make([]protocol.IOBit, len(r.di)),
		DO: make([]protocol.IOBit, len(r.do)),
	}
	for i, v := range r.di {
		out.DI[i] = protocol.IOBit{ID: i, Status: v}
	}
	for i, v := range r.do {
		out.DO[i] = protocol.IOBit{ID: i, Status: v}
	}
	return out
}

func (r *Robot) JackStatus() protocol.JackStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return protocol.JackStatus{
		Mode:     true,
		Enabled:  r.jackEnabled,
		State:    4,
		Full:     r.jackLoaded,
		Height:   r.jackHeight,
		CreateOn: wireTimestamp(),
	}
}

func (r *Robot) MapInfo() protocol.MapInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return protocol.MapInfo{
		CurrentMap: r.currentMap,
		Maps:       append([]string(nil), r.maps...),
	}
}

// Relocate seeds the localizer with a pose estimate; confidence drops
// until the location is confirmed.
func (r *Robot) Relocate(x, y, angle float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.x, r.y, r.angle = x, y, angle
	r.confidence = 0.5
}

// ConfirmLocation accepts the current estimate.
func (r *Robot) ConfirmLocation() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.confidence = 0.98
}

// SwitchMap loads the named map, registering it when unknown.
func (r *Robot) SwitchMap(name string) error {
	if name == "" {
		return ErrMissingParam
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.currentMap = name
	for _, m := range r.maps {
		if m == name {
			return nil
		}
	}
	r.maps = append(r.maps, name)
	return nil
}

// LockControl records the control lock holder.
func (r *Robot) LockControl(nick string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if nick == "" {
		nick = "unknown"
	}
	r.lockHolder = nick
}

// UnlockControl releases the control lock.
func (r *Robot) UnlockControl() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lockHolder = ""
}

// LockHolder reports the recorded control lock holder, empty when free.
func (r *Robot) LockHolder() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lockHolder
}

// ClearErrors drops latched error state.
func (r *Robot) ClearErrors() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blocked = false
}

// SetParams merges the given parameters into the stored parameter map.
func (r *Robot) SetParams(p map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, v := range p {
		r.params[k] = v
	}
}

// Params returns a copy of the stored parameter map.
func (r *Robot) Params() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]any, len(r.params))
	for k, v := range r.params {
		out[k] = v
	}
	return out
}

func wireTimestamp() string {
	return strconv.FormatInt(time.Now().Unix(), 10)
}
