package sim

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/danmuck/rbkctl/internal/protocol"
)

var ErrBusy = errors.New("sim: task already active")

type leg struct {
	id     string
	taskID string
	tx, ty float64
}

type navState struct {
	status   protocol.TaskStatus
	navType  int
	legs     []leg
	finished []leg
	legStart struct{ x, y float64 }
}

// MoveToTarget starts navigation toward one named waypoint.
func (r *Robot) MoveToTarget(t protocol.MoveTarget) error {
	lg, err := r.resolveTarget(t)
	if err != nil {
		return err
	}
	return r.startTask([]leg{lg}, 3)
}

// MoveToPoint starts free navigation toward raw map coordinates.
func (r *Robot) MoveToPoint(x, y float64) error {
	return r.startTask([]leg{{tx: x, ty: y}}, 2)
}

// MoveTargetList starts a multi-leg task. Every waypoint must resolve
// before any state changes.
func (r *Robot) MoveTargetList(targets []protocol.MoveTarget) error {
	if len(targets) == 0 {
		return ErrMissingParam
	}
	legs := make([]leg, 0, len(targets))
	for _, t := range targets {
		lg, err := r.resolveTarget(t)
		if err != nil {
			return err
		}
		legs = append(legs, lg)
	}
	return r.startTask(legs, 3)
}

// PauseTask suspends an active task; pose stops advancing.
func (r *Robot) PauseTask() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nav.status == protocol.TaskStatusRunning {
		r.nav.status = protocol.TaskStatusSuspended
	}
}

// ResumeTask reverses a pause.
func (r *Robot) ResumeTask() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nav.status == protocol.TaskStatusSuspended {
		r.nav.status = protocol.TaskStatusRunning
	}
}

// CancelTask ends a non-terminal task, freezing pose where it stands.
func (r *Robot) CancelTask() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancelLocked()
}

// Stop is the control-channel cancel; identical effect on the task.
func (r *Robot) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancelLocked()
}

func (r *Robot) cancelLocked() {
	if r.nav.status != protocol.TaskStatusNone && !r.nav.status.Terminal() {
		r.nav.status = protocol.TaskStatusCanceled
	}
}

func (r *Robot) resolveTarget(t protocol.MoveTarget) (leg, error) {
	if t.ID == "" {
		return leg{}, ErrMissingParam
	}
	if r.resolver == nil {
		return leg{}, fmt.Errorf("%w: %q", ErrUnknownWaypoint, t.ID)
	}
	x, y, ok := r.resolver.Resolve(t.ID)
	if !ok {
		return leg{}, fmt.Errorf("%w: %q", ErrUnknownWaypoint, t.ID)
	}
	return leg{id: t.ID, taskID: t.TaskID, tx: x, ty: y}, nil
}

func (r *Robot) startTask(legs []leg, navType int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nav.status == protocol.TaskStatusRunning || r.nav.status == protocol.TaskStatusSuspended {
		return ErrBusy
	}
	r.nav = navState{status: protocol.TaskStatusRunning, navType: navType, legs: legs}
	r.nav.legStart.x, r.nav.legStart.y = r.x, r.y
	return nil
}

// Tick advances the clock-driven model by elapsed: battery drains every
// tick, pose integrates toward the current target while the task runs.
func (r *Robot) Tick(elapsed time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.battery -= r.cfg.BatteryDrain
	if r.battery < 0 {
		r.battery = 0
	}
	r.totalTimeMS += float64(elapsed.Milliseconds())

	if r.nav.status != protocol.TaskStatusRunning {
		return
	}

	budget := r.cfg.MoveSpeed * elapsed.Seconds()
	for budget > 0 && len(r.nav.legs) > 0 {
		lg := r.nav.legs[0]
		dx, dy := lg.tx-r.x, lg.ty-r.y
		dist := math.Hypot(dx, dy)
		if dist > 0 {
			r.angle = math.Atan2(dy, dx)
		}

		step := budget
		if dist < step {
			step = dist
		}
		if dist-step <= r.cfg.ArriveThreshold {
			// Arrival: snap exactly onto the target.
			r.x, r.y = lg.tx, lg.ty
			r.odometer += dist
			budget -= dist
			r.finishLegLocked()
			continue
		}
		r.x += step * dx / dist
		r.y += step * dy / dist
		r.odometer += step
		budget -= step
	}
}

func (r *Robot) finishLegLocked() {
	r.nav.finished = append(r.nav.finished, r.nav.legs[0])
	r.nav.legs = r.nav.legs[1:]
	r.nav.legStart.x, r.nav.legStart.y = r.x, r.y
	if len(r.nav.legs) == 0 {
		r.nav.status = protocol.TaskStatusCompleted
	}
}

func (r *Robot) NavStatus() protocol.NavStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := protocol.NavStatus{
		TaskStatus:     r.nav.status,
		TaskType:       r.nav.navType,
		FinishedPath:   make([]string, 0, len(r.nav.finished)),
		UnfinishedPath: make([]string, 0, len(r.nav.legs)),
		MoveStatusInfo: moveStatusInfo(r.nav.status),
		CreateOn:       wireTimestamp(),
	}
	for _, lg := range r.nav.finished {
		out.FinishedPath = append(out.FinishedPath, lg.id)
	}
	for _, lg := range r.nav.legs {
		out.UnfinishedPath = append(out.UnfinishedPath, lg.id)
	}
	if len(r.nav.legs) > 0 {
		cur := r.nav.legs[0]
		out.TargetID = cur.id
		out.TargetPoint = [3]float64{cur.tx, cur.ty, 0}
	} else if n := len(r.nav.finished); n > 0 {
		last := r.nav.finished[n-1]
		out.TargetID = last.id
		out.TargetPoint = [3]float64{last.tx, last.ty, 0}
	}
	return out
}

func (r *Robot) TaskPackage() protocol.TaskPackage {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := len(r.nav.finished) + len(r.nav.legs)
	out := protocol.TaskPackage{
		SourceName: "SELF_POSITION",
		Info:       moveStatusInfo(r.nav.status),
		CreateOn:   wireTimestamp(),
	}

	done := float64(len(r.nav.finished))
	if len(r.nav.legs) > 0 {
		cur := r.nav.legs[0]
		out.ClosestTarget = cur.id
		out.TargetName = r.nav.legs[len(r.nav.legs)-1].id
		remaining := math.Hypot(cur.tx-r.x, cur.ty-r.y)
		out.Distance = remaining
		legTotal := math.Hypot(cur.tx-r.nav.legStart.x, cur.ty-r.nav.legStart.y)
		if legTotal > 0 {
			done += 1 - remaining/legTotal
		}
	} else if n := len(r.nav.finished); n > 0 {
		last := r.nav.finished[n-1]
		out.ClosestTarget = last.id
		out.TargetName = last.id
	}
	if total > 0 {
		out.Percentage = done / float64(total)
	}

	for _, lg := range r.nav.finished {
		out.TaskStatusList = append(out.TaskStatusList, taskEntry(lg, protocol.TaskStatusCompleted))
	}
	for i, lg := range r.nav.legs {
		st := protocol.TaskStatusWaiting
		if i == 0 {
			st = r.nav.status
		}
		out.TaskStatusList = append(out.TaskStatusList, taskEntry(lg, st))
	}
	return out
}

func taskEntry(lg leg, st protocol.TaskStatus) protocol.TaskStatusEntry {
	id := lg.taskID
	if id == "" {
		id = lg.id
	}
	return protocol.TaskStatusEntry{TaskID: id, State: st}
}

func moveStatusInfo(s protocol.TaskStatus) string {
	switch s {
	case protocol.TaskStatusRunning:
		return "navigation running"
	case protocol.TaskStatusSuspended:
		return "navigation suspended"
	case protocol.TaskStatusCompleted:
		return "navigation completed"
	case protocol.TaskStatusCanceled:
		return "navigation canceled"
	default:
		return "idle"
	}
}
