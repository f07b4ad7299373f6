package sim

import "fmt"

// Peripheral operations are flat field writes. Range checks reject the
// request before any state changes.

// PlayAudio starts playback of the named clip.
func (r *Robot) PlayAudio(id string) error {
	if id == "" {
		return fmt.Errorf("%w: audio id", ErrMissingParam)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.audioID = id
	return nil
}

// StopAudio halts playback.
func (r *Robot) StopAudio() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.audioID = ""
}

// AudioPlaying reports the active clip id, empty when silent.
func (r *Robot) AudioPlaying() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.audioID
}

// SetDO drives one digital output line.
func (r *Robot) SetDO(id int, status bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id < 0 || id >= len(r.do) {
		return fmt.Errorf("%w: DO id %d not in [0,%d]", ErrOutOfRange, id, len(r.do)-1)
	}
	r.do[id] = status
	return nil
}

// JackLoad raises the jack under a payload.
func (r *Robot) JackLoad() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jackLoaded = true
	r.jackHeight = 0.2
}

// JackUnload lowers the jack and releases the payload.
func (r *Robot) JackUnload() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jackLoaded = false
	r.jackHeight = 0
}

// JackStop halts jack motion where it stands.
func (r *Robot) JackStop() {}

// SetJackHeight moves the jack to an absolute height.
func (r *Robot) SetJackHeight(h float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h < 0 || h > r.cfg.MaxJackHeight {
		return fmt.Errorf("%w: jack height %.3f not in [0,%.3f]", ErrOutOfRange, h, r.cfg.MaxJackHeight)
	}
	r.jackHeight = h
	return nil
}

// SetForkHeight moves the fork to an absolute height.
func (r *Robot) SetForkHeight(h float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h < 0 || h > r.cfg.MaxForkHeight {
		return fmt.Errorf("%w: fork height %.3f not in [0,%.3f]", ErrOutOfRange, h, r.cfg.MaxForkHeight)
	}
	r.forkHeight = h
	return nil
}

// StopFork halts fork motion where it stands.
func (r *Robot) StopFork() {}

// ForkHeight reports the fork position.
func (r *Robot) ForkHeight() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.forkHeight
}

// RollerLoad engages the roller conveyor.
func (r *Robot) RollerLoad() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rollerOn = true
}

// RollerUnload runs the conveyor in reverse; the roller stays engaged
// until stopped.
func (r *Robot) RollerUnload() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rollerOn = true
}

// RollerStop disengages the roller conveyor.
func (r *Robot) RollerStop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rollerOn = false
}

// RollerEngaged reports conveyor engagement.
func (r *Robot) RollerEngaged() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rollerOn
}
