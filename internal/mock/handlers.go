package mock

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/danmuck/rbkctl/internal/protocol"
	"github.com/danmuck/rbkctl/internal/sim"
)

// handler turns one request body into one response payload. Handlers never
// return errors; failures become error-status payloads.
type handler func(r *sim.Robot, body []byte) any

func (s *Service) dispatch(api uint16, body []byte) any {
	h, ok := handlers[api]
	if !ok {
		return protocol.Status{
			Code:    protocol.RetUnavailable,
			Message: fmt.Sprintf("Unknown API: %d", api),
		}
	}
	return h(s.robot, body)
}

// decodeBody unmarshals a non-empty body into dst. An empty body leaves dst
// zero, matching callers that omit optional parameters entirely.
func decodeBody(body []byte, dst any) (protocol.Status, bool) {
	if len(body) == 0 {
		return protocol.Status{}, true
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return protocol.Status{
			Code:    protocol.RetParamType,
			Message: "malformed request body: " + err.Error(),
		}, false
	}
	return protocol.Status{}, true
}

// ack maps a simulator result onto the wire status taxonomy.
func ack(err error) protocol.Ack {
	switch {
	case err == nil:
		return protocol.Ack{}
	case errors.Is(err, sim.ErrMissingParam):
		return protocol.Ack{Status: protocol.Status{Code: protocol.RetParamMissing, Message: err.Error()}}
	case errors.Is(err, sim.ErrUnknownWaypoint), errors.Is(err, sim.ErrOutOfRange):
		return protocol.Ack{Status: protocol.Status{Code: protocol.RetParamIllegal, Message: err.Error()}}
	case errors.Is(err, sim.ErrBusy):
		return protocol.Ack{Status: protocol.Status{Code: protocol.RetBusy, Message: err.Error()}}
	default:
		return protocol.Ack{Status: protocol.Status{Code: protocol.RetInternal, Message: err.Error()}}
	}
}

var handlers = map[uint16]handler{
	protocol.APIRobotInfo:     func(r *sim.Robot, _ []byte) any { return r.Info() },
	protocol.APIRunInfo:       func(r *sim.Robot, _ []byte) any { return r.RunInfo() },
	protocol.APIPose:          func(r *sim.Robot, _ []byte) any { return r.Pose() },
	protocol.APISpeed:         func(r *sim.Robot, _ []byte) any { return r.Speed() },
	protocol.APIBlockStatus:   func(r *sim.Robot, _ []byte) any { return r.BlockStatus() },
	protocol.APIBatteryStatus: func(r *sim.Robot, _ []byte) any { return r.Battery() },
	protocol.APIIOStatus:      func(r *sim.Robot, _ []byte) any { return r.IOStatus() },
	protocol.APINavStatus:     func(r *sim.Robot, _ []byte) any { return r.NavStatus() },
	protocol.APIJackStatus:    func(r *sim.Robot, _ []byte) any { return r.JackStatus() },
	protocol.APITaskPackage:   func(r *sim.Robot, _ []byte) any { return r.TaskPackage() },
	protocol.APIMapInfo:       func(r *sim.Robot, _ []byte) any { return r.MapInfo() },

	protocol.APIStop: func(r *sim.Robot, _ []byte) any {
		r.Stop()
		return protocol.Ack{}
	},
	protocol.APIRelocate: func(r *sim.Robot, body []byte) any {
		var req protocol.RelocateRequest
		if st, ok := decodeBody(body, &req); !ok {
			return st
		}
		r.Relocate(req.X, req.Y, req.Angle)
		return protocol.Ack{}
	},
	protocol.APIConfirmLocation: func(r *sim.Robot, _ []byte) any {
		r.ConfirmLocation()
		return protocol.Ack{}
	},
	protocol.APISwitchMap: func(r *sim.Robot, body []byte) any {
		var req protocol.SwitchMapRequest
		if st, ok := decodeBody(body, &req); !ok {
			return st
		}
		return ack(r.SwitchMap(req.MapName))
	},

	protocol.APIPauseTask: func(r *sim.Robot, _ []byte) any {
		r.PauseTask()
		return protocol.Ack{}
	},
	protocol.APIResumeTask: func(r *sim.Robot, _ []byte) any {
		r.ResumeTask()
		return protocol.Ack{}
	},
	protocol.APICancelTask: func(r *sim.Robot, _ []byte) any {
		r.CancelTask()
		return protocol.Ack{}
	},
	protocol.APIMoveToPoint: func(r *sim.Robot, body []byte) any {
		var req protocol.MoveToPointRequest
		if st, ok := decodeBody(body, &req); !ok {
			return st
		}
		return ack(r.MoveToPoint(req.X, req.Y))
	},
	protocol.APIMoveToTarget: func(r *sim.Robot, body []byte) any {
		var req protocol.MoveTarget
		if st, ok := decodeBody(body, &req); !ok {
			return st
		}
		return ack(r.MoveToTarget(req))
	},
	protocol.APIMoveTargetList: func(r *sim.Robot, body []byte) any {
		var req protocol.MoveTargetListRequest
		if st, ok := decodeBody(body, &req); !ok {
			return st
		}
		return ack(r.MoveTargetList(req.Targets))
	},

	protocol.APILockControl: func(r *sim.Robot, body []byte) any {
		var req protocol.LockRequest
		if st, ok := decodeBody(body, &req); !ok {
			return st
		}
		r.LockControl(req.Nick)
		return protocol.Ack{}
	},
	protocol.APIUnlockControl: func(r *sim.Robot, _ []byte) any {
		r.UnlockControl()
		return protocol.Ack{}
	},
	protocol.APIClearErrors: func(r *sim.Robot, _ []byte) any {
		r.ClearErrors()
		return protocol.Ack{}
	},
	protocol.APISetParams: func(r *sim.Robot, body []byte) any {
		var req map[string]any
		if st, ok := decodeBody(body, &req); !ok {
			return st
		}
		r.SetParams(req)
		return protocol.Ack{}
	},

	// Kernel commands are acknowledged without touching the process.
	protocol.APIShutdown:      func(r *sim.Robot, _ []byte) any { return protocol.Ack{} },
	protocol.APIReboot:        func(r *sim.Robot, _ []byte) any { return protocol.Ack{} },
	protocol.APIResetFirmware: func(r *sim.Robot, _ []byte) any { return protocol.Ack{} },

	protocol.APIPlayAudio: func(r *sim.Robot, body []byte) any {
		var req protocol.PlayAudioRequest
		if st, ok := decodeBody(body, &req); !ok {
			return st
		}
		return ack(r.PlayAudio(req.ID))
	},
	protocol.APIStopAudio: func(r *sim.Robot, _ []byte) any {
		r.StopAudio()
		return protocol.Ack{}
	},
	protocol.APISetDO: func(r *sim.Robot, body []byte) any {
		var req protocol.SetDORequest
		if st, ok := decodeBody(body, &req); !ok {
			return st
		}
		return ack(r.SetDO(req.ID, req.Status))
	},
	protocol.APIJackLoad: func(r *sim.Robot, _ []byte) any {
		r.JackLoad()
		return protocol.Ack{}
	},
	protocol.APIJackUnload: func(r *sim.Robot, _ []byte) any {
		r.JackUnload()
		return protocol.Ack{}
	},
	protocol.APIJackStop: func(r *sim.Robot, _ []byte) any {
		r.JackStop()
		return protocol.Ack{}
	},
	protocol.APISetJackHeight: func(r *sim.Robot, body []byte) any {
		var req protocol.SetHeightRequest
		if st, ok := decodeBody(body, &req); !ok {
			return st
		}
		return ack(r.SetJackHeight(req.Height))
	},
	protocol.APISetForkHeight: func(r *sim.Robot, body []byte) any {
		var req protocol.SetHeightRequest
		if st, ok := decodeBody(body, &req); !ok {
			return st
		}
		return ack(r.SetForkHeight(req.Height))
	},
	protocol.APIStopFork: func(r *sim.Robot, _ []byte) any {
		r.StopFork()
		return protocol.Ack{}
	},
	protocol.APIRollerLoad: func(r *sim.Robot, _ []byte) any {
		r.RollerLoad()
		return protocol.Ack{}
	},
	protocol.APIRollerUnload: func(r *sim.Robot, _ []byte) any {
		r.RollerUnload()
		return protocol.Ack{}
	},
	protocol.APIRollerStop: func(r *sim.Robot, _ []byte) any {
		r.RollerStop()
		return protocol.Ack{}
	},
}
