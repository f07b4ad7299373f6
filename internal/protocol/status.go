package protocol

import (
	"encoding/json"
	"fmt"
)

// RetCode is the numeric result carried in every response body.
type RetCode uint32

const (
	RetOK           RetCode = 0
	RetUnavailable  RetCode = 40000
	RetParamMissing RetCode = 40001
	RetParamType    RetCode = 40002
	RetParamIllegal RetCode = 40003
	RetTimeout      RetCode = 40100
	RetForbidden    RetCode = 40101
	RetBusy         RetCode = 40102
	RetInternal     RetCode = 40199
	RetInitStatus   RetCode = 41000
	RetLoadMap      RetCode = 41001
	RetRelocation   RetCode = 41002
)

// Status is the ret_code/err_msg pair every RBK response carries.
type Status struct {
	Code    RetCode `json:"ret_code"`
	Message string  `json:"err_msg"`
}

func (s Status) OK() bool { return s.Code == RetOK }

// StatusCode exposes the code through embedding, so any response payload
// can report its outcome without reflection.
func (s Status) StatusCode() RetCode { return s.Code }

// Err returns nil for a success status and a *StatusError otherwise.
func (s Status) Err() error {
	if s.Code == RetOK {
		return nil
	}
	return &StatusError{Code: s.Code, Message: s.Message}
}

// StatusError is a non-zero ret_code reported by the robot.
type StatusError struct {
	Code    RetCode
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("rbk: ret_code %d: %s", e.Code, e.Message)
}

// ErrorBody renders an error-kind response body.
func ErrorBody(code RetCode, msg string) []byte {
	b, _ := json.Marshal(Status{Code: code, Message: msg})
	return b
}

// TaskStatus is the navigation task state on the wire.
type TaskStatus int

const (
	TaskStatusNone      TaskStatus = 0
	TaskStatusWaiting   TaskStatus = 1
	TaskStatusRunning   TaskStatus = 2
	TaskStatusSuspended TaskStatus = 3
	TaskStatusCompleted TaskStatus = 4
	TaskStatusFailed    TaskStatus = 5
	TaskStatusCanceled  TaskStatus = 6
)

func (s TaskStatus) String() string {
	switch s {
	case TaskStatusNone:
		return "none"
	case TaskStatusWaiting:
		return "waiting"
	case TaskStatusRunning:
		return "running"
	case TaskStatusSuspended:
		return "suspended"
	case TaskStatusCompleted:
		return "completed"
	case TaskStatusFailed:
		return "failed"
	case TaskStatusCanceled:
		return "canceled"
	default:
		return fmt.Sprintf("task_status_%d", int(s))
	}
}

// Terminal reports whether no further transitions can occur.
func (s TaskStatus) Terminal() bool {
	switch s {
	case TaskStatusCompleted, TaskStatusFailed, TaskStatusCanceled:
		return true
	default:
		return false
	}
}
