package protocol

import "errors"

var (
	ErrDecode     = errors.New("protocol: response decode")
	ErrBadRequest = errors.New("protocol: request encode")
	ErrUnroutable = errors.New("protocol: operation has no category port")
)
