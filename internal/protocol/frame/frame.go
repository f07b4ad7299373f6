package frame

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	HeaderLen = 16

	StartMarker byte = 0x5A
	Version     byte = 0x01
)

var (
	ErrShortHeader  = errors.New("frame: short header")
	ErrShortBody    = errors.New("frame: short body")
	ErrBadMarker    = errors.New("frame: sync marker not found")
	ErrBodyTooLarge = errors.New("frame: body too large")
)

// Header is the fixed wire header. All multi-byte fields are big-endian.
type Header struct {
	Version byte
	FlowNo  uint16
	BodyLen uint32
	APINo   uint16
}

// Frame is one complete wire unit: header plus UTF-8 JSON body.
type Frame struct {
	Header Header
	Body   []byte
}

// Limits constrains frame decode/encode memory use.
type Limits struct {
	MaxBodyBytes uint32
	MaxSkipBytes int
}

func DefaultLimits() Limits {
	return Limits{
		MaxBodyBytes: 4 * 1024 * 1024,
		MaxSkipBytes: 4096,
	}
}

// ReadFrame blocks until one complete frame is available on r. Bytes ahead
// of the sync marker are skipped, up to limits.MaxSkipBytes.
func ReadFrame(r io.Reader, limits Limits) (Frame, error) {
	var one [1]byte
	skipped := 0
	for {
		if _, err := io.ReadFull(r, one[:]); err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
				return Frame{}, ErrShortHeader
			}
			return Frame{}, err
		}
		if one[0] == StartMarker {
			break
		}
		skipped++
		if skipped > limits.MaxSkipBytes {
			return Frame{}, ErrBadMarker
		}
	}

	var fixed [HeaderLen]byte
	fixed[0] = StartMarker
	if _, err := io.ReadFull(r, fixed[1:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return Frame{}, ErrShortHeader
		}
		return Frame{}, err
	}

	h, err := DecodeHeader(fixed[:])
	if err != nil {
		return Frame{}, err
	}
	if h.BodyLen > limits.MaxBodyBytes {
		return Frame{}, ErrBodyTooLarge
	}

	body := make([]byte, h.BodyLen)
	if h.BodyLen > 0 {
		if _, err := io.ReadFull(r, body); err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
				return Frame{}, ErrShortBody
			}
			return Frame{}, err
		}
	}

	return Frame{Header: h, Body: body}, nil
}

func WriteFrame(w io.Writer, f Frame, limits Limits) error {
	bodyLen := len(f.Body)
	if uint32(bodyLen) > limits.MaxBodyBytes {
		return ErrBodyTooLarge
	}

	h := f.Header
	h.BodyLen = uint32(bodyLen)
	if h.Version == 0 {
		h.Version = Version
	}

	hb := EncodeHeader(h)
	if _, err := w.Write(hb); err != nil {
		return err
	}
	if bodyLen > 0 {
		if _, err := w.Write(f.Body); err != nil {
			return err
		}
	}
	return nil
}

func EncodeHeader(h Header) []byte {
	buf := make([]byte, HeaderLen)
	buf[0] = StartMarker
	buf[1] = h.Version
	binary.BigEndian.PutUint16(buf[2:4], h.FlowNo)
	binary.BigEndian.PutUint32(buf[4:8], h.BodyLen)
	binary.BigEndian.PutUint16(buf[8:10], h.APINo)
	return buf
}

func DecodeHeader(b []byte) (Header, error) {
	if len(b) != HeaderLen {
		return Header{}, fmt.Errorf("frame: invalid header length: %d", len(b))
	}
	if b[0] != StartMarker {
		return Header{}, ErrBadMarker
	}
	return Header{
		Version: b[1],
		FlowNo:  binary.BigEndian.Uint16(b[2:4]),
		BodyLen: binary.BigEndian.Uint32(b[4:8]),
		APINo:   binary.BigEndian.Uint16(b[8:10]),
	}, nil
}
