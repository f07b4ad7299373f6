package frame

import (
	"bytes"
	"errors"
	"testing"
	"testing/iotest"
)

func TestReadWriteFrameRoundTrip(t *testing.T) {
	body := []byte(`{"id":"station_a","task_id":"t1"}`)
	in := Frame{
		Header: Header{FlowNo: 42, APINo: 3051},
		Body:   body,
	}
	var buf bytes.Buffer
	if err := WriteFrame(&buf, in, DefaultLimits()); err != nil {
		t.Fatalf("write frame: %v", err)
	}
	out, err := ReadFrame(&buf, DefaultLimits())
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}
	if out.Header.FlowNo != in.Header.FlowNo || out.Header.APINo != in.Header.APINo {
		t.Fatalf("header mismatch: got=%+v want=%+v", out.Header, in.Header)
	}
	if out.Header.Version != Version {
		t.Fatalf("version not stamped: %#x", out.Header.Version)
	}
	if !bytes.Equal(out.Body, body) {
		t.Fatalf("body mismatch: %q", string(out.Body))
	}
}

func TestReadFrameEmptyBody(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrame(&buf, Frame{Header: Header{FlowNo: 7, APINo: 1007}}, DefaultLimits()); err != nil {
		t.Fatalf("write frame: %v", err)
	}
	out, err := ReadFrame(&buf, DefaultLimits())
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}
	if len(out.Body) != 0 {
		t.Fatalf("expected empty body, got %d bytes", len(out.Body))
	}
}

func TestReadFrameResumesAcrossShortReads(t *testing.T) {
	body := []byte(`{"simple":true}`)
	var buf bytes.Buffer
	if err := WriteFrame(&buf, Frame{Header: Header{FlowNo: 3, APINo: 1000}, Body: body}, DefaultLimits()); err != nil {
		t.Fatalf("write frame: %v", err)
	}
	out, err := ReadFrame(iotest.OneByteReader(&buf), DefaultLimits())
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}
	if out.Header.FlowNo != 3 || !bytes.Equal(out.Body, body) {
		t.Fatalf("frame mismatch after byte-at-a-time read: %+v", out)
	}
}

func TestReadFrameSkipsNoiseBeforeMarker(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0x00, 0xFF, 0x13})
	if err := WriteFrame(&buf, Frame{Header: Header{FlowNo: 9, APINo: 1004}}, DefaultLimits()); err != nil {
		t.Fatalf("write frame: %v", err)
	}
	out, err := ReadFrame(&buf, DefaultLimits())
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}
	if out.Header.APINo != 1004 {
		t.Fatalf("api mismatch after skip: %d", out.Header.APINo)
	}
}

func TestReadFrameMarkerNeverFound(t *testing.T) {
	junk := bytes.Repeat([]byte{0x00}, DefaultLimits().MaxSkipBytes+2)
	_, err := ReadFrame(bytes.NewReader(junk), DefaultLimits())
	if !errors.Is(err, ErrBadMarker) {
		t.Fatalf("expected ErrBadMarker, got %v", err)
	}
}

func TestReadFrameTruncatedHeader(t *testing.T) {
	full := EncodeHeader(Header{FlowNo: 1, APINo: 1007})
	_, err := ReadFrame(bytes.NewReader(full[:5]), DefaultLimits())
	if !errors.Is(err, ErrShortHeader) {
		t.Fatalf("expected ErrShortHeader, got %v", err)
	}
}

func TestReadFrameTruncatedBody(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrame(&buf, Frame{Header: Header{FlowNo: 2, APINo: 1020}, Body: []byte(`{"task_status":2}`)}, DefaultLimits()); err != nil {
		t.Fatalf("write frame: %v", err)
	}
	raw := buf.Bytes()
	_, err := ReadFrame(bytes.NewReader(raw[:len(raw)-4]), DefaultLimits())
	if !errors.Is(err, ErrShortBody) {
		t.Fatalf("expected ErrShortBody, got %v", err)
	}
}

func TestReadFrameBodyTooLarge(t *testing.T) {
	limits := Limits{MaxBodyBytes: 8, MaxSkipBytes: 16}
	var buf bytes.Buffer
	if err := WriteFrame(&buf, Frame{Header: Header{FlowNo: 4, APINo: 4100}, Body: []byte(`{"k":"0123456789"}`)}, DefaultLimits()); err != nil {
		t.Fatalf("write frame: %v", err)
	}
	_, err := ReadFrame(&buf, limits)
	if !errors.Is(err, ErrBodyTooLarge) {
		t.Fatalf("expected ErrBodyTooLarge, got %v", err)
	}
}

func TestWriteFrameBodyTooLarge(t *testing.T) {
	limits := Limits{MaxBodyBytes: 4, MaxSkipBytes: 16}
	err := WriteFrame(&bytes.Buffer{}, Frame{Header: Header{APINo: 6000}, Body: []byte("12345")}, limits)
	if !errors.Is(err, ErrBodyTooLarge) {
		t.Fatalf("expected ErrBodyTooLarge, got %v", err)
	}
}

func TestDecodeHeaderRejectsBadMarker(t *testing.T) {
	b := EncodeHeader(Header{FlowNo: 1, APINo: 1000})
	b[0] = 0x00
	_, err := DecodeHeader(b)
	if !errors.Is(err, ErrBadMarker) {
		t.Fatalf("expected ErrBadMarker, got %v", err)
	}
}

func TestHeaderLayoutIsPinned(t *testing.T) {
	b := EncodeHeader(Header{Version: Version, FlowNo: 0x0102, BodyLen: 0x01020304, APINo: 0x0B0C})
	want := []byte{0x5A, 0x01, 0x01, 0x02, 0x01, 0x02, 0x03, 0x04, 0x0B, 0x0C, 0, 0, 0, 0, 0, 0}
	if !bytes.Equal(b, want) {
		t.Fatalf("header layout drifted:\n got=% x\nwant=% x", b, want)
	}
}
