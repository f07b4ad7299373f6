package client

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/rbkctl/internal/protocol"
	"github.com/danmuck/rbkctl/internal/protocol/frame"
)

var (
	ErrDisposed   = errors.New("client: disposed")
	ErrTimeout    = errors.New("client: request timed out")
	ErrConnection = errors.New("client: connection failed")
	ErrFlowWindow = errors.New("client: flow window exhausted")
)

// flowWindow is the modulus for per-connection flow number allocation.
const flowWindow = 512

// Client transport configuration.
type Config struct {
	Host           string
	ConnectTimeout time.Duration
	RequestTimeout time.Duration
	WriteTimeout   time.Duration
	Limits         frame.Limits

	// Ports replaces the fixed vendor port for a category. Categories
	// without an entry keep their vendor assignment.
	Ports map[protocol.Category]int
}

func DefaultConfig() Config {
	return Config{
		Host:           "127.0.0.1",
		ConnectTimeout: 5 * time.Second,
		RequestTimeout: 10 * time.Second,
		WriteTimeout:   5 * time.Second,
		Limits:         frame.DefaultLimits(),
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if strings.TrimSpace(c.Host) == "" {
		c.Host = def.Host
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = def.ConnectTimeout
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = def.RequestTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = def.WriteTimeout
	}
	if c.Limits.MaxBodyBytes == 0 {
		c.Limits = frame.DefaultLimits()
	}
	return c
}

// Client multiplexes calls onto one connection per category.
type Client struct {
	cfg Config
	log zerolog.Logger

	mu       sync.Mutex
	conns    map[protocol.Category]*portConn
	disposed bool
}

func New(cfg Config) *Client {
	return &Client{
		cfg:   cfg.withDefaults(),
		log:   log.With().Str("component", "client").Logger(),
		conns: make(map[protocol.Category]*portConn),
	}
}

// Call encodes req through the registry and performs one round trip. A zero
// timeout uses the configured request timeout.
func (c *Client) Call(ctx context.Context, api uint16, req any, timeout time.Duration) (json.RawMessage, error) {
	body, err := protocol.EncodeRequest(req)
	if err != nil {
		return nil, err
	}
	return c.CallRaw(ctx, api, body, timeout)
}

// CallRaw performs one round trip with a caller-supplied JSON body. The
// response body comes back verbatim, error-kind ret codes included.
func (c *Client) CallRaw(ctx context.Context, api uint16, body []byte, timeout time.Duration) (json.RawMessage, error) {
	if timeout <= 0 {
		timeout = c.cfg.RequestTimeout
	}
	pc, err := c.conn(ctx, protocol.CategoryOf(api))
	if err != nil {
		return nil, err
	}
	fr, err := pc.roundTrip(ctx, api, body, timeout)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(fr.Body), nil
}

// call is the typed round trip: decode into dst, then surface a non-zero
// ret_code as *protocol.StatusError.
func (c *Client) call(ctx context.Context, api uint16, req, dst any) error {
	raw, err := c.Call(ctx, api, req, 0)
	if err != nil {
		return err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, dst); err != nil {
			return fmt.Errorf("%w: api %d: %v", protocol.ErrDecode, api, err)
		}
	}
	if s, ok := dst.(interface{ Err() error }); ok {
		return s.Err()
	}
	return nil
}

// Close releases every connection. Pending callers fail with ErrDisposed
// and later calls fail fast.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return nil
	}
	c.disposed = true
	conns := make([]*portConn, 0, len(c.conns))
	for _, pc := range c.conns {
		conns = append(conns, pc)
	}
	c.mu.Unlock()

	for _, pc := range conns {
		pc.shutdown(ErrDisposed)
	}
	return nil
}

func (c *Client) conn(ctx context.Context, cat protocol.Category) (*portConn, error) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return nil, ErrDisposed
	}
	if pc, ok := c.conns[cat]; ok && !pc.isClosed() {
		c.mu.Unlock()
		return pc, nil
	}
	c.mu.Unlock()

	addr, err := c.addr(cat)
	if err != nil {
		return nil, err
	}
	dialer := net.Dialer{Timeout: c.cfg.ConnectTimeout}
	raw, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %v", ErrConnection, addr, err)
	}
	pc := newPortConn(raw, c.cfg)
	c.log.Debug().Str("category", cat.String()).Str("addr", addr).Msg("connected")

	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		pc.shutdown(ErrDisposed)
		return nil, ErrDisposed
	}
	if cur, ok := c.conns[cat]; ok && !cur.isClosed() {
		c.mu.Unlock()
		pc.shutdown(ErrConnection)
		return cur, nil
	}
	c.conns[cat] = pc
	c.mu.Unlock()
	return pc, nil
}

func (c *Client) addr(cat protocol.Category) (string, error) {
	if port, ok := c.cfg.Ports[cat]; ok && port > 0 {
		return net.JoinHostPort(c.cfg.Host, strconv.Itoa(port)), nil
	}
	port, ok := protocol.PortOf(cat)
	if !ok {
		return "", fmt.Errorf("%w: category %s has no port", protocol.ErrUnroutable, cat)
	}
	return net.JoinHostPort(c.cfg.Host, strconv.Itoa(port)), nil
}

type result struct {
	fr  frame.Frame
	err error
}

// portConn owns one TCP connection and its read pump.
type portConn struct {
	conn         net.Conn
	reader       *bufio.Reader
	limits       frame.Limits
	writeTimeout time.Duration

	wmu sync.Mutex

	mu       sync.Mutex
	lastFlow uint16
	pending  map[uint16]chan result
	closed   bool
	err      error
}

func newPortConn(conn net.Conn, cfg Config) *portConn {
	pc := &portConn{
		conn:         conn,
		reader:       bufio.NewReader(conn),
		limits:       cfg.Limits,
		writeTimeout: cfg.WriteTimeout,
		pending:      make(map[uint16]chan result),
	}
	go pc.readLoop()
	return pc
}

func (p *portConn) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// roundTrip writes one frame and waits for the response carrying the same
// flow number.
func (p *portConn) roundTrip(ctx context.Context, api uint16, body []byte, timeout time.Duration) (frame.Frame, error) {
	p.mu.Lock()
	if p.closed {
		err := p.err
		p.mu.Unlock()
		return frame.Frame{}, err
	}
	flow := (p.lastFlow + 1) % flowWindow
	if _, busy := p.pending[flow]; busy {
		p.mu.Unlock()
		return frame.Frame{}, fmt.Errorf("%w: flow %d still pending", ErrFlowWindow, flow)
	}
	p.lastFlow = flow
	ch := make(chan result, 1)
	p.pending[flow] = ch
	p.mu.Unlock()

	req := frame.Frame{Header: frame.Header{FlowNo: flow, APINo: api}, Body: body}
	p.wmu.Lock()
	_ = p.conn.SetWriteDeadline(time.Now().Add(p.writeTimeout))
	werr := frame.WriteFrame(p.conn, req, p.limits)
	p.wmu.Unlock()
	if werr != nil {
		p.shutdown(fmt.Errorf("%w: write: %v", ErrConnection, werr))
		res := <-ch
		return res.fr, res.err
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case res := <-ch:
		return res.fr, res.err
	case <-timer.C:
		p.forget(flow)
		return frame.Frame{}, fmt.Errorf("%w: api %d after %s", ErrTimeout, api, timeout)
	case <-ctx.Done():
		p.forget(flow)
		return frame.Frame{}, ctx.Err()
	}
}

// readLoop resolves pending callers by flow number until the connection
// dies. Replies without a pending slot are dropped.
func (p *portConn) readLoop() {
	for {
		fr, err := frame.ReadFrame(p.reader, p.limits)
		if err != nil {
			p.shutdown(fmt.Errorf("%w: read: %v", ErrConnection, err))
			return
		}
		p.mu.Lock()
		ch, ok := p.pending[fr.Header.FlowNo]
		if ok {
			delete(p.pending, fr.Header.FlowNo)
		}
		p.mu.Unlock()
		if !ok {
			continue
		}
		ch <- result{fr: fr}
	}
}

// forget drops a pending slot after its caller stopped waiting.
func (p *portConn) forget(flow uint16) {
	p.mu.Lock()
	delete(p.pending, flow)
	p.mu.Unlock()
}

// shutdown closes the connection once and releases every pending caller
// with err.
func (p *portConn) shutdown(err error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.err = err
	released := p.pending
	p.pending = make(map[uint16]chan result)
	p.mu.Unlock()

	for _, ch := range released {
		ch <- result{err: err}
	}
	_ = p.conn.Close()
}
