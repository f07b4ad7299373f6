package mock

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/rbkctl/internal/observability"
	"github.com/danmuck/rbkctl/internal/protocol"
	"github.com/danmuck/rbkctl/internal/protocol/frame"
	"github.com/danmuck/rbkctl/internal/sim"
)

// Mock endpoint configuration.
type Config struct {
	Host         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Limits       frame.Limits
}

// Mock endpoint defaults: all interfaces, generous idle window.
func DefaultConfig() Config {
	return Config{
		Host:         "",
		ReadTimeout:  5 * time.Minute,
		WriteTimeout: 10 * time.Second,
		Limits:       frame.DefaultLimits(),
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = def.ReadTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = def.WriteTimeout
	}
	if c.Limits.MaxBodyBytes == 0 {
		c.Limits = frame.DefaultLimits()
	}
	return c
}

// Categories served, one vendor port each.
var servedCategories = []protocol.Category{
	protocol.CategoryState,
	protocol.CategoryControl,
	protocol.CategoryNav,
	protocol.CategoryConfig,
	protocol.CategoryKernel,
	protocol.CategoryPeripheral,
}

// Service runs the listener set over one shared robot.
type Service struct {
	cfg   Config
	robot *sim.Robot
	label string
	log   zerolog.Logger

	connsMu sync.Mutex
	conns   map[net.Conn]struct{}

	clients atomic.Int64
}

func NewService(cfg Config, robot *sim.Robot) *Service {
	return &Service{
		cfg:   cfg.withDefaults(),
		robot: robot,
		label: robot.Info().ID,
		log:   log.With().Str("component", "mock").Logger(),
		conns: make(map[net.Conn]struct{}),
	}
}

// Bind opens one listener per category port and starts its accept loop.
// Bind failures are collected per category and joined into the returned
// error; categories that bound keep serving regardless.
func (s *Service) Bind(ctx context.Context) error {
	var errs []error
	for _, cat := range servedCategories {
		port, _ := protocol.PortOf(cat)
		addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(port))
		ln, err := net.Listen("tcp", addr)
		if err != nil {
			s.log.Error().Str("category", cat.String()).Str("addr", addr).Err(err).Msg("bind failed")
			errs = append(errs, fmt.Errorf("mock: bind %s %s: %w", cat, addr, err))
			continue
		}
		s.log.Info().Str("category", cat.String()).Str("addr", ln.Addr().String()).Msg("listening")
		go func(cat protocol.Category, ln net.Listener) {
			if err := s.Serve(ctx, cat, ln); err != nil {
				s.log.Error().Str("category", cat.String()).Err(err).Msg("accept loop ended")
			}
		}(cat, ln)
	}
	return errors.Join(errs...)
}

// Serve runs the accept loop for one listener until ctx is done. The
// listener is closed on return.
func (s *Service) Serve(ctx context.Context, cat protocol.Category, ln net.Listener) error {
	defer ln.Close()
	go func() {
		<-ctx.Done()
		s.closeAllConns()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		s.trackConn(conn)
		go s.handleConn(conn, cat)
	}
}

// Session loop: read frame, dispatch, answer with the caller's flow number.
func (s *Service) handleConn(conn net.Conn, cat protocol.Category) {
	defer conn.Close()
	defer s.untrackConn(conn)
	remote := conn.RemoteAddr().String()
	observability.SessionOpened(s.label, cat.String())
	active := s.clients.Add(1)
	s.log.Debug().Str("category", cat.String()).Str("remote", remote).Int64("active_clients", active).Msg("client connected")
	defer func() {
		observability.SessionClosed(s.label, cat.String())
		remaining := s.clients.Add(-1)
		s.log.Debug().Str("category", cat.String()).Str("remote", remote).Int64("active_clients", remaining).Msg("client disconnected")
	}()

	reader := bufio.NewReader(conn)
	for {
		_ = conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
		fr, err := frame.ReadFrame(reader, s.cfg.Limits)
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				s.log.Debug().Str("remote", remote).Err(err).Msg("session torn down")
			}
			return
		}

		start := time.Now()
		payload := s.dispatch(fr.Header.APINo, fr.Body)
		body, merr := json.Marshal(payload)
		if merr != nil {
			body = protocol.ErrorBody(protocol.RetInternal, "encode response")
		}
		code := retCodeOf(payload)
		observability.RecordAPIRequest(
			s.label,
			protocol.CategoryOf(fr.Header.APINo).String(),
			fr.Header.APINo,
			uint32(code),
			time.Since(start),
		)
		if code != protocol.RetOK {
			s.log.Warn().
				Uint16("api", fr.Header.APINo).
				Str("name", protocol.Name(fr.Header.APINo)).
				Uint32("ret_code", uint32(code)).
				Str("remote", remote).
				Msg("request rejected")
		}

		out := frame.Frame{
			Header: frame.Header{FlowNo: fr.Header.FlowNo, APINo: fr.Header.APINo},
			Body:   body,
		}
		_ = conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
		if err := frame.WriteFrame(conn, out, s.cfg.Limits); err != nil {
			s.log.Debug().Str("remote", remote).Err(err).Msg("response write failed")
			return
		}
	}
}

func retCodeOf(payload any) protocol.RetCode {
	type coded interface {
		StatusCode() protocol.RetCode
	}
	if c, ok := payload.(coded); ok {
		return c.StatusCode()
	}
	return protocol.RetOK
}

// ClientCount reports the number of open sessions across all listeners.
func (s *Service) ClientCount() int64 {
	return s.clients.Load()
}

func (s *Service) trackConn(conn net.Conn) {
	s.connsMu.Lock()
	defer s.connsMu.Unlock()
	s.conns[conn] = struct{}{}
}

func (s *Service) untrackConn(conn net.Conn) {
	s.connsMu.Lock()
	defer s.connsMu.Unlock()
	delete(s.conns, conn)
}

func (s *Service) closeAllConns() {
	s.connsMu.Lock()
	defer s.connsMu.Unlock()
	for conn := range s.conns {
		_ = conn.Close()
		delete(s.conns, conn)
	}
}
