package client

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/danmuck/rbkctl/internal/mock"
	"github.com/danmuck/rbkctl/internal/protocol"
	"github.com/danmuck/rbkctl/internal/protocol/frame"
	"github.com/danmuck/rbkctl/internal/sim"
	"github.com/danmuck/rbkctl/internal/testutil/testlog"
)

type mapResolver map[string][2]float64

func (m mapResolver) Resolve(id string) (float64, float64, bool) {
	p, ok := m[id]
	return p[0], p[1], ok
}

func tcpPort(t *testing.T, ln net.Listener) int {
	t.Helper()
	addr, ok := ln.Addr().(*net.TCPAddr)
	if !ok {
		t.Fatalf("not a tcp listener: %v", ln.Addr())
	}
	return addr.Port
}

// startScript serves each accepted connection with script on a loopback
// listener and returns its port.
func startScript(t *testing.T, script func(conn net.Conn, r *bufio.Reader)) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { _ = ln.Close() })
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go script(conn, bufio.NewReader(conn))
		}
	}()
	return tcpPort(t, ln)
}

func TestTypedCallsAgainstMockServer(t *testing.T) {
	testlog.Start(t)

	robot := sim.NewRobot(sim.Config{}, mapResolver{"station_a": {10, 5}})
	svc := mock.NewService(mock.Config{ReadTimeout: 5 * time.Second, WriteTimeout: 5 * time.Second}, robot)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ports := make(map[protocol.Category]int)
	for _, cat := range []protocol.Category{protocol.CategoryState, protocol.CategoryNav} {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			t.Fatalf("listen %s: %v", cat, err)
		}
		ports[cat] = tcpPort(t, ln)
		go func(cat protocol.Category, ln net.Listener) {
			_ = svc.Serve(ctx, cat, ln)
		}(cat, ln)
	}

	cli := New(Config{Host: "127.0.0.1", Ports: ports, RequestTimeout: 5 * time.Second})
	defer cli.Close()

	info, err := cli.RobotInfo(ctx)
	if err != nil {
		t.Fatalf("robot info: %v", err)
	}
	if info.ID != "MOCK_ROBOT_001" || info.Model != "RBK-MOCK" {
		t.Fatalf("unexpected identity: %+v", info)
	}

	if err := cli.MoveToTarget(ctx, protocol.MoveTarget{ID: "station_a"}); err != nil {
		t.Fatalf("move: %v", err)
	}
	ns, err := cli.NavStatus(ctx)
	if err != nil {
		t.Fatalf("nav status: %v", err)
	}
	if ns.TaskStatus != protocol.TaskStatusRunning || ns.TargetID != "station_a" {
		t.Fatalf("unexpected nav status: %+v", ns)
	}

	err = cli.MoveToTarget(ctx, protocol.MoveTarget{ID: "nowhere"})
	var st *protocol.StatusError
	if !errors.As(err, &st) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if st.Code != protocol.RetParamIllegal {
		t.Fatalf("unknown waypoint should report %d, got %+v", protocol.RetParamIllegal, st)
	}
}

func TestConcurrentCallsResolvedByFlowNumber(t *testing.T) {
	testlog.Start(t)

	const callers = 4
	release := make(chan struct{})
	port := startScript(t, func(conn net.Conn, r *bufio.Reader) {
		defer conn.Close()
		frames := make([]frame.Frame, 0, callers)
		for len(frames) < callers {
			fr, err := frame.ReadFrame(r, frame.DefaultLimits())
			if err != nil {
				return
			}
			frames = append(frames, fr)
		}
		<-release
		for i := len(frames) - 1; i >= 0; i-- {
			fr := frames[i]
			resp := frame.Frame{
				Header: frame.Header{FlowNo: fr.Header.FlowNo, APINo: fr.Header.APINo},
				Body:   fr.Body,
			}
			if err := frame.WriteFrame(conn, resp, frame.DefaultLimits()); err != nil {
				return
			}
		}
	})

	cli := New(Config{
		Host:           "127.0.0.1",
		Ports:          map[protocol.Category]int{protocol.CategoryState: port},
		RequestTimeout: 5 * time.Second,
	})
	defer cli.Close()

	var wg sync.WaitGroup
	got := make([]string, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body := []byte(fmt.Sprintf(`{"caller":%d}`, i))
			raw, err := cli.CallRaw(context.Background(), protocol.APIRobotInfo, body, 0)
			got[i] = string(raw)
			errs[i] = err
		}(i)
	}
	time.Sleep(200 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d: %v", i, errs[i])
		}
		want := fmt.Sprintf(`{"caller":%d}`, i)
		if got[i] != want {
			t.Fatalf("caller %d got someone else's reply: %q", i, got[i])
		}
	}
}

func TestTimeoutReleasesSlotAndDropsLateReply(t *testing.T) {
	testlog.Start(t)

	type held struct {
		conn net.Conn
		fr   frame.Frame
	}
	first := make(chan held, 1)
	var (
		mu   sync.Mutex
		took bool
	)
	port := startScript(t, func(conn net.Conn, r *bufio.Reader) {
		for {
			fr, err := frame.ReadFrame(r, frame.DefaultLimits())
			if err != nil {
				conn.Close()
				return
			}
			mu.Lock()
			hold := !took
			took = true
			mu.Unlock()
			if hold {
				// only the very first request is held for a late reply
				first <- held{conn: conn, fr: fr}
				continue
			}
			resp := frame.Frame{
				Header: frame.Header{FlowNo: fr.Header.FlowNo, APINo: fr.Header.APINo},
				Body:   []byte(`{"ret_code":0,"err_msg":"","prompt":true}`),
			}
			if err := frame.WriteFrame(conn, resp, frame.DefaultLimits()); err != nil {
				conn.Close()
				return
			}
		}
	})

	cli := New(Config{
		Host:  "127.0.0.1",
		Ports: map[protocol.Category]int{protocol.CategoryState: port},
	})
	defer cli.Close()

	const timeout = 150 * time.Millisecond
	start := time.Now()
	_, err := cli.CallRaw(context.Background(), protocol.APIRobotInfo, nil, timeout)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if elapsed := time.Since(start); elapsed < timeout {
		t.Fatalf("timed out early: %s < %s", elapsed, timeout)
	}

	// Late reply lands on the released slot and must be discarded, not
	// delivered to the next caller.
	h := <-first
	late := frame.Frame{
		Header: frame.Header{FlowNo: h.fr.Header.FlowNo, APINo: h.fr.Header.APINo},
		Body:   []byte(`{"ret_code":0,"err_msg":"","late":true}`),
	}
	if err := frame.WriteFrame(h.conn, late, frame.DefaultLimits()); err != nil {
		t.Fatalf("write late reply: %v", err)
	}

	raw, err := cli.CallRaw(context.Background(), protocol.APIRobotInfo, nil, 2*time.Second)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	var resp struct {
		Prompt bool `json:"prompt"`
		Late   bool `json:"late"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Late || !resp.Prompt {
		t.Fatalf("late reply resurrected a finished call: %s", raw)
	}
}

func TestCloseReleasesPendingAndFailsFast(t *testing.T) {
	testlog.Start(t)

	port := startScript(t, func(conn net.Conn, r *bufio.Reader) {
		// swallow everything, never answer
		for {
			if _, err := frame.ReadFrame(r, frame.DefaultLimits()); err != nil {
				conn.Close()
				return
			}
		}
	})

	cli := New(Config{
		Host:  "127.0.0.1",
		Ports: map[protocol.Category]int{protocol.CategoryState: port},
	})

	pendingErr := make(chan error, 1)
	go func() {
		_, err := cli.CallRaw(context.Background(), protocol.APIRobotInfo, nil, 10*time.Second)
		pendingErr <- err
	}()
	time.Sleep(100 * time.Millisecond)

	if err := cli.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	select {
	case err := <-pendingErr:
		if !errors.Is(err, ErrDisposed) {
			t.Fatalf("pending caller should see ErrDisposed, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("pending caller not released by Close")
	}

	if _, err := cli.CallRaw(context.Background(), protocol.APIRobotInfo, nil, time.Second); !errors.Is(err, ErrDisposed) {
		t.Fatalf("calls after Close should fail fast, got %v", err)
	}
}

func TestConnectionLossReleasesAllPendingAndRedials(t *testing.T) {
	testlog.Start(t)

	var mu sync.Mutex
	dropFirst := true
	port := startScript(t, func(conn net.Conn, r *bufio.Reader) {
		mu.Lock()
		drop := dropFirst
		dropFirst = false
		mu.Unlock()
		if drop {
			// take both requests, then sever the connection
			for i := 0; i < 2; i++ {
				if _, err := frame.ReadFrame(r, frame.DefaultLimits()); err != nil {
					break
				}
			}
			conn.Close()
			return
		}
		for {
			fr, err := frame.ReadFrame(r, frame.DefaultLimits())
			if err != nil {
				conn.Close()
				return
			}
			resp := frame.Frame{
				Header: frame.Header{FlowNo: fr.Header.FlowNo, APINo: fr.Header.APINo},
				Body:   []byte(`{"ret_code":0,"err_msg":""}`),
			}
			if err := frame.WriteFrame(conn, resp, frame.DefaultLimits()); err != nil {
				conn.Close()
				return
			}
		}
	})

	cli := New(Config{
		Host:  "127.0.0.1",
		Ports: map[protocol.Category]int{protocol.CategoryState: port},
	})
	defer cli.Close()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = cli.CallRaw(context.Background(), protocol.APIRobotInfo, nil, 5*time.Second)
		}(i)
		// first caller establishes the connection before the second joins,
		// so both pend on the one that gets severed
		time.Sleep(150 * time.Millisecond)
	}
	wg.Wait()
	for i, err := range errs {
		if !errors.Is(err, ErrConnection) {
			t.Fatalf("caller %d: expected ErrConnection, got %v", i, err)
		}
	}

	raw, err := cli.CallRaw(context.Background(), protocol.APIRobotInfo, nil, 5*time.Second)
	if err != nil {
		t.Fatalf("call after redial: %v", err)
	}
	var st protocol.Status
	if err := json.Unmarshal(raw, &st); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !st.OK() {
		t.Fatalf("redialed call failed: %+v", st)
	}
}

func TestFlowWrapOntoPendingSlotIsRefused(t *testing.T) {
	testlog.Start(t)

	server, clientEnd := net.Pipe()
	defer server.Close()
	pc := newPortConn(clientEnd, DefaultConfig())
	defer pc.shutdown(ErrDisposed)

	// Next allocation would be flow 1; occupy it as if a caller were
	// still waiting after a full wrap of the window.
	pc.mu.Lock()
	pc.lastFlow = 0
	pc.pending[1] = make(chan result, 1)
	pc.mu.Unlock()

	_, err := pc.roundTrip(context.Background(), protocol.APIRobotInfo, nil, time.Second)
	if !errors.Is(err, ErrFlowWindow) {
		t.Fatalf("expected ErrFlowWindow, got %v", err)
	}
}

func TestCustomCategoryIsUnroutable(t *testing.T) {
	testlog.Start(t)

	cli := New(DefaultConfig())
	defer cli.Close()

	_, err := cli.CallRaw(context.Background(), 9100, nil, time.Second)
	if !errors.Is(err, protocol.ErrUnroutable) {
		t.Fatalf("expected ErrUnroutable for push-range api, got %v", err)
	}
}
