package waypoint

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danmuck/rbkctl/internal/testutil/testlog"
)

func newTestServer() *Server {
	s := NewServer("MOCK_ROBOT_001", ":0", nil, NewStore([]Point{
		{ID: "station_a", X: 10, Y: 5},
	}))
	s.RegisterRoutes()
	return s
}

func doJSON(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	s.HTTPRouter().ServeHTTP(rr, req)
	return rr
}

func TestWaypointCRUDOverHTTP(t *testing.T) {
	testlog.Start(t)
	s := newTestServer()

	rr := doJSON(t, s, http.MethodGet, "/api/v1/waypoints", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("list status: %d body=%s", rr.Code, rr.Body.String())
	}
	var list []Point
	if err := json.Unmarshal(rr.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || list[0].ID != "station_a" {
		t.Fatalf("unexpected seed list: %+v", list)
	}

	rr = doJSON(t, s, http.MethodPost, "/api/v1/waypoints", `[{"id":"dock_1","x":1,"y":2},{"id":"dock_2","x":3,"y":4}]`)
	if rr.Code != http.StatusOK {
		t.Fatalf("upsert status: %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, s, http.MethodGet, "/api/v1/waypoints/dock_1", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("get status: %d", rr.Code)
	}
	var p Point
	if err := json.Unmarshal(rr.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode point: %v", err)
	}
	if p.X != 1 || p.Y != 2 {
		t.Fatalf("unexpected point: %+v", p)
	}

	rr = doJSON(t, s, http.MethodDelete, "/api/v1/waypoints/dock_1", "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete status: %d", rr.Code)
	}
	rr = doJSON(t, s, http.MethodGet, "/api/v1/waypoints/dock_1", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("get after delete status: %d", rr.Code)
	}
	rr = doJSON(t, s, http.MethodDelete, "/api/v1/waypoints/dock_1", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("repeat delete status: %d", rr.Code)
	}
}

func TestWaypointUpsertValidation(t *testing.T) {
	testlog.Start(t)
	s := newTestServer()

	rr := doJSON(t, s, http.MethodPost, "/api/v1/waypoints", `{"id":"dock_1"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("non-list body should 400, got %d", rr.Code)
	}

	rr = doJSON(t, s, http.MethodPost, "/api/v1/waypoints", `[{"id":"","x":1,"y":2}]`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("blank id should 400, got %d", rr.Code)
	}
	if s.Store().Len() != 1 {
		t.Fatalf("rejected batch should not change the store")
	}
}

func TestHealthReadyAndMetricsRoutes(t *testing.T) {
	testlog.Start(t)
	s := newTestServer()

	for _, path := range []string{"/health", "/ready", "/metrics"} {
		rr := doJSON(t, s, http.MethodGet, path, "")
		if rr.Code != http.StatusOK {
			t.Fatalf("%s status: %d", path, rr.Code)
		}
	}

	rr := doJSON(t, s, http.MethodGet, "/ready", "")
	var ready struct {
		Ready     bool `json:"ready"`
		Waypoints int  `json:"waypoints"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &ready); err != nil {
		t.Fatalf("decode ready: %v", err)
	}
	if !ready.Ready || ready.Waypoints != 1 {
		t.Fatalf("unexpected ready payload: %+v", ready)
	}
}
