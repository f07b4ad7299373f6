package waypoint

import (
	"errors"
	"testing"

	"github.com/danmuck/rbkctl/internal/testutil/testlog"
)

func TestStoreSeedSkipsBlankIDs(t *testing.T) {
	testlog.Start(t)

	s := NewStore([]Point{
		{ID: "station_a", X: 10, Y: 5},
		{ID: "  ", X: 1, Y: 1},
		{ID: "", X: 2, Y: 2},
	})
	if s.Len() != 1 {
		t.Fatalf("expected only named points seeded, got %d", s.Len())
	}
	x, y, ok := s.Resolve("station_a")
	if !ok || x != 10 || y != 5 {
		t.Fatalf("resolve station_a: (%v, %v, %v)", x, y, ok)
	}
	if _, _, ok := s.Resolve("station_b"); ok {
		t.Fatalf("unknown id should not resolve")
	}
}

func TestStoreUpsertRejectsWholeBatchOnBlankID(t *testing.T) {
	testlog.Start(t)

	s := NewStore(nil)
	err := s.Upsert([]Point{
		{ID: "dock_1", X: 1, Y: 2},
		{ID: "", X: 3, Y: 4},
	})
	if !errors.Is(err, ErrEmptyID) {
		t.Fatalf("expected ErrEmptyID, got %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("partial batch applied: %d points", s.Len())
	}
}

func TestStoreListSortedAndDelete(t *testing.T) {
	testlog.Start(t)

	s := NewStore(nil)
	if err := s.Upsert([]Point{
		{ID: "dock_2", X: 2, Y: 0},
		{ID: "dock_1", X: 1, Y: 0},
		{ID: "station_a", X: 10, Y: 5},
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	list := s.List()
	if len(list) != 3 || list[0].ID != "dock_1" || list[1].ID != "dock_2" || list[2].ID != "station_a" {
		t.Fatalf("list not sorted by id: %+v", list)
	}

	if !s.Delete("dock_1") {
		t.Fatalf("delete existing point failed")
	}
	if s.Delete("dock_1") {
		t.Fatalf("second delete should report missing")
	}
	if s.Len() != 2 {
		t.Fatalf("unexpected size after delete: %d", s.Len())
	}
}

func TestStoreUpsertReplacesCoordinates(t *testing.T) {
	testlog.Start(t)

	s := NewStore([]Point{{ID: "station_a", X: 1, Y: 1}})
	if err := s.Upsert([]Point{{ID: "station_a", X: 10, Y: 5}}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	x, y, ok := s.Resolve("station_a")
	if !ok || x != 10 || y != 5 {
		t.Fatalf("expected replaced coordinates, got (%v, %v, %v)", x, y, ok)
	}
}
