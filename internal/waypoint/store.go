package waypoint

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

var ErrEmptyID = errors.New("waypoint: empty id")

// Point is one named navigation target in map coordinates.
type Point struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Store holds the waypoint set behind one RWMutex.
type Store struct {
	mu     sync.RWMutex
	points map[string]Point
}

func NewStore(seed []Point) *Store {
	s := &Store{points: make(map[string]Point, len(seed))}
	for _, p := range seed {
		if strings.TrimSpace(p.ID) == "" {
			continue
		}
		s.points[p.ID] = p
	}
	return s
}

// Resolve reports the coordinates of a named target. It is the only entry
// point navigation code uses.
func (s *Store) Resolve(id string) (float64, float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.points[id]
	return p.X, p.Y, ok
}

func (s *Store) Get(id string) (Point, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.points[id]
	return p, ok
}

// List returns every point ordered by id.
func (s *Store) List() []Point {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Point, 0, len(s.points))
	for _, p := range s.points {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Upsert inserts or replaces every given point. A blank id anywhere rejects
// the whole batch.
func (s *Store) Upsert(points []Point) error {
	for _, p := range points {
		if strings.TrimSpace(p.ID) == "" {
			return ErrEmptyID
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range points {
		s.points[p.ID] = p
	}
	return nil
}

func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.points[id]; !ok {
		return false
	}
	delete(s.points, id)
	return true
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.points)
}
