package dataset

import (
	"strings"
	"sync"
	"time"
)

// Store holds the weighing records a query engine reads from. Writes swap
// in a new snapshot, so a reader holding the result of All or Query never
// sees a partially applied import.
type Store struct {
	mu      sync.RWMutex
	records []Record
}

// NewStore creates a Store seeded with records (which may be nil).
func NewStore(records []Record) *Store {
	s := &Store{}
	s.Replace(records)
	return s
}

// Add appends a record.
func (s *Store) Add(r Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]Record, len(s.records), len(s.records)+1)
	copy(next, s.records)
	s.records = append(next, r)
}

// Replace discards every record and loads records in their given order.
// This is the only way an import reaches the store; there is no merge.
func (s *Store) Replace(records []Record) {
	next := make([]Record, len(records))
	copy(next, records)

	s.mu.Lock()
	s.records = next
	s.mu.Unlock()
}

// Clear removes all records.
func (s *Store) Clear() {
	s.mu.Lock()
	s.records = nil
	s.mu.Unlock()
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// All returns a copy of every record in insertion order.
func (s *Store) All() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Query returns the records matching q, in insertion order. The result is
// never nil.
func (s *Store) Query(q Query) []Record {
	s.mu.RLock()
	snapshot := s.records
	s.mu.RUnlock()

	out := make([]Record, 0, len(snapshot))
	for _, r := range snapshot {
		if q.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// InRange returns records of vegType (empty for all) with timestamps in
// [since, until].
func (s *Store) InRange(vegType string, since, until time.Time) []Record {
	return s.Query(Query{Type: vegType, Since: since, Until: until})
}

// OnWeekday returns records of vegType (empty for all) recorded on day.
func (s *Store) OnWeekday(vegType string, day time.Weekday) []Record {
	return s.Query(Query{Type: vegType, Weekday: &day})
}

// Types returns the distinct vegetable types in first-encountered order.
// Types that differ only in case are reported once, with the first spelling.
func (s *Store) Types() []TypeCount {
	s.mu.RLock()
	snapshot := s.records
	s.mu.RUnlock()

	index := make(map[string]int)
	var out []TypeCount
	for _, r := range snapshot {
		key := strings.ToLower(r.VegetableType)
		if i, ok := index[key]; ok {
			out[i].Count++
			continue
		}
		index[key] = len(out)
		out = append(out, TypeCount{Type: r.VegetableType, Count: 1})
	}
	return out
}

// Matches reports whether r satisfies every filter in q.
func (q Query) Matches(r Record) bool {
	if q.Type != "" && !strings.EqualFold(r.VegetableType, q.Type) {
		return false
	}
	if !q.Since.IsZero() && r.Timestamp.Before(q.Since) {
		return false
	}
	if !q.Until.IsZero() && r.Timestamp.After(q.Until) {
		return false
	}
	if q.Weekday != nil {
		day := r.Timestamp
		if q.Location != nil {
			day = day.In(q.Location)
		}
		if day.Weekday() != *q.Weekday {
			return false
		}
	}
	return true
}
