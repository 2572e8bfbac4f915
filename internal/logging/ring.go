package logging

import (
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Record is a captured log entry
type Record struct {
	Time    time.Time
	Level   logrus.Level
	Target  string
	Message string
}

// Ring is a bounded buffer of log records, usable as a logrus hook
type Ring struct {
	mu      sync.RWMutex
	records []Record
	next    int
	full    bool
}

// NewRing creates a ring holding at most size records
func NewRing(size int) *Ring {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &Ring{records: make([]Record, size)}
}

// Levels implements logrus.Hook
func (r *Ring) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire implements logrus.Hook
func (r *Ring) Fire(entry *logrus.Entry) error {
	target := TargetDefault
	if v, ok := entry.Data[TargetField].(string); ok && v != "" {
		target = v
	}
	r.Add(Record{
		Time:    entry.Time,
		Level:   entry.Level,
		Target:  target,
		Message: entry.Message,
	})
	return nil
}

// Add appends a record, overwriting the oldest when full
func (r *Ring) Add(rec Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[r.next] = rec
	r.next = (r.next + 1) % len(r.records)
	if r.next == 0 {
		r.full = true
	}
}

// Len returns the number of stored records
func (r *Ring) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.full {
		return len(r.records)
	}
	return r.next
}

// Snapshot returns the stored records, oldest first
func (r *Ring) Snapshot() []Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.full {
		out := make([]Record, r.next)
		copy(out, r.records[:r.next])
		return out
	}

	out := make([]Record, 0, len(r.records))
	out = append(out, r.records[r.next:]...)
	out = append(out, r.records[:r.next]...)
	return out
}

// Targets returns the distinct targets seen, sorted
func (r *Ring) Targets() []string {
	seen := make(map[string]bool)
	for _, rec := range r.Snapshot() {
		seen[rec.Target] = true
	}
	targets := make([]string, 0, len(seen))
	for t := range seen {
		targets = append(targets, t)
	}
	sort.Strings(targets)
	return targets
}
