package state

import (
	"fmt"
	"sync"
	"time"

	"pillterm/internal/api"
)

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Medicines           []api.Medicine
	Schedules           []api.Schedule
	HasData             bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive poll failures
}

// IsOffline returns true when the backend has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// ActiveMedicines returns the medicines currently being taken.
func (s Snapshot) ActiveMedicines() []api.Medicine {
	var active []api.Medicine
	for _, med := range s.Medicines {
		if med.IsActive {
			active = append(active, med)
		}
	}
	return active
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored snapshot. When err is non-nil the previous data
// is kept but the error is recorded for visibility.
func (s *Store) Update(medicines []api.Medicine, schedules []api.Schedule, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Medicines = cloneMedicines(medicines)
	s.snapshot.Schedules = cloneSchedules(schedules)
	s.snapshot.HasData = true
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Medicines = cloneMedicines(s.snapshot.Medicines)
	snap.Schedules = cloneSchedules(s.snapshot.Schedules)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneMedicines(items []api.Medicine) []api.Medicine {
	if len(items) == 0 {
		return nil
	}
	dup := make([]api.Medicine, len(items))
	copy(dup, items)
	return dup
}

func cloneSchedules(items []api.Schedule) []api.Schedule {
	if len(items) == 0 {
		return nil
	}
	dup := make([]api.Schedule, len(items))
	copy(dup, items)
	return dup
}
