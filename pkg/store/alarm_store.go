package store

import (
	"errors"
	"sync"

	"weekalarm/pkg/models"
)

// ErrInvalidIndex is returned when an index-addressed operation is out of range.
// Index validity is the caller's responsibility.
var ErrInvalidIndex = errors.New("alarm index out of range")

// AlarmStore holds the ordered alarm collection.
// Order is significant: the evaluator scans alarms in stored order and the
// first match wins on any given tick.
type AlarmStore struct {
	mu     sync.RWMutex
	alarms []*models.Alarm
}

func NewAlarmStore() *AlarmStore {
	return &AlarmStore{}
}

// Add appends an alarm to the end of the collection
func (s *AlarmStore) Add(a *models.Alarm) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.alarms = append(s.alarms, a)
}

// ReplaceAt swaps the alarm at index i for the given one
func (s *AlarmStore) ReplaceAt(i int, a *models.Alarm) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.alarms) {
		return ErrInvalidIndex
	}
	s.alarms[i] = a
	return nil
}

// RemoveAt deletes the alarm at index i, preserving the order of the rest
func (s *AlarmStore) RemoveAt(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.alarms) {
		return ErrInvalidIndex
	}
	s.alarms = append(s.alarms[:i], s.alarms[i+1:]...)
	return nil
}

// At returns the alarm at index i
func (s *AlarmStore) At(i int) (*models.Alarm, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i < 0 || i >= len(s.alarms) {
		return nil, ErrInvalidIndex
	}
	return s.alarms[i], nil
}

// Alarms returns a snapshot of the collection in stored order
func (s *AlarmStore) Alarms() []*models.Alarm {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Alarm, len(s.alarms))
	copy(out, s.alarms)
	return out
}

// Len returns the number of alarms
func (s *AlarmStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.alarms)
}
