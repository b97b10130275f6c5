// Package storage keeps the append-only activity log of a restore session.
package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"
)

// Kind classifies an activity log entry
type Kind string

const (
	KindSession   Kind = "session"
	KindRegion    Kind = "region"
	KindSelection Kind = "selection"
	KindRejection Kind = "rejection"
	KindGateway   Kind = "gateway_error"
	KindRestore   Kind = "restore"
	KindDefect    Kind = "defect"
)

// Entry is one line of the activity log
type Entry struct {
	Time    time.Time `json:"time"`
	Kind    Kind      `json:"kind"`
	Region  string    `json:"region,omitempty"`
	Message string    `json:"message"`
}

// ActivityLog is an in-memory, append-only record of what happened in a session.
// Entries are never changed or removed.
type ActivityLog struct {
	entries []Entry
	now     func() time.Time
	mutex   sync.RWMutex
}

// NewActivityLog creates an empty activity log
func NewActivityLog() *ActivityLog {
	return &ActivityLog{now: time.Now}
}

// Append records a new entry stamped with the current time
func (l *ActivityLog) Append(kind Kind, region, message string) Entry {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	entry := Entry{
		Time:    l.now(),
		Kind:    kind,
		Region:  region,
		Message: message,
	}
	l.entries = append(l.entries, entry)
	return entry
}

// Entries returns a copy of all entries, oldest first
func (l *ActivityLog) Entries() []Entry {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return append([]Entry{}, l.entries...)
}

// Len returns the number of entries
func (l *ActivityLog) Len() int {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return len(l.entries)
}

// WriteJSON writes the entries as an indented JSON array
func (l *ActivityLog) WriteJSON(w io.Writer) error {
	jsonData, err := json.MarshalIndent(l.Entries(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal activity log: %w", err)
	}

	if _, err := w.Write(jsonData); err != nil {
		return fmt.Errorf("failed to write activity log: %w", err)
	}

	return nil
}
