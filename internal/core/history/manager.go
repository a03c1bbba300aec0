// Package history keeps the capped stack of document snapshots used by undo.
package history

import (
	"errors"
	"sync"

	"github.com/bethropolis/rawedit/internal/logger"
	"github.com/bethropolis/rawedit/internal/types"
)

const DefaultMaxHistory = 100

// ErrNothingToUndo is returned when the stack is empty.
var ErrNothingToUndo = errors.New("history: nothing to undo")

// Snapshot is the serialized document plus the selection at that time.
type Snapshot struct {
	Content   string
	Selection types.Region
}

// Manager is a capped LIFO of snapshots. When full, the oldest is evicted.
type Manager struct {
	snapshots  []Snapshot
	maxHistory int
	mutex      sync.Mutex
}

// NewManager creates a history holding at most maxHistory snapshots.
func NewManager(maxHistory int) *Manager {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Manager{
		snapshots:  make([]Snapshot, 0, maxHistory),
		maxHistory: maxHistory,
	}
}

// Push records s. A snapshot equal to the top of the stack is not pushed again.
func (m *Manager) Push(s Snapshot) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if n := len(m.snapshots); n > 0 && m.snapshots[n-1] == s {
		logger.DebugTagf("history", "skipping duplicate snapshot")
		return
	}
	m.snapshots = append(m.snapshots, s)
	if len(m.snapshots) > m.maxHistory {
		copy(m.snapshots, m.snapshots[1:])
		m.snapshots = m.snapshots[:m.maxHistory]
	}
	logger.DebugTagf("history", "snapshot pushed, %d stored", len(m.snapshots))
}

// Pop removes and returns the most recent snapshot.
func (m *Manager) Pop() (Snapshot, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	n := len(m.snapshots)
	if n == 0 {
		return Snapshot{}, ErrNothingToUndo
	}
	s := m.snapshots[n-1]
	m.snapshots = m.snapshots[:n-1]
	return s, nil
}

// Peek returns the most recent snapshot without removing it.
func (m *Manager) Peek() (Snapshot, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if len(m.snapshots) == 0 {
		return Snapshot{}, false
	}
	return m.snapshots[len(m.snapshots)-1], true
}

// Len returns the number of stored snapshots.
func (m *Manager) Len() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.snapshots)
}

// CanUndo reports whether a snapshot is available.
func (m *Manager) CanUndo() bool {
	return m.Len() > 0
}

// Clear drops all snapshots.
func (m *Manager) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.snapshots = m.snapshots[:0]
}
