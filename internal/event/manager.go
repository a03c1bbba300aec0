package event

import (
	"sync"

	"github.com/bethropolis/rawedit/internal/logger"
)

// Handler receives an event. The return value reports whether it was consumed;
// dispatch continues either way.
type Handler func(e Event) bool

// Manager holds subscriptions and dispatches events synchronously.
type Manager struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{handlers: make(map[Type][]Handler)}
}

// Subscribe registers handler for eventType.
func (m *Manager) Subscribe(eventType Type, handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[eventType] = append(m.handlers[eventType], handler)
	logger.DebugTagf("event", "handler subscribed to %v", eventType)
}

// Dispatch calls every handler subscribed to eventType, in subscription order.
// Handlers may subscribe further handlers; those only see later events.
func (m *Manager) Dispatch(eventType Type, data interface{}) {
	m.mu.RLock()
	handlers := make([]Handler, len(m.handlers[eventType]))
	copy(handlers, m.handlers[eventType])
	m.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}
	e := Event{Type: eventType, Data: data}
	for _, handler := range handlers {
		handler(e)
	}
}

// HasSubscribers reports whether anything listens for eventType.
func (m *Manager) HasSubscribers(eventType Type) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.handlers[eventType]) > 0
}
