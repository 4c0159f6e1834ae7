package theme

import (
	"sync"

	"github.com/suhome/storefront/internal/storage"
)

const (
	Light = "light"
	Dark  = "dark"
)

// Manager persists the display theme preference across sessions.
type Manager struct {
	mu      sync.Mutex
	store   *storage.Store
	current string
}

func NewManager(store *storage.Store) *Manager {
	m := &Manager{store: store}
	m.current = storage.GetJSON(store, storage.KeyTheme, Light)
	if m.current != Dark {
		m.current = Light
	}
	return m
}

func (m *Manager) Current() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

func (m *Manager) IsDark() bool {
	return m.Current() == Dark
}

// Toggle flips the theme and persists the choice.
func (m *Manager) Toggle() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == Dark {
		m.current = Light
	} else {
		m.current = Dark
	}
	m.store.SetJSON(storage.KeyTheme, m.current)
	return m.current
}

// Set forces a specific theme; unknown values fall back to light.
func (m *Manager) Set(value string) {
	if value != Dark {
		value = Light
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = value
	m.store.SetJSON(storage.KeyTheme, value)
}
