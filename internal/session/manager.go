package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/akozadaev/findmydorm/internal/registry"
	"github.com/akozadaev/findmydorm/internal/source"
)

// Manager хранит сессии по идентификатору.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Controller
	registry *registry.Registry
	fetcher  source.Fetcher
	logger   *zap.Logger
}

// NewManager создает пустой реестр сессий.
func NewManager(reg *registry.Registry, fetcher source.Fetcher, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		sessions: make(map[string]*Controller),
		registry: reg,
		fetcher:  fetcher,
		logger:   logger,
	}
}

// Create открывает новую сессию и возвращает ее идентификатор.
func (m *Manager) Create() (string, *Controller) {
	id := uuid.NewString()
	c := NewController(m.registry, m.fetcher, m.logger.With(zap.String("session_id", id)))

	m.mu.Lock()
	m.sessions[id] = c
	m.mu.Unlock()

	return id, c
}

// Get возвращает контроллер сессии или ErrNotFound.
func (m *Manager) Get(id string) (*Controller, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return c, nil
}

// Delete закрывает сессию.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	c, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	c.Close()
	return nil
}

// Len возвращает количество открытых сессий.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep закрывает сессии, к которым не обращались дольше maxIdle.
func (m *Manager) Sweep(now time.Time, maxIdle time.Duration) int {
	var expired []*Controller

	m.mu.Lock()
	for id, c := range m.sessions {
		if now.Sub(c.IdleSince()) > maxIdle {
			expired = append(expired, c)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, c := range expired {
		c.Close()
	}
	return len(expired)
}

// Run периодически удаляет простаивающие сессии до отмены ctx.
func (m *Manager) Run(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := m.Sweep(now, maxIdle); n > 0 {
				m.logger.Info("expired idle sessions", zap.Int("count", n))
			}
		}
	}
}

// Close закрывает все сессии.
func (m *Manager) Close() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Controller)
	m.mu.Unlock()

	for _, c := range sessions {
		c.Close()
	}
}
