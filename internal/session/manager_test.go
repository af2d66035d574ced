package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akozadaev/findmydorm/internal/registry"
)

func TestManagerLifecycle(t *testing.T) {
	m := NewManager(registry.Default(), &staticFetcher{}, nil)
	defer m.Close()

	id, c := m.Create()
	require.NotEmpty(t, id)

	got, err := m.Get(id)
	require.NoError(t, err)
	assert.Same(t, c, got)
	assert.Equal(t, 1, m.Len())

	_, err = m.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Delete(id))
	assert.ErrorIs(t, m.Delete(id), ErrNotFound)
	assert.Equal(t, 0, m.Len())
}

func TestManagerSessionsAreIndependent(t *testing.T) {
	m := NewManager(registry.Default(), &staticFetcher{}, nil)
	defer m.Close()

	_, a := m.Create()
	_, b := m.Create()

	_, err := a.SelectCity("delhi")
	require.NoError(t, err)

	assert.Equal(t, "Delhi", a.State().Selection.City.Name)
	assert.Nil(t, b.State().Selection.City)
}

func TestManagerSweepExpiresIdleSessions(t *testing.T) {
	m := NewManager(registry.Default(), &staticFetcher{}, nil)
	defer m.Close()

	idle, _ := m.Create()
	active, c := m.Create()

	later := time.Now().Add(2 * time.Hour)
	c.mu.Lock()
	c.lastSeen = later
	c.mu.Unlock()

	assert.Equal(t, 1, m.Sweep(later.Add(time.Minute), time.Hour))

	_, err := m.Get(idle)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.Get(active)
	assert.NoError(t, err)
}

func TestManagerRunStopsOnCancel(t *testing.T) {
	m := NewManager(registry.Default(), &staticFetcher{}, nil)
	defer m.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx, time.Millisecond, time.Hour)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop")
	}
}
