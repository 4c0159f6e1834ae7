package theme

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suhome/storefront/internal/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	store, err := storage.NewStore(afero.NewMemMapFs(), "state", logrus.NewEntry(log))
	require.NoError(t, err)
	return store
}

func TestDefaultsToLight(t *testing.T) {
	m := NewManager(newTestStore(t))
	assert.Equal(t, Light, m.Current())
	assert.False(t, m.IsDark())
}

func TestTogglePersists(t *testing.T) {
	store := newTestStore(t)
	m := NewManager(store)

	assert.Equal(t, Dark, m.Toggle())

	restored := NewManager(store)
	assert.True(t, restored.IsDark())
}

func TestSetUnknownValueFallsBackToLight(t *testing.T) {
	m := NewManager(newTestStore(t))
	m.Set("sepia")
	assert.Equal(t, Light, m.Current())
}
