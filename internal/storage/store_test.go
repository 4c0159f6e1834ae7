package storage

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	store, err := NewStore(afero.NewMemMapFs(), "state", logrus.NewEntry(log))
	require.NoError(t, err)
	return store
}

func TestGetJSONMissingKeyReturnsFallback(t *testing.T) {
	store := newTestStore(t)

	got := GetJSON(store, "nope", []string{"fallback"})
	assert.Equal(t, []string{"fallback"}, got)
}

func TestSetAndGetJSONRoundTrip(t *testing.T) {
	store := newTestStore(t)

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	ok := store.SetJSON("cart", payload{Name: "desk", Count: 2})
	require.True(t, ok)

	got := GetJSON(store, "cart", payload{})
	assert.Equal(t, payload{Name: "desk", Count: 2}, got)
}

func TestGetJSONCorruptPayloadReturnsFallback(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, afero.WriteFile(store.fs, store.path("cart"), []byte("{not json"), 0o644))

	got := GetJSON(store, "cart", 42)
	assert.Equal(t, 42, got)
}

func TestRemoveMissingKeyIsSilent(t *testing.T) {
	store := newTestStore(t)

	store.Remove("never-written")

	store.SetJSON("written", "x")
	store.Remove("written")
	assert.Equal(t, "gone", GetJSON(store, "written", "gone"))
}

func TestUpdateJSONReadsModifiesWrites(t *testing.T) {
	store := newTestStore(t)
	store.SetJSON("counts", map[string]int{"a": 1})

	next := UpdateJSON(store, "counts", func(m map[string]int) map[string]int {
		m["a"]++
		m["b"] = 5
		return m
	}, map[string]int{})

	assert.Equal(t, map[string]int{"a": 2, "b": 5}, next)
	assert.Equal(t, next, GetJSON(store, "counts", map[string]int{}))
}

func TestKeyWithSlashMapsToSafeFilename(t *testing.T) {
	store := newTestStore(t)

	require.True(t, store.SetJSON("cart:user/1", "v"))
	assert.Equal(t, "v", GetJSON(store, "cart:user/1", ""))
}
