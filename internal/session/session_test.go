package session

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suhome/storefront/internal/models"
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

func TestLoginFillsDefaults(t *testing.T) {
	s := New(newTestStore(t))

	s.Login(models.User{ID: 1, Email: "a@b.c"})

	user := s.Current()
	require.NotNil(t, user)
	assert.Equal(t, "User", user.Name)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.Greater(t, user.ExpiresAt, time.Now().UnixMilli())
}

func TestSessionRestoredAcrossRestart(t *testing.T) {
	store := newTestStore(t)
	first := New(store)
	first.Login(models.User{ID: 1, Email: "a@b.c", Name: "Ada", Role: models.RoleCustomer})

	second := New(store)

	user := second.Current()
	require.NotNil(t, user)
	assert.Equal(t, "Ada", user.Name)
	assert.True(t, second.IsAuthenticated())
}

func TestExpiredSessionLoadsAsLoggedOut(t *testing.T) {
	store := newTestStore(t)
	store.SetJSON(storage.KeyAuthUser, &models.User{
		ID:        1,
		ExpiresAt: time.Now().Add(-time.Minute).UnixMilli(),
	})

	s := New(store)

	assert.Nil(t, s.Current())
	assert.False(t, s.IsAuthenticated())
}

func TestLogoutNotifiesListeners(t *testing.T) {
	s := New(newTestStore(t))
	var events []*models.User
	s.OnChange(func(u *models.User) { events = append(events, u) })

	s.Login(models.User{ID: 1, Email: "a@b.c"})
	s.Logout()

	require.Len(t, events, 2)
	assert.NotNil(t, events[0])
	assert.Nil(t, events[1])
	assert.Empty(t, s.Role())
}

func TestUpdateUserPersistsPatch(t *testing.T) {
	store := newTestStore(t)
	s := New(store)
	s.Login(models.User{ID: 1, Email: "a@b.c"})

	s.UpdateUser(func(u *models.User) { u.Address = "Main St 1" })

	assert.Equal(t, "Main St 1", s.Current().Address)
	restored := New(store)
	assert.Equal(t, "Main St 1", restored.Current().Address)
}

func TestUpdateUserNoopWhenLoggedOut(t *testing.T) {
	s := New(newTestStore(t))
	called := false
	s.OnChange(func(*models.User) { called = true })

	s.UpdateUser(func(u *models.User) { u.Address = "x" })

	assert.False(t, called)
	assert.Nil(t, s.Current())
}
