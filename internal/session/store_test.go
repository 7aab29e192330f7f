package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brunopinheiroeu/artori-sub001/internal/app/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "artori", "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "u-1",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestTokenRoundtrip(t *testing.T) {
	store := openTestStore(t)

	token, err := store.Token()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.SetToken("abc.def.ghi"))
	token, err = store.Token()
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	// Overwrite replaces rather than duplicates.
	require.NoError(t, store.SetToken("second"))
	token, err = store.Token()
	require.NoError(t, err)
	assert.Equal(t, "second", token)
}

func TestCachedUserRoundtrip(t *testing.T) {
	store := openTestStore(t)

	usr, err := store.CachedUser()
	require.NoError(t, err)
	assert.Nil(t, usr)

	selected := "sat-2025"
	want := models.User{
		ID:             "u-7",
		Email:          "student@artori.app",
		Name:           "Sam Student",
		Role:           models.RoleStudent,
		SelectedExamID: &selected,
		IsActive:       true,
	}
	require.NoError(t, store.SetCachedUser(want))

	usr, err = store.CachedUser()
	require.NoError(t, err)
	require.NotNil(t, usr)
	assert.Equal(t, want, *usr)
}

func TestSelectedExamRoundtrip(t *testing.T) {
	store := openTestStore(t)

	exam, err := store.SelectedExam()
	require.NoError(t, err)
	assert.Empty(t, exam)

	require.NoError(t, store.SetSelectedExam("enem-2025"))
	exam, err = store.SelectedExam()
	require.NoError(t, err)
	assert.Equal(t, "enem-2025", exam)
}

func TestClearRemovesEverySessionKey(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.SetToken("tok"))
	require.NoError(t, store.SetCachedUser(models.User{ID: "u-1", Role: models.RoleAdmin}))
	require.NoError(t, store.SetSelectedExam("sat-2025"))

	require.NoError(t, store.Clear())

	token, err := store.Token()
	require.NoError(t, err)
	assert.Empty(t, token)

	usr, err := store.CachedUser()
	require.NoError(t, err)
	assert.Nil(t, usr)

	exam, err := store.SelectedExam()
	require.NoError(t, err)
	assert.Empty(t, exam)
}

func TestTokenUsable(t *testing.T) {
	store := openTestStore(t)

	// No token at all.
	assert.False(t, store.TokenUsable())

	// Expired JWT.
	require.NoError(t, store.SetToken(signedToken(t, time.Now().Add(-time.Minute))))
	assert.False(t, store.TokenUsable())

	// Valid JWT.
	require.NoError(t, store.SetToken(signedToken(t, time.Now().Add(time.Hour))))
	assert.True(t, store.TokenUsable())

	// Opaque tokens cannot be judged locally and pass the gate.
	require.NoError(t, store.SetToken("opaque-session-token"))
	assert.True(t, store.TokenUsable())
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.SetToken("persisted"))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	token, err := store.Token()
	require.NoError(t, err)
	assert.Equal(t, "persisted", token)
}
