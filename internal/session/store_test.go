package session

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"moviedeck/internal/apierrors"
	"moviedeck/internal/gateway"
	"moviedeck/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newAuthServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	handler := func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.AuthResponse{
			Token: "tok-123",
			User:  models.User{ID: "u1", Username: "ada", Email: "ada@example.com"},
		})
	}
	mux.HandleFunc("POST /auth/login", handler)
	mux.HandleFunc("POST /auth/register", handler)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestStore(t *testing.T, baseURL string, tokens TokenStore) *Store {
	t.Helper()
	auth := gateway.NewAuthClient(gateway.Config{
		BaseURL:   baseURL,
		RateLimit: rate.Inf,
		Logger:    testLogger(),
	})
	return NewStore(auth, tokens, testLogger())
}

func TestStore_LoginEstablishesAndPersists(t *testing.T) {
	srv := newAuthServer(t)
	tokens := NewMemoryTokenStore()
	store := newTestStore(t, srv.URL, tokens)

	assert.False(t, store.IsAuthenticated())

	user, err := store.Login(context.Background(), models.Credentials{Email: "ada@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.True(t, store.IsAuthenticated())

	token, ok := store.Token()
	require.True(t, ok)
	assert.Equal(t, "tok-123", token)

	savedToken, savedUser, found, err := tokens.Load(context.Background())
	require.NoError(t, err)
	require.True(t, found, "login should persist the session")
	assert.Equal(t, "tok-123", savedToken)
	assert.Equal(t, "ada", savedUser.Username)
}

func TestStore_RegisterEstablishesSession(t *testing.T) {
	srv := newAuthServer(t)
	store := newTestStore(t, srv.URL, NewMemoryTokenStore())

	user, err := store.Register(context.Background(), models.Profile{Username: "ada", Email: "ada@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "ada", user.Username)
	assert.True(t, store.IsAuthenticated())
}

func TestStore_RestoreLoadsPersistedSession(t *testing.T) {
	tokens := NewMemoryTokenStore()
	require.NoError(t, tokens.Save(context.Background(), "tok-old", models.User{ID: "u9", Username: "grace"}))

	store := newTestStore(t, "http://unused", tokens)
	require.NoError(t, store.Restore(context.Background()))

	assert.True(t, store.IsAuthenticated())
	user, ok := store.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "u9", user.ID)
}

func TestStore_RestoreWithoutPersistedToken(t *testing.T) {
	store := newTestStore(t, "http://unused", NewMemoryTokenStore())
	require.NoError(t, store.Restore(context.Background()))
	assert.False(t, store.IsAuthenticated())
}

func TestStore_LogoutClearsEverything(t *testing.T) {
	srv := newAuthServer(t)
	tokens := NewMemoryTokenStore()
	store := newTestStore(t, srv.URL, tokens)

	teardowns := 0
	store.OnTeardown(func() { teardowns++ })

	_, err := store.Login(context.Background(), models.Credentials{Email: "ada@example.com", Password: "pw"})
	require.NoError(t, err)
	epochBefore := store.Epoch()

	store.Logout(context.Background())

	assert.False(t, store.IsAuthenticated())
	_, ok := store.Token()
	assert.False(t, ok)
	assert.Greater(t, store.Epoch(), epochBefore, "teardown should bump the epoch")
	assert.Equal(t, 1, teardowns)

	_, _, found, err := tokens.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, found, "logout should clear durable storage")
}

func TestStore_LoginOverLiveSessionRetiresOldIdentity(t *testing.T) {
	srv := newAuthServer(t)
	store := newTestStore(t, srv.URL, NewMemoryTokenStore())

	teardowns := 0
	store.OnTeardown(func() { teardowns++ })

	_, err := store.Login(context.Background(), models.Credentials{Email: "ada@example.com", Password: "pw"})
	require.NoError(t, err)
	epochBefore := store.Epoch()
	assert.Equal(t, 0, teardowns, "first login replaces nothing")

	_, err = store.Login(context.Background(), models.Credentials{Email: "grace@example.com", Password: "pw"})
	require.NoError(t, err)

	assert.Greater(t, store.Epoch(), epochBefore, "replacing a live identity discards its in-flight results")
	assert.Equal(t, 1, teardowns, "the previous identity's state is evicted")
	assert.True(t, store.IsAuthenticated())
}

func TestStore_InvalidateMatchesLogout(t *testing.T) {
	srv := newAuthServer(t)
	tokens := NewMemoryTokenStore()
	store := newTestStore(t, srv.URL, tokens)

	_, err := store.Login(context.Background(), models.Credentials{Email: "ada@example.com", Password: "pw"})
	require.NoError(t, err)

	store.Invalidate(context.Background())

	assert.False(t, store.IsAuthenticated())
	_, _, found, err := tokens.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStore_LoginFailureLeavesUnauthenticated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"bad credentials"}`))
	}))
	t.Cleanup(srv.Close)

	store := newTestStore(t, srv.URL, NewMemoryTokenStore())
	_, err := store.Login(context.Background(), models.Credentials{Email: "ada@example.com", Password: "wrong"})

	var authErr *apierrors.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.False(t, store.IsAuthenticated())
}
