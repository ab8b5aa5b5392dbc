package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"github.com/userdesk/apiserver/internal/auth"
	"github.com/userdesk/apiserver/internal/services"
	"github.com/userdesk/apiserver/internal/store"
	"github.com/userdesk/apiserver/types"
)

const testSecret = "handler-test-secret"

// stubRepo is an in-memory services.UserRepository for handler tests.
type stubRepo struct {
	users  map[int]types.User
	nextID int
}

func newStubRepo() *stubRepo {
	return &stubRepo{users: map[int]types.User{}, nextID: 1}
}

func (s *stubRepo) GetByID(_ context.Context, id int) (types.User, error) {
	user, ok := s.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (s *stubRepo) GetByUsername(_ context.Context, username string) (types.User, error) {
	for _, user := range s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (s *stubRepo) Create(ctx context.Context, user types.User) (types.User, error) {
	if _, err := s.GetByUsername(ctx, user.Username); err == nil {
		return types.User{}, store.ErrDuplicateUsername
	}
	user.ID = s.nextID
	s.nextID++
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = user
	return user, nil
}

func (s *stubRepo) Update(_ context.Context, user types.User) (types.User, error) {
	if _, ok := s.users[user.ID]; !ok {
		return types.User{}, store.ErrNotFound
	}
	s.users[user.ID] = user
	return user, nil
}

func (s *stubRepo) SetPassword(_ context.Context, id int, hash, salt string) error {
	user, ok := s.users[id]
	if !ok {
		return store.ErrNotFound
	}
	user.PasswordHash = hash
	user.Salt = salt
	s.users[id] = user
	return nil
}

func (s *stubRepo) RecordLogin(_ context.Context, id int, at time.Time) error {
	user, ok := s.users[id]
	if !ok {
		return store.ErrNotFound
	}
	user.LastLogin = &at
	s.users[id] = user
	return nil
}

func (s *stubRepo) Delete(_ context.Context, id int) error {
	if _, ok := s.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *stubRepo) List(_ context.Context) ([]types.User, error) {
	var out []types.User
	for id := 1; id < s.nextID; id++ {
		if user, ok := s.users[id]; ok {
			out = append(out, user)
		}
	}
	return out, nil
}

func (s *stubRepo) HasAdmin(_ context.Context) (bool, error) {
	for _, user := range s.users {
		if user.IsAdmin {
			return true, nil
		}
	}
	return false, nil
}

type testEnv struct {
	repo   *stubRepo
	users  *services.UserService
	tokens *auth.TokenService
	router *chi.Mux
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	repo := newStubRepo()
	users := services.NewUserService(repo)
	tokens := auth.NewTokenService(testSecret, time.Hour)

	router := chi.NewRouter()
	router.Route("/auth", func(r chi.Router) {
		AuthRouter(r, users, tokens)
	})
	router.Route("/admin", func(r chi.Router) {
		AdminRouter(r, users, tokens)
	})

	return &testEnv{repo: repo, users: users, tokens: tokens, router: router}
}

func (e *testEnv) seedUser(t *testing.T, username, password string, isAdmin bool) types.User {
	t.Helper()
	hash, salt, err := auth.HashPassword(password)
	require.NoError(t, err)
	user, err := e.repo.Create(context.Background(), types.User{
		Username:     username,
		PasswordHash: hash,
		Salt:         salt,
		IsAdmin:      isAdmin,
	})
	require.NoError(t, err)
	return user
}

func (e *testEnv) tokenFor(t *testing.T, userID int) string {
	t.Helper()
	token, err := e.tokens.Issue(userID)
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[ErrorResponse](t, rec).Error
}
