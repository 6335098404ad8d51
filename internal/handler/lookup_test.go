package handler_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/devfinder/internal/apperror"
	"github.com/sakif/devfinder/internal/handler"
	"github.com/sakif/devfinder/internal/lookup"
	"github.com/sakif/devfinder/internal/model"
)

// stubClient implements lookup.GitHubClient with canned responses.
type stubClient struct {
	profile *model.Profile
	repos   []model.Repo
	userErr error
	repoErr error
}

func (s *stubClient) GetUser(_ context.Context, login string) (*model.Profile, error) {
	if s.userErr != nil {
		return nil, s.userErr
	}
	p := *s.profile
	return &p, nil
}

func (s *stubClient) ListRepos(_ context.Context, login string) ([]model.Repo, error) {
	if s.repoErr != nil {
		return nil, s.repoErr
	}
	return s.repos, nil
}

func newLookupRouter(client lookup.GitHubClient) (*chi.Mux, *lookup.Service) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	svc := lookup.New(client, logger)
	h := handler.NewLookupHandler(svc, logger)

	r := chi.NewRouter()
	r.Get("/api/users/{username}", h.HandleSearch)
	r.Get("/api/state", h.HandleState)
	r.Delete("/api/state", h.HandleClear)
	return r, svc
}

func TestHandleSearch_Success(t *testing.T) {
	name := "The Octocat"
	client := &stubClient{
		profile: &model.Profile{Login: "octocat", ID: 583231, Name: &name},
		repos:   []model.Repo{{ID: 1, Name: "Hello-World"}},
	}
	router, _ := newLookupRouter(client)

	req := httptest.NewRequest(http.MethodGet, "/api/users/octocat", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var res handler.StateResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&res))

	require.NotNil(t, res.Profile.Data)
	assert.Equal(t, "octocat", res.Profile.Data.Login)
	assert.False(t, res.Profile.Loading)
	assert.Empty(t, res.Profile.Error)

	require.NotNil(t, res.Repos.Data)
	assert.Len(t, *res.Repos.Data, 1)
}

func TestHandleSearch_UnknownUser(t *testing.T) {
	client := &stubClient{userErr: apperror.NotFound("resource not found")}
	router, _ := newLookupRouter(client)

	req := httptest.NewRequest(http.MethodGet, "/api/users/user-that-does-not-exist-xyz", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	// A failed lookup is settled state, not an HTTP error.
	assert.Equal(t, http.StatusOK, rr.Code)

	var res handler.StateResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&res))

	assert.Nil(t, res.Profile.Data)
	assert.Contains(t, res.Profile.Error, "user-that-does-not-exist-xyz")
	// Repos were never fetched: still the zero record.
	assert.Nil(t, res.Repos.Data)
	assert.Empty(t, res.Repos.Error)
}

func TestHandleState_DoesNotFetch(t *testing.T) {
	client := &stubClient{profile: &model.Profile{Login: "octocat", ID: 1}}
	router, _ := newLookupRouter(client)

	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var res handler.StateResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
	assert.Nil(t, res.Profile.Data) // nothing was searched yet
	assert.False(t, res.Profile.Loading)
}

func TestHandleClear(t *testing.T) {
	client := &stubClient{
		profile: &model.Profile{Login: "octocat", ID: 1},
		repos:   []model.Repo{{ID: 1}},
	}
	router, svc := newLookupRouter(client)

	// Populate, then clear over HTTP.
	svc.Search(context.Background(), "octocat")
	require.NotNil(t, svc.Profile())

	req := httptest.NewRequest(http.MethodDelete, "/api/state", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Nil(t, svc.Profile())
	assert.Nil(t, svc.Repos())
}
