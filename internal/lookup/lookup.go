// Package lookup contains the two request coordinators at the core of the
// application: one owning the profile lookup lifecycle, one owning the
// repository list lifecycle.
//
// THE COORDINATOR PATTERN:
// Each coordinator owns a single state.Cell holding a Request record. An
// operation (Search, FetchRepos) drives that record through its lifecycle:
//
//	zero → loading → settled with data
//	              ↘ settled with error
//
// The two records are deliberately independent — no shared mutable
// structure. They are only CHAINED: a successful profile fetch triggers the
// repository fetch for the same handle, so an observer never sees repos for
// a handle whose profile didn't resolve. A stale repo list from a PREVIOUS
// search can still be visible while a new profile search is loading; Search
// does not clear repo state, only Clear() does. That asymmetry is inherited
// behaviour, kept on purpose.
//
// SUPERSESSION:
// Nothing stops a caller from starting a new Search while an old one is in
// flight. Each cell carries a generation counter: an operation records the
// generation it started under and discards its own result if a newer
// operation has bumped the counter since. The freshest call always wins,
// deterministically, instead of "whichever response lands last".
package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/rs/xid"

	"github.com/sakif/devfinder/internal/apperror"
	"github.com/sakif/devfinder/internal/model"
	"github.com/sakif/devfinder/internal/state"
)

// GitHubClient is the transport the coordinators fetch through.
// The concrete implementation is internal/github.Client; tests inject a fake.
type GitHubClient interface {
	GetUser(ctx context.Context, login string) (*model.Profile, error)
	ListRepos(ctx context.Context, login string) ([]model.Repo, error)
}

// Service owns both coordinators. It is constructed once at startup and
// injected where needed — no package-level singleton.
type Service struct {
	client GitHubClient
	logger *slog.Logger

	profile    *state.Cell[state.Request[model.Profile]]
	repos      *state.Cell[state.Request[[]model.Repo]]
	profileGen atomic.Uint64
	reposGen   atomic.Uint64
}

// New creates a lookup Service with both records in the zero
// ("not yet asked") state.
func New(client GitHubClient, logger *slog.Logger) *Service {
	return &Service{
		client:  client,
		logger:  logger,
		profile: state.NewCell(state.Request[model.Profile]{}),
		repos:   state.NewCell(state.Request[[]model.Repo]{}),
	}
}

// Search looks up the profile for username and, on success, chains the
// repository fetch for the same handle. It blocks until both fetch paths
// settle; the loading transition is published synchronously before the
// network call is issued, so concurrent observers see it immediately.
//
// Every failure settles into the record as a human-readable message —
// Search itself never returns an error.
func (s *Service) Search(ctx context.Context, username string) {
	username = strings.TrimSpace(username)
	if username == "" {
		// Validation short-circuit: settle synchronously, no network call,
		// no loading transition. This call is still the freshest one, so
		// it supersedes any fetch already in flight — otherwise a late
		// response would overwrite the settled validation error.
		s.profileGen.Add(1)
		s.profile.Set(state.Failed[model.Profile]("username is required"))
		return
	}

	searchID := xid.New().String()
	gen := s.profileGen.Add(1)

	s.profile.Set(state.Loading[model.Profile]())
	s.logger.Info("profile lookup started",
		slog.String("search_id", searchID),
		slog.String("username", username),
	)

	profile, err := s.client.GetUser(ctx, username)

	// A newer Search (or Clear) superseded us while the request was in
	// flight — our result is stale, drop it without touching the cell.
	if s.profileGen.Load() != gen {
		s.logger.Debug("discarding superseded profile response",
			slog.String("search_id", searchID),
			slog.String("username", username),
		)
		return
	}

	if err != nil {
		msg := profileErrorMessage(username, err)
		s.profile.Set(state.Failed[model.Profile](msg))
		s.logger.Warn("profile lookup failed",
			slog.String("search_id", searchID),
			slog.String("username", username),
			slog.String("error", msg),
		)
		return
	}

	s.profile.Set(state.Loaded(*profile))
	s.logger.Info("profile lookup resolved",
		slog.String("search_id", searchID),
		slog.String("username", profile.Login),
		slog.Int("public_repos", profile.PublicRepos),
	)

	// Chained fetch — not a separate caller-triggered step. Uses the
	// RESOLVED handle, not the queried one: GitHub matches usernames
	// case-insensitively, and Login carries the canonical casing.
	s.FetchRepos(ctx, profile.Login)
}

// FetchRepos looks up the repository list for username, with the same
// lifecycle discipline as Search. It is invoked automatically after a
// successful profile resolution; it is exported because it is an operation
// in its own right, with its own independent record.
func (s *Service) FetchRepos(ctx context.Context, username string) {
	username = strings.TrimSpace(username)
	if username == "" {
		// Same supersession rule as Search's short-circuit.
		s.reposGen.Add(1)
		s.repos.Set(state.Failed[[]model.Repo]("username is required"))
		return
	}

	gen := s.reposGen.Add(1)
	s.repos.Set(state.Loading[[]model.Repo]())

	repos, err := s.client.ListRepos(ctx, username)

	if s.reposGen.Load() != gen {
		return
	}

	if err != nil {
		msg := reposErrorMessage(err)
		s.repos.Set(state.Failed[[]model.Repo](msg))
		s.logger.Warn("repository lookup failed",
			slog.String("username", username),
			slog.String("error", msg),
		)
		return
	}

	// An empty list is a valid success — "loaded, zero repos" is a
	// different state than "not yet loaded".
	s.repos.Set(state.Loaded(repos))
	s.logger.Info("repository lookup resolved",
		slog.String("username", username),
		slog.Int("count", len(repos)),
	)
}

// Clear resets both records to the zero state. Idempotent. In-flight
// fetches are superseded, so late responses cannot repopulate the cells.
func (s *Service) Clear() {
	s.profileGen.Add(1)
	s.reposGen.Add(1)
	s.profile.Set(state.Request[model.Profile]{})
	s.repos.Set(state.Request[[]model.Repo]{})
}

// === Read-only projections ===
//
// These are what the presentation layer consumes. Each returns a copy of
// the relevant slice of state; none of them can mutate the records.

// Profile returns the resolved profile, or nil if absent.
func (s *Service) Profile() *model.Profile { return s.profile.Get().Data }

// ProfileLoading reports whether a profile fetch is in flight.
func (s *Service) ProfileLoading() bool { return s.profile.Get().Loading }

// ProfileError returns the settled profile error message, or "" if none.
func (s *Service) ProfileError() string { return s.profile.Get().Err }

// Repos returns the resolved repository list, or nil if absent.
func (s *Service) Repos() []model.Repo {
	if data := s.repos.Get().Data; data != nil {
		return *data
	}
	return nil
}

// ReposLoading reports whether a repository fetch is in flight.
func (s *Service) ReposLoading() bool { return s.repos.Get().Loading }

// ReposError returns the settled repository error message, or "" if none.
func (s *Service) ReposError() string { return s.repos.Get().Err }

// ProfileState returns the full profile record as one consistent snapshot.
func (s *Service) ProfileState() state.Request[model.Profile] { return s.profile.Get() }

// ReposState returns the full repository record as one consistent snapshot.
func (s *Service) ReposState() state.Request[[]model.Repo] { return s.repos.Get() }

// SubscribeProfile registers a subscriber for profile record swaps and
// returns its unsubscribe function.
func (s *Service) SubscribeProfile(sub state.Subscriber[state.Request[model.Profile]]) func() {
	return s.profile.Subscribe(sub)
}

// SubscribeRepos registers a subscriber for repository record swaps and
// returns its unsubscribe function.
func (s *Service) SubscribeRepos(sub state.Subscriber[state.Request[[]model.Repo]]) func() {
	return s.repos.Subscribe(sub)
}

// profileErrorMessage words a classified transport failure for the profile
// record. The 404 message must contain the literal queried handle — the UI
// shows it back to the user.
func profileErrorMessage(username string, err error) string {
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		return fmt.Sprintf("user %q not found", username)
	case errors.Is(err, apperror.ErrRateLimited):
		return "GitHub API rate limit exceeded, try again later"
	case errors.Is(err, apperror.ErrUnreachable):
		return "could not connect to GitHub, check your internet connection"
	case errors.Is(err, apperror.ErrRemote):
		return err.Error() // the remote payload's own message
	default:
		return "something went wrong while loading the profile"
	}
}

// reposErrorMessage mirrors profileErrorMessage with repository wording.
func reposErrorMessage(err error) string {
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		return "repositories not found"
	case errors.Is(err, apperror.ErrRateLimited):
		return "GitHub API rate limit exceeded while loading repositories"
	case errors.Is(err, apperror.ErrUnreachable):
		return "could not connect to GitHub, check your internet connection"
	case errors.Is(err, apperror.ErrRemote):
		return err.Error()
	default:
		return "something went wrong while loading repositories"
	}
}
