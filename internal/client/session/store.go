package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/openmat/internal/client/models"
	"github.com/dmitrijs2005/openmat/internal/client/tokenstore"
	"github.com/dmitrijs2005/openmat/internal/common"
	"github.com/dmitrijs2005/openmat/internal/logging"
)

var errSessionExpired = errors.New("session expired")

// API is the part of the remote service the session talks to.
type API interface {
	Login(ctx context.Context, email, password string) (string, error)
	Profile(ctx context.Context) (*models.Profile, error)
}

// HeaderSetter installs headers sent with every request. *httpclient.Client
// implements it.
type HeaderSetter interface {
	SetDefaultHeader(name, value string)
	ClearDefaultHeader(name string)
}

type Option func(*Store)

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

type Store struct {
	api     API
	headers HeaderSetter
	tokens  tokenstore.Store
	log     logging.Logger

	mu      sync.Mutex
	token   string
	claims  tokenClaims
	user    *models.Profile
	loading bool
	state   State
	gen     uint64

	subs    map[int]chan Snapshot
	nextSub int
	closed  bool
}

// New returns a store in the Uninitialized state with Loading set. Call Init
// to validate the persisted token.
func New(api API, headers HeaderSetter, tokens tokenstore.Store, opts ...Option) *Store {
	s := &Store{
		api:     api,
		headers: headers,
		tokens:  tokens,
		log:     logging.Nop(),
		loading: true,
		state:   Uninitialized,
		subs:    make(map[int]chan Snapshot),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Init seeds the session from the persisted token and validates it. An
// unreadable token store is logged and treated as empty.
func (s *Store) Init(ctx context.Context) {
	token, err := s.tokens.Load(ctx)
	if err != nil {
		s.log.Warn(ctx, "cannot read persisted token", "error", err)
		token = ""
	}

	gen, _ := s.setToken(ctx, token, false)
	s.validate(ctx, gen, token)
}

// Login exchanges credentials for a token, persists it and validates it.
// A rejected login returns the API error (typically
// *client.AuthenticationError) and leaves the session as it was.
//
// A nil error means the token was accepted; whether the profile fetch that
// followed succeeded is visible in Snapshot().IsLoggedIn.
func (s *Store) Login(ctx context.Context, email, password string) error {
	token, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.log.Info(ctx, "login rejected", "error", err)
		return err
	}

	gen, err := s.setToken(ctx, token, true)
	if err != nil {
		return err
	}
	s.validate(ctx, gen, token)
	return nil
}

// Logout clears the token everywhere. It never fails on an already anonymous
// session. A failure to clear the persisted token is returned, but the
// in-memory session is cleared anyway.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	wasActive := s.token != "" || s.user != nil || s.loading
	if wasActive {
		s.gen++
	}
	err := s.clearLocked(context.WithoutCancel(ctx))
	s.loading = false
	s.state = Anonymous

	if wasActive {
		s.log.Info(ctx, "logged out")
		s.publishLocked()
	}
	return err
}

// UpdateUser replaces the current profile without a network round-trip.
// It reports false and changes nothing when no token is active.
func (s *Store) UpdateUser(p models.Profile) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateUserLocked(p)
}

// UpdateUserAt is UpdateUser for a profile obtained while gen was current,
// as read from Snapshot.Generation. A login or logout in between makes it a
// no-op.
func (s *Store) UpdateUserAt(gen uint64, p models.Profile) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		s.log.Debug(context.Background(), "stale profile update discarded", "generation", gen, "current", s.gen)
		return false
	}
	return s.updateUserLocked(p)
}

func (s *Store) updateUserLocked(p models.Profile) bool {
	if s.token == "" {
		return false
	}
	s.user = cloneProfile(&p)
	if !s.loading {
		s.state = Authenticated
	}
	s.publishLocked()
	return true
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe delivers a snapshot after every change. Slow readers only see
// the latest value. The returned func unsubscribes and closes the channel.
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan Snapshot, 1)
	if s.closed {
		close(ch)
		return ch, func() {}
	}

	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if c, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(c)
			}
		})
	}
}

// Close ends all subscriptions. The persisted token is kept.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}

// setToken makes token current and enters Validating. The returned
// generation identifies this change for validate.
func (s *Store) setToken(ctx context.Context, token string, persist bool) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if persist {
		if err := s.tokens.Save(ctx, token); err != nil {
			return 0, fmt.Errorf("persist token: %w", err)
		}
	}

	s.gen++
	s.token = token
	s.claims = inspectToken(token)
	s.user = nil
	s.loading = true
	s.state = Validating

	if token != "" {
		s.headers.SetDefaultHeader(common.AuthorizationHeaderName, common.BearerValue(token))
	} else {
		s.headers.ClearDefaultHeader(common.AuthorizationHeaderName)
	}

	s.publishLocked()
	return s.gen, nil
}

func (s *Store) validate(ctx context.Context, gen uint64, token string) {
	var (
		profile *models.Profile
		err     error
	)
	if token != "" {
		profile, err = s.api.Profile(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		s.log.Debug(ctx, "stale validation discarded", "generation", gen, "current", s.gen)
		return
	}

	switch {
	case err != nil:
		s.log.Warn(ctx, "session expired, logging out", "error", fmt.Errorf("%w: %w", errSessionExpired, err))
		// cleanup reaches storage even when ctx is already cancelled
		_ = s.clearLocked(context.WithoutCancel(ctx))
	case profile != nil:
		s.user = cloneProfile(profile)
		s.log.Info(ctx, "session validated", "user_id", profile.ID, "username", profile.Username)
	}

	s.loading = false
	if s.user != nil {
		s.state = Authenticated
	} else {
		s.state = Anonymous
	}
	s.publishLocked()
}

func (s *Store) clearLocked(ctx context.Context) error {
	err := s.tokens.Clear(ctx)
	if err != nil {
		s.log.Error(ctx, "cannot clear persisted token", "error", err)
		err = fmt.Errorf("clear persisted token: %w", err)
	}

	s.headers.ClearDefaultHeader(common.AuthorizationHeaderName)
	s.token = ""
	s.claims = tokenClaims{}
	s.user = nil
	return err
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Token:      s.token,
		User:       cloneProfile(s.user),
		IsLoggedIn: s.user != nil,
		Loading:    s.loading,
		State:      s.state,
		Generation: s.gen,
		ExpiresAt:  s.claims.expiresAt,
		Subject:    s.claims.subject,
	}
}

func (s *Store) publishLocked() {
	if len(s.subs) == 0 {
		return
	}
	snap := s.snapshotLocked()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
			// replace the unread value
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}

func cloneProfile(p *models.Profile) *models.Profile {
	if p == nil {
		return nil
	}
	c := *p
	c.Bookings = slices.Clone(p.Bookings)
	return &c
}
