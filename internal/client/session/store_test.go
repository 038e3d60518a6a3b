package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/openmat/internal/client/httpclient"
	"github.com/dmitrijs2005/openmat/internal/client/models"
	"github.com/dmitrijs2005/openmat/internal/client/tokenstore"
	"github.com/dmitrijs2005/openmat/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profileReply struct {
	profile *models.Profile
	err     error
	// when non-nil the call blocks until it is closed
	release chan struct{}
}

// fakeAPI answers Profile calls from a queue; the last reply repeats.
type fakeAPI struct {
	mu            sync.Mutex
	loginToken    string
	loginErr      error
	replies       []profileReply
	profileCalls  int
	profileEnters chan struct{}
}

func (f *fakeAPI) Login(context.Context, string, string) (string, error) {
	return f.loginToken, f.loginErr
}

func (f *fakeAPI) Profile(context.Context) (*models.Profile, error) {
	f.mu.Lock()
	idx := f.profileCalls
	f.profileCalls++
	if idx >= len(f.replies) {
		idx = len(f.replies) - 1
	}
	r := f.replies[idx]
	enters := f.profileEnters
	f.mu.Unlock()

	if enters != nil {
		enters <- struct{}{}
	}
	if r.release != nil {
		<-r.release
	}
	return r.profile, r.err
}

func (f *fakeAPI) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.profileCalls
}

type failingStore struct {
	tokenstore.MemoryStore
	clearErr error
}

func (f *failingStore) Clear(context.Context) error { return f.clearErr }

// ctxStore refuses to clear with a finished context, like a database would.
type ctxStore struct {
	tokenstore.MemoryStore
}

func (c *ctxStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.MemoryStore.Clear(ctx)
}

var neo = &models.Profile{ID: 1, Username: "neo"}

func newStore(api API, tokens tokenstore.Store) (*Store, *httpclient.Client) {
	hc := httpclient.New("http://api.invalid")
	return New(api, hc, tokens), hc
}

func TestNew_StartsUninitializedAndLoading(t *testing.T) {
	s, _ := newStore(&fakeAPI{}, tokenstore.NewMemoryStore(""))

	snap := s.Snapshot()
	assert.Equal(t, Uninitialized, snap.State)
	assert.True(t, snap.Loading)
	assert.False(t, snap.IsLoggedIn)
}

func TestInit_NoPersistedTokenSkipsNetwork(t *testing.T) {
	api := &fakeAPI{replies: []profileReply{{profile: neo}}}
	s, hc := newStore(api, tokenstore.NewMemoryStore(""))

	s.Init(context.Background())

	snap := s.Snapshot()
	assert.Equal(t, Anonymous, snap.State)
	assert.False(t, snap.Loading)
	assert.False(t, snap.IsLoggedIn)
	assert.Zero(t, api.calls())
	assert.Empty(t, hc.DefaultHeader(common.AuthorizationHeaderName))
}

func TestInit_ValidPersistedToken(t *testing.T) {
	api := &fakeAPI{replies: []profileReply{{profile: neo}}}
	s, hc := newStore(api, tokenstore.NewMemoryStore("abc123"))

	s.Init(context.Background())

	snap := s.Snapshot()
	require.True(t, snap.IsLoggedIn)
	assert.Equal(t, "neo", snap.User.Username)
	assert.Equal(t, Authenticated, snap.State)
	assert.Equal(t, "abc123", snap.Token)
	assert.Equal(t, "Bearer abc123", hc.DefaultHeader(common.AuthorizationHeaderName))
}

func TestInit_RejectedTokenEndsLikeLogout(t *testing.T) {
	api := &fakeAPI{replies: []profileReply{{err: errors.New("401")}}}
	tokens := tokenstore.NewMemoryStore("abc123")
	s, hc := newStore(api, tokens)

	s.Init(context.Background())

	snap := s.Snapshot()
	assert.False(t, snap.IsLoggedIn)
	assert.Empty(t, snap.Token)
	assert.Equal(t, Anonymous, snap.State)
	assert.False(t, snap.Loading)
	assert.Empty(t, hc.DefaultHeader(common.AuthorizationHeaderName))

	persisted, _ := tokens.Load(context.Background())
	assert.Empty(t, persisted)
}

func TestLogin_Success(t *testing.T) {
	api := &fakeAPI{loginToken: "abc123", replies: []profileReply{{profile: neo}}}
	tokens := tokenstore.NewMemoryStore("")
	s, hc := newStore(api, tokens)
	ctx := context.Background()
	s.Init(ctx)

	require.NoError(t, s.Login(ctx, "neo@matrix.io", "redpill"))

	snap := s.Snapshot()
	assert.True(t, snap.IsLoggedIn)
	assert.Equal(t, neo, snap.User)
	assert.Equal(t, "Bearer abc123", hc.DefaultHeader(common.AuthorizationHeaderName))

	persisted, _ := tokens.Load(ctx)
	assert.Equal(t, "abc123", persisted)
}

func TestLogin_FailureLeavesStateUnchanged(t *testing.T) {
	rejected := errors.New("Invalid credentials")
	api := &fakeAPI{loginErr: rejected, replies: []profileReply{{profile: neo}}}
	s, _ := newStore(api, tokenstore.NewMemoryStore("abc123"))
	ctx := context.Background()
	s.Init(ctx)
	before := s.Snapshot()

	err := s.Login(ctx, "a@b.com", "wrong")

	require.ErrorIs(t, err, rejected)
	assert.Equal(t, "Invalid credentials", err.Error())
	assert.Equal(t, before, s.Snapshot())
	assert.Equal(t, 1, api.calls())
}

func TestLogin_ProfileFailureEndsAnonymous(t *testing.T) {
	api := &fakeAPI{loginToken: "abc123", replies: []profileReply{{err: errors.New("boom")}}}
	tokens := tokenstore.NewMemoryStore("")
	s, _ := newStore(api, tokens)

	require.NoError(t, s.Login(context.Background(), "a@b.com", "pw"))

	snap := s.Snapshot()
	assert.False(t, snap.IsLoggedIn)
	assert.Empty(t, snap.Token)
	persisted, _ := tokens.Load(context.Background())
	assert.Empty(t, persisted)
}

func TestLogout_IsIdempotent(t *testing.T) {
	api := &fakeAPI{replies: []profileReply{{profile: neo}}}
	tokens := tokenstore.NewMemoryStore("abc123")
	s, hc := newStore(api, tokens)
	ctx := context.Background()
	s.Init(ctx)

	require.NoError(t, s.Logout(ctx))
	once := s.Snapshot()
	require.NoError(t, s.Logout(ctx))

	assert.Equal(t, once, s.Snapshot())
	assert.False(t, once.IsLoggedIn)
	assert.Empty(t, once.Token)
	assert.Empty(t, hc.DefaultHeader(common.AuthorizationHeaderName))
	persisted, _ := tokens.Load(ctx)
	assert.Empty(t, persisted)
}

func TestLogout_WhenAnonymousIsNoop(t *testing.T) {
	s, _ := newStore(&fakeAPI{}, tokenstore.NewMemoryStore(""))
	ctx := context.Background()
	s.Init(ctx)
	before := s.Snapshot()

	require.NoError(t, s.Logout(ctx))
	assert.Equal(t, before, s.Snapshot())
}

func TestLogout_PersistenceFailureStillClearsMemory(t *testing.T) {
	api := &fakeAPI{replies: []profileReply{{profile: neo}}}
	tokens := &failingStore{clearErr: errors.New("disk full")}
	require.NoError(t, tokens.Save(context.Background(), "abc123"))
	s, hc := newStore(api, tokens)
	ctx := context.Background()
	s.Init(ctx)
	require.True(t, s.Snapshot().IsLoggedIn)

	err := s.Logout(ctx)

	require.ErrorIs(t, err, tokens.clearErr)
	snap := s.Snapshot()
	assert.False(t, snap.IsLoggedIn)
	assert.Empty(t, snap.Token)
	assert.Empty(t, hc.DefaultHeader(common.AuthorizationHeaderName))
}

func TestUpdateUser_NoNetworkAndTokenKept(t *testing.T) {
	api := &fakeAPI{replies: []profileReply{{profile: neo}}}
	s, _ := newStore(api, tokenstore.NewMemoryStore("abc123"))
	s.Init(context.Background())

	require.True(t, s.UpdateUser(models.Profile{ID: 1, Username: "neo", BeltRank: "black"}))

	snap := s.Snapshot()
	assert.Equal(t, "black", snap.User.BeltRank)
	assert.Equal(t, "abc123", snap.Token)
	assert.Equal(t, 1, api.calls())
}

func TestUpdateUser_AfterLogoutIsIgnored(t *testing.T) {
	api := &fakeAPI{loginToken: "tok", replies: []profileReply{{profile: neo}}}
	s, hc := newStore(api, tokenstore.NewMemoryStore(""))
	ctx := context.Background()
	s.Init(ctx)
	require.NoError(t, s.Login(ctx, "neo@example.com", "pw"))
	require.NoError(t, s.Logout(ctx))

	assert.False(t, s.UpdateUser(models.Profile{ID: 1, Username: "neo2"}))

	snap := s.Snapshot()
	assert.False(t, snap.IsLoggedIn)
	assert.Nil(t, snap.User)
	assert.Equal(t, Anonymous, snap.State)
	assert.Empty(t, hc.DefaultHeader(common.AuthorizationHeaderName))
}

func TestUpdateUserAt_DiscardsUpdateFromEarlierSession(t *testing.T) {
	api := &fakeAPI{loginToken: "tok", replies: []profileReply{{profile: neo}}}
	s, _ := newStore(api, tokenstore.NewMemoryStore(""))
	ctx := context.Background()
	s.Init(ctx)
	require.NoError(t, s.Login(ctx, "neo@example.com", "pw"))
	gen := s.Snapshot().Generation

	require.NoError(t, s.Logout(ctx))
	require.NoError(t, s.Login(ctx, "neo@example.com", "pw"))

	assert.False(t, s.UpdateUserAt(gen, models.Profile{ID: 1, Username: "neo2"}))
	assert.Equal(t, "neo", s.Snapshot().User.Username)

	assert.True(t, s.UpdateUserAt(s.Snapshot().Generation, models.Profile{ID: 1, Username: "neo2"}))
	assert.Equal(t, "neo2", s.Snapshot().User.Username)
}

func TestInit_CancelledValidationStillClearsPersistedToken(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	api := &fakeAPI{replies: []profileReply{{err: context.Canceled}}}
	tokens := &ctxStore{}
	require.NoError(t, tokens.Save(context.Background(), "abc123"))
	s, _ := newStore(api, tokens)

	s.Init(ctx)

	assert.False(t, s.Snapshot().IsLoggedIn)
	persisted, err := tokens.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, persisted)
}

func TestLogout_CancelledContextStillClearsPersistedToken(t *testing.T) {
	api := &fakeAPI{replies: []profileReply{{profile: neo}}}
	tokens := &ctxStore{}
	require.NoError(t, tokens.Save(context.Background(), "abc123"))
	s, _ := newStore(api, tokens)
	s.Init(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, s.Logout(ctx))

	persisted, _ := tokens.Load(context.Background())
	assert.Empty(t, persisted)
}

func TestSnapshot_UserIsACopy(t *testing.T) {
	api := &fakeAPI{replies: []profileReply{{profile: neo}}}
	s, _ := newStore(api, tokenstore.NewMemoryStore("abc123"))
	s.Init(context.Background())

	s.Snapshot().User.Username = "smith"
	assert.Equal(t, "neo", s.Snapshot().User.Username)
	assert.Equal(t, "neo", neo.Username)
}

func TestStaleValidation_DiscardedAfterLogout(t *testing.T) {
	release := make(chan struct{})
	api := &fakeAPI{
		replies:       []profileReply{{profile: neo, release: release}},
		profileEnters: make(chan struct{}, 1),
	}
	s, hc := newStore(api, tokenstore.NewMemoryStore("abc123"))
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		s.Init(ctx)
		close(done)
	}()
	<-api.profileEnters

	require.NoError(t, s.Logout(ctx))
	close(release)
	<-done

	snap := s.Snapshot()
	assert.False(t, snap.IsLoggedIn)
	assert.Equal(t, Anonymous, snap.State)
	assert.False(t, snap.Loading)
	assert.Empty(t, hc.DefaultHeader(common.AuthorizationHeaderName))
}

func TestStaleValidation_DiscardedAfterNewerLogin(t *testing.T) {
	release := make(chan struct{})
	trinity := &models.Profile{ID: 2, Username: "trinity"}
	api := &fakeAPI{
		loginToken: "new-token",
		replies: []profileReply{
			{profile: neo, release: release},
			{profile: trinity},
		},
		profileEnters: make(chan struct{}, 2),
	}
	s, hc := newStore(api, tokenstore.NewMemoryStore("old-token"))
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		s.Init(ctx)
		close(done)
	}()
	<-api.profileEnters

	require.NoError(t, s.Login(ctx, "trinity@matrix.io", "pw"))
	close(release)
	<-done

	snap := s.Snapshot()
	require.True(t, snap.IsLoggedIn)
	assert.Equal(t, "trinity", snap.User.Username)
	assert.Equal(t, "new-token", snap.Token)
	assert.Equal(t, "Bearer new-token", hc.DefaultHeader(common.AuthorizationHeaderName))
}

func TestSubscribe_SeesTransitions(t *testing.T) {
	api := &fakeAPI{replies: []profileReply{{err: errors.New("401")}}}
	s, _ := newStore(api, tokenstore.NewMemoryStore("abc123"))
	updates, cancel := s.Subscribe()
	defer cancel()

	s.Init(context.Background())

	select {
	case snap := <-updates:
		// only the latest value is kept
		assert.Equal(t, Anonymous, snap.State)
		assert.False(t, snap.Loading)
	case <-time.After(time.Second):
		t.Fatal("no update delivered")
	}
}

func TestSubscribe_CancelAndClose(t *testing.T) {
	s, _ := newStore(&fakeAPI{}, tokenstore.NewMemoryStore(""))

	a, cancelA := s.Subscribe()
	b, _ := s.Subscribe()

	cancelA()
	cancelA()
	_, open := <-a
	assert.False(t, open)

	s.Close()
	_, open = <-b
	assert.False(t, open)

	c, _ := s.Subscribe()
	_, open = <-c
	assert.False(t, open)
}

func TestSnapshot_JWTClaims(t *testing.T) {
	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": exp.Unix(),
	}).SignedString([]byte("server-secret"))
	require.NoError(t, err)

	api := &fakeAPI{replies: []profileReply{{profile: neo}}}
	s, _ := newStore(api, tokenstore.NewMemoryStore(tok))
	s.Init(context.Background())

	snap := s.Snapshot()
	assert.True(t, exp.Equal(snap.ExpiresAt))
	assert.Equal(t, "1", snap.Subject)
}

func TestSnapshot_OpaqueTokenHasNoClaims(t *testing.T) {
	api := &fakeAPI{replies: []profileReply{{profile: neo}}}
	s, _ := newStore(api, tokenstore.NewMemoryStore("abc123"))
	s.Init(context.Background())

	snap := s.Snapshot()
	assert.True(t, snap.ExpiresAt.IsZero())
	assert.Empty(t, snap.Subject)
}
