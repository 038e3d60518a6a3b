package session

import (
	"time"

	"github.com/dmitrijs2005/openmat/internal/client/models"
)

type State int

const (
	Uninitialized State = iota
	Validating
	Authenticated
	Anonymous
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Validating:
		return "validating"
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Snapshot is a consistent read of the session. User is a copy; mutating it
// does not affect the store.
type Snapshot struct {
	Token      string
	User       *models.Profile
	IsLoggedIn bool
	Loading    bool
	State      State

	// Generation changes on every login and logout. Pass it to
	// Store.UpdateUserAt to drop updates that outlived their session.
	Generation uint64

	// ExpiresAt and Subject come from the token's claims when it is a JWT.
	// Both are zero for opaque tokens.
	ExpiresAt time.Time
	Subject   string
}
