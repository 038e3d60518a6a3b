// Package session owns the client-side authentication state: the bearer
// token, the profile it resolves to, and the transitions between them.
//
// A token change (boot, login, logout) always triggers a profile fetch that
// the caller awaits. Every change bumps a generation counter, and a fetch
// that completes after a newer change is discarded, so the outcome follows
// token identity rather than response arrival order.
package session
