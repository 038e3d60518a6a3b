// Package metadata persists small client-side values (the session token and
// its bookkeeping) in the local SQLite database.
package metadata
