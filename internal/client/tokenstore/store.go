// Package tokenstore keeps the bearer token between runs of the client.
package tokenstore

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/openmat/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/openmat/internal/common"
	"github.com/dmitrijs2005/openmat/internal/dbx"
)

// Store is durable storage for a single token. Load returns "" when nothing
// is stored; Clear on an empty store is not an error.
type Store interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// SQLiteStore keeps the token in the metadata table under the "token" key.
type SQLiteStore struct {
	db   *sql.DB
	repo metadata.Repository
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, repo: metadata.NewSQLiteRepository(db)}
}

func (s *SQLiteStore) Load(ctx context.Context) (string, error) {
	e, err := s.repo.Get(ctx, common.TokenMetadataKey)
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	if e == nil {
		return "", nil
	}
	return string(e.Value), nil
}

// SavedAt reports when the stored token was written; zero when absent.
func (s *SQLiteStore) SavedAt(ctx context.Context) (time.Time, error) {
	e, err := s.repo.Get(ctx, common.TokenMetadataKey)
	if err != nil || e == nil {
		return time.Time{}, err
	}
	return e.UpdatedAt, nil
}

// Save replaces the stored token. An empty token is the same as Clear.
func (s *SQLiteStore) Save(ctx context.Context, token string) error {
	if token == "" {
		return s.Clear(ctx)
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, common.TokenMetadataKey); err != nil {
			return err
		}
		return repo.Put(ctx, common.TokenMetadataKey, []byte(token))
	})
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, common.TokenMetadataKey); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// MemoryStore is a process-local Store, used when no database is configured
// and in tests.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

func (m *MemoryStore) Load(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *MemoryStore) Save(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
