package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/dragkit/internal/application/port"
	"github.com/bnema/dragkit/internal/domain/entity"
	"github.com/bnema/dragkit/internal/domain/repository"
	"github.com/bnema/dragkit/internal/logging"
)

// LazyDB implements port.DatabaseProvider with lazy initialization.
// The connection is opened on first access so commands that never record
// a gesture skip the WASM compilation and migration cost.
type LazyDB struct {
	dbPath string
	db     *sql.DB
	err    error
	once   sync.Once
	mu     sync.RWMutex
}

var _ port.DatabaseProvider = (*LazyDB)(nil)

// NewLazyDB creates a new lazy database provider.
func NewLazyDB(dbPath string) *LazyDB {
	return &LazyDB{dbPath: dbPath}
}

// DB returns the database connection, initializing it if necessary.
func (l *LazyDB) DB(ctx context.Context) (*sql.DB, error) {
	l.once.Do(func() {
		log := logging.FromContext(ctx)
		log.Debug().Str("path", l.dbPath).Msg("lazy database initialization starting")

		db, err := NewConnection(ctx, l.dbPath)
		l.mu.Lock()
		l.db, l.err = db, err
		l.mu.Unlock()
		if err != nil {
			log.Error().Err(err).Msg("lazy database initialization failed")
		}
	})

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.err != nil {
		return nil, fmt.Errorf("database initialization failed: %w", l.err)
	}
	return l.db, nil
}

// Close closes the database connection if it was initialized.
func (l *LazyDB) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

// IsInitialized returns true if the database has been initialized.
func (l *LazyDB) IsInitialized() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.db != nil
}

// Path returns the database path.
func (l *LazyDB) Path() string {
	return l.dbPath
}

// LazyJournalRepository wraps the journal with lazy database initialization.
type LazyJournalRepository struct {
	provider port.DatabaseProvider
	repo     repository.DragJournalRepository
	once     sync.Once
	initErr  error
}

// NewLazyJournalRepository creates a lazy-loading drag journal.
func NewLazyJournalRepository(provider port.DatabaseProvider) repository.DragJournalRepository {
	return &LazyJournalRepository{provider: provider}
}

func (r *LazyJournalRepository) init(ctx context.Context) error {
	r.once.Do(func() {
		db, err := r.provider.DB(ctx)
		if err != nil {
			r.initErr = err
			return
		}
		r.repo = NewJournalRepository(db)
	})
	return r.initErr
}

func (r *LazyJournalRepository) Record(ctx context.Context, entry entity.JournalEntry) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.Record(ctx, entry)
}

func (r *LazyJournalRepository) GetRecent(ctx context.Context, limit int) ([]entity.JournalEntry, error) {
	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r.repo.GetRecent(ctx, limit)
}

func (r *LazyJournalRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if err := r.init(ctx); err != nil {
		return 0, err
	}
	return r.repo.DeleteBefore(ctx, cutoff)
}
