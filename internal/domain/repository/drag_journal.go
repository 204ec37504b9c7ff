package repository

//go:generate mockgen -destination=mocks/mock_drag_journal.go -package=mocks github.com/bnema/dragkit/internal/domain/repository DragJournalRepository

import (
	"context"
	"time"

	"github.com/bnema/dragkit/internal/domain/entity"
)

// DragJournalRepository persists finished drag gestures.
type DragJournalRepository interface {
	Record(ctx context.Context, entry entity.JournalEntry) error
	GetRecent(ctx context.Context, limit int) ([]entity.JournalEntry, error)

	// DeleteBefore removes entries that ended before cutoff.
	// Returns number of deleted entries.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
