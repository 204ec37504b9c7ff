package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/bnema/dragkit/internal/domain/entity"
	"github.com/bnema/dragkit/internal/domain/repository"
	"github.com/bnema/dragkit/internal/infrastructure/persistence/sqlite/sqlc"
	"github.com/bnema/dragkit/internal/logging"
)

const kindSeparator = ","

type journalRepo struct {
	queries *sqlc.Queries
}

// NewJournalRepository creates a new SQLite-backed drag journal.
func NewJournalRepository(db *sql.DB) repository.DragJournalRepository {
	return &journalRepo{queries: sqlc.New(db)}
}

func (r *journalRepo) Record(ctx context.Context, entry entity.JournalEntry) error {
	log := logging.FromContext(ctx)
	log.Debug().
		Str("operation_id", string(entry.OperationID)).
		Str("to_zone", string(entry.ToZone)).
		Bool("cancelled", entry.Cancelled).
		Msg("recording drag")

	var index sql.NullInt64
	if entry.Index != nil {
		index = sql.NullInt64{Int64: int64(*entry.Index), Valid: true}
	}
	var cancelled int64
	if entry.Cancelled {
		cancelled = 1
	}

	return r.queries.InsertJournalEntry(ctx, sqlc.InsertJournalEntryParams{
		OperationID: string(entry.OperationID),
		SourceID:    string(entry.Source),
		FromZone:    string(entry.FromZone),
		ToZone:      string(entry.ToZone),
		AreaID:      string(entry.Area),
		DropIndex:   index,
		Position:    entry.Position.String(),
		Kinds:       joinKinds(entry.Kinds),
		Cancelled:   cancelled,
		StartedAt:   entry.StartedAt.UnixMilli(),
		EndedAt:     entry.EndedAt.UnixMilli(),
	})
}

func (r *journalRepo) GetRecent(ctx context.Context, limit int) ([]entity.JournalEntry, error) {
	if limit <= 0 {
		return []entity.JournalEntry{}, nil
	}
	rows, err := r.queries.ListRecentJournalEntries(ctx, int64(limit))
	if err != nil {
		return nil, err
	}

	entries := make([]entity.JournalEntry, len(rows))
	for i, row := range rows {
		entries[i] = journalFromRow(row)
	}
	return entries, nil
}

func (r *journalRepo) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.queries.DeleteJournalEntriesBefore(ctx, cutoff.UnixMilli())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func journalFromRow(row sqlc.DragJournal) entity.JournalEntry {
	entry := entity.JournalEntry{
		OperationID: entity.OperationID(row.OperationID),
		Source:      entity.SourceID(row.SourceID),
		FromZone:    entity.ZoneID(row.FromZone),
		ToZone:      entity.ZoneID(row.ToZone),
		Area:        entity.AreaID(row.AreaID),
		Position:    entity.ParseDropPosition(row.Position),
		Kinds:       splitKinds(row.Kinds),
		Cancelled:   row.Cancelled != 0,
		StartedAt:   time.UnixMilli(row.StartedAt),
		EndedAt:     time.UnixMilli(row.EndedAt),
	}
	if row.DropIndex.Valid {
		idx := int(row.DropIndex.Int64)
		entry.Index = &idx
	}
	return entry
}

func joinKinds(kinds []entity.PayloadKind) string {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = string(k)
	}
	return strings.Join(parts, kindSeparator)
}

func splitKinds(s string) []entity.PayloadKind {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, kindSeparator)
	kinds := make([]entity.PayloadKind, len(parts))
	for i, p := range parts {
		kinds[i] = entity.PayloadKind(p)
	}
	return kinds
}
