package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/dragkit/internal/domain/entity"
	"github.com/bnema/dragkit/internal/domain/repository"
)

// DefaultJournalLimit is used when no limit is given.
const DefaultJournalLimit = 50

// ListJournalUseCase reads recent drag gestures from the journal.
type ListJournalUseCase struct {
	journal repository.DragJournalRepository
}

// NewListJournalUseCase creates a new ListJournalUseCase.
func NewListJournalUseCase(journal repository.DragJournalRepository) *ListJournalUseCase {
	return &ListJournalUseCase{journal: journal}
}

// ListJournalOutput holds recent entries and simple aggregates over them.
type ListJournalOutput struct {
	Entries   []entity.JournalEntry
	Committed int
	Cancelled int
}

// Execute returns up to limit entries, newest first.
func (uc *ListJournalUseCase) Execute(ctx context.Context, limit int) (ListJournalOutput, error) {
	if limit <= 0 {
		limit = DefaultJournalLimit
	}
	entries, err := uc.journal.GetRecent(ctx, limit)
	if err != nil {
		return ListJournalOutput{}, fmt.Errorf("list journal: %w", err)
	}

	out := ListJournalOutput{Entries: entries}
	for _, e := range entries {
		if e.Cancelled {
			out.Cancelled++
		} else {
			out.Committed++
		}
	}
	return out, nil
}
