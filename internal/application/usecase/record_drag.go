package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/dragkit/internal/application/port"
	"github.com/bnema/dragkit/internal/dnd"
	"github.com/bnema/dragkit/internal/domain/entity"
	"github.com/bnema/dragkit/internal/domain/repository"
	"github.com/bnema/dragkit/internal/logging"
)

const recordQueueSize = 64

// EventSubscriber is the part of the drag bus the journal listens on.
type EventSubscriber interface {
	Subscribe(kind entity.EventKind, h dnd.Handler) func()
}

// RecordDragUseCase persists every finished drag gesture to the journal.
// Writes happen on a background worker so the event loop never waits on disk.
type RecordDragUseCase struct {
	journal repository.DragJournalRepository
	clock   port.Clock

	mu      sync.Mutex
	queue   chan entity.JournalEntry
	done    chan struct{}
	dropped int
}

// NewRecordDragUseCase creates a new RecordDragUseCase.
func NewRecordDragUseCase(journal repository.DragJournalRepository, clock port.Clock) *RecordDragUseCase {
	return &RecordDragUseCase{journal: journal, clock: clock}
}

// Attach subscribes to DragEnd on bus. The returned func unsubscribes and
// blocks until queued entries are written.
func (uc *RecordDragUseCase) Attach(ctx context.Context, bus EventSubscriber) (detach func()) {
	uc.mu.Lock()
	uc.queue = make(chan entity.JournalEntry, recordQueueSize)
	uc.done = make(chan struct{})
	queue, done := uc.queue, uc.done
	uc.mu.Unlock()

	go uc.drain(ctx, queue, done)

	unsubscribe := bus.Subscribe(entity.EventDragEnd, func(ctx context.Context, ev entity.DragEvent) {
		uc.enqueue(ctx, uc.entryFor(ev))
	})

	var once sync.Once
	return func() {
		once.Do(func() {
			unsubscribe()
			uc.mu.Lock()
			close(queue)
			uc.queue = nil
			uc.mu.Unlock()
			<-done
		})
	}
}

func (uc *RecordDragUseCase) enqueue(ctx context.Context, entry entity.JournalEntry) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.queue == nil {
		return
	}
	select {
	case uc.queue <- entry:
	default:
		uc.dropped++
		logging.FromContext(ctx).Warn().
			Str("operation_id", string(entry.OperationID)).
			Int("dropped", uc.dropped).
			Msg("journal queue full, entry dropped")
	}
}

func (uc *RecordDragUseCase) drain(ctx context.Context, queue <-chan entity.JournalEntry, done chan<- struct{}) {
	defer close(done)
	for entry := range queue {
		if err := uc.journal.Record(ctx, entry); err != nil {
			logging.FromContext(ctx).Warn().
				Err(err).
				Str("operation_id", string(entry.OperationID)).
				Msg("failed to record drag")
		}
	}
}

// Execute records a single DragEnd event synchronously.
func (uc *RecordDragUseCase) Execute(ctx context.Context, ev entity.DragEvent) error {
	return uc.journal.Record(ctx, uc.entryFor(ev))
}

func (uc *RecordDragUseCase) entryFor(ev entity.DragEvent) entity.JournalEntry {
	return entity.NewJournalEntry(ev.Operation, uc.clock.Now())
}

// Prune deletes entries older than retentionDays. Zero keeps everything.
func (uc *RecordDragUseCase) Prune(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	cutoff := uc.clock.Now().Add(-time.Duration(retentionDays) * 24 * time.Hour)
	deleted, err := uc.journal.DeleteBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		logging.FromContext(ctx).Info().
			Int64("deleted", deleted).
			Int("retention_days", retentionDays).
			Msg("pruned drag journal")
	}
	return deleted, nil
}
