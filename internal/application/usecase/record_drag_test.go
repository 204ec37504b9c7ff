package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bnema/dragkit/internal/application/usecase"
	"github.com/bnema/dragkit/internal/dnd"
	"github.com/bnema/dragkit/internal/domain/entity"
	"github.com/bnema/dragkit/internal/domain/repository/mocks"
	"github.com/bnema/dragkit/internal/infrastructure/scheduler"
)

func endEvent(id string, cancelled bool) entity.DragEvent {
	return entity.DragEvent{
		Kind: entity.EventDragEnd,
		Operation: entity.OperationSnapshot{
			ID:        entity.OperationID(id),
			Source:    "card-1",
			FromZone:  "todo",
			ToZone:    "done",
			Index:     1,
			HasIndex:  !cancelled,
			Position:  entity.PositionBefore,
			Kinds:     []entity.PayloadKind{entity.KindResource},
			Cancelled: cancelled,
			StartedAt: epoch.Add(-time.Second),
		},
	}
}

func TestRecordDragUseCase_Execute(t *testing.T) {
	ctx := testContext()
	ctrl := gomock.NewController(t)
	journal := mocks.NewMockDragJournalRepository(ctrl)
	clock := scheduler.NewVirtual(epoch)

	var got entity.JournalEntry
	journal.EXPECT().
		Record(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, e entity.JournalEntry) error {
			got = e
			return nil
		})

	uc := usecase.NewRecordDragUseCase(journal, clock)
	require.NoError(t, uc.Execute(ctx, endEvent("op-1", false)))

	assert.Equal(t, entity.OperationID("op-1"), got.OperationID)
	require.NotNil(t, got.Index)
	assert.Equal(t, 1, *got.Index)
	assert.True(t, got.EndedAt.Equal(epoch))
	assert.Equal(t, time.Second, got.Duration())
}

func TestRecordDragUseCase_AttachRecordsDragEndOnly(t *testing.T) {
	ctx := testContext()
	ctrl := gomock.NewController(t)
	journal := mocks.NewMockDragJournalRepository(ctrl)
	clock := scheduler.NewVirtual(epoch)
	bus := dnd.NewBus()

	var recorded []entity.OperationID
	journal.EXPECT().
		Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e entity.JournalEntry) error {
			recorded = append(recorded, e.OperationID)
			return nil
		}).
		Times(2)

	uc := usecase.NewRecordDragUseCase(journal, clock)
	detach := uc.Attach(ctx, bus)

	bus.Publish(ctx, entity.DragEvent{Kind: entity.EventDragStart})
	bus.Publish(ctx, endEvent("op-1", false))
	bus.Publish(ctx, entity.DragEvent{Kind: entity.EventDrag})
	bus.Publish(ctx, endEvent("op-2", true))
	detach()

	assert.Equal(t, []entity.OperationID{"op-1", "op-2"}, recorded)

	// Events after detach are not recorded.
	bus.Publish(ctx, endEvent("op-3", false))
	detach()
}

func TestRecordDragUseCase_WriteErrorsDoNotStopWorker(t *testing.T) {
	ctx := testContext()
	ctrl := gomock.NewController(t)
	journal := mocks.NewMockDragJournalRepository(ctrl)
	bus := dnd.NewBus()

	gomock.InOrder(
		journal.EXPECT().Record(gomock.Any(), gomock.Any()).Return(errors.New("disk full")),
		journal.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil),
	)

	uc := usecase.NewRecordDragUseCase(journal, scheduler.NewVirtual(epoch))
	detach := uc.Attach(ctx, bus)
	bus.Publish(ctx, endEvent("op-1", false))
	bus.Publish(ctx, endEvent("op-2", false))
	detach()
}

func TestRecordDragUseCase_Prune(t *testing.T) {
	ctx := testContext()
	ctrl := gomock.NewController(t)
	journal := mocks.NewMockDragJournalRepository(ctrl)

	journal.EXPECT().
		DeleteBefore(ctx, epoch.Add(-7*24*time.Hour)).
		Return(int64(4), nil)

	uc := usecase.NewRecordDragUseCase(journal, scheduler.NewVirtual(epoch))

	deleted, err := uc.Prune(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(4), deleted)

	// Zero retention never touches the journal.
	deleted, err = uc.Prune(ctx, 0)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestListJournalUseCase_Execute(t *testing.T) {
	ctx := testContext()
	ctrl := gomock.NewController(t)
	journal := mocks.NewMockDragJournalRepository(ctrl)

	journal.EXPECT().
		GetRecent(ctx, usecase.DefaultJournalLimit).
		Return([]entity.JournalEntry{
			{OperationID: "op-3", Cancelled: true},
			{OperationID: "op-2"},
			{OperationID: "op-1"},
		}, nil)
	journal.EXPECT().
		GetRecent(ctx, 5).
		Return(nil, errors.New("locked"))

	uc := usecase.NewListJournalUseCase(journal)

	out, err := uc.Execute(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, out.Entries, 3)
	assert.Equal(t, 2, out.Committed)
	assert.Equal(t, 1, out.Cancelled)

	_, err = uc.Execute(ctx, 5)
	assert.ErrorContains(t, err, "locked")
}
