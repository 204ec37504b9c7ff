package bridge_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dragkit/internal/application/port"
	"github.com/bnema/dragkit/internal/application/port/mocks"
	"github.com/bnema/dragkit/internal/bridge"
	"github.com/bnema/dragkit/internal/domain/entity"
	"github.com/bnema/dragkit/internal/infrastructure/scheduler"
	"github.com/bnema/dragkit/internal/logging"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

type fixture struct {
	ctx    context.Context
	clock  *scheduler.Virtual
	page   *mocks.MockPage
	host   *mocks.MockHostChannel
	bridge *bridge.Bridge
}

func newFixture(t *testing.T, opts bridge.Options) *fixture {
	t.Helper()

	f := &fixture{
		ctx:   testContext(),
		clock: scheduler.NewVirtual(epoch),
		page:  mocks.NewMockPage(t),
		host:  mocks.NewMockHostChannel(t),
	}
	opts.Clock = f.clock
	opts.NewID = func() string { return "gesture" }
	f.bridge = bridge.New(f.ctx, f.page, f.host, bridge.NewInbox(), opts)
	return f
}

func dropEvent(appID string) *entity.NativeEvent {
	transfer := entity.NewTransfer()
	transfer.SetData(entity.MIMEText, "fallback")
	if appID != "" {
		transfer.SetData(bridge.DefaultAppKey, appID)
	}
	return &entity.NativeEvent{
		Type:     entity.EventTypeDrop,
		Client:   entity.Point{X: 120, Y: 48},
		Screen:   entity.Point{X: 920, Y: 448},
		TargetID: "editor",
		Transfer: transfer,
	}
}

func htmlMeta() port.PayloadMeta {
	return port.PayloadMeta{
		Token:    "tok-1",
		Identity: port.PayloadIdentity{ID: "note-9", Kind: entity.KindHTML},
	}
}

func TestBridge_PassThroughWithoutAppID(t *testing.T) {
	f := newFixture(t, bridge.Options{})
	ev := dropEvent("")

	f.page.EXPECT().Dispatch(mock.MatchedBy(func(out *entity.NativeEvent) bool {
		return out.Type == entity.EventTypeDrop && out.Synthetic && out.Transfer == ev.Transfer
	})).Once()

	consumed := f.bridge.HandleEvent(f.ctx, ev)
	f.bridge.Wait()

	assert.True(t, consumed)
	assert.True(t, ev.PropagationStopped())
	assert.Empty(t, f.clock.Sleeps(), "no lookup without an app id")
}

func TestBridge_MissingMetadataGivesUpAfterBoundedRetry(t *testing.T) {
	f := newFixture(t, bridge.Options{})

	f.bridge.HandleEvent(f.ctx, dropEvent("app-1"))
	f.bridge.Wait()

	assert.Equal(t, []time.Duration{5 * time.Millisecond, 5 * time.Millisecond, 5 * time.Millisecond, 5 * time.Millisecond}, f.clock.Sleeps())
	assert.LessOrEqual(t, f.clock.Now().Sub(epoch), 25*time.Millisecond)
}

func TestBridge_ExchangesTokenAndRedispatches(t *testing.T) {
	f := newFixture(t, bridge.Options{Correlate: true})
	f.bridge.Inbox().Push("app-1", htmlMeta())

	f.host.EXPECT().ReadPayloadBytes(mock.Anything, "tok-1", htmlMeta().Identity).
		Return([]byte("<p>Hello <b>there</b></p>"), nil).Once()

	var got *entity.NativeEvent
	f.page.EXPECT().Dispatch(mock.Anything).Run(func(ev *entity.NativeEvent) { got = ev }).Once()

	ev := dropEvent("app-1")
	f.bridge.HandleEvent(f.ctx, ev)
	f.bridge.Wait()

	require.NotNil(t, got)
	assert.Equal(t, entity.EventTypeDrop, got.Type)
	assert.True(t, got.Synthetic)
	assert.Equal(t, ev.Client, got.Client)
	assert.Equal(t, ev.Screen, got.Screen)
	assert.Equal(t, "editor", got.TargetID)
	assert.Equal(t, "<p>Hello <b>there</b></p>", got.Transfer.GetData(entity.MIMEHTML))
	assert.Equal(t, "Hello there", got.Transfer.GetData(entity.MIMEText))
	assert.False(t, got.Transfer.HasType(bridge.DefaultAppKey))
	assert.True(t, ev.DefaultPrevented())
	assert.Equal(t, 0, f.bridge.Inbox().Len(), "metadata is consumed")
}

func TestBridge_MetadataPushedDuringRetryIsFound(t *testing.T) {
	f := newFixture(t, bridge.Options{})
	inbox := f.bridge.Inbox()

	// The metadata shows up while the bridge waits between probes.
	sleeps := 0
	clock := &pushingClock{Virtual: f.clock, onSleep: func() {
		sleeps++
		if sleeps == 2 {
			inbox.Push("app-1", htmlMeta())
		}
	}}
	b := bridge.New(f.ctx, f.page, f.host, inbox, bridge.Options{Clock: clock})

	f.host.EXPECT().ReadPayloadBytes(mock.Anything, "tok-1", mock.Anything).Return([]byte("hi"), nil).Once()
	f.page.EXPECT().Dispatch(mock.Anything).Once()

	b.HandleEvent(f.ctx, dropEvent("app-1"))
	b.Wait()

	assert.Len(t, f.clock.Sleeps(), 2)
}

type pushingClock struct {
	*scheduler.Virtual
	onSleep func()
}

func (c *pushingClock) Sleep(ctx context.Context, d time.Duration) error {
	err := c.Virtual.Sleep(ctx, d)
	c.onSleep()
	return err
}

func TestBridge_FailsClosedOnHostError(t *testing.T) {
	f := newFixture(t, bridge.Options{})
	f.bridge.Inbox().Push("app-1", htmlMeta())

	f.host.EXPECT().ReadPayloadBytes(mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("host went away")).Once()

	f.bridge.HandleEvent(f.ctx, dropEvent("app-1"))
	f.bridge.Wait()

	// The lock was released: the next drop goes through.
	f.page.EXPECT().Dispatch(mock.Anything).Once()
	f.bridge.HandleEvent(f.ctx, dropEvent(""))
	f.bridge.Wait()
}

func TestBridge_FailsClosedOnNullPayloadAndMalformedData(t *testing.T) {
	f := newFixture(t, bridge.Options{})

	f.bridge.Inbox().Push("app-1", htmlMeta())
	f.host.EXPECT().ReadPayloadBytes(mock.Anything, mock.Anything, mock.Anything).Return(nil, nil).Once()
	f.bridge.HandleEvent(f.ctx, dropEvent("app-1"))
	f.bridge.Wait()

	f.bridge.Inbox().Push("app-2", port.PayloadMeta{Token: "tok-2", Identity: port.PayloadIdentity{ID: "s", Kind: entity.KindString}})
	f.host.EXPECT().ReadPayloadBytes(mock.Anything, "tok-2", mock.Anything).Return([]byte{0xff}, nil).Once()
	f.bridge.HandleEvent(f.ctx, dropEvent("app-2"))
	f.bridge.Wait()
}

func TestBridge_RejectsStaleResponse(t *testing.T) {
	tests := []struct {
		name      string
		correlate bool
		dispatch  bool
	}{
		{name: "correlated", correlate: true, dispatch: false},
		{name: "uncorrelated", correlate: false, dispatch: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, bridge.Options{Correlate: tt.correlate})
			f.bridge.Inbox().Push("app-1", htmlMeta())

			f.host.EXPECT().ReadPayloadBytes(mock.Anything, "tok-1", mock.Anything).
				RunAndReturn(func(ctx context.Context, _ string, _ port.PayloadIdentity) ([]byte, error) {
					// The user cancels while the host is answering.
					f.bridge.Cancel(ctx)
					return []byte("<p>late</p>"), nil
				}).Once()
			if tt.dispatch {
				f.page.EXPECT().Dispatch(mock.Anything).Once()
			}

			f.bridge.HandleEvent(f.ctx, dropEvent("app-1"))
			f.bridge.Wait()
		})
	}
}

func TestBridge_SingleFlightIgnoresOverlappingDrops(t *testing.T) {
	f := newFixture(t, bridge.Options{})
	f.bridge.Inbox().Push("app-1", htmlMeta())

	release := make(chan struct{})
	entered := make(chan struct{})
	f.host.EXPECT().ReadPayloadBytes(mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(context.Context, string, port.PayloadIdentity) ([]byte, error) {
			close(entered)
			<-release
			return []byte("<p>once</p>"), nil
		}).Once()
	f.page.EXPECT().Dispatch(mock.Anything).Once()

	f.bridge.HandleEvent(f.ctx, dropEvent("app-1"))
	<-entered

	second := dropEvent("")
	consumed := f.bridge.HandleEvent(f.ctx, second)
	assert.True(t, consumed)
	assert.False(t, second.DefaultPrevented(), "overlapping drop is ignored")

	close(release)
	f.bridge.Wait()
}

func TestBridge_CompatHostReceivesPaste(t *testing.T) {
	f := newFixture(t, bridge.Options{CompatHosts: []string{"docs.example.com"}})
	f.bridge.Inbox().Push("app-1", htmlMeta())

	f.host.EXPECT().ReadPayloadBytes(mock.Anything, mock.Anything, mock.Anything).
		Return([]byte("<p>first</p><p>second</p>"), nil).Once()
	f.page.EXPECT().Host().Return("sheet.docs.example.com")

	var got *entity.NativeEvent
	f.page.EXPECT().Dispatch(mock.Anything).Run(func(ev *entity.NativeEvent) { got = ev }).Once()

	f.bridge.HandleEvent(f.ctx, dropEvent("app-1"))
	f.bridge.Wait()

	require.NotNil(t, got)
	assert.Equal(t, entity.EventTypePaste, got.Type)
	assert.Equal(t, "first\nsecond", got.Transfer.GetData(entity.MIMEText))
	assert.False(t, got.Transfer.HasType(entity.MIMEHTML))
}

func TestBridge_CompatHostKeepsDropForPlainText(t *testing.T) {
	f := newFixture(t, bridge.Options{CompatHosts: []string{"docs.example.com"}})
	f.bridge.Inbox().Push("app-1", port.PayloadMeta{Token: "t", Identity: port.PayloadIdentity{ID: "s", Kind: entity.KindString}})

	f.host.EXPECT().ReadPayloadBytes(mock.Anything, mock.Anything, mock.Anything).Return([]byte("plain"), nil).Once()
	f.page.EXPECT().Host().Return("docs.example.com")
	f.page.EXPECT().Dispatch(mock.MatchedBy(func(ev *entity.NativeEvent) bool {
		return ev.Type == entity.EventTypeDrop
	})).Once()

	f.bridge.HandleEvent(f.ctx, dropEvent("app-1"))
	f.bridge.Wait()
}

func TestBridge_EnterLeaveAreDepthCountedAndRedispatched(t *testing.T) {
	f := newFixture(t, bridge.Options{})

	var dispatched []*entity.NativeEvent
	f.page.EXPECT().Dispatch(mock.Anything).Run(func(ev *entity.NativeEvent) {
		dispatched = append(dispatched, ev)
	}).Times(4)

	enter := &entity.NativeEvent{Type: entity.EventTypeDragEnter}
	assert.True(t, f.bridge.HandleEvent(f.ctx, enter))
	f.bridge.HandleEvent(f.ctx, &entity.NativeEvent{Type: entity.EventTypeDragEnter})
	assert.Equal(t, 2, f.bridge.Depth())

	f.bridge.HandleEvent(f.ctx, &entity.NativeEvent{Type: entity.EventTypeDragLeave})
	f.bridge.HandleEvent(f.ctx, &entity.NativeEvent{Type: entity.EventTypeDragLeave})
	assert.Equal(t, 0, f.bridge.Depth())

	f.page.EXPECT().Dispatch(mock.Anything).Once()
	f.bridge.HandleEvent(f.ctx, &entity.NativeEvent{Type: entity.EventTypeDragLeave})
	assert.Equal(t, 0, f.bridge.Depth(), "depth never goes negative")

	assert.True(t, enter.PropagationStopped())
	for _, ev := range dispatched {
		assert.True(t, ev.Synthetic)
		assert.False(t, ev.Transfer.IsEmpty(), "hosted pages see a non-empty transfer")
	}

	over := &entity.NativeEvent{Type: entity.EventTypeDragOver}
	assert.False(t, f.bridge.HandleEvent(f.ctx, over))
	assert.True(t, over.DefaultPrevented())

	assert.False(t, f.bridge.HandleEvent(f.ctx, &entity.NativeEvent{Type: entity.EventTypeDrop, Synthetic: true}), "own events are not intercepted")
}

func dragEnd(effect string) *entity.NativeEvent {
	transfer := entity.NewTransfer()
	transfer.DropEffect = effect
	return &entity.NativeEvent{Type: entity.EventTypeDragEnd, Transfer: transfer}
}

func TestBridge_DragEndDuringExchange(t *testing.T) {
	tests := []struct {
		name     string
		effect   string
		dispatch bool
	}{
		{name: "cancelled drag discards the response", effect: entity.DropEffectNone, dispatch: false},
		{name: "completed drop still delivers", effect: "copy", dispatch: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, bridge.Options{Correlate: true})
			f.bridge.Inbox().Push("app-1", htmlMeta())

			release := make(chan struct{})
			entered := make(chan struct{})
			f.host.EXPECT().ReadPayloadBytes(mock.Anything, "tok-1", mock.Anything).
				RunAndReturn(func(context.Context, string, port.PayloadIdentity) ([]byte, error) {
					close(entered)
					<-release
					return []byte("<p>late</p>"), nil
				}).Once()
			if tt.dispatch {
				f.page.EXPECT().Dispatch(mock.Anything).Once()
			}

			f.bridge.HandleEvent(f.ctx, dropEvent("app-1"))
			<-entered

			end := dragEnd(tt.effect)
			assert.False(t, f.bridge.HandleEvent(f.ctx, end), "dragend still reaches the page")
			assert.Equal(t, 0, f.bridge.Depth())

			close(release)
			f.bridge.Wait()
		})
	}
}

func TestBridge_DragEndWithoutExchangeEndsGesture(t *testing.T) {
	f := newFixture(t, bridge.Options{Correlate: true})
	f.page.EXPECT().Dispatch(mock.Anything).Times(3)

	f.bridge.HandleEvent(f.ctx, &entity.NativeEvent{Type: entity.EventTypeDragEnter})
	f.bridge.HandleEvent(f.ctx, &entity.NativeEvent{Type: entity.EventTypeDragEnter})
	require.Equal(t, 2, f.bridge.Depth())

	f.bridge.HandleEvent(f.ctx, dragEnd("copy"))
	assert.Equal(t, 0, f.bridge.Depth())

	// the next enter opens a new gesture
	f.bridge.HandleEvent(f.ctx, &entity.NativeEvent{Type: entity.EventTypeDragEnter})
	assert.Equal(t, 1, f.bridge.Depth())

	drag := &entity.NativeEvent{Type: entity.EventTypeDrag}
	assert.False(t, f.bridge.HandleEvent(f.ctx, drag))
	assert.False(t, drag.PropagationStopped())
}
