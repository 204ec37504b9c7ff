// Package bridge carries drag gestures into an isolated rendering context.
// It intercepts native drag events at document level, exchanges the
// one-time token pushed by the host for the real payload, and re-dispatches
// a synthetic drop the hosted page can handle natively.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/bnema/dragkit/internal/application/port"
	"github.com/bnema/dragkit/internal/domain/entity"
	"github.com/bnema/dragkit/internal/logging"
)

// DefaultAppKey is the transfer type carrying the application identifier.
const DefaultAppKey = "application/x-dragkit-id"

// Options configures a bridge.
type Options struct {
	AppKey      string
	Retry       RetryPolicy
	CompatHosts []string
	// Correlate rejects payload responses that arrive after their gesture ended.
	Correlate bool
	// Clock paces lookup retries and is required.
	Clock port.Clock
	// Post runs fn on the page event loop. Nil dispatches from the exchange goroutine.
	Post  func(fn func())
	NewID func() string
}

type gesture struct {
	generation uint64
	id         string
}

// Bridge is installed once per isolated context.
type Bridge struct {
	page  port.Page
	host  port.HostChannel
	inbox *Inbox
	opts  Options

	// drop admits a single drop exchange at a time.
	drop *semaphore.Weighted
	wg   sync.WaitGroup

	mu      sync.Mutex
	depth   int
	current gesture
	// pending is the generation of the exchange in flight, 0 when idle.
	pending uint64
}

// New creates a bridge for page talking to host.
func New(ctx context.Context, page port.Page, host port.HostChannel, inbox *Inbox, opts Options) *Bridge {
	if opts.AppKey == "" {
		opts.AppKey = DefaultAppKey
	}
	if opts.Retry.Attempts <= 0 {
		opts.Retry = DefaultRetryPolicy()
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if inbox == nil {
		inbox = NewInbox()
	}

	logging.FromContext(ctx).Debug().
		Str("app_key", opts.AppKey).
		Int("retry_attempts", opts.Retry.Attempts).
		Dur("retry_delay", opts.Retry.Delay).
		Bool("correlate", opts.Correlate).
		Msg("installing drag bridge")

	return &Bridge{
		page:  page,
		host:  host,
		inbox: inbox,
		opts:  opts,
		drop:  semaphore.NewWeighted(1),
	}
}

// Inbox returns the metadata inbox the host pushes into.
func (b *Bridge) Inbox() *Inbox { return b.inbox }

// Depth returns the enter/leave nesting depth.
func (b *Bridge) Depth() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.depth
}

// Wait blocks until every pending drop exchange has finished.
func (b *Bridge) Wait() { b.wg.Wait() }

// Cancel ends the current gesture. A payload response still in flight
// for it is discarded when correlation is enabled.
func (b *Bridge) Cancel(ctx context.Context) {
	b.mu.Lock()
	b.cancelLocked()
	b.mu.Unlock()

	logging.FromContext(ctx).Debug().Msg("bridge gesture cancelled")
}

func (b *Bridge) cancelLocked() {
	b.depth = 0
	b.current = gesture{generation: b.current.generation + 1}
}

// HandleEvent is the capture-phase listener. It returns true when the event
// was consumed and must not reach the page's own listeners.
func (b *Bridge) HandleEvent(ctx context.Context, ev *entity.NativeEvent) bool {
	if ev == nil || ev.Synthetic {
		return false
	}

	switch ev.Type {
	case entity.EventTypeDragOver:
		ev.PreventDefault()
		return false
	case entity.EventTypeDrag:
		// observed only; the page keeps handling its own drags
		return false
	case entity.EventTypeDragEnd:
		b.end(ctx, ev)
		return false
	case entity.EventTypeDragEnter:
		b.enter(ctx, ev)
		return true
	case entity.EventTypeDragLeave:
		b.leave(ctx, ev)
		return true
	case entity.EventTypeDrop:
		b.handleDrop(ctx, ev)
		return true
	default:
		return false
	}
}

func (b *Bridge) enter(ctx context.Context, ev *entity.NativeEvent) {
	b.mu.Lock()
	b.depth++
	first := b.depth == 1
	if first {
		b.startGestureLocked()
	}
	g := b.current
	b.mu.Unlock()

	if first {
		logging.FromContext(ctx).Debug().Str("correlation_id", g.id).Msg("drag entered page")
	}
	ev.StopImmediatePropagation()
	b.page.Dispatch(ev.Redispatch(ev.Type, nonEmptyTransfer(ev.Transfer)))
}

func (b *Bridge) leave(ctx context.Context, ev *entity.NativeEvent) {
	b.mu.Lock()
	left := false
	if b.depth > 0 {
		b.depth--
		if b.depth == 0 {
			left = true
			b.current = gesture{generation: b.current.generation + 1}
		}
	}
	b.mu.Unlock()

	if left {
		logging.FromContext(ctx).Debug().Msg("drag left page")
	}
	ev.StopImmediatePropagation()
	b.page.Dispatch(ev.Redispatch(ev.Type, nonEmptyTransfer(ev.Transfer)))
}

// end closes the gesture on dragend. A gesture whose drop exchange is
// still in flight stays current unless the native drop effect says the
// drag was cancelled.
func (b *Bridge) end(ctx context.Context, ev *entity.NativeEvent) {
	b.mu.Lock()
	pending := b.pending != 0 && b.pending == b.current.generation
	cancelled := !pending || dragCancelled(ev)
	if cancelled {
		b.cancelLocked()
	} else {
		b.depth = 0
	}
	b.mu.Unlock()

	logging.FromContext(ctx).Debug().
		Bool("exchange_pending", pending).
		Bool("cancelled", cancelled).
		Msg("drag ended")
}

func dragCancelled(ev *entity.NativeEvent) bool {
	return ev.Transfer == nil || ev.Transfer.DropEffect == entity.DropEffectNone
}

func (b *Bridge) startGestureLocked() {
	b.current = gesture{generation: b.current.generation + 1, id: b.opts.NewID()}
}

func (b *Bridge) clearPending(g gesture) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pending == g.generation {
		b.pending = 0
	}
}

func (b *Bridge) isCurrent(g gesture) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current.generation == g.generation
}

func (b *Bridge) handleDrop(ctx context.Context, ev *entity.NativeEvent) {
	log := logging.FromContext(ctx)
	ev.StopImmediatePropagation()

	if !b.drop.TryAcquire(1) {
		log.Debug().Msg("drop ignored, exchange already in flight")
		return
	}
	ev.PreventDefault()

	b.mu.Lock()
	if b.depth == 0 {
		b.startGestureLocked()
	}
	b.depth = 0
	g := b.current
	b.mu.Unlock()

	appID := ev.Transfer.GetData(b.opts.AppKey)
	if appID == "" {
		b.page.Dispatch(ev.Redispatch(entity.EventTypeDrop, ev.Transfer))
		b.drop.Release(1)
		return
	}

	b.mu.Lock()
	b.pending = g.generation
	b.mu.Unlock()

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer b.drop.Release(1)
		defer b.clearPending(g)

		ctx := logging.WithComponent(ctx, "bridge")
		err := b.exchange(ctx, ev, appID, g)
		switch {
		case err == nil:
		case errors.Is(err, entity.ErrTokenNotFound), errors.Is(err, entity.ErrStaleResponse):
			logging.FromContext(ctx).Debug().Err(err).Str("correlation_id", g.id).Msg("drop aborted")
		default:
			logging.FromContext(ctx).Warn().Err(err).Str("correlation_id", g.id).Msg("drop failed")
		}
	}()
}

// exchange resolves the pushed metadata, fetches the payload and
// re-dispatches it. Any error means nothing was dispatched.
func (b *Bridge) exchange(ctx context.Context, ev *entity.NativeEvent, appID string, g gesture) error {
	meta, found, attempts := Retry(ctx, b.opts.Clock, b.opts.Retry, func() (port.PayloadMeta, bool) {
		return b.inbox.Take(appID)
	})
	if !found {
		return fmt.Errorf("metadata for %s after %d attempts: %w", appID, attempts, entity.ErrTokenNotFound)
	}
	logging.FromContext(ctx).Debug().
		Str("app_id", appID).
		Int("attempts", attempts).
		Str("payload_id", meta.Identity.ID).
		Msg("payload metadata found")

	data, err := b.host.ReadPayloadBytes(ctx, meta.Token, meta.Identity)
	if err != nil {
		return fmt.Errorf("read payload %s: %w", meta.Identity.ID, err)
	}
	if data == nil {
		return fmt.Errorf("read payload %s: %w", meta.Identity.ID, entity.ErrTokenNotFound)
	}
	if b.opts.Correlate && !b.isCurrent(g) {
		return fmt.Errorf("payload %s for gesture %s: %w", meta.Identity.ID, g.id, entity.ErrStaleResponse)
	}

	transfer, err := Reconstruct(meta.Identity, data)
	if err != nil {
		return err
	}

	out := ev.Redispatch(entity.EventTypeDrop, transfer)
	if len(b.opts.CompatHosts) > 0 && matchesHost(b.page.Host(), b.opts.CompatHosts) {
		if paste, ok := compatPaste(ev, transfer); ok {
			out = paste
		}
	}

	if b.opts.Post != nil {
		b.opts.Post(func() { b.page.Dispatch(out) })
	} else {
		b.page.Dispatch(out)
	}
	return nil
}

// nonEmptyTransfer returns t, or a placeholder when t carries nothing.
// Some pages ignore enter/leave events whose transfer is empty.
func nonEmptyTransfer(t *entity.Transfer) *entity.Transfer {
	if !t.IsEmpty() {
		return t
	}
	placeholder := entity.NewTransfer()
	placeholder.SetData(entity.MIMEText, "")
	return placeholder
}
