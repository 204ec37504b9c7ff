package usecase

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/bnema/dragkit/internal/application/port"
	"github.com/bnema/dragkit/internal/bridge"
	"github.com/bnema/dragkit/internal/domain/entity"
	"github.com/bnema/dragkit/internal/host"
	"github.com/bnema/dragkit/internal/infrastructure/scene"
	"github.com/bnema/dragkit/internal/infrastructure/scheduler"
	"github.com/bnema/dragkit/internal/infrastructure/wire"
	"github.com/bnema/dragkit/internal/logging"
)

const (
	handoffTimeout = 5 * time.Second
	settleAttempts = 200
	settleDelay    = time.Millisecond
)

// HandoffOptions configures both ends of a cross-boundary drop.
type HandoffOptions struct {
	AppKey        string
	Retry         bridge.RetryPolicy
	CompatHosts   []string
	Correlate     bool
	TokenTTL      time.Duration
	FrameInterval time.Duration
}

// HandoffInput describes one payload dropped into an isolated page.
type HandoffInput struct {
	PageHost string
	AppID    string
	Identity port.PayloadIdentity
	Data     []byte
	At       entity.Point
	TargetID string
	// SkipOffer drops without the host pushing metadata first.
	SkipOffer bool
}

// HandoffOutput reports what the page received.
type HandoffOutput struct {
	Token     string
	Delivered bool
	// Event is the last event the page's own listeners saw.
	Event *entity.NativeEvent
}

// HandoffUseCase runs a host registry and a page bridge connected by the
// wire protocol, with the bridge on a live event loop.
type HandoffUseCase struct {
	opts HandoffOptions
}

// NewHandoffUseCase creates a new HandoffUseCase.
func NewHandoffUseCase(opts HandoffOptions) *HandoffUseCase {
	return &HandoffUseCase{opts: opts}
}

// Execute offers the payload from the host, then delivers a native drop
// carrying only the application id to the bridge.
func (uc *HandoffUseCase) Execute(ctx context.Context, in HandoffInput) (*HandoffOutput, error) {
	if in.AppID == "" {
		return nil, errors.New("handoff: app id is required")
	}
	if in.Identity.ID == "" {
		in.Identity.ID = in.AppID
	}

	ctx, cancel := context.WithTimeout(ctx, handoffTimeout)
	defer cancel()
	ctx = logging.WithComponent(ctx, "handoff")
	log := logging.FromContext(ctx)

	loop := scheduler.NewLoop(uc.opts.FrameInterval)
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		_ = loop.Run(ctx)
	}()
	defer func() {
		cancel()
		<-loopDone
	}()

	registry, err := host.NewRegistry(nil, uc.opts.TokenTTL, loop)
	if err != nil {
		return nil, fmt.Errorf("handoff: %w", err)
	}
	server := wire.NewServer(registry)

	hostConn, pageConn := net.Pipe()
	serveDone := make(chan error, 1)
	go func() { serveDone <- server.Serve(ctx, hostConn) }()

	page := scene.NewPage(in.PageHost)
	inbox := bridge.NewInbox()
	client := wire.NewClient(ctx, pageConn, inbox)
	defer func() {
		_ = client.Close()
		if serr := <-serveDone; serr != nil {
			log.Warn().Err(serr).Msg("host connection ended with error")
		}
	}()

	br := bridge.New(ctx, page, client, inbox, bridge.Options{
		AppKey:      uc.opts.AppKey,
		Retry:       uc.opts.Retry,
		CompatHosts: uc.opts.CompatHosts,
		Correlate:   uc.opts.Correlate,
		Clock:       loop,
		Post:        loop.Post,
	})

	if _, ok, _ := bridge.Retry(ctx, loop, settle(), func() (int, bool) {
		n := server.Sessions()
		return n, n > 0
	}); !ok {
		return nil, errors.New("handoff: bridge did not connect")
	}

	out := &HandoffOutput{}
	if !in.SkipOffer {
		meta, err := registry.Offer(ctx, server, in.AppID, in.Identity, in.Data)
		if err != nil {
			return nil, fmt.Errorf("handoff: offer: %w", err)
		}
		out.Token = meta.Token
		// the host pushes on drag start, long before the drop lands
		bridge.Retry(ctx, loop, settle(), func() (int, bool) {
			n := inbox.Len()
			return n, n > 0
		})
	}

	appKey := uc.opts.AppKey
	if appKey == "" {
		appKey = bridge.DefaultAppKey
	}
	transfer := entity.NewTransfer()
	transfer.SetData(appKey, in.AppID)
	drop := &entity.NativeEvent{
		Type:     entity.EventTypeDrop,
		Client:   in.At,
		Page:     in.At,
		TargetID: in.TargetID,
		Transfer: transfer,
	}

	handled := make(chan struct{})
	loop.Post(func() {
		br.HandleEvent(ctx, drop)
		close(handled)
	})
	select {
	case <-handled:
	case <-ctx.Done():
		return nil, fmt.Errorf("handoff: %w", ctx.Err())
	}
	br.Wait()

	// the exchange posts its dispatch to the loop; run one more task behind it
	flushed := make(chan struct{})
	loop.Post(func() { close(flushed) })
	select {
	case <-flushed:
	case <-ctx.Done():
		return nil, fmt.Errorf("handoff: %w", ctx.Err())
	}

	if events := page.Events(); len(events) > 0 {
		out.Delivered = true
		out.Event = events[len(events)-1]
	}
	log.Debug().Bool("delivered", out.Delivered).Str("app_id", in.AppID).Msg("handoff finished")
	return out, nil
}

func settle() bridge.RetryPolicy {
	return bridge.RetryPolicy{Attempts: settleAttempts, Delay: settleDelay}
}
