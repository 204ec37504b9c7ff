package wire_test

import (
	"bytes"
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/dragkit/internal/application/port"
	"github.com/bnema/dragkit/internal/bridge"
	"github.com/bnema/dragkit/internal/domain/entity"
	"github.com/bnema/dragkit/internal/host"
	"github.com/bnema/dragkit/internal/infrastructure/scheduler"
	"github.com/bnema/dragkit/internal/infrastructure/wire"
	"github.com/bnema/dragkit/internal/logging"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

type pair struct {
	ctx      context.Context
	registry *host.Registry
	server   *wire.Server
	client   *wire.Client
	inbox    *bridge.Inbox
	group    *errgroup.Group
}

func newPair(t *testing.T) *pair {
	t.Helper()

	registry, err := host.NewRegistry(nil, time.Minute, scheduler.NewVirtual(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	serverConn, clientConn := net.Pipe()
	group, ctx := errgroup.WithContext(testContext())

	p := &pair{
		ctx:      ctx,
		registry: registry,
		server:   wire.NewServer(registry),
		inbox:    bridge.NewInbox(),
		group:    group,
	}
	group.Go(func() error { return p.server.Serve(ctx, serverConn) })
	p.client = wire.NewClient(ctx, clientConn, p.inbox)

	require.Eventually(t, func() bool { return p.server.Sessions() == 1 }, time.Second, time.Millisecond)
	return p
}

func (p *pair) close(t *testing.T) {
	t.Helper()
	require.NoError(t, p.client.Close())
	require.NoError(t, p.group.Wait())
}

func (p *pair) offer(t *testing.T, appID string, identity port.PayloadIdentity, data []byte) port.PayloadMeta {
	t.Helper()
	_, err := p.registry.Offer(p.ctx, p.server, appID, identity, data)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return p.inbox.Len() > 0 }, time.Second, time.Millisecond)
	meta, ok := p.inbox.Take(appID)
	require.True(t, ok)
	return meta
}

func TestWire_PushAndRedeem(t *testing.T) {
	p := newPair(t)
	identity := port.PayloadIdentity{ID: "n-1", Kind: entity.KindNote}

	meta := p.offer(t, "app-1", identity, []byte("hello over the wire"))
	assert.Equal(t, identity, meta.Identity)

	data, err := p.client.ReadPayloadBytes(p.ctx, meta.Token, identity)
	require.NoError(t, err)
	assert.Equal(t, "hello over the wire", string(data))

	_, err = p.client.ReadPayloadBytes(p.ctx, meta.Token, identity)
	assert.ErrorIs(t, err, entity.ErrTokenConsumed)

	_, err = p.client.ReadPayloadBytes(p.ctx, "nonce.AAAA", identity)
	assert.ErrorIs(t, err, entity.ErrTokenForged)

	p.close(t)
}

func TestWire_LargePayloadsRoundTrip(t *testing.T) {
	p := newPair(t)
	identity := port.PayloadIdentity{ID: "doc", Kind: entity.KindHTML}
	large := []byte(strings.Repeat("<p>drag and drop</p>", 4096))

	meta := p.offer(t, "app-2", identity, large)
	data, err := p.client.ReadPayloadBytes(p.ctx, meta.Token, identity)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(large, data))

	empty := p.offer(t, "app-3", port.PayloadIdentity{ID: "e", Kind: entity.KindString}, nil)
	data, err = p.client.ReadPayloadBytes(p.ctx, empty.Token, port.PayloadIdentity{ID: "e", Kind: entity.KindString})
	require.NoError(t, err)
	assert.NotNil(t, data, "an empty payload is still found")
	assert.Empty(t, data)

	p.close(t)
}

func TestWire_ClosedClientFailsCalls(t *testing.T) {
	p := newPair(t)
	p.close(t)

	_, err := p.client.ReadPayloadBytes(context.Background(), "t", port.PayloadIdentity{ID: "x"})
	assert.ErrorIs(t, err, wire.ErrClosed)
}

type recordingPage struct {
	events chan *entity.NativeEvent
}

func (p *recordingPage) Host() string                    { return "example.org" }
func (p *recordingPage) Dispatch(ev *entity.NativeEvent) { p.events <- ev }

func TestWire_BridgeDropOverConnection(t *testing.T) {
	p := newPair(t)
	page := &recordingPage{events: make(chan *entity.NativeEvent, 1)}
	b := bridge.New(p.ctx, page, p.client, p.inbox, bridge.Options{
		Clock:     scheduler.NewVirtual(time.Now()),
		Correlate: true,
	})

	identity := port.PayloadIdentity{ID: "u-1", Kind: entity.KindURL}
	_, err := p.registry.Offer(p.ctx, p.server, "app-9", identity, []byte("https://example.org/x"))
	require.NoError(t, err)
	require.Eventually(t, func() bool { return p.inbox.Len() == 1 }, time.Second, time.Millisecond)

	transfer := entity.NewTransfer()
	transfer.SetData(bridge.DefaultAppKey, "app-9")
	b.HandleEvent(p.ctx, &entity.NativeEvent{Type: entity.EventTypeDrop, Transfer: transfer})
	b.Wait()

	select {
	case ev := <-page.events:
		assert.Equal(t, "https://example.org/x", ev.Transfer.GetData(entity.MIMEURIs))
	default:
		t.Fatal("no drop dispatched")
	}

	p.close(t)
}
