package wire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/bnema/dragkit/internal/application/port"
	"github.com/bnema/dragkit/internal/logging"
)

// ErrClosed is returned for calls on a closed client.
var ErrClosed = errors.New("wire: connection closed")

// Client is the bridge end of the connection. It forwards pushed metadata
// to a sink and implements port.HostChannel.
type Client struct {
	conn io.ReadWriteCloser
	sink port.MetadataSink

	writeMu sync.Mutex

	mu      sync.Mutex
	pending map[string]chan *Message
	closed  bool
	err     error

	done chan struct{}
}

var _ port.HostChannel = (*Client)(nil)

// NewClient starts reading conn. Pushed metadata goes to sink.
func NewClient(ctx context.Context, conn io.ReadWriteCloser, sink port.MetadataSink) *Client {
	c := &Client{
		conn:    conn,
		sink:    sink,
		pending: make(map[string]chan *Message),
		done:    make(chan struct{}),
	}
	go c.readLoop(logging.WithComponent(ctx, "wire"))
	return c
}

func (c *Client) readLoop(ctx context.Context) {
	defer close(c.done)
	log := logging.FromContext(ctx)

	for {
		var m Message
		if err := readFrame(c.conn, &m); err != nil {
			c.shutdown(err)
			if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrClosedPipe) {
				log.Debug().Err(err).Msg("wire client stopped")
			}
			return
		}

		switch m.Type {
		case TypePush:
			if m.Meta == nil || m.AppID == "" {
				log.Warn().Msg("push frame without metadata")
				continue
			}
			c.sink.Push(m.AppID, *m.Meta)
			log.Debug().Str("app_id", m.AppID).Msg("metadata pushed")

		case TypeReadResult:
			c.mu.Lock()
			ch, ok := c.pending[m.ID]
			delete(c.pending, m.ID)
			c.mu.Unlock()
			if ok {
				ch <- &m
			}

		default:
			log.Warn().Str("type", m.Type).Msg("unexpected frame")
		}
	}
}

func (c *Client) shutdown(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.err = err
	for id, ch := range c.pending {
		close(ch)
		delete(c.pending, id)
	}
}

// ReadPayloadBytes asks the host to redeem token.
func (c *Client) ReadPayloadBytes(ctx context.Context, token string, identity port.PayloadIdentity) ([]byte, error) {
	id := uuid.NewString()
	ch := make(chan *Message, 1)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	c.pending[id] = ch
	c.mu.Unlock()

	c.writeMu.Lock()
	err := writeFrame(c.conn, &Message{Type: TypeRead, ID: id, Token: token, Identity: &identity})
	c.writeMu.Unlock()
	if err != nil {
		c.forget(id)
		return nil, fmt.Errorf("send read request: %w", err)
	}

	select {
	case <-ctx.Done():
		c.forget(id)
		return nil, ctx.Err()
	case m, ok := <-ch:
		if !ok {
			return nil, ErrClosed
		}
		if m.Code != "" {
			return nil, resultError(m)
		}
		if !m.Found {
			return nil, nil
		}
		data, err := decodePayload(m.Data, m.Compressed, m.Size)
		if err != nil {
			return nil, err
		}
		if data == nil {
			data = []byte{}
		}
		return data, nil
	}
}

func (c *Client) forget(id string) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

// Close closes the connection and waits for the reader to stop.
func (c *Client) Close() error {
	err := c.conn.Close()
	<-c.done
	return err
}
