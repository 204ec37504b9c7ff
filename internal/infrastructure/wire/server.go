package wire

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"

	"github.com/bnema/dragkit/internal/application/port"
	"github.com/bnema/dragkit/internal/logging"
)

// Redeemer exchanges tokens for payload bytes. host.Registry implements it.
type Redeemer interface {
	Redeem(ctx context.Context, token string, identity port.PayloadIdentity) ([]byte, error)
}

// Server is the host end. It answers read requests from its redeemer and
// broadcasts pushed metadata to every connected bridge.
type Server struct {
	redeemer Redeemer

	mu       sync.Mutex
	sessions map[*session]struct{}
}

type session struct {
	conn    io.ReadWriteCloser
	writeMu sync.Mutex
}

func (s *session) write(m *Message) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return writeFrame(s.conn, m)
}

var _ port.MetadataSink = (*Server)(nil)

// NewServer creates a server backed by redeemer.
func NewServer(redeemer Redeemer) *Server {
	return &Server{redeemer: redeemer, sessions: make(map[*session]struct{})}
}

// Sessions returns the number of connected bridges.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Push sends metadata to every connected bridge.
func (s *Server) Push(appID string, meta port.PayloadMeta) {
	s.mu.Lock()
	sessions := make([]*session, 0, len(s.sessions))
	for sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.Unlock()

	for _, sess := range sessions {
		_ = sess.write(&Message{Type: TypePush, AppID: appID, Meta: &meta})
	}
}

// Serve handles one connection until the peer closes it or ctx ends.
func (s *Server) Serve(ctx context.Context, conn io.ReadWriteCloser) error {
	ctx = logging.WithComponent(ctx, "wire")
	log := logging.FromContext(ctx)

	sess := &session{conn: conn}
	s.mu.Lock()
	s.sessions[sess] = struct{}{}
	s.mu.Unlock()

	stop := make(chan struct{})
	defer func() {
		close(stop)
		s.mu.Lock()
		delete(s.sessions, sess)
		s.mu.Unlock()
		conn.Close()
	}()
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stop:
		}
	}()

	log.Debug().Msg("bridge connected")
	for {
		var m Message
		if err := readFrame(conn, &m); err != nil {
			if ctx.Err() != nil || isClosed(err) {
				log.Debug().Msg("bridge disconnected")
				return nil
			}
			return err
		}

		if m.Type != TypeRead {
			log.Warn().Str("type", m.Type).Msg("unexpected frame")
			continue
		}
		if err := sess.write(s.handleRead(ctx, &m)); err != nil {
			if isClosed(err) {
				return nil
			}
			return err
		}
	}
}

func (s *Server) handleRead(ctx context.Context, m *Message) *Message {
	reply := &Message{Type: TypeReadResult, ID: m.ID}
	if m.Identity == nil {
		reply.Code, reply.Error = CodeInternal, "read without identity"
		return reply
	}

	data, err := s.redeemer.Redeem(ctx, m.Token, *m.Identity)
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("payload_id", m.Identity.ID).Msg("redeem failed")
		reply.Code, reply.Error = errorCode(err), err.Error()
		return reply
	}

	reply.Found = true
	reply.Size = len(data)
	reply.Data, reply.Compressed = encodePayload(data)
	return reply
}

func isClosed(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) || errors.Is(err, net.ErrClosed) || errors.Is(err, io.ErrUnexpectedEOF)
}
