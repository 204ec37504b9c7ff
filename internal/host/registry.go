// Package host is the host-process side of the cross-boundary handshake:
// it mints one-time tokens for payloads and redeems them for the bridge.
package host

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	"github.com/bnema/dragkit/internal/application/port"
	"github.com/bnema/dragkit/internal/domain/entity"
	"github.com/bnema/dragkit/internal/logging"
)

const (
	// DefaultTokenTTL bounds how long a minted token stays redeemable.
	DefaultTokenTTL = 30 * time.Second

	// KeySize is the MAC key length generated when none is supplied.
	KeySize = 32

	macSize = 16
)

// tokenDomain separates token MACs from any other use of the key.
var tokenDomain = []byte("dragkit.token.v1")

type entry struct {
	identity port.PayloadIdentity
	data     []byte
	expires  time.Time
	consumed bool
}

// Registry maps tokens to payload bytes. Tokens are "<nonce>.<mac>" where
// the MAC covers the nonce and the payload id.
type Registry struct {
	key   []byte
	ttl   time.Duration
	clock port.Clock
	newID func() string

	mu      sync.Mutex
	entries map[string]*entry
}

var _ port.HostChannel = (*Registry)(nil)

// NewRegistry creates a registry. A nil key generates a random one; keys
// longer than 64 bytes are rejected.
func NewRegistry(key []byte, ttl time.Duration, clock port.Clock) (*Registry, error) {
	if len(key) == 0 {
		key = make([]byte, KeySize)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate token key: %w", err)
		}
	}
	if len(key) > blake2b.Size {
		return nil, fmt.Errorf("token key too long: %d bytes (max %d)", len(key), blake2b.Size)
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Registry{
		key:     append([]byte(nil), key...),
		ttl:     ttl,
		clock:   clock,
		newID:   uuid.NewString,
		entries: make(map[string]*entry),
	}, nil
}

// Mint registers data under a fresh token for identity.
func (r *Registry) Mint(ctx context.Context, identity port.PayloadIdentity, data []byte) (port.PayloadMeta, error) {
	nonce := r.newID()
	sum, err := r.mac(nonce, identity.ID)
	if err != nil {
		return port.PayloadMeta{}, err
	}
	token := nonce + "." + base64.RawURLEncoding.EncodeToString(sum)

	r.mu.Lock()
	r.entries[nonce] = &entry{
		identity: identity,
		data:     append([]byte(nil), data...),
		expires:  r.clock.Now().Add(r.ttl),
	}
	r.mu.Unlock()

	logging.FromContext(ctx).Debug().
		Str("payload_id", identity.ID).
		Str("kind", string(identity.Kind)).
		Int("bytes", len(data)).
		Msg("token minted")
	return port.PayloadMeta{Token: token, Identity: identity}, nil
}

// Offer mints a token and pushes the metadata to sink under appID.
func (r *Registry) Offer(ctx context.Context, sink port.MetadataSink, appID string, identity port.PayloadIdentity, data []byte) (port.PayloadMeta, error) {
	meta, err := r.Mint(ctx, identity, data)
	if err != nil {
		return port.PayloadMeta{}, err
	}
	sink.Push(appID, meta)
	return meta, nil
}

// Redeem exchanges token for the payload bytes. A token is redeemable once,
// before its expiry, and only for the identity it was minted for.
func (r *Registry) Redeem(ctx context.Context, token string, identity port.PayloadIdentity) ([]byte, error) {
	nonce, sig, ok := strings.Cut(token, ".")
	if !ok {
		return nil, fmt.Errorf("redeem %q: malformed token: %w", token, entity.ErrTokenForged)
	}
	got, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return nil, fmt.Errorf("redeem %q: %w", nonce, entity.ErrTokenForged)
	}
	want, err := r.mac(nonce, identity.ID)
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare(got, want) != 1 {
		return nil, fmt.Errorf("redeem %q: %w", nonce, entity.ErrTokenForged)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[nonce]
	switch {
	case !ok:
		return nil, fmt.Errorf("redeem %q: %w", nonce, entity.ErrTokenNotFound)
	case e.consumed:
		return nil, fmt.Errorf("redeem %q: %w", nonce, entity.ErrTokenConsumed)
	case r.clock.Now().After(e.expires):
		delete(r.entries, nonce)
		return nil, fmt.Errorf("redeem %q: %w", nonce, entity.ErrTokenExpired)
	}

	e.consumed = true
	data := e.data
	e.data = nil

	logging.FromContext(ctx).Debug().Str("payload_id", identity.ID).Msg("token redeemed")
	return data, nil
}

// ReadPayloadBytes implements port.HostChannel for in-process bridges.
func (r *Registry) ReadPayloadBytes(ctx context.Context, token string, identity port.PayloadIdentity) ([]byte, error) {
	return r.Redeem(ctx, token, identity)
}

// Sweep drops expired and consumed entries and returns how many were removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	removed := 0
	for nonce, e := range r.entries {
		if e.consumed || now.After(e.expires) {
			delete(r.entries, nonce)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked tokens.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Registry) mac(nonce, payloadID string) ([]byte, error) {
	h, err := blake2b.New(macSize, r.key)
	if err != nil {
		return nil, fmt.Errorf("token mac: %w", err)
	}
	h.Write(tokenDomain)
	h.Write([]byte(nonce))
	h.Write([]byte{0})
	h.Write([]byte(payloadID))
	return h.Sum(nil), nil
}
