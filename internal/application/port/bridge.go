package port

//go:generate mockery --name=HostChannel --output=mocks --outpkg=mocks --with-expecter
//go:generate mockery --name=Page --output=mocks --outpkg=mocks --with-expecter

import (
	"context"

	"github.com/bnema/dragkit/internal/domain/entity"
)

// PayloadIdentity names a payload on the host side.
type PayloadIdentity struct {
	ID       string             `cbor:"id" json:"id"`
	Kind     entity.PayloadKind `cbor:"kind" json:"kind"`
	Name     string             `cbor:"name,omitempty" json:"name,omitempty"`
	MIMEType string             `cbor:"mime,omitempty" json:"mime,omitempty"`
}

// PayloadMeta is pushed by the host ahead of a cross-boundary drop.
type PayloadMeta struct {
	Token    string          `cbor:"token" json:"token"`
	Identity PayloadIdentity `cbor:"identity" json:"identity"`
}

// HostChannel is the bridge's request/response channel to the host process.
type HostChannel interface {
	// ReadPayloadBytes exchanges a one-time token for the payload bytes.
	// A nil slice with a nil error means the host has no data for the token.
	ReadPayloadBytes(ctx context.Context, token string, identity PayloadIdentity) ([]byte, error)
}

// Page is the document of an isolated rendering context.
type Page interface {
	// Host returns the hostname of the loaded page.
	Host() string
	// Dispatch delivers a synthetic event to the page's own listeners.
	Dispatch(ev *entity.NativeEvent)
}

// MetadataSink receives payload metadata pushed ahead of a drop.
type MetadataSink interface {
	Push(appID string, meta PayloadMeta)
}
