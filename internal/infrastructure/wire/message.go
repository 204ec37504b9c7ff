package wire

import (
	"errors"
	"fmt"

	"github.com/bnema/dragkit/internal/application/port"
	"github.com/bnema/dragkit/internal/domain/entity"
)

// Message types.
const (
	TypePush       = "push"
	TypeRead       = "read"
	TypeReadResult = "read_result"
)

// Error codes carried by read results.
const (
	CodeNotFound = "token_not_found"
	CodeConsumed = "token_consumed"
	CodeExpired  = "token_expired"
	CodeForged   = "token_forged"
	CodeInternal = "internal"
)

// Message is the single frame shape; Type selects which fields are set.
type Message struct {
	Type string `cbor:"type"`
	ID   string `cbor:"id,omitempty"`

	// push
	AppID string            `cbor:"app_id,omitempty"`
	Meta  *port.PayloadMeta `cbor:"meta,omitempty"`

	// read
	Token    string                `cbor:"token,omitempty"`
	Identity *port.PayloadIdentity `cbor:"identity,omitempty"`

	// read_result
	Found      bool   `cbor:"found,omitempty"`
	Data       []byte `cbor:"data,omitempty"`
	Compressed bool   `cbor:"zstd,omitempty"`
	Size       int    `cbor:"size,omitempty"`
	Code       string `cbor:"code,omitempty"`
	Error      string `cbor:"error,omitempty"`
}

var codeErrors = map[string]error{
	CodeNotFound: entity.ErrTokenNotFound,
	CodeConsumed: entity.ErrTokenConsumed,
	CodeExpired:  entity.ErrTokenExpired,
	CodeForged:   entity.ErrTokenForged,
}

// errorCode maps a redeem error to its wire code.
func errorCode(err error) string {
	for code, sentinel := range codeErrors {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return CodeInternal
}

// resultError rebuilds the error of a failed read result.
func resultError(m *Message) error {
	if sentinel, ok := codeErrors[m.Code]; ok {
		return fmt.Errorf("host: %s: %w", m.Error, sentinel)
	}
	return fmt.Errorf("host: %s", m.Error)
}
