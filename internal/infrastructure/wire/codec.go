// Package wire carries Host↔Bridge messages over a byte stream as
// length-prefixed CBOR frames.
package wire

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// MaxFrameSize bounds a single frame body.
const MaxFrameSize = 16 << 20

// encMode uses Core Deterministic Encoding so equal messages produce equal bytes.
var encMode cbor.EncMode

// decMode ignores unknown fields so newer peers can add some.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("wire: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{
		MaxByteStringLen: MaxFrameSize,
	}.DecMode()
	if err != nil {
		panic("wire: CBOR decoder initialization failed: " + err.Error())
	}
}

// writeFrame encodes v and writes it with a 4-byte big-endian length prefix.
func writeFrame(w io.Writer, v any) error {
	data, err := encMode.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding frame: %w", err)
	}
	if len(data) > MaxFrameSize {
		return fmt.Errorf("frame size %d exceeds maximum %d", len(data), MaxFrameSize)
	}

	buf := make([]byte, 4+len(data))
	binary.BigEndian.PutUint32(buf[:4], uint32(len(data)))
	copy(buf[4:], data)
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// readFrame reads one length-prefixed frame and decodes it into v.
func readFrame(r io.Reader, v any) error {
	var prefix [4]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return err
	}
	length := binary.BigEndian.Uint32(prefix[:])
	if length > MaxFrameSize {
		return fmt.Errorf("frame size %d exceeds maximum %d", length, MaxFrameSize)
	}

	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return fmt.Errorf("reading frame body: %w", err)
	}
	if err := decMode.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding frame: %w", err)
	}
	return nil
}
