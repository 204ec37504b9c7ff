package wire

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodePayload(t *testing.T) {
	small := []byte("tiny")
	out, compressed := encodePayload(small)
	assert.False(t, compressed)
	assert.Equal(t, small, out)

	text := bytes.Repeat([]byte("abcdefgh"), 2048)
	out, compressed = encodePayload(text)
	require.True(t, compressed)
	assert.Less(t, len(out), len(text))

	back, err := decodePayload(out, true, len(text))
	require.NoError(t, err)
	assert.Equal(t, text, back)

	_, err = decodePayload(out, true, len(text)+1)
	assert.Error(t, err)

	noise := make([]byte, 8<<10)
	_, err = rand.Read(noise)
	require.NoError(t, err)
	_, compressed = encodePayload(noise)
	assert.False(t, compressed, "incompressible data is sent as is")
}

func TestFrames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeFrame(&buf, &Message{Type: TypeRead, ID: "r-1", Token: "tok"}))
	// Deterministic encoding.
	first := append([]byte(nil), buf.Bytes()...)
	require.NoError(t, writeFrame(&buf, &Message{Type: TypeRead, ID: "r-1", Token: "tok"}))
	assert.Equal(t, first, buf.Bytes()[len(first):])

	var m Message
	require.NoError(t, readFrame(&buf, &m))
	assert.Equal(t, "r-1", m.ID)
	assert.Equal(t, "tok", m.Token)

	var huge bytes.Buffer
	var prefix [4]byte
	binary.BigEndian.PutUint32(prefix[:], MaxFrameSize+1)
	huge.Write(prefix[:])
	assert.ErrorContains(t, readFrame(&huge, &m), "exceeds maximum")
}
