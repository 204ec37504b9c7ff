package wire

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// CompressThreshold is the payload size above which bytes travel zstd compressed.
const CompressThreshold = 4 << 10

// zstd encoders and decoders are safe for concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("wire: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil, zstd.WithDecoderMaxMemory(MaxFrameSize))
	if err != nil {
		panic("wire: zstd decoder initialization failed: " + err.Error())
	}
}

// encodePayload compresses data above the threshold when that makes it smaller.
func encodePayload(data []byte) ([]byte, bool) {
	if len(data) <= CompressThreshold {
		return data, false
	}
	compressed := zstdEncoder.EncodeAll(data, nil)
	if len(compressed) >= len(data) {
		return data, false
	}
	return compressed, true
}

// decodePayload reverses encodePayload and checks the announced size.
func decodePayload(data []byte, compressed bool, size int) ([]byte, error) {
	if !compressed {
		return data, nil
	}
	out, err := zstdDecoder.DecodeAll(data, make([]byte, 0, size))
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	if len(out) != size {
		return nil, fmt.Errorf("zstd decompress: got %d bytes, expected %d", len(out), size)
	}
	return out, nil
}
