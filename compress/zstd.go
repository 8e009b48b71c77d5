package compress

import (
	"fmt"
	"io"
)

// ZstdCompressor provides Zstandard compression. The implementation is
// selected at build time: valyala/gozstd when cgo is available and
// klauspost/compress/zstd otherwise. Both produce standard zstd frames, so
// archives are interchangeable between builds.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

// readLimited drains a streaming decoder, failing once it yields more than
// limit bytes.
func readLimited(r io.Reader, limit int) ([]byte, error) {
	limit = min(limit, MaxDecodedSize)

	out, err := io.ReadAll(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}
	if len(out) > limit {
		return nil, fmt.Errorf("%w: limit %d", ErrOutputLimit, limit)
	}

	return out, nil
}
