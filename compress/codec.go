package compress

import (
	"errors"
	"fmt"

	"github.com/arloliu/esppart/format"
)

// Compressor compresses a complete encoded partition table.
//
// The returned slice is newly allocated and owned by the caller; the input
// slice is not modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor of the same algorithm.
//
// It returns an error if the input is corrupted or was produced by another
// algorithm.
//
// DecompressLimit fails with ErrOutputLimit instead of producing more than
// limit bytes. It is the entry point for untrusted input.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
	DecompressLimit(data []byte, limit int) ([]byte, error)
}

// MaxDecodedSize bounds every decompression. Partition tables are a few KiB,
// so anything near this limit is corrupt input.
const MaxDecodedSize = 16 * 1024 * 1024

// ErrOutputLimit is returned when decompressed data would exceed the limit.
var ErrOutputLimit = errors.New("decompressed data exceeds limit")

func checkLimit(n, limit int) error {
	if n > limit || n > MaxDecodedSize {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrOutputLimit, n, min(limit, MaxDecodedSize))
	}

	return nil
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone:   NewNoOpCompressor(),
	format.CompressionZstd:   NewZstdCompressor(),
	format.CompressionS2:     NewS2Compressor(),
	format.CompressionLZ4:    NewLZ4Compressor(),
	format.CompressionSnappy: NewSnappyCompressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
