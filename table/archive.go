package table

import (
	"fmt"

	"github.com/arloliu/esppart/compress"
	"github.com/arloliu/esppart/errs"
	"github.com/arloliu/esppart/format"
	"github.com/arloliu/esppart/internal/hash"
	"github.com/arloliu/esppart/section"
)

// Pack encodes the table to binary and wraps it in a compressed archive
// sealed with an xxHash64 of the binary form. Archives are meant for
// shipping tables inside update bundles; Unpack reverses the process.
//
// Parameters:
//   - compression: Codec applied to the binary table
//   - opts: Options forwarded to EncodeBinary
//
// Returns:
//   - []byte: Archive header followed by the compressed table
//   - error: ErrUnsupportedCodec or a compression failure
func (t *Table) Pack(compression format.CompressionType, opts ...EncoderOption) ([]byte, error) {
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCodec, compression)
	}

	raw := t.EncodeBinary(opts...)

	payload, err := codec.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to compress partition table: %w", err)
	}

	header := section.ArchiveHeader{
		Compression: compression,
		RawLength:   uint32(len(raw)), //nolint: gosec
		Hash:        hash.Sum(raw),
	}

	out := make([]byte, 0, section.ArchiveHeaderSize+len(payload))
	out = append(out, header.Bytes()...)
	out = append(out, payload...)

	return out, nil
}

// Unpack decompresses an archive produced by Pack, verifies its length and
// hash, and decodes the binary table. Decompression never produces more than
// the length recorded in the header.
func Unpack(data []byte, opts ...DecoderOption) (*Table, error) {
	header, err := section.ParseArchiveHeader(data)
	if err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(header.Compression)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCodec, header.Compression)
	}

	if header.RawLength > compress.MaxDecodedSize {
		return nil, fmt.Errorf("%w: declared length %d", errs.ErrArchiveCorrupted, header.RawLength)
	}

	raw, err := codec.DecompressLimit(data[section.ArchiveHeaderSize:], int(header.RawLength))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrArchiveCorrupted, err)
	}

	if len(raw) != int(header.RawLength) {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", errs.ErrArchiveCorrupted, header.RawLength, len(raw))
	}
	if sum := hash.Sum(raw); sum != header.Hash {
		return nil, fmt.Errorf("%w: hash 0x%016x, expected 0x%016x", errs.ErrArchiveCorrupted, sum, header.Hash)
	}

	return DecodeBinary(raw, opts...)
}
