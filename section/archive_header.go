package section

import (
	"github.com/arloliu/esppart/endian"
	"github.com/arloliu/esppart/errs"
	"github.com/arloliu/esppart/format"
)

const (
	ArchiveMagic      = 0x5054 // "TP" little-endian
	ArchiveHeaderSize = 16
)

// ArchiveHeader is the fixed header in front of a compressed binary table.
//
//	Bytes  | Field       | Type   | Description
//	-------|-------------|--------|----------------------------------
//	0-1    | Magic       | uint16 | ArchiveMagic
//	2      | Compression | uint8  | format.CompressionType
//	3      | Reserved    | uint8  | must be 0
//	4-7    | RawLength   | uint32 | length of the uncompressed table
//	8-15   | Hash        | uint64 | xxHash64 of the uncompressed table
type ArchiveHeader struct {
	Compression format.CompressionType
	RawLength   uint32
	Hash        uint64
}

// Bytes serializes the header.
func (h *ArchiveHeader) Bytes() []byte {
	engine := endian.GetLittleEndianEngine()

	b := make([]byte, 0, ArchiveHeaderSize)
	b = engine.AppendUint16(b, ArchiveMagic)
	b = append(b, uint8(h.Compression), 0)
	b = engine.AppendUint32(b, h.RawLength)
	b = engine.AppendUint64(b, h.Hash)

	return b
}

// ParseArchiveHeader parses the header at the start of data.
func ParseArchiveHeader(data []byte) (ArchiveHeader, error) {
	if len(data) < ArchiveHeaderSize {
		return ArchiveHeader{}, errs.ErrInvalidArchiveHeader
	}

	engine := endian.GetLittleEndianEngine()
	if engine.Uint16(data[0:2]) != ArchiveMagic || data[3] != 0 {
		return ArchiveHeader{}, errs.ErrInvalidArchiveHeader
	}

	return ArchiveHeader{
		Compression: format.CompressionType(data[2]),
		RawLength:   engine.Uint32(data[4:8]),
		Hash:        engine.Uint64(data[8:16]),
	}, nil
}
