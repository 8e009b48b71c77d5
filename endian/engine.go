// Package endian provides the byte order used by partition table records.
//
// ESP-IDF partition tables are always little-endian regardless of the host,
// so callers obtain the engine through GetLittleEndianEngine instead of
// referring to encoding/binary directly. Keeping the choice in one place
// lets record code use both the ByteOrder and AppendByteOrder methods
// through a single value.
//
//	engine := endian.GetLittleEndianEngine()
//	engine.PutUint32(rec[4:8], offset)
//	buf = engine.AppendUint32(buf, flags)
//
// All functions and methods in this package are safe for concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}
