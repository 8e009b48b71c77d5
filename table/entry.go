package table

import (
	"fmt"

	"github.com/arloliu/esppart/format"
	"github.com/arloliu/esppart/section"
)

// Entry is one partition record.
//
// Entry is a comparable value type; two entries are equal when every field
// is equal. Constructing an Entry performs no validation.
//
// The binary form holds at most 16 bytes of name with no NUL bytes. Longer
// names survive the CSV form but are truncated by EncodeBinary, so a binary
// round trip only reproduces entries whose names fit.
type Entry struct {
	Name    string
	Type    format.Type
	SubType format.SubType
	Offset  uint32
	Size    uint32
	Flags   format.Flags
}

// NewEntry creates an entry with no flags.
func NewEntry(name string, typ format.Type, subType format.SubType, offset, size uint32) Entry {
	return Entry{
		Name:    name,
		Type:    typ,
		SubType: subType,
		Offset:  offset,
		Size:    size,
	}
}

// End returns the first byte after the partition. It is computed in 64 bits
// so that entries reaching the top of the address space do not wrap.
func (e Entry) End() uint64 {
	return uint64(e.Offset) + uint64(e.Size)
}

// Equal reports whether e and other describe the same partition.
func (e Entry) Equal(other Entry) bool {
	return e == other
}

// IsApp reports whether the entry is a bootable application.
func (e Entry) IsApp() bool {
	return e.Type == format.TypeApp
}

// IsFactory reports whether the entry is the app/factory partition.
func (e Entry) IsFactory() bool {
	return e.Type == format.TypeApp && e.SubType == format.SubTypeFactory
}

// IsOtadata reports whether the entry is the data/ota partition.
func (e Entry) IsOtadata() bool {
	return e.Type == format.TypeData && e.SubType == format.SubTypeOTAData
}

// Overlaps reports whether the half-open byte ranges of e and other intersect.
// An empty range never overlaps anything.
func (e Entry) Overlaps(other Entry) bool {
	return max(uint64(e.Offset), uint64(other.Offset)) < min(e.End(), other.End())
}

func (e Entry) String() string {
	return fmt.Sprintf("%s (%s/%s) 0x%x+0x%x", e.Name, e.Type, e.SubType.Name(e.Type), e.Offset, e.Size)
}

func (e Entry) record() section.EntryRecord {
	return section.EntryRecord{
		Type:    e.Type,
		SubType: e.SubType,
		Offset:  e.Offset,
		Size:    e.Size,
		Name:    e.Name,
		Flags:   e.Flags,
	}
}

func entryFromRecord(r section.EntryRecord) Entry {
	return Entry{
		Name:    r.Name,
		Type:    r.Type,
		SubType: r.SubType,
		Offset:  r.Offset,
		Size:    r.Size,
		Flags:   r.Flags,
	}
}
