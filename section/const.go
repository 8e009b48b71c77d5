package section

const (
	// Magic bytes at the start of every partition entry record.
	EntryMagic0 = 0xAA
	EntryMagic1 = 0x50

	// Magic bytes at the start of the MD5 checksum record.
	ChecksumMagic0 = 0xEB
	ChecksumMagic1 = 0xEB

	// FillByte pads unused table space and forms the end marker record.
	FillByte = 0xFF
)

// offset and record sizes in the partition table binary
const (
	RecordSize      = 32    // fixed size of every record in bytes
	NameSize        = 16    // NUL padded name field
	DigestSize      = 16    // MD5 digest stored in the checksum record
	DigestOffset    = 16    // byte offset of the digest inside the checksum record
	MaxTableLength  = 0xC00 // partition table region reserved on flash
	MaxEntries      = (MaxTableLength / RecordSize) - 2
	DefaultOffset   = 0x8000 // default flash offset of the partition table
	TableSectorSize = 0x1000 // flash sector occupied by the table itself
)

// Entry record field offsets.
const (
	magicOffset   = 0
	typeOffset    = 2
	subTypeOffset = 3
	offsetOffset  = 4
	sizeOffset    = 8
	nameOffset    = 12
	flagsOffset   = 28
)
