// Package errs defines the errors returned by esppart.
//
// Every failure kind has a sentinel error that can be matched with errors.Is.
// Kinds that carry context (partition names, digests) are returned as
// structured error types whose Unwrap method yields the sentinel, so the
// payload is available through errors.As:
//
//	var dup *errs.DuplicatePartitionsError
//	if errors.As(err, &dup) {
//	    fmt.Println("duplicate name:", dup.Name)
//	}
package errs

import (
	"errors"
	"fmt"
)

// Structural decode failures.
var (
	ErrLengthNotMultipleOf32 = errors.New("the length of the binary data is not a multiple of 32")
	ErrNoEndMarker           = errors.New("no end marker was found in the binary data")
	ErrInvalidChecksum       = errors.New("the binary's checksum is invalid")
	ErrInvalidMagic          = errors.New("invalid partition entry magic")
	ErrInvalidRecordSize     = errors.New("invalid partition record size")
	ErrInvalidName           = errors.New("partition name is not valid UTF-8")
)

// Semantic validation failures.
var (
	ErrDuplicatePartitions         = errors.New("two or more partitions with the same name were found")
	ErrOverlappingPartitions       = errors.New("two partitions are overlapping each other")
	ErrUnalignedPartition          = errors.New("the partition is not correctly aligned")
	ErrPartitionTooLarge           = errors.New("partition larger than maximum supported size of 16MB")
	ErrMultipleFactoryPartitions   = errors.New("multiple partitions with type 'app' and subtype 'factory' were found")
	ErrMultipleOtadataPartitions   = errors.New("multiple partitions with type 'data' and subtype 'ota' were found")
	ErrInvalidOtadataPartitionSize = errors.New("partition with type 'data' and subtype 'ota' must have size of 0x2000 (8k) bytes")
	ErrNoAppPartition              = errors.New("no partition of type 'app' was found in the partition table")
)

// Text format failures.
var (
	ErrCSV             = errors.New("malformed partition CSV")
	ErrMissingField    = errors.New("missing required field")
	ErrInvalidType     = errors.New("invalid partition type")
	ErrInvalidSubType  = errors.New("invalid partition subtype")
	ErrInvalidNumber   = errors.New("invalid numeric value")
	ErrValueOutOfRange = errors.New("value does not fit in 32 bits")
	ErrInvalidFlags    = errors.New("invalid partition flags")
	ErrNameTooLong     = errors.New("partition name longer than 16 bytes")
	ErrEmptyName       = errors.New("partition name is empty")
)

// Archive failures.
var (
	ErrInvalidArchiveHeader = errors.New("invalid partition table archive header")
	ErrArchiveCorrupted     = errors.New("partition table archive is corrupted")
	ErrUnsupportedCodec     = errors.New("unsupported compression type")
)

// InvalidChecksumError reports an MD5 mismatch in a binary table.
type InvalidChecksumError struct {
	Expected []byte // digest stored in the table
	Computed []byte // digest of the decoded records
}

func (e *InvalidChecksumError) Error() string {
	return fmt.Sprintf("%s (expected '%x', computed '%x')", ErrInvalidChecksum, e.Expected, e.Computed)
}

func (e *InvalidChecksumError) Unwrap() error { return ErrInvalidChecksum }

// DuplicatePartitionsError names the partition that appears more than once.
type DuplicatePartitionsError struct {
	Name string
}

func (e *DuplicatePartitionsError) Error() string {
	return fmt.Sprintf("two or more partitions with the same name ('%s') were found", e.Name)
}

func (e *DuplicatePartitionsError) Unwrap() error { return ErrDuplicatePartitions }

// OverlappingPartitionsError names two overlapping partitions in table order.
type OverlappingPartitionsError struct {
	First  string
	Second string
}

func (e *OverlappingPartitionsError) Error() string {
	return fmt.Sprintf("two partitions are overlapping each other: '%s' and '%s'", e.First, e.Second)
}

func (e *OverlappingPartitionsError) Unwrap() error { return ErrOverlappingPartitions }

// UnalignedPartitionError reports a partition whose offset violates the
// alignment of its type.
type UnalignedPartitionError struct {
	Name      string
	Offset    uint32
	Alignment uint32
}

func (e *UnalignedPartitionError) Error() string {
	return fmt.Sprintf("the partition is not correctly aligned: '%s' at 0x%x (requires 0x%x)", e.Name, e.Offset, e.Alignment)
}

func (e *UnalignedPartitionError) Unwrap() error { return ErrUnalignedPartition }

// PartitionTooLargeError names a partition above the 16 MiB limit.
type PartitionTooLargeError struct {
	Name string
}

func (e *PartitionTooLargeError) Error() string {
	return fmt.Sprintf("partition larger than maximum supported size of 16MB: '%s'", e.Name)
}

func (e *PartitionTooLargeError) Unwrap() error { return ErrPartitionTooLarge }

// RecordError wraps a failure to decode one 32-byte binary record.
type RecordError struct {
	Index int // zero-based record index in the buffer
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d: %v", e.Index, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// FieldError wraps a failure to parse one CSV field.
type FieldError struct {
	Line  int    // 1-based line number in the input
	Field string // column name
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("line %d: %s %q: %v", e.Line, e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }
