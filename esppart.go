// Package esppart reads, writes and validates ESP-IDF flash partition tables.
//
// A partition table describes how the flash of an ESP32-class device is split
// into named regions: applications, OTA slots, NVS storage, filesystems. It
// exists in two forms:
//
//   - a CSV description edited by developers, and
//   - a 0xC00-byte binary of 32-byte records burned at flash offset 0x8000.
//
// esppart converts between the two and checks the rules the bootloader relies
// on (unique names, no overlaps, alignment, a single factory app, a
// well-formed otadata partition).
//
// # Basic Usage
//
// Converting CSV to the flash binary:
//
//	import "github.com/arloliu/esppart"
//
//	t, err := esppart.DecodeCSV(`
//	# Name,   Type, SubType, Offset,  Size
//	nvs,      data, nvs,     0x9000,  0x6000
//	phy_init, data, phy,     0xf000,  0x1000
//	factory,  app,  factory, 0x10000, 1M
//	`)
//	if err != nil {
//	    return err
//	}
//	if err := esppart.Validate(t); err != nil {
//	    return err
//	}
//	bin := esppart.EncodeBinary(t)
//
// Reading a table dumped from a device:
//
//	t, err := esppart.DecodeBinary(dump)
//	var cs *errs.InvalidChecksumError
//	if errors.As(err, &cs) {
//	    fmt.Printf("stored %x, computed %x\n", cs.Expected, cs.Computed)
//	}
//
// # Package Structure
//
// This package provides thin wrappers around the table package for the
// common conversions. Use the table package directly for options such as
// custom table offsets, checksum-less tables and compressed archives.
package esppart

import (
	"github.com/arloliu/esppart/format"
	"github.com/arloliu/esppart/table"
)

// DecodeBinary decodes a binary partition table.
//
// The result is not validated. See table.DecodeBinary for the options.
func DecodeBinary(data []byte, opts ...table.DecoderOption) (*table.Table, error) {
	return table.DecodeBinary(data, opts...)
}

// DecodeCSV decodes a partition table from its CSV form.
//
// The result is not validated, but duplicate names are rejected.
func DecodeCSV(text string, opts ...table.CSVOption) (*table.Table, error) {
	return table.DecodeCSV(text, opts...)
}

// EncodeBinary returns the on-flash form of t, including the MD5 record and
// padding to 0xC00 bytes.
func EncodeBinary(t *table.Table, opts ...table.EncoderOption) []byte {
	return t.EncodeBinary(opts...)
}

// EncodeCSV returns the CSV form of t.
func EncodeCSV(t *table.Table) string {
	return t.EncodeCSV()
}

// Validate checks t and returns the first rule it violates.
func Validate(t *table.Table) error {
	return t.Validate()
}

// ConvertCSVToBinary decodes, validates and encodes a CSV table in one step.
func ConvertCSVToBinary(text string, opts ...table.CSVOption) ([]byte, error) {
	t, err := table.DecodeCSV(text, opts...)
	if err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	return t.EncodeBinary(), nil
}

// ConvertBinaryToCSV decodes, validates and renders a binary table as CSV.
func ConvertBinaryToCSV(data []byte, opts ...table.DecoderOption) (string, error) {
	t, err := table.DecodeBinary(data, opts...)
	if err != nil {
		return "", err
	}
	if err := t.Validate(); err != nil {
		return "", err
	}

	return t.EncodeCSV(), nil
}

// NewEntry creates a partition entry with no flags.
func NewEntry(name string, typ format.Type, subType format.SubType, offset, size uint32) table.Entry {
	return table.NewEntry(name, typ, subType, offset, size)
}

// NewTable creates a table from entries in flash order.
func NewTable(entries ...table.Entry) *table.Table {
	return table.New(entries...)
}
