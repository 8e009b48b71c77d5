// Package table implements the partition table aggregate and its codecs.
//
// A Table is an ordered list of Entry values. It can be decoded from and
// encoded to both the binary flash layout and the CSV text form, validated
// against the bootloader rules, and packed into a compressed archive.
//
// Decoding never validates beyond what the format itself requires, so a
// decoded table may still break the layout rules; call Validate before
// writing it to a device:
//
//	t, err := table.DecodeCSV(text, table.WithTableOffset(0x9000))
//	if err != nil {
//	    return err
//	}
//	if err := t.Validate(); err != nil {
//	    return err
//	}
//	bin := t.EncodeBinary()
//
// Table is not safe for concurrent mutation.
package table
