package section

import (
	"crypto/md5" //nolint: gosec // the table format fixes MD5
)

// ChecksumRecord is the optional 32-byte record that seals the entry records
// preceding it.
//
//	Bytes  | Field  | Description
//	-------|--------|--------------------------------------
//	0-1    | Magic  | EB EB
//	2-15   | Fill   | FF x 14
//	16-31  | Digest | MD5 of every byte before this record
type ChecksumRecord struct {
	Digest [DigestSize]byte
}

// NewChecksumRecord computes the checksum record for the given entry records.
func NewChecksumRecord(entries []byte) ChecksumRecord {
	return ChecksumRecord{Digest: md5.Sum(entries)} //nolint: gosec
}

// WriteToSlice writes the record at offset and returns the next write position.
func (r *ChecksumRecord) WriteToSlice(data []byte, offset int) int {
	b := data[offset : offset+RecordSize]
	b[0] = ChecksumMagic0
	b[1] = ChecksumMagic1
	for i := 2; i < DigestOffset; i++ {
		b[i] = FillByte
	}
	copy(b[DigestOffset:], r.Digest[:])

	return offset + RecordSize
}

// Verify recomputes the digest over entries and compares it with the stored one.
// It returns the computed digest alongside the result.
func (r *ChecksumRecord) Verify(entries []byte) ([DigestSize]byte, bool) {
	computed := md5.Sum(entries) //nolint: gosec

	return computed, computed == r.Digest
}

// ParseChecksumRecord extracts the stored digest from a checksum record.
// The caller must have checked IsChecksumRecord.
func ParseChecksumRecord(data []byte) ChecksumRecord {
	var r ChecksumRecord
	copy(r.Digest[:], data[DigestOffset:DigestOffset+DigestSize])

	return r
}

// IsChecksumRecord reports whether the record starts with the checksum magic.
func IsChecksumRecord(data []byte) bool {
	return len(data) >= RecordSize && data[0] == ChecksumMagic0 && data[1] == ChecksumMagic1
}
