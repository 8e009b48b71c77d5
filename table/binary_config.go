package table

import (
	"github.com/arloliu/esppart/internal/options"
	"github.com/arloliu/esppart/section"
)

// DecoderConfig holds the binary decoder settings.
type DecoderConfig struct {
	verifyChecksum bool
}

func newDecoderConfig() *DecoderConfig {
	return &DecoderConfig{verifyChecksum: true}
}

// DecoderOption configures DecodeBinary.
type DecoderOption = options.Option[*DecoderConfig]

// WithChecksumVerification enables or disables MD5 verification of the
// checksum record. It is enabled by default.
func WithChecksumVerification(enabled bool) DecoderOption {
	return options.NoError(func(c *DecoderConfig) {
		c.verifyChecksum = enabled
	})
}

// EncoderConfig holds the binary encoder settings.
type EncoderConfig struct {
	checksum    bool
	tableLength int
}

func newEncoderConfig() *EncoderConfig {
	return &EncoderConfig{
		checksum:    true,
		tableLength: section.MaxTableLength,
	}
}

// EncoderOption configures EncodeBinary.
type EncoderOption = options.Option[*EncoderConfig]

// WithChecksum enables or disables the MD5 checksum record. It is enabled by default.
func WithChecksum(enabled bool) EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.checksum = enabled
	})
}

// WithTableLength sets the length the output is padded to. The value is
// rounded up to a whole number of records. Tables that do not fit are never
// truncated; the output grows to hold every entry plus one end marker.
func WithTableLength(n int) EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		if n < 0 {
			n = 0
		}
		c.tableLength = (n + section.RecordSize - 1) / section.RecordSize * section.RecordSize
	})
}
