package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/esppart/errs"
)

// Flags is the 32-bit attribute bitset of a partition entry.
//
// Bit 0 is the encrypted flag, bit 1 the read-only flag. Remaining bits are
// reserved and preserved verbatim.
type Flags uint32

const (
	FlagEncrypted Flags = 0x0001
	FlagReadOnly  Flags = 0x0002

	knownFlagsMask = FlagEncrypted | FlagReadOnly
)

// Offset alignment and size limits.
const (
	AppAlignment     uint32 = 0x10000   // 64 KiB
	DataAlignment    uint32 = 0x1000    // 4 KiB
	OtadataSize      uint32 = 0x2000    // required size of data/ota
	MaxPartitionSize uint32 = 0x1000000 // 16 MiB
)

// IsEncrypted returns whether the encrypted bit is set.
func (f Flags) IsEncrypted() bool {
	return f&FlagEncrypted != 0
}

// IsReadOnly returns whether the read-only bit is set.
func (f Flags) IsReadOnly() bool {
	return f&FlagReadOnly != 0
}

// WithEncrypted returns f with the encrypted bit set.
func (f Flags) WithEncrypted() Flags {
	return f | FlagEncrypted
}

// WithReadOnly returns f with the read-only bit set.
func (f Flags) WithReadOnly() Flags {
	return f | FlagReadOnly
}

// String renders the flags in CSV notation: names joined with ':' and any
// reserved bits as a trailing hex value.
func (f Flags) String() string {
	parts := make([]string, 0, 3)
	if f.IsEncrypted() {
		parts = append(parts, "encrypted")
	}
	if f.IsReadOnly() {
		parts = append(parts, "readonly")
	}
	if rest := f &^ knownFlagsMask; rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint32(rest)))
	}

	return strings.Join(parts, ":")
}

// ParseFlags parses the CSV flags column. An empty string yields no flags.
func ParseFlags(s string) (Flags, error) {
	var f Flags
	for _, part := range strings.Split(s, ":") {
		part = strings.ToLower(strings.TrimSpace(part))
		switch part {
		case "":
		case "encrypted":
			f |= FlagEncrypted
		case "readonly":
			f |= FlagReadOnly
		default:
			v, err := strconv.ParseUint(part, 0, 32)
			if err != nil {
				return 0, fmt.Errorf("%w: %q", errs.ErrInvalidFlags, part)
			}
			f |= Flags(v)
		}
	}

	return f, nil
}
