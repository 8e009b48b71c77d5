package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/arloliu/esppart/errs"
)

const (
	kib = 1024
	mib = 1024 * 1024
)

// parseNumber parses an offset or size as written in partition CSV files:
// decimal or 0x-prefixed hex, optionally followed by a K or M suffix
// (powers of 1024).
func parseNumber(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errs.ErrMissingField
	}

	mult := uint64(1)
	switch s[len(s)-1] {
	case 'k', 'K':
		mult = kib
		s = s[:len(s)-1]
	case 'm', 'M':
		mult = mib
		s = s[:len(s)-1]
	}

	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", errs.ErrInvalidNumber, err)
	}

	if v > math.MaxUint32/mult {
		return 0, errs.ErrValueOutOfRange
	}

	return uint32(v * mult), nil
}

// formatSize renders a size in the shortest notation parseNumber accepts back.
func formatSize(size uint32) string {
	switch {
	case size != 0 && size%mib == 0:
		return fmt.Sprintf("%dM", size/mib)
	case size != 0 && size%kib == 0:
		return fmt.Sprintf("%dK", size/kib)
	default:
		return fmt.Sprintf("0x%x", size)
	}
}

func formatOffset(offset uint32) string {
	return fmt.Sprintf("0x%x", offset)
}

// alignUp rounds v up to a multiple of align, which must be a power of two.
func alignUp(v uint64, align uint32) uint64 {
	a := uint64(align)
	return (v + a - 1) &^ (a - 1)
}
