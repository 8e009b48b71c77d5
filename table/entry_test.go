package table

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/esppart/format"
)

func TestEntry_Predicates(t *testing.T) {
	factory := NewEntry("factory", format.TypeApp, format.SubTypeFactory, 0x10000, 0x100000)
	ota := NewEntry("ota_0", format.TypeApp, format.SubTypeOTA0, 0x110000, 0x100000)
	otadata := NewEntry("otadata", format.TypeData, format.SubTypeOTAData, 0xd000, 0x2000)
	boot := NewEntry("bootloader", format.TypeBootloader, format.SubTypeOTA, 0x1000, 0x7000)

	require.True(t, factory.IsApp())
	require.True(t, factory.IsFactory())
	require.False(t, factory.IsOtadata())

	require.True(t, ota.IsApp())
	require.False(t, ota.IsFactory())

	require.True(t, otadata.IsOtadata())
	require.False(t, otadata.IsApp())

	// subtype 0x01 is "ota" for bootloaders too, but that is not otadata
	require.False(t, boot.IsOtadata())
	require.False(t, boot.IsApp())
}

func TestEntry_End(t *testing.T) {
	e := NewEntry("top", format.TypeData, format.SubTypeNVS, 0xFFFFF000, 0x1000)
	require.Equal(t, uint64(0x100000000), e.End())
}

func TestEntry_Overlaps(t *testing.T) {
	a := NewEntry("a", format.TypeData, format.SubTypeNVS, 0x9000, 0x6000)

	tests := []struct {
		name   string
		offset uint32
		size   uint32
		want   bool
	}{
		{"adjacent after", 0xf000, 0x1000, false},
		{"adjacent before", 0x8000, 0x1000, false},
		{"same range", 0x9000, 0x6000, true},
		{"inside", 0xa000, 0x1000, true},
		{"straddles end", 0xe000, 0x2000, true},
		{"straddles start", 0x8000, 0x2000, true},
		{"covers", 0x0, 0x100000, true},
		{"empty at start", 0x9000, 0x0, false},
		{"empty inside", 0xa000, 0x0, false},
		{"empty at end", 0xf000, 0x0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewEntry("b", format.TypeData, format.SubTypePhy, tt.offset, tt.size)
			require.Equal(t, tt.want, a.Overlaps(b))
			require.Equal(t, tt.want, b.Overlaps(a))
		})
	}
}

func TestEntry_Equal(t *testing.T) {
	a := NewEntry("nvs", format.TypeData, format.SubTypeNVS, 0x9000, 0x6000)
	b := a
	require.True(t, a.Equal(b))

	b.Flags = b.Flags.WithEncrypted()
	require.False(t, a.Equal(b))
}

func TestEntry_String(t *testing.T) {
	e := NewEntry("factory", format.TypeApp, format.SubTypeFactory, 0x10000, 0x100000)
	require.Equal(t, "factory (app/factory) 0x10000+0x100000", e.String())
}
