package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/esppart/errs"
)

type (
	Type            uint8
	SubType         uint8
	CompressionType uint8
)

const (
	TypeApp            Type = 0x00 // TypeApp marks bootable application partitions.
	TypeData           Type = 0x01 // TypeData marks data partitions.
	TypeBootloader     Type = 0x02 // TypeBootloader marks the second stage bootloader region.
	TypePartitionTable Type = 0x03 // TypePartitionTable marks the partition table region.

	CompressionNone   CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd   CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2     CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4    CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
	CompressionSnappy CompressionType = 0x5 // CompressionSnappy represents Snappy block compression.
)

// App subtypes.
const (
	SubTypeFactory SubType = 0x00
	SubTypeOTA0    SubType = 0x10 // first of 16 OTA slots, ota_0..ota_15
	SubTypeOTA15   SubType = 0x1F
	SubTypeTest    SubType = 0x20
)

// Data subtypes.
const (
	SubTypeOTAData  SubType = 0x00
	SubTypePhy      SubType = 0x01
	SubTypeNVS      SubType = 0x02
	SubTypeCoreDump SubType = 0x03
	SubTypeNVSKeys  SubType = 0x04
	SubTypeEfuse    SubType = 0x05
	SubTypeUndef    SubType = 0x06
	SubTypeESPHTTPD SubType = 0x80
	SubTypeFAT      SubType = 0x81
	SubTypeSPIFFS   SubType = 0x82
	SubTypeLittleFS SubType = 0x83
)

// Bootloader and partition table subtypes.
const (
	SubTypePrimary SubType = 0x00
	SubTypeOTA     SubType = 0x01
)

var typeNames = map[Type]string{
	TypeApp:            "app",
	TypeData:           "data",
	TypeBootloader:     "bootloader",
	TypePartitionTable: "partition_table",
}

var subTypeNames = map[Type]map[SubType]string{
	TypeApp: appSubTypeNames(),
	TypeData: {
		SubTypeOTAData:  "ota",
		SubTypePhy:      "phy",
		SubTypeNVS:      "nvs",
		SubTypeCoreDump: "coredump",
		SubTypeNVSKeys:  "nvs_keys",
		SubTypeEfuse:    "efuse",
		SubTypeUndef:    "undefined",
		SubTypeESPHTTPD: "esphttpd",
		SubTypeFAT:      "fat",
		SubTypeSPIFFS:   "spiffs",
		SubTypeLittleFS: "littlefs",
	},
	TypeBootloader: {
		SubTypePrimary: "primary",
		SubTypeOTA:     "ota",
	},
	TypePartitionTable: {
		SubTypePrimary: "primary",
		SubTypeOTA:     "ota",
	},
}

func appSubTypeNames() map[SubType]string {
	names := map[SubType]string{
		SubTypeFactory: "factory",
		SubTypeTest:    "test",
	}
	for st := SubTypeOTA0; st <= SubTypeOTA15; st++ {
		names[st] = fmt.Sprintf("ota_%d", st-SubTypeOTA0)
	}

	return names
}

// String returns the symbolic name of the type, or its hex code for custom types.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}

	return fmt.Sprintf("0x%02x", uint8(t))
}

// IsCustom reports whether the type has no symbolic name.
func (t Type) IsCustom() bool {
	_, ok := typeNames[t]
	return !ok
}

// Alignment returns the required offset alignment for partitions of this type.
func (t Type) Alignment() uint32 {
	if t == TypeApp {
		return AppAlignment
	}

	return DataAlignment
}

// Name returns the symbolic name of the subtype under the given type,
// or its hex code when the pair is not recognized.
func (s SubType) Name(t Type) string {
	if names, ok := subTypeNames[t]; ok {
		if name, ok := names[s]; ok {
			return name
		}
	}

	return fmt.Sprintf("0x%02x", uint8(s))
}

// IsKnown reports whether the subtype has a symbolic name under the given type.
func (s SubType) IsKnown(t Type) bool {
	if names, ok := subTypeNames[t]; ok {
		_, known := names[s]
		return known
	}

	return false
}

// ParseType parses a symbolic or numeric partition type.
func ParseType(s string) (Type, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, name := range typeNames {
		if name == s {
			return t, nil
		}
	}

	v, err := parseUint8(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidType, s)
	}

	return Type(v), nil
}

// ParseSubType parses a symbolic or numeric subtype. Symbolic names must
// belong to the given type.
func ParseSubType(t Type, s string) (SubType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for st, name := range subTypeNames[t] {
		if name == s {
			return st, nil
		}
	}

	v, err := parseUint8(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a subtype of %s", errs.ErrInvalidSubType, s, t)
	}

	return SubType(v), nil
}

func parseUint8(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, err
	}

	return uint8(v), nil
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionSnappy:
		return "Snappy"
	default:
		return "Unknown"
	}
}

// ParseCompression parses a compression name as printed by String, case-insensitively.
func ParseCompression(s string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	case "snappy":
		return CompressionSnappy, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrUnsupportedCodec, s)
	}
}
