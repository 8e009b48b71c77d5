package table

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/esppart/errs"
	"github.com/arloliu/esppart/format"
)

func TestDecodeCSV(t *testing.T) {
	tests := []struct {
		name string
		text string
		opts []CSVOption
		want []Entry
	}{
		{
			name: "explicit offsets",
			text: `# Name,   Type, SubType, Offset,  Size, Flags
nvs,      data, nvs,     0x9000,  0x6000,
phy_init, data, phy,     0xf000,  0x1000,
factory,  app,  factory, 0x10000, 1M,
`,
			want: defaultEntries(),
		},
		{
			name: "automatic offsets",
			text: `nvs,      data, nvs,     , 0x6000
phy_init, data, phy,     , 0x1000
factory,  app,  factory, , 1M
`,
			want: defaultEntries(),
		},
		{
			name: "ota layout with default otadata size",
			text: `# Name,   Type, SubType, Offset, Size, Flags
nvs,      data, nvs,     ,       0x4000,
otadata,  data, ota,     ,       ,
phy_init, data, phy,     ,       0x1000,
factory,  app,  factory, ,       1M,
ota_0,    app,  ota_0,   ,       1M,
ota_1,    app,  ota_1,   ,       1M,
`,
			want: otaEntries(),
		},
		{
			name: "header row",
			text: "name,type,subtype,offset,size,flags\nnvs,data,nvs,0x9000,24K\nphy_init,data,phy,0xf000,4K\nfactory,app,factory,0x10000,1024K\n",
			want: defaultEntries(),
		},
		{
			name: "custom table offset",
			text: "nvs,data,nvs,,24K\nfactory,app,factory,,1M\n",
			opts: []CSVOption{WithTableOffset(0x10000)},
			want: []Entry{
				NewEntry("nvs", format.TypeData, format.SubTypeNVS, 0x11000, 0x6000),
				NewEntry("factory", format.TypeApp, format.SubTypeFactory, 0x20000, 0x100000),
			},
		},
		{
			name: "numeric types and flags",
			text: "factory,0,0,0x10000,1M\nkeys,1,4,,4K,encrypted\ncustom,0x40,0x17,,0x1000,readonly:0x100\n",
			want: []Entry{
				NewEntry("factory", format.TypeApp, format.SubTypeFactory, 0x10000, 0x100000),
				{Name: "keys", Type: format.TypeData, SubType: format.SubTypeNVSKeys, Offset: 0x110000, Size: 0x1000, Flags: format.FlagEncrypted},
				{Name: "custom", Type: 0x40, SubType: 0x17, Offset: 0x111000, Size: 0x1000, Flags: format.FlagReadOnly | 0x100},
			},
		},
		{
			name: "quoted name",
			text: `"a, b",data,nvs,0x9000,0x1000` + "\n",
			want: []Entry{NewEntry("a, b", format.TypeData, format.SubTypeNVS, 0x9000, 0x1000)},
		},
		{
			name: "quoted whitespace kept",
			text: "\" pad \",data,nvs,0x9000,0x1000\n  trimmed  ,data,phy,0xa000,0x1000\n",
			want: []Entry{
				NewEntry(" pad ", format.TypeData, format.SubTypeNVS, 0x9000, 0x1000),
				NewEntry("trimmed", format.TypeData, format.SubTypePhy, 0xa000, 0x1000),
			},
		},
		{
			name: "quoted hash",
			text: "# comment\n\"#boot\",data,nvs,0x9000,0x1000\n",
			want: []Entry{NewEntry("#boot", format.TypeData, format.SubTypeNVS, 0x9000, 0x1000)},
		},
		{
			name: "empty",
			text: "# nothing here\n\n",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := DecodeCSV(tt.text, tt.opts...)
			require.NoError(t, err)
			require.True(t, New(tt.want...).Equal(tbl), "got %v", tbl.Entries())
		})
	}
}

func TestDecodeCSV_Errors(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		err   error
		field string
	}{
		{name: "too few fields", text: "nvs,data,nvs,0x9000\n", err: errs.ErrCSV},
		{name: "too many fields", text: "nvs,data,nvs,0x9000,0x1000,,extra\n", err: errs.ErrCSV},
		{name: "unterminated quote", text: "\"nvs,data,nvs,0x9000,0x1000\n", err: errs.ErrCSV},
		{name: "empty name", text: ",data,nvs,0x9000,0x1000\n", err: errs.ErrEmptyName, field: "name"},
		{name: "long name", text: "seventeen_chars_x,data,nvs,0x9000,0x1000\n", err: errs.ErrNameTooLong, field: "name"},
		{name: "unknown type", text: "nvs,storage,nvs,0x9000,0x1000\n", err: errs.ErrInvalidType, field: "type"},
		{name: "subtype of other type", text: "nvs,app,nvs,0x10000,0x1000\n", err: errs.ErrInvalidSubType, field: "subtype"},
		{name: "bad offset", text: "nvs,data,nvs,0x9ZZZ,0x1000\n", err: errs.ErrInvalidNumber, field: "offset"},
		{name: "missing size", text: "nvs,data,nvs,0x9000,\n", err: errs.ErrMissingField, field: "size"},
		{name: "offset out of range", text: "nvs,data,nvs,0x100000000,0x1000\n", err: errs.ErrValueOutOfRange, field: "offset"},
		{name: "end out of range", text: "nvs,data,nvs,0xFFFFF000,0x2000\n", err: errs.ErrValueOutOfRange, field: "size"},
		{name: "bad flags", text: "nvs,data,nvs,0x9000,0x1000,secure\n", err: errs.ErrInvalidFlags, field: "flags"},
		{
			name:  "automatic offset out of range",
			text:  "big,data,nvs,0xFFFFE000,0x1800\nnext,data,nvs,,0x1000\n",
			err:   errs.ErrValueOutOfRange,
			field: "offset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := DecodeCSV(tt.text)
			require.Nil(t, tbl)
			require.ErrorIs(t, err, tt.err)

			if tt.field != "" {
				var fieldErr *errs.FieldError
				require.ErrorAs(t, err, &fieldErr)
				require.Equal(t, tt.field, fieldErr.Field)
			}
		})
	}
}

func TestDecodeCSV_LineNumbers(t *testing.T) {
	text := "# Name, Type, SubType, Offset, Size\nnvs, data, nvs, 0x9000, 0x6000\n\nfactory, app, factory, 0x10000, lots\n"

	_, err := DecodeCSV(text)
	var fieldErr *errs.FieldError
	require.ErrorAs(t, err, &fieldErr)
	require.Equal(t, 4, fieldErr.Line)
	require.Equal(t, "size", fieldErr.Field)
	require.Equal(t, "lots", fieldErr.Value)
	require.Contains(t, err.Error(), "line 4")
}

func TestDecodeCSV_Duplicate(t *testing.T) {
	_, err := DecodeCSV("nvs,data,nvs,0x9000,0x1000\nnvs,data,nvs,0xa000,0x1000\n")
	require.ErrorIs(t, err, errs.ErrDuplicatePartitions)

	var dup *errs.DuplicatePartitionsError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, "nvs", dup.Name)
}

func TestDecodeCSV_InvalidTableOffset(t *testing.T) {
	_, err := DecodeCSV("factory,app,factory,,1M\n", WithTableOffset(0x8100))
	require.Error(t, err)
}

func TestDecodeCSVReader(t *testing.T) {
	tbl, err := DecodeCSVReader(strings.NewReader("nvs,data,nvs,,24K\nphy_init,data,phy,,4K\nfactory,app,factory,,1M\n"))
	require.NoError(t, err)
	require.True(t, New(defaultEntries()...).Equal(tbl))
}

func TestEncodeCSV(t *testing.T) {
	want := `# Name, Type, SubType, Offset, Size, Flags
nvs,data,nvs,0x9000,24K,
phy_init,data,phy,0xf000,4K,
factory,app,factory,0x10000,1M,
`
	require.Equal(t, want, New(defaultEntries()...).EncodeCSV())

	custom := Entry{Name: "a, b", Type: 0x40, SubType: 0x17, Offset: 0x1000, Size: 0x100, Flags: format.FlagEncrypted}
	require.Equal(t, CSVHeader+"\n\"a, b\",0x40,0x17,0x1000,0x100,encrypted\n", New(custom).EncodeCSV())

	require.Equal(t, CSVHeader+"\n", New().EncodeCSV())

	names := map[string]string{
		"#boot":     `"#boot"`,
		" pad":      `" pad"`,
		"pad\t":     "\"pad\t\"",
		`say "hi"`:  `"say ""hi"""`,
		"in#side":   "in#side",
		"plain_one": "plain_one",
	}
	for name, want := range names {
		e := NewEntry(name, format.TypeData, format.SubTypeNVS, 0x9000, 0x1000)
		require.Equal(t, CSVHeader+"\n"+want+",data,nvs,0x9000,4K,\n", New(e).EncodeCSV(), "name %q", name)
	}
}

func TestCSV_RoundTripNames(t *testing.T) {
	app := NewEntry("factory", format.TypeApp, format.SubTypeFactory, 0x10000, 0x100000)
	for _, name := range []string{"#boot", " pad", "pad ", " both ", `q"uote`, "a,b", "#"} {
		t.Run(name, func(t *testing.T) {
			tbl := New(NewEntry(name, format.TypeData, format.SubTypeNVS, 0x9000, 0x1000), app)
			require.NoError(t, tbl.Validate())

			decoded, err := DecodeCSV(tbl.EncodeCSV())
			require.NoError(t, err)
			require.True(t, tbl.Equal(decoded), "decoded %q", decoded.Entries())
		})
	}
}

func TestCSV_RoundTrip(t *testing.T) {
	custom := NewEntry("custom", 0x40, 0x17, 0x400000, 0x10000)
	custom.Flags = format.FlagReadOnly | 0x100
	encrypted := NewEntry("storage", format.TypeData, format.SubTypeLittleFS, 0x310000, 0xF0000)
	encrypted.Flags = format.FlagEncrypted
	test := NewEntry("test", format.TypeApp, format.SubTypeTest, 0x500000, 0x1234)

	tables := map[string][]Entry{
		"default": defaultEntries(),
		"ota":     otaEntries(),
		"mixed":   append(otaEntries(), encrypted, custom, test),
	}

	for name, entries := range tables {
		t.Run(name, func(t *testing.T) {
			tbl := New(entries...)
			require.NoError(t, tbl.Validate())

			decoded, err := DecodeCSV(tbl.EncodeCSV())
			require.NoError(t, err)
			require.True(t, tbl.Equal(decoded), "decoded %v", decoded.Entries())
		})
	}
}
