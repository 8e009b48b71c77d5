package compress

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/esppart/format"
	"github.com/arloliu/esppart/section"
)

var errRoundTrip = errors.New("decompressed data differs from input")

func getAllCodecs() map[string]Codec {
	return map[string]Codec{
		"NoOp":   NewNoOpCompressor(),
		"LZ4":    NewLZ4Compressor(),
		"S2":     NewS2Compressor(),
		"Zstd":   NewZstdCompressor(),
		"Snappy": NewSnappyCompressor(),
	}
}

// sampleTable builds a padded binary table with a few entries.
func sampleTable(t *testing.T) []byte {
	t.Helper()

	data := bytes.Repeat([]byte{section.FillByte}, section.MaxTableLength)
	records := []section.EntryRecord{
		{Type: format.TypeData, SubType: format.SubTypeNVS, Offset: 0x9000, Size: 0x6000, Name: "nvs"},
		{Type: format.TypeData, SubType: format.SubTypePhy, Offset: 0xf000, Size: 0x1000, Name: "phy_init"},
		{Type: format.TypeApp, SubType: format.SubTypeFactory, Offset: 0x10000, Size: 0x100000, Name: "factory"},
	}

	off := 0
	for _, r := range records {
		off = r.WriteToSlice(data, off)
	}
	cs := section.NewChecksumRecord(data[:off])
	cs.WriteToSlice(data, off)

	return data
}

func TestGetCodec(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
		format.CompressionSnappy,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)
			require.NotNil(t, codec)
		})
	}

	_, err := GetCodec(format.CompressionType(0))
	require.Error(t, err)
	_, err = GetCodec(format.CompressionType(99))
	require.Error(t, err)
}

func TestAllCodecs_EmptyData(t *testing.T) {
	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			decompressed, err := codec.Decompress(nil)
			require.NoError(t, err)
			require.Empty(t, decompressed)

			compressed, err := codec.Compress([]byte{})
			require.NoError(t, err)

			decompressed, err = codec.Decompress(compressed)
			require.NoError(t, err)
			require.Empty(t, decompressed)
		})
	}
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{name: "single_byte", data: []byte{0x42}},
		{name: "end_marker", data: bytes.Repeat([]byte{0xFF}, section.RecordSize)},
		{name: "table", data: sampleTable(t)},
		{name: "many_tables", data: bytes.Repeat(sampleTable(t), 64)},
	}

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			for _, tc := range testCases {
				t.Run(tc.name, func(t *testing.T) {
					compressed, err := codec.Compress(tc.data)
					require.NoError(t, err)
					require.NotEmpty(t, compressed)

					decompressed, err := codec.Decompress(compressed)
					require.NoError(t, err)
					require.Equal(t, tc.data, decompressed)
				})
			}
		})
	}
}

func TestAllCodecs_ShrinkPaddedTable(t *testing.T) {
	raw := sampleTable(t)

	for codecName, codec := range getAllCodecs() {
		if codecName == "NoOp" {
			continue
		}

		t.Run(codecName, func(t *testing.T) {
			compressed, err := codec.Compress(raw)
			require.NoError(t, err)
			require.Less(t, len(compressed), len(raw)/4)
		})
	}
}

func TestAllCodecs_InvalidData(t *testing.T) {
	invalidInputs := []struct {
		name string
		data []byte
	}{
		{name: "random_bytes", data: []byte{0xFF, 0xFF, 0xFF, 0xFF}},
		{name: "text_as_compressed", data: []byte("this is not compressed data")},
	}

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			if codecName == "NoOp" {
				t.Skip("NoOp codec doesn't validate data")
			}

			for _, input := range invalidInputs {
				t.Run(input.name, func(t *testing.T) {
					_, err := codec.Decompress(input.data)
					require.Error(t, err)
				})
			}
		})
	}
}

func TestAllCodecs_DecompressLimit(t *testing.T) {
	data := sampleTable(t)

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			compressed, err := codec.Compress(data)
			require.NoError(t, err)

			decompressed, err := codec.DecompressLimit(compressed, len(data))
			require.NoError(t, err)
			require.Equal(t, data, decompressed)

			_, err = codec.DecompressLimit(compressed, len(data)-1)
			require.ErrorIs(t, err, ErrOutputLimit)

			empty, err := codec.DecompressLimit(nil, 0)
			require.NoError(t, err)
			require.Empty(t, empty)
		})
	}
}

func TestAllCodecs_DecompressLimitExpansion(t *testing.T) {
	// highly compressible input far above the limit
	zeros := make([]byte, 4*1024*1024)

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			compressed, err := codec.Compress(zeros)
			require.NoError(t, err)

			_, err = codec.DecompressLimit(compressed, section.MaxTableLength)
			require.ErrorIs(t, err, ErrOutputLimit)
		})
	}
}

func TestAllCodecs_ConcurrentUsage(t *testing.T) {
	const numGoroutines = 16
	raw := sampleTable(t)

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			var wg sync.WaitGroup
			errCh := make(chan error, numGoroutines)

			for i := 0; i < numGoroutines; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()

					compressed, err := codec.Compress(raw)
					if err != nil {
						errCh <- err
						return
					}
					decompressed, err := codec.Decompress(compressed)
					if err != nil {
						errCh <- err
						return
					}
					if !bytes.Equal(raw, decompressed) {
						errCh <- errRoundTrip
					}
				}()
			}

			wg.Wait()
			close(errCh)
			for err := range errCh {
				require.NoError(t, err)
			}
		})
	}
}
