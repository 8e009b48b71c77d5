// Package compress provides the compression codecs used by partition table
// archives.
//
// A binary partition table is 3 KiB of mostly 0xFF padding, so every codec
// shrinks it considerably. The codec is chosen per archive and recorded in the
// archive header:
//   - None: stored as is
//   - Zstd: best ratio (valyala/gozstd with cgo, klauspost/compress otherwise)
//   - S2: klauspost/compress S2, fast with a good ratio
//   - LZ4: pierrec/lz4 block format
//   - Snappy: golang/snappy block format, readable by most LevelDB tooling
//
// All codecs are stateless values backed by pooled encoders and decoders and
// are safe for concurrent use:
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(raw)
package compress
