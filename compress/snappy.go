package compress

import "github.com/golang/snappy"

// SnappyCompressor uses the Snappy block format.
type SnappyCompressor struct{}

var _ Codec = (*SnappyCompressor)(nil)

func NewSnappyCompressor() SnappyCompressor {
	return SnappyCompressor{}
}

func (c SnappyCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return snappy.Encode(nil, data), nil
}

func (c SnappyCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return snappy.Decode(nil, data)
}

func (c SnappyCompressor) DecompressLimit(data []byte, limit int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	n, err := snappy.DecodedLen(data)
	if err != nil {
		return nil, err
	}
	if err := checkLimit(n, limit); err != nil {
		return nil, err
	}

	return snappy.Decode(make([]byte, n), data)
}
