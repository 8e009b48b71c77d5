package compress

// NoOpCompressor stores tables uncompressed.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data unchanged.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data unchanged.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}

func (c NoOpCompressor) DecompressLimit(data []byte, limit int) ([]byte, error) {
	if err := checkLimit(len(data), limit); err != nil {
		return nil, err
	}

	return data, nil
}
