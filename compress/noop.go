package compress

// NoOpCompressor passes report bytes through unchanged. It backs the
// CompressionNone type so callers can treat "no compression" as just another
// codec.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a pass-through codec.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns the input slice as-is. Unlike the real codecs, the result
// aliases the input; callers must not mutate data while holding the result.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input slice as-is, with the same aliasing caveat as
// Compress.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
