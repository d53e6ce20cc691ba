package compress

// ZstdCompressor provides Zstandard compression for rendered reports.
//
// Zstd offers the best compression ratio of the supported codecs and is the
// right default when reports are archived or shipped over the network. The
// repeated labels and flag names of report text typically compress well
// beyond 5:1.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Returns:
//   - ZstdCompressor: New Zstd compressor instance
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
