// Package compress provides compression and decompression codecs for rendered
// section table reports.
//
// Reports are deterministic line-oriented text: field labels repeat once per
// record and flag names repeat across records, so every supported algorithm
// achieves good ratios. Compression is applied to the complete rendered
// output, typically before writing it to a file.
//
// # Supported Algorithms
//
//   - None (format.CompressionNone): passthrough, zero overhead
//   - Zstd (format.CompressionZstd): best ratio, moderate speed
//   - S2 (format.CompressionS2): balanced ratio and speed
//   - LZ4 (format.CompressionLZ4): fastest decompression, moderate ratio
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	compressed, err := codec.Compress(report)
//
// # Zstd Implementations
//
// The default Zstd codec is the pure-Go klauspost/compress implementation.
// Building with the cgo_zstd tag swaps in valyala/gozstd, which binds the
// reference C library and trades build complexity for throughput.
//
// # Thread Safety
//
// All codec implementations are stateless or internally pooled and safe for
// concurrent use.
package compress
