// Command sectdump renders the section table of an executable as a text
// report.
package main

import (
	"fmt"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/arloliu/sectable"
	"github.com/arloliu/sectable/compress"
	"github.com/arloliu/sectable/format"
	"github.com/arloliu/sectable/table"
)

type dumpTool struct {
	outPath     string
	compression string
	maxSections int
	verbose     bool

	logger log.Logger
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "sectdump:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	d := new(dumpTool)
	root := cobra.Command{
		Use:           "sectdump [flags] FILE",
		Short:         "Render the section table of an executable",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, args []string) error {
			return d.run(args[0])
		},
	}

	root.Flags().StringVarP(&d.outPath, "out", "o", "", "output file (default stdout)")
	root.Flags().StringVarP(&d.compression, "compress", "c", "none", "compress the report output: none|zstd|s2|lz4 (requires --out)")
	root.Flags().IntVar(&d.maxSections, "max-sections", 0, "override the section count cap")
	root.Flags().BoolVarP(&d.verbose, "verbose", "v", false, "enable debug logging")

	return &root
}

func (d *dumpTool) run(path string) error {
	d.logger = newLogger(d.verbose)

	compression, err := format.ParseCompressionType(d.compression)
	if err != nil {
		return err
	}
	if compression != format.CompressionNone && d.outPath == "" {
		return fmt.Errorf("--compress requires --out: compressed output is not written to a terminal")
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	opts := []table.Option{table.WithLogger(d.logger)}
	if d.maxSections > 0 {
		opts = append(opts, table.WithMaxEntryCount(d.maxSections))
	}

	t, err := sectable.Read(f, opts...)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	level.Debug(d.logger).Log("msg", "section table read",
		"file", path, "sections", t.SectionCount(), "fingerprint", fmt.Sprintf("%016x", t.Fingerprint()))

	report, err := sectable.Render(t)
	if err != nil {
		return err
	}

	output := []byte(report)
	if compression != format.CompressionNone {
		output, err = compressReport(d.logger, compression, output)
		if err != nil {
			return err
		}
	}

	if d.outPath == "" {
		_, err = os.Stdout.Write(output)

		return err
	}

	return os.WriteFile(d.outPath, output, 0o644)
}

func compressReport(logger log.Logger, compression format.CompressionType, report []byte) ([]byte, error) {
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, err
	}

	compressed, err := codec.Compress(report)
	if err != nil {
		return nil, fmt.Errorf("compress report: %w", err)
	}

	stats := compress.CompressionStats{
		Algorithm:      compression,
		OriginalSize:   int64(len(report)),
		CompressedSize: int64(len(compressed)),
	}
	level.Debug(logger).Log("msg", "report compressed",
		"algorithm", stats.Algorithm.String(),
		"original_bytes", stats.OriginalSize,
		"compressed_bytes", stats.CompressedSize,
		"savings_pct", fmt.Sprintf("%.1f", stats.SpaceSavings()))

	return compressed, nil
}

func newLogger(verbose bool) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	if verbose {
		return level.NewFilter(logger, level.AllowDebug())
	}

	return level.NewFilter(logger, level.AllowInfo())
}
