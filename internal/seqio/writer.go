package seqio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	gzip "github.com/klauspost/pgzip"
)

// writeCloser closes a compressed output stack in order: codec first, then
// the file beneath it.
type writeCloser struct {
	io.Writer
	closers []io.Closer
}

func (w *writeCloser) Close() error {
	var err error
	for _, c := range w.closers {
		if e := c.Close(); err == nil {
			err = e
		}
	}
	return err
}

// Create opens path for writing. Output compression is decided by the
// destination name alone: a .gz suffix selects gzip at gzipLevel, a .zst
// suffix selects zstd, anything else writes plain bytes.
func Create(path string, gzipLevel int) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}

	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".gz"):
		gw, err := gzip.NewWriterLevel(f, gzipLevel)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("gzip output: %w", err)
		}
		return &writeCloser{Writer: gw, closers: []io.Closer{gw, f}}, nil
	case strings.HasSuffix(lower, ".zst"):
		zw, err := zstd.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("zstd output: %w", err)
		}
		return &writeCloser{Writer: zw, closers: []io.Closer{zw, f}}, nil
	}
	return f, nil
}

// FastaWriter writes FASTA records with sequence lines wrapped at a fixed
// column width.
type FastaWriter struct {
	bw    *bufio.Writer
	width int
}

// NewFastaWriter wraps w. A width of 0 or less falls back to 80 columns.
func NewFastaWriter(w io.Writer, width int) *FastaWriter {
	if width <= 0 {
		width = 80
	}
	return &FastaWriter{bw: bufio.NewWriter(w), width: width}
}

// Write emits one record. header is written after the leading '>'.
func (w *FastaWriter) Write(header string, seq []byte) error {
	if _, err := fmt.Fprintf(w.bw, ">%s\n", header); err != nil {
		return err
	}
	for start := 0; start < len(seq); start += w.width {
		end := start + w.width
		if end > len(seq) {
			end = len(seq)
		}
		if _, err := w.bw.Write(seq[start:end]); err != nil {
			return err
		}
		if err := w.bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return nil
}

// Flush drains buffered output. Callers flush before closing the stream
// beneath the writer.
func (w *FastaWriter) Flush() error { return w.bw.Flush() }
