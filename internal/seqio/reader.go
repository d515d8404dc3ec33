package seqio

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	gzip "github.com/klauspost/pgzip"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// FormatError reports a malformed or truncated record. Record is the 1-based
// index of the offending record within its stream; 0 means the stream itself
// was unusable.
type FormatError struct {
	File   string
	Record int
	Msg    string
}

func (e *FormatError) Error() string {
	if e.Record > 0 {
		return fmt.Sprintf("%s: record %d: %s", e.File, e.Record, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Msg)
}

// Reader streams records out of a FASTA or FASTQ byte source in a single
// forward pass. The underlying bytes are consumed exactly once, front to
// back; a Reader cannot be restarted.
type Reader struct {
	br      *bufio.Reader
	format  Format
	file    string
	index   int    // records returned so far
	pending []byte // lookahead FASTA header line, with its EOL bytes
	closers []io.Closer
}

// Open opens path for streaming. Compression and format are both detected
// from the content; the filename is never consulted.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	r, err := NewReader(f, filepath.Base(path))
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closers = append(r.closers, f)
	return r, nil
}

// NewReader wraps r, sniffing the leading bytes for a gzip or zstd magic
// signature and the first non-blank line for the record syntax. label names
// the source in records and errors.
func NewReader(r io.Reader, label string) (*Reader, error) {
	br := bufio.NewReaderSize(r, 1<<16)
	head, err := br.Peek(4)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("%s: %w", label, err)
	}

	rd := &Reader{file: label}
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("%s: gzip: %w", label, err)
		}
		rd.closers = append(rd.closers, gz)
		rd.br = bufio.NewReaderSize(gz, 1<<16)
	case bytes.HasPrefix(head, zstdMagic):
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("%s: zstd: %w", label, err)
		}
		zrc := zr.IOReadCloser()
		rd.closers = append(rd.closers, zrc)
		rd.br = bufio.NewReaderSize(zrc, 1<<16)
	default:
		rd.br = br
	}

	if err := rd.detectFormat(); err != nil {
		return nil, err
	}
	return rd, nil
}

// Format reports the record syntax detected at open time.
func (r *Reader) Format() Format { return r.format }

// Close releases the decompressor (if any) and the underlying file.
func (r *Reader) Close() error {
	var err error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if e := r.closers[i].Close(); err == nil {
			err = e
		}
	}
	return err
}

// detectFormat consumes leading blank lines, then decides the syntax from
// the first byte of the first non-blank line without consuming it.
func (r *Reader) detectFormat() error {
	for {
		b, err := r.br.Peek(1)
		if err == io.EOF {
			return &FormatError{File: r.file, Msg: "empty input"}
		}
		if err != nil {
			return fmt.Errorf("%s: %w", r.file, err)
		}
		switch b[0] {
		case '\n', '\r':
			r.br.ReadByte()
		case '>':
			r.format = FormatFasta
			return nil
		case '@':
			r.format = FormatFastq
			return nil
		default:
			return &FormatError{
				File: r.file,
				Msg:  fmt.Sprintf("first non-empty line starts with %q, want '>' (FASTA) or '@' (FASTQ)", b[0]),
			}
		}
	}
}

// Next returns the next record, or io.EOF after the last one. Malformed and
// truncated records surface as *FormatError.
func (r *Reader) Next() (*Record, error) {
	var (
		rec *Record
		err error
	)
	if r.format == FormatFastq {
		rec, err = r.nextFastq()
	} else {
		rec, err = r.nextFasta()
	}
	if err != nil {
		return nil, err
	}
	r.index++
	rec.File = r.file
	return rec, nil
}

func (r *Reader) nextFasta() (*Record, error) {
	headerRaw := r.pending
	r.pending = nil
	for headerRaw == nil {
		raw, err := r.br.ReadBytes('\n')
		if len(raw) == 0 {
			if err == io.EOF {
				return nil, io.EOF
			}
			return nil, fmt.Errorf("%s: %w", r.file, err)
		}
		line := trimEOL(raw)
		if len(line) == 0 {
			continue
		}
		if line[0] != '>' {
			return nil, &FormatError{File: r.file, Record: r.index + 1, Msg: "expected '>' header line"}
		}
		headerRaw = raw
	}

	header := strings.TrimSpace(string(trimEOL(headerRaw)[1:]))
	rawBuf := append([]byte(nil), headerRaw...)
	var seq []byte
	for {
		raw, err := r.br.ReadBytes('\n')
		if len(raw) == 0 {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("%s: %w", r.file, err)
		}
		line := trimEOL(raw)
		if len(line) > 0 && line[0] == '>' {
			r.pending = raw // next record's header
			break
		}
		rawBuf = append(rawBuf, raw...)
		for _, c := range line {
			if isLetter(c) {
				seq = append(seq, toUpper(c))
			}
		}
	}

	if len(seq) == 0 {
		return nil, &FormatError{File: r.file, Record: r.index + 1, Msg: "record has no sequence lines"}
	}
	return &Record{
		ID:     firstToken(header),
		Header: header,
		Seq:    seq,
		Raw:    ensureNewline(rawBuf),
	}, nil
}

func (r *Reader) nextFastq() (*Record, error) {
	var headerRaw []byte
	for headerRaw == nil {
		raw, err := r.br.ReadBytes('\n')
		if len(raw) == 0 {
			if err == io.EOF {
				return nil, io.EOF
			}
			return nil, fmt.Errorf("%s: %w", r.file, err)
		}
		if len(trimEOL(raw)) == 0 {
			continue
		}
		headerRaw = raw
	}
	headerLine := trimEOL(headerRaw)
	if headerLine[0] != '@' {
		return nil, &FormatError{File: r.file, Record: r.index + 1, Msg: "expected '@' header line"}
	}

	seqRaw, err := r.requireLine()
	if err != nil {
		return nil, err
	}
	sepRaw, err := r.requireLine()
	if err != nil {
		return nil, err
	}
	qualRaw, err := r.requireLine()
	if err != nil {
		return nil, err
	}

	seq := trimEOL(seqRaw)
	sep := trimEOL(sepRaw)
	qual := trimEOL(qualRaw)
	if len(sep) == 0 || sep[0] != '+' {
		return nil, &FormatError{File: r.file, Record: r.index + 1, Msg: "missing '+' separator line"}
	}
	if len(qual) != len(seq) {
		return nil, &FormatError{
			File:   r.file,
			Record: r.index + 1,
			Msg:    fmt.Sprintf("quality length %d does not match sequence length %d", len(qual), len(seq)),
		}
	}

	raw := make([]byte, 0, len(headerRaw)+len(seqRaw)+len(sepRaw)+len(qualRaw)+1)
	raw = append(raw, headerRaw...)
	raw = append(raw, seqRaw...)
	raw = append(raw, sepRaw...)
	raw = append(raw, qualRaw...)

	header := strings.TrimSpace(string(headerLine[1:]))
	return &Record{
		ID:     firstToken(header),
		Header: header,
		Seq:    bytes.ToUpper(seq),
		Qual:   append([]byte(nil), qual...),
		Raw:    ensureNewline(raw),
	}, nil
}

// requireLine reads a line that must exist; EOF here means the final record
// was cut off mid-way.
func (r *Reader) requireLine() ([]byte, error) {
	raw, err := r.br.ReadBytes('\n')
	if len(raw) == 0 {
		if err == io.EOF {
			return nil, &FormatError{File: r.file, Record: r.index + 1, Msg: "truncated record"}
		}
		return nil, fmt.Errorf("%s: %w", r.file, err)
	}
	return raw, nil
}

// ReadAll loads every record from path into memory. Use a Reader directly
// when a single streaming pass is enough.
func ReadAll(path string) ([]*Record, Format, error) {
	r, err := Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer r.Close()

	var recs []*Record
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return recs, r.Format(), nil
		}
		if err != nil {
			return nil, r.Format(), err
		}
		recs = append(recs, rec)
	}
}

func trimEOL(b []byte) []byte { return bytes.TrimRight(b, "\r\n") }

func isLetter(c byte) bool {
	return ('A' <= c && c <= 'Z') || ('a' <= c && c <= 'z')
}

func toUpper(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func firstToken(s string) string {
	if f := strings.Fields(s); len(f) > 0 {
		return f[0]
	}
	return s
}

func ensureNewline(b []byte) []byte {
	if len(b) == 0 || b[len(b)-1] != '\n' {
		return append(b, '\n')
	}
	return b
}
