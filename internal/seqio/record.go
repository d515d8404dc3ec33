// Package seqio reads and writes FASTA and FASTQ records, transparently
// decompressing gzip and zstd streams by their magic bytes.
package seqio

// Format is the record syntax of a stream: FASTA carries header + sequence,
// FASTQ carries header + sequence + per-base quality.
type Format int

const (
	// FormatFasta is the '>'-prefixed header + sequence syntax.
	FormatFasta Format = iota
	// FormatFastq is the '@'-prefixed four-line syntax with quality.
	FormatFastq
)

func (f Format) String() string {
	if f == FormatFastq {
		return "FASTQ"
	}
	return "FASTA"
}

// Record is one sequence record as read from a stream. Records are built by
// a Reader and never mutated afterward.
type Record struct {
	// ID is the first whitespace-delimited token of the header
	ID string

	// Header is the full header text without the leading '>' or '@'
	Header string

	// Seq is the uppercased sequence. For FASTA it holds only the letter
	// characters of the sequence lines; for FASTQ it is the sequence line
	// as read (uppercased), so it stays index-aligned with Qual
	Seq []byte

	// Qual is the per-base quality string, present only for FASTQ
	Qual []byte

	// Raw is the record's bytes exactly as they appeared in the input,
	// newline-terminated, so a record can be re-emitted without any
	// re-wrapping or header rewriting
	Raw []byte

	// File labels the source the record came from, usually the base name
	// of the input path
	File string
}
