package seqio

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestFastaWriter_Wrapping(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		header string
		seq    string
		want   string
	}{
		{
			"wraps at width",
			4,
			"frag1 len=10",
			"ACGTACGTAC",
			">frag1 len=10\nACGT\nACGT\nAC\n",
		},
		{
			"short sequence single line",
			80,
			"frag2",
			"ACGT",
			">frag2\nACGT\n",
		},
		{
			"exact multiple of width",
			4,
			"frag3",
			"ACGTACGT",
			">frag3\nACGT\nACGT\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewFastaWriter(&buf, tt.width)
			if err := w.Write(tt.header, []byte(tt.seq)); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			if err := w.Flush(); err != nil {
				t.Fatalf("Flush() error = %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestCreate_SuffixCompression(t *testing.T) {
	const content = ">chr9 test contig\nACGTACGTACGTACGT\nACGT\n"

	tests := []struct {
		name string
		file string
	}{
		{"plain output", "out.fa"},
		{"gzip round trip", "out.fa.gz"},
		{"zstd round trip", "out.fa.zst"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			w, err := Create(path, 6)
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if _, err := w.Write([]byte(content)); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			if err := w.Close(); err != nil {
				t.Fatalf("Close() error = %v", err)
			}

			// content must survive whichever codec the suffix selected
			recs, format, err := ReadAll(path)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if format != FormatFasta {
				t.Errorf("format = %v, want FASTA", format)
			}
			if len(recs) != 1 || recs[0].ID != "chr9" || string(recs[0].Seq) != "ACGTACGTACGTACGTACGT" {
				t.Errorf("round trip mangled the record: %+v", recs[0])
			}
		})
	}
}

func TestCreate_GzipBytesMatchPlain(t *testing.T) {
	const content = "@r1\nACGT\n+\nIIII\n"
	dir := t.TempDir()

	plain := filepath.Join(dir, "out.fq")
	gz := filepath.Join(dir, "out.fq.gz")
	for _, path := range []string{plain, gz} {
		w, err := Create(path, 6)
		if err != nil {
			t.Fatalf("Create(%s) error = %v", path, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
		if err := w.Close(); err != nil {
			t.Fatal(err)
		}
	}

	plainBytes, err := os.ReadFile(plain)
	if err != nil {
		t.Fatal(err)
	}
	if string(plainBytes) != content {
		t.Errorf("plain output = %q, want %q", plainBytes, content)
	}

	// decompressing the .gz output must yield the plain bytes
	r, err := Open(gz)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()
	rec, err := r.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if !bytes.Equal(rec.Raw, plainBytes) {
		t.Errorf("decompressed record = %q, want %q", rec.Raw, plainBytes)
	}
}
