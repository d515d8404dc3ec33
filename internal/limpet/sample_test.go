package limpet

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sagrudd/limpet/config"
	"github.com/sagrudd/limpet/internal/seqio"
)

const fiveRecordFasta = ">r1\nAAAA\n>r2\nCCCC\n>r3\nGGGG\n>r4\nTTTT\n>r5\nACGT\n"

func testConf() config.Config {
	return config.Config{LineWidth: 80, MaxNRun: 2, FragmentRetries: 1000, GzipLevel: 6}
}

func newTestReader(t *testing.T, in string) *seqio.Reader {
	t.Helper()
	r, err := seqio.NewReader(strings.NewReader(in), "test")
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	return r
}

func TestReservoirSample_Size(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		wantLen  int
		wantSeen int
	}{
		{"n smaller than input", 2, 2, 5},
		{"n equals input", 5, 5, 5},
		{"n larger than input", 9, 5, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			picks, seen, err := reservoirSample(newTestReader(t, fiveRecordFasta), tt.n, rand.New(rand.NewSource(1)))
			if err != nil {
				t.Fatalf("reservoirSample() error = %v", err)
			}
			if len(picks) != tt.wantLen {
				t.Errorf("len(picks) = %d, want %d", len(picks), tt.wantLen)
			}
			if seen != tt.wantSeen {
				t.Errorf("seen = %d, want %d", seen, tt.wantSeen)
			}
			for i := 1; i < len(picks); i++ {
				if picks[i-1].index >= picks[i].index {
					t.Errorf("picks out of stream order: %d before %d", picks[i-1].index, picks[i].index)
				}
			}
		})
	}
}

func TestReservoirSample_FullInputInOrder(t *testing.T) {
	picks, _, err := reservoirSample(newTestReader(t, fiveRecordFasta), 10, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}
	wantIDs := []string{"r1", "r2", "r3", "r4", "r5"}
	for i, p := range picks {
		if p.rec.ID != wantIDs[i] {
			t.Errorf("picks[%d] = %s, want %s", i, p.rec.ID, wantIDs[i])
		}
	}
}

// Drawing n=1 from 5 records over many seeds should pick each record about
// a fifth of the time.
func TestReservoirSample_Uniformity(t *testing.T) {
	const runs = 2000
	counts := make([]int, 5)
	for seed := int64(0); seed < runs; seed++ {
		picks, _, err := reservoirSample(newTestReader(t, fiveRecordFasta), 1, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatal(err)
		}
		if len(picks) != 1 {
			t.Fatalf("len(picks) = %d, want 1", len(picks))
		}
		counts[picks[0].index]++
	}
	for i, c := range counts {
		freq := float64(c) / runs
		if freq < 0.15 || freq > 0.25 {
			t.Errorf("record %d picked with frequency %.3f, want ~0.2", i, freq)
		}
	}
}

func TestSample_UsageError(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.fa")
	err := Sample(SampleOptions{In: "missing.fa", Out: out, N: 0, Conf: testConf(), Rand: rand.New(rand.NewSource(1))})
	if err == nil || !strings.Contains(err.Error(), "greater than 0") {
		t.Errorf("Sample(n=0) error = %v, want usage error", err)
	}
	// the usage check fires before any IO, so no output appears
	if _, statErr := os.Stat(out); statErr == nil {
		t.Error("output file was created despite usage error")
	}
}

// A FASTQ sample of the whole input must reproduce the input bytes exactly:
// same format, same line structure, same quality strings.
func TestSample_FastqFidelity(t *testing.T) {
	in := "@read1 lane=1\nACGTN\n+\nIIIII\n@read2\nGGCC\n+read2\nJJJJ\n"
	dir := t.TempDir()
	inPath := filepath.Join(dir, "reads.fq")
	outPath := filepath.Join(dir, "sub.fq")
	if err := os.WriteFile(inPath, []byte(in), 0644); err != nil {
		t.Fatal(err)
	}

	err := Sample(SampleOptions{In: inPath, Out: outPath, N: 10, Conf: testConf(), Rand: rand.New(rand.NewSource(11))})
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}

	out, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != in {
		t.Errorf("output = %q, want byte-identical input %q", out, in)
	}
}

func TestSample_Determinism(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.fa")
	if err := os.WriteFile(inPath, []byte(fiveRecordFasta), 0644); err != nil {
		t.Fatal(err)
	}

	outs := make([][]byte, 2)
	for i := range outs {
		outPath := filepath.Join(dir, "out"+string(rune('a'+i))+".fa")
		err := Sample(SampleOptions{In: inPath, Out: outPath, N: 2, Conf: testConf(), Rand: rand.New(rand.NewSource(99))})
		if err != nil {
			t.Fatalf("Sample() error = %v", err)
		}
		out, err := os.ReadFile(outPath)
		if err != nil {
			t.Fatal(err)
		}
		outs[i] = out
	}
	if string(outs[0]) != string(outs[1]) {
		t.Errorf("same seed produced different outputs:\n%q\n%q", outs[0], outs[1])
	}
}
