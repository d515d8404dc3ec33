package limpet

import (
	"fmt"
	"math/rand"

	log "github.com/sirupsen/logrus"

	"github.com/sagrudd/limpet/config"
	"github.com/sagrudd/limpet/internal/seqio"
)

// SeqSampleOptions are the arguments to the seq_sample operation.
type SeqSampleOptions struct {
	Reference string
	Out       string
	N         int
	Min       int
	Max       int
	Conf      config.Config
	Rand      *rand.Rand
}

// fragment is one sampled interval. start is 1-based and the range is
// inclusive on both ends.
type fragment struct {
	contig string
	start  int
	length int
	seq    []byte
}

func (f fragment) end() int { return f.start + f.length - 1 }

// contigWeights returns the number of valid start positions per contig for a
// fragment of length l, and their sum. Contigs shorter than l get weight 0.
// The table is a pure function of (contigs, l) and is recomputed per draw.
func contigWeights(contigs []*seqio.Record, l int) ([]uint64, uint64) {
	weights := make([]uint64, len(contigs))
	var total uint64
	for i, c := range contigs {
		if len(c.Seq) >= l {
			weights[i] = uint64(len(c.Seq) - l + 1)
			total += weights[i]
		}
	}
	return weights, total
}

// pickContig draws a contig index with probability proportional to its
// weight. The cumulative scan runs in reference order, so equal draws
// resolve to the earlier contig and the choice is deterministic for a given
// generator state.
func pickContig(rng *rand.Rand, weights []uint64, total uint64) int {
	draw := uint64(rng.Int63n(int64(total)))
	for i, w := range weights {
		if draw < w {
			return i
		}
		draw -= w
	}
	return len(weights) - 1
}

// hasNRun reports whether seq contains a maximal run of 'N' bases strictly
// longer than max.
func hasNRun(seq []byte, max int) bool {
	run := 0
	for _, b := range seq {
		if b != 'N' {
			run = 0
			continue
		}
		run++
		if run > max {
			return true
		}
	}
	return false
}

// sampleIntervals draws n fragments such that every valid start coordinate
// across the reference is approximately equally likely to be chosen.
// Candidates with an ambiguous-base run longer than conf.MaxNRun are
// rejected and redrawn with a fresh length; the retry loop is bounded by
// conf.FragmentRetries per output fragment.
func sampleIntervals(contigs []*seqio.Record, n, min, max int, conf config.Config, rng *rand.Rand) ([]fragment, error) {
	eligible := false
	for _, c := range contigs {
		if len(c.Seq) >= min {
			eligible = true
			break
		}
	}
	if !eligible {
		return nil, fmt.Errorf("no eligible contig: no sequence is at least %d bp long", min)
	}

	frags := make([]fragment, 0, n)
	for len(frags) < n {
		drawn := false
		for try := 0; try < conf.FragmentRetries && !drawn; try++ {
			l := min + rng.Intn(max-min+1)
			weights, total := contigWeights(contigs, l)
			if total == 0 {
				return nil, fmt.Errorf("no eligible contig: no sequence is at least %d bp long", l)
			}

			c := contigs[pickContig(rng, weights, total)]
			start := rng.Intn(len(c.Seq) - l + 1)
			seq := c.Seq[start : start+l]
			if hasNRun(seq, conf.MaxNRun) {
				continue
			}

			frags = append(frags, fragment{
				contig: c.ID,
				start:  start + 1,
				length: l,
				seq:    seq,
			})
			drawn = true
		}
		if !drawn {
			return nil, fmt.Errorf(
				"gave up on fragment %d after %d attempts: too much ambiguous sequence for lengths %d..%d",
				len(frags)+1, conf.FragmentRetries, min, max,
			)
		}
	}
	return frags, nil
}

// SeqSample draws n random fragments from a reference and writes them as
// FASTA with provenance headers carrying the source contig, the 1-based
// inclusive coordinate range, and the fragment length.
func SeqSample(opt SeqSampleOptions) error {
	if opt.N <= 0 {
		return fmt.Errorf("n must be greater than 0, got %d", opt.N)
	}
	if opt.Min <= 0 {
		return fmt.Errorf("min must be greater than 0, got %d", opt.Min)
	}
	if opt.Min > opt.Max {
		return fmt.Errorf("min (%d) must be <= max (%d)", opt.Min, opt.Max)
	}

	contigs, _, err := seqio.ReadAll(opt.Reference)
	if err != nil {
		return err
	}

	frags, err := sampleIntervals(contigs, opt.N, opt.Min, opt.Max, opt.Conf, opt.Rand)
	if err != nil {
		return err
	}

	w, err := seqio.Create(opt.Out, opt.Conf.GzipLevel)
	if err != nil {
		return err
	}
	fw := seqio.NewFastaWriter(w, opt.Conf.LineWidth)
	for i, f := range frags {
		header := fmt.Sprintf("seq%06d src=%s range=%d..%d len=%d", i+1, f.contig, f.start, f.end(), f.length)
		if err := fw.Write(header, f.seq); err != nil {
			w.Close()
			return fmt.Errorf("write %s: %w", opt.Out, err)
		}
	}
	if err := fw.Flush(); err != nil {
		w.Close()
		return fmt.Errorf("write %s: %w", opt.Out, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close %s: %w", opt.Out, err)
	}

	log.Infof("wrote %d sequences to %s", len(frags), opt.Out)
	return nil
}
