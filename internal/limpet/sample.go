package limpet

import (
	"fmt"
	"io"
	"math/rand"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/sagrudd/limpet/config"
	"github.com/sagrudd/limpet/internal/seqio"
)

// SampleOptions are the arguments to the sample operation.
type SampleOptions struct {
	In   string
	Out  string
	N    int
	Conf config.Config
	Rand *rand.Rand
}

// pick is one reservoir slot: a record and its 0-based position in the
// input stream.
type pick struct {
	index int
	rec   *seqio.Record
}

// reservoirSample selects up to n records from r uniformly at random
// without replacement, reading the stream exactly once and never holding
// more than n records. After i records have gone by, each has been retained
// with probability n/i. Picks come back in ascending stream order.
func reservoirSample(r *seqio.Reader, n int, rng *rand.Rand) ([]pick, int, error) {
	reservoir := make([]pick, 0, n)
	seen := 0
	for {
		rec, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, seen, err
		}
		if len(reservoir) < n {
			reservoir = append(reservoir, pick{index: seen, rec: rec})
		} else if j := rng.Intn(seen + 1); j < n {
			reservoir[j] = pick{index: seen, rec: rec}
		}
		seen++
	}

	sort.Slice(reservoir, func(i, j int) bool {
		return reservoir[i].index < reservoir[j].index
	})
	return reservoir, seen, nil
}

// Sample streams the input once and writes a uniform random subset of n
// records, byte for byte as they were read, in input order. When the input
// holds fewer than n records the whole input is written. The output format
// always matches the input format.
func Sample(opt SampleOptions) error {
	if opt.N <= 0 {
		return fmt.Errorf("n must be greater than 0, got %d", opt.N)
	}

	r, err := seqio.Open(opt.In)
	if err != nil {
		return err
	}
	defer r.Close()

	picks, seen, err := reservoirSample(r, opt.N, opt.Rand)
	if err != nil {
		return err
	}

	w, err := seqio.Create(opt.Out, opt.Conf.GzipLevel)
	if err != nil {
		return err
	}
	for _, p := range picks {
		if _, err := w.Write(p.rec.Raw); err != nil {
			w.Close()
			return fmt.Errorf("write %s: %w", opt.Out, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close %s: %w", opt.Out, err)
	}

	log.Infof("sampled %d of %d %s records into %s", len(picks), seen, r.Format(), opt.Out)
	return nil
}
