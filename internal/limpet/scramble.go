package limpet

import (
	"fmt"
	"math/rand"

	log "github.com/sirupsen/logrus"

	"github.com/sagrudd/limpet/config"
	"github.com/sagrudd/limpet/internal/seqio"
)

// ScrambleOptions are the arguments to the scramble operation.
type ScrambleOptions struct {
	Inputs []string
	Out    string
	Conf   config.Config
	Rand   *rand.Rand
}

// accessionRegistry counts how often each original accession has been seen
// so repeats can be disambiguated. It lives for one run only.
type accessionRegistry map[string]int

// disambiguate returns name untouched on first sight; the k-th occurrence
// after that comes back as name_<k>. Assignment happens in input read order,
// before the shuffle, so the mapping does not depend on the seed.
func (reg accessionRegistry) disambiguate(name string) string {
	reg[name]++
	if k := reg[name]; k > 1 {
		return fmt.Sprintf("%s_%d", name, k)
	}
	return name
}

// loaded is one input record plus its de-duplicated provenance accession.
type loaded struct {
	accession string
	header    string
	seq       []byte
	file      string
}

// Scramble reads every record from every input into memory, shuffles the
// combined collection uniformly, and writes a single FASTA whose headers
// carry a fresh sequential accession plus the record's provenance. Memory is
// proportional to the total input; global randomization needs the full set.
func Scramble(opt ScrambleOptions) error {
	if len(opt.Inputs) == 0 {
		return fmt.Errorf("at least one input file is required")
	}

	reg := make(accessionRegistry)
	var all []loaded
	for _, path := range opt.Inputs {
		recs, _, err := seqio.ReadAll(path)
		if err != nil {
			return err
		}
		for _, rec := range recs {
			all = append(all, loaded{
				accession: reg.disambiguate(rec.ID),
				header:    rec.Header,
				seq:       rec.Seq,
				file:      rec.File,
			})
		}
	}

	opt.Rand.Shuffle(len(all), func(i, j int) {
		all[i], all[j] = all[j], all[i]
	})

	w, err := seqio.Create(opt.Out, opt.Conf.GzipLevel)
	if err != nil {
		return err
	}
	fw := seqio.NewFastaWriter(w, opt.Conf.LineWidth)
	for i, rec := range all {
		header := fmt.Sprintf("scramble_%05d src=%s file=%s | %s", i+1, rec.accession, rec.file, rec.header)
		if err := fw.Write(header, rec.seq); err != nil {
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

	log.Infof("scrambled %d records from %d inputs into %s", len(all), len(opt.Inputs), opt.Out)
	return nil
}
