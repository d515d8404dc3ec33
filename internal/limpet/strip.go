package limpet

import (
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/sagrudd/limpet/config"
	"github.com/sagrudd/limpet/internal/seqio"
)

// StripOptions are the arguments to the strip operation.
type StripOptions struct {
	In   string
	Out  string
	Conf config.Config
}

// Strip rewrites each header down to its accession token (the first
// whitespace-delimited word), leaving sequences untouched. Records stream
// through one at a time.
func Strip(opt StripOptions) error {
	r, err := seqio.Open(opt.In)
	if err != nil {
		return err
	}
	defer r.Close()

	w, err := seqio.Create(opt.Out, opt.Conf.GzipLevel)
	if err != nil {
		return err
	}
	fw := seqio.NewFastaWriter(w, opt.Conf.LineWidth)

	count := 0
	for {
		rec, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			w.Close()
			return err
		}
		if err := fw.Write(rec.ID, rec.Seq); err != nil {
			w.Close()
			return fmt.Errorf("write %s: %w", opt.Out, err)
		}
		count++
	}
	if err := fw.Flush(); err != nil {
		w.Close()
		return fmt.Errorf("write %s: %w", opt.Out, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close %s: %w", opt.Out, err)
	}

	log.Infof("wrote %d sequences to %s", count, opt.Out)
	return nil
}
