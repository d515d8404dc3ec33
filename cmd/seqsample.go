package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sagrudd/limpet/config"
	"github.com/sagrudd/limpet/internal/limpet"
)

var (
	seqSampleRef string
	seqSampleOut string
	seqSampleN   int
	seqSampleMin int
	seqSampleMax int
)

// seqSampleCmd represents the seq_sample command
var seqSampleCmd = &cobra.Command{
	Use:   "seq_sample",
	Short: "Sample random genomic intervals from a reference",
	Long: `Draw n random fragments from a reference so that every valid start
coordinate across all contigs is approximately equally likely: fragment
length is uniform in [min, max], the contig is chosen with probability
proportional to its number of valid start positions for that length, and the
start is uniform within the contig. Candidates containing a run of more than
two ambiguous 'N' bases are rejected and redrawn.

Output is FASTA with headers of the form
  >seq000001 src=<contig> range=<start>..<end> len=<length>
where the range is 1-based and inclusive.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := config.New()
		if err != nil {
			return err
		}
		return limpet.SeqSample(limpet.SeqSampleOptions{
			Reference: seqSampleRef,
			Out:       seqSampleOut,
			N:         seqSampleN,
			Min:       seqSampleMin,
			Max:       seqSampleMax,
			Conf:      conf,
			Rand:      runRand(cmd),
		})
	},
}

// set flags
func init() {
	rootCmd.AddCommand(seqSampleCmd)

	seqSampleCmd.Flags().StringVarP(&seqSampleRef, "reference", "r", "", "Reference file name <FASTA/FASTQ, optionally compressed>")
	seqSampleCmd.Flags().StringVarP(&seqSampleOut, "out", "o", "", "Output FASTA file name")
	seqSampleCmd.Flags().IntVarP(&seqSampleN, "n", "n", 0, "Number of fragments to sample")
	seqSampleCmd.Flags().IntVar(&seqSampleMin, "min", 0, "Minimum fragment length (inclusive)")
	seqSampleCmd.Flags().IntVar(&seqSampleMax, "max", 0, "Maximum fragment length (inclusive)")
	seqSampleCmd.Flags().Int64("seed", 0, "RNG seed for a reproducible run")
	seqSampleCmd.MarkFlagRequired("reference")
	seqSampleCmd.MarkFlagRequired("out")
	seqSampleCmd.MarkFlagRequired("n")
	seqSampleCmd.MarkFlagRequired("min")
	seqSampleCmd.MarkFlagRequired("max")
}
