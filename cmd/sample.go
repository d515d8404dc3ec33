package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sagrudd/limpet/config"
	"github.com/sagrudd/limpet/internal/limpet"
)

var (
	sampleIn  string
	sampleOut string
	sampleN   int
)

// sampleCmd represents the sample command
var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Randomly sample n records from an input, keeping the original format",
	Long: `Pick n records from a FASTA or FASTQ input with single-pass reservoir
sampling, so memory stays bounded by the sample size no matter how large the
input is. Selected records are written byte for byte as they were read, in
input order; the output format always matches the input. If the output name
ends in .gz or .zst the output is compressed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := config.New()
		if err != nil {
			return err
		}
		return limpet.Sample(limpet.SampleOptions{
			In:   sampleIn,
			Out:  sampleOut,
			N:    sampleN,
			Conf: conf,
			Rand: runRand(cmd),
		})
	},
}

// set flags
func init() {
	rootCmd.AddCommand(sampleCmd)

	sampleCmd.Flags().StringVarP(&sampleIn, "in", "i", "", "Input file name <FASTA/FASTQ, optionally compressed>")
	sampleCmd.Flags().StringVarP(&sampleOut, "out", "o", "", "Output file name; a .gz or .zst suffix compresses the output")
	sampleCmd.Flags().IntVarP(&sampleN, "n", "n", 0, "Number of records to sample")
	sampleCmd.Flags().Int64("seed", 0, "RNG seed for a reproducible run")
	sampleCmd.MarkFlagRequired("in")
	sampleCmd.MarkFlagRequired("out")
	sampleCmd.MarkFlagRequired("n")
}
