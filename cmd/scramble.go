package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sagrudd/limpet/config"
	"github.com/sagrudd/limpet/internal/limpet"
)

var scrambleOut string

// scrambleCmd represents the scramble command
var scrambleCmd = &cobra.Command{
	Use:   "scramble <input>...",
	Short: "Merge and shuffle records from multiple inputs into one FASTA",
	Long: `Read every record from every input (any mix of FASTA/FASTQ, plain or
compressed), shuffle the combined collection uniformly, and write a single
FASTA. Each output header carries a fresh sequential accession plus the
record's provenance:

  >scramble_00001 src=<original_accession> file=<source_file> | <original header>

Original accessions appearing more than once across the inputs get a _2, _3,
... suffix in the src= field so duplicates stay distinguishable. The whole
collection is held in memory; global randomization needs the full set.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := config.New()
		if err != nil {
			return err
		}
		return limpet.Scramble(limpet.ScrambleOptions{
			Inputs: args,
			Out:    scrambleOut,
			Conf:   conf,
			Rand:   runRand(cmd),
		})
	},
}

// set flags
func init() {
	rootCmd.AddCommand(scrambleCmd)

	scrambleCmd.Flags().StringVarP(&scrambleOut, "out", "o", "", "Output FASTA file name")
	scrambleCmd.Flags().Int64("seed", 0, "RNG seed for a reproducible run")
	scrambleCmd.MarkFlagRequired("out")
}
