package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sagrudd/limpet/config"
	"github.com/sagrudd/limpet/internal/limpet"
)

var (
	stripIn  string
	stripOut string
)

// stripCmd represents the strip command
var stripCmd = &cobra.Command{
	Use:   "strip",
	Short: "Strip headers down to the accession token",
	Long: `Rewrite each header to just its accession (the first whitespace-delimited
token), leaving the sequences untouched, and write FASTA.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := config.New()
		if err != nil {
			return err
		}
		return limpet.Strip(limpet.StripOptions{
			In:   stripIn,
			Out:  stripOut,
			Conf: conf,
		})
	},
}

// set flags
func init() {
	rootCmd.AddCommand(stripCmd)

	stripCmd.Flags().StringVarP(&stripIn, "in", "i", "", "Input file name <FASTA, optionally compressed>")
	stripCmd.Flags().StringVarP(&stripOut, "out", "o", "", "Output FASTA file name")
	stripCmd.MarkFlagRequired("in")
	stripCmd.MarkFlagRequired("out")
}
