// Package cmd is for command line interactions with the limpet application
package cmd

import (
	"math/rand"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sagrudd/limpet/config"
	"github.com/sagrudd/limpet/internal/limpet"
)

var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "limpet",
	Short: "Sample, merge, and reformat FASTA/FASTQ records",
	Long: `limpet derives new sequence collections from existing FASTA/FASTQ files:
reservoir-sample records from arbitrarily large inputs, draw random genomic
intervals from a reference, merge and shuffle multiple inputs under
provenance headers, or strip headers down to their accessions.

Inputs may be gzip- or zstd-compressed; compression and record format are
both detected from the stream content, never from the filename. Commands
that randomize accept --seed for byte-identical reruns.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initSettings)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug detail")
}

// initSettings layers the optional limpet.yaml settings file over the
// built-in defaults.
func initSettings() {
	config.SetDefaults()

	viper.SetConfigName("limpet")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("limpet")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warnf("settings file: %v", err)
		}
	}
}

// runRand builds the run's generator from the command's --seed flag. The
// flag only counts when the user actually set it; an untouched flag means a
// non-reproducible, time-seeded run.
func runRand(cmd *cobra.Command) *rand.Rand {
	seed, _ := cmd.Flags().GetInt64("seed")
	return limpet.NewRand(seed, cmd.Flags().Changed("seed"))
}
