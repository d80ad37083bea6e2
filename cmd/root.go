package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/calliope-audio/voicemetrics/logging"
)

var (
	fftSize    int
	gapMs      float64
	jsonOutput bool
	debug      bool
	version    = "0.3.0"
)

var rootCmd = &cobra.Command{
	Use:   "voicemetrics",
	Short: "Voice quality analysis: vocal weight and intonation variability",
	Long: `voicemetrics analyzes voice recordings for two perceptual qualities:

  vocal weight           how light/breathy vs. heavy/pressed the voice sounds,
                         from harmonic amplitude structure (H1-H2, spectral slope)
  intonation variability how melodically animated vs. monotone the speech is,
                         from phrase-level pitch statistics and contours`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debug {
			logging.SetLevel(logging.DebugLevel)
		}
	},
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVar(&fftSize, "fft-size", 2048, "FFT size for spectral framing (power of two)")
	rootCmd.PersistentFlags().Float64Var(&gapMs, "gap", 280, "silence gap that ends a phrase (ms)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit results as JSON")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.SetVersionTemplate("voicemetrics version {{.Version}}\n")
	rootCmd.Version = version
}
