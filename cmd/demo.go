package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calliope-audio/voicemetrics/analysis/intonation"
	"github.com/calliope-audio/voicemetrics/analysis/weight"
	"github.com/calliope-audio/voicemetrics/internal/framesource"
)

const (
	demoSampleRate = 48000
	demoFFTSize    = 2048
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the analyzers over a synthetic practice session",
	Long: `Generates a synthetic session (a light rising phrase, a heavy falling
phrase, and a rise-fall phrase separated by silence) and streams it through
both analyzers, printing the evolving scores.`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	analyzer, err := weight.NewVocalWeightAnalyzer(demoSampleRate, demoFFTSize)
	if err != nil {
		return err
	}
	tracker := intonation.NewIntonationTracker()

	var state intonation.TrackerState
	var lightness *float64
	phrasesSeen := 0

	for _, frame := range framesource.DemoFrames(demoSampleRate, demoFFTSize) {
		result := analyzer.Analyze(frame.SpectrumDB, frame.PitchHz)
		if result.Lightness != nil {
			lightness = result.Lightness
		}

		state = tracker.AddPitch(frame.PitchHz, frame.TimeMs)
		if len(state.PhraseHistory) > phrasesSeen {
			phrasesSeen = len(state.PhraseHistory)
			phrase := state.PhraseHistory[phrasesSeen-1]
			info := intonation.GetContourInfo(phrase.Contour)
			fmt.Printf("phrase %d: %s %-9s mean %5.1f Hz  variability %5.1f", phrasesSeen,
				info.Symbol, info.Label, phrase.MeanPitch, phrase.VariabilityScore)
			if lightness != nil {
				fmt.Printf("  lightness %5.1f (%s)", *lightness, weight.GetWeightInfo(*lightness).Label)
			}
			fmt.Println()
		}
	}

	if state.VariabilityScore != nil {
		info := intonation.GetVariabilityInfo(*state.VariabilityScore)
		fmt.Printf("session intonation: %5.1f  %s\n", *state.VariabilityScore, info.Label)
	}
	if lightness != nil {
		info := weight.GetWeightInfo(*lightness)
		fmt.Printf("session weight:     %5.1f  %s\n", *lightness, info.Label)
	}

	return nil
}
