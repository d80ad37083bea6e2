package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/calliope-audio/voicemetrics/analysis/config"
	"github.com/calliope-audio/voicemetrics/analysis/intonation"
	"github.com/calliope-audio/voicemetrics/analysis/weight"
	"github.com/calliope-audio/voicemetrics/internal/framesource"
)

// FileReport is the per-file analysis summary
type FileReport struct {
	Path             string                    `json:"path"`
	SampleRate       int                       `json:"sample_rate"`
	Lightness        *float64                  `json:"lightness"`
	WeightCategory   string                    `json:"weight_category,omitempty"`
	Variability      *float64                  `json:"variability"`
	VariabilityLabel string                    `json:"variability_label,omitempty"`
	Phrases          []intonation.PhraseRecord `json:"phrases,omitempty"`
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.wav> [file.wav ...]",
	Short: "Analyze WAV recordings for vocal weight and intonation",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	var bar *progressbar.ProgressBar
	if !jsonOutput && len(args) > 1 {
		bar = progressbar.NewOptions(len(args),
			progressbar.OptionSetDescription("analyzing recordings"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(50),
		)
	}

	reports := make([]FileReport, 0, len(args))
	for _, path := range args {
		report, err := analyzeFile(path)
		if err != nil {
			return fmt.Errorf("analyzing %s: %w", path, err)
		}
		reports = append(reports, report)
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		fmt.Println()
	}

	if jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(reports)
	}

	for _, report := range reports {
		printReport(report)
	}
	return nil
}

func analyzeFile(path string) (FileReport, error) {
	samples, sampleRate, err := framesource.LoadWAV(path)
	if err != nil {
		return FileReport{}, err
	}

	framer, err := framesource.NewFramer(sampleRate, fftSize)
	if err != nil {
		return FileReport{}, err
	}

	analyzer, err := weight.NewVocalWeightAnalyzer(sampleRate, fftSize)
	if err != nil {
		return FileReport{}, err
	}

	intonationCfg := config.DefaultIntonationConfig()
	intonationCfg.SilenceGapMs = gapMs
	tracker, err := intonation.NewIntonationTrackerWithConfig(intonationCfg)
	if err != nil {
		return FileReport{}, err
	}

	report := FileReport{Path: path, SampleRate: sampleRate}

	frames := framer.Frames(samples)
	var state intonation.TrackerState
	lastMs := 0.0
	for _, frame := range frames {
		result := analyzer.Analyze(frame.SpectrumDB, frame.PitchHz)
		if result.Lightness != nil {
			report.Lightness = result.Lightness
		}
		state = tracker.AddPitch(frame.PitchHz, frame.TimeMs)
		lastMs = frame.TimeMs
	}
	// Trailing silence so a phrase still running at EOF gets recorded
	state = tracker.AddPitch(0, lastMs+gapMs)

	if report.Lightness != nil {
		report.WeightCategory = weight.GetWeightInfo(*report.Lightness).Label
	}
	report.Variability = state.VariabilityScore
	if state.VariabilityScore != nil {
		report.VariabilityLabel = intonation.GetVariabilityInfo(*state.VariabilityScore).Label
	}
	report.Phrases = state.PhraseHistory

	return report, nil
}

func printReport(report FileReport) {
	fmt.Printf("%s (%d Hz)\n", report.Path, report.SampleRate)

	if report.Lightness != nil {
		fmt.Printf("  vocal weight: %5.1f  %s\n", *report.Lightness, report.WeightCategory)
	} else {
		fmt.Println("  vocal weight: no voiced frames")
	}

	if report.Variability != nil {
		fmt.Printf("  intonation:   %5.1f  %s\n", *report.Variability, report.VariabilityLabel)
	} else {
		fmt.Println("  intonation:   no phrases detected")
	}

	for i, phrase := range report.Phrases {
		info := intonation.GetContourInfo(phrase.Contour)
		fmt.Printf("  phrase %2d: %s %-9s mean %5.1f Hz  range %5.1f Hz  score %5.1f\n",
			i+1, info.Symbol, info.Label, phrase.MeanPitch, phrase.Range, phrase.VariabilityScore)
	}
}
