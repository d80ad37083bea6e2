package intonation

import (
	"math"
	"testing"

	"github.com/calliope-audio/voicemetrics/analysis/config"
)

const stepMs = 20.0

// feedPhrase feeds voiced samples at a fixed cadence and returns the next
// free timestamp
func feedPhrase(tracker *IntonationTracker, pitches []float64, startMs float64) float64 {
	timeMs := startMs
	for _, pitch := range pitches {
		tracker.AddPitch(pitch, timeMs)
		timeMs += stepMs
	}
	return timeMs
}

// feedSilence feeds unvoiced samples covering durationMs and returns the
// last state along with the next free timestamp
func feedSilence(tracker *IntonationTracker, startMs, durationMs float64) (TrackerState, float64) {
	var state TrackerState
	timeMs := startMs
	for elapsed := 0.0; elapsed <= durationMs; elapsed += stepMs {
		state = tracker.AddPitch(0, timeMs)
		timeMs += stepMs
	}
	return state, timeMs
}

// rampPitches builds a linear pitch ramp with the given number of points
func rampPitches(from, to float64, count int) []float64 {
	pitches := make([]float64, count)
	for i := range pitches {
		pitches[i] = from + (to-from)*float64(i)/float64(count-1)
	}
	return pitches
}

func TestTwoPhrasesSegmented(t *testing.T) {
	tracker := NewIntonationTracker()

	next := feedPhrase(tracker, rampPitches(190, 210, 15), 0)
	_, next = feedSilence(tracker, next, 350)
	next = feedPhrase(tracker, rampPitches(230, 210, 15), next)
	state, _ := feedSilence(tracker, next, 350)

	if len(state.PhraseHistory) != 2 {
		t.Fatalf("expected 2 phrases, got %d", len(state.PhraseHistory))
	}

	if mean := state.PhraseHistory[0].MeanPitch; math.Abs(mean-200) > 5 {
		t.Errorf("first phrase mean pitch = %v, want 200 +/- 5", mean)
	}
	if mean := state.PhraseHistory[1].MeanPitch; math.Abs(mean-220) > 5 {
		t.Errorf("second phrase mean pitch = %v, want 220 +/- 5", mean)
	}

	if got := state.PhraseHistory[0].Contour; got != ContourRising {
		t.Errorf("first phrase contour = %v, want rising", got)
	}
	if got := state.PhraseHistory[1].Contour; got != ContourFalling {
		t.Errorf("second phrase contour = %v, want falling", got)
	}
}

func TestShortBurstDiscarded(t *testing.T) {
	tracker := NewIntonationTracker()

	next := feedPhrase(tracker, []float64{200, 205, 210}, 0) // Below MinPhrasePoints
	state, _ := feedSilence(tracker, next, 400)

	if len(state.PhraseHistory) != 0 {
		t.Errorf("expected no phrases from a 3-sample burst, got %d", len(state.PhraseHistory))
	}
	if state.VariabilityScore != nil {
		t.Errorf("expected nil variability score, got %v", *state.VariabilityScore)
	}
}

func TestShortSilenceDoesNotSplitPhrase(t *testing.T) {
	tracker := NewIntonationTracker()

	next := feedPhrase(tracker, rampPitches(190, 200, 8), 0)
	// Gap shorter than the threshold: phrase keeps accumulating
	_, next = feedSilence(tracker, next, 100)
	next = feedPhrase(tracker, rampPitches(200, 210, 8), next)
	state, _ := feedSilence(tracker, next, 400)

	if len(state.PhraseHistory) != 1 {
		t.Fatalf("expected 1 phrase across a short gap, got %d", len(state.PhraseHistory))
	}
	if got := state.PhraseHistory[0].PitchCount; got != 16 {
		t.Errorf("phrase pitch count = %d, want 16", got)
	}
}

func TestPhraseRecordFields(t *testing.T) {
	tracker := NewIntonationTracker()

	pitches := []float64{200, 210, 220, 210, 200, 190}
	next := feedPhrase(tracker, pitches, 1000)
	state, _ := feedSilence(tracker, next, 400)

	if len(state.PhraseHistory) != 1 {
		t.Fatalf("expected 1 phrase, got %d", len(state.PhraseHistory))
	}
	record := state.PhraseHistory[0]

	if record.PitchCount != len(pitches) {
		t.Errorf("pitch count = %d, want %d", record.PitchCount, len(pitches))
	}
	if record.StartTime != 1000 {
		t.Errorf("start time = %v, want 1000", record.StartTime)
	}
	if want := 1000 + stepMs*float64(len(pitches)-1); record.EndTime != want {
		t.Errorf("end time = %v, want %v", record.EndTime, want)
	}
	if want := record.EndTime - record.StartTime; record.DurationMs != want {
		t.Errorf("duration = %v, want %v", record.DurationMs, want)
	}
	if record.Range != 30 {
		t.Errorf("range = %v, want 30", record.Range)
	}
	if record.Contour != ContourRiseFall {
		t.Errorf("contour = %v, want rise-fall", record.Contour)
	}

	wantChanges := 1.0 / (record.DurationMs / 1000.0)
	if math.Abs(record.DirChangesPerSec-wantChanges) > 1e-9 {
		t.Errorf("dir changes per sec = %v, want %v", record.DirChangesPerSec, wantChanges)
	}
}

func TestVariabilityScoreBounds(t *testing.T) {
	t.Run("near constant pitch", func(t *testing.T) {
		tracker := NewIntonationTracker()

		next := feedPhrase(tracker, rampPitches(200, 201, 20), 0)
		state, _ := feedSilence(tracker, next, 400)

		if state.VariabilityScore == nil {
			t.Fatal("expected variability score")
		}
		if *state.VariabilityScore >= 25 {
			t.Errorf("near-constant phrase score = %v, want < 25", *state.VariabilityScore)
		}
	})

	t.Run("wide swings", func(t *testing.T) {
		tracker := NewIntonationTracker()

		// Two full up-down sweeps over 1.2 seconds
		var pitches []float64
		for i := 0; i < 60; i++ {
			pitches = append(pitches, 200+60*math.Sin(4*math.Pi*float64(i)/59.0))
		}
		next := feedPhrase(tracker, pitches, 0)
		state, _ := feedSilence(tracker, next, 400)

		if state.VariabilityScore == nil {
			t.Fatal("expected variability score")
		}
		if *state.VariabilityScore <= 50 {
			t.Errorf("wide-swing phrase score = %v, want > 50", *state.VariabilityScore)
		}
	})
}

func TestHistoryCapFIFO(t *testing.T) {
	tracker := NewIntonationTracker()

	next := 0.0
	var state TrackerState
	for i := 0; i < 11; i++ {
		next = feedPhrase(tracker, rampPitches(100+float64(i), 130+float64(i), 10), next)
		state, next = feedSilence(tracker, next, 400)
	}

	if len(state.PhraseHistory) != 10 {
		t.Fatalf("history length = %d, want 10", len(state.PhraseHistory))
	}

	// The first phrase (mean ~115) must have been evicted; the oldest kept
	// phrase is the second one (mean ~116)
	if mean := state.PhraseHistory[0].MeanPitch; math.Abs(mean-116) > 1 {
		t.Errorf("oldest retained phrase mean = %v, want ~116", mean)
	}
	if mean := state.PhraseHistory[9].MeanPitch; math.Abs(mean-125) > 1 {
		t.Errorf("newest phrase mean = %v, want ~125", mean)
	}
}

func TestRollingScoreStaysInObservedRange(t *testing.T) {
	tracker := NewIntonationTracker()

	phrases := [][]float64{
		rampPitches(200, 202, 15), // Low variability
		nil,                       // Filled below with a high-variability sweep
		rampPitches(180, 200, 15), // Mid
	}
	var sweep []float64
	for i := 0; i < 40; i++ {
		sweep = append(sweep, 200+50*math.Sin(4*math.Pi*float64(i)/39.0))
	}
	phrases[1] = sweep

	next := 0.0
	var state TrackerState
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, pitches := range phrases {
		next = feedPhrase(tracker, pitches, next)
		state, next = feedSilence(tracker, next, 400)

		latest := state.PhraseHistory[len(state.PhraseHistory)-1]
		lo = math.Min(lo, latest.VariabilityScore)
		hi = math.Max(hi, latest.VariabilityScore)

		if state.VariabilityScore == nil {
			t.Fatal("expected rolling score after a phrase")
		}
		if *state.VariabilityScore < lo-1e-9 || *state.VariabilityScore > hi+1e-9 {
			t.Errorf("rolling score %v outside observed range [%v, %v]",
				*state.VariabilityScore, lo, hi)
		}
	}
}

func TestReset(t *testing.T) {
	tracker := NewIntonationTracker()

	next := feedPhrase(tracker, rampPitches(190, 220, 15), 0)
	state, next := feedSilence(tracker, next, 400)
	if len(state.PhraseHistory) != 1 {
		t.Fatalf("setup: expected 1 phrase, got %d", len(state.PhraseHistory))
	}

	// Leave a partial phrase buffered, then reset
	feedPhrase(tracker, rampPitches(200, 210, 6), next)
	tracker.Reset()

	state = tracker.AddPitch(0, next+10000)
	if state.VariabilityScore != nil || state.CurrentContour != nil || len(state.PhraseHistory) != 0 {
		t.Errorf("expected empty state after reset, got %+v", state)
	}

	// The buffered partial phrase must not resurface after reset
	state, _ = feedSilence(tracker, next+10000, 400)
	if len(state.PhraseHistory) != 0 {
		t.Errorf("partial phrase survived reset: %d phrases", len(state.PhraseHistory))
	}
}

func TestWithConfigValidation(t *testing.T) {
	cfg := config.DefaultIntonationConfig()
	cfg.SilenceGapMs = -5
	if _, err := NewIntonationTrackerWithConfig(cfg); err == nil {
		t.Error("expected error for negative silence gap")
	}

	cfg = config.DefaultIntonationConfig()
	cfg.HistorySize = 0
	if _, err := NewIntonationTrackerWithConfig(cfg); err == nil {
		t.Error("expected error for zero history size")
	}
}

func TestClassifyVariabilityBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  VariabilityCategory
	}{
		{0, VariabilityMonotone},
		{24, VariabilityMonotone},
		{25, VariabilityModerate},
		{49, VariabilityModerate},
		{50, VariabilityMelodic},
		{74, VariabilityMelodic},
		{75, VariabilityVeryAnimated},
		{100, VariabilityVeryAnimated},
	}

	for _, tt := range tests {
		if got := ClassifyVariability(tt.score); got != tt.want {
			t.Errorf("ClassifyVariability(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestGetContourInfoSymbols(t *testing.T) {
	tests := []struct {
		contour Contour
		symbol  string
	}{
		{ContourRising, "↗"},
		{ContourFalling, "↘"},
		{ContourRiseFall, "↗↘"},
		{ContourMonotone, "→"},
		{ContourVaried, "↝"},
	}

	for _, tt := range tests {
		if info := GetContourInfo(tt.contour); info.Symbol != tt.symbol {
			t.Errorf("GetContourInfo(%v).Symbol = %q, want %q", tt.contour, info.Symbol, tt.symbol)
		}
	}
}
