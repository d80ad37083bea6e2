package intonation

import (
	"math"

	"github.com/calliope-audio/voicemetrics/analysis/common"
	"github.com/calliope-audio/voicemetrics/analysis/config"
	"github.com/calliope-audio/voicemetrics/logging"
)

// IntonationTracker segments a pitch stream into phrases and scores how
// melodically animated the speech is
// WHY: Phrase-level pitch movement (not instantaneous pitch) is what listeners
// perceive as animated vs. monotone delivery, so statistics are computed per
// phrase and rolled up over the recent history
type IntonationTracker struct {
	cfg config.IntonationConfig

	// Active phrase buffer; empty slices mean no phrase is being accumulated
	pitches []float64
	times   []float64

	lastVoicedMs float64
	haveVoiced   bool

	history        []PhraseRecord
	variability    *float64
	currentContour *Contour

	logger logging.Logger
}

// PhraseRecord holds the statistics of one finalized phrase
type PhraseRecord struct {
	MeanPitch        float64 `json:"mean_pitch"`          // Hz
	StdDev           float64 `json:"std_dev"`             // Population std-dev of pitch (Hz)
	Range            float64 `json:"range"`               // Max - min pitch (Hz)
	DirChangesPerSec float64 `json:"dir_changes_per_sec"` // Pitch direction reversals per second
	Contour          Contour `json:"contour"`
	VariabilityScore float64 `json:"variability_score"` // 0-100
	DurationMs       float64 `json:"duration_ms"`
	PitchCount       int     `json:"pitch_count"`
	StartTime        float64 `json:"start_time"` // ms
	EndTime          float64 `json:"end_time"`   // ms
}

// TrackerState is the aggregate snapshot returned after every sample
type TrackerState struct {
	VariabilityScore *float64       `json:"variability_score"` // Rolling 0-100 score; nil before the first phrase
	CurrentContour   *Contour       `json:"current_contour"`   // Contour of the most recent phrase
	PhraseHistory    []PhraseRecord `json:"phrase_history"`    // Most recent phrases, oldest first
}

// NewIntonationTracker creates a tracker with default settings
func NewIntonationTracker() *IntonationTracker {
	tracker, _ := NewIntonationTrackerWithConfig(config.DefaultIntonationConfig())
	return tracker
}

// NewIntonationTrackerWithConfig creates a tracker with explicit settings
func NewIntonationTrackerWithConfig(cfg config.IntonationConfig) (*IntonationTracker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &IntonationTracker{
		cfg:     cfg,
		history: make([]PhraseRecord, 0, cfg.HistorySize),
		logger: logging.WithFields(logging.Fields{
			"component": "intonation",
		}),
	}, nil
}

// AddPitch feeds one pitch sample into the tracker. A pitch of NaN or <= 0
// means the frame is unvoiced. Timestamps are milliseconds and must be
// monotonically increasing. The returned snapshot reflects state after this
// sample, including any phrase finalized by it.
func (t *IntonationTracker) AddPitch(pitchHz float64, timestampMs float64) TrackerState {
	if math.IsNaN(pitchHz) || pitchHz <= 0 {
		t.accumulateSilence(timestampMs)
	} else {
		t.pitches = append(t.pitches, pitchHz)
		t.times = append(t.times, timestampMs)
		t.lastVoicedMs = timestampMs
		t.haveVoiced = true
	}

	return t.snapshot()
}

// Reset returns the tracker to its initial empty state
func (t *IntonationTracker) Reset() {
	t.pitches = nil
	t.times = nil
	t.haveVoiced = false
	t.lastVoicedMs = 0
	t.history = t.history[:0]
	t.variability = nil
	t.currentContour = nil
}

// accumulateSilence checks whether the gap since the last voiced sample has
// grown long enough to close the active phrase
func (t *IntonationTracker) accumulateSilence(timestampMs float64) {
	if len(t.pitches) == 0 || !t.haveVoiced {
		return
	}

	if timestampMs-t.lastVoicedMs >= t.cfg.SilenceGapMs {
		t.finalizePhrase()
	}
}

// finalizePhrase turns the active buffer into a PhraseRecord, unless the
// buffer is too short to be a real phrase (spurious voicing blips)
func (t *IntonationTracker) finalizePhrase() {
	pitches, times := t.pitches, t.times
	t.pitches = nil
	t.times = nil

	if len(pitches) < t.cfg.MinPhrasePoints {
		t.logger.Debug("discarding short voiced burst", logging.Fields{
			"samples": len(pitches),
		})
		return
	}

	record := t.computePhrase(pitches, times)

	if len(t.history) >= t.cfg.HistorySize {
		t.history = append(t.history[1:], record)
	} else {
		t.history = append(t.history, record)
	}

	contour := record.Contour
	t.currentContour = &contour

	rolling := t.rollingVariability()
	t.variability = &rolling

	t.logger.Debug("phrase finalized", logging.Fields{
		"mean_pitch":  record.MeanPitch,
		"contour":     record.Contour.String(),
		"variability": record.VariabilityScore,
		"duration_ms": record.DurationMs,
	})
}

// computePhrase calculates the statistics for one completed phrase
func (t *IntonationTracker) computePhrase(pitches, times []float64) PhraseRecord {
	startTime := times[0]
	endTime := times[len(times)-1]
	durationMs := endTime - startTime

	changes := CountDirectionalChanges(pitches)
	changesPerSec := 0.0
	if durationMs > 0 {
		changesPerSec = float64(changes) / (durationMs / 1000.0)
	}

	stdDev := common.PopStdDev(pitches)
	pitchRange := common.Range(pitches)

	score := common.Clamp(
		t.cfg.StdDevWeight*stdDev+
			t.cfg.RangeWeight*pitchRange+
			t.cfg.ChangesWeight*changesPerSec,
		0.0, 100.0)

	return PhraseRecord{
		MeanPitch:        common.Mean(pitches),
		StdDev:           stdDev,
		Range:            pitchRange,
		DirChangesPerSec: changesPerSec,
		Contour:          t.classify(pitches),
		VariabilityScore: score,
		DurationMs:       durationMs,
		PitchCount:       len(pitches),
		StartTime:        startTime,
		EndTime:          endTime,
	}
}

// rollingVariability averages the phrase scores in the retained history.
// A plain mean never leaves the [min, max] envelope of the observed scores.
func (t *IntonationTracker) rollingVariability() float64 {
	scores := make([]float64, len(t.history))
	for i, record := range t.history {
		scores[i] = record.VariabilityScore
	}
	return common.Mean(scores)
}

func (t *IntonationTracker) classify(pitches []float64) Contour {
	return ClassifyContourWithThresholds(pitches, t.cfg.MonotoneRangeHz, t.cfg.PeakThresholdHz)
}

// snapshot copies the mutable aggregate state so callers can hold it
func (t *IntonationTracker) snapshot() TrackerState {
	state := TrackerState{}

	if t.variability != nil {
		score := *t.variability
		state.VariabilityScore = &score
	}
	if t.currentContour != nil {
		contour := *t.currentContour
		state.CurrentContour = &contour
	}
	if len(t.history) > 0 {
		state.PhraseHistory = make([]PhraseRecord, len(t.history))
		copy(state.PhraseHistory, t.history)
	}

	return state
}
