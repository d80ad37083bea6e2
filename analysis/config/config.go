package config

import "fmt"

// WeightConfig configures vocal weight analysis
type WeightConfig struct {
	SampleRate int `json:"sample_rate"` // Audio sample rate (Hz)
	FFTSize    int `json:"fft_size"`    // FFT size used by the spectrum source (power of two)

	HarmonicCount  int     `json:"harmonic_count"`   // Number of harmonics to read (1x..Nx F0)
	MinPitch       float64 `json:"min_pitch"`        // Lowest valid fundamental (Hz)
	MaxPitch       float64 `json:"max_pitch"`        // Highest valid fundamental (Hz)
	SilenceFloorDB float64 `json:"silence_floor_db"` // Fundamental at/below this level counts as absent

	SmoothingAlpha float64 `json:"smoothing_alpha"` // EMA coefficient for the lightness score

	// Score folding coefficients
	ScoreOffset float64 `json:"score_offset"` // Baseline score for a flat, pressed spectrum
	H1H2Weight  float64 `json:"h1h2_weight"`  // Score gain per dB of H1-H2
	SlopeWeight float64 `json:"slope_weight"` // Score gain per dB/harmonic of downward slope
}

// DefaultWeightConfig returns weight analysis settings calibrated for speech
func DefaultWeightConfig(sampleRate, fftSize int) WeightConfig {
	return WeightConfig{
		SampleRate:     sampleRate,
		FFTSize:        fftSize,
		HarmonicCount:  6,
		MinPitch:       60.0,
		MaxPitch:       400.0,
		SilenceFloorDB: -70.0,
		SmoothingAlpha: 0.4,
		ScoreOffset:    28.0,
		H1H2Weight:     2.4,
		SlopeWeight:    4.0,
	}
}

// Validate checks the configuration for construction-time errors
func (c WeightConfig) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", c.SampleRate)
	}
	if c.FFTSize <= 0 {
		return fmt.Errorf("FFT size must be positive, got %d", c.FFTSize)
	}
	if c.FFTSize&(c.FFTSize-1) != 0 {
		return fmt.Errorf("FFT size must be a power of two, got %d", c.FFTSize)
	}
	if c.HarmonicCount < 1 {
		return fmt.Errorf("harmonic count must be at least 1, got %d", c.HarmonicCount)
	}
	if c.MinPitch <= 0 || c.MaxPitch <= c.MinPitch {
		return fmt.Errorf("invalid pitch range [%g, %g]", c.MinPitch, c.MaxPitch)
	}
	if c.SmoothingAlpha <= 0 || c.SmoothingAlpha > 1 {
		return fmt.Errorf("smoothing alpha must be in (0, 1], got %g", c.SmoothingAlpha)
	}
	return nil
}

// IntonationConfig configures phrase segmentation and variability scoring
type IntonationConfig struct {
	SilenceGapMs    float64 `json:"silence_gap_ms"`    // Silence duration that ends a phrase
	MinPhrasePoints int     `json:"min_phrase_points"` // Voiced samples required to record a phrase
	HistorySize     int     `json:"history_size"`      // Max retained phrases (FIFO)

	// Contour classification thresholds
	MonotoneRangeHz float64 `json:"monotone_range_hz"` // Total range below this is monotone
	PeakThresholdHz float64 `json:"peak_threshold_hz"` // Interior peak prominence for rise-fall

	// Variability score weights
	StdDevWeight  float64 `json:"std_dev_weight"`
	RangeWeight   float64 `json:"range_weight"`
	ChangesWeight float64 `json:"changes_weight"` // Per directional change per second
}

// DefaultIntonationConfig returns intonation tracking settings calibrated for speech
func DefaultIntonationConfig() IntonationConfig {
	return IntonationConfig{
		SilenceGapMs:    280.0,
		MinPhrasePoints: 4,
		HistorySize:     10,
		MonotoneRangeHz: 10.0,
		PeakThresholdHz: 8.0,
		StdDevWeight:    1.4,
		RangeWeight:     0.35,
		ChangesWeight:   8.0,
	}
}

// Validate checks the configuration for construction-time errors
func (c IntonationConfig) Validate() error {
	if c.SilenceGapMs <= 0 {
		return fmt.Errorf("silence gap must be positive, got %g", c.SilenceGapMs)
	}
	if c.MinPhrasePoints < 2 {
		return fmt.Errorf("min phrase points must be at least 2, got %d", c.MinPhrasePoints)
	}
	if c.HistorySize < 1 {
		return fmt.Errorf("history size must be at least 1, got %d", c.HistorySize)
	}
	return nil
}
