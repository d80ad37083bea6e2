package weight

import (
	"math"

	"github.com/calliope-audio/voicemetrics/analysis/common"
	"github.com/calliope-audio/voicemetrics/analysis/config"
	"github.com/calliope-audio/voicemetrics/logging"
)

// VocalWeightAnalyzer measures vocal weight from harmonic amplitudes
// WHY: The level difference between the first two harmonics (H1-H2) and the
// decay rate across higher harmonics separate light/breathy phonation from
// heavy/pressed phonation, which is the perceptual axis voice training works on
type VocalWeightAnalyzer struct {
	cfg           config.WeightConfig
	binResolution float64 // Hz per spectrum bin

	smoothed    *float64 // Retained lightness EMA; nil until the first valid frame
	harmonicDB  []float64
	harmonicIdx []float64

	logger logging.Logger
}

// WeightResult contains per-frame vocal weight measurements.
// Nil fields mean the frame carried no usable voice signal.
type WeightResult struct {
	H1H2          *float64 `json:"h1h2"`           // dB(H1) - dB(H2)
	SpectralSlope *float64 `json:"spectral_slope"` // Harmonic decay (dB per harmonic step)
	Lightness     *float64 `json:"lightness"`      // Smoothed 0-100 score (higher = lighter)
	RawLightness  *float64 `json:"raw_lightness"`  // Unsmoothed score for this frame
}

// NewVocalWeightAnalyzer creates an analyzer for the given spectrum geometry.
// Both parameters must be positive and fftSize must be a power of two;
// violations are configuration errors and fail immediately.
func NewVocalWeightAnalyzer(sampleRate, fftSize int) (*VocalWeightAnalyzer, error) {
	return NewVocalWeightAnalyzerWithConfig(config.DefaultWeightConfig(sampleRate, fftSize))
}

// NewVocalWeightAnalyzerWithConfig creates an analyzer with explicit settings
func NewVocalWeightAnalyzerWithConfig(cfg config.WeightConfig) (*VocalWeightAnalyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &VocalWeightAnalyzer{
		cfg:           cfg,
		binResolution: float64(cfg.SampleRate) / float64(cfg.FFTSize),
		harmonicDB:    make([]float64, 0, cfg.HarmonicCount),
		harmonicIdx:   make([]float64, 0, cfg.HarmonicCount),
		logger: logging.WithFields(logging.Fields{
			"component": "vocal_weight",
		}),
	}, nil
}

// Analyze computes vocal weight features for one spectrum/pitch frame.
// The spectrum holds dB magnitudes, one per frequency bin, and is read-only.
// A pitch of NaN or <= 0 means the frame is unvoiced. Invalid frames return a
// result with all fields nil and leave the smoothing state untouched.
func (a *VocalWeightAnalyzer) Analyze(spectrum []float64, pitchHz float64) *WeightResult {
	if len(spectrum) == 0 {
		return &WeightResult{}
	}
	if math.IsNaN(pitchHz) || pitchHz <= 0 {
		return &WeightResult{}
	}
	if pitchHz < a.cfg.MinPitch || pitchHz > a.cfg.MaxPitch {
		a.logger.Debug("pitch outside voice range", logging.Fields{
			"pitch_hz": pitchHz,
		})
		return &WeightResult{}
	}

	fundamentalBin := a.nearestBin(pitchHz)
	if fundamentalBin < 0 || fundamentalBin >= len(spectrum) {
		return &WeightResult{}
	}
	if spectrum[fundamentalBin] <= a.cfg.SilenceFloorDB {
		// Fundamental is buried in the noise floor
		return &WeightResult{}
	}

	a.extractHarmonics(spectrum, pitchHz)

	result := &WeightResult{}

	if len(a.harmonicDB) >= 2 {
		h1h2 := a.harmonicDB[0] - a.harmonicDB[1]
		result.H1H2 = &h1h2

		slope, _ := common.LinRegression(a.harmonicIdx, a.harmonicDB)
		result.SpectralSlope = &slope
	}

	raw := a.foldLightness(result.H1H2, result.SpectralSlope)
	result.RawLightness = &raw

	if a.smoothed == nil {
		seeded := raw
		a.smoothed = &seeded
	} else {
		*a.smoothed += a.cfg.SmoothingAlpha * (raw - *a.smoothed)
	}
	lightness := *a.smoothed
	result.Lightness = &lightness

	return result
}

// Reset clears the retained lightness smoothing state.
// The next valid frame re-seeds smoothing from its raw score.
func (a *VocalWeightAnalyzer) Reset() {
	a.smoothed = nil
}

// nearestBin rounds a frequency to its closest spectrum bin
func (a *VocalWeightAnalyzer) nearestBin(freqHz float64) int {
	return int(math.Round(freqHz / a.binResolution))
}

// extractHarmonics reads the dB level at the bin nearest each harmonic of the
// fundamental. Harmonics beyond the spectrum's Nyquist range are skipped.
func (a *VocalWeightAnalyzer) extractHarmonics(spectrum []float64, pitchHz float64) {
	a.harmonicDB = a.harmonicDB[:0]
	a.harmonicIdx = a.harmonicIdx[:0]

	for h := 1; h <= a.cfg.HarmonicCount; h++ {
		bin := a.nearestBin(float64(h) * pitchHz)
		if bin >= len(spectrum) {
			break
		}
		a.harmonicDB = append(a.harmonicDB, spectrum[bin])
		a.harmonicIdx = append(a.harmonicIdx, float64(h))
	}
}

// foldLightness maps H1-H2 and spectral slope onto a 0-100 lightness score.
// Larger H1-H2 and steeper downward slope both raise the score; a missing
// feature contributes nothing rather than invalidating the frame.
func (a *VocalWeightAnalyzer) foldLightness(h1h2, slope *float64) float64 {
	score := a.cfg.ScoreOffset
	if h1h2 != nil {
		score += a.cfg.H1H2Weight * *h1h2
	}
	if slope != nil {
		score -= a.cfg.SlopeWeight * *slope
	}
	return common.Clamp(score, 0.0, 100.0)
}
