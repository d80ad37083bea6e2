package framesource

import "math"

// Synthetic frame generation for the demo command and tests. Spectra are
// built directly in the frequency domain so harmonic levels are exact.

// HarmonicSpectrum builds a dB magnitude spectrum with the given levels at
// the harmonics of pitchHz and floorDB everywhere else
func HarmonicSpectrum(numBins int, binResolution, pitchHz float64, levelsDB []float64, floorDB float64) []float64 {
	spectrum := make([]float64, numBins)
	for i := range spectrum {
		spectrum[i] = floorDB
	}

	for h, level := range levelsDB {
		bin := int(math.Round(float64(h+1) * pitchHz / binResolution))
		if bin >= numBins {
			break
		}
		spectrum[bin] = level
	}

	return spectrum
}

// rolloffLevels builds harmonic levels starting at h1DB with the given
// H1-H2 drop and a constant decay per harmonic after H2
func rolloffLevels(count int, h1DB, h1h2DB, decayDB float64) []float64 {
	levels := make([]float64, count)
	levels[0] = h1DB
	for h := 1; h < count; h++ {
		levels[h] = h1DB - h1h2DB - decayDB*float64(h-1)
	}
	return levels
}

// DemoFrames generates a short synthetic practice session: a rising phrase
// with a light voice profile, a falling phrase with a heavy profile, and a
// rise-fall phrase, separated by silence gaps long enough to segment them.
func DemoFrames(sampleRate, fftSize int) []Frame {
	binResolution := float64(sampleRate) / float64(fftSize)
	numBins := fftSize / 2
	const frameMs = 20.0
	const floorDB = -90.0

	lightLevels := func(h1 float64) []float64 { return rolloffLevels(6, h1, 12.0, 6.0) }
	heavyLevels := func(h1 float64) []float64 { return rolloffLevels(6, h1, 0.0, 0.0) }

	var frames []Frame
	timeMs := 0.0

	voiced := func(pitch float64, levels []float64) {
		frames = append(frames, Frame{
			SpectrumDB: HarmonicSpectrum(numBins, binResolution, pitch, levels, floorDB),
			PitchHz:    pitch,
			TimeMs:     timeMs,
		})
		timeMs += frameMs
	}
	silence := func(durationMs float64) {
		for elapsed := 0.0; elapsed < durationMs; elapsed += frameMs {
			frames = append(frames, Frame{
				SpectrumDB: HarmonicSpectrum(numBins, binResolution, 0, nil, floorDB),
				PitchHz:    0,
				TimeMs:     timeMs,
			})
			timeMs += frameMs
		}
	}

	// Rising phrase, light voice
	for i := 0; i < 25; i++ {
		voiced(180.0+float64(i)*2.0, lightLevels(-10.0))
	}
	silence(400)

	// Falling phrase, heavy voice
	for i := 0; i < 25; i++ {
		voiced(230.0-float64(i)*2.0, heavyLevels(-12.0))
	}
	silence(400)

	// Rise-fall phrase, moderate movement
	for i := 0; i < 30; i++ {
		pitch := 190.0 + 40.0*math.Sin(math.Pi*float64(i)/29.0)
		voiced(pitch, lightLevels(-14.0))
	}
	silence(400)

	return frames
}
