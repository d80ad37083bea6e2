// Package framesource plays the host role for the analyzers: it supplies
// per-frame dB magnitude spectra and a rough pitch estimate. The analysis
// packages never import it; they treat the frame supplier as opaque.
package framesource

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Pitch search band and voicing gate for the demo pitch estimate
const (
	minPitchHz     = 60.0
	maxPitchHz     = 400.0
	voicingFloorDB = -55.0
)

// Frame is one fixed-cadence analysis frame
type Frame struct {
	SpectrumDB []float64 // dB magnitude per frequency bin, length fftSize/2
	PitchHz    float64   // Estimated fundamental; 0 = unvoiced
	TimeMs     float64   // Frame start time in milliseconds
}

// Framer slices a signal into windowed FFT frames
type Framer struct {
	sampleRate    int
	fftSize       int
	hopSize       int
	window        []float64
	binResolution float64
}

// NewFramer creates a framer with a hop of half the FFT size
func NewFramer(sampleRate, fftSize int) (*Framer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}
	if fftSize <= 0 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("FFT size must be a positive power of two, got %d", fftSize)
	}

	// Hamming window, periodic form
	window := make([]float64, fftSize)
	for i := 0; i < fftSize; i++ {
		window[i] = 0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/float64(fftSize))
	}

	return &Framer{
		sampleRate:    sampleRate,
		fftSize:       fftSize,
		hopSize:       fftSize / 2,
		window:        window,
		binResolution: float64(sampleRate) / float64(fftSize),
	}, nil
}

// Frames converts a sample stream into analysis frames
func (f *Framer) Frames(samples []float64) []Frame {
	if len(samples) < f.fftSize {
		return nil
	}

	numFrames := (len(samples)-f.fftSize)/f.hopSize + 1
	frames := make([]Frame, 0, numFrames)

	windowed := make([]float64, f.fftSize)
	for i := 0; i+f.fftSize <= len(samples); i += f.hopSize {
		for j := 0; j < f.fftSize; j++ {
			windowed[j] = samples[i+j] * f.window[j]
		}

		spectrum := fft.FFTReal(windowed)
		magDB := make([]float64, f.fftSize/2)
		for bin := range magDB {
			magDB[bin] = 20.0 * math.Log10(cmplx.Abs(spectrum[bin])/float64(f.fftSize/2)+1e-12)
		}

		frames = append(frames, Frame{
			SpectrumDB: magDB,
			PitchHz:    f.estimatePitch(magDB),
			TimeMs:     float64(i) / float64(f.sampleRate) * 1000.0,
		})
	}

	return frames
}

// estimatePitch picks the strongest bin inside the voice band. This is a
// deliberately naive stand-in for a real pitch tracker; it is only good
// enough to drive the analyzers from clean recordings.
func (f *Framer) estimatePitch(magDB []float64) float64 {
	loBin := int(math.Ceil(minPitchHz / f.binResolution))
	hiBin := int(math.Floor(maxPitchHz / f.binResolution))
	if hiBin >= len(magDB) {
		hiBin = len(magDB) - 1
	}
	if loBin > hiBin {
		return 0
	}

	bestBin := loBin
	for bin := loBin + 1; bin <= hiBin; bin++ {
		if magDB[bin] > magDB[bestBin] {
			bestBin = bin
		}
	}

	if magDB[bestBin] < voicingFloorDB {
		return 0
	}
	return float64(bestBin) * f.binResolution
}
