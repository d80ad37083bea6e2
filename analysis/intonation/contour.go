package intonation

// Contour is the shape classification of a phrase's pitch trajectory
type Contour int

const (
	ContourRising Contour = iota
	ContourFalling
	ContourRiseFall
	ContourMonotone
	ContourVaried
)

func (c Contour) String() string {
	switch c {
	case ContourRising:
		return "rising"
	case ContourFalling:
		return "falling"
	case ContourRiseFall:
		return "rise-fall"
	case ContourMonotone:
		return "monotone"
	case ContourVaried:
		return "varied"
	default:
		return "unknown"
	}
}

// Default thresholds used by ClassifyContour
const (
	defaultMonotoneRangeHz = 10.0
	defaultPeakThresholdHz = 8.0
)

// CountDirectionalChanges counts sign reversals between successive non-zero
// pitch deltas. Flat runs continue the previous direction rather than counting
// as changes. Sequences shorter than 3 points have no reversals.
func CountDirectionalChanges(pitches []float64) int {
	if len(pitches) < 3 {
		return 0
	}

	changes := 0
	prevDir := 0

	for i := 1; i < len(pitches); i++ {
		delta := pitches[i] - pitches[i-1]
		if delta == 0 {
			continue
		}

		dir := 1
		if delta < 0 {
			dir = -1
		}

		if prevDir != 0 && dir != prevDir {
			changes++
		}
		prevDir = dir
	}

	return changes
}

// ClassifyContour classifies a pitch trajectory using default thresholds
func ClassifyContour(pitches []float64) Contour {
	return ClassifyContourWithThresholds(pitches, defaultMonotoneRangeHz, defaultPeakThresholdHz)
}

// ClassifyContourWithThresholds applies the contour decision rule:
// total variation below monotoneRangeHz is monotone; many reversals relative
// to the sequence length is varied; a prominent interior peak is rise-fall;
// otherwise the net first-to-last movement decides rising vs. falling.
func ClassifyContourWithThresholds(pitches []float64, monotoneRangeHz, peakThresholdHz float64) Contour {
	n := len(pitches)
	if n < 2 {
		return ContourMonotone
	}

	lo, hi := pitches[0], pitches[0]
	peakIdx := 0
	for i, p := range pitches {
		if p < lo {
			lo = p
		}
		if p > hi {
			hi = p
			peakIdx = i
		}
	}

	if hi-lo < monotoneRangeHz {
		return ContourMonotone
	}

	changes := CountDirectionalChanges(pitches)
	variedLimit := max(3, n/3)
	if changes >= variedLimit {
		return ContourVaried
	}

	if peakIdx > 0 && peakIdx < n-1 &&
		pitches[peakIdx]-pitches[0] >= peakThresholdHz &&
		pitches[peakIdx]-pitches[n-1] >= peakThresholdHz {
		return ContourRiseFall
	}

	if pitches[n-1] >= pitches[0] {
		return ContourRising
	}
	return ContourFalling
}
