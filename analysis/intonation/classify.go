package intonation

// VariabilityCategory is the perceptual bucket for a variability score
type VariabilityCategory int

const (
	VariabilityMonotone VariabilityCategory = iota
	VariabilityModerate
	VariabilityMelodic
	VariabilityVeryAnimated
)

func (c VariabilityCategory) String() string {
	switch c {
	case VariabilityMonotone:
		return "monotone"
	case VariabilityModerate:
		return "moderate"
	case VariabilityMelodic:
		return "melodic"
	case VariabilityVeryAnimated:
		return "very_animated"
	default:
		return "unknown"
	}
}

// VariabilityInfo carries display metadata for a variability category
type VariabilityInfo struct {
	Label    string              `json:"label"`
	Color    string              `json:"color"`
	Category VariabilityCategory `json:"category"`
}

// ContourInfo carries display metadata for a phrase contour
type ContourInfo struct {
	Label  string `json:"label"`
	Symbol string `json:"symbol"`
}

// ClassifyVariability buckets a variability score:
// <25 monotone, 25-49 moderate, 50-74 melodic, >=75 very animated
func ClassifyVariability(score float64) VariabilityCategory {
	switch {
	case score < 25:
		return VariabilityMonotone
	case score < 50:
		return VariabilityModerate
	case score < 75:
		return VariabilityMelodic
	default:
		return VariabilityVeryAnimated
	}
}

// GetVariabilityInfo returns the label and color for a variability score
func GetVariabilityInfo(score float64) VariabilityInfo {
	category := ClassifyVariability(score)
	switch category {
	case VariabilityMonotone:
		return VariabilityInfo{Label: "Monotone", Color: "#7a8599", Category: category}
	case VariabilityModerate:
		return VariabilityInfo{Label: "Moderate", Color: "#6fa8dc", Category: category}
	case VariabilityMelodic:
		return VariabilityInfo{Label: "Melodic", Color: "#76c893", Category: category}
	default:
		return VariabilityInfo{Label: "Very animated", Color: "#f4a259", Category: category}
	}
}

// GetContourInfo returns the label and arrow symbol for a phrase contour
func GetContourInfo(contour Contour) ContourInfo {
	switch contour {
	case ContourRising:
		return ContourInfo{Label: "Rising", Symbol: "↗"}
	case ContourFalling:
		return ContourInfo{Label: "Falling", Symbol: "↘"}
	case ContourRiseFall:
		return ContourInfo{Label: "Rise-fall", Symbol: "↗↘"}
	case ContourMonotone:
		return ContourInfo{Label: "Monotone", Symbol: "→"}
	default:
		return ContourInfo{Label: "Varied", Symbol: "↝"}
	}
}
