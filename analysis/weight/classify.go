package weight

// WeightCategory is the perceptual bucket for a lightness score
type WeightCategory int

const (
	WeightHeavy WeightCategory = iota
	WeightModerate
	WeightLight
	WeightVeryLight
)

func (c WeightCategory) String() string {
	switch c {
	case WeightHeavy:
		return "heavy"
	case WeightModerate:
		return "moderate"
	case WeightLight:
		return "light"
	case WeightVeryLight:
		return "very_light"
	default:
		return "unknown"
	}
}

// WeightInfo carries display metadata for a weight category
type WeightInfo struct {
	Label    string         `json:"label"`
	Color    string         `json:"color"`
	Category WeightCategory `json:"category"`
}

// ClassifyWeight buckets a lightness score:
// <30 heavy, 30-49 moderate, 50-69 light, >=70 very light
func ClassifyWeight(score float64) WeightCategory {
	switch {
	case score < 30:
		return WeightHeavy
	case score < 50:
		return WeightModerate
	case score < 70:
		return WeightLight
	default:
		return WeightVeryLight
	}
}

// GetWeightInfo returns the label and color for a lightness score
func GetWeightInfo(score float64) WeightInfo {
	category := ClassifyWeight(score)
	switch category {
	case WeightHeavy:
		return WeightInfo{Label: "Heavy", Color: "#5b6ee1", Category: category}
	case WeightModerate:
		return WeightInfo{Label: "Moderate", Color: "#8d7ae0", Category: category}
	case WeightLight:
		return WeightInfo{Label: "Light", Color: "#c77ede", Category: category}
	default:
		return WeightInfo{Label: "Very light", Color: "#ed87c8", Category: category}
	}
}
