package engine

import "sort"

// Filter modes. Unrecognized modes fall back to ModeBalanced.
const (
	ModeStrict      = "strict"
	ModeBalanced    = "balanced"
	ModeEducational = "educational"
)

// FilterVideos applies the mode's retention threshold and returns the
// survivors ranked by the mode's score, descending. The sort is stable, so
// ties keep the provider's original order.
//
// Unclassified videos pass only the balanced mode: its unset ai_score is
// treated as the 0.60 default, which meets its own threshold. strict and
// educational treat unset scores as 0.0, so unclassified videos fail them.
func FilterVideos(videos []Video, mode string) []Video {
	kept := make([]Video, 0, len(videos))
	for _, v := range videos {
		if retain(&v, mode) {
			kept = append(kept, v)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return sortScore(&kept[i], mode) > sortScore(&kept[j], mode)
	})
	return kept
}

func retain(v *Video, mode string) bool {
	switch mode {
	case ModeStrict:
		return deref(v.SafetyScore, 0) >= 0.90 && v.AgeAppropriate != nil && *v.AgeAppropriate
	case ModeEducational:
		return deref(v.EducationScore, 0) >= 0.75
	default:
		return deref(v.AIScore, 0.60) >= 0.60
	}
}

// sortScore treats unset scores as 0.0 in every mode.
func sortScore(v *Video, mode string) float64 {
	switch mode {
	case ModeStrict:
		return deref(v.SafetyScore, 0)
	case ModeEducational:
		return deref(v.EducationScore, 0)
	default:
		return deref(v.AIScore, 0)
	}
}

func deref(p *float64, fallback float64) float64 {
	if p == nil {
		return fallback
	}
	return *p
}
