package scoring

// Level is one of the four ordered maturity tiers.
type Level string

const (
	LevelNotStarted Level = "Not Started"
	LevelCompliant  Level = "Compliant"
	LevelCompetent  Level = "Competent"
	LevelCreative   Level = "Creative"
)

// Classification thresholds. Bands are closed below and open above the
// cutoff: exactly 2.5 classifies as Competent. The same table drives the
// static recommendation bands; the two must never diverge.
const (
	thresholdCompliant = 1.5
	thresholdCompetent = 2.5
	thresholdCreative  = 3.5
)

// Classify maps a continuous maturity average (0.0-4.0) to its discrete
// level.
func Classify(score float64) Level {
	switch {
	case score < thresholdCompliant:
		return LevelNotStarted
	case score < thresholdCompetent:
		return LevelCompliant
	case score < thresholdCreative:
		return LevelCompetent
	default:
		return LevelCreative
	}
}

// Ord returns the position of the level in the maturity ladder, 0-3.
func (l Level) Ord() int {
	switch l {
	case LevelCompliant:
		return 1
	case LevelCompetent:
		return 2
	case LevelCreative:
		return 3
	default:
		return 0
	}
}
