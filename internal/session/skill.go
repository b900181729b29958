package session

// SkillLevel classifies a player by decision accuracy.
type SkillLevel int

const (
	Beginner SkillLevel = iota
	Intermediate
	Advanced
)

// String returns the string representation of a skill level
func (s SkillLevel) String() string {
	switch s {
	case Beginner:
		return "beginner"
	case Intermediate:
		return "intermediate"
	case Advanced:
		return "advanced"
	default:
		return "unknown"
	}
}

const (
	advancedAccuracy     = 90.0
	intermediateAccuracy = 75.0
)

// ClassifySkill maps accuracy to a level. Fewer than minSample decisions
// is always Beginner.
func ClassifySkill(accuracy float64, decisions, minSample int) SkillLevel {
	if decisions < minSample {
		return Beginner
	}
	switch {
	case accuracy >= advancedAccuracy:
		return Advanced
	case accuracy >= intermediateAccuracy:
		return Intermediate
	default:
		return Beginner
	}
}
