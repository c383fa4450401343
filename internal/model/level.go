package model

// Level is one of three ordered assessment stages. The ordering is fixed and
// advancing is only possible through Next, never by mutating the code directly.
type Level string

const (
	Level1 Level = "1"
	Level2 Level = "2"
	Level3 Level = "3"
)

var levelLabels = map[Level]string{
	Level1: "Soft Skills / Professionalism",
	Level2: "Teamwork / Quality of Care",
	Level3: "Ethical Decision-Making",
}

func (l Level) Valid() bool {
	_, ok := levelLabels[l]
	return ok
}

// Next returns the successor level. ok is false for the final level and for
// invalid codes.
func (l Level) Next() (Level, bool) {
	switch l {
	case Level1:
		return Level2, true
	case Level2:
		return Level3, true
	default:
		return "", false
	}
}

func (l Level) Label() string {
	return levelLabels[l]
}

// AllLevels returns the levels in progression order.
func AllLevels() []Level {
	return []Level{Level1, Level2, Level3}
}
