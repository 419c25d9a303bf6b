package model

// Criterion is one of the six fixed evaluation criteria scored per
// session. Keys are stable storage identifiers; labels are the
// Portuguese display names used in reports.
type Criterion struct {
	Key   string
	Label string
}

// Criteria lists the evaluation criteria in display order.
// The set is fixed: every Record carries a score slot for each key.
var Criteria = []Criterion{
	{Key: "assiduidade", Label: "Assiduidade"},
	{Key: "conhecimento", Label: "Conhecimento prévio"},
	{Key: "postura", Label: "Postura"},
	{Key: "proatividade", Label: "Proatividade"},
	{Key: "socializacao", Label: "Socialização"},
	{Key: "expressividade", Label: "Expressividade"},
}

// ScoreValues are the only valid per-criterion scores. A criterion may
// also be left unscored (nil), which is distinct from scoring zero.
var ScoreValues = []int{0, 3, 5}

// MaxScore is the highest possible score sum (all criteria at 5).
func MaxScore() int {
	return len(Criteria) * 5
}

// ValidScore reports whether v is an allowed criterion score.
func ValidScore(v int) bool {
	for _, s := range ScoreValues {
		if v == s {
			return true
		}
	}
	return false
}

// EmptyScores returns a score map with every criterion present and unscored.
func EmptyScores() map[string]*int {
	m := make(map[string]*int, len(Criteria))
	for _, c := range Criteria {
		m[c.Key] = nil
	}
	return m
}
