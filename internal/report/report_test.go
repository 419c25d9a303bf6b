package report

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"github.com/andyapp/andy/internal/model"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func testHeader() Header {
	return Header{
		Preceptor:  "Dr. Andrade",
		Phone:      "11 99999-0000",
		Discipline: "Clínica Integrada",
		Class:      "T1",
		Group:      "G1",
		Date:       "2026-08-31",
		Shift:      "Manhã",
		Location:   "UBS Central",
	}
}

// scored assigns the values to the criteria in display order.
func scored(values ...int) map[string]*int {
	m := model.EmptyScores()
	for i := range values {
		v := values[i]
		m[model.Criteria[i].Key] = &v
	}
	return m
}

func testCase() *model.Case {
	return &model.Case{
		ID:             "c1",
		Date:           "2026-08-31",
		Group:          "G1",
		PatientCode:    "Pac-07",
		Sex:            "F",
		Age:            "63",
		ChiefComplaint: "Dor torácica",
		History:        "Início há 2 horas",
		Findings:       "PA 150x90",
		Hypotheses:     "SCA",
		Management:     "ECG e encaminhamento",
		StudyPoints:    "Dor torácica aguda",
	}
}

func TestDay(t *testing.T) {
	students := []model.Student{
		{ID: "s1", Name: "Ana Beatriz", Registration: "2024001"},
		{ID: "s2", Name: "João", Registration: "2024002", Phone: "11 98888-7777"},
	}
	// Records arrive unordered; the bulletin sorts by student name.
	records := []model.Record{
		{ID: "r2", StudentID: "s2", Date: "2026-08-31", Attendance: "Faltou", Scores: model.EmptyScores()},
		{ID: "r1", StudentID: "s1", Date: "2026-08-31", Attendance: "Presente",
			DayNotes: "Boa participação", Scores: scored(5, 5, 3, 5, 3, 0)},
	}

	out := Day(testHeader(), students, records, testCase())
	newGoldie(t).Assert(t, "day", []byte(out))
}

func TestDay_Empty(t *testing.T) {
	out := Day(testHeader(), nil, nil, nil)
	newGoldie(t).Assert(t, "day_empty", []byte(out))
}

func TestStudentHistory(t *testing.T) {
	student := model.Student{ID: "s1", Name: "Ana Beatriz", Registration: "2024001"}
	// Newest first on input; the report orders by date ascending.
	records := []model.Record{
		{ID: "r2", StudentID: "s1", Date: "2026-08-31", Attendance: "Presente",
			StudySuggestion: "Rever semiologia cardíaca", DayNotes: "Boa participação",
			Scores: scored(5, 5, 3, 3, 0, 0)},
		{ID: "r1", StudentID: "s1", Date: "2026-08-30", Attendance: "Presente",
			Scores: scored(5, 5, 5, 5, 5, 5)},
	}

	out := StudentHistory(testHeader(), student, records)
	newGoldie(t).Assert(t, "student_history", []byte(out))
}

func TestCaseSheet(t *testing.T) {
	out := CaseSheet(testHeader(), testCase())
	newGoldie(t).Assert(t, "case_sheet", []byte(out))
}

func TestTrimGrade(t *testing.T) {
	assert.Equal(t, "7", trimGrade(7.0))
	assert.Equal(t, "10", trimGrade(10.0))
	assert.Equal(t, "5.3", trimGrade(5.3))
	assert.Equal(t, "0", trimGrade(0.0))
}

func TestClip(t *testing.T) {
	assert.Equal(t, "abc", clip("abc", 5))
	assert.Equal(t, "ab", clip("abcd", 2))
	// Rune-safe for accented text.
	assert.Equal(t, "çã", clip("çãe", 2))
}
