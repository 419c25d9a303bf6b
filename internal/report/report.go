// Package report renders the printable documents of ANDY as plain
// text: the day bulletin, a student history and the anonymized case
// sheet. Output is deterministic for identical input and is verified
// with golden files.
package report

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/andyapp/andy/internal/logbook"
	"github.com/andyapp/andy/internal/model"
)

// Header is the contextual block printed on top of every document,
// taken from the current settings.
type Header struct {
	Preceptor  string
	Phone      string
	Discipline string
	Class      string
	Group      string
	Date       string
	Shift      string
	Location   string
}

// HeaderFromSettings builds a report header from the settings singleton.
func HeaderFromSettings(s model.Settings) Header {
	return Header{
		Preceptor:  s.PreceptorName,
		Phone:      s.PreceptorPhone,
		Discipline: s.Discipline,
		Class:      s.Class,
		Group:      s.Group,
		Date:       s.Date,
		Shift:      s.Shift,
		Location:   s.Location,
	}
}

// collator orders strings by Brazilian Portuguese collation rules, so
// accented student names sort the way the roster displays them.
var collator = collate.New(language.BrazilianPortuguese)

// dash substitutes the placeholder used for absent values.
func dash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

// scoreCells formats the sum and grade columns of a record.
func scoreCells(r model.Record) (string, string) {
	sc, ok := logbook.ComputeScore(r)
	if !ok {
		return "—", "—"
	}
	return fmt.Sprintf("%d/%d", sc.Sum, model.MaxScore()), trimGrade(sc.Grade)
}

// trimGrade prints a grade with one decimal, dropping a trailing
// ".0" so 7.0 prints as "7" and 6.5 as "6.5".
func trimGrade(g float64) string {
	s := fmt.Sprintf("%.1f", g)
	s = strings.TrimSuffix(s, ".0")
	return s
}

// line writes one "label: value" line.
func line(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%s: %s\n", label, value)
}

// rule writes a separator line.
func rule(b *strings.Builder) {
	b.WriteString(strings.Repeat("-", 72) + "\n")
}

// writeHeader renders the shared context block.
func writeHeader(b *strings.Builder, title string, h Header) {
	fmt.Fprintf(b, "ANDY — %s\n", title)
	rule(b)
	fmt.Fprintf(b, "Preceptor: %s  Tel: %s\n", dash(h.Preceptor), dash(h.Phone))
	fmt.Fprintf(b, "Disciplina: %s • Turma: %s • Grupo: %s • Turno: %s • Local: %s\n",
		dash(h.Discipline), dash(h.Class), dash(h.Group), dash(h.Shift), dash(h.Location))
	line(b, "Data", dash(h.Date))
	rule(b)
}

// writeCase renders the anonymized case block shared by Day and CaseSheet.
func writeCase(b *strings.Builder, c *model.Case) {
	b.WriteString("CASO CLÍNICO DO DIA (ANONIMIZADO)\n")
	if c == nil {
		b.WriteString("Sem caso registrado.\n")
		return
	}
	fmt.Fprintf(b, "Código / Demografia: %s • %s • %s anos\n",
		dash(c.PatientCode), dash(c.Sex), dash(c.Age))
	line(b, "QP", dash(c.ChiefComplaint))
	line(b, "HDA", dash(c.History))
	line(b, "Achados", dash(c.Findings))
	line(b, "Hipóteses", dash(c.Hypotheses))
	line(b, "Conduta", dash(c.Management))
	line(b, "Pontos para estudo", dash(c.StudyPoints))
}

// notice is printed on every document carrying case data.
const notice = "⚠ Caso clínico: registro acadêmico anonimizado. Não contém identificação do paciente."

// Day renders the day bulletin: one row per evaluated student, ordered
// by student name, followed by the group's case of the day.
func Day(h Header, students []model.Student, records []model.Record, c *model.Case) string {
	byID := make(map[string]model.Student, len(students))
	for _, s := range students {
		byID[s.ID] = s
	}

	sorted := append([]model.Record(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return collator.CompareString(byID[sorted[i].StudentID].Name, byID[sorted[j].StudentID].Name) < 0
	})

	var b strings.Builder
	writeHeader(&b, "Boletim do Dia", h)

	b.WriteString("AVALIAÇÃO DO DIA\n")
	if len(sorted) == 0 {
		b.WriteString("Sem registros.\n")
	}
	for _, r := range sorted {
		s := byID[r.StudentID]
		sum, grade := scoreCells(r)
		fmt.Fprintf(&b, "%s (mat. %s, tel. %s)\n", dash(s.Name), dash(s.Registration), dash(s.Phone))
		fmt.Fprintf(&b, "  Presença: %s • Score: %s • Nota: %s\n", dash(r.Attendance), sum, grade)
		fmt.Fprintf(&b, "  Observações: %s\n", dash(r.DayNotes))
	}
	rule(&b)

	writeCase(&b, c)
	rule(&b)
	b.WriteString(notice + "\n")

	return b.String()
}

// StudentHistory renders one student's records ordered by date
// ascending.
func StudentHistory(h Header, student model.Student, records []model.Record) string {
	sorted := append([]model.Record(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	var b strings.Builder
	writeHeader(&b, "Relatório do Aluno", h)
	fmt.Fprintf(&b, "Aluno: %s  Matrícula: %s  Telefone: %s\n",
		dash(student.Name), dash(student.Registration), dash(student.Phone))
	rule(&b)

	b.WriteString("HISTÓRICO\n")
	if len(sorted) == 0 {
		b.WriteString("Sem registros.\n")
	}
	for _, r := range sorted {
		sum, grade := scoreCells(r)
		fmt.Fprintf(&b, "%s • %s • Score: %s • Nota: %s\n", r.Date, dash(r.Attendance), sum, grade)
		fmt.Fprintf(&b, "  Estudo: %s\n", dash(clip(r.StudySuggestion, 140)))
		fmt.Fprintf(&b, "  Observações: %s\n", dash(clip(r.DayNotes, 140)))
	}
	rule(&b)

	return b.String()
}

// CaseSheet renders the standalone anonymized case document.
func CaseSheet(h Header, c *model.Case) string {
	var b strings.Builder
	writeHeader(&b, fmt.Sprintf("Caso Clínico — %s", dash(h.Date)), h)
	writeCase(&b, c)
	rule(&b)
	b.WriteString(notice + "\n")
	return b.String()
}

// clip truncates free text to n runes for tabular output.
func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
