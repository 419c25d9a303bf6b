package model

// SettingsID is the fixed primary identifier of the Settings singleton.
const SettingsID = "settings"

// Settings is the singleton holding the preceptor's identity and the
// currently active teaching context. Created with defaults on first
// run, mutated on every edit, never deleted.
type Settings struct {
	ID             string `json:"id"`
	PreceptorName  string `json:"profNome"`
	PreceptorPhone string `json:"profFone"`
	Discipline     string `json:"profDisc"`
	Shift          string `json:"turno"`
	Location       string `json:"local"`
	Class          string `json:"turma"`
	Group          string `json:"grupo"`
	Date           string `json:"date"` // ISO 8601 date (YYYY-MM-DD)
}

// Student is one enrolled student. Created explicitly by the user;
// never auto-deleted.
type Student struct {
	ID           string `json:"id"`
	Name         string `json:"nome"`
	Registration string `json:"matricula"`
	Phone        string `json:"telefone"`
	CreatedAt    int64  `json:"createdAt"` // unix milliseconds
	UpdatedAt    int64  `json:"updatedAt"` // unix milliseconds
}

// Record is the daily evaluation of one student. At most one Record
// exists per (StudentID, Date) pair; the reconciliation service
// guarantees that invariant.
//
// Class, Group, Shift and Location are contextual snapshots copied
// from Settings at draft-creation time, not live joins.
type Record struct {
	ID        string `json:"id"`
	StudentID string `json:"studentId" validate:"required"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Class     string `json:"turma"`
	Group     string `json:"grupo"`
	Shift     string `json:"turno"`
	Location  string `json:"local"`

	Attendance string `json:"presenca"`
	Justified  string `json:"justificada"`
	Makeup     string `json:"reposicao"`
	DayNotes   string `json:"obsDia"`

	// Scores maps criterion key to score. A nil value means the
	// criterion was not scored; zero is a valid score.
	Scores map[string]*int `json:"scores"`

	Strengths       string `json:"pontosFortes"`
	ToImprove       string `json:"pontosDesenvolver"`
	StudySuggestion string `json:"sugestaoEstudo"`
	Message         string `json:"mensagem"`

	UpdatedAt int64 `json:"updatedAt"` // unix milliseconds
}

// Case is the daily anonymized clinical case of one discussion group.
// At most one Case exists per (Group, Date) pair. PatientCode is an
// anonymized code; the entity never identifies the patient.
type Case struct {
	ID        string `json:"id"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Group     string `json:"group" validate:"required"`
	Class     string `json:"turma"`
	Preceptor string `json:"preceptor"`
	Shift     string `json:"turno"`
	Location  string `json:"local"`

	PatientCode    string `json:"codigo"`
	Sex            string `json:"sexo"`
	Age            string `json:"idade"` // free text, as entered
	ChiefComplaint string `json:"qp"`
	History        string `json:"hda"`
	Findings       string `json:"achados"`
	Hypotheses     string `json:"hipoteses"`
	Management     string `json:"conduta"`
	StudyPoints    string `json:"pontos"`

	UpdatedAt int64 `json:"updatedAt"` // unix milliseconds
}
