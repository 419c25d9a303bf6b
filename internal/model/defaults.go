package model

import "time"

// Default values applied to fresh Settings and Records.
const (
	DefaultDiscipline = "Clínica Integrada"
	DefaultShift      = "Manhã"
	DefaultAttendance = "Presente"
	DefaultNo         = "Não"
)

// ISODate is the calendar date layout used everywhere (no time part).
const ISODate = "2006-01-02"

// Today returns the current local calendar date as an ISO date string.
func Today() string {
	return time.Now().Format(ISODate)
}

// DefaultSettings returns first-run Settings for the given active date.
func DefaultSettings(date string) Settings {
	return Settings{
		ID:         SettingsID,
		Discipline: DefaultDiscipline,
		Shift:      DefaultShift,
		Date:       date,
	}
}

// NewRecord synthesizes an unsaved Record draft for (studentID, date)
// with the contextual snapshot copied from s and all criteria unscored.
func NewRecord(id, studentID, date string, s Settings, now time.Time) Record {
	return Record{
		ID:         id,
		StudentID:  studentID,
		Date:       date,
		Class:      s.Class,
		Group:      s.Group,
		Shift:      s.Shift,
		Location:   s.Location,
		Attendance: DefaultAttendance,
		Justified:  DefaultNo,
		Makeup:     DefaultNo,
		Scores:     EmptyScores(),
		UpdatedAt:  now.UnixMilli(),
	}
}

// NewCase synthesizes an unsaved Case draft for (group, date) with the
// contextual snapshot copied from s.
func NewCase(id, group, date string, s Settings, now time.Time) Case {
	return Case{
		ID:        id,
		Date:      date,
		Group:     group,
		Class:     s.Class,
		Preceptor: s.PreceptorName,
		Shift:     s.Shift,
		Location:  s.Location,
		UpdatedAt: now.UnixMilli(),
	}
}

// NewStudent creates a Student with creation and update timestamps set.
func NewStudent(id, name, registration, phone string, now time.Time) Student {
	return Student{
		ID:           id,
		Name:         name,
		Registration: registration,
		Phone:        phone,
		CreatedAt:    now.UnixMilli(),
		UpdatedAt:    now.UnixMilli(),
	}
}
