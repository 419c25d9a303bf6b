package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/andyapp/andy/internal/model"
)

// GetSettings returns the settings singleton.
// The second return value is false when no settings row exists yet.
func (s *Store) GetSettings(ctx context.Context) (model.Settings, bool, error) {
	var set model.Settings
	err := s.db.QueryRowContext(ctx, `
		SELECT id, prof_nome, prof_fone, prof_disc, turno, local, turma, grupo, date
		FROM settings
		WHERE id = ?
	`, model.SettingsID).Scan(
		&set.ID, &set.PreceptorName, &set.PreceptorPhone, &set.Discipline,
		&set.Shift, &set.Location, &set.Class, &set.Group, &set.Date,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Settings{}, false, nil
	}
	if err != nil {
		return model.Settings{}, false, fmt.Errorf("get settings: %w", err)
	}
	return set, true, nil
}

// GetStudent returns a student by primary identifier, or absent.
func (s *Store) GetStudent(ctx context.Context, id string) (model.Student, bool, error) {
	var st model.Student
	err := s.db.QueryRowContext(ctx, `
		SELECT id, nome, matricula, telefone, created_at, updated_at
		FROM students
		WHERE id = ?
	`, id).Scan(&st.ID, &st.Name, &st.Registration, &st.Phone, &st.CreatedAt, &st.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Student{}, false, nil
	}
	if err != nil {
		return model.Student{}, false, fmt.Errorf("get student: %w", err)
	}
	return st, true, nil
}

// GetRecord returns a record by primary identifier, or absent.
func (s *Store) GetRecord(ctx context.Context, id string) (model.Record, bool, error) {
	row := s.db.QueryRowContext(ctx, selectRecord+` WHERE id = ?`, id)
	r, err := scanRecordRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Record{}, false, nil
	}
	if err != nil {
		return model.Record{}, false, fmt.Errorf("get record: %w", err)
	}
	return r, true, nil
}

// GetCase returns a case by primary identifier, or absent.
func (s *Store) GetCase(ctx context.Context, id string) (model.Case, bool, error) {
	row := s.db.QueryRowContext(ctx, selectCase+` WHERE id = ?`, id)
	c, err := scanCaseRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Case{}, false, nil
	}
	if err != nil {
		return model.Case{}, false, fmt.Errorf("get case: %w", err)
	}
	return c, true, nil
}

// AllStudents returns every student. Rows are ordered by id for
// reproducible output; callers must not rely on any ordering.
func (s *Store) AllStudents(ctx context.Context) ([]model.Student, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, nome, matricula, telefone, created_at, updated_at
		FROM students
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query students: %w", err)
	}
	defer rows.Close()

	students := []model.Student{}
	for rows.Next() {
		var st model.Student
		if err := rows.Scan(&st.ID, &st.Name, &st.Registration, &st.Phone, &st.CreatedAt, &st.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		students = append(students, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate students: %w", err)
	}

	return students, nil
}

// AllRecords returns every record. Order unspecified for callers.
func (s *Store) AllRecords(ctx context.Context) ([]model.Record, error) {
	rows, err := s.db.QueryContext(ctx, selectRecord+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	records := []model.Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}

	return records, nil
}

// AllCases returns every case. Order unspecified for callers.
func (s *Store) AllCases(ctx context.Context) ([]model.Case, error) {
	rows, err := s.db.QueryContext(ctx, selectCase+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query cases: %w", err)
	}
	defer rows.Close()

	cases := []model.Case{}
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cases: %w", err)
	}

	return cases, nil
}

// RecordByStudentDate returns at most one record matching the logical
// key (studentID, date), or absent. Returns a ConstraintError when the
// index holds more than one match, which the resolve-then-save
// protocol rules out on the normal write path.
func (s *Store) RecordByStudentDate(ctx context.Context, studentID, date string) (model.Record, bool, error) {
	rows, err := s.db.QueryContext(ctx,
		selectRecord+` WHERE student_id = ? AND date = ? ORDER BY id LIMIT 2`,
		studentID, date)
	if err != nil {
		return model.Record{}, false, fmt.Errorf("query record by student/date: %w", err)
	}
	defer rows.Close()

	var matches []model.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return model.Record{}, false, err
		}
		matches = append(matches, r)
	}
	if err := rows.Err(); err != nil {
		return model.Record{}, false, fmt.Errorf("iterate record matches: %w", err)
	}

	switch len(matches) {
	case 0:
		return model.Record{}, false, nil
	case 1:
		return matches[0], true, nil
	default:
		return model.Record{}, false, &ConstraintError{
			Collection: "records",
			Index:      "idx_records_student_date",
			Key:        []string{studentID, date},
			Matches:    len(matches),
		}
	}
}

// CaseByGroupDate returns at most one case matching the logical key
// (group, date), or absent. Same ConstraintError contract as
// RecordByStudentDate.
func (s *Store) CaseByGroupDate(ctx context.Context, group, date string) (model.Case, bool, error) {
	rows, err := s.db.QueryContext(ctx,
		selectCase+` WHERE grp = ? AND date = ? ORDER BY id LIMIT 2`,
		group, date)
	if err != nil {
		return model.Case{}, false, fmt.Errorf("query case by group/date: %w", err)
	}
	defer rows.Close()

	var matches []model.Case
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return model.Case{}, false, err
		}
		matches = append(matches, c)
	}
	if err := rows.Err(); err != nil {
		return model.Case{}, false, fmt.Errorf("iterate case matches: %w", err)
	}

	switch len(matches) {
	case 0:
		return model.Case{}, false, nil
	case 1:
		return matches[0], true, nil
	default:
		return model.Case{}, false, &ConstraintError{
			Collection: "cases",
			Index:      "idx_cases_group_date",
			Key:        []string{group, date},
			Matches:    len(matches),
		}
	}
}

const selectRecord = `
	SELECT id, student_id, date, turma, grupo, turno, local,
	       presenca, justificada, reposicao, obs_dia, scores,
	       pontos_fortes, pontos_desenvolver, sugestao_estudo, mensagem, updated_at
	FROM records`

const selectCase = `
	SELECT id, date, grp, turma, preceptor, turno, local,
	       codigo, sexo, idade, qp, hda, achados, hipoteses, conduta, pontos, updated_at
	FROM cases`

// scanRecord scans a rows cursor positioned on a record row.
func scanRecord(rows *sql.Rows) (model.Record, error) {
	var r model.Record
	var scoresJSON string

	if err := rows.Scan(
		&r.ID, &r.StudentID, &r.Date, &r.Class, &r.Group, &r.Shift, &r.Location,
		&r.Attendance, &r.Justified, &r.Makeup, &r.DayNotes, &scoresJSON,
		&r.Strengths, &r.ToImprove, &r.StudySuggestion, &r.Message, &r.UpdatedAt,
	); err != nil {
		return model.Record{}, fmt.Errorf("scan record: %w", err)
	}

	scores, err := unmarshalScores(scoresJSON)
	if err != nil {
		return model.Record{}, err
	}
	r.Scores = scores

	return r, nil
}

// scanRecordRow scans a single-row query into a Record.
func scanRecordRow(row *sql.Row) (model.Record, error) {
	var r model.Record
	var scoresJSON string

	if err := row.Scan(
		&r.ID, &r.StudentID, &r.Date, &r.Class, &r.Group, &r.Shift, &r.Location,
		&r.Attendance, &r.Justified, &r.Makeup, &r.DayNotes, &scoresJSON,
		&r.Strengths, &r.ToImprove, &r.StudySuggestion, &r.Message, &r.UpdatedAt,
	); err != nil {
		return model.Record{}, err
	}

	scores, err := unmarshalScores(scoresJSON)
	if err != nil {
		return model.Record{}, err
	}
	r.Scores = scores

	return r, nil
}

// scanCase scans a rows cursor positioned on a case row.
func scanCase(rows *sql.Rows) (model.Case, error) {
	var c model.Case
	if err := rows.Scan(
		&c.ID, &c.Date, &c.Group, &c.Class, &c.Preceptor, &c.Shift, &c.Location,
		&c.PatientCode, &c.Sex, &c.Age, &c.ChiefComplaint, &c.History,
		&c.Findings, &c.Hypotheses, &c.Management, &c.StudyPoints, &c.UpdatedAt,
	); err != nil {
		return model.Case{}, fmt.Errorf("scan case: %w", err)
	}
	return c, nil
}

// scanCaseRow scans a single-row query into a Case.
func scanCaseRow(row *sql.Row) (model.Case, error) {
	var c model.Case
	if err := row.Scan(
		&c.ID, &c.Date, &c.Group, &c.Class, &c.Preceptor, &c.Shift, &c.Location,
		&c.PatientCode, &c.Sex, &c.Age, &c.ChiefComplaint, &c.History,
		&c.Findings, &c.Hypotheses, &c.Management, &c.StudyPoints, &c.UpdatedAt,
	); err != nil {
		return model.Case{}, err
	}
	return c, nil
}
