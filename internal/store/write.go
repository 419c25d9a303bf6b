package store

import (
	"context"
	"fmt"

	"github.com/andyapp/andy/internal/model"
)

// PutSettings inserts or overwrites the settings singleton.
// The row is always stored under model.SettingsID regardless of the
// identifier carried by the value.
func (s *Store) PutSettings(ctx context.Context, set model.Settings) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings
		(id, prof_nome, prof_fone, prof_disc, turno, local, turma, grupo, date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			prof_nome = excluded.prof_nome,
			prof_fone = excluded.prof_fone,
			prof_disc = excluded.prof_disc,
			turno = excluded.turno,
			local = excluded.local,
			turma = excluded.turma,
			grupo = excluded.grupo,
			date = excluded.date
	`,
		model.SettingsID,
		set.PreceptorName,
		set.PreceptorPhone,
		set.Discipline,
		set.Shift,
		set.Location,
		set.Class,
		set.Group,
		set.Date,
	)
	if err != nil {
		return fmt.Errorf("put settings: %w", err)
	}
	return nil
}

// PutStudent inserts or overwrites a student by primary identifier.
func (s *Store) PutStudent(ctx context.Context, st model.Student) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO students
		(id, nome, matricula, telefone, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			nome = excluded.nome,
			matricula = excluded.matricula,
			telefone = excluded.telefone,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at
	`,
		st.ID, st.Name, st.Registration, st.Phone, st.CreatedAt, st.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("put student: %w", err)
	}
	return nil
}

// PutRecord inserts or overwrites a record by primary identifier.
// No logical-key checking happens here: writing a record whose
// (student_id, date) duplicates another row's is accepted. The
// reconciliation layer prevents that on its path; backup import
// deliberately does not.
func (s *Store) PutRecord(ctx context.Context, r model.Record) error {
	scoresJSON, err := marshalScores(r.Scores)
	if err != nil {
		return fmt.Errorf("put record: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO records
		(id, student_id, date, turma, grupo, turno, local,
		 presenca, justificada, reposicao, obs_dia, scores,
		 pontos_fortes, pontos_desenvolver, sugestao_estudo, mensagem, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			student_id = excluded.student_id,
			date = excluded.date,
			turma = excluded.turma,
			grupo = excluded.grupo,
			turno = excluded.turno,
			local = excluded.local,
			presenca = excluded.presenca,
			justificada = excluded.justificada,
			reposicao = excluded.reposicao,
			obs_dia = excluded.obs_dia,
			scores = excluded.scores,
			pontos_fortes = excluded.pontos_fortes,
			pontos_desenvolver = excluded.pontos_desenvolver,
			sugestao_estudo = excluded.sugestao_estudo,
			mensagem = excluded.mensagem,
			updated_at = excluded.updated_at
	`,
		r.ID, r.StudentID, r.Date, r.Class, r.Group, r.Shift, r.Location,
		r.Attendance, r.Justified, r.Makeup, r.DayNotes, scoresJSON,
		r.Strengths, r.ToImprove, r.StudySuggestion, r.Message, r.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("put record: %w", err)
	}
	return nil
}

// PutCase inserts or overwrites a case by primary identifier.
// Same contract as PutRecord: no logical-key checking.
func (s *Store) PutCase(ctx context.Context, c model.Case) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cases
		(id, date, grp, turma, preceptor, turno, local,
		 codigo, sexo, idade, qp, hda, achados, hipoteses, conduta, pontos, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			grp = excluded.grp,
			turma = excluded.turma,
			preceptor = excluded.preceptor,
			turno = excluded.turno,
			local = excluded.local,
			codigo = excluded.codigo,
			sexo = excluded.sexo,
			idade = excluded.idade,
			qp = excluded.qp,
			hda = excluded.hda,
			achados = excluded.achados,
			hipoteses = excluded.hipoteses,
			conduta = excluded.conduta,
			pontos = excluded.pontos,
			updated_at = excluded.updated_at
	`,
		c.ID, c.Date, c.Group, c.Class, c.Preceptor, c.Shift, c.Location,
		c.PatientCode, c.Sex, c.Age, c.ChiefComplaint, c.History,
		c.Findings, c.Hypotheses, c.Management, c.StudyPoints, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("put case: %w", err)
	}
	return nil
}
