package logbook

import (
	"context"

	"github.com/andyapp/andy/internal/model"
)

// ResolveRecord returns the single Record for (studentID, date).
//
// If a stored row matches the logical key it is returned as-is. If
// none exists, an unsaved draft is synthesized: fresh identifier,
// contextual snapshot copied from current settings, every criterion
// unscored. The draft is not persisted until SaveRecord.
func (s *Service) ResolveRecord(ctx context.Context, studentID, date string) (model.Record, error) {
	if studentID == "" {
		return model.Record{}, &MissingKeyError{Entity: "record", Field: "student"}
	}
	if date == "" {
		return model.Record{}, &MissingKeyError{Entity: "record", Field: "date"}
	}

	existing, ok, err := s.store.RecordByStudentDate(ctx, studentID, date)
	if err != nil {
		return model.Record{}, err
	}
	if ok {
		return existing, nil
	}

	set, err := s.Settings(ctx)
	if err != nil {
		return model.Record{}, err
	}
	return model.NewRecord(s.ids.NewID(), studentID, date, set, s.clock.Now()), nil
}

// SaveRecord persists a draft, preserving logical identity.
//
// The logical key is re-resolved at save time, not trusted from the
// draft's identifier: if a row for (studentID, date) appeared after
// the draft was created, its primary identifier is adopted so the
// write overwrites that row instead of inserting a duplicate. Saving
// the same logical key any number of times therefore yields exactly
// one stored row.
func (s *Service) SaveRecord(ctx context.Context, draft model.Record) (model.Record, error) {
	if draft.StudentID == "" {
		return model.Record{}, &MissingKeyError{Entity: "record", Field: "student"}
	}
	if draft.Date == "" {
		return model.Record{}, &MissingKeyError{Entity: "record", Field: "date"}
	}
	if draft.Scores == nil {
		draft.Scores = model.EmptyScores()
	}
	if err := s.validateRecord(draft); err != nil {
		return model.Record{}, err
	}

	existing, ok, err := s.store.RecordByStudentDate(ctx, draft.StudentID, draft.Date)
	if err != nil {
		return model.Record{}, err
	}
	if ok {
		draft.ID = existing.ID
	} else if draft.ID == "" {
		draft.ID = s.ids.NewID()
	}

	draft.UpdatedAt = s.clock.Now().UnixMilli()
	if err := s.store.PutRecord(ctx, draft); err != nil {
		return model.Record{}, err
	}
	return draft, nil
}

// ListRecordsForStudent returns every record of one student, any order.
func (s *Service) ListRecordsForStudent(ctx context.Context, studentID string) ([]model.Record, error) {
	all, err := s.store.AllRecords(ctx)
	if err != nil {
		return nil, err
	}
	records := []model.Record{}
	for _, r := range all {
		if r.StudentID == studentID {
			records = append(records, r)
		}
	}
	return records, nil
}

// ListRecordsForDay returns every record of one calendar date. A
// non-empty group narrows the result to that group's snapshot; an
// empty group means no filter.
func (s *Service) ListRecordsForDay(ctx context.Context, date, group string) ([]model.Record, error) {
	all, err := s.store.AllRecords(ctx)
	if err != nil {
		return nil, err
	}
	records := []model.Record{}
	for _, r := range all {
		if r.Date != date {
			continue
		}
		if group != "" && r.Group != group {
			continue
		}
		records = append(records, r)
	}
	return records, nil
}
