package logbook

import (
	"context"

	"github.com/andyapp/andy/internal/model"
)

// ResolveCase returns the single Case for (group, date).
//
// An empty group or date is refused with MissingKeyError before any
// lookup or synthesis: an empty group is not a valid partition and
// must never own a row. Otherwise the contract mirrors ResolveRecord.
func (s *Service) ResolveCase(ctx context.Context, group, date string) (model.Case, error) {
	if group == "" {
		return model.Case{}, &MissingKeyError{Entity: "case", Field: "group"}
	}
	if date == "" {
		return model.Case{}, &MissingKeyError{Entity: "case", Field: "date"}
	}

	existing, ok, err := s.store.CaseByGroupDate(ctx, group, date)
	if err != nil {
		return model.Case{}, err
	}
	if ok {
		return existing, nil
	}

	set, err := s.Settings(ctx)
	if err != nil {
		return model.Case{}, err
	}
	return model.NewCase(s.ids.NewID(), group, date, set, s.clock.Now()), nil
}

// SaveCase persists a case draft with the same resolve-then-save
// identity protocol as SaveRecord, keyed on (group, date).
func (s *Service) SaveCase(ctx context.Context, draft model.Case) (model.Case, error) {
	if draft.Group == "" {
		return model.Case{}, &MissingKeyError{Entity: "case", Field: "group"}
	}
	if draft.Date == "" {
		return model.Case{}, &MissingKeyError{Entity: "case", Field: "date"}
	}
	if err := s.validateCase(draft); err != nil {
		return model.Case{}, err
	}

	existing, ok, err := s.store.CaseByGroupDate(ctx, draft.Group, draft.Date)
	if err != nil {
		return model.Case{}, err
	}
	if ok {
		draft.ID = existing.ID
	} else if draft.ID == "" {
		draft.ID = s.ids.NewID()
	}

	draft.UpdatedAt = s.clock.Now().UnixMilli()
	if err := s.store.PutCase(ctx, draft); err != nil {
		return model.Case{}, err
	}
	return draft, nil
}
