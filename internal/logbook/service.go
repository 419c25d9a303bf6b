package logbook

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/andyapp/andy/internal/model"
	"github.com/andyapp/andy/internal/store"
)

// Clock supplies timestamps for entity updates. Abstracted so tests
// can pin time and produce stable golden output.
type Clock interface {
	Now() time.Time
}

// systemClock is the production clock.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Service resolves logical keys against the store and guarantees
// save-time identity stability. One Service per open database.
//
// Thread-safety: Service is stateless apart from the store handle;
// the store itself serializes writes (single-connection pool).
type Service struct {
	store    *store.Store
	ids      model.IDGenerator
	clock    Clock
	validate *validator.Validate
}

// Option configures a Service.
type Option func(*Service)

// WithIDGenerator overrides the identifier generator (tests).
func WithIDGenerator(g model.IDGenerator) Option {
	return func(s *Service) { s.ids = g }
}

// WithClock overrides the clock (tests).
func WithClock(c Clock) Option {
	return func(s *Service) { s.clock = c }
}

// New creates a Service over an open store.
func New(st *store.Store, opts ...Option) *Service {
	s := &Service{
		store:    st,
		ids:      model.UUIDv7Generator{},
		clock:    systemClock{},
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Settings returns the stored settings, or first-run defaults when no
// settings row exists yet. The defaults are not persisted until the
// first SaveSettings.
func (s *Service) Settings(ctx context.Context) (model.Settings, error) {
	set, ok, err := s.store.GetSettings(ctx)
	if err != nil {
		return model.Settings{}, err
	}
	if !ok {
		return model.DefaultSettings(model.Today()), nil
	}
	return set, nil
}

// SaveSettings persists the settings singleton under its fixed
// identifier.
func (s *Service) SaveSettings(ctx context.Context, set model.Settings) (model.Settings, error) {
	set.ID = model.SettingsID
	if set.Date == "" {
		set.Date = model.Today()
	}
	if err := s.store.PutSettings(ctx, set); err != nil {
		return model.Settings{}, err
	}
	return set, nil
}

// AddStudent creates and persists a new student.
func (s *Service) AddStudent(ctx context.Context, name, registration, phone string) (model.Student, error) {
	st := model.NewStudent(s.ids.NewID(), name, registration, phone, s.clock.Now())
	if err := s.store.PutStudent(ctx, st); err != nil {
		return model.Student{}, err
	}
	return st, nil
}

// Students returns the full roster, order unspecified.
func (s *Service) Students(ctx context.Context) ([]model.Student, error) {
	return s.store.AllStudents(ctx)
}

// Student returns one student by identifier, or absent.
func (s *Service) Student(ctx context.Context, id string) (model.Student, bool, error) {
	return s.store.GetStudent(ctx, id)
}

// validateRecord checks a draft before it reaches the store: date
// layout, required student, and score values limited to {0,3,5} on
// known criteria.
func (s *Service) validateRecord(r model.Record) error {
	if err := s.validate.Struct(r); err != nil {
		return fmt.Errorf("invalid record: %w", err)
	}
	valid := make(map[string]bool, len(model.Criteria))
	for _, c := range model.Criteria {
		valid[c.Key] = true
	}
	for key, v := range r.Scores {
		if !valid[key] {
			return fmt.Errorf("invalid record: unknown criterion %q", key)
		}
		if v != nil && !model.ValidScore(*v) {
			return fmt.Errorf("invalid record: criterion %q score %d not in {0, 3, 5}", key, *v)
		}
	}
	return nil
}

// validateCase checks a case draft: date layout and required group.
func (s *Service) validateCase(c model.Case) error {
	if err := s.validate.Struct(c); err != nil {
		return fmt.Errorf("invalid case: %w", err)
	}
	return nil
}
