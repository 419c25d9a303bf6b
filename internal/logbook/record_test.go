package logbook

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andyapp/andy/internal/model"
	"github.com/andyapp/andy/internal/store"
	"github.com/andyapp/andy/internal/testutil"
)

var testTime = time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, ids ...string) (*Service, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	opts := []Option{WithClock(testutil.NewFixedClock(testTime))}
	if len(ids) > 0 {
		opts = append(opts, WithIDGenerator(model.NewFixedIDGenerator(ids...)))
	}
	return New(st, opts...), st
}

func TestResolveRecord_SynthesizesDraft(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, "rec-1")

	_, err := svc.SaveSettings(ctx, model.Settings{
		Class: "T1", Group: "G2", Shift: "Manhã", Location: "UBS Central", Date: "2026-08-31",
	})
	require.NoError(t, err)

	draft, err := svc.ResolveRecord(ctx, "student-1", "2026-08-31")
	require.NoError(t, err)

	assert.Equal(t, "rec-1", draft.ID)
	assert.Equal(t, "student-1", draft.StudentID)
	assert.Equal(t, "2026-08-31", draft.Date)

	// Contextual snapshot copied from settings.
	assert.Equal(t, "T1", draft.Class)
	assert.Equal(t, "G2", draft.Group)
	assert.Equal(t, "UBS Central", draft.Location)

	// Every criterion present and unscored.
	assert.Len(t, draft.Scores, len(model.Criteria))
	for key, v := range draft.Scores {
		assert.Nil(t, v, "criterion %s should be unscored", key)
	}

	// Drafts are not persisted.
	all, err := svc.store.AllRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestResolveRecord_ReturnsExistingRow(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	draft, err := svc.ResolveRecord(ctx, "student-1", "2026-08-31")
	require.NoError(t, err)
	draft.DayNotes = "salvo"
	saved, err := svc.SaveRecord(ctx, draft)
	require.NoError(t, err)

	again, err := svc.ResolveRecord(ctx, "student-1", "2026-08-31")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, again.ID)
	assert.Equal(t, "salvo", again.DayNotes)
}

func TestResolveRecord_MissingKey(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.ResolveRecord(ctx, "", "2026-08-31")
	assert.True(t, IsMissingKey(err))

	_, err = svc.ResolveRecord(ctx, "student-1", "")
	assert.True(t, IsMissingKey(err))
}

func TestSaveRecord_IdempotentForSameLogicalKey(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestService(t)

	// Resolve then save twice in a row for the same (student, date).
	for i := 0; i < 2; i++ {
		draft, err := svc.ResolveRecord(ctx, "student-1", "2026-08-31")
		require.NoError(t, err)
		five := 5
		draft.Scores["assiduidade"] = &five
		_, err = svc.SaveRecord(ctx, draft)
		require.NoError(t, err)
	}

	all, err := st.AllRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1, "same logical key must map to exactly one stored row")
}

func TestSaveRecord_AdoptsExistingIdentity(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	// Two drafts created before either is saved: both synthesized with
	// distinct fresh identifiers.
	first, err := svc.ResolveRecord(ctx, "student-1", "2026-08-31")
	require.NoError(t, err)
	second, err := svc.ResolveRecord(ctx, "student-1", "2026-08-31")
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	savedFirst, err := svc.SaveRecord(ctx, first)
	require.NoError(t, err)

	// Saving the stale second draft must overwrite the first row, not
	// insert a duplicate under its own identifier.
	savedSecond, err := svc.SaveRecord(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, savedFirst.ID, savedSecond.ID)

	all, err := svc.store.AllRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSaveRecord_DistinctDatesDistinctRows(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestService(t)

	for _, date := range []string{"2026-08-31", "2026-09-01"} {
		draft, err := svc.ResolveRecord(ctx, "student-1", date)
		require.NoError(t, err)
		_, err = svc.SaveRecord(ctx, draft)
		require.NoError(t, err)
	}

	all, err := st.AllRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// Each row independently resolvable under its own date.
	for _, date := range []string{"2026-08-31", "2026-09-01"} {
		r, err := svc.ResolveRecord(ctx, "student-1", date)
		require.NoError(t, err)
		assert.Equal(t, date, r.Date)
	}
}

func TestSaveRecord_RejectsInvalidScore(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	draft, err := svc.ResolveRecord(ctx, "student-1", "2026-08-31")
	require.NoError(t, err)
	four := 4
	draft.Scores["postura"] = &four

	_, err = svc.SaveRecord(ctx, draft)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not in {0, 3, 5}")
}

func TestSaveRecord_RejectsMalformedDate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	draft, err := svc.ResolveRecord(ctx, "student-1", "2026-08-31")
	require.NoError(t, err)
	draft.Date = "31/08/2026"

	_, err = svc.SaveRecord(ctx, draft)
	require.Error(t, err)
}

func TestSaveRecord_ZeroIsAValidScore(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	draft, err := svc.ResolveRecord(ctx, "student-1", "2026-08-31")
	require.NoError(t, err)
	zero := 0
	draft.Scores["socializacao"] = &zero

	saved, err := svc.SaveRecord(ctx, draft)
	require.NoError(t, err)
	require.NotNil(t, saved.Scores["socializacao"])
	assert.Equal(t, 0, *saved.Scores["socializacao"])
}

func TestListRecordsForStudent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	for _, key := range []struct{ student, date string }{
		{"student-1", "2026-08-31"},
		{"student-1", "2026-09-01"},
		{"student-2", "2026-08-31"},
	} {
		draft, err := svc.ResolveRecord(ctx, key.student, key.date)
		require.NoError(t, err)
		_, err = svc.SaveRecord(ctx, draft)
		require.NoError(t, err)
	}

	records, err := svc.ListRecordsForStudent(ctx, "student-1")
	require.NoError(t, err)
	assert.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, "student-1", r.StudentID)
	}
}

func TestListRecordsForDay_GroupFilter(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.SaveSettings(ctx, model.Settings{Group: "G1", Date: "2026-08-31"})
	require.NoError(t, err)
	draft, err := svc.ResolveRecord(ctx, "student-1", "2026-08-31")
	require.NoError(t, err)
	_, err = svc.SaveRecord(ctx, draft)
	require.NoError(t, err)

	_, err = svc.SaveSettings(ctx, model.Settings{Group: "G2", Date: "2026-08-31"})
	require.NoError(t, err)
	draft, err = svc.ResolveRecord(ctx, "student-2", "2026-08-31")
	require.NoError(t, err)
	_, err = svc.SaveRecord(ctx, draft)
	require.NoError(t, err)

	all, err := svc.ListRecordsForDay(ctx, "2026-08-31", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	g1, err := svc.ListRecordsForDay(ctx, "2026-08-31", "G1")
	require.NoError(t, err)
	require.Len(t, g1, 1)
	assert.Equal(t, "student-1", g1[0].StudentID)
}
