package logbook

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andyapp/andy/internal/model"
)

func TestResolveCase_EmptyGroupAlwaysRefused(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestService(t)

	_, err := svc.ResolveCase(ctx, "", "2026-08-31")
	require.Error(t, err)
	assert.True(t, IsMissingKey(err), "empty group must be refused, got %v", err)

	// Refusal happens before synthesis: nothing was written, no
	// identifier was consumed.
	all, err := st.AllCases(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestResolveCase_EmptyDateRefused(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.ResolveCase(ctx, "G1", "")
	assert.True(t, IsMissingKey(err))
}

func TestSaveCase_EmptyGroupRefused(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestService(t)

	_, err := svc.SaveCase(ctx, model.Case{Date: "2026-08-31"})
	assert.True(t, IsMissingKey(err))

	all, err := st.AllCases(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestResolveCase_SynthesizesWithContext(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, "case-1")

	_, err := svc.SaveSettings(ctx, model.Settings{
		PreceptorName: "Dr. Andrade", Class: "T1", Shift: "Tarde", Location: "HU", Date: "2026-08-31",
	})
	require.NoError(t, err)

	draft, err := svc.ResolveCase(ctx, "G2", "2026-08-31")
	require.NoError(t, err)

	assert.Equal(t, "case-1", draft.ID)
	assert.Equal(t, "G2", draft.Group)
	assert.Equal(t, "2026-08-31", draft.Date)
	assert.Equal(t, "Dr. Andrade", draft.Preceptor)
	assert.Equal(t, "Tarde", draft.Shift)
}

func TestSaveCase_IdempotentForSameLogicalKey(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestService(t)

	for i := 0; i < 2; i++ {
		draft, err := svc.ResolveCase(ctx, "G1", "2026-08-31")
		require.NoError(t, err)
		draft.ChiefComplaint = "Dor torácica"
		_, err = svc.SaveCase(ctx, draft)
		require.NoError(t, err)
	}

	all, err := st.AllCases(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSaveCase_AdoptsExistingIdentity(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	first, err := svc.ResolveCase(ctx, "G1", "2026-08-31")
	require.NoError(t, err)
	second, err := svc.ResolveCase(ctx, "G1", "2026-08-31")
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	savedFirst, err := svc.SaveCase(ctx, first)
	require.NoError(t, err)
	savedSecond, err := svc.SaveCase(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, savedFirst.ID, savedSecond.ID)
}

func TestSaveCase_DistinctGroupsDistinctRows(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestService(t)

	for _, group := range []string{"G1", "G2"} {
		draft, err := svc.ResolveCase(ctx, group, "2026-08-31")
		require.NoError(t, err)
		_, err = svc.SaveCase(ctx, draft)
		require.NoError(t, err)
	}

	all, err := st.AllCases(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
