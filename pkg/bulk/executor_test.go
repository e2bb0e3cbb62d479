package bulk_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandkit/brandkit/pkg/bulk"
	"github.com/brandkit/brandkit/pkg/paging"
)

func filterOn(column, value string) []paging.Condition {
	return []paging.Condition{{Column: column, Op: paging.OpEq, Value: value}}
}

type fakeRecord struct {
	ID string
}

type fakeDatastore struct {
	count    int64
	countFor func(bulk.Selection) int64
	countErr error
	sample   []fakeRecord

	mutated    int64
	mutateErr  error
	mutateOps  []bulk.OperationType
	sampleCall int
}

func (f *fakeDatastore) Count(_ context.Context, sel bulk.Selection) (int64, error) {
	if f.countFor != nil {
		return f.countFor(sel), f.countErr
	}
	return f.count, f.countErr
}

func (f *fakeDatastore) Sample(_ context.Context, _ bulk.Selection, limit int) ([]fakeRecord, error) {
	f.sampleCall++
	if len(f.sample) > limit {
		return f.sample[:limit], nil
	}
	return f.sample, nil
}

func (f *fakeDatastore) Mutate(_ context.Context, op bulk.OperationType, _ bulk.Selection, _ map[string]any) (int64, error) {
	f.mutateOps = append(f.mutateOps, op)
	return f.mutated, f.mutateErr
}

func TestSelectionValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		sel     bulk.Selection
		wantErr bool
	}{
		{"explicit ids", bulk.Selection{IDs: []string{"a", "b"}}, false},
		{"all", bulk.Selection{All: true}, false},
		{"all with exclusions", bulk.Selection{All: true, ExcludeIDs: []string{"a"}}, false},
		{"filter", bulk.Selection{Filter: filterOn("status", "draft")}, false},
		{"empty", bulk.Selection{}, true},
		{"ids and all", bulk.Selection{IDs: []string{"a"}, All: true}, true},
		{"ids and filter", bulk.Selection{IDs: []string{"a"}, Filter: filterOn("status", "draft")}, true},
		{"exclusions without all", bulk.Selection{IDs: []string{"a"}, ExcludeIDs: []string{"b"}}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.sel.Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, bulk.ErrInvalidSelection)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExecutor(t *testing.T) {
	t.Parallel()

	newExecutor := func(t *testing.T, ds *fakeDatastore) *bulk.Executor[fakeRecord] {
		t.Helper()
		v, err := bulk.NewValidator(nil)
		require.NoError(t, err)
		return bulk.NewExecutor[fakeRecord](v, ds)
	}

	t.Run("preview counts and samples but never mutates", func(t *testing.T) {
		t.Parallel()

		ds := &fakeDatastore{
			count:  42,
			sample: []fakeRecord{{ID: "1"}, {ID: "2"}},
		}
		e := newExecutor(t, ds)

		result, err := e.Execute(context.Background(), bulk.OpUpdate, bulk.Request{
			Selection: bulk.Selection{All: true},
			Options:   bulk.Options{Preview: true},
		})
		require.NoError(t, err)

		assert.True(t, result.Preview)
		assert.Equal(t, int64(42), result.AffectedCount)
		assert.Len(t, result.Sample, 2)
		assert.Zero(t, result.Mutated)
		assert.Empty(t, ds.mutateOps)
	})

	t.Run("preview is re-entrant", func(t *testing.T) {
		t.Parallel()

		ds := &fakeDatastore{count: 10}
		e := newExecutor(t, ds)

		req := bulk.Request{
			Selection: bulk.Selection{All: true},
			Options:   bulk.Options{Preview: true},
		}
		for range 3 {
			_, err := e.Execute(context.Background(), bulk.OpUpdate, req)
			require.NoError(t, err)
		}
		assert.Equal(t, 3, ds.sampleCall)
		assert.Empty(t, ds.mutateOps)
	})

	t.Run("sample is capped at the preview size", func(t *testing.T) {
		t.Parallel()

		many := make([]fakeRecord, 25)
		ds := &fakeDatastore{count: 25, sample: many}
		e := newExecutor(t, ds)

		result, err := e.Execute(context.Background(), bulk.OpUpdate, bulk.Request{
			Selection: bulk.Selection{All: true},
			Options:   bulk.Options{Preview: true},
		})
		require.NoError(t, err)
		assert.Len(t, result.Sample, bulk.SampleSize)
	})

	t.Run("real run mutates and reports the count", func(t *testing.T) {
		t.Parallel()

		ds := &fakeDatastore{count: 30, mutated: 30}
		e := newExecutor(t, ds)

		result, err := e.Execute(context.Background(), bulk.OpArchive, bulk.Request{
			Selection: bulk.Selection{IDs: []string{"a", "b"}},
		})
		require.NoError(t, err)

		assert.False(t, result.Preview)
		assert.Equal(t, int64(30), result.Mutated)
		assert.Equal(t, []bulk.OperationType{bulk.OpArchive}, ds.mutateOps)
		assert.Equal(t, bulk.LevelSafe, result.SafetyLevel)
	})

	t.Run("large fraction of scope raises the advisory notice", func(t *testing.T) {
		t.Parallel()

		ds := &fakeDatastore{countFor: func(sel bulk.Selection) int64 {
			if sel.All {
				return 100
			}
			return 60
		}}
		e := newExecutor(t, ds)

		ids := make([]string, 60)
		result, err := e.Execute(context.Background(), bulk.OpUpdate, bulk.Request{
			Selection: bulk.Selection{IDs: ids},
			Options:   bulk.Options{Preview: true},
		})
		require.NoError(t, err)

		assert.Contains(t, result.Warnings, "This operation affects 60 of 100 records in scope.")
	})

	t.Run("all selection is its own scope total", func(t *testing.T) {
		t.Parallel()

		calls := 0
		ds := &fakeDatastore{count: 40, countFor: func(bulk.Selection) int64 {
			calls++
			return 40
		}}
		e := newExecutor(t, ds)

		result, err := e.Execute(context.Background(), bulk.OpUpdate, bulk.Request{
			Selection: bulk.Selection{All: true},
			Options:   bulk.Options{Preview: true},
		})
		require.NoError(t, err)

		assert.Equal(t, 1, calls)
		assert.Contains(t, result.Warnings, "This operation affects 40 of 40 records in scope.")
	})

	t.Run("safety gate refuses before any mutation", func(t *testing.T) {
		t.Parallel()

		ds := &fakeDatastore{count: 1500}
		e := newExecutor(t, ds)

		_, err := e.Execute(context.Background(), bulk.OpDelete, bulk.Request{
			Selection: bulk.Selection{All: true},
			Options:   bulk.Options{Confirmed: true},
		})

		var safety *bulk.SafetyError
		require.ErrorAs(t, err, &safety)
		assert.Equal(t, bulk.ReasonExceedsAbsoluteMax, safety.Reason)
		assert.Empty(t, ds.mutateOps)
	})

	t.Run("invalid selection and unknown operation are rejected", func(t *testing.T) {
		t.Parallel()

		e := newExecutor(t, &fakeDatastore{})

		_, err := e.Execute(context.Background(), bulk.OpUpdate, bulk.Request{})
		assert.ErrorIs(t, err, bulk.ErrInvalidSelection)

		_, err = e.Execute(context.Background(), bulk.OperationType("truncate"), bulk.Request{
			Selection: bulk.Selection{All: true},
		})
		assert.ErrorIs(t, err, bulk.ErrUnknownOperation)
	})

	t.Run("count failure aborts", func(t *testing.T) {
		t.Parallel()

		ds := &fakeDatastore{countErr: assert.AnError}
		e := newExecutor(t, ds)

		_, err := e.Execute(context.Background(), bulk.OpUpdate, bulk.Request{
			Selection: bulk.Selection{All: true},
		})
		assert.ErrorIs(t, err, assert.AnError)
		assert.Empty(t, ds.mutateOps)
	})

	t.Run("panics on nil dependencies", func(t *testing.T) {
		t.Parallel()

		v, err := bulk.NewValidator(nil)
		require.NoError(t, err)

		assert.Panics(t, func() { bulk.NewExecutor[fakeRecord](nil, &fakeDatastore{}) })
		assert.Panics(t, func() { bulk.NewExecutor[fakeRecord](v, nil) })
	})
}
