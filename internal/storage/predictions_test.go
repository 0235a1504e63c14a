package storage

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BINABASS091/fugajiSmart-front-sub001/internal/common"
	"github.com/BINABASS091/fugajiSmart-front-sub001/internal/diagnosis"
	"github.com/BINABASS091/fugajiSmart-front-sub001/internal/model"
)

// createTestStorage opens a migrated database in a temp directory.
func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(context.Background(), dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func newPrediction(label string, confidence float64, at time.Time) *model.Prediction {
	return &model.Prediction{
		CreatedAt:      at,
		Signal:         model.RawSignal{Label: label, Confidence: confidence},
		Interpretation: diagnosis.Interpret(label, confidence),
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Migrate(ctx))

	var version int
	require.NoError(t, store.db.QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, ExpectedSchemaVersion, version)

	var indexCount int
	err := store.db.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='index' AND name IN ('idx_predictions_created_at', 'idx_predictions_status')
	`).Scan(&indexCount)
	require.NoError(t, err)
	assert.Equal(t, 2, indexCount)
}

func TestNewSQLiteStorage_InMemory(t *testing.T) {
	store, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.NoError(t, store.SavePrediction(context.Background(), newPrediction("healthy", 0.9, time.Time{})))
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("  ")
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestSavePrediction_RoundTrip(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	p := newPrediction("Coccidiosis", 0.84, time.Time{})
	require.NoError(t, store.SavePrediction(ctx, p))
	assert.NotEmpty(t, p.ID)
	assert.False(t, p.CreatedAt.IsZero())
	assert.Equal(t, model.SourceInteractive, p.Source)

	got, err := store.GetPrediction(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, p.Signal, got.Signal)
	assert.Equal(t, p.Interpretation, got.Interpretation)
	assert.Equal(t, p.Source, got.Source)
	assert.WithinDuration(t, p.CreatedAt, got.CreatedAt, time.Millisecond)
}

func TestSavePrediction_Invalid(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	tests := []struct {
		pred *model.Prediction
		want error
		name string
	}{
		{name: "nil prediction", pred: nil, want: ErrNilParameter},
		{name: "nan confidence", pred: newPrediction("sick", math.NaN(), time.Time{}), want: ErrInvalidPrediction},
		{
			name: "bad source",
			pred: func() *model.Prediction {
				p := newPrediction("sick", 0.5, time.Time{})
				p.Source = "webhook"
				return p
			}(),
			want: ErrInvalidPrediction,
		},
		{
			name: "invalid interpretation",
			pred: &model.Prediction{Signal: model.RawSignal{Label: "x", Confidence: 0.5}},
			want: model.ErrInvalidInterpretation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.SavePrediction(ctx, tt.pred)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSavePrediction_Duplicate(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	p := newPrediction("healthy", 0.9, time.Time{})
	p.ID = "fixed-id"
	require.NoError(t, store.SavePrediction(ctx, p))

	dup := newPrediction("sick", 0.5, time.Time{})
	dup.ID = "fixed-id"
	assert.ErrorIs(t, store.SavePrediction(ctx, dup), common.ErrDuplicateEntry)
}

func TestSavePredictions_Batch(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	batch := []*model.Prediction{
		newPrediction("healthy", 0.96, base),
		newPrediction("Newcastle Disease", 0.4, base.Add(time.Minute)),
		newPrediction("xyzzy", 0.5, base.Add(2*time.Minute)),
	}
	for _, p := range batch {
		p.Source = model.SourceBatch
	}

	require.NoError(t, store.SavePredictions(ctx, batch))

	got, err := store.ListPredictions(ctx, model.PredictionFilter{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "xyzzy", got[0].Signal.Label, "newest first")
	assert.Equal(t, "healthy", got[2].Signal.Label)
	for _, p := range got {
		assert.Equal(t, model.SourceBatch, p.Source)
	}

	assert.ErrorIs(t, store.SavePredictions(ctx, []*model.Prediction{}), ErrEmptySlice)
	assert.ErrorIs(t, store.SavePredictions(ctx, nil), ErrNilParameter)
}

func TestSavePredictions_RollsBackOnFailure(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	first := newPrediction("healthy", 0.9, time.Time{})
	first.ID = "same"
	second := newPrediction("sick", 0.9, time.Time{})
	second.ID = "same"

	require.Error(t, store.SavePredictions(ctx, []*model.Prediction{first, second}))

	got, err := store.ListPredictions(ctx, model.PredictionFilter{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGetPrediction_NotFound(t *testing.T) {
	store := createTestStorage(t)

	_, err := store.GetPrediction(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = store.GetPrediction(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestListPredictions_Filter(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	base := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	labels := []string{"healthy", "newcastle", "coccidiosis", "healthy", "xyzzy"}
	for i, label := range labels {
		require.NoError(t, store.SavePrediction(ctx, newPrediction(label, 0.8, base.Add(time.Duration(i)*time.Second))))
	}

	healthy := model.StatusHealthy
	got, err := store.ListPredictions(ctx, model.PredictionFilter{Status: &healthy})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	for _, p := range got {
		assert.Equal(t, model.StatusHealthy, p.Interpretation.Status)
	}

	got, err = store.ListPredictions(ctx, model.PredictionFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "xyzzy", got[0].Signal.Label)
	assert.Equal(t, "healthy", got[1].Signal.Label)
}

func TestCountByStatus(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	for _, label := range []string{"healthy", "healthy", "newcastle", "coccidiosis", "zzz"} {
		require.NoError(t, store.SavePrediction(ctx, newPrediction(label, 0.8, time.Time{})))
	}

	counts, err := store.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[model.Status]int{
		model.StatusHealthy:  2,
		model.StatusCritical: 1,
		model.StatusWarning:  1,
		model.StatusUnknown:  1,
	}, counts)
}

func TestDeletePredictions(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		require.NoError(t, store.SavePrediction(ctx, newPrediction("healthy", 0.9, base.AddDate(0, 0, i))))
	}

	n, err := store.DeletePredictions(ctx, base.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	got, err := store.ListPredictions(ctx, model.PredictionFilter{})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	n, err = store.DeletePredictions(ctx, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
