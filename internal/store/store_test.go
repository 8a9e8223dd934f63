package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/jobready/internal/apperr"
	"github.com/jonathan/jobready/internal/schemas"
	"github.com/jonathan/jobready/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackends(t *testing.T) map[string]Backend {
	t.Helper()
	ctx := context.Background()

	fs, err := NewFileStore(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)

	sq, err := NewSQLiteStore(ctx, filepath.Join(t.TempDir(), "jobready.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sq.Close() })

	return map[string]Backend{
		BackendFile:   fs,
		BackendSQLite: sq,
		BackendMemory: NewMemoryStore(),
	}
}

func TestBackends_ReadWrite(t *testing.T) {
	ctx := context.Background()
	for name, s := range newBackends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Read(ctx, "missing")
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperr.ErrNotFound))

			require.NoError(t, s.Write(ctx, "doc", []byte(`{"v":1}`)))
			require.NoError(t, s.Write(ctx, "doc", []byte(`{"v":2}`)))

			data, err := s.Read(ctx, "doc")
			require.NoError(t, err)
			assert.JSONEq(t, `{"v":2}`, string(data))
		})
	}
}

func TestBackends_InvalidName(t *testing.T) {
	ctx := context.Background()
	for name, s := range newBackends(t) {
		t.Run(name, func(t *testing.T) {
			err := s.Write(ctx, "../escape", []byte(`{}`))
			require.Error(t, err)
			assert.Equal(t, apperr.KindInvalidFormat, apperr.KindOf(err))
		})
	}
}

func TestLoadSave_RoundTrip(t *testing.T) {
	ctx := context.Background()
	state := types.NewWorkflowState()
	state.CurrentScore = 72.5
	state.SkillsMastered = []string{"Docker"}
	state.TestsPassed["Docker"] = []types.TestLevel{types.TestLevelIntermediate}
	state.QualityGatesPassed = []types.GateName{types.GateFoundation}

	sprints := []types.Sprint{{
		SprintNumber:   1,
		StartDate:      "2025-01-01",
		EndDate:        "2025-01-15",
		SkillsTargeted: []string{"Docker"},
		DailyLogs:      []types.DailyLog{{DayNumber: 1, Date: "2025-01-01", Hours: 2.5, Concepts: []string{"layers"}}},
		TestScores:     map[string]float64{},
	}}

	for name, s := range newBackends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, Save(ctx, s, schemas.WorkflowState, state))
			got, err := Load(ctx, s, schemas.WorkflowState, types.NewWorkflowState())
			require.NoError(t, err)
			assert.Equal(t, state, got)

			require.NoError(t, Save(ctx, s, schemas.SprintHistory, sprints))
			gotSprints, err := Load(ctx, s, schemas.SprintHistory, []types.Sprint{})
			require.NoError(t, err)
			assert.Equal(t, sprints, gotSprints)
		})
	}
}

func TestLoad_DefaultWhenAbsent(t *testing.T) {
	ctx := context.Background()
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	got, err := Load(ctx, fs, schemas.AnalyzedJobs, []types.AnalysisRecord{})
	require.NoError(t, err)
	assert.Empty(t, got)

	_, statErr := os.Stat(fs.Path(schemas.AnalyzedJobs))
	assert.True(t, os.IsNotExist(statErr), "load must not create the document")
}

func TestLoad_CorruptDocument(t *testing.T) {
	ctx := context.Background()
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(fs.Path(schemas.WorkflowState), []byte("{ not json"), 0644))

	def := types.NewWorkflowState()
	got, err := Load(ctx, fs, schemas.WorkflowState, def)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrInvalidFormat))
	assert.Equal(t, def, got)
}

func TestLoad_SchemaMismatch(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Write(ctx, schemas.WorkflowState, []byte(`{"mode":"turbo","current_stage":"baseline","current_sprint":0,"quality_gates_passed":[]}`)))

	_, err := Load(ctx, s, schemas.WorkflowState, types.NewWorkflowState())
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidFormat, apperr.KindOf(err))

	var validationErr *schemas.ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestSave_RejectsInvalidDocument(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	bad := []types.Sprint{{SprintNumber: 0, StartDate: "2025-01-01", EndDate: "2025-01-15"}}
	err := Save(ctx, s, schemas.SprintHistory, bad)
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidFormat, apperr.KindOf(err))

	_, err = s.Read(ctx, schemas.SprintHistory)
	assert.True(t, errors.Is(err, apperr.ErrNotFound), "nothing is written")
}

func TestSave_UnschemedDocument(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, Save(ctx, s, "notes", map[string]int{"a": 1}))
	got, err := Load(ctx, s, "notes", map[string]int{})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 1}, got)
}

func TestFileStore_NoTempFilesLeft(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, fs.Write(ctx, "doc", []byte(`[]`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "doc.json", entries[0].Name())
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	b, err := Open(ctx, Options{DataDir: dir})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, b)

	b, err = Open(ctx, Options{Backend: BackendSQLite, DataDir: dir})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, b)
	require.NoError(t, b.Close())
	assert.FileExists(t, filepath.Join(dir, "jobready.db"))

	_, err = Open(ctx, Options{Backend: BackendPostgres})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidFormat, apperr.KindOf(err))

	_, err = Open(ctx, Options{Backend: "s3"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidFormat, apperr.KindOf(err))
}
