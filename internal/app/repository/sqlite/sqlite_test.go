package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"video2md/internal/app/model"
)

func newTestDB(t *testing.T) *SQLiteDB {
	t.Helper()
	db, err := NewSQLiteDB(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleRun(input string, hasError bool) model.Run {
	return model.Run{
		JobID:         "job-1",
		Input:         input,
		Kind:          "remote",
		Title:         "Test_Video",
		Language:      "en",
		AudioDuration: 321,
		Transcript:    "hello world",
		FormattedPath: "output/formatted/Test_Video_formatted.md",
		FinishedAt:    time.Now().UTC(),
		HasError:      hasError,
	}
}

func TestRecordAndCheckIfProcessed(t *testing.T) {
	db := newTestDB(t)

	_, err := db.CheckIfProcessed("https://youtu.be/abc")
	assert.Error(t, err, "unknown input must not count as processed")

	require.NoError(t, db.RecordRun(sampleRun("https://youtu.be/abc", false)))

	id, err := db.CheckIfProcessed("https://youtu.be/abc")
	require.NoError(t, err)
	assert.Greater(t, id, 0)
}

func TestFailedRunsDoNotCountAsProcessed(t *testing.T) {
	db := newTestDB(t)

	failed := sampleRun("https://youtu.be/bad", true)
	failed.FailedStage = "transcribe"
	failed.ErrorMessage = "model not found"
	require.NoError(t, db.RecordRun(failed))

	_, err := db.CheckIfProcessed("https://youtu.be/bad")
	assert.Error(t, err)
}

func TestGetAllAndGetByID(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.RecordRun(sampleRun("input-1", false)))
	require.NoError(t, db.RecordRun(sampleRun("input-2", true)))
	require.NoError(t, db.RecordRun(sampleRun("input-3", false)))

	all, err := db.GetAll(0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	limited, err := db.GetAll(2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	run, err := db.GetByID(all[0].ID)
	require.NoError(t, err)
	assert.Equal(t, all[0].Input, run.Input)
	assert.Equal(t, all[0].HasError, run.HasError)

	_, err = db.GetByID(99999)
	assert.Error(t, err)
}

func TestGetAllEmptyDatabase(t *testing.T) {
	db := newTestDB(t)

	runs, err := db.GetAll(0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
