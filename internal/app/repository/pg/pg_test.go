package pg

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"video2md/internal/app/model"
)

var runColumns = []string{
	"id", "job_id", "input", "kind", "title", "language", "audio_duration",
	"transcript", "formatted_path", "finished_at", "has_error", "failed_stage",
	"error_message",
}

func newMockDB(t *testing.T) (*PostgresDB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresDBWithConn(db), mock
}

func TestCheckIfProcessed(t *testing.T) {
	pdb, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT id FROM runs`).
		WithArgs("https://youtu.be/abc").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	id, err := pdb.CheckIfProcessed("https://youtu.be/abc")
	require.NoError(t, err)
	assert.Equal(t, 7, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRun(t *testing.T) {
	pdb, mock := newMockDB(t)

	run := model.Run{
		JobID:      "job-1",
		Input:      "https://youtu.be/abc",
		Kind:       "remote",
		Title:      "Video",
		FinishedAt: time.Now(),
	}

	mock.ExpectExec(`INSERT INTO runs`).
		WithArgs(run.JobID, run.Input, run.Kind, run.Title, run.Language,
			run.AudioDuration, run.Transcript, run.FormattedPath,
			run.FinishedAt, run.HasError, run.FailedStage, run.ErrorMessage).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, pdb.RecordRun(run))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAll(t *testing.T) {
	pdb, mock := newMockDB(t)

	now := time.Now()
	rows := sqlmock.NewRows(runColumns).
		AddRow(2, "job-2", "input-2", "local", "B", "en", 10, "t2", "p2", now, false, "", "").
		AddRow(1, "job-1", "input-1", "remote", "A", "zh", 20, "t1", "p1", now, true, "fetch", "boom")

	mock.ExpectQuery(`SELECT (.+) FROM runs`).
		WithArgs(5).
		WillReturnRows(rows)

	runs, err := pdb.GetAll(5)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "input-2", runs[0].Input)
	assert.True(t, runs[1].HasError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllWithoutLimit(t *testing.T) {
	pdb, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT (.+) FROM runs`).
		WithArgs(nil).
		WillReturnRows(sqlmock.NewRows(runColumns))

	runs, err := pdb.GetAll(0)
	require.NoError(t, err)
	assert.Empty(t, runs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID(t *testing.T) {
	pdb, mock := newMockDB(t)

	now := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM runs WHERE id`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(runColumns).
			AddRow(3, "job-3", "input-3", "remote", "C", "en", 30, "t3", "p3", now, false, "", ""))

	run, err := pdb.GetByID(3)
	require.NoError(t, err)
	assert.Equal(t, 3, run.ID)
	assert.Equal(t, "input-3", run.Input)
	assert.NoError(t, mock.ExpectationsWereMet())
}
