package sqlite

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"video2md/internal/app/model"
	"video2md/internal/app/util/files"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	job_id TEXT NOT NULL,
	input TEXT NOT NULL,
	kind TEXT NOT NULL,
	title TEXT,
	language TEXT,
	audio_duration INTEGER,
	transcript TEXT,
	formatted_path TEXT,
	finished_at TIMESTAMP NOT NULL,
	has_error INTEGER NOT NULL DEFAULT 0,
	failed_stage TEXT,
	error_message TEXT
);
CREATE INDEX IF NOT EXISTS idx_runs_input ON runs(input);
`

// SQLiteDB is the default run-history backend.
type SQLiteDB struct {
	db *sql.DB
}

func NewSQLiteDB(dbFilePath string) (*SQLiteDB, error) {
	if err := files.EnsureDir(filepath.Dir(dbFilePath)); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?cache=shared&mode=rwc", dbFilePath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create runs table: %w", err)
	}
	return &SQLiteDB{db: db}, nil
}

func (sdb *SQLiteDB) Close() error {
	return sdb.db.Close()
}

func (sdb *SQLiteDB) CheckIfProcessed(input string) (int, error) {
	row := sdb.db.QueryRow(`SELECT id FROM runs WHERE input = ? AND has_error = 0`, input)
	var id int
	err := row.Scan(&id)
	return id, err
}

func (sdb *SQLiteDB) RecordRun(run model.Run) error {
	_, err := sdb.db.Exec(`
		INSERT INTO runs (job_id, input, kind, title, language, audio_duration, transcript,
			formatted_path, finished_at, has_error, failed_stage, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.JobID, run.Input, run.Kind, run.Title, run.Language, run.AudioDuration,
		run.Transcript, run.FormattedPath, run.FinishedAt, boolToInt(run.HasError),
		run.FailedStage, run.ErrorMessage)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

func (sdb *SQLiteDB) GetAll(limit int) ([]model.Run, error) {
	// limit <= 0 means no limit.
	if limit <= 0 {
		limit = -1
	}
	rows, err := sdb.db.Query(`
		SELECT id, job_id, input, kind, title, language, audio_duration, transcript,
			formatted_path, finished_at, has_error, failed_stage, error_message
		FROM runs
		ORDER BY finished_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

func (sdb *SQLiteDB) GetByID(id int) (*model.Run, error) {
	row := sdb.db.QueryRow(`
		SELECT id, job_id, input, kind, title, language, audio_duration, transcript,
			formatted_path, finished_at, has_error, failed_stage, error_message
		FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if err != nil {
		return nil, err
	}
	return run, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanRun(row scannable) (*model.Run, error) {
	var r model.Run
	var hasError int
	err := row.Scan(&r.ID, &r.JobID, &r.Input, &r.Kind, &r.Title, &r.Language,
		&r.AudioDuration, &r.Transcript, &r.FormattedPath, &r.FinishedAt,
		&hasError, &r.FailedStage, &r.ErrorMessage)
	if err != nil {
		return nil, fmt.Errorf("db scan failed: %w", err)
	}
	r.HasError = hasError != 0
	return &r, nil
}

func scanRuns(rows *sql.Rows) ([]model.Run, error) {
	runs := make([]model.Run, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
