package pg

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"video2md/internal/app/model"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS runs (
	id SERIAL PRIMARY KEY,
	job_id TEXT NOT NULL,
	input TEXT NOT NULL,
	kind TEXT NOT NULL,
	title TEXT,
	language TEXT,
	audio_duration INTEGER,
	transcript TEXT,
	formatted_path TEXT,
	finished_at TIMESTAMPTZ NOT NULL,
	has_error BOOLEAN NOT NULL DEFAULT FALSE,
	failed_stage TEXT,
	error_message TEXT
)`

// PostgresDB is the optional shared run-history backend.
type PostgresDB struct {
	db *sql.DB
}

func NewPostgresDB(dsn string) (*PostgresDB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create runs table: %w", err)
	}
	return &PostgresDB{db: db}, nil
}

// NewPostgresDBWithConn wraps an existing connection; used by tests.
func NewPostgresDBWithConn(db *sql.DB) *PostgresDB {
	return &PostgresDB{db: db}
}

func (pdb *PostgresDB) Close() error {
	return pdb.db.Close()
}

func (pdb *PostgresDB) CheckIfProcessed(input string) (int, error) {
	row := pdb.db.QueryRow(`SELECT id FROM runs WHERE input = $1 AND has_error = FALSE`, input)
	var id int
	err := row.Scan(&id)
	return id, err
}

func (pdb *PostgresDB) RecordRun(run model.Run) error {
	_, err := pdb.db.Exec(`
		INSERT INTO runs (job_id, input, kind, title, language, audio_duration, transcript,
			formatted_path, finished_at, has_error, failed_stage, error_message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		run.JobID, run.Input, run.Kind, run.Title, run.Language, run.AudioDuration,
		run.Transcript, run.FormattedPath, run.FinishedAt, run.HasError,
		run.FailedStage, run.ErrorMessage)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

func (pdb *PostgresDB) GetAll(limit int) ([]model.Run, error) {
	// limit <= 0 means no limit; NULL disables LIMIT in postgres.
	var limitArg any
	if limit > 0 {
		limitArg = limit
	}
	rows, err := pdb.db.Query(`
		SELECT id, job_id, input, kind, title, language, audio_duration, transcript,
			formatted_path, finished_at, has_error, failed_stage, error_message
		FROM runs
		ORDER BY finished_at DESC
		LIMIT $1`, limitArg)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	runs := make([]model.Run, 0)
	for rows.Next() {
		var r model.Run
		if err := rows.Scan(&r.ID, &r.JobID, &r.Input, &r.Kind, &r.Title, &r.Language,
			&r.AudioDuration, &r.Transcript, &r.FormattedPath, &r.FinishedAt,
			&r.HasError, &r.FailedStage, &r.ErrorMessage); err != nil {
			return nil, fmt.Errorf("db scan failed: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (pdb *PostgresDB) GetByID(id int) (*model.Run, error) {
	row := pdb.db.QueryRow(`
		SELECT id, job_id, input, kind, title, language, audio_duration, transcript,
			formatted_path, finished_at, has_error, failed_stage, error_message
		FROM runs WHERE id = $1`, id)

	var r model.Run
	if err := row.Scan(&r.ID, &r.JobID, &r.Input, &r.Kind, &r.Title, &r.Language,
		&r.AudioDuration, &r.Transcript, &r.FormattedPath, &r.FinishedAt,
		&r.HasError, &r.FailedStage, &r.ErrorMessage); err != nil {
		return nil, fmt.Errorf("db scan failed: %w", err)
	}
	return &r, nil
}
