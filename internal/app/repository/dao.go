package repository

import "video2md/internal/app/model"

// RunDAO persists pipeline outcomes. Backends: sqlite (default) and
// postgres.
type RunDAO interface {
	Close() error

	// CheckIfProcessed returns the run id of a previous successful run for
	// the same input, or an error when none exists.
	CheckIfProcessed(input string) (int, error)

	RecordRun(run model.Run) error

	GetAll(limit int) ([]model.Run, error)

	GetByID(id int) (*model.Run, error)
}
