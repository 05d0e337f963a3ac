package pipeline

import (
	"context"

	"github.com/samber/lo"

	"video2md/internal/app/model"
)

// Summary aggregates the outcome of a batch run.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Jobs      []*model.Job
}

// FailedJobs returns the jobs that ended in the failed state.
func (s *Summary) FailedJobs() []*model.Job {
	return lo.Filter(s.Jobs, func(j *model.Job, _ int) bool { return !j.Succeeded() })
}

// ProcessBatch runs inputs sequentially, one job at a time. A failed job
// never stops the batch; every input produces exactly one outcome.
func (p *Pipeline) ProcessBatch(ctx context.Context, inputs []string, language string, progress *Progress) *Summary {
	summary := &Summary{Total: len(inputs)}

	for i, input := range inputs {
		p.log.Infow("batch progress", "current", i+1, "total", len(inputs))

		job := p.ProcessOne(ctx, input, language)
		summary.Jobs = append(summary.Jobs, job)
		if progress != nil {
			progress.Increment()
		}
	}

	summary.Succeeded = lo.CountBy(summary.Jobs, func(j *model.Job) bool { return j.Succeeded() })
	summary.Failed = summary.Total - summary.Succeeded

	if progress != nil {
		progress.Wait()
	}

	p.log.Infow("batch completed", "total", summary.Total, "succeeded", summary.Succeeded, "failed", summary.Failed)
	return summary
}
