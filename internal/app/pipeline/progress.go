package pipeline

import (
	"io"
	"os"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// Progress renders a batch progress bar on stderr. A nil *Progress (or one
// built with enabled=false) is a no-op, so single-job runs skip the bar.
type Progress struct {
	container *mpb.Progress
	bar       *mpb.Bar
}

// NewProgress creates a bar for total jobs, writing to w (stderr when nil).
func NewProgress(enabled bool, total int, w io.Writer) *Progress {
	if !enabled || total <= 1 {
		return nil
	}
	if w == nil {
		w = os.Stderr
	}

	container := mpb.New(
		mpb.WithOutput(w),
		mpb.WithRefreshRate(120*time.Millisecond),
	)
	bar := container.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name("processing "),
			decor.CountersNoUnit("(%d/%d)", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.Percentage(decor.WCSyncSpace),
			decor.OnComplete(decor.AverageETA(decor.ET_STYLE_GO, decor.WCSyncWidth), " done"),
		),
	)

	return &Progress{container: container, bar: bar}
}

func (p *Progress) Increment() {
	if p == nil {
		return
	}
	p.bar.Increment()
}

func (p *Progress) Wait() {
	if p == nil {
		return
	}
	p.container.Wait()
}
