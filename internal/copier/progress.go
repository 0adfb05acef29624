package copier

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"astrocopy/internal/logging"
)

// Progress receives one tick per processed record.
type Progress interface {
	Start(total int)
	Increment()
	Finish()
}

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// NewProgress picks the progress reporter for a run. A bar is drawn on w when
// per-file logging is quiet and w is a terminal; otherwise progress is logged
// in 10% steps.
func NewProgress(logger *slog.Logger, w io.Writer, quiet, interactive bool) Progress {
	if quiet && interactive && w != nil {
		return &barProgress{writer: w}
	}
	return newLogProgress(logger)
}

type barProgress struct {
	writer io.Writer
	bar    *progressbar.ProgressBar
}

func (p *barProgress) Start(total int) {
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.writer),
		progressbar.OptionSetDescription("copying"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionClearOnFinish(),
	)
}

func (p *barProgress) Increment() {
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}

func (p *barProgress) Finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}

type logProgress struct {
	logger  *slog.Logger
	sampler *logging.ProgressSampler
	now     func() time.Time
	started time.Time
	total   int
	done    int
}

func newLogProgress(logger *slog.Logger) *logProgress {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &logProgress{logger: logger, sampler: logging.NewProgressSampler(10), now: time.Now}
}

func (p *logProgress) Start(total int) {
	p.total = total
	p.done = 0
	p.started = p.now()
	p.sampler.Reset()
}

func (p *logProgress) Increment() {
	p.done++
	if p.total <= 0 {
		return
	}
	percent := float64(p.done) * 100 / float64(p.total)
	if !p.sampler.ShouldLog(percent) {
		return
	}
	elapsed := p.now().Sub(p.started)
	p.logger.Info("copy progress",
		logging.String(logging.FieldEventType, "progress"),
		logging.Int("done", p.done),
		logging.Int("total", p.total),
		logging.Float64("percent", float64(int(percent*10))/10),
		logging.Duration("eta", estimateRemaining(elapsed, p.done, p.total)),
	)
}

func (p *logProgress) Finish() {}

// estimateRemaining extrapolates the mean per-file duration over the files
// still to go.
func estimateRemaining(elapsed time.Duration, done, total int) time.Duration {
	if done <= 0 || done >= total {
		return 0
	}
	perFile := elapsed / time.Duration(done)
	return (perFile * time.Duration(total-done)).Round(time.Second)
}
