package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"s2x/internal/app/jobs"
)

type Config struct {
	Enabled bool
	Writer  io.Writer
}

// Tracker renders a spinner with the live job status while a session polls.
// A disabled tracker accepts every call and renders nothing.
type Tracker struct {
	container *mpb.Progress
	bar       *mpb.Bar
	status    atomic.Value
	enabled   bool
	once      sync.Once
}

func New(config Config) *Tracker {
	t := &Tracker{enabled: config.Enabled}
	t.status.Store("")
	if !config.Enabled {
		return t
	}

	writer := config.Writer
	if writer == nil {
		writer = os.Stderr
	}
	t.container = mpb.New(
		mpb.WithOutput(writer),
		mpb.WithRefreshRate(120*time.Millisecond),
		mpb.WithWidth(1),
	)
	return t
}

// Start shows the spinner with label.
func (t *Tracker) Start(label string) {
	if !t.enabled {
		return
	}
	t.bar = t.container.New(0,
		mpb.SpinnerStyle(),
		mpb.PrependDecorators(
			decor.Name(label+" ", decor.WC{C: decor.DindentRight}),
			decor.Any(func(decor.Statistics) string {
				return t.status.Load().(string)
			}),
		),
		mpb.AppendDecorators(
			decor.Elapsed(decor.ET_STYLE_GO, decor.WC{W: 6}),
		),
	)
}

// Observe updates the status text from a session snapshot.
func (t *Tracker) Observe(snap jobs.Snapshot) {
	t.status.Store(Describe(snap))
}

// Status returns the last rendered status text.
func (t *Tracker) Status() string {
	return t.status.Load().(string)
}

// Finish stops the spinner, marking it complete when ok.
func (t *Tracker) Finish(ok bool) {
	if !t.enabled {
		return
	}
	t.once.Do(func() {
		if t.bar == nil {
			t.container.Shutdown()
			return
		}
		if ok {
			t.bar.SetTotal(-1, true)
		} else {
			t.bar.Abort(false)
		}
		t.container.Wait()
	})
}

// Describe renders a one-line summary of a snapshot.
func Describe(snap jobs.Snapshot) string {
	status := "-"
	if snap.Job != nil {
		status = string(snap.Job.Status)
	}
	s := fmt.Sprintf("[%s] status=%s polls=%d", snap.Phase, status, snap.Polls)
	if snap.ConsecutiveFailures > 0 {
		s += fmt.Sprintf(" failures=%d", snap.ConsecutiveFailures)
	}
	return s
}

func IsTTY(writer io.Writer) bool {
	if writer == nil {
		return false
	}

	if file, ok := writer.(*os.File); ok {
		stat, err := file.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

func ShouldShowProgress(forced bool) bool {
	if forced {
		return true
	}

	return IsTTY(os.Stderr)
}
