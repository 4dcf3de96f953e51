package progress

import (
	"fmt"
	"io"
	"math"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

type Observer interface {
	Publish(Snapshot)
	Done(Snapshot)
}

type NoopObserver struct{}

func (NoopObserver) Publish(Snapshot) {}
func (NoopObserver) Done(Snapshot)    {}

type multiObserver []Observer

// NewMultiObserver fans snapshots out to every non-nil observer.
func NewMultiObserver(obs ...Observer) Observer {
	filtered := make(multiObserver, 0, len(obs))
	for _, ob := range obs {
		if ob != nil {
			filtered = append(filtered, ob)
		}
	}
	if len(filtered) == 0 {
		return NoopObserver{}
	}
	return filtered
}

func (m multiObserver) Publish(s Snapshot) {
	for _, ob := range m {
		ob.Publish(s)
	}
}

func (m multiObserver) Done(s Snapshot) {
	for _, ob := range m {
		ob.Done(s)
	}
}

// ShouldShowProgress decides whether the status line is drawn. Output must
// not be piped: the line is rewritten in place.
func ShouldShowProgress(force, no bool) bool {
	if no {
		return false
	}
	if force {
		return true
	}
	return isTTY(os.Stdout) && isTTY(os.Stderr)
}

type ttyObserver struct {
	w  io.Writer
	mu sync.Mutex
}

// NewTTYObserver redraws a single status line on w.
func NewTTYObserver(w io.Writer) Observer {
	if w == nil {
		w = os.Stderr
	}
	return &ttyObserver{w: w}
}

func (o *ttyObserver) Publish(s Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, _ = fmt.Fprintf(o.w, "\r\033[K%s", renderTTY(s))
}

func (o *ttyObserver) Done(Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, _ = fmt.Fprint(o.w, "\r\033[K")
}

type logObserver struct {
	log zerolog.Logger
}

// NewLogObserver reports snapshots as debug events and the final one at
// info level.
func NewLogObserver(log zerolog.Logger) Observer {
	return logObserver{log: log}
}

func (o logObserver) Publish(s Snapshot) {
	o.event(o.log.Debug(), s).Msg("progress")
}

func (o logObserver) Done(s Snapshot) {
	o.event(o.log.Info(), s).Msg("scan finished")
}

func (o logObserver) event(ev *zerolog.Event, s Snapshot) *zerolog.Event {
	return ev.
		Str("stage", string(s.Stage)).
		Int("total", s.Total).
		Int("done", s.Done).
		Int64("bytes", s.Bytes).
		Float64("rate", s.RateEMA).
		Dur("eta", s.ETA).
		Bool("warmup", s.Warmup).
		Dur("elapsed", s.Elapsed)
}

func renderTTY(s Snapshot) string {
	pct := percent(s.Done, s.Total)
	rate := "--/s"
	if !s.Warmup && s.RateEMA > 0 {
		rate = fmt.Sprintf("%.1f/s", s.RateEMA)
	}
	eta := "--:--:--"
	if !s.Warmup && s.ETA > 0 {
		eta = formatETA(s)
	}
	return fmt.Sprintf("[%s] %3d%% %d/%d files %s %s ETA %s", s.Stage, pct, s.Done, s.Total, formatBytes(s.Bytes), rate, eta)
}

func formatETA(s Snapshot) string {
	total := int(math.Round(s.ETA.Seconds()))
	if total < 0 {
		total = 0
	}
	hours := total / 3600
	if hours > 99 {
		hours = 99
	}
	return fmt.Sprintf("%02d:%02d:%02d", hours, (total%3600)/60, total%60)
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func percent(a, b int) int {
	if b <= 0 {
		if a <= 0 {
			return 0
		}
		return 100
	}
	if a <= 0 {
		return 0
	}
	p := a * 100 / b
	if p > 100 {
		return 100
	}
	return p
}

func isTTY(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
