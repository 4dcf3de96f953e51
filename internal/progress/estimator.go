package progress

import (
	"math"
	"sort"
	"sync"
	"time"
)

type Stage string

const (
	StageWalk Stage = "walk"
	StageScan Stage = "scan"
)

// Snapshot is the state of a scan at one instant. Rates are files per
// second.
type Snapshot struct {
	Stage     Stage         `json:"stage"`
	Total     int           `json:"total"`
	Done      int           `json:"done"`
	Remaining int           `json:"remaining"`
	Bytes     int64         `json:"bytes"`
	RateEMA   float64       `json:"rate_per_sec"`
	RateP50   float64       `json:"rate_p50"`
	ETA       time.Duration `json:"eta"`
	Warmup    bool          `json:"warmup"`
	StartedAt time.Time     `json:"started_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	Elapsed   time.Duration `json:"elapsed"`
}

type Config struct {
	Alpha          float64
	WindowSize     int
	WarmupSamples  int
	WarmupDuration time.Duration
	NotifyInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		Alpha:          0.2,
		WindowSize:     60,
		WarmupSamples:  20,
		WarmupDuration: time.Second,
		NotifyInterval: 250 * time.Millisecond,
	}
}

// Estimator tracks files scanned against a total that may still grow while
// the walk runs. Safe for concurrent use.
type Estimator struct {
	mu         sync.Mutex
	cfg        Config
	start      time.Time
	lastUpdate time.Time
	lastNotify time.Time
	stage      Stage
	total      int
	done       int
	bytes      int64
	ema        float64
	samples    []float64
	next       int
}

func NewEstimator(total int, cfg Config) *Estimator {
	base := DefaultConfig()
	if cfg.Alpha > 0 {
		base.Alpha = cfg.Alpha
	}
	if cfg.WindowSize > 0 {
		base.WindowSize = cfg.WindowSize
	}
	if cfg.WarmupSamples > 0 {
		base.WarmupSamples = cfg.WarmupSamples
	}
	if cfg.WarmupDuration > 0 {
		base.WarmupDuration = cfg.WarmupDuration
	}
	if cfg.NotifyInterval > 0 {
		base.NotifyInterval = cfg.NotifyInterval
	}
	now := time.Now()
	return &Estimator{
		cfg:        base,
		start:      now,
		lastUpdate: now,
		stage:      StageWalk,
		total:      total,
	}
}

// AddTotal grows the total as the walk discovers files.
func (e *Estimator) AddTotal(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.total += n
}

// Stage switches to stage and reports whether it changed.
func (e *Estimator) Stage(stage Stage) (Snapshot, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := time.Now()
	if stage == e.stage {
		return e.snapshotLocked(now), false
	}
	e.stage = stage
	e.lastNotify = now
	return e.snapshotLocked(now), true
}

// Advance records files scanned totalling size bytes. The second result
// says whether enough time has passed to publish the snapshot.
func (e *Estimator) Advance(files int, size int64) (Snapshot, bool) {
	if files <= 0 {
		return e.Snapshot(), false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	now := time.Now()
	if now.Before(e.lastUpdate) {
		now = e.lastUpdate
	}
	dt := now.Sub(e.lastUpdate).Seconds()
	if dt <= 0 {
		dt = 1e-6
	}
	e.done += files
	e.bytes += size
	instant := float64(files) / dt
	if math.IsNaN(instant) || math.IsInf(instant, 0) {
		instant = 0
	}
	if e.ema == 0 {
		e.ema = instant
	} else {
		e.ema = e.cfg.Alpha*instant + (1-e.cfg.Alpha)*e.ema
	}
	e.addSample(instant)
	e.lastUpdate = now

	snap := e.snapshotLocked(now)
	notify := now.Sub(e.lastNotify) >= e.cfg.NotifyInterval || snap.Remaining == 0
	if notify {
		e.lastNotify = now
	}
	return snap, notify
}

func (e *Estimator) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked(time.Now())
}

// Complete marks everything done and returns the final snapshot.
func (e *Estimator) Complete() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.done < e.total {
		e.done = e.total
	}
	now := time.Now()
	e.lastNotify = now
	return e.snapshotLocked(now)
}

func (e *Estimator) addSample(v float64) {
	if len(e.samples) < e.cfg.WindowSize {
		e.samples = append(e.samples, v)
		return
	}
	e.samples[e.next] = v
	e.next = (e.next + 1) % len(e.samples)
}

func (e *Estimator) median() float64 {
	if len(e.samples) == 0 {
		return 0
	}
	cp := append([]float64(nil), e.samples...)
	sort.Float64s(cp)
	mid := len(cp) / 2
	if len(cp)%2 == 1 {
		return cp[mid]
	}
	return (cp[mid-1] + cp[mid]) / 2
}

func (e *Estimator) snapshotLocked(now time.Time) Snapshot {
	remain := e.total - e.done
	if remain < 0 {
		remain = 0
	}
	elapsed := now.Sub(e.start)
	warm := e.done >= e.cfg.WarmupSamples && elapsed >= e.cfg.WarmupDuration
	p50 := e.median()
	if p50 <= 0 {
		p50 = e.ema
	}
	var eta time.Duration
	if warm && remain > 0 && p50 > 0 {
		eta = time.Duration(float64(remain) / p50 * float64(time.Second))
	}
	return Snapshot{
		Stage:     e.stage,
		Total:     e.total,
		Done:      e.done,
		Remaining: remain,
		Bytes:     e.bytes,
		RateEMA:   e.ema,
		RateP50:   p50,
		ETA:       eta,
		Warmup:    !warm,
		StartedAt: e.start,
		UpdatedAt: now,
		Elapsed:   elapsed,
	}
}
