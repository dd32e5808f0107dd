// Package scanner drives the capture-to-result flow for one user session:
// submit an image, wait on the prediction collaborator, keep a bounded
// most-recent-first history of completed scans.
package scanner

import (
	"context"
	"errors"
	"sync"
	"time"

	"knowyourplant/internal/capture"
	"knowyourplant/internal/domain"
	"knowyourplant/internal/predict"
)

// Phase is the orchestrator's current position in the scan flow.
type Phase int

// Orchestrator phases.
const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Errors reported by Submit.
var (
	ErrNoImage      = errors.New("no image selected")
	ErrScanInFlight = errors.New("a scan is already in progress")
)

// historyLimit caps the session history; the oldest entry is evicted when an
// eleventh scan completes.
const historyLimit = 10

const submitTimeout = 30 * time.Second

// HistoryEntry pairs a completed result with the preview shown at capture
// time and the completion instant.
type HistoryEntry struct {
	Result      domain.ScanResult
	Preview     *capture.Preview
	CompletedAt time.Time
}

// TimeLabel renders the completion instant as the short local label shown in
// the history list.
func (e HistoryEntry) TimeLabel() string {
	return e.CompletedAt.Local().Format("15:04")
}

// Orchestrator is the scan state machine. One scan is logically active at a
// time; a second Submit while one is in flight is rejected rather than
// superseded.
type Orchestrator struct {
	mu        sync.Mutex
	phase     Phase
	predictor predict.Predictor
	timeout   time.Duration
	result    *domain.ScanResult
	err       error
	history   []HistoryEntry
}

// New creates an Orchestrator backed by the given predictor.
func New(p predict.Predictor) *Orchestrator {
	return &Orchestrator{predictor: p, timeout: submitTimeout}
}

// WithTimeout bounds the prediction wait and returns the Orchestrator.
func (o *Orchestrator) WithTimeout(d time.Duration) *Orchestrator {
	o.timeout = d
	return o
}

// Phase returns the current phase.
func (o *Orchestrator) Phase() Phase {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.phase
}

// Result returns the latest successful result, or nil.
func (o *Orchestrator) Result() *domain.ScanResult {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.result
}

// Err returns the failure of the last scan, or nil.
func (o *Orchestrator) Err() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.err
}

// History returns a copy of the session history, most recent first.
func (o *Orchestrator) History() []HistoryEntry {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]HistoryEntry, len(o.history))
	copy(out, o.history)
	return out
}

// Submit runs one identification for img. It fails fast with no state
// change when img is absent, and rejects a call while another scan is in
// flight. On success the result is prepended to the history, which is
// trimmed to the ten most recent entries.
func (o *Orchestrator) Submit(ctx context.Context, img *capture.Image) (*domain.ScanResult, error) {
	if img == nil || len(img.Data) == 0 {
		return nil, ErrNoImage
	}

	o.mu.Lock()
	if o.phase == PhaseSubmitting {
		o.mu.Unlock()
		return nil, ErrScanInFlight
	}
	o.phase = PhaseSubmitting
	o.result = nil
	o.err = nil
	o.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()
	res, err := o.predictor.Predict(ctx, img.Data, img.MIME)

	o.mu.Lock()
	defer o.mu.Unlock()
	if err != nil {
		o.phase = PhaseFailed
		o.err = err
		return nil, err
	}

	res.Normalize()
	o.phase = PhaseSucceeded
	o.result = res

	o.history = append([]HistoryEntry{{
		Result:      *res,
		Preview:     img.Preview(),
		CompletedAt: time.Now(),
	}}, o.history...)
	if len(o.history) > historyLimit {
		o.history = o.history[:historyLimit]
	}

	return res, nil
}

// Retry returns a Succeeded or Failed orchestrator to idle, keeping the
// history, so the same or a new image can be submitted again.
func (o *Orchestrator) Retry() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.phase == PhaseSucceeded || o.phase == PhaseFailed {
		o.phase = PhaseIdle
		o.err = nil
	}
}

// Clear resets the orchestrator to idle with no result. The history is
// kept; it belongs to the session, not to a single scan.
func (o *Orchestrator) Clear() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.phase == PhaseSubmitting {
		return
	}
	o.phase = PhaseIdle
	o.result = nil
	o.err = nil
}
