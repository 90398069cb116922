// Package tracker orchestrates one foreground-activity tracking session:
// a periodic sampling loop feeding the window probe through classification,
// extraction and segmentation, with live snapshots pushed to a subscriber.
package tracker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/worklens/worklens/internal/activity"
	"github.com/worklens/worklens/internal/probe"
)

// ErrNilSubscriber is returned by Start when no update callback is supplied.
// This is the only caller error that surfaces hard; everything else degrades.
var ErrNilSubscriber = errors.New("tracker: nil update subscriber")

// DefaultInterval is the sampling period. Three seconds balances timeline
// granularity against probe subprocess cost.
const DefaultInterval = 3 * time.Second

// Update is the live snapshot pushed to the subscriber after every sample.
// Screenshot is a base64 JPEG (see the screen package contract) and is empty
// unless the sample was relevant and capture is enabled.
type Update struct {
	App            string    `json:"app"`
	Title          string    `json:"title"`
	File           string    `json:"file,omitempty"`
	Relevant       bool      `json:"relevant"`
	StartedAt      time.Time `json:"started_at"`
	ElapsedSeconds int       `json:"elapsed_seconds"`
	ObservedAt     time.Time `json:"observed_at"`
	Screenshot     string    `json:"screenshot,omitempty"`
}

// UpdateFunc receives live snapshots. It is fire-and-forget notification:
// it runs on the sampling goroutine and must not block.
type UpdateFunc func(Update)

// Result is everything a session produces. Downstream consumers (report
// rendering, AI analysis) own its storage; the tracker keeps nothing.
type Result struct {
	Activities []activity.Entry      `json:"activities"`
	Summary    []activity.AppSummary `json:"summary"`
	Notes      []Note                `json:"notes"`
}

// Status is a read-only view of the session state.
type Status struct {
	Tracking      bool   `json:"tracking"`
	Role          string `json:"role"`
	ActivityCount int    `json:"activity_count"`
	RelevantCount int    `json:"relevant_count"`
}

// Capturer is the screenshot dependency; satisfied by *screen.Capturer.
type Capturer interface {
	Capture() (string, bool)
}

// Tracker runs a single session at a time. One instance owns all of its
// state; run multiple independent instances for multiple sessions.
type Tracker struct {
	prober      probe.Prober
	classifier  *activity.Classifier
	capturer    Capturer
	screenshots bool
	interval    time.Duration
	policy      activity.MatchPolicy
	fallback    probe.Window
	now         func() time.Time
	log         zerolog.Logger

	mu        sync.Mutex
	tracking  bool
	sessionID string
	role      string
	onUpdate  UpdateFunc
	seg       *activity.Segmenter
	notes     noteStore
	cancel    context.CancelFunc
	done      chan struct{}
}

// Option configures a Tracker at construction.
type Option func(*Tracker)

// WithProber replaces the platform window probe (tests use probe.Fake).
func WithProber(p probe.Prober) Option { return func(t *Tracker) { t.prober = p } }

// WithClassifier replaces the default relevance classifier.
func WithClassifier(c *activity.Classifier) Option { return func(t *Tracker) { t.classifier = c } }

// WithCapturer enables screenshot capture using the given capturer.
func WithCapturer(c Capturer) Option {
	return func(t *Tracker) {
		t.capturer = c
		t.screenshots = c != nil
	}
}

// WithInterval overrides the sampling period.
func WithInterval(d time.Duration) Option {
	return func(t *Tracker) {
		if d > 0 {
			t.interval = d
		}
	}
}

// WithMatchPolicy sets the segment-equality policy.
func WithMatchPolicy(p activity.MatchPolicy) Option { return func(t *Tracker) { t.policy = p } }

// WithFallback sets the synthetic sample used when the probe yields nothing.
// Hosts that know their own window is focused can report themselves here.
func WithFallback(w probe.Window) Option { return func(t *Tracker) { t.fallback = w } }

// WithClock injects the time source for deterministic tests.
func WithClock(now func() time.Time) Option { return func(t *Tracker) { t.now = now } }

// WithLogger sets the structured logger for transient platform errors.
func WithLogger(logger zerolog.Logger) Option { return func(t *Tracker) { t.log = logger } }

// New constructs a Tracker. Without options it probes the real platform,
// uses the default denylist and interval, and captures no screenshots.
func New(opts ...Option) *Tracker {
	t := &Tracker{
		classifier: activity.NewClassifier(nil),
		interval:   DefaultInterval,
		fallback:   probe.Window{App: "Unknown", Title: ""},
		now:        time.Now,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.prober == nil {
		t.prober = probe.New(t.log)
	}
	return t
}

// Classifier exposes the relevance classifier so hosts can hot-reload the
// denylist mid-session.
func (t *Tracker) Classifier() *activity.Classifier { return t.classifier }

// Start resets all session state and begins the sampling loop: one
// immediate sample, then one per interval. A nil subscriber is a hard
// error; starting while already tracking is a no-op so racing UI handlers
// stay safe.
func (t *Tracker) Start(role string, onUpdate UpdateFunc) error {
	if onUpdate == nil {
		return ErrNilSubscriber
	}

	t.mu.Lock()
	if t.tracking {
		t.mu.Unlock()
		return nil
	}
	t.tracking = true
	t.sessionID = uuid.New().String()
	t.role = role
	t.onUpdate = onUpdate
	t.seg = activity.NewSegmenter(t.policy)
	t.notes.reset()

	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	t.done = make(chan struct{})
	t.mu.Unlock()

	t.log.Info().Str("session_id", t.sessionID).Str("role", role).Msg("tracking started")
	go t.loop(ctx)
	return nil
}

// loop is the single sampling goroutine. All tick work runs inline here, so
// a tick that outlives the interval cannot overlap the next one: the ticker
// simply drops the missed fires (skip-if-busy).
func (t *Tracker) loop(ctx context.Context) {
	defer close(t.done)

	t.sample(ctx)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.sample(ctx)
		}
	}
}

// sample runs one pipeline pass: probe → classify → extract → segment →
// capture → notify. A failed probe degrades to the fallback sample; no
// single tick's failure ends the loop.
func (t *Tracker) sample(ctx context.Context) {
	win, ok := t.prober.Probe(ctx)
	if !ok {
		t.log.Debug().Msg("window probe yielded no result; using fallback sample")
		win = t.fallback
	}

	now := t.now()
	relevant := t.classifier.Relevant(win.App, win.Title)
	file, _ := activity.ExtractFile(win.App, win.Title)

	t.mu.Lock()
	if !t.tracking {
		// Stop raced this tick; state is already final.
		t.mu.Unlock()
		return
	}
	t.seg.Observe(activity.Sample{App: win.App, Title: win.Title, ObservedAt: now}, relevant)
	open := t.seg.Open()
	onUpdate := t.onUpdate
	t.mu.Unlock()

	var shot string
	if relevant && t.screenshots && t.capturer != nil {
		shot, _ = t.capturer.Capture()
	}

	if onUpdate != nil && open != nil {
		onUpdate(Update{
			App:            open.App,
			Title:          open.Title,
			File:           file,
			Relevant:       open.Relevant,
			StartedAt:      open.StartedAt,
			ElapsedSeconds: open.ElapsedSeconds(now),
			ObservedAt:     now,
			Screenshot:     shot,
		})
	}
}

// Stop cancels the sampling loop, waits for any in-flight tick to finish,
// finalizes the open segment and returns the session's three outputs.
// Stopping while not tracking returns an empty Result. State other than the
// tracking flag survives until the next Start.
func (t *Tracker) Stop() Result {
	t.mu.Lock()
	if !t.tracking {
		t.mu.Unlock()
		return emptyResult()
	}
	t.tracking = false
	t.onUpdate = nil
	cancel, done := t.cancel, t.done
	t.mu.Unlock()

	// No further ticks can mutate state once cancel returns and the loop
	// goroutine has exited.
	cancel()
	<-done

	t.mu.Lock()
	defer t.mu.Unlock()
	t.seg.Finalize(t.now())
	log := t.seg.Log()

	t.log.Info().
		Str("session_id", t.sessionID).
		Int("entries", len(log)).
		Msg("tracking stopped")

	return Result{
		Activities: activity.FilterRelevant(log),
		Summary:    activity.Aggregate(log),
		Notes:      t.notes.all(),
	}
}

func emptyResult() Result {
	return Result{
		Activities: []activity.Entry{},
		Summary:    []activity.AppSummary{},
		Notes:      []Note{},
	}
}

// Status reports the session state without mutating it.
func (t *Tracker) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()

	status := Status{Tracking: t.tracking, Role: t.role}
	if t.seg != nil {
		for _, e := range t.seg.Log() {
			status.ActivityCount++
			if e.Relevant {
				status.RelevantCount++
			}
		}
	}
	return status
}

// SessionID returns the id assigned at the last Start.
func (t *Tracker) SessionID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sessionID
}

// Activities returns a copy of the closed-entry log. The still-open segment
// is excluded; it has not become an entry yet.
func (t *Tracker) Activities() []activity.Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.seg == nil {
		return []activity.Entry{}
	}
	return t.seg.Log()
}

// AddNote appends a timestamped annotation.
func (t *Tracker) AddNote(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.notes.add(text, t.now())
}

// RemoveNote deletes the first note whose text equals or contains text.
func (t *Tracker) RemoveNote(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.notes.remove(text)
}

// RemoveLastNote pops the most recently added note.
func (t *Tracker) RemoveLastNote() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.notes.removeLast()
}

// Notes returns a copy of the notes in insertion order.
func (t *Tracker) Notes() []Note {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.notes.all()
}
