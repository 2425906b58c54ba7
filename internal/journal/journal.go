// Package journal records the inputs of a game so it can be replayed
// deterministically: a seeded engine fed the same directions at the same
// ticks ends in the same state.
package journal

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-snake/internal/snake"
)

// EndReason says why a run stopped.
type EndReason string

const (
	EndCollision EndReason = "collision"
	EndRestart   EndReason = "restart"
	EndQuit      EndReason = "quit"
	EndFault     EndReason = "fault"
)

// Event is one accepted direction change, applied before tick Tick runs.
type Event struct {
	Tick      uint64          `json:"tick"`
	Direction snake.Direction `json:"-"`
	Dir       string          `json:"dir"`
}

// Run is a complete recorded game.
type Run struct {
	ID            string
	Seed          int64
	GridSize      int
	InitialLength int
	Ticks         uint64
	Score         int
	Length        int
	Reason        EndReason
	StartedAt     time.Time
	EndedAt       time.Time
	Events        []Event
}

// Duration is the wall-clock length of the run.
func (r Run) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}

// Recorder collects events for the game in progress.
type Recorder struct {
	cfg     snake.Config
	now     func() time.Time
	run     Run
	started bool
}

// NewRecorder returns a recorder for engines built from cfg.
func NewRecorder(cfg snake.Config) *Recorder {
	return &Recorder{cfg: cfg, now: time.Now}
}

// Begin starts a new run for an engine seeded with seed.
func (r *Recorder) Begin(seed int64) {
	r.run = Run{
		ID:            uuid.NewString(),
		Seed:          seed,
		GridSize:      r.cfg.GridSize,
		InitialLength: r.cfg.InitialLength,
		StartedAt:     r.now(),
	}
	r.started = true
}

// Active reports whether a run is being recorded.
func (r *Recorder) Active() bool {
	return r.started
}

// Direction records a direction change that the engine accepted before the
// tick numbered tick (the state's Ticks counter at call time).
// Calls that did not change the pending velocity are not recorded.
func (r *Recorder) Direction(tick uint64, d snake.Direction) {
	if !r.started {
		return
	}
	r.run.Events = append(r.run.Events, Event{Tick: tick, Direction: d, Dir: d.String()})
}

// Finish closes the run with the final engine state.
func (r *Recorder) Finish(st snake.State, reason EndReason) (Run, bool) {
	if !r.started {
		return Run{}, false
	}
	r.started = false
	r.run.Ticks = st.Ticks
	r.run.Score = st.Score
	r.run.Length = st.Len()
	r.run.Reason = reason
	r.run.EndedAt = r.now()
	return r.run, true
}

// ErrMismatch is returned by Verify when a replay diverges from the recording.
var ErrMismatch = errors.New("journal: replay does not match recording")

// Replay rebuilds the run's engine and re-applies its events. It stops at the
// recorded tick count or at game over, whichever comes first.
func Replay(run Run) (snake.State, error) {
	cfg := snake.Config{GridSize: run.GridSize, InitialLength: run.InitialLength}
	e, err := snake.New(cfg, rand.New(rand.NewSource(run.Seed)))
	if err != nil {
		return snake.State{}, fmt.Errorf("journal: replay %s: %w", run.ID, err)
	}

	next := 0
	st := e.State()
	for st.Ticks < run.Ticks && !st.Over() {
		for next < len(run.Events) && run.Events[next].Tick <= st.Ticks {
			e.Turn(run.Events[next].Direction)
			next++
		}
		if st, err = e.Tick(); err != nil {
			return st, fmt.Errorf("journal: replay %s: %w", run.ID, err)
		}
	}

	// A collision leaves Ticks unchanged, so apply trailing events and take the fatal tick.
	if run.Reason == EndCollision && !st.Over() {
		for ; next < len(run.Events); next++ {
			e.Turn(run.Events[next].Direction)
		}
		if st, err = e.Tick(); err != nil {
			return st, fmt.Errorf("journal: replay %s: %w", run.ID, err)
		}
	}
	return st, nil
}

// Verify replays run and checks score, ticks and outcome against the recording.
func Verify(run Run) (snake.State, error) {
	st, err := Replay(run)
	if err != nil {
		return st, err
	}
	if st.Score != run.Score || st.Ticks != run.Ticks || st.Len() != run.Length {
		return st, fmt.Errorf("%w: score %d/%d ticks %d/%d length %d/%d", ErrMismatch,
			st.Score, run.Score, st.Ticks, run.Ticks, st.Len(), run.Length)
	}
	if run.Reason == EndCollision && !st.Over() {
		return st, fmt.Errorf("%w: recorded collision did not happen", ErrMismatch)
	}
	return st, nil
}

// DecodeEvents restores Direction after the Dir strings were loaded from storage.
func DecodeEvents(events []Event) error {
	for i := range events {
		d, ok := snake.ParseDirection(events[i].Dir)
		if !ok {
			return fmt.Errorf("journal: event %d: unknown direction %q", i, events[i].Dir)
		}
		events[i].Direction = d
	}
	return nil
}
