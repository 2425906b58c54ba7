// Package tui hosts the snake engine in Bubble Tea: it maps keys and mouse
// events to engine calls, schedules ticks, and renders snapshots.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg asks the model to advance the engine. Gen identifies the tick
// stream that produced it; messages from an older stream are dropped.
type TickMsg struct {
	Gen uint64
	At  time.Time
}

// Scheduler produces the command that delivers the next tick of stream gen.
type Scheduler interface {
	Next(gen uint64) tea.Cmd
}

// IntervalScheduler fires one tick per Interval using tea.Tick.
type IntervalScheduler struct {
	Interval time.Duration
}

// Next implements Scheduler.
func (s IntervalScheduler) Next(gen uint64) tea.Cmd {
	return tea.Tick(s.Interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, At: t}
	})
}
