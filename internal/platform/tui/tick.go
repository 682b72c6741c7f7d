// Package tui provides the Bubble Tea host for Flappy Ostrich.
// It handles the terminal UI loop, input mapping and the scoreboard screen.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// timer identifies one of the wall-clock schedules that run beside frames.
type timer int

const (
	timerCollectible timer = iota
	timerPowerUp
	timerDifficulty
)

// TimerMsg fires when a wall-clock schedule elapses.
type TimerMsg struct {
	Timer timer
}

// timerCmd arms a one-shot timer; the model re-arms it on delivery.
// A non-positive period disables the schedule.
func timerCmd(t timer, periodMs int) tea.Cmd {
	if periodMs <= 0 {
		return nil
	}
	return tea.Tick(time.Duration(periodMs)*time.Millisecond, func(time.Time) tea.Msg {
		return TimerMsg{Timer: t}
	})
}
