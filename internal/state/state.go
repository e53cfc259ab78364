// internal/state/state.go
package state

import (
	"errors"
	"fmt"
	"log"

	"go-tower-sim/internal/event"
)

// Mode is the top-level game mode.
type Mode int

const (
	ModeNone Mode = iota // before Start
	Tutorial
	Cooldown
	Placement
	Upgrade
	Wave
	Pause
	GameOver
	Victory
)

var modeNames = map[Mode]string{
	ModeNone:  "None",
	Tutorial:  "Tutorial",
	Cooldown:  "Cooldown",
	Placement: "Placement",
	Upgrade:   "Upgrade",
	Wave:      "Wave",
	Pause:     "Pause",
	GameOver:  "GameOver",
	Victory:   "Victory",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Terminal modes accept no gameplay transitions; only Pause may overlay them.
func (m Mode) Terminal() bool {
	return m == GameOver || m == Victory
}

func (m Mode) valid() bool {
	return m > ModeNone && m <= Victory
}

var (
	ErrNotStarted     = errors.New("state machine not started")
	ErrAlreadyStarted = errors.New("state machine already started")
	ErrUnknownMode    = errors.New("unknown mode")
	ErrAlreadyPaused  = errors.New("already paused")
	ErrTerminal       = errors.New("game has ended")
)

// Change is the payload of event.ModeChanged.
type Change struct {
	From    Mode
	To      Mode
	Resumed bool // re-entry through ResumePreviousState
}

// Handler runs whenever its mode is entered, including on resume.
type Handler func(Change)

// StateMachine keeps the current mode and one level of history for
// pause/resume.
type StateMachine struct {
	current    Mode
	previous   Mode
	dispatcher *event.Dispatcher
	handlers   map[Mode][]Handler
}

// NewStateMachine создаёт новую машину состояний без начального состояния
func NewStateMachine(dispatcher *event.Dispatcher) *StateMachine {
	return &StateMachine{
		dispatcher: dispatcher,
		handlers:   make(map[Mode][]Handler),
	}
}

// OnEnter registers a handler for a mode.
func (sm *StateMachine) OnEnter(mode Mode, h Handler) {
	sm.handlers[mode] = append(sm.handlers[mode], h)
}

// Start performs the initial transition into Tutorial.
func (sm *StateMachine) Start() error {
	if sm.current != ModeNone {
		return ErrAlreadyStarted
	}
	sm.current = Tutorial
	sm.handleStateChange(Change{From: ModeNone, To: Tutorial})
	return nil
}

// Current returns ModeNone until Start has run.
func (sm *StateMachine) Current() Mode {
	return sm.current
}

// Previous is the mode ResumePreviousState returns to.
func (sm *StateMachine) Previous() Mode {
	return sm.previous
}

func (sm *StateMachine) Started() bool {
	return sm.current != ModeNone
}

// SwitchState moves to mode and runs its handlers.
func (sm *StateMachine) SwitchState(mode Mode) error {
	if !sm.Started() {
		return ErrNotStarted
	}
	if !mode.valid() {
		return fmt.Errorf("%w: %d", ErrUnknownMode, int(mode))
	}
	if mode == Pause && sm.current == Pause {
		return ErrAlreadyPaused
	}
	if mode != Pause && sm.ended() {
		return fmt.Errorf("%w: cannot switch to %s", ErrTerminal, mode)
	}
	from := sm.current
	sm.current = mode
	sm.handleStateChange(Change{From: from, To: mode})
	return nil
}

// SaveCurrentState snapshots the current mode as the resume target.
// While paused the snapshot is left alone so Pause can never become the
// resume target.
func (sm *StateMachine) SaveCurrentState() {
	if sm.current == Pause {
		return
	}
	sm.previous = sm.current
}

// ResumePreviousState re-enters the saved mode; its handlers fire again.
func (sm *StateMachine) ResumePreviousState() error {
	if !sm.Started() {
		return ErrNotStarted
	}
	from := sm.current
	sm.current = sm.previous
	sm.handleStateChange(Change{From: from, To: sm.current, Resumed: true})
	return nil
}

func (sm *StateMachine) ended() bool {
	return sm.current.Terminal() || (sm.current == Pause && sm.previous.Terminal())
}

func (sm *StateMachine) handleStateChange(ch Change) {
	if ch.To != Pause {
		sm.SaveCurrentState()
	}
	if ch.Resumed {
		log.Printf("GameState resumed: %s (from %s)", ch.To, ch.From)
	} else {
		log.Printf("GameState set to: %s (from %s)", ch.To, ch.From)
	}
	for _, h := range sm.handlers[ch.To] {
		h(ch)
	}
	if sm.dispatcher != nil {
		sm.dispatcher.Dispatch(event.Event{Type: event.ModeChanged, Data: ch})
	}
}
