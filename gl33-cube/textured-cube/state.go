package main

import (
	"fmt"
	"log/slog"
)

// stage is where the program is in its lifecycle.
type stage int

const (
	stageUninitialized stage = iota
	stageWindowCreated
	stageContextReady
	stageResourcesLoaded
	stageRunning
	stageShuttingDown
	stageTerminated
)

var stageNames = [...]string{
	stageUninitialized:   "Uninitialized",
	stageWindowCreated:   "WindowCreated",
	stageContextReady:    "ContextReady",
	stageResourcesLoaded: "ResourcesLoaded",
	stageRunning:         "Running",
	stageShuttingDown:    "ShuttingDown",
	stageTerminated:      "Terminated",
}

func (s stage) String() string {
	if s >= 0 && int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// canAdvance reports whether next may follow s. Startup stops early by
// jumping straight to ShuttingDown.
func (s stage) canAdvance(next stage) bool {
	if next == s+1 && next <= stageTerminated {
		return true
	}
	return next == stageShuttingDown && s < stageShuttingDown
}

// lifecycle tracks the current stage and logs each transition.
type lifecycle struct {
	current stage
}

// advance moves to next. An out-of-order transition is a bug and panics.
func (l *lifecycle) advance(next stage) {
	if !l.current.canAdvance(next) {
		panic(fmt.Sprintf("invalid transition %v -> %v", l.current, next))
	}
	slog.Debug("stage", "from", l.current, "to", next)
	l.current = next
}

// abort records a fatal startup failure: the lifecycle jumps to ShuttingDown
// and the returned error carries msg as its log line.
func (l *lifecycle) abort(msg string, err error) error {
	l.advance(stageShuttingDown)
	return &startupError{msg: msg, err: err}
}
