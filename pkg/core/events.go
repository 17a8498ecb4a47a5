package core

import "time"

// Event is the interface for all invocation events.
type Event interface {
	eventMarker()
}

// InvocationStarted is emitted before the middleware chain runs.
type InvocationStarted struct {
	WrapperID string
	Name      string
	Args      Args
	Timestamp time.Time
}

func (*InvocationStarted) eventMarker() {}

// InvocationCompleted is emitted when the unit returned without error.
type InvocationCompleted struct {
	WrapperID string
	Name      string
	Result    any
	Duration  time.Duration
	Timestamp time.Time
}

func (*InvocationCompleted) eventMarker() {}

// InvocationFailed is emitted when the unit or a middleware returned an error.
type InvocationFailed struct {
	WrapperID string
	Name      string
	Error     error
	Timestamp time.Time
}

func (*InvocationFailed) eventMarker() {}

// InvocationRejected is emitted when validation refused the arguments.
type InvocationRejected struct {
	WrapperID string
	Name      string
	Error     error
	Timestamp time.Time
}

func (*InvocationRejected) eventMarker() {}
