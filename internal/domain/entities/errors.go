package entities

import "errors"

// ErrInvocation marks errors caused by how a command was invoked rather
// than by the artifacts it was pointed at
var ErrInvocation = errors.New("invalid invocation")
