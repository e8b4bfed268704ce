package transport

import "errors"

var errAgentPanic = errors.New("agent panicked")
