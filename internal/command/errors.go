package command

import "errors"

// ErrNotLive is returned when a command is attempted while the panel is
// running on the fallback dataset. Demo mode has no Core to talk to, so
// commands are suppressed entirely rather than silently dropped.
var ErrNotLive = errors.New("command: panel is not live")
