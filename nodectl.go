package nodectl

import (
	"io/fs"
	"time"
)

// Defaults for dispatcher and runner configuration
const (
	// DefaultShell is the shell handed to su for the daemon invocation
	DefaultShell = "/bin/sh"

	// DefaultSuPath is the default path to the su binary
	DefaultSuPath = "su"

	// DefaultTimeout is the default per-invocation timeout (0 = no timeout)
	DefaultTimeout = 0 * time.Second

	// DefaultWatchDebounce is the default debounce time for base-directory watching
	DefaultWatchDebounce = 25 * time.Millisecond

	// PidFile is the name of the pidfile the daemon writes inside a node directory
	PidFile = "twistd.pid"
)

// File modes
const (
	// DirMode is the default mode for created directories
	DirMode = 0o755

	// FileMode is the default mode for created files
	FileMode = 0o644
)

// DefaultUmask is the default umask for created files
var DefaultUmask fs.FileMode = 0o022

// Command represents a node lifecycle command
type Command int

const (
	// CmdUnknown represents an unrecognized command
	CmdUnknown Command = iota
	// CmdStart starts a node
	CmdStart
	// CmdStop stops a node
	CmdStop
	// CmdRestart stops and starts a node
	CmdRestart
	// CmdForceReload is an alias that dispatches as CmdRestart
	CmdForceReload
	// CmdStatus is a status query, never passed to the daemon
	CmdStatus
)

// Command string constants
const (
	cmdUnknownStr     = "unknown"
	cmdStartStr       = "start"
	cmdStopStr        = "stop"
	cmdRestartStr     = "restart"
	cmdForceReloadStr = "force-reload"
	cmdStatusStr      = "status"
)

// String returns the string representation of a Command
func (c Command) String() string {
	switch c {
	case CmdStart:
		return cmdStartStr
	case CmdStop:
		return cmdStopStr
	case CmdRestart:
		return cmdRestartStr
	case CmdForceReload:
		return cmdForceReloadStr
	case CmdStatus:
		return cmdStatusStr
	default:
		return cmdUnknownStr
	}
}

// ParseCommand maps a command-line word to a Command.
// Unrecognized words map to CmdUnknown.
func ParseCommand(s string) Command {
	switch s {
	case cmdStartStr:
		return CmdStart
	case cmdStopStr:
		return CmdStop
	case cmdRestartStr:
		return CmdRestart
	case cmdForceReloadStr:
		return CmdForceReload
	case cmdStatusStr:
		return CmdStatus
	default:
		return CmdUnknown
	}
}

// Normalize resolves aliases to the command actually dispatched.
// force-reload dispatches as restart; everything else is itself.
func (c Command) Normalize() Command {
	if c == CmdForceReload {
		return CmdRestart
	}
	return c
}

// TakesExtraArgs reports whether configured extra daemon arguments are
// passed for this command. stop is invoked with the node path only.
func (c Command) TakesExtraArgs() bool {
	switch c.Normalize() {
	case CmdStart, CmdRestart:
		return true
	default:
		return false
	}
}
