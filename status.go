package nodectl

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"syscall"
)

// Status describes a node's daemon process as judged from its pidfile.
type Status struct {
	// Running reports whether a process with the recorded pid exists
	Running bool

	// PID is the pid recorded in the pidfile (0 when absent)
	PID int
}

// String returns a human-readable status string.
func (s Status) String() string {
	if s.Running {
		return fmt.Sprintf("running (pid %d)", s.PID)
	}
	if s.PID != 0 {
		return fmt.Sprintf("not running (stale pid %d)", s.PID)
	}
	return "not running"
}

// NodeStatus probes a node directory's pidfile. The daemon writes its pid
// to twistd.pid inside the node directory on startup and removes it on
// clean shutdown; a pidfile naming a dead process is reported as a stale,
// non-running node rather than an error.
func NodeStatus(dir string) (Status, error) {
	pidPath := filepath.Join(dir, PidFile)

	data, err := os.ReadFile(pidPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Status{}, nil
		}
		return Status{}, &OpError{Cmd: CmdStatus, Node: dir, Err: err}
	}

	pid, err := strconv.Atoi(string(bytes.TrimSpace(data)))
	if err != nil || pid <= 0 {
		return Status{}, &OpError{Cmd: CmdStatus, Node: dir, Err: fmt.Errorf("malformed pidfile %s", pidPath)}
	}

	return Status{Running: pidAlive(pid), PID: pid}, nil
}

// pidAlive probes a pid with signal 0. EPERM means the process exists but
// belongs to another user, which still counts as alive.
func pidAlive(pid int) bool {
	err := syscall.Kill(pid, 0)
	if err == nil {
		return true
	}
	return errors.Is(err, syscall.EPERM)
}

// Statuses probes every node in the given set (or the full discovered set
// when names is empty) and returns per-node statuses keyed by name.
func (d *Dispatcher) Statuses(names []string) (map[string]Status, error) {
	if len(names) == 0 {
		discovered, err := DiscoverNodes(d.Config.BaseDir)
		if err != nil {
			return nil, err
		}
		names = discovered
	}

	results := make(map[string]Status, len(names))
	merr := &MultiError{}

	for _, name := range names {
		status, err := NodeStatus(filepath.Join(d.Config.BaseDir, name))
		if err != nil {
			merr.Add(err)
			continue
		}
		results[name] = status
	}

	return results, merr.Err()
}
