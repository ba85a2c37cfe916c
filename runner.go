package nodectl

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Runner invokes the daemon for a single node under the node owner's
// identity and reports the invocation's exit status.
type Runner interface {
	Run(ctx context.Context, node Node, cmd Command, extraArgs []string) (int, error)
}

// ExecRunner runs the daemon through su so the process carries the node
// owner's uid, gid, and environment, the same way an init script would.
type ExecRunner struct {
	// DaemonPath is the daemon binary path or name
	DaemonPath string

	// SuPath is the path to the su binary
	SuPath string

	// Shell is the shell su executes the command line with
	Shell string

	// Timeout bounds a single invocation (0 = unbounded)
	Timeout time.Duration

	// Stdout and Stderr receive the daemon's output
	Stdout io.Writer
	Stderr io.Writer
}

// RunnerOption configures an ExecRunner
type RunnerOption func(*ExecRunner)

// WithSuPath sets the path to the su binary
func WithSuPath(path string) RunnerOption {
	return func(r *ExecRunner) {
		r.SuPath = path
	}
}

// WithShell sets the shell su executes the command line with
func WithShell(shell string) RunnerOption {
	return func(r *ExecRunner) {
		r.Shell = shell
	}
}

// WithRunTimeout bounds each daemon invocation
func WithRunTimeout(d time.Duration) RunnerOption {
	return func(r *ExecRunner) {
		r.Timeout = d
	}
}

// WithOutput redirects the daemon's stdout and stderr
func WithOutput(stdout, stderr io.Writer) RunnerOption {
	return func(r *ExecRunner) {
		r.Stdout = stdout
		r.Stderr = stderr
	}
}

// NewExecRunner creates an ExecRunner for the given daemon binary.
func NewExecRunner(daemonPath string, opts ...RunnerOption) *ExecRunner {
	r := &ExecRunner{
		DaemonPath: daemonPath,
		SuPath:     DefaultSuPath,
		Shell:      DefaultShell,
		Timeout:    DefaultTimeout,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run invokes the daemon as the node's owner and returns the exit status.
// A non-zero daemon exit is reported as (code, nil); errors are reserved
// for invocations that could not run at all.
func (r *ExecRunner) Run(ctx context.Context, node Node, cmd Command, extraArgs []string) (int, error) {
	argv := r.buildArgv(node, cmd, extraArgs)

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	c := exec.CommandContext(ctx, argv[0], argv[1:]...)
	c.Stdout = r.Stdout
	c.Stderr = r.Stderr

	if err := c.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode(), nil
		}
		return 0, &OpError{Cmd: cmd, Node: node.Name, Err: err}
	}

	return 0, nil
}

// buildArgv assembles the su argument vector for one invocation:
//
//	su -s <shell> -c "<daemon> <cmd> [extra...] <dir>" <user>
func (r *ExecRunner) buildArgv(node Node, cmd Command, extraArgs []string) []string {
	return []string{
		r.SuPath,
		"-s", r.Shell,
		"-c", buildCommandLine(r.DaemonPath, cmd, extraArgs, node.Dir),
		node.Owner.Username,
	}
}

// buildCommandLine renders the daemon command line handed to the shell.
// stop takes the node path only; start and restart carry the configured
// extra arguments between the command and the path.
func buildCommandLine(daemon string, cmd Command, extraArgs []string, dir string) string {
	cmd = cmd.Normalize()

	parts := make([]string, 0, len(extraArgs)+3)
	parts = append(parts, shellQuote(daemon), cmd.String())

	if cmd.TakesExtraArgs() {
		for _, arg := range extraArgs {
			parts = append(parts, shellQuote(arg))
		}
	}

	parts = append(parts, shellQuote(dir))
	return strings.Join(parts, " ")
}

// shellQuote escapes a string for safe use in shell command lines
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}

	if !needsShellQuoting(s) {
		return s
	}

	return "'" + strings.ReplaceAll(s, "'", "'\\''") + "'"
}

// needsShellQuoting checks if a string contains characters that require shell quoting
func needsShellQuoting(s string) bool {
	const specialChars = " \t\n'\"\\$`!*?[](){}<>|&;~"

	for _, r := range s {
		if strings.ContainsRune(specialChars, r) {
			return true
		}
	}
	return false
}
