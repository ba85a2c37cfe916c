package nodectl

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
)

// Result records the outcome of one node's dispatch.
type Result struct {
	// Node is the node name
	Node string
	// Status is the exit status recorded for the node
	Status int
	// Err is set when the node never reached the daemon (root-owned
	// directory, unresolvable owner, invocation failure)
	Err error
}

// BatchResult is the outcome of a whole dispatch.
type BatchResult struct {
	// Status is the aggregate exit status: the status of the most
	// recently dispatched node. A later success overwrites an earlier
	// failure; this mirrors the historical init-script behavior.
	Status int
	// Results holds one entry per dispatched node, in dispatch order
	Results []Result
}

// Failures returns the per-node errors as a MultiError, or nil.
func (b BatchResult) Failures() error {
	merr := &MultiError{}
	for _, r := range b.Results {
		merr.Add(r.Err)
	}
	return merr.Err()
}

// Dispatcher resolves a node set and applies a lifecycle command to each
// node in turn. Nodes are processed strictly sequentially so two daemon
// invocations never race on the same node directory.
type Dispatcher struct {
	// Config supplies the base directory, daemon arguments, and
	// autostart policy
	Config *Config

	// Runner performs the per-node daemon invocation
	Runner Runner

	// Logger receives per-node progress
	Logger *log.Logger

	// resolve maps a node name to a resolved Node; overridable in tests
	resolve func(baseDir, name string) (Node, error)
}

// DispatcherOption configures a Dispatcher
type DispatcherOption func(*Dispatcher)

// WithRunner sets the Runner used for daemon invocations
func WithRunner(r Runner) DispatcherOption {
	return func(d *Dispatcher) {
		d.Runner = r
	}
}

// WithLogger sets the progress logger
func WithLogger(l *log.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.Logger = l
	}
}

// withNodeResolver overrides owner resolution; used by tests
func withNodeResolver(fn func(baseDir, name string) (Node, error)) DispatcherOption {
	return func(d *Dispatcher) {
		d.resolve = fn
	}
}

// NewDispatcher creates a Dispatcher for the given configuration.
func NewDispatcher(cfg *Config, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		Config:  cfg,
		Logger:  log.Default(),
		resolve: ResolveNode,
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.Runner == nil {
		d.Runner = NewExecRunner(cfg.DaemonPath)
	}

	return d
}

// Targets resolves the node set for a dispatch: an explicit name list
// wins outright; otherwise the autostart policy decides.
func (d *Dispatcher) Targets(names []string) ([]string, error) {
	if len(names) > 0 {
		return names, nil
	}

	switch d.Config.Autostart.Mode {
	case AutostartAll:
		return DiscoverNodes(d.Config.BaseDir)
	case AutostartList:
		return d.Config.Autostart.Nodes, nil
	default:
		return nil, nil
	}
}

// Dispatch applies cmd to the named nodes, or to the autostart set when
// names is empty. Every node is processed even after a failure; the
// aggregate status is the last status recorded. A returned error means
// a pre-flight condition failed and no node was processed.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd Command, names []string) (BatchResult, error) {
	switch cmd.Normalize() {
	case CmdStart, CmdStop, CmdRestart:
	default:
		return BatchResult{}, fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}

	if err := d.Config.Validate(); err != nil {
		return BatchResult{}, err
	}

	targets, err := d.Targets(names)
	if err != nil {
		return BatchResult{}, err
	}
	if len(targets) == 0 {
		d.Logger.Warn("no nodes to act on", "command", cmd.String(), "autostart", d.Config.Autostart.String())
		return BatchResult{}, nil
	}

	cmd = cmd.Normalize()

	var batch BatchResult
	for _, name := range targets {
		batch.record(d.dispatchOne(ctx, cmd, name))
	}

	return batch, nil
}

// dispatchOne resolves and runs a single node.
func (d *Dispatcher) dispatchOne(ctx context.Context, cmd Command, name string) Result {
	node, err := d.resolve(d.Config.BaseDir, name)
	if err != nil {
		d.Logger.Error("cannot resolve node", "node", name, "err", err)
		return Result{Node: name, Status: 1, Err: &OpError{Cmd: cmd, Node: name, Err: err}}
	}

	if node.IsRootOwned() {
		d.Logger.Error("refusing root-owned node directory", "node", name, "dir", node.Dir)
		return Result{Node: name, Status: 1, Err: &OpError{Cmd: cmd, Node: name, Err: ErrRootOwned}}
	}

	d.Logger.Info(cmd.String(), "node", name, "user", node.Owner.Username)

	status, err := d.Runner.Run(ctx, node, cmd, d.Config.DaemonArgs)
	if err != nil {
		d.Logger.Error("daemon invocation failed", "node", name, "err", err)
		return Result{Node: name, Status: 1, Err: err}
	}
	if status != 0 {
		d.Logger.Warn("daemon exited non-zero", "node", name, "status", status)
	}

	return Result{Node: name, Status: status}
}

// record appends a per-node result and folds it into the aggregate.
func (b *BatchResult) record(r Result) {
	b.Results = append(b.Results, r)
	b.Status = r.Status
}
