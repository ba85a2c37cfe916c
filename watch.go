//go:build linux || darwin

package nodectl

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"vawter.tech/stopper"
)

// NodeEventOp describes what happened to a node directory.
type NodeEventOp int

const (
	// NodeAdded indicates a node directory appeared under the base directory
	NodeAdded NodeEventOp = iota
	// NodeRemoved indicates a node directory disappeared
	NodeRemoved
)

// String returns the string representation of a NodeEventOp
func (op NodeEventOp) String() string {
	if op == NodeRemoved {
		return "removed"
	}
	return "added"
}

// NodeEvent is delivered for each node directory change observed while
// watching the base directory.
type NodeEvent struct {
	// Op is the change kind
	Op NodeEventOp
	// Node is the node name
	Node string
	// Err is set for watch errors instead of Op/Node
	Err error
}

// WatchCleanupFunc stops a watch and waits for its goroutine to exit
type WatchCleanupFunc func() error

// WatchNodes watches the base directory for node directories appearing or
// disappearing. Events are debounced so a burst of filesystem activity
// produces a single rescan.
func WatchNodes(ctx context.Context, baseDir string, debounce time.Duration) (<-chan NodeEvent, WatchCleanupFunc, error) {
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}

	known, err := DiscoverNodes(baseDir)
	if err != nil {
		return nil, nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}

	if err := watcher.Add(baseDir); err != nil {
		_ = watcher.Close()
		return nil, nil, err
	}

	ch := make(chan NodeEvent, 10)

	sctx := stopper.WithContext(ctx)
	sctx.Defer(func() {
		_ = watcher.Close()
		close(ch)
	})

	cleanup := func() error {
		sctx.Stop(100 * time.Millisecond)
		return sctx.Wait()
	}

	var mu sync.Mutex
	var debouncer *time.Timer
	last := known

	send := func(ev NodeEvent) {
		if sctx.IsStopping() {
			return
		}
		select {
		case ch <- ev:
		case <-sctx.Stopping():
		}
	}

	rescan := func() {
		if sctx.IsStopping() {
			return
		}

		current, err := DiscoverNodes(baseDir)
		if err != nil {
			send(NodeEvent{Err: err})
			return
		}

		mu.Lock()
		added, removed := diffNodes(last, current)
		last = current
		mu.Unlock()

		for _, name := range added {
			send(NodeEvent{Op: NodeAdded, Node: name})
		}
		for _, name := range removed {
			send(NodeEvent{Op: NodeRemoved, Node: name})
		}
	}

	sctx.Go(func(sctx *stopper.Context) error {
		sctx.Defer(func() {
			mu.Lock()
			if debouncer != nil {
				debouncer.Stop()
			}
			mu.Unlock()
		})

		for !sctx.IsStopping() {
			select {
			case <-sctx.Stopping():
				return nil

			case _, ok := <-watcher.Events:
				if !ok {
					return nil
				}

				mu.Lock()
				if debouncer != nil {
					debouncer.Stop()
				}
				debouncer = time.AfterFunc(debounce, rescan)
				mu.Unlock()

			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				if err != nil {
					send(NodeEvent{Err: err})
				}
			}
		}
		return nil
	})

	return ch, cleanup, nil
}

// diffNodes reports the names present only in current (added) and only in
// previous (removed). Outputs are sorted.
func diffNodes(previous, current []string) (added, removed []string) {
	prev := make(map[string]struct{}, len(previous))
	for _, name := range previous {
		prev[name] = struct{}{}
	}

	cur := make(map[string]struct{}, len(current))
	for _, name := range current {
		cur[name] = struct{}{}
		if _, ok := prev[name]; !ok {
			added = append(added, name)
		}
	}

	for _, name := range previous {
		if _, ok := cur[name]; !ok {
			removed = append(removed, name)
		}
	}

	sort.Strings(added)
	sort.Strings(removed)
	return added, removed
}
