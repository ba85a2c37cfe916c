// Package nodectl dispatches lifecycle commands to a set of independently
// configured daemon instances ("nodes"). Each node is a subdirectory of a
// base directory; the directory's owning user is the identity the daemon
// runs under.
//
// The core type is the Dispatcher, which resolves a node set, invokes the
// external daemon binary per node through a Runner, and aggregates exit
// statuses across the batch:
//
//	cfg := &nodectl.Config{
//	    DaemonPath: "/usr/local/bin/tahoe",
//	    BaseDir:    "/var/lib/nodes",
//	    Autostart:  nodectl.Autostart{Mode: nodectl.AutostartAll},
//	}
//
//	d := nodectl.NewDispatcher(cfg)
//	batch, err := d.Dispatch(ctx, nodectl.CmdStart, nil)
//	if err != nil {
//	    log.Fatal(err) // pre-flight failure, no node was touched
//	}
//	os.Exit(batch.Status)
//
// # Dispatch semantics
//
// Nodes are processed strictly sequentially, so two daemon invocations
// never race on one node directory. A per-node failure (a root-owned
// directory, an unresolvable owner, a non-zero daemon exit) never stops
// the batch; the aggregate status is the status of the most recently
// dispatched node. Pre-flight failures (missing daemon binary, missing
// base directory, unknown command) abort before any node is processed.
//
// # Identity
//
// The default Runner shells out through su so the daemon runs as the node
// directory's owner. Nodes owned by root are refused outright.
package nodectl
