// Command nodectl starts, stops, and restarts a set of independently
// configured daemon instances, each living in its own subdirectory of a
// base directory and running as that directory's owner.
package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	nodectl "github.com/axondata/go-nodectl"
)

var (
	cfgPath    string
	baseDir    string
	daemonPath string
	timeout    time.Duration
	verbose    bool
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
	Prefix:          "nodectl",
})

// exitStatus carries the aggregate batch status out to main
var exitStatus int

var rootCmd = &cobra.Command{
	Use:           "nodectl",
	Short:         "Dispatch lifecycle commands to daemon node directories",
	Long:          "nodectl enumerates node directories under a base path and invokes the\nconfigured daemon binary per node, as the node directory's owning user.",
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgPath, "config", "c", "/etc/nodectl.yml", "defaults file")
	pf.StringVarP(&baseDir, "base-dir", "b", "", "base directory containing node directories")
	pf.StringVarP(&daemonPath, "daemon", "d", "", "daemon binary path or name")
	pf.DurationVarP(&timeout, "timeout", "t", 0, "per-invocation timeout (0 = unbounded)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(
		lifecycleCmd(nodectl.CmdStart, "Start nodes"),
		lifecycleCmd(nodectl.CmdStop, "Stop nodes"),
		restartCmd(),
		statusCmd(),
		listCmd(),
		configCmd(),
	)
}

// loadConfig builds the effective Config: defaults file first, then flag
// overrides on top. A missing defaults file at the default location is
// fine; one named explicitly is not.
func loadConfig(cmd *cobra.Command) (*nodectl.Config, error) {
	cfg := &nodectl.Config{}

	if _, err := os.Stat(cfgPath); err == nil {
		loaded, err := nodectl.LoadConfig(cfgPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		logger.Debug("loaded defaults", "path", cfgPath, "autostart", cfg.Autostart.String())
	} else if cmd.Flags().Changed("config") {
		return nil, fmt.Errorf("defaults file %s: %w", cfgPath, err)
	}

	if baseDir != "" {
		cfg.BaseDir = baseDir
	}
	if daemonPath != "" {
		cfg.DaemonPath = daemonPath
	}

	return cfg, nil
}

func newDispatcher(cfg *nodectl.Config) *nodectl.Dispatcher {
	runner := nodectl.NewExecRunner(cfg.DaemonPath, nodectl.WithRunTimeout(timeout))
	return nodectl.NewDispatcher(cfg,
		nodectl.WithRunner(runner),
		nodectl.WithLogger(logger),
	)
}

// lifecycleCmd builds a start/stop subcommand dispatching c.
func lifecycleCmd(c nodectl.Command, short string) *cobra.Command {
	return &cobra.Command{
		Use:   c.String() + " [node...]",
		Short: short,
		RunE:  runLifecycle(c),
	}
}

// restartCmd is restart plus the historical force-reload alias.
func restartCmd() *cobra.Command {
	cmd := lifecycleCmd(nodectl.CmdRestart, "Restart nodes")
	cmd.Aliases = []string{nodectl.CmdForceReload.String()}
	return cmd
}

func runLifecycle(c nodectl.Command) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		batch, err := newDispatcher(cfg).Dispatch(cmd.Context(), c, args)
		if err != nil {
			return err
		}

		exitStatus = batch.Status
		return nil
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [node...]",
		Short: "Report per-node daemon liveness from pidfiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			statuses, err := newDispatcher(cfg).Statuses(args)
			if err != nil {
				return err
			}

			names := make([]string, 0, len(statuses))
			for name := range statuses {
				names = append(names, name)
			}
			sort.Strings(names)

			for _, name := range names {
				s := statuses[name]
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, s.String())
				if !s.Running {
					exitStatus = 3
				}
			}
			return nil
		},
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List discovered nodes and their owners",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			names, err := nodectl.DiscoverNodes(cfg.BaseDir)
			if err != nil {
				return err
			}

			for _, name := range names {
				node, err := nodectl.ResolveNode(cfg.BaseDir, name)
				if err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t(owner unknown: %v)\n", name, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, node.Owner.Username)
			}
			return nil
		},
	}
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the defaults file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a defaults file with the current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := &nodectl.Config{
				DaemonPath: daemonPath,
				BaseDir:    baseDir,
				Autostart:  nodectl.Autostart{Mode: nodectl.AutostartNone},
			}

			if err := cfg.Save(cfgPath); err != nil {
				return err
			}

			logger.Info("wrote defaults", "path", cfgPath)
			return nil
		},
	})

	return cmd
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	os.Exit(exitStatus)
}
