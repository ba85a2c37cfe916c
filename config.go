package nodectl

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"
)

// AutostartMode selects which nodes are acted on when none are named
// on the command line.
type AutostartMode int

const (
	// AutostartNone dispatches no nodes (the zero value, matching an
	// absent defaults file)
	AutostartNone AutostartMode = iota
	// AutostartAll dispatches every subdirectory of the base directory
	AutostartAll
	// AutostartList dispatches an explicit list of node names
	AutostartList
)

// Autostart is the configured autostart policy. In YAML it is either the
// scalar "all" or "none", or a sequence of node names.
type Autostart struct {
	// Mode is the policy mode
	Mode AutostartMode
	// Nodes is the explicit node list when Mode is AutostartList
	Nodes []string
}

// UnmarshalYAML decodes "all", "none", or a sequence of node names.
func (a *Autostart) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		switch strings.TrimSpace(value.Value) {
		case "all":
			a.Mode = AutostartAll
		case "none", "":
			a.Mode = AutostartNone
		default:
			// A single bare name is treated as a one-element list
			a.Mode = AutostartList
			a.Nodes = []string{value.Value}
		}
		return nil
	case yaml.SequenceNode:
		var nodes []string
		if err := value.Decode(&nodes); err != nil {
			return fmt.Errorf("decoding autostart list: %w", err)
		}
		a.Mode = AutostartList
		a.Nodes = nodes
		return nil
	default:
		return fmt.Errorf("autostart: expected scalar or sequence, got %v", value.Kind)
	}
}

// MarshalYAML encodes the policy in the same shape UnmarshalYAML accepts.
func (a Autostart) MarshalYAML() (interface{}, error) {
	switch a.Mode {
	case AutostartAll:
		return "all", nil
	case AutostartList:
		return a.Nodes, nil
	default:
		return "none", nil
	}
}

// String returns the policy in defaults-file form.
func (a Autostart) String() string {
	switch a.Mode {
	case AutostartAll:
		return "all"
	case AutostartList:
		return strings.Join(a.Nodes, " ")
	default:
		return "none"
	}
}

// Config carries everything the dispatcher needs: where the nodes live,
// which daemon binary controls them, and what to do when the command line
// names no nodes.
type Config struct {
	// DaemonPath is the daemon binary; a bare name is resolved on PATH
	DaemonPath string `yaml:"daemon"`

	// BaseDir is the directory whose subdirectories are nodes
	BaseDir string `yaml:"base_dir"`

	// DaemonArgs are extra arguments passed on start and restart
	DaemonArgs []string `yaml:"daemon_args,omitempty"`

	// Autostart is the policy applied when no nodes are named
	Autostart Autostart `yaml:"autostart"`
}

// LoadConfig reads a YAML defaults file. Fields absent from the file keep
// their zero values; callers layer flag overrides on top.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading defaults file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing defaults file %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes the config atomically.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := renameio.WriteFile(path, data, FileMode); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}

	return nil
}

// Validate checks the pre-flight conditions: the daemon binary must exist
// and be executable, and the base directory must exist. Both failures are
// fatal before any node is processed.
func (c *Config) Validate() error {
	if c.DaemonPath == "" {
		return fmt.Errorf("%w: no daemon configured", ErrDaemonNotFound)
	}

	if strings.ContainsRune(c.DaemonPath, os.PathSeparator) {
		fi, err := os.Stat(c.DaemonPath)
		if err != nil || fi.IsDir() || fi.Mode().Perm()&0o111 == 0 {
			return fmt.Errorf("%w: %s", ErrDaemonNotFound, c.DaemonPath)
		}
	} else if _, err := exec.LookPath(c.DaemonPath); err != nil {
		return fmt.Errorf("%w: %s", ErrDaemonNotFound, c.DaemonPath)
	}

	fi, err := os.Stat(c.BaseDir)
	if err != nil || !fi.IsDir() {
		return fmt.Errorf("%w: %s", ErrBaseDirMissing, c.BaseDir)
	}

	return nil
}
