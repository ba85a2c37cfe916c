package nodectl

import (
	"os/user"
	"reflect"
	"testing"
)

func TestBuildCommandLine(t *testing.T) {
	tests := []struct {
		name  string
		cmd   Command
		extra []string
		dir   string
		want  string
	}{
		{
			name: "start with extra args",
			cmd:  CmdStart,
			extra: []string{
				"--syslog",
			},
			dir:  "/var/lib/nodes/introducer",
			want: "/usr/bin/tahoe start --syslog /var/lib/nodes/introducer",
		},
		{
			name:  "stop drops extra args",
			cmd:   CmdStop,
			extra: []string{"--syslog"},
			dir:   "/var/lib/nodes/introducer",
			want:  "/usr/bin/tahoe stop /var/lib/nodes/introducer",
		},
		{
			name:  "restart with extra args",
			cmd:   CmdRestart,
			extra: []string{"--syslog", "--quiet"},
			dir:   "/var/lib/nodes/s1",
			want:  "/usr/bin/tahoe restart --syslog --quiet /var/lib/nodes/s1",
		},
		{
			name: "force-reload dispatches as restart",
			cmd:  CmdForceReload,
			dir:  "/var/lib/nodes/s1",
			want: "/usr/bin/tahoe restart /var/lib/nodes/s1",
		},
		{
			name: "paths with spaces are quoted",
			cmd:  CmdStop,
			dir:  "/var/lib/my nodes/s1",
			want: "/usr/bin/tahoe stop '/var/lib/my nodes/s1'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildCommandLine("/usr/bin/tahoe", tt.cmd, tt.extra, tt.dir)
			if got != tt.want {
				t.Errorf("buildCommandLine = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExecRunnerBuildArgv(t *testing.T) {
	r := NewExecRunner("/usr/bin/tahoe",
		WithSuPath("/bin/su"),
		WithShell("/bin/bash"),
	)

	node := Node{
		Name:  "introducer",
		Dir:   "/var/lib/nodes/introducer",
		UID:   1000,
		Owner: &user.User{Uid: "1000", Username: "alice"},
	}

	got := r.buildArgv(node, CmdStart, []string{"--syslog"})
	want := []string{
		"/bin/su",
		"-s", "/bin/bash",
		"-c", "/usr/bin/tahoe start --syslog /var/lib/nodes/introducer",
		"alice",
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("buildArgv = %v, want %v", got, want)
	}
}

func TestShellQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"/var/lib/nodes", "/var/lib/nodes"},
		{"", "''"},
		{"has space", "'has space'"},
		{"it's", `'it'\''s'`},
		{"a$b", "'a$b'"},
	}

	for _, tt := range tests {
		if got := shellQuote(tt.in); got != tt.want {
			t.Errorf("shellQuote(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
