package nodectl

import "testing"

func TestParseCommand(t *testing.T) {
	tests := []struct {
		in   string
		want Command
	}{
		{"start", CmdStart},
		{"stop", CmdStop},
		{"restart", CmdRestart},
		{"force-reload", CmdForceReload},
		{"status", CmdStatus},
		{"reload", CmdUnknown},
		{"", CmdUnknown},
		{"Start", CmdUnknown},
	}

	for _, tt := range tests {
		if got := ParseCommand(tt.in); got != tt.want {
			t.Errorf("ParseCommand(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCommandString(t *testing.T) {
	if got := CmdForceReload.String(); got != "force-reload" {
		t.Errorf("CmdForceReload.String() = %q, want %q", got, "force-reload")
	}
	if got := Command(99).String(); got != "unknown" {
		t.Errorf("Command(99).String() = %q, want %q", got, "unknown")
	}
}

func TestCommandNormalize(t *testing.T) {
	if got := CmdForceReload.Normalize(); got != CmdRestart {
		t.Errorf("force-reload normalized to %v, want restart", got)
	}

	for _, c := range []Command{CmdStart, CmdStop, CmdRestart, CmdStatus} {
		if got := c.Normalize(); got != c {
			t.Errorf("%v normalized to %v, want itself", c, got)
		}
	}
}

func TestCommandTakesExtraArgs(t *testing.T) {
	tests := []struct {
		cmd  Command
		want bool
	}{
		{CmdStart, true},
		{CmdRestart, true},
		{CmdForceReload, true},
		{CmdStop, false},
		{CmdStatus, false},
	}

	for _, tt := range tests {
		if got := tt.cmd.TakesExtraArgs(); got != tt.want {
			t.Errorf("%v.TakesExtraArgs() = %v, want %v", tt.cmd, got, tt.want)
		}
	}
}
