package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestGetVersion(t *testing.T) {
	if v := getVersion(); v == "" {
		t.Error("getVersion() returned empty string")
	}
}

func TestBuildSetting(t *testing.T) {
	if got := buildSetting("abc123", "vcs.revision"); got != "abc123" {
		t.Errorf("ldflags value: got %q, want abc123", got)
	}
	if got := buildSetting("", "no.such.setting"); got != "unknown" {
		t.Errorf("missing setting: got %q, want unknown", got)
	}
}

func TestNewVersionCmd(t *testing.T) {
	cmd := NewVersionCmd()
	if cmd.Use != "version" {
		t.Errorf("Use: got %q, want version", cmd.Use)
	}

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	got := out.String()
	if !strings.HasPrefix(got, "hotspot-map ") {
		t.Errorf("output should start with the program name, got %q", got)
	}
	for _, want := range []string{"Build time:", "Git commit:"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q: %q", want, got)
		}
	}
}
