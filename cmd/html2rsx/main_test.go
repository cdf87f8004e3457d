package main

import (
	"runtime/debug"
	"testing"
)

func TestBuildSetting(t *testing.T) {
	info := &debug.BuildInfo{Settings: []debug.BuildSetting{
		{Key: "vcs", Value: "git"},
		{Key: "vcs.revision", Value: "0123456789abcdef"},
	}}

	if got := buildSetting(info, "vcs.revision"); got != "0123456789abcdef" {
		t.Errorf("Expected revision, got %q", got)
	}
	if got := buildSetting(info, "vcs.time"); got != "" {
		t.Errorf("Expected empty value for missing key, got %q", got)
	}
}
