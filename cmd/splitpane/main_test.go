package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/xonecas/splitpane/internal/config"
	"github.com/xonecas/splitpane/internal/split"
)

func testCmd(t *testing.T, flags *Flags, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "splitpane"}
	fs := cmd.Flags()
	fs.StringVar(&flags.Axis, "axis", "horizontal", "")
	fs.Float64Var(&flags.Ratio, "ratio", split.DefaultRatio, "")
	fs.StringVar(&flags.Extent, "extent", "", "")
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return cmd
}

func TestBuildLayoutConfigOverrides(t *testing.T) {
	var flags Flags
	cmd := testCmd(t, &flags, "--ratio", "25", "--extent", "50%")

	root, err := buildLayout(cmd, config.Default(), flags, nil)
	if err != nil {
		t.Fatalf("buildLayout: %v", err)
	}
	if root.Ratio != 25 || root.Extent != "50%" {
		t.Errorf("root = ratio %v extent %q", root.Ratio, root.Extent)
	}
	if root.Axis != split.Primary {
		t.Errorf("unchanged --axis should keep the config axis, got %v", root.Axis)
	}
}

func TestBuildLayoutBadAxis(t *testing.T) {
	var flags Flags
	cmd := testCmd(t, &flags, "--axis", "diagonal")
	if _, err := buildLayout(cmd, config.Default(), flags, nil); err == nil {
		t.Error("expected axis error")
	}
}

func TestBuildLayoutRejectsRatioOutOfRange(t *testing.T) {
	for _, r := range []string{"0", "-5", "101"} {
		var flags Flags
		cmd := testCmd(t, &flags, "--ratio", r)
		if _, err := buildLayout(cmd, config.Default(), flags, nil); err == nil {
			t.Errorf("--ratio %s: expected error", r)
		}
	}
}

func TestSessionLabel(t *testing.T) {
	if got := sessionLabel(nil); got != "(config layout)" {
		t.Errorf("no files = %q", got)
	}
	if got := sessionLabel([]string{"/tmp/a.go", "b/c.go"}); got != "a.go c.go" {
		t.Errorf("files = %q", got)
	}
}
