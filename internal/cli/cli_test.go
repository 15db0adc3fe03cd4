package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gopkg.in/yaml.v3"

	"github.com/vascnet/netinput/pkg/buildinfo"
	"github.com/vascnet/netinput/pkg/errors"
	"github.com/vascnet/netinput/pkg/model/modeltest"
	"github.com/vascnet/netinput/pkg/pipeline"
)

// execute runs the root command with args and returns stdout and the log.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(&logs)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), logs.String(), err
}

func writeNetwork(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConvertToStdout(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	input := writeNetwork(t, "artery.in", modeltest.SimpleArteryLegacy)

	out, _, err := execute(t, "convert", input)
	if err != nil {
		t.Fatalf("convert error: %v", err)
	}
	got, err := pipeline.Parse([]byte(out), pipeline.FormatJSON, pipeline.Options{})
	if err != nil {
		t.Fatalf("converted output is not JSON: %v", err)
	}
	if diff := cmp.Diff(modeltest.SimpleArtery(), got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("converted model mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertToFile(t *testing.T) {
	input := writeNetwork(t, "artery.in", modeltest.SimpleArteryLegacy)
	output := filepath.Join(t.TempDir(), "artery.txt")
	out, _, err := execute(t, "convert", input, "--to", "legacy", "-o", output, "--no-cache")
	if err != nil {
		t.Fatalf("convert error: %v", err)
	}
	if !strings.Contains(out, "Converted") || !strings.Contains(out, output) {
		t.Errorf("convert output = %q", out)
	}
	written, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	back, err := pipeline.Parse(written, pipeline.FormatLegacy, pipeline.Options{})
	if err != nil {
		t.Fatalf("converted file does not parse: %v", err)
	}
	if diff := cmp.Diff(modeltest.SimpleArtery(), back, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("converted model mismatch (-want +got):\n%s", diff)
	}

	if _, _, err := execute(t, "convert", input, "--to", "xml"); err == nil {
		t.Error("unknown target format should fail")
	}
}

func TestCheckReports(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	input := writeNetwork(t, "bifurcation.in", modeltest.BifurcationLegacy)

	t.Run("text", func(t *testing.T) {
		out, _, err := execute(t, "check", input)
		if err != nil {
			t.Fatalf("check error: %v", err)
		}
		if !strings.Contains(out, "is valid") {
			t.Errorf("output %q missing verdict", out)
		}
		if got := strings.Count(out, "!"); got < 2 {
			t.Errorf("output should list 2 warnings:\n%s", out)
		}
	})

	t.Run("json", func(t *testing.T) {
		out, _, err := execute(t, "check", input, "--report", "json")
		if err != nil {
			t.Fatalf("check error: %v", err)
		}
		var rep checkReport
		if err := json.Unmarshal([]byte(out), &rep); err != nil {
			t.Fatalf("report is not JSON: %v\n%s", err, out)
		}
		if !rep.Valid || rep.Format != "legacy" || len(rep.Warnings) != 2 {
			t.Errorf("report = %+v", rep)
		}
		want := modeltest.Bifurcation().Counts()
		if rep.Counts == nil || *rep.Counts != want {
			t.Errorf("counts = %+v, want %+v", rep.Counts, want)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		out, _, err := execute(t, "check", input, "-r", "yaml")
		if err != nil {
			t.Fatalf("check error: %v", err)
		}
		var rep checkReport
		if err := yaml.Unmarshal([]byte(out), &rep); err != nil {
			t.Fatalf("report is not YAML: %v\n%s", err, out)
		}
		if !rep.Valid || rep.Source != input {
			t.Errorf("report = %+v", rep)
		}
	})

	t.Run("invalid report format", func(t *testing.T) {
		if _, _, err := execute(t, "check", input, "-r", "xml"); err == nil {
			t.Error("unknown report format should fail")
		}
	})
}

func TestCheckInvalid(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	input := writeNetwork(t, "bad.in", "NODE 0 1.0\n")

	out, _, err := execute(t, "check", input, "--report", "json")
	if err == nil {
		t.Fatal("check of an invalid network should fail")
	}
	var rep checkReport
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("report is not JSON: %v\n%s", err, out)
	}
	if rep.Valid {
		t.Error("report should be invalid")
	}
	if rep.Code != errors.ErrCodeInvalidStructure {
		t.Errorf("code = %q, want %q", rep.Code, errors.ErrCodeInvalidStructure)
	}
	if rep.Error == "" {
		t.Error("report should carry the error message")
	}

	out, _, err = execute(t, "check", input)
	if err == nil || !strings.Contains(out, "is invalid") {
		t.Errorf("text check = %q, %v", out, err)
	}
}

func TestCheckStrictJoints(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	input := writeNetwork(t, "bifurcation.in", modeltest.BifurcationLegacy)

	if _, _, err := execute(t, "check", input, "--strict-joints"); err == nil {
		t.Error("--strict-joints should turn joint mismatches into errors")
	}

	config := writeConfig(t, "strict_joint_mapping = true\n")
	if _, _, err := execute(t, "--config", config, "check", input); err == nil {
		t.Error("strict_joint_mapping in the config should apply")
	}
	if _, _, err := execute(t, "--config", config, "check", input, "--strict-joints=false"); err != nil {
		t.Errorf("flag should override config: %v", err)
	}
}

func TestEchoCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	input := writeNetwork(t, "bifurcation.in", modeltest.BifurcationLegacy)
	dir := filepath.Join(t.TempDir(), "echo")

	out, _, err := execute(t, "echo", input, "-d", dir)
	if err != nil {
		t.Fatalf("echo error: %v", err)
	}
	for _, name := range []string{pipeline.EchoTextFile, pipeline.EchoJSONFile} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			t.Errorf("echo file %s: %v", name, err)
		}
		if !strings.Contains(out, path) {
			t.Errorf("output %q missing %s", out, path)
		}
	}
}

func TestPlanCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	input := writeNetwork(t, "artery.in", modeltest.SimpleArteryLegacy)

	out, _, err := execute(t, "plan", input)
	if err != nil {
		t.Fatalf("plan error: %v", err)
	}
	if !json.Valid([]byte(out)) {
		t.Errorf("plan on stdout is not JSON:\n%s", out)
	}

	output := filepath.Join(t.TempDir(), "plan.json")
	echoDir := filepath.Join(t.TempDir(), "echo")
	out, _, err = execute(t, "plan", input, "-o", output, "--echo-dir", echoDir)
	if err != nil {
		t.Fatalf("plan error: %v", err)
	}
	if !strings.Contains(out, "Planned") || !strings.Contains(out, "cached") {
		t.Errorf("plan output = %q", out)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !json.Valid(data) {
		t.Error("plan file is not JSON")
	}
	if _, err := os.Stat(filepath.Join(echoDir, pipeline.EchoJSONFile)); err != nil {
		t.Errorf("plan --echo-dir should write echoes: %v", err)
	}
}

func TestGraphDOT(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	input := writeNetwork(t, "bifurcation.in", modeltest.BifurcationLegacy)

	out, _, err := execute(t, "graph", input, "--format", "dot")
	if err != nil {
		t.Fatalf("graph error: %v", err)
	}
	output := strings.TrimSuffix(input, ".in") + ".dot"
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "digraph G {") {
		t.Errorf("graph file starts with %q", strings.SplitN(string(data), "\n", 2)[0])
	}
	if !strings.Contains(out, output) {
		t.Errorf("output %q missing %s", out, output)
	}

	if _, _, err := execute(t, "graph", input, "--format", "pdf"); err == nil {
		t.Error("unknown graph format should fail")
	}
}

func TestCacheCommands(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)
	dir := filepath.Join(xdg, appName)

	out, _, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path error: %v", err)
	}
	if strings.TrimSpace(out) != dir {
		t.Errorf("cache path = %q, want %q", out, dir)
	}

	out, _, err = execute(t, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear error: %v", err)
	}
	if !strings.Contains(out, "empty") {
		t.Errorf("clear of missing cache = %q", out)
	}

	input := writeNetwork(t, "artery.in", modeltest.SimpleArteryLegacy)
	if _, _, err := execute(t, "plan", input); err != nil {
		t.Fatal(err)
	}
	out, _, err = execute(t, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear error: %v", err)
	}
	if !strings.Contains(out, "Removed 2 cached entries") {
		t.Errorf("cache clear = %q", out)
	}

	out, _, err = execute(t, "cache", "prune")
	if err != nil {
		t.Fatalf("cache prune error: %v", err)
	}
	if !strings.Contains(out, "Removed 0 cached entries") {
		t.Errorf("cache prune = %q", out)
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version error: %v", err)
	}
	if strings.TrimSpace(out) != buildinfo.String() {
		t.Errorf("version = %q, want %q", out, buildinfo.String())
	}
}

func TestCompletionCommand(t *testing.T) {
	out, _, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion error: %v", err)
	}
	if !strings.Contains(out, appName) {
		t.Error("bash completion should mention the command name")
	}
	if _, _, err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("unsupported shell should fail")
	}
}
