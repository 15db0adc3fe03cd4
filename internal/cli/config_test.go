package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/vascnet/netinput/pkg/pipeline"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), configFile)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
format = "json"
strict_joint_mapping = true
echo_dir = "out"

[cache]
backend = "redis"
redis_url = "redis://localhost:6379/2"
prefix = "ci:"
`)

	got, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig error: %v", err)
	}
	want := &Config{
		Format:             "json",
		StrictJointMapping: true,
		EchoDir:            "out",
		Cache: CacheConfig{
			Backend:  "redis",
			RedisURL: "redis://localhost:6379/2",
			Prefix:   "ci:",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("loadConfig mismatch (-want +got):\n%s", diff)
	}

	opts := got.pipelineOptions()
	if opts.Format != pipeline.FormatJSON || !opts.StrictJointMapping || opts.EchoDir != "out" {
		t.Errorf("pipelineOptions() = %+v", opts)
	}
}

func TestLoadConfigDefault(t *testing.T) {
	// The package directory has no netinput.toml.
	got, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig(\"\") error: %v", err)
	}
	if diff := cmp.Diff(&Config{}, got); diff != "" {
		t.Errorf("default config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"invalid backend", "[cache]\nbackend = \"memcached\"\n", "must be one of: file redis none"},
		{"redis without url", "[cache]\nbackend = \"redis\"\n", "RedisURL: field is required"},
		{"invalid format", "format = \"xml\"\n", "Config.Format"},
		{"unknown key", "strict = true\n", `unknown key "strict"`},
		{"syntax", "format = \n", "parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(writeConfig(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("loadConfig error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}

	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("explicit missing config should fail")
	}
}

func TestOptionsOverrideConfig(t *testing.T) {
	c := New(&strings.Builder{}, LogInfo)
	c.config = &Config{Format: "json", StrictNumbers: true, EchoDir: "echo"}

	tests := []struct {
		name string
		args []string
		want pipeline.Options
	}{
		{
			name: "config only",
			want: pipeline.Options{Format: pipeline.FormatJSON, StrictNumbers: true, EchoDir: "echo"},
		},
		{
			name: "flags override",
			args: []string{"--input-format", "legacy", "--strict-numbers=false", "--strict-joints", "--refresh"},
			want: pipeline.Options{Format: pipeline.FormatLegacy, StrictJointMapping: true, Refresh: true, EchoDir: "echo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f inputFlags
			cmd := &cobra.Command{Use: "test"}
			f.register(cmd)
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatal(err)
			}
			got, err := c.options(cmd, &f)
			if err != nil {
				t.Fatalf("options error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("options mismatch (-want +got):\n%s", diff)
			}
		})
	}

	var f inputFlags
	cmd := &cobra.Command{Use: "test"}
	f.register(cmd)
	if err := cmd.ParseFlags([]string{"--input-format", "xml"}); err != nil {
		t.Fatal(err)
	}
	if _, err := c.options(cmd, &f); err == nil {
		t.Error("invalid --input-format should fail")
	}
}
