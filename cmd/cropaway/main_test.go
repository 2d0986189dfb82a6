package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[paths]
project_dir = %q
log_dir = %q

[keyframes]
collision_tolerance = 0.05
default_interpolation = "linear"
auto_keyframe = true

[export]
fps = 10
workers = 2
mask_width = 64
mask_height = 64

[logging]
format = "json"
level = "info"
`,
		filepath.Join(base, "project"),
		filepath.Join(base, "logs"),
	)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{baseDir: base, configPath: configPath}
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("output %q does not contain %q", haystack, needle)
	}
}

func TestConfigInit(t *testing.T) {
	env := setupCLITestEnv(t)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err := runCLI(t, env, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
}

func TestClipAndKeyframeCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "clip", "add", "/media/demo_reel.mp4", "--duration", "10")
	if err != nil {
		t.Fatalf("clip add: %v", err)
	}
	requireContains(t, out, "Added clip 1 (Demo Reel)")

	out, _, err = runCLI(t, env, "keyframe", "add", "1", "0", "--rect", "0,0,0.5,0.5")
	if err != nil {
		t.Fatalf("keyframe add: %v", err)
	}
	requireContains(t, out, "Keyframe recorded at 0s")

	if _, _, err := runCLI(t, env, "keyframe", "add", "1", "10", "--rect", "0.5,0.5,0.5,0.5", "--curve", "ease_in_out"); err != nil {
		t.Fatalf("keyframe add (second): %v", err)
	}

	out, _, err = runCLI(t, env, "keyframe", "list", "1")
	if err != nil {
		t.Fatalf("keyframe list: %v", err)
	}
	requireContains(t, out, "ease_in_out")
	requireContains(t, out, "0.500,0.500,0.500,0.500")

	out, _, err = runCLI(t, env, "clip", "list")
	if err != nil {
		t.Fatalf("clip list: %v", err)
	}
	requireContains(t, out, "Demo Reel")
	requireContains(t, out, "yes")

	out, _, err = runCLI(t, env, "sample", "1", "5")
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	requireContains(t, out, "0.250,0.250,0.500,0.500")
}

func TestExportWritesMasks(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, env, "clip", "add", "/media/pan.mp4", "--duration", "1"); err != nil {
		t.Fatalf("clip add: %v", err)
	}
	if _, _, err := runCLI(t, env, "keyframe", "add", "1", "0", "--rect", "0,0,0.5,0.5"); err != nil {
		t.Fatalf("keyframe add: %v", err)
	}

	maskDir := filepath.Join(t.TempDir(), "masks")
	out, _, err := runCLI(t, env, "export", "1", "--masks", maskDir)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	requireContains(t, out, "Exported 10 frames")

	entries, err := os.ReadDir(maskDir)
	if err != nil {
		t.Fatalf("read mask dir: %v", err)
	}
	if len(entries) != 10 {
		t.Fatalf("len(mask files) = %d, want 10", len(entries))
	}
}

func TestScenarioRoundTripCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, env, "clip", "add", "/media/scene.mp4", "--duration", "10"); err != nil {
		t.Fatalf("clip add: %v", err)
	}
	if _, _, err := runCLI(t, env, "keyframe", "add", "1", "2", "--rect", "0.1,0.1,0.5,0.5"); err != nil {
		t.Fatalf("keyframe add: %v", err)
	}

	scenarioPath := filepath.Join(t.TempDir(), "scenario.yaml")
	out, _, err := runCLI(t, env, "scenario", "export", "1", "--out", scenarioPath)
	if err != nil {
		t.Fatalf("scenario export: %v", err)
	}
	requireContains(t, out, "Wrote 1 clip(s)")

	out, _, err = runCLI(t, env, "scenario", "import", scenarioPath)
	if err != nil {
		t.Fatalf("scenario import: %v", err)
	}
	requireContains(t, out, "Imported clip 2")
}

func TestUnknownClipFails(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, env, "clip", "show", "99"); err == nil {
		t.Fatal("expected error for missing clip")
	}
}
