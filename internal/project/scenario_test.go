package project_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"cropaway/internal/crop"
	"cropaway/internal/project"
	"cropaway/internal/testsupport"
)

func TestScenarioRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	clip := testsupport.NewClip(t, store, "scene", 30)
	clip.Mode = crop.ModeRectangle
	clip.KeyframingEnabled = true
	if err := store.UpdateClip(ctx, clip); err != nil {
		t.Fatalf("UpdateClip: %v", err)
	}
	track := testsupport.LinearTrack(t, 0, 12.5, 30)
	if err := store.SaveTrack(ctx, clip.ID, track); err != nil {
		t.Fatalf("SaveTrack: %v", err)
	}

	scenario, err := store.ExportScenario(ctx, clip.ID)
	if err != nil {
		t.Fatalf("ExportScenario: %v", err)
	}
	if len(scenario.Clips) != 1 {
		t.Fatalf("len(scenario.Clips) = %d, want 1", len(scenario.Clips))
	}
	if got := scenario.Clips[0]; !got.Keyframing || got.Mode != "rectangle" || len(got.Keyframes) != 3 {
		t.Fatalf("scenario clip = %+v", got)
	}

	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := project.WriteScenario(scenario, path); err != nil {
		t.Fatalf("WriteScenario: %v", err)
	}
	read, err := project.ReadScenario(path)
	if err != nil {
		t.Fatalf("ReadScenario: %v", err)
	}
	if diff := cmp.Diff(scenario, read); diff != "" {
		t.Fatalf("scenario changed across file round trip:\n%s", diff)
	}

	imported, err := store.ImportScenario(ctx, read)
	if err != nil {
		t.Fatalf("ImportScenario: %v", err)
	}
	if len(imported) != 1 {
		t.Fatalf("len(imported) = %d, want 1", len(imported))
	}
	if imported[0].ID == clip.ID {
		t.Fatal("import reused the source clip row")
	}
	if !imported[0].KeyframingEnabled || imported[0].Mode != crop.ModeRectangle {
		t.Fatalf("imported clip = %+v", imported[0])
	}

	reloaded, err := store.LoadTrack(ctx, imported[0].ID)
	if err != nil {
		t.Fatalf("LoadTrack: %v", err)
	}
	original := track.Keyframes()
	copied := reloaded.Keyframes()
	if len(copied) != len(original) {
		t.Fatalf("imported track length = %d, want %d", len(copied), len(original))
	}
	for i := range original {
		if copied[i].Timestamp != original[i].Timestamp || copied[i].Curve != original[i].Curve {
			t.Fatalf("keyframe %d = (%g, %s), want (%g, %s)",
				i, copied[i].Timestamp, copied[i].Curve, original[i].Timestamp, original[i].Curve)
		}
		if diff := cmp.Diff(original[i].State, copied[i].State); diff != "" {
			t.Fatalf("keyframe %d state changed across import:\n%s", i, diff)
		}
	}
}

func TestImportScenarioRejectsUnknownMode(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	scenario := &project.Scenario{
		Version: "1",
		Clips:   []project.ClipDoc{{Name: "bad", Mode: "triangle"}},
	}
	if _, err := store.ImportScenario(context.Background(), scenario); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestExportLock(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	lock := project.NewExportLock(cfg)
	if err := lock.Acquire(); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer func() {
		if err := lock.Release(); err != nil {
			t.Fatalf("Release: %v", err)
		}
	}()

	if lock.Path() == "" {
		t.Fatal("expected lock path")
	}
}
