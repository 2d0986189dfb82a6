package testsupport

import (
	"context"
	"testing"

	"cropaway/internal/config"
	"cropaway/internal/project"
)

// MustOpenStore opens a project.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *project.Store {
	t.Helper()

	store, err := project.Open(cfg)
	if err != nil {
		t.Fatalf("project.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewClip creates a clip for tests using the provided store.
func NewClip(t testing.TB, store *project.Store, name string, duration float64) *project.Clip {
	t.Helper()

	clip, err := store.NewClip(context.Background(), name, "", duration)
	if err != nil {
		t.Fatalf("store.NewClip: %v", err)
	}
	return clip
}
