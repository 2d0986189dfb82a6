package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"cropaway/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithClipID(ctx, 42)
	ctx = services.WithOperation(ctx, "export")
	ctx = services.WithRequestID(ctx, "req-123")

	if id, ok := services.ClipIDFromContext(ctx); !ok || id != 42 {
		t.Fatalf("unexpected clip id: %v %v", id, ok)
	}
	if op, ok := services.OperationFromContext(ctx); !ok || op != "export" {
		t.Fatalf("unexpected operation: %v %v", op, ok)
	}
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
}

func TestBlankOperationPreservesContext(t *testing.T) {
	ctx := services.WithOperation(context.Background(), "")
	if _, ok := services.OperationFromContext(ctx); ok {
		t.Fatal("expected no operation value")
	}
}

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("row missing")
	err := services.Wrap(services.ErrNotFound, "project", "load clip", "clip 9 does not exist", base)

	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("marker lost: %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("cause lost: %v", err)
	}
	for _, fragment := range []string{"project", "load clip", "clip 9 does not exist"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Fatalf("detail %q missing from %q", fragment, err)
		}
	}
}

func TestWrapNilMarkerFallsBackToTransient(t *testing.T) {
	err := services.Wrap(nil, "store", "save", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
}

func TestIsUserError(t *testing.T) {
	if !services.IsUserError(services.Wrap(services.ErrValidation, "cli", "parse", "", nil)) {
		t.Fatal("validation should be a user error")
	}
	if services.IsUserError(services.Wrap(services.ErrTransient, "store", "open", "", nil)) {
		t.Fatal("transient should not be a user error")
	}
}
