package roboflow

import (
	"context"
	"errors"
	"testing"

	"github.com/lewtec/labelbridge/backend"
	"github.com/lewtec/labelbridge/domain"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	b, err := backend.Open(ctx, Name, backend.Options{Token: "tok"})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if b.Name() != Name {
		t.Errorf("Name() = %q, want %q", b.Name(), Name)
	}

	_, err = b.ListProjects(ctx)
	if !errors.Is(err, domain.ErrNotImplemented) {
		t.Errorf("expected ErrNotImplemented, got %v", err)
	}
}
