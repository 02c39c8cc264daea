package theme

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"

	"streamhaven/internal/storage"
)

func newStore(t *testing.T) storage.Store {
	t.Helper()
	store, err := storage.OpenFs(afero.NewMemMapFs(), "/data")
	if err != nil {
		t.Fatalf("OpenFs() error = %v", err)
	}
	return store
}

func TestDefaultIsDark(t *testing.T) {
	svc, err := NewService(context.Background(), newStore(t))
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	if got := svc.Get(context.Background()); got != Dark {
		t.Fatalf("expected dark default, got %q", got)
	}
}

func TestSetPersistsAcrossReload(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	svc, err := NewService(ctx, store)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	if err := svc.Set(ctx, Light); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	reloaded, err := NewService(ctx, store)
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	if got := reloaded.Get(ctx); got != Light {
		t.Fatalf("expected light after reload, got %q", got)
	}
}

func TestSetRejectsUnknown(t *testing.T) {
	svc, err := NewService(context.Background(), newStore(t))
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	if err := svc.Set(context.Background(), "solarized"); !errors.Is(err, ErrUnknownTheme) {
		t.Fatalf("expected ErrUnknownTheme, got %v", err)
	}
}
