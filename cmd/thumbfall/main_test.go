package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/thumbfall/internal/config"
	"github.com/verte-zerg/thumbfall/internal/feedback"
	"github.com/verte-zerg/thumbfall/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestResolveThemePersistsChoice(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	got, err := resolveTheme(ctx, st, "mono")
	if err != nil {
		t.Fatalf("failed to resolve theme: %v", err)
	}
	if got != "mono" {
		t.Fatalf("theme = %q, want mono", got)
	}

	// A later run without an explicit choice reads the saved one back.
	got, err = resolveTheme(ctx, st, "")
	if err != nil {
		t.Fatalf("failed to resolve theme: %v", err)
	}
	if got != "mono" {
		t.Fatalf("stored theme = %q, want mono", got)
	}
}

func TestResolveThemeEmptyWhenUnset(t *testing.T) {
	got, err := resolveTheme(context.Background(), openTestStore(t), "")
	if err != nil {
		t.Fatalf("failed to resolve theme: %v", err)
	}
	if got != "" {
		t.Fatalf("fresh store theme = %q, want empty", got)
	}
}

func TestOpenSoundPersistsEffectiveSettings(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	enabled := false
	volume := 0.3
	fileCfg := config.FileConfig{
		Audio: config.AudioFileConfig{Enabled: &enabled, Volume: &volume},
	}

	sink := openSound(ctx, st, fileCfg, false, zerolog.Nop())
	if _, ok := sink.(feedback.Noop); !ok {
		t.Fatal("disabled audio must use the silent sink")
	}

	saved, err := st.AudioSettings(ctx)
	if err != nil {
		t.Fatalf("failed to read audio settings: %v", err)
	}
	if saved.Enabled || saved.Volume != 0.3 {
		t.Fatalf("saved settings = %+v, want disabled at volume 0.3", saved)
	}
}

func TestOpenSoundMuteNotPersisted(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	enabled := false
	fileCfg := config.FileConfig{
		Audio: config.AudioFileConfig{Enabled: &enabled},
	}

	sink := openSound(ctx, st, fileCfg, true, zerolog.Nop())
	if _, ok := sink.(feedback.Noop); !ok {
		t.Fatal("muted run must use the silent sink")
	}

	saved, err := st.AudioSettings(ctx)
	if err != nil {
		t.Fatalf("failed to read audio settings: %v", err)
	}
	if saved.Volume != 0.7 {
		t.Fatalf("mute must not touch the stored volume, got %+v", saved)
	}
}
