package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("VIED_CONFIG_HOME", dir)
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Editor.TabWidth != 4 {
		t.Fatalf("tab width = %d, want 4", cfg.Editor.TabWidth)
	}
	if !cfg.Vi.Enabled {
		t.Fatalf("vi enabled = false, want true")
	}
	if cfg.Vi.UndoLimit != 100 {
		t.Fatalf("undo limit = %d, want 100", cfg.Vi.UndoLimit)
	}
	if cfg.Theme.Background == "" {
		t.Fatalf("theme background empty")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("VIED_CONFIG_HOME", t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	writeConfig(t, "[editor]\ntab-width = 8\n")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Editor.TabWidth != 8 {
		t.Fatalf("tab width = %d, want 8", cfg.Editor.TabWidth)
	}
	if cfg.Editor.LineNumbers != "absolute" {
		t.Fatalf("line numbers = %q, want default", cfg.Editor.LineNumbers)
	}
	if !cfg.Vi.Enabled {
		t.Fatalf("vi enabled = false, want default true")
	}
}

func TestLoadViDisabled(t *testing.T) {
	writeConfig(t, "[vi]\nenabled = false\n")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Vi.Enabled {
		t.Fatalf("vi enabled = true, want false")
	}
	if cfg.Vi.UndoLimit != 100 {
		t.Fatalf("undo limit = %d, want default 100", cfg.Vi.UndoLimit)
	}
}

func TestLoadUndoLimit(t *testing.T) {
	writeConfig(t, "[vi]\nundo-limit = 25\n")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Vi.UndoLimit != 25 {
		t.Fatalf("undo limit = %d, want 25", cfg.Vi.UndoLimit)
	}

	writeConfig(t, "[vi]\nundo-limit = 0\n")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Vi.UndoLimit != 100 {
		t.Fatalf("undo limit = %d, want default for 0", cfg.Vi.UndoLimit)
	}
}

func TestLoadClampsTabWidth(t *testing.T) {
	writeConfig(t, "[editor]\ntab-width = 0\n")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Editor.TabWidth != 1 {
		t.Fatalf("tab width = %d, want clamped 1", cfg.Editor.TabWidth)
	}
}

func TestLoadTheme(t *testing.T) {
	writeConfig(t, "[theme]\nsyntax-keyword = \"#FF0000\"\n")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Theme.SyntaxKeyword != "#FF0000" {
		t.Fatalf("syntax keyword = %q, want #FF0000", cfg.Theme.SyntaxKeyword)
	}
	if cfg.Theme.SyntaxString != Default().Theme.SyntaxString {
		t.Fatalf("syntax string = %q, want default", cfg.Theme.SyntaxString)
	}
}

func TestConfigDirPrecedence(t *testing.T) {
	t.Setenv("VIED_CONFIG_HOME", "/custom/vied")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("config dir: %v", err)
	}
	if dir != "/custom/vied" {
		t.Fatalf("dir = %q, want /custom/vied", dir)
	}

	t.Setenv("VIED_CONFIG_HOME", "")
	dir, err = ConfigDir()
	if err != nil {
		t.Fatalf("config dir: %v", err)
	}
	if dir != filepath.Join("/xdg", "vied") {
		t.Fatalf("dir = %q, want /xdg/vied", dir)
	}
}
