package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type EditorOptions struct {
	TabWidth        int    `toml:"tab-width"`
	LineNumbers     string `toml:"line-numbers"`
	GitBranchSymbol string `toml:"git-branch-symbol"`
}

type ViOptions struct {
	Enabled   bool `toml:"enabled"`
	UndoLimit int  `toml:"undo-limit"`
}

type Theme struct {
	Foreground            string `toml:"foreground"`
	Background            string `toml:"background"`
	StatuslineForeground  string `toml:"statusline-foreground"`
	StatuslineBackground  string `toml:"statusline-background"`
	CommandlineForeground string `toml:"commandline-foreground"`
	CommandlineBackground string `toml:"commandline-background"`
	LineNumberForeground  string `toml:"line-number-foreground"`
	SyntaxKeyword         string `toml:"syntax-keyword"`
	SyntaxString          string `toml:"syntax-string"`
	SyntaxComment         string `toml:"syntax-comment"`
	SyntaxType            string `toml:"syntax-type"`
	SyntaxFunction        string `toml:"syntax-function"`
	SyntaxNumber          string `toml:"syntax-number"`
}

type Config struct {
	Editor EditorOptions `toml:"editor"`
	Vi     ViOptions     `toml:"vi"`
	Theme  Theme         `toml:"theme"`
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			TabWidth:        4,
			LineNumbers:     "absolute",
			GitBranchSymbol: "git:",
		},
		Vi: ViOptions{
			Enabled:   true,
			UndoLimit: 100,
		},
		Theme: Theme{
			Foreground:            "#B3B1AD",
			Background:            "#0A0E14",
			StatuslineForeground:  "#B3B1AD",
			StatuslineBackground:  "#0F1419",
			CommandlineForeground: "#B3B1AD",
			CommandlineBackground: "#0F1419",
			LineNumberForeground:  "#3E4B59",
			SyntaxKeyword:         "#FFA759",
			SyntaxString:          "#BAE67E",
			SyntaxComment:         "#5C6773",
			SyntaxType:            "#5CCFE6",
			SyntaxFunction:        "#FFD173",
			SyntaxNumber:          "#D4BFFF",
		},
	}
}

func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	// Decode over a struct pre-seeded with defaults so absent keys keep them.
	// The vi table needs explicit handling: "enabled = false" must stick even
	// though false is the zero value.
	var raw struct {
		Editor EditorOptions          `toml:"editor"`
		Vi     map[string]interface{} `toml:"vi"`
		Theme  Theme                  `toml:"theme"`
	}
	raw.Editor = cfg.Editor
	raw.Theme = cfg.Theme
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return cfg, err
	}
	cfg.Editor = raw.Editor
	cfg.Theme = raw.Theme
	if v, ok := raw.Vi["enabled"].(bool); ok {
		cfg.Vi.Enabled = v
	}
	if v, ok := raw.Vi["undo-limit"].(int64); ok && v > 0 {
		cfg.Vi.UndoLimit = int(v)
	}
	if cfg.Editor.TabWidth < 1 {
		cfg.Editor.TabWidth = 1
	}
	return cfg, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("VIED_CONFIG_HOME"); v != "" {
		return v, nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "vied"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "vied"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
