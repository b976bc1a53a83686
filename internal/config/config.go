package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Keymap maps key names ("ctrl+s", "up", "pgdn") to editor actions.
type Keymap map[string]string

type EditorOptions struct {
	StatusTimeout int  `toml:"status-timeout"`
	QuitTimes     int  `toml:"quit-times"`
	RestoreCursor bool `toml:"restore-cursor"`
	Highlight     bool `toml:"highlight"`
	Debug         bool `toml:"debug"`
}

// StatusDuration returns the status message lifetime.
func (o EditorOptions) StatusDuration() time.Duration {
	return time.Duration(o.StatusTimeout) * time.Second
}

type Theme struct {
	Theme             string `toml:"theme"`
	SearchMatch       string `toml:"search-match"`
	SyntaxKeyword     string `toml:"syntax-keyword"`
	SyntaxString      string `toml:"syntax-string"`
	SyntaxComment     string `toml:"syntax-comment"`
	SyntaxType        string `toml:"syntax-type"`
	SyntaxFunction    string `toml:"syntax-function"`
	SyntaxNumber      string `toml:"syntax-number"`
	SyntaxConstant    string `toml:"syntax-constant"`
	SyntaxOperator    string `toml:"syntax-operator"`
	SyntaxPunctuation string `toml:"syntax-punctuation"`
	SyntaxField       string `toml:"syntax-field"`
	SyntaxBuiltin     string `toml:"syntax-builtin"`
	SyntaxVariable    string `toml:"syntax-variable"`
	SyntaxParameter   string `toml:"syntax-parameter"`
}

type Config struct {
	Editor EditorOptions `toml:"editor"`
	Theme  Theme         `toml:"theme"`
	Keymap Keymap        `toml:"keymap"`
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			StatusTimeout: 5,
			QuitTimes:     3,
			RestoreCursor: true,
			Highlight:     true,
		},
		Theme: Theme{
			SearchMatch:       "#59C2FF",
			SyntaxKeyword:     "#FFA759",
			SyntaxString:      "#BAE67E",
			SyntaxComment:     "#5C6773",
			SyntaxType:        "#5CCFE6",
			SyntaxFunction:    "#FFD173",
			SyntaxNumber:      "#D4BFFF",
			SyntaxConstant:    "#FFDD8E",
			SyntaxOperator:    "#F29668",
			SyntaxPunctuation: "",
			SyntaxField:       "#E6B673",
			SyntaxBuiltin:     "#73D0FF",
			SyntaxVariable:    "",
			SyntaxParameter:   "",
		},
		Keymap: Keymap{
			"left":      "move_left",
			"right":     "move_right",
			"up":        "move_up",
			"down":      "move_down",
			"home":      "line_start",
			"end":       "line_end",
			"pgup":      "page_up",
			"pgdn":      "page_down",
			"enter":     "newline",
			"tab":       "insert_tab",
			"backspace": "backspace",
			"ctrl+h":    "backspace",
			"del":       "delete_forward",
			"ctrl+s":    "save",
			"ctrl+q":    "quit",
			"ctrl+f":    "find",
			"ctrl+l":    "redraw",
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

	var userCfg Config
	md, err := toml.Decode(string(data), &userCfg)
	if err != nil {
		return cfg, err
	}

	if userCfg.Editor.StatusTimeout > 0 {
		cfg.Editor.StatusTimeout = userCfg.Editor.StatusTimeout
	}
	if md.IsDefined("editor", "quit-times") && userCfg.Editor.QuitTimes >= 0 {
		cfg.Editor.QuitTimes = userCfg.Editor.QuitTimes
	}
	if md.IsDefined("editor", "restore-cursor") {
		cfg.Editor.RestoreCursor = userCfg.Editor.RestoreCursor
	}
	if md.IsDefined("editor", "highlight") {
		cfg.Editor.Highlight = userCfg.Editor.Highlight
	}
	if userCfg.Editor.Debug {
		cfg.Editor.Debug = true
	}
	if userCfg.Theme.Theme != "" {
		cfg.Theme.Theme = userCfg.Theme.Theme
	}
	if cfg.Theme.Theme != "" {
		theme, err := LoadTheme(cfg.Theme.Theme)
		if err != nil {
			return cfg, err
		}
		mergeTheme(&cfg.Theme, theme)
	}
	mergeTheme(&cfg.Theme, userCfg.Theme)
	for k, v := range userCfg.Keymap {
		cfg.Keymap[k] = v
	}

	return cfg, nil
}

func mergeTheme(dst *Theme, src Theme) {
	set := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	set(&dst.SearchMatch, src.SearchMatch)
	set(&dst.SyntaxKeyword, src.SyntaxKeyword)
	set(&dst.SyntaxString, src.SyntaxString)
	set(&dst.SyntaxComment, src.SyntaxComment)
	set(&dst.SyntaxType, src.SyntaxType)
	set(&dst.SyntaxFunction, src.SyntaxFunction)
	set(&dst.SyntaxNumber, src.SyntaxNumber)
	set(&dst.SyntaxConstant, src.SyntaxConstant)
	set(&dst.SyntaxOperator, src.SyntaxOperator)
	set(&dst.SyntaxPunctuation, src.SyntaxPunctuation)
	set(&dst.SyntaxField, src.SyntaxField)
	set(&dst.SyntaxBuiltin, src.SyntaxBuiltin)
	set(&dst.SyntaxVariable, src.SyntaxVariable)
	set(&dst.SyntaxParameter, src.SyntaxParameter)
}

// Captures maps highlight capture names to theme colors.
func (t Theme) Captures() map[string]string {
	return map[string]string{
		"keyword":     t.SyntaxKeyword,
		"string":      t.SyntaxString,
		"comment":     t.SyntaxComment,
		"type":        t.SyntaxType,
		"function":    t.SyntaxFunction,
		"number":      t.SyntaxNumber,
		"constant":    t.SyntaxConstant,
		"operator":    t.SyntaxOperator,
		"punctuation": t.SyntaxPunctuation,
		"field":       t.SyntaxField,
		"builtin":     t.SyntaxBuiltin,
		"variable":    t.SyntaxVariable,
		"parameter":   t.SyntaxParameter,
		"match":       t.SearchMatch,
	}
}

func ThemePath(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "theme", name+".toml"), nil
}

func LoadTheme(name string) (Theme, error) {
	path, err := ThemePath(name)
	if err != nil {
		return Theme{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, err
	}
	var t Theme
	if _, err := toml.Decode(string(data), &t); err == nil {
		return t, nil
	}
	var wrap struct {
		Theme Theme `toml:"theme"`
	}
	if _, err := toml.Decode(string(data), &wrap); err != nil {
		return Theme{}, err
	}
	return wrap.Theme, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("KIRO_CONFIG_HOME"); v != "" {
		return filepath.Join(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "kiro"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "kiro"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// StateDir holds data written by the editor itself, such as the session
// database.
func StateDir() (string, error) {
	if v := os.Getenv("KIRO_STATE_HOME"); v != "" {
		return filepath.Join(v), nil
	}
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return filepath.Join(v, "kiro"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "state", "kiro"), nil
}
