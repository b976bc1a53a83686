// Package highlight computes syntax colors for the lines of the buffer.
// Languages with a bundled tree-sitter grammar are parsed with it, the rest
// go through a chroma lexer.
package highlight

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/go-enry/go-enry/v2"

	"github.com/kobzarvs/kiro/internal/config"
	"github.com/kobzarvs/kiro/internal/logger"
	"github.com/kobzarvs/kiro/internal/render"
)

// Capture is a highlighted rune range [Start, End) of one line.
type Capture struct {
	Start, End int
	Kind       string
}

// aliases maps detected language names to grammar names.
var aliases = map[string]string{
	"shell":    "bash",
	"sh":       "bash",
	"golang":   "go",
	"yml":      "yaml",
	"md":       "markdown",
	"markdown": "markdown",
}

type Highlighter struct {
	langs    config.Languages
	palette  Palette
	path     string
	language string
	ts       *treeSitter
	lexer    chroma.Lexer
	rows     map[int][]render.Span
}

func New(langs config.Languages, palette Palette) *Highlighter {
	return &Highlighter{langs: langs, palette: palette}
}

// Detect names the language of path: languages.toml first, then go-enry on
// the file name and content.
func (h *Highlighter) Detect(path string, content []byte) string {
	if lang := h.langs.Match(path); lang != nil {
		return strings.ToLower(lang.Name)
	}
	name := strings.ToLower(enry.GetLanguage(filepath.Base(path), content))
	if alias, ok := aliases[name]; ok {
		return alias
	}
	return name
}

// Open selects the backend for path. lines is the initial content.
func (h *Highlighter) Open(path string, lines []string) string {
	h.Close()
	text := strings.Join(lines, "\n")
	h.path = path
	h.language = h.Detect(path, []byte(text))
	ts, err := newTreeSitter(h.language)
	if err != nil {
		logger.Warn("tree-sitter query failed", "language", h.language, "err", err)
	}
	if ts != nil {
		h.ts = ts
	} else {
		h.lexer = pickLexer(h.language, path, text)
	}
	logger.Debug("highlighter", "path", path, "language", h.language, "tree-sitter", h.ts != nil)
	h.Update(lines)
	return h.language
}

func (h *Highlighter) Language() string {
	return h.language
}

// Update recomputes the spans of every line.
func (h *Highlighter) Update(lines []string) {
	h.rows = nil
	if len(lines) == 0 {
		return
	}
	text := strings.Join(lines, "\n")
	var (
		captures map[int][]Capture
		err      error
	)
	switch {
	case h.ts != nil:
		captures, err = h.ts.highlight(lines, []byte(text))
	case h.lexer != nil:
		captures, err = chromaCaptures(h.lexer, text)
	default:
		return
	}
	if err != nil {
		logger.Warn("highlight failed", "path", h.path, "err", err)
		return
	}
	h.rows = make(map[int][]render.Span, len(captures))
	for row, caps := range captures {
		h.rows[row] = h.spans(caps)
	}
}

// spans orders captures so the most specific kind is applied last.
func (h *Highlighter) spans(caps []Capture) []render.Span {
	sort.SliceStable(caps, func(i, j int) bool {
		return priority(caps[i].Kind) < priority(caps[j].Kind)
	})
	out := make([]render.Span, 0, len(caps))
	for _, c := range caps {
		out = append(out, render.Span{Start: c.Start, End: c.End, Color: h.palette.Color(c.Kind)})
	}
	return out
}

// Spans returns the colored runs of row.
func (h *Highlighter) Spans(row int) []render.Span {
	return h.rows[row]
}

func (h *Highlighter) Close() {
	if h.ts != nil {
		h.ts.close()
		h.ts = nil
	}
	h.lexer = nil
	h.rows = nil
}

func priority(kind string) int {
	switch kind {
	case "comment":
		return 7
	case "string":
		return 6
	case "keyword":
		return 5
	case "constant", "builtin":
		return 4
	case "parameter", "type", "function", "number":
		return 3
	case "field", "variable":
		return 2
	case "operator", "punctuation":
		return 1
	}
	return 0
}
