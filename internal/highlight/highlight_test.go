package highlight

import (
	"testing"

	"github.com/kobzarvs/kiro/internal/config"
	"github.com/kobzarvs/kiro/internal/render"
)

func newHighlighter() *Highlighter {
	return New(config.DefaultLanguages(), NewPalette(config.Default().Theme))
}

func hasSpan(spans []render.Span, want render.Span) bool {
	for _, s := range spans {
		if s == want {
			return true
		}
	}
	return false
}

func TestDetect(t *testing.T) {
	h := newHighlighter()
	if got := h.Detect("main.go", nil); got != "go" {
		t.Fatalf("Detect main.go = %q, want go", got)
	}
	if got := h.Detect("script.py", []byte("print(1)\n")); got != "python" {
		t.Fatalf("Detect script.py = %q, want python", got)
	}
	if got := h.Detect("run.sh", nil); got != "bash" {
		t.Fatalf("Detect run.sh = %q, want bash", got)
	}
}

func TestTreeSitterSpansUseRuneColumns(t *testing.T) {
	h := newHighlighter()
	defer h.Close()
	lines := []string{"package main", "// note", `var s = "日本"`}
	if lang := h.Open("main.go", lines); lang != "go" {
		t.Fatalf("language = %q, want go", lang)
	}
	if h.ts == nil {
		t.Fatalf("go did not get a tree-sitter backend")
	}
	keyword := h.palette.Color("keyword")
	if !hasSpan(h.Spans(0), render.Span{Start: 0, End: 7, Color: keyword}) {
		t.Fatalf("row 0 spans = %#v, want keyword on package", h.Spans(0))
	}
	comment := h.palette.Color("comment")
	if !hasSpan(h.Spans(1), render.Span{Start: 0, End: 7, Color: comment}) {
		t.Fatalf("row 1 spans = %#v, want comment", h.Spans(1))
	}
	str := h.palette.Color("string")
	if !hasSpan(h.Spans(2), render.Span{Start: 8, End: 12, Color: str}) {
		t.Fatalf("row 2 spans = %#v, want string at runes 8-12", h.Spans(2))
	}
}

func TestUpdateFollowsEdits(t *testing.T) {
	h := newHighlighter()
	defer h.Close()
	h.Open("main.go", []string{"package main"})
	h.Update([]string{"package main", "func f() {}"})
	if !hasSpan(h.Spans(1), render.Span{Start: 0, End: 4, Color: h.palette.Color("keyword")}) {
		t.Fatalf("row 1 spans = %#v, want keyword on func", h.Spans(1))
	}
	h.Update(nil)
	if h.Spans(0) != nil {
		t.Fatalf("spans left after empty update")
	}
}

func TestChromaFallback(t *testing.T) {
	h := newHighlighter()
	defer h.Close()
	h.Open("script.py", []string{"def f():", "    return 1"})
	if h.ts != nil || h.lexer == nil {
		t.Fatalf("python should use a chroma lexer")
	}
	keyword := h.palette.Color("keyword")
	if !hasSpan(h.Spans(0), render.Span{Start: 0, End: 3, Color: keyword}) {
		t.Fatalf("row 0 spans = %#v, want keyword on def", h.Spans(0))
	}
	if !hasSpan(h.Spans(1), render.Span{Start: 4, End: 10, Color: keyword}) {
		t.Fatalf("row 1 spans = %#v, want keyword on return", h.Spans(1))
	}
}

func TestSpansOrderedByPriority(t *testing.T) {
	h := New(config.Languages{}, Palette{"variable": "v", "keyword": "k"})
	spans := h.spans([]Capture{{0, 3, "keyword"}, {0, 3, "variable"}})
	if spans[len(spans)-1].Color != "k" {
		t.Fatalf("last span = %#v, want keyword", spans[len(spans)-1])
	}
}

func TestNewPalette(t *testing.T) {
	p := NewPalette(config.Theme{
		SyntaxKeyword: "#FF8000",
		SyntaxString:  "red",
		SyntaxComment: "no-such-color",
	})
	if got := p.Color("keyword"); got != "\x1b[38;2;255;128;0m" {
		t.Fatalf("keyword = %q", got)
	}
	if p.Color("string") == "" {
		t.Fatalf("named color was dropped")
	}
	if got := p.Color("comment"); got != "" {
		t.Fatalf("invalid color = %q, want empty", got)
	}
}
