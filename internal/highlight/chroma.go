package highlight

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// pickLexer finds a chroma lexer by language name, then by file name, then
// by content. It returns nil rather than the plain text fallback.
func pickLexer(name, path, text string) chroma.Lexer {
	if name != "" {
		if l := lexers.Get(name); l != nil {
			return chroma.Coalesce(l)
		}
	}
	if path != "" {
		if l := lexers.Match(filepath.Base(path)); l != nil {
			return chroma.Coalesce(l)
		}
	}
	if l := lexers.Analyse(text); l != nil {
		return chroma.Coalesce(l)
	}
	return nil
}

func chromaCaptures(lexer chroma.Lexer, text string) (map[int][]Capture, error) {
	tokens, err := chroma.Tokenise(lexer, nil, text)
	if err != nil {
		return nil, err
	}
	out := make(map[int][]Capture)
	row, col := 0, 0
	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			break
		}
		kind := tokenKind(tok.Type)
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				row++
				col = 0
			}
			n := len([]rune(part))
			if kind != "" && n > 0 {
				out[row] = append(out[row], Capture{Start: col, End: col + n, Kind: kind})
			}
			col += n
		}
	}
	return out, nil
}

// tokenKind maps a chroma token type to a capture name, or "".
func tokenKind(t chroma.TokenType) string {
	switch {
	case t == chroma.KeywordType || t == chroma.NameClass:
		return "type"
	case t == chroma.KeywordConstant || t == chroma.NameConstant:
		return "constant"
	case t.InCategory(chroma.Keyword):
		return "keyword"
	case t == chroma.NameFunction:
		return "function"
	case t == chroma.NameBuiltin:
		return "builtin"
	case t == chroma.NameAttribute || t == chroma.NameTag:
		return "field"
	case t.InCategory(chroma.Comment):
		return "comment"
	case t.InSubCategory(chroma.LiteralString):
		return "string"
	case t.InSubCategory(chroma.LiteralNumber):
		return "number"
	case t.InCategory(chroma.Operator):
		return "operator"
	case t.InCategory(chroma.Punctuation):
		return "punctuation"
	}
	return ""
}
