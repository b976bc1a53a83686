package highlight

import (
	"context"
	"math"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/bash"
	"github.com/smacker/go-tree-sitter/golang"
	tree_sitter_markdown "github.com/smacker/go-tree-sitter/markdown/tree-sitter-markdown"
	"github.com/smacker/go-tree-sitter/toml"
	"github.com/smacker/go-tree-sitter/yaml"
)

type grammar struct {
	lang  *sitter.Language
	query string
}

var grammars = map[string]func() grammar{
	"go":       func() grammar { return grammar{golang.GetLanguage(), goHighlightQuery} },
	"bash":     func() grammar { return grammar{bash.GetLanguage(), bashHighlightQuery} },
	"toml":     func() grammar { return grammar{toml.GetLanguage(), tomlHighlightQuery} },
	"yaml":     func() grammar { return grammar{yaml.GetLanguage(), yamlHighlightQuery} },
	"markdown": func() grammar { return grammar{tree_sitter_markdown.GetLanguage(), markdownBlockHighlightQuery} },
}

// treeSitter parses the whole document on every update.
type treeSitter struct {
	parser *sitter.Parser
	query  *sitter.Query
	tree   *sitter.Tree
}

func newTreeSitter(name string) (*treeSitter, error) {
	mk, ok := grammars[name]
	if !ok {
		return nil, nil
	}
	g := mk()
	query, err := sitter.NewQuery([]byte(g.query), g.lang)
	if err != nil {
		return nil, err
	}
	p := sitter.NewParser()
	p.SetLanguage(g.lang)
	return &treeSitter{parser: p, query: query}, nil
}

func (t *treeSitter) highlight(lines []string, source []byte) (map[int][]Capture, error) {
	tree, err := t.parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, err
	}
	if t.tree != nil {
		t.tree.Close()
	}
	t.tree = tree
	return queryCaptures(t.query, tree, source, lines), nil
}

func (t *treeSitter) close() {
	if t.tree != nil {
		t.tree.Close()
		t.tree = nil
	}
	t.parser.Close()
	t.query.Close()
}

// queryCaptures runs query over the tree and returns the captures per row
// with rune columns.
func queryCaptures(query *sitter.Query, tree *sitter.Tree, source []byte, lines []string) map[int][]Capture {
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(query, tree.RootNode())

	out := make(map[int][]Capture)
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		match = cursor.FilterPredicates(match, source)
		if match == nil {
			continue
		}
		for _, capture := range match.Captures {
			kind := query.CaptureNameForId(capture.Index)
			start := capture.Node.StartPoint()
			end := capture.Node.EndPoint()
			startRow, endRow := int(start.Row), int(end.Row)
			for row := startRow; row <= endRow && row < len(lines); row++ {
				startCol := 0
				endCol := math.MaxInt32
				if row == startRow {
					startCol = int(start.Column)
				}
				if row == endRow {
					endCol = int(end.Column)
				}
				from, to := runeCol(lines[row], startCol), runeCol(lines[row], endCol)
				if to <= from {
					continue
				}
				out[row] = append(out[row], Capture{Start: from, End: to, Kind: kind})
			}
		}
	}
	return out
}

// runeCol converts a byte column of line to a rune column.
func runeCol(line string, byteCol int) int {
	if byteCol > len(line) {
		byteCol = len(line)
	}
	return utf8.RuneCountInString(line[:byteCol])
}
