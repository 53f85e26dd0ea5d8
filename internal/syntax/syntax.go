// Package syntax provides tree-sitter based highlighting for Go buffers.
package syntax

import (
	"context"
	"math"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
)

// Span colors a half-open column range [StartCol, EndCol) on a line.
type Span struct {
	StartCol int
	EndCol   int
	Kind     string
}

// Highlighter keeps a parsed tree for a single buffer and answers span
// queries per visible line range. Parsing is synchronous; callers reparse
// on buffer changes.
type Highlighter struct {
	parser *sitter.Parser
	query  *sitter.Query
	tree   *sitter.Tree
	source []byte
}

// Supports reports whether path has a language this package can highlight.
func Supports(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".go"
}

func New() (*Highlighter, error) {
	lang := golang.GetLanguage()
	parser := sitter.NewParser()
	parser.SetLanguage(lang)
	query, err := sitter.NewQuery([]byte(goHighlightQuery), lang)
	if err != nil {
		return nil, err
	}
	return &Highlighter{parser: parser, query: query}, nil
}

func (h *Highlighter) Parse(text string) {
	tree, _ := h.parser.ParseCtx(context.Background(), nil, []byte(text))
	h.tree = tree
	h.source = []byte(text)
}

func (h *Highlighter) Highlights(startLine, endLine int) map[int][]Span {
	if h.tree == nil || startLine < 0 || endLine < startLine {
		return nil
	}
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.SetPointRange(
		sitter.Point{Row: uint32(startLine), Column: 0},
		sitter.Point{Row: uint32(endLine + 1), Column: 0},
	)
	cursor.Exec(h.query, h.tree.RootNode())

	out := make(map[int][]Span)
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		match = cursor.FilterPredicates(match, h.source)
		if match == nil {
			continue
		}
		for _, capture := range match.Captures {
			kind := h.query.CaptureNameForId(capture.Index)
			start := capture.Node.StartPoint()
			end := capture.Node.EndPoint()
			if int(end.Row) < startLine || int(start.Row) > endLine {
				continue
			}
			for row := int(start.Row); row <= int(end.Row); row++ {
				if row < startLine || row > endLine {
					continue
				}
				startCol := 0
				endCol := int(math.MaxInt32)
				if row == int(start.Row) {
					startCol = int(start.Column)
				}
				if row == int(end.Row) {
					endCol = int(end.Column)
				}
				out[row] = append(out[row], Span{StartCol: startCol, EndCol: endCol, Kind: kind})
			}
		}
	}
	return out
}

const goHighlightQuery = `
((comment) @comment)
((interpreted_string_literal) @string)
((raw_string_literal) @string)
((rune_literal) @string)
((escape_sequence) @string)
((int_literal) @number)
((float_literal) @number)
((imaginary_literal) @number)
[
  "break" "case" "chan" "const" "continue" "default" "defer" "else"
  "fallthrough" "for" "func" "go" "goto" "if" "import" "interface"
  "map" "package" "range" "return" "select" "struct" "switch"
  "type" "var"
] @keyword
((identifier) @type (#match? @type "^(bool|byte|rune|string|int|int8|int16|int32|int64|uint|uint8|uint16|uint32|uint64|uintptr|float32|float64|complex64|complex128|error|any|comparable)$"))
((type_spec name: (type_identifier) @type))
((type_identifier) @type)
((package_identifier) @type)
((function_declaration name: (identifier) @function))
((method_declaration name: (field_identifier) @function))
((call_expression function: (identifier) @function))
((call_expression function: (selector_expression field: (field_identifier) @function)))
`
