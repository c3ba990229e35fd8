package parser

import (
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/dgallion1/stackadvisor/internal/flowtree"
)

// MarkdownParser handles flow documents embedded in Markdown, the common
// case being dialect text inside fenced code blocks of a README-style doc.
// Prose outside the fences passes through the dialect line matcher too, so
// a document that mixes notes with bare dialect lines still parses.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*flowtree.Tree, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	state := newFlowState()

	var walk func(n ast.Node)
	walk = func(n ast.Node) {
		switch n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.Paragraph, *ast.TextBlock:
			feedBlockLines(state, n, src)
			return
		case *ast.Heading:
			// Headings are document structure, not dialect content.
			return
		}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			walk(c)
		}
	}
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		walk(n)
	}

	return flowtree.New(state.root), nil
}

// feedBlockLines runs each source line of a block node through the dialect
// state machine.
func feedBlockLines(state *flowState, n ast.Node, src []byte) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		for _, line := range strings.Split(string(seg.Value(src)), "\n") {
			state.processLine(line)
		}
	}
}
