package parser

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/dgallion1/stackadvisor/internal/flowtree"
)

// HTMLParser handles flow documents exported to HTML, typically with the
// dialect text inside <pre> or <code> blocks. Text content of plain
// content elements is fed through the dialect line matcher as well.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*flowtree.Tree, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	state := newFlowState()

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "nav", "footer", "header", "title":
				return
			case "pre", "code", "p", "li", "td", "blockquote":
				feedTextLines(state, textContent(n))
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	body := findBody(doc)
	if body != nil {
		walk(body)
	} else {
		walk(doc)
	}

	return flowtree.New(state.root), nil
}

func feedTextLines(state *flowState, text string) {
	for _, line := range strings.Split(text, "\n") {
		state.processLine(line)
	}
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
