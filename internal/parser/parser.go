package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/stackadvisor/internal/flowtree"
)

// Parser converts a flow document into a decision tree.
type Parser interface {
	Parse(r io.Reader, filename string) (*flowtree.Tree, error)
}

// SupportedExtensions lists flow document formats this service can load.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".puml":     true,
	".uml":      true,
	".plantuml": true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
}

// ForFile returns the appropriate parser for a flow document filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt", ".puml", ".uml", ".plantuml":
		return &PlantUMLParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported flow document extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}
