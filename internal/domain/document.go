package domain

import (
	"path"
	"strings"
)

// Document is one Markdown file of the audited repository
type Document struct {
	Path    string // slash-separated, relative to the repository root
	Content string
	Words   int
}

// NewDocument builds a Document and counts its words
func NewDocument(relPath, content string) Document {
	return Document{
		Path:    relPath,
		Content: content,
		Words:   WordCount(content),
	}
}

// Name returns the file name of the document
func (d Document) Name() string {
	return path.Base(d.Path)
}

// WordCount returns the number of whitespace-separated tokens in s
func WordCount(s string) int {
	return len(strings.Fields(s))
}
