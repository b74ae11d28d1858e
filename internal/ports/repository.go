package ports

import "context"

// ContentRepository defines read access to the audited documentation tree
// plus the single write of the validation report. Paths are slash-separated
// and relative to the repository root.
type ContentRepository interface {
	// Root returns the absolute repository root
	Root() string

	// Check verifies the root exists and is a readable directory
	Check() error

	// WalkMarkdown calls fn for every .md file under the root in lexical
	// order. Symbolic links resolving outside the root are skipped.
	WalkMarkdown(ctx context.Context, fn func(relPath string) error) error

	// ReadDocument returns the UTF-8 content of a document
	ReadDocument(relPath string) (string, error)

	// ListMarkdown returns the names of .md files directly inside relDir,
	// sorted. It returns an error satisfying errors.Is(err, fs.ErrNotExist)
	// when relDir does not exist.
	ListMarkdown(relDir string) ([]string, error)

	// Exists reports whether relPath names an existing regular file
	Exists(relPath string) bool

	// WriteFile replaces relPath with data in a single write
	WriteFile(relPath string, data []byte) error
}
