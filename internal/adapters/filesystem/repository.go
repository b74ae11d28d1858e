package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"storyaudit/internal/ports"
)

// ErrInvalidUTF8 is returned when a document is not valid UTF-8
var ErrInvalidUTF8 = errors.New("invalid UTF-8 content")

const markdownExt = ".md"

// Repository implements ports.ContentRepository using the filesystem
type Repository struct {
	root string
}

// Ensure Repository implements ContentRepository
var _ ports.ContentRepository = (*Repository)(nil)

// NewRepository creates a new filesystem repository rooted at root
func NewRepository(root string) *Repository {
	// Expand ~ to home directory
	if strings.HasPrefix(root, "~") {
		home, _ := os.UserHomeDir()
		root = filepath.Join(home, root[1:])
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return &Repository{root: root}
}

// Root returns the absolute repository root
func (r *Repository) Root() string {
	return r.root
}

// Check verifies the root exists, is a directory and can be listed
func (r *Repository) Check() error {
	info, err := os.Stat(r.root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: not a directory", r.root)
	}

	f, err := os.Open(r.root)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Readdirnames(1); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to list %s: %w", r.root, err)
	}
	return nil
}

// WalkMarkdown calls fn for every .md file under the root in lexical order.
// A symlinked root is resolved first and walked at its target.
func (r *Repository) WalkMarkdown(ctx context.Context, fn func(relPath string) error) error {
	realRoot, err := filepath.EvalSymlinks(r.root)
	if err != nil {
		return err
	}

	return filepath.WalkDir(realRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == realRoot {
				return err
			}
			// Unreadable subtree: keep walking the rest of the repository
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() || !strings.HasSuffix(d.Name(), markdownExt) {
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			if !r.symlinkInside(realRoot, path) {
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}

		relPath, err := filepath.Rel(realRoot, path)
		if err != nil {
			return err
		}
		return fn(filepath.ToSlash(relPath))
	})
}

// symlinkInside reports whether the link at path resolves to a regular file
// inside realRoot
func (r *Repository) symlinkInside(realRoot, path string) bool {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(realRoot, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	info, err := os.Stat(target)
	return err == nil && info.Mode().IsRegular()
}

// ReadDocument returns the content of a document, which must be valid UTF-8
func (r *Repository) ReadDocument(relPath string) (string, error) {
	f, err := os.Open(r.abs(relPath))
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", relPath, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s: %w", relPath, ErrInvalidUTF8)
	}
	return string(data), nil
}

// ListMarkdown returns the names of .md files directly inside relDir, sorted.
// Symbolic links are listed only when WalkMarkdown would visit them.
func (r *Repository) ListMarkdown(relDir string) ([]string, error) {
	dir := r.abs(relDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	realRoot, err := filepath.EvalSymlinks(r.root)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), markdownExt) {
			continue
		}
		if entry.Type()&fs.ModeSymlink != 0 {
			if !r.symlinkInside(realRoot, filepath.Join(dir, entry.Name())) {
				continue
			}
		} else if !entry.Type().IsRegular() {
			continue
		}
		names = append(names, entry.Name())
	}

	return names, nil
}

// Exists reports whether relPath names an existing regular file
func (r *Repository) Exists(relPath string) bool {
	info, err := os.Stat(r.abs(relPath))
	return err == nil && info.Mode().IsRegular()
}

// WriteFile replaces relPath with data
func (r *Repository) WriteFile(relPath string, data []byte) error {
	if err := os.WriteFile(r.abs(relPath), data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", relPath, err)
	}
	return nil
}

func (r *Repository) abs(relPath string) string {
	return filepath.Join(r.root, filepath.FromSlash(relPath))
}
