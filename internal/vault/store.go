// Package vault reads and mutates the note vault: a directory of markdown
// files whose front matter carries assignment metadata. All paths are
// vault-relative and slash-separated regardless of platform.
package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

var (
	ErrNotFound  = errors.New("vault: file not found")
	ErrEmptyRoot = errors.New("vault: root directory is required")
)

// File is a non-owning reference to a vault file.
type File struct {
	Path string
}

// Store is the file-store capability the core consumes. CreateFolder is
// idempotent: a folder that already exists is not an error.
type Store interface {
	ListAll() ([]File, error)
	Read(f File) (string, error)
	Modify(f File, content string) error
	CreateFolder(path string) error
	Move(f File, newPath string) error
	OpenByPath(path string) error
}

// DirStore implements Store over an OS directory.
type DirStore struct {
	root string
}

func NewDirStore(root string) (*DirStore, error) {
	trimmed := strings.TrimSpace(root)
	if trimmed == "" {
		return nil, ErrEmptyRoot
	}
	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return nil, fmt.Errorf("vault: resolve root: %w", err)
	}
	return &DirStore{root: abs}, nil
}

func (s *DirStore) Root() string { return s.root }

func (s *DirStore) ListAll() ([]File, error) {
	var out []File
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && p != s.root {
				return filepath.SkipDir
			}
			return nil
		}
		rel, relErr := filepath.Rel(s.root, p)
		if relErr != nil {
			return relErr
		}
		out = append(out, File{Path: filepath.ToSlash(rel)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("vault: list files: %w", err)
	}
	return out, nil
}

func (s *DirStore) Read(f File) (string, error) {
	raw, err := os.ReadFile(s.abs(f.Path))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, f.Path)
		}
		return "", fmt.Errorf("vault: read %s: %w", f.Path, err)
	}
	return string(raw), nil
}

func (s *DirStore) Modify(f File, content string) error {
	if err := os.WriteFile(s.abs(f.Path), []byte(content), 0o644); err != nil {
		return fmt.Errorf("vault: write %s: %w", f.Path, err)
	}
	return nil
}

func (s *DirStore) CreateFolder(path string) error {
	err := os.Mkdir(s.abs(path), 0o755)
	if err != nil && !os.IsExist(err) {
		return fmt.Errorf("vault: create folder %s: %w", path, err)
	}
	return nil
}

func (s *DirStore) Move(f File, newPath string) error {
	if err := os.Rename(s.abs(f.Path), s.abs(newPath)); err != nil {
		return fmt.Errorf("vault: move %s -> %s: %w", f.Path, newPath, err)
	}
	return nil
}

// OpenByPath hands the file to the OS default opener. Navigation is a side
// effect only; callers ignore everything but the error.
func (s *DirStore) OpenByPath(path string) error {
	target := s.abs(path)
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", target).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target).Start()
	default:
		return exec.Command("xdg-open", target).Start()
	}
}

func (s *DirStore) abs(rel string) string {
	return filepath.Join(s.root, filepath.FromSlash(rel))
}

// WriteNew creates a file (and any missing parent folders) that must not
// already exist.
func (s *DirStore) WriteNew(path, content string) error {
	target := s.abs(path)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("vault: create folders for %s: %w", path, err)
	}
	fh, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("vault: create %s: %w", path, err)
	}
	defer fh.Close()
	if _, err := fh.WriteString(content); err != nil {
		return fmt.Errorf("vault: write %s: %w", path, err)
	}
	return nil
}
