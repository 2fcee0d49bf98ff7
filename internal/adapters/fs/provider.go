// Package fs provides the operating-system backed file tree provider.
package fs

import (
	"io/fs"
	"os"
	"path/filepath"
)

// Provider implements ports.FileSystemProvider on the real filesystem.
type Provider struct{}

// NewProvider creates a new OS-backed provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Stat returns file info for the given path.
func (p *Provider) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// ReadFile reads the file at the given path.
func (p *Provider) ReadFile(path string) ([]byte, error) {
	//nolint:gosec // Paths are validated against the destination root by callers
	return os.ReadFile(path)
}

// WriteFile writes data to the given path, creating the file if needed.
func (p *Provider) WriteFile(path string, data []byte, perm fs.FileMode) error {
	//nolint:gosec // Paths are validated against the destination root by callers
	return os.WriteFile(path, data, perm)
}

// MkdirAll creates the directory and any missing parents.
func (p *Provider) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Rename moves a file or directory.
func (p *Provider) Rename(oldPath, newPath string) error {
	return os.Rename(oldPath, newPath)
}

// RemoveAll removes the path and any children it contains.
func (p *Provider) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

// WalkDir walks the tree rooted at root in lexical order.
func (p *Provider) WalkDir(root string, fn fs.WalkDirFunc) error {
	return filepath.WalkDir(root, fn)
}
