package ports

import "io/fs"

// FileSystemProvider abstracts the destination file tree so instruction
// execution and checkpointing can be tested against a scratch directory
// and swapped for case-insensitive or overlay implementations.
//
//go:generate mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks
type FileSystemProvider interface {
	Stat(path string) (fs.FileInfo, error)
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	Rename(oldPath, newPath string) error
	RemoveAll(path string) error

	// WalkDir walks the tree rooted at root in lexical order.
	WalkDir(root string, fn fs.WalkDirFunc) error
}
