package ports

import "github.com/modforge/modforge/internal/core/domain"

// ManifestLoader reads component definitions from disk.
//
//go:generate mockgen -source=manifest.go -destination=mocks/mock_manifest.go -package=mocks
type ManifestLoader interface {
	// Load parses the manifest at path into domain components, preserving
	// declaration order.
	Load(path string) ([]*domain.Component, error)

	// Discover walks up from cwd looking for a manifest file and returns
	// its path.
	Discover(cwd string) (string, error)
}
