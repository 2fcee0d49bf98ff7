package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/modforge/modforge/internal/core/ports"
)

// NodeID is the unique identifier for the filesystem provider Graft node.
const NodeID graft.ID = "adapter.filesystem"

func init() {
	graft.Register(graft.Node[ports.FileSystemProvider]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.FileSystemProvider, error) {
			return NewProvider(), nil
		},
	})
}
