package domain_test

import (
	"testing"

	"github.com/modforge/modforge/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_AddNode(t *testing.T) {
	g := domain.NewGraph()

	g.AddNode("a")
	g.AddNode("b")
	g.AddNode("a")

	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, []string{"a", "b"}, g.Nodes())
	assert.True(t, g.HasNode("a"))
	assert.False(t, g.HasNode("c"))
}

func TestGraph_AddEdge(t *testing.T) {
	g := domain.NewGraph()
	g.AddNode("a")
	g.AddNode("b")
	g.AddNode("c")

	require.NoError(t, g.AddEdge("a", "b"))
	require.NoError(t, g.AddEdge("a", "c"))

	assert.Equal(t, []string{"b", "c"}, g.EdgesFrom("a"))
	assert.Equal(t, []string{"a"}, g.Dependents("b"))
}

func TestGraph_AddEdge_SelfReference(t *testing.T) {
	g := domain.NewGraph()
	g.AddNode("a")

	err := g.AddEdge("a", "a")
	require.ErrorIs(t, err, domain.ErrSelfReference)
}

func TestGraph_AddEdge_UnknownEndpoint(t *testing.T) {
	g := domain.NewGraph()
	g.AddNode("a")

	require.ErrorIs(t, g.AddEdge("a", "ghost"), domain.ErrComponentNotFound)
	require.ErrorIs(t, g.AddEdge("ghost", "a"), domain.ErrComponentNotFound)
}

func TestGraph_AddEdge_CollapsesDuplicates(t *testing.T) {
	g := domain.NewGraph()
	g.AddNode("a")
	g.AddNode("b")

	require.NoError(t, g.AddEdge("a", "b"))
	require.NoError(t, g.AddEdge("a", "b"))

	assert.Equal(t, []string{"b"}, g.EdgesFrom("a"))
	assert.Equal(t, []string{"a"}, g.Dependents("b"))
}
