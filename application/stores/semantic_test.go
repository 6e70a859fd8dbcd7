package stores

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"engram-backend/application/ports"
	"engram-backend/infrastructure/persistence/memgraph"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSemanticStore(t *testing.T) (*SemanticStore, *memgraph.Graph) {
	t.Helper()
	graph := memgraph.New()
	store, err := NewSemanticStore(context.Background(), graph, zap.NewNop())
	require.NoError(t, err)
	return store, graph
}

func TestSemanticAddAndGetFact(t *testing.T) {
	store, _ := newSemanticStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddFact(ctx, "coffee", "a hot drink"))

	desc, ok := store.Fact(ctx, "coffee")
	require.True(t, ok)
	assert.Equal(t, "a hot drink", desc)

	_, ok = store.Fact(ctx, "tea")
	assert.False(t, ok)
}

func TestSemanticRestatingOverwritesDescription(t *testing.T) {
	store, graph := newSemanticStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddFact(ctx, "coffee", "a hot drink"))
	require.NoError(t, store.AddFact(ctx, "coffee", "a cold brew"))

	desc, ok := store.Fact(ctx, "coffee")
	require.True(t, ok)
	assert.Equal(t, "a cold brew", desc)

	// One subject, but every description ever given survives as a Fact.
	subjects, err := graph.Count(ctx, ports.Query{Label: "Subject"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), subjects)
	facts, err := graph.Count(ctx, ports.Query{Label: "Fact"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), facts)
}

func TestSemanticFactsOrderedAndFiltered(t *testing.T) {
	store, _ := newSemanticStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddFact(ctx, "tea", "a leaf infusion"))
	require.NoError(t, store.AddFact(ctx, "coffee", "a hot drink"))

	all := store.Facts(ctx, nil)
	require.Len(t, all, 2)
	assert.Equal(t, "coffee", all[0].Subject)
	assert.Equal(t, "tea", all[1].Subject)

	tea := "tea"
	filtered := store.Facts(ctx, &tea)
	require.Len(t, filtered, 1)
	assert.Equal(t, "a leaf infusion", filtered[0].Description)
}

func TestSemanticSlice(t *testing.T) {
	store, _ := newSemanticStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddFact(ctx, "coffee", "a hot drink"))

	rows := store.Slice(ctx)
	require.Len(t, rows, 1)
	assert.Equal(t, "HAS_FACT", rows[0].RelType)
	assert.Equal(t, "coffee", rows[0].From.Props["name"])
	assert.Equal(t, "a hot drink", rows[0].To.Props["content"])
}
