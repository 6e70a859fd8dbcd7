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

func newSensoryStore(t *testing.T) (*SensoryStore, *memgraph.Graph) {
	t.Helper()
	graph := memgraph.New()
	store, err := NewSensoryStore(context.Background(), graph, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, graph
}

func TestSensoryRecordClassifiesAndDecomposes(t *testing.T) {
	store, graph := newSensoryStore(t)
	ctx := context.Background()

	ts, err := store.Record(ctx, "alice", "text", "I saw a red Tree")
	require.NoError(t, err)
	require.NotEmpty(t, ts)

	recs, err := graph.Query(ctx, ports.Query{
		Label:  "Sentence",
		Return: []string{"text", "type", "memory_type", "timestamp"},
	})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "I saw a red Tree", recs[0]["text"])
	assert.Equal(t, "text", recs[0]["type"])
	assert.Equal(t, "visual", recs[0]["memory_type"])
	assert.Equal(t, ts, recs[0]["timestamp"])

	// One merged lowercase Word per whitespace token.
	words, err := graph.Count(ctx, ports.Query{Label: "Word"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), words)
	lowered, err := graph.Query(ctx, ports.Query{
		Label:  "Word",
		Equals: ports.Props{"text": "tree"},
		Return: []string{"text"},
	})
	require.NoError(t, err)
	assert.Len(t, lowered, 1)
}

func TestSensoryPeekInsideWindow(t *testing.T) {
	store, _ := newSensoryStore(t)
	ctx := context.Background()

	ts, err := store.Record(ctx, "alice", "audio", "I hear rain")
	require.NoError(t, err)

	// Ristretto admission is best effort, so a hit proves freshness but a
	// miss is also legal. Only assert on the contents of a hit.
	store.cache.Wait()
	if input, ok := store.Peek(ts); ok {
		assert.Equal(t, "audio", input.Type)
		assert.Equal(t, "I hear rain", input.Text)
	}

	_, ok := store.Peek("no-such-timestamp")
	assert.False(t, ok)
}

func TestSensoryInputsNewestFirst(t *testing.T) {
	store, _ := newSensoryStore(t)
	ctx := context.Background()

	_, err := store.Record(ctx, "alice", "text", "first observation")
	require.NoError(t, err)
	_, err = store.Record(ctx, "alice", "text", "second observation")
	require.NoError(t, err)

	inputs := store.Inputs(ctx, "alice")
	require.Len(t, inputs, 2)
	assert.Equal(t, "second observation", inputs[0].Text)
	assert.Equal(t, "first observation", inputs[1].Text)
	assert.Empty(t, store.Inputs(ctx, "bob"))
}

func TestSensorySliceReachesWords(t *testing.T) {
	store, _ := newSensoryStore(t)
	ctx := context.Background()

	_, err := store.Record(ctx, "alice", "text", "red tree")
	require.NoError(t, err)

	alice := "alice"
	rows := store.Slice(ctx, &alice)
	require.Len(t, rows, 3) // PERCEIVED + two CONTAINS

	var contains int
	for _, row := range rows {
		if row.RelType == "CONTAINS" {
			contains++
			assert.Contains(t, []any{0, 1}, row.RelProps["position"])
		}
	}
	assert.Equal(t, 2, contains)
}
