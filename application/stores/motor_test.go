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

func newMotorStore(t *testing.T) (*MotorStore, *memgraph.Graph) {
	t.Helper()
	graph := memgraph.New()
	store, err := NewMotorStore(context.Background(), graph, zap.NewNop())
	require.NoError(t, err)
	return store, graph
}

func TestMotorStoreDedupesByText(t *testing.T) {
	store, graph := newMotorStore(t)
	ctx := context.Background()

	require.NoError(t, store.Store(ctx, "alice", "pressed the button"))
	require.NoError(t, store.Store(ctx, "alice", "pressed the button"))

	count, err := graph.Count(ctx, ports.Query{Label: "Action"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	actions := store.Actions(ctx, "alice")
	require.Len(t, actions, 1)
	assert.Equal(t, "pressed the button", actions[0].Text)
	assert.NotEmpty(t, actions[0].Timestamp)
}

func TestMotorStoreKeepsFirstSeenIdentity(t *testing.T) {
	store, graph := newMotorStore(t)
	ctx := context.Background()

	require.NoError(t, store.Store(ctx, "alice", "opened the door"))
	recs, err := graph.Query(ctx, ports.Query{Label: "Action", Return: []string{"id", "timestamp"}})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	firstID := recs[0]["id"]
	firstTS := recs[0]["timestamp"]

	require.NoError(t, store.Store(ctx, "bob", "opened the door"))
	recs, err = graph.Query(ctx, ports.Query{Label: "Action", Return: []string{"id", "timestamp"}})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, firstID, recs[0]["id"])
	assert.Equal(t, firstTS, recs[0]["timestamp"])
}

func TestMotorActionsAreScopedToUser(t *testing.T) {
	store, _ := newMotorStore(t)
	ctx := context.Background()

	require.NoError(t, store.Store(ctx, "alice", "waved"))
	assert.Empty(t, store.Actions(ctx, "bob"))
}

func TestMotorSlice(t *testing.T) {
	store, _ := newMotorStore(t)
	ctx := context.Background()

	require.NoError(t, store.Store(ctx, "alice", "waved"))
	require.NoError(t, store.Store(ctx, "bob", "nodded"))

	alice := "alice"
	rows := store.Slice(ctx, &alice)
	require.Len(t, rows, 1)
	assert.Equal(t, "PERFORMED", rows[0].RelType)
	assert.Equal(t, "waved", rows[0].To.Props["text"])

	assert.Len(t, store.Slice(ctx, nil), 2)
}
