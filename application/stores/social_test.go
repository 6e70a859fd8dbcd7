package stores

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"engram-backend/application/ports"
	"engram-backend/domain/memory"
	"engram-backend/infrastructure/persistence/memgraph"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSocialStore(t *testing.T) (*SocialStore, *memgraph.Graph) {
	t.Helper()
	graph := memgraph.New()
	store, err := NewSocialStore(context.Background(), graph, zap.NewNop())
	require.NoError(t, err)
	return store, graph
}

func TestSocialRegisterUserIsIdempotent(t *testing.T) {
	store, graph := newSocialStore(t)
	ctx := context.Background()

	require.NoError(t, store.RegisterUser(ctx, "alice"))
	require.NoError(t, store.RegisterUser(ctx, "alice"))

	count, err := graph.Count(ctx, ports.Query{Label: "SocialUser"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	recs, err := graph.Query(ctx, ports.Query{
		Label:  "SocialUser",
		Return: []string{"memory_type", "created_at"},
	})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "social", recs[0]["memory_type"])
	assert.NotEmpty(t, recs[0]["created_at"])
}

func TestSocialPostsAreAppendOnly(t *testing.T) {
	store, graph := newSocialStore(t)
	ctx := context.Background()

	require.NoError(t, store.LogInteraction(ctx, "alice", "hello"))
	require.NoError(t, store.LogInteraction(ctx, "alice", "hello"))

	count, err := graph.Count(ctx, ports.Query{Label: "SocialPost"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, int64(2), store.InteractionCount(ctx, "alice"))
	assert.Zero(t, store.InteractionCount(ctx, "bob"))
}

func TestSocialInsights(t *testing.T) {
	store, _ := newSocialStore(t)
	ctx := context.Background()

	for _, text := range []string{"hello", "hello", "hello", "bye", "bye", "hmm"} {
		require.NoError(t, store.LogInteraction(ctx, "alice", text))
	}

	insights := store.Insights(ctx, "alice")
	assert.Equal(t, int64(6), insights.PostCount)
	require.Len(t, insights.TopTopics, 3)
	assert.Equal(t, memory.TopicCount{Text: "hello", Count: 3}, insights.TopTopics[0])
	assert.Equal(t, memory.TopicCount{Text: "bye", Count: 2}, insights.TopTopics[1])
}

func TestSocialInsightsForUnknownUser(t *testing.T) {
	store, _ := newSocialStore(t)
	insights := store.Insights(context.Background(), "ghost")
	assert.Zero(t, insights.PostCount)
	assert.Empty(t, insights.TopTopics)
}

func TestSocialSlice(t *testing.T) {
	store, _ := newSocialStore(t)
	ctx := context.Background()

	require.NoError(t, store.LogInteraction(ctx, "alice", "hello"))
	require.NoError(t, store.LogInteraction(ctx, "bob", "hi"))

	alice := "alice"
	rows := store.Slice(ctx, &alice)
	require.Len(t, rows, 1)
	assert.Equal(t, "POSTED", rows[0].RelType)
	assert.Equal(t, "hello", rows[0].To.Props["text"])

	assert.Len(t, store.Slice(ctx, nil), 2)
}
