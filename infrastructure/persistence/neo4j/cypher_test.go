package neo4j

import (
	"testing"

	"engram-backend/application/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMergeNode(t *testing.T) {
	stmt, params, err := buildMergeNode(
		ports.NodeSpec{Label: "Action", Key: "text", KeyVal: "login", Domain: "motor", Memory: true},
		ports.Props{"id": "abc"}, nil)
	require.NoError(t, err)

	assert.Contains(t, stmt, "MERGE (n:`Action` {`text`: $keyVal})")
	assert.Contains(t, stmt, "ON CREATE SET n += $onCreate")
	assert.Contains(t, stmt, "ON MATCH SET n += $onMatch")
	assert.Contains(t, stmt, "SET n.memory_type = $memoryType")
	assert.Contains(t, stmt, "SET n:Memory")
	assert.Contains(t, stmt, "RETURN elementId(n) AS id")
	assert.Equal(t, "login", params["keyVal"])
	assert.Equal(t, map[string]any{"id": "abc"}, params["onCreate"])
	assert.Equal(t, map[string]any{}, params["onMatch"])
	assert.Equal(t, "motor", params["memoryType"])
}

func TestBuildMergeNodeWithoutTag(t *testing.T) {
	stmt, _, err := buildMergeNode(ports.NodeSpec{Label: "User", Key: "id", KeyVal: "u1"}, nil, nil)
	require.NoError(t, err)
	assert.NotContains(t, stmt, "memory_type")
	assert.NotContains(t, stmt, ":Memory")
}

func TestBuildMergeNodeRejectsBadLabel(t *testing.T) {
	_, _, err := buildMergeNode(
		ports.NodeSpec{Label: "User) DETACH DELETE (n", Key: "id", KeyVal: "u1"}, nil, nil)
	require.Error(t, err)
}

func TestBuildQueryAnchoredWithFilters(t *testing.T) {
	stmt, params, err := buildQuery(ports.Query{
		AnchorLabel: "User", AnchorKey: "id", AnchorVal: "alice",
		Rel: "HAS_EPISODE", Label: "Episode",
		ContainsProp: "text", ContainsAny: []string{"dog"},
		Return:  []string{"text", "timestamp"},
		OrderBy: "timestamp", Desc: true, Limit: 5,
	})
	require.NoError(t, err)

	assert.Contains(t, stmt, "MATCH (a:`User` {`id`: $anchorVal})-[:`HAS_EPISODE`]->(n:`Episode`)")
	assert.Contains(t, stmt, "ANY(term IN $terms WHERE n.`text` CONTAINS term)")
	assert.Contains(t, stmt, "RETURN n.`text` AS `text`, n.`timestamp` AS `timestamp`")
	assert.Contains(t, stmt, "ORDER BY n.`timestamp` DESC")
	assert.Contains(t, stmt, "LIMIT 5")
	assert.Equal(t, "alice", params["anchorVal"])
	assert.Equal(t, []string{"dog"}, params["terms"])
}

func TestBuildQueryEqualsFilter(t *testing.T) {
	stmt, params, err := buildQuery(ports.Query{
		Label:  "Subject",
		Equals: ports.Props{"name": "coffee"},
		Return: []string{"name"},
	})
	require.NoError(t, err)
	assert.Contains(t, stmt, "MATCH (n:`Subject`)")
	assert.Contains(t, stmt, "n.`name` = $eq_name")
	assert.Equal(t, "coffee", params["eq_name"])
}

func TestBuildGroupCount(t *testing.T) {
	stmt, _, err := buildGroupCount(ports.Query{
		AnchorLabel: "SocialUser", AnchorKey: "id", AnchorVal: "alice",
		Rel: "POSTED", Label: "SocialPost",
	}, "text", 5)
	require.NoError(t, err)
	assert.Contains(t, stmt, "RETURN n.`text` AS value, count(*) AS cnt")
	assert.Contains(t, stmt, "ORDER BY cnt DESC, value ASC")
	assert.Contains(t, stmt, "LIMIT 5")
}

func TestBuildSliceAnchoredExpand(t *testing.T) {
	alice := "alice"
	stmt, params, err := buildSlice(ports.SliceQuery{
		AnchorLabel: "User", AnchorKey: "id", Rel: "PERCEIVED", Label: "Sentence",
		UserID: &alice, Expand: true,
	})
	require.NoError(t, err)
	assert.Contains(t, stmt, "MATCH (a:`User`)-[r:`PERCEIVED`]->(n:`Sentence`)")
	assert.Contains(t, stmt, "a.`id` = $userId")
	assert.Contains(t, stmt, "OPTIONAL MATCH (n)-[r2]->(m)")
	assert.Contains(t, stmt, "RETURN a, r, n, r2, m")
	assert.Equal(t, "alice", params["userId"])
}

func TestBuildSliceUnanchored(t *testing.T) {
	alice := "alice"
	stmt, params, err := buildSlice(ports.SliceQuery{Label: "Memory", UserID: &alice})
	require.NoError(t, err)
	assert.Contains(t, stmt, "MATCH (n:`Memory`)")
	assert.Contains(t, stmt, "EXISTS { MATCH (u:User {id: $userId})-[]->(n) }")
	assert.Contains(t, stmt, "OPTIONAL MATCH (n)-[r]->(m)")
	assert.Equal(t, "alice", params["userId"])
}

func TestValidIdent(t *testing.T) {
	assert.NoError(t, validIdent("HAS_EPISODE"))
	assert.NoError(t, validIdent("SocialPost"))
	assert.Error(t, validIdent("bad-name"))
	assert.Error(t, validIdent("1starts"))
	assert.Error(t, validIdent("inject`)"))
}
