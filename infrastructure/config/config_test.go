package config

import (
	"testing"
	"time"

	apperrors "engram-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("NEO4J_URI", "bolt://localhost:7687")
	t.Setenv("NEO4J_USER", "neo4j")
	t.Setenv("NEO4J_PASS", "secret")
}

func TestLoadWithDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "neo4j", cfg.Neo4jDatabase)
	assert.Equal(t, 10*time.Second, cfg.OperationTimeout)
	assert.Equal(t, 2, cfg.MaxReadRetries)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("GRAPH_OP_TIMEOUT", "3s")
	t.Setenv("GRAPH_MAX_READ_RETRIES", "5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 3*time.Second, cfg.OperationTimeout)
	assert.Equal(t, 5, cfg.MaxReadRetries)
}

func TestLoadRequiresCredentials(t *testing.T) {
	setRequired(t)
	t.Setenv("NEO4J_PASS", "")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConfig))
	assert.True(t, apperrors.IsFatal(err))
}

func TestValidateRejectsBadBounds(t *testing.T) {
	cfg := &Config{
		Neo4jURI: "bolt://x", Neo4jUser: "u", Neo4jPassword: "p",
		OperationTimeout: 0,
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConfig))
}
