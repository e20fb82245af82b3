package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvCommandMissingVariables(t *testing.T) {
	for _, key := range requiredEnv {
		t.Setenv(key, "")
	}

	err := envCmd.RunE(envCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required variable(s) missing")
}

func TestEnvCommandPartiallyMissing(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("SURREALDB_URL", "")

	err := envCmd.RunE(envCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 required variable(s) missing")
}

func TestEnvCommandAllSet(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("SURREALDB_URL", "ws://localhost:8000/rpc")
	// Voice variables are optional: leaving them unset must not fail the check.
	t.Setenv("ELEVEN_API_KEY", "")
	t.Setenv("VOICE_ID", "")

	assert.NoError(t, envCmd.RunE(envCmd, nil))
}
