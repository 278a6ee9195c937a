package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"REDDIT_CLIENT_ID", "REDDIT_CLIENT_SECRET", "REDDIT_USER_AGENT",
		"REDDIT_USERNAME", "REDDIT_PASSWORD",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadCreatesTemplateWhenNothingConfigured(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "secrets.json")

	_, err := Load(path)
	require.Error(t, err)

	var credErr *MissingCredentialError
	require.ErrorAs(t, err, &credErr)
	assert.Contains(t, credErr.Fields, "client_id")
	assert.Contains(t, credErr.Fields, "client_secret")
	assert.True(t, credErr.TemplateCreated)
	assert.Contains(t, err.Error(), "client_id")

	// A placeholder file must now exist and be valid JSON.
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var template map[string]string
	require.NoError(t, json.Unmarshal(b, &template))
	assert.Equal(t, "your_reddit_client_id_here", template["client_id"])
}

func TestLoadFromFileOnly(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "secrets.json")
	writeSecrets(t, path, map[string]string{
		"client_id":     "file-id",
		"client_secret": "file-secret",
		"user_agent":    "TestAgent/1.0",
		"username":      "file-user",
		"password":      "file-pass",
	})

	creds, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "file-id", creds.ClientID)
	assert.Equal(t, "file-secret", creds.ClientSecret)
	assert.Equal(t, "TestAgent/1.0", creds.UserAgent)
	assert.Equal(t, "file-user", creds.Username)
	assert.Equal(t, "file-pass", creds.Password)
	assert.True(t, creds.HasUserAuth())
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "secrets.json")
	writeSecrets(t, path, map[string]string{
		"client_id":     "file-id",
		"client_secret": "file-secret",
	})

	t.Setenv("REDDIT_CLIENT_ID", "env-id")

	creds, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-id", creds.ClientID)
	assert.Equal(t, "file-secret", creds.ClientSecret)
}

func TestMissingFieldIsNamed(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "secrets.json")
	writeSecrets(t, path, map[string]string{
		"client_id": "file-id",
	})

	_, err := Load(path)
	var credErr *MissingCredentialError
	require.ErrorAs(t, err, &credErr)
	assert.Equal(t, []string{"client_secret"}, credErr.Fields)
	assert.False(t, credErr.TemplateCreated, "existing file must never be replaced by a template")
}

func TestExistingSecretsFileIsNeverOverwritten(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "secrets.json")
	writeSecrets(t, path, map[string]string{"username": "only-a-username"})

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	_, loadErr := Load(path)
	require.Error(t, loadErr)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestUserAgentDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "secrets.json")
	writeSecrets(t, path, map[string]string{
		"client_id":     "id",
		"client_secret": "secret",
	})

	creds, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultUserAgent, creds.UserAgent)
	assert.False(t, creds.HasUserAuth())
}

func writeSecrets(t *testing.T, path string, fields map[string]string) {
	t.Helper()
	b, err := json.Marshal(fields)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0600))
}
