package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseJson_Overlay(t *testing.T) {
	path := writeConfigFile(t, `{
		"endpoint_addr": ":9191",
		"secret_key": "json-secret",
		"access_token_validity_duration": "15m"
	}`)

	orig := os.Args
	defer func() { os.Args = orig }()
	os.Args = []string{"test", "-c", path}

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, c.EndpointAddr, ":9191")
	assert.Equal(t, c.SecretKey, "json-secret")
	assert.Equal(t, c.AccessTokenValidityDuration, 15*time.Minute)
	// fields absent from the file keep their defaults
	assert.Equal(t, c.TokenIssuer, "taskkeeper")
	assert.Equal(t, c.UsersFilePath, "users.json")
}

func TestParseJson_NoFlagIsNoOp(t *testing.T) {
	orig := os.Args
	defer func() { os.Args = orig }()
	os.Args = []string{"test"}

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, c.EndpointAddr, ":8080")
}

func TestParseJson_MissingFilePanics(t *testing.T) {
	orig := os.Args
	defer func() { os.Args = orig }()
	os.Args = []string{"test", "-c", "does-not-exist.json"}

	var c Config
	c.LoadDefaults()
	assert.Panics(t, func() { parseJson(&c) })
}
