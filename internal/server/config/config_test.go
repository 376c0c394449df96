package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, c.EndpointAddr, ":8080")
	assert.Equal(t, c.SecretKey, "secretKey")
	assert.Equal(t, c.TokenIssuer, "taskkeeper")
	assert.Equal(t, c.TokenAudience, "taskkeeper-clients")
	assert.Equal(t, c.AccessTokenValidityDuration, 1*time.Hour)
	assert.Equal(t, c.UsersFilePath, "users.json")
	assert.Equal(t, c.TodosFilePath, "data.json")
}

func TestLoadConfig_UsesDefaultsWithoutArgs(t *testing.T) {
	orig := os.Args
	defer func() { os.Args = orig }()
	os.Args = []string{"test"}

	c := LoadConfig()

	require.NotNil(t, c, "LoadConfig must not return nil")
	assert.Equal(t, c.EndpointAddr, ":8080")
	assert.Equal(t, c.AccessTokenValidityDuration, 1*time.Hour)
}

func TestLoadConfig_FlagsOverride(t *testing.T) {
	orig := os.Args
	defer func() { os.Args = orig }()
	os.Args = []string{"test", "-a", ":9090", "-s", "real-secret", "-t", "30"}

	c := LoadConfig()

	assert.Equal(t, c.EndpointAddr, ":9090")
	assert.Equal(t, c.SecretKey, "real-secret")
	assert.Equal(t, c.AccessTokenValidityDuration, 30*time.Minute)
	// untouched fields keep their defaults
	assert.Equal(t, c.TokenIssuer, "taskkeeper")
}
