package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJson_OverlaysFile(t *testing.T) {
	content := `{
		"endpoint_addr": ":7070",
		"database_dsn": "postgres://u:p@h:5432/db",
		"secret_key": "json-secret",
		"token_validity_duration": "24h",
		"presign_validity_duration": "1h",
		"s3_bucket": "json-bucket",
		"gemini_api_key": "json-key"
	}`

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"server", "-c", path}

	c := &Config{}
	c.LoadDefaults()
	parseJson(c)

	assert.Equal(t, c.EndpointAddr, ":7070")
	assert.Equal(t, c.DatabaseDSN, "postgres://u:p@h:5432/db")
	assert.Equal(t, c.SecretKey, "json-secret")
	assert.Equal(t, c.TokenValidityDuration, 24*time.Hour)
	assert.Equal(t, c.PresignValidityDuration, 1*time.Hour)
	assert.Equal(t, c.S3Bucket, "json-bucket")
	assert.Equal(t, c.GeminiAPIKey, "json-key")
	// untouched by the file
	assert.Equal(t, c.S3Region, "us-east-1")
}

func TestParseJson_NoFileFlag(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"server"}

	c := &Config{}
	c.LoadDefaults()
	parseJson(c)

	assert.Equal(t, c.EndpointAddr, ":8080")
}
