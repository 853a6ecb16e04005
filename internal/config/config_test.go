package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.True(t, cfg.RateLimitEnabled)
	assert.False(t, cfg.SendRealEmails)
	assert.Equal(t, 587, cfg.SMTPPort)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
db:
  host: db.internal
  name: from_file
jwt:
  expiry: 24h
port: "9000"
rate_limit:
  enabled: false
`), 0o600))

	t.Setenv("DB_NAME", "from_env")
	t.Setenv("JWT_SECRET", "s3cret")

	flags := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	flags.String("port", "8080", "")
	require.NoError(t, flags.Parse([]string{"--port", "9100"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DBHost, "file overrides default")
	assert.Equal(t, "from_env", cfg.DBName, "env overrides file")
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.False(t, cfg.RateLimitEnabled)
	assert.Equal(t, "9100", cfg.Port, "explicit flag overrides file")
}

func TestLoad_UnsetFlagKeepsFileValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"9000\"\n"), 0o600))

	flags := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	flags.String("port", "8080", "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"ok", Config{JWTSecret: "x", DBPassword: "y"}, ""},
		{"missing secret", Config{DBPassword: "y"}, "JWT_SECRET"},
		{"missing db password", Config{JWTSecret: "x"}, "DB_PASSWORD"},
		{"smtp user required", Config{JWTSecret: "x", DBPassword: "y", SendRealEmails: true}, "SMTP_USER"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "RATE_LIMIT_ENABLED", EnvName("rate_limit.enabled"))
	assert.Equal(t, "SMTP_FROM_NAME", EnvName("smtp.from_name"))
}
