package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/repository/repotest"
)

func TestRootCommand_HasExpectedSubcommands(t *testing.T) {
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())

	for _, sub := range []string{"serve", "migrate", "create-admin"} {
		assert.Contains(t, buf.String(), sub, "Help missing %q command", sub)
	}
}

func TestRootCommand_ConfigFlag(t *testing.T) {
	configFile = ""
	cmd := NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"--config=/etc/dentalcare.yaml", "--help"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "/etc/dentalcare.yaml", configFile)
}

func TestCreateAdmin_RequiresFlags(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"create-admin", "--email", "root@example.com"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password")
}

func TestCreateAdmin_ValidatesBeforeConnecting(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"create-admin", "--email", "not-an-email", "--password", "password1"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
}

func TestNewApp_ErrorEnvelopeAndHeaders(t *testing.T) {
	cfg := &config.Config{JWTSecret: "serve-secret", BcryptCost: 4, CORSOrigins: "*"}
	app := newApp(cfg, repotest.NewStore().Factory())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":false,"message":"Cannot GET /api/nope","data":null}`, string(body))
}
