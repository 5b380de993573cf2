package cmd_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/isometry/hookctl/cmd"
	"github.com/isometry/hookctl/internal/config"
	"github.com/isometry/hookctl/internal/models"
	"github.com/isometry/hookctl/internal/patch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const malformedApp = `function App() {
  return (
    <div>
      <Modal open={open}>
        <p>settings</p>
      </Modal>
    </div>
  );
}
  );
}

function NavItem() {
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, env := range []string{"API_URL", "API_TOKEN", "API_AUTH_MODE", "WEBHOOK_URL", "WEBHOOK_EVENTS", "WEBHOOK_ACTIVE", "PATCH_DRY_RUN", "PATCH_FILE", "PATCH_RECIPE", "PATCH_RECIPE_FILE", "PORT", "WEBHOOK_SECRET", "CALLBACK_S3_BUCKET", "CALLBACK_S3_UPLOAD"} {
		t.Setenv(env, "")
		require.NoError(t, os.Unsetenv(env))
	}
	require.NoError(t, config.Reset())

	var out bytes.Buffer
	c := cmd.New()
	c.SetArgs(args)
	c.SetOut(&out)
	c.SetErr(io.Discard)
	err := c.Execute()
	return out.String(), err
}

func TestPatchCommand(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, patch.NavItemPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(malformedApp), 0o644))

	out, err := execute(t, "patch", "--dry-run", "-C", root)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, patch.NavItemClosingBlock))
	unchanged, _ := os.ReadFile(path)
	assert.Equal(t, malformedApp, string(unchanged))

	out, err = execute(t, "patch", "-C", root)
	require.NoError(t, err)
	assert.Contains(t, out, "patched (splice)")
	patched, _ := os.ReadFile(path)
	assert.True(t, strings.HasSuffix(string(patched), patch.NavItemClosingBlock))

	_, err = execute(t, "patch", "-C", root)
	assert.ErrorIs(t, err, patch.ErrNothingToPatch)
}

func TestPatchCommand_Errors(t *testing.T) {
	testCases := []struct {
		Name string
		Args []string
	}{
		{
			Name: "missing_file",
			Args: []string{"patch", "-C", t.TempDir()},
		},
		{
			Name: "unknown_recipe",
			Args: []string{"patch", "-C", t.TempDir(), "--recipe", "unknown"},
		},
		{
			Name: "missing_recipe_file",
			Args: []string{"patch", "--recipe-file", filepath.Join(t.TempDir(), "missing.yaml")},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			_, err := execute(t, tc.Args...)
			assert.Error(t, err)
		})
	}
}

func TestWebhookSetCommand(t *testing.T) {
	var (
		gotToken    string
		gotMethod   string
		gotSettings models.WebhookSettings
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("token")
		gotMethod = r.Method
		_ = json.NewDecoder(r.Body).Decode(&gotSettings)
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	out, err := execute(t, "webhook", "set",
		"--api-url", srv.URL,
		"--api-token", "instance-1",
		"--url", "https://hooks.example.test/in",
		"--events", "Message,ReadReceipt")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "instance-1", gotToken)
	assert.Equal(t, models.WebhookSettings{
		Webhook:   "https://hooks.example.test/in",
		Events:    []string{"Message", "ReadReceipt"},
		Subscribe: []string{"Message", "ReadReceipt"},
		Active:    true,
	}, gotSettings)
	assert.Contains(t, out, `"success": true`)
}

func TestWebhookSetCommand_EnvironmentOverride(t *testing.T) {
	var gotSettings models.WebhookSettings
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotSettings)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	require.NoError(t, config.Reset())
	t.Setenv("API_URL", srv.URL)
	t.Setenv("API_TOKEN", "instance-env")

	var out bytes.Buffer
	c := cmd.New()
	c.SetArgs([]string{"webhook", "set"})
	c.SetOut(&out)
	c.SetErr(io.Discard)
	require.NoError(t, c.Execute())

	assert.Equal(t, "http://localhost:3000/", gotSettings.Webhook)
	assert.Equal(t, []string{models.EventAll}, gotSettings.Events)
}

func TestWebhookCommand_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	testCases := []struct {
		Name string
		Args []string
	}{
		{
			Name: "missing_token",
			Args: []string{"webhook", "set", "--api-url", srv.URL},
		},
		{
			Name: "unauthorized",
			Args: []string{"webhook", "get", "--api-url", srv.URL, "--api-token", "wrong"},
		},
		{
			Name: "unsupported_auth_mode",
			Args: []string{"webhook", "get", "--api-url", srv.URL, "--auth-mode", "vault"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			_, err := execute(t, tc.Args...)
			assert.Error(t, err)
		})
	}
}

func TestWebhookSetCommand_ConfigFileInactive(t *testing.T) {
	var gotSettings models.WebhookSettings
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotSettings)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "hookctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("webhook:\n  active: false\n"), 0o600))
	t.Setenv("HOOKCTL_CONFIG", path)

	gotSettings.Active = true
	_, err := execute(t, "webhook", "set", "--api-url", srv.URL, "--api-token", "instance-1")
	require.NoError(t, err)
	assert.False(t, gotSettings.Active)
}

func TestReceiverCommands_S3UploadWithoutBucket(t *testing.T) {
	testCases := []struct {
		Name string
		Args []string
	}{
		{
			Name: "service",
			Args: []string{"service", "--callback-s3-upload"},
		},
		{
			Name: "lambda",
			Args: []string{"lambda", "--callback-s3-upload"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			_, err := execute(t, tc.Args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "without a bucket name")
		})
	}
}

func TestServiceCommand_Flags(t *testing.T) {
	_, err := execute(t, "service",
		"-H", "127.0.0.1",
		"-p", "9091",
		"-P", "/callbacks",
		"-t", "2s",
		"--service-metrics-path", "/internal/metrics",
		"--callback-s3-upload")
	require.Error(t, err)

	assert.Equal(t, "127.0.0.1", config.Service.Addr)
	assert.Equal(t, "9091", config.Service.Port)
	assert.Equal(t, "/callbacks", config.Service.Path)
	assert.Equal(t, 2*time.Second, config.Service.Timeout)
	assert.Equal(t, "/internal/metrics", config.Service.MetricsPath)
	assert.True(t, config.Receiver.S3.Upload.Enabled)
}
