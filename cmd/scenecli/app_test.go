package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenarch/scenarch/pkg/client"
	"github.com/scenarch/scenarch/pkg/prefs"
	"github.com/scenarch/scenarch/pkg/repository"
	"github.com/scenarch/scenarch/pkg/session"
)

func setupApp(t *testing.T, backend http.Handler) (*App, *bytes.Buffer) {
	t.Helper()

	repos, err := repository.NewRepositories(context.Background(), repository.Config{
		DSN: ":memory:", MaxOpenConns: 1, MaxIdleConns: 1, ConnMaxLifetime: 30 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	store := prefs.NewStore(repos.Setting)
	require.NoError(t, store.Load(context.Background()))

	ts := httptest.NewServer(backend)
	t.Cleanup(ts.Close)

	api := client.New(ts.URL, nil)
	out := &bytes.Buffer{}
	app := &App{
		prefs: store,
		coord: session.NewCoordinator(store, api, session.Config{}),
		api:   api,
		repos: repos,
		name:  "alex",
		out:   out,
	}
	return app, out
}

func TestApp_SoloSession(t *testing.T) {
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/llm", r.URL.Path)
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req["prompt"], "ACCEPTED (Optional): rope")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"text": "a generated scene", "model": "m", "done": true}) //nolint:errcheck // test response
	})
	app, out := setupApp(t, backend)

	script := strings.Join([]string{
		"role dom",
		"intensity weird",
		"cycle toys rope",
		"show",
		"prompt",
		"generate",
		"save test scene",
		"list",
		"quit",
	}, "\n")

	require.NoError(t, app.Run(context.Background(), strings.NewReader(script)))

	output := out.String()
	assert.Contains(t, output, "rope: okay")
	assert.Contains(t, output, "[okay] rope")
	assert.Contains(t, output, "role: dom, intensity: weird")
	assert.Contains(t, output, "Intensity Level: weird")
	assert.Contains(t, output, "a generated scene")
	assert.Contains(t, output, "saved")
	assert.Contains(t, output, "test scene")
}

func TestApp_TogetherSession(t *testing.T) {
	var prompt string
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/llm", r.URL.Path)
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		prompt = req["prompt"].(string)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"text": "a paired scene", "done": true}) //nolint:errcheck // test response
	})
	app, out := setupApp(t, backend)

	script := strings.Join([]string{
		"nogo custom-limit",
		"together start",
		"show",
		"role dom",
		"cycle toys rope",
		"together pass alex",
		"together handoff",
		"role sub",
		"cycle toys gag",
		"together done sam",
		"generate",
		"quit",
	}, "\n")
	require.NoError(t, app.Run(context.Background(), strings.NewReader(script)))

	output := out.String()
	assert.Contains(t, output, "selections cleared, first participant's turn")
	assert.Contains(t, output, "session: together:first-participant")
	assert.Contains(t, output, "[ ] rope", "entry left every item untagged")
	assert.Contains(t, output, "hand the device over")
	assert.Contains(t, output, "a paired scene")

	assert.Contains(t, prompt, "alex (dom), sam (sub)")
	assert.Contains(t, prompt, "PREFERRED (Must Include): gag, rope")
	assert.Contains(t, prompt, "custom-limit", "no-go list survives the together entry")
}

func TestApp_Errors(t *testing.T) {
	app, out := setupApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	script := strings.Join([]string{
		"bogus",
		"cycle nowhere Rope",
		"save",
		"quit",
	}, "\n")
	require.NoError(t, app.Run(context.Background(), strings.NewReader(script)))

	output := out.String()
	assert.Contains(t, output, `unknown command "bogus"`)
	assert.Contains(t, output, `unknown category "nowhere"`)
	assert.Contains(t, output, "nothing to save")
}

func TestApp_TemplatesAndContinue(t *testing.T) {
	var prompts []string
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		prompts = append(prompts, req["prompt"].(string))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"text": "next chapter", "done": true}) //nolint:errcheck // test response
	})
	app, out := setupApp(t, backend)

	tplFile := filepath.Join(t.TempDir(), "noir.txt")
	require.NoError(t, os.WriteFile(tplFile, []byte("Noir scene at {intensity} with {participants}."), 0o600))

	script := strings.Join([]string{
		"template save noir " + tplFile,
		"template list",
		"generate",
		"continue make it rain",
		"template clear",
		"quit",
	}, "\n")
	require.NoError(t, app.Run(context.Background(), strings.NewReader(script)))

	output := out.String()
	assert.Contains(t, output, "saved template")
	assert.Contains(t, output, "noir")
	assert.Contains(t, output, "next chapter")
	assert.Contains(t, output, "default template restored")

	require.Len(t, prompts, 2)
	assert.Contains(t, prompts[1], "Previous scene:")
	assert.Contains(t, prompts[1], "make it rain")
	assert.Equal(t, "next chapter", app.prefs.Summary()[len(app.prefs.Summary())-len("next chapter"):])
}

func TestApp_ExportImport(t *testing.T) {
	app, out := setupApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	file := filepath.Join(t.TempDir(), "backup.json")

	script := strings.Join([]string{
		"role sub",
		"export " + file,
		"role dom",
		"import " + file,
		"show",
		"quit",
	}, "\n")
	require.NoError(t, app.Run(context.Background(), strings.NewReader(script)))

	data, err := os.ReadFile(file) //nolint:gosec // test temp file
	require.NoError(t, err)
	assert.Contains(t, string(data), "sub")

	// the import restored the role saved in the bundle
	assert.Contains(t, out.String(), "role: sub")
}
