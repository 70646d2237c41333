package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenarch/scenarch/pkg/domain"
	"github.com/scenarch/scenarch/pkg/room"
)

func TestClientRooms(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/room":
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			if code, ok := body["room_code"].(string); ok && code != "" {
				_ = json.NewEncoder(w).Encode(RoomResult{Code: code, Role: "partner", Status: "joined"})
				return
			}
			_ = json.NewEncoder(w).Encode(RoomResult{Code: "AB12", Role: "host", Status: "created"})
		case r.Method == http.MethodGet && r.URL.Path == "/api/room/AB12":
			_ = json.NewEncoder(w).Encode(room.Status{Code: "AB12", PartnersConnected: 2, PartnerIDs: []string{"a", "b"}})
		case r.Method == http.MethodDelete && r.URL.Path == "/api/room/AB12":
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "closed"})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := New(server.URL, nil)
	ctx := context.Background()

	created, err := c.CreateRoom(ctx)
	require.NoError(t, err)
	assert.Equal(t, "AB12", created.Code)
	assert.Equal(t, "host", created.Role)

	joined, err := c.JoinRoom(ctx, "AB12")
	require.NoError(t, err)
	assert.Equal(t, "partner", joined.Role)

	status, err := c.RoomStatus(ctx, "AB12")
	require.NoError(t, err)
	assert.Equal(t, 2, status.PartnersConnected)

	require.NoError(t, c.LeaveRoom(ctx, "AB12"))
}

func TestClientSyncAndGenerate(t *testing.T) {
	var syncedPath string
	var syncedSel room.Selection
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/sync/AB12/user-1":
			syncedPath = r.URL.Path
			require.NoError(t, json.NewDecoder(r.Body).Decode(&syncedSel))
			_ = json.NewEncoder(w).Encode(map[string]any{"status": "synced", "partners_ready": 1})
		case r.URL.Path == "/api/generate/AB12":
			_ = json.NewEncoder(w).Encode(GenerateResult{
				Scene:  "a generated scene",
				Merged: room.Merged{Intensity: domain.IntensityWeird, Toys: []string{"rope"}},
			})
		case r.URL.Path == "/api/generate/SOLO":
			var body struct {
				Solo     bool           `json:"solo"`
				UserData room.Selection `json:"user_data"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.True(t, body.Solo)
			assert.Equal(t, "dom", body.UserData.Role)
			_ = json.NewEncoder(w).Encode(GenerateResult{Scene: "solo scene"})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := New(server.URL, nil)
	ctx := context.Background()

	sel := room.Selection{Role: "dom", Intensity: "weird", Inventory: []string{"rope"}}
	require.NoError(t, c.Sync(ctx, "AB12", "user-1", sel))
	assert.Equal(t, "/api/sync/AB12/user-1", syncedPath)
	assert.Equal(t, sel, syncedSel)

	res, err := c.GenerateRoom(ctx, "AB12")
	require.NoError(t, err)
	assert.Equal(t, "a generated scene", res.Scene)
	assert.Equal(t, []string{"rope"}, res.Merged.Toys)

	solo, err := c.GenerateSolo(ctx, sel)
	require.NoError(t, err)
	assert.Equal(t, "solo scene", solo.Scene)
}

func TestClientModels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/models/tags":
			_ = json.NewEncoder(w).Encode(map[string]any{"models": []string{"mistral:latest"}})
		case "/api/models/files":
			_ = json.NewEncoder(w).Encode(map[string]any{"files": []string{"a.gguf", "b.gguf"}})
		case "/api/models/load":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "a.gguf", body["filename"])
			assert.Equal(t, "custom", body["model_name"])
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "success"})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := New(server.URL, nil)
	ctx := context.Background()

	models, err := c.Models(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"mistral:latest"}, models)

	files, err := c.ModelFiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.gguf", "b.gguf"}, files)

	require.NoError(t, c.LoadModel(ctx, "a.gguf", "custom"))
}

func TestClientComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/llm", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "continue the story", body["prompt"])
		assert.InEpsilon(t, 1.1, body["temperature"], 1e-9)
		assert.InEpsilon(t, 4096, body["max_tokens"], 1e-9)
		_, hasModel := body["model"]
		assert.False(t, hasModel, "empty model omitted")
		_ = json.NewEncoder(w).Encode(map[string]string{"text": "and then..."})
	}))
	defer server.Close()

	c := New(server.URL, nil)
	text, err := c.Complete(context.Background(), "continue the story", "", domain.DefaultSamplingParams())
	require.NoError(t, err)
	assert.Equal(t, "and then...", text)
}

func TestClientAudio(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tts":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "speak this", body["text"])
			_ = json.NewEncoder(w).Encode(map[string]string{
				"audio":  base64.StdEncoding.EncodeToString([]byte("MP3DATA")),
				"format": "mp3",
			})
		case "/api/stt":
			require.NoError(t, r.ParseMultipartForm(1<<20))
			_, header, err := r.FormFile("file")
			require.NoError(t, err)
			assert.Equal(t, "clip.wav", header.Filename)
			_ = json.NewEncoder(w).Encode(map[string]string{"transcript": "spoken words"})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := New(server.URL, nil)
	ctx := context.Background()

	audio, err := c.Synthesize(ctx, "speak this", "default")
	require.NoError(t, err)
	assert.Equal(t, []byte("MP3DATA"), audio)

	text, err := c.Transcribe(ctx, bytes.NewReader([]byte("WAV")), "clip.wav")
	require.NoError(t, err)
	assert.Equal(t, "spoken words", text, "legacy transcript field accepted")
}

func TestClientErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "room not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	c := New(server.URL, nil)
	_, err := c.RoomStatus(context.Background(), "ZZZZ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
	assert.Contains(t, err.Error(), "room not found")
}

func TestClientHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/health", r.URL.Path)
		_ = json.NewEncoder(w).Encode(Health{
			Status:   "running",
			Services: map[string]string{"llm": "connected", "tts": "unavailable"},
		})
	}))
	defer server.Close()

	c := New(server.URL, nil)
	h, err := c.HealthCheck(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "running", h.Status)
	assert.Equal(t, "connected", h.Services["llm"])
}
