package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesize(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/audio/speech", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("MP3DATA"))
	}))
	defer server.Close()

	svc := New(Config{TTSEndpoint: server.URL + "/v1"})

	audio, err := svc.Synthesize(context.Background(), "read this aloud", "default")
	require.NoError(t, err)
	assert.Equal(t, []byte("MP3DATA"), audio)
	assert.Equal(t, "read this aloud", gotBody["input"])
	assert.Equal(t, "tts-1", gotBody["model"])
	assert.Equal(t, "alloy", gotBody["voice"], "default voice mapped")
}

func TestSynthesizeClipsLongText(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte("x"))
	}))
	defer server.Close()

	svc := New(Config{TTSEndpoint: server.URL + "/v1"})

	long := strings.Repeat("a", 2000)
	_, err := svc.Synthesize(context.Background(), long, "nova")
	require.NoError(t, err)
	input, ok := gotBody["input"].(string)
	require.True(t, ok)
	assert.Len(t, input, 500, "text clipped to the synthesis limit")
}

func TestSynthesizeErrors(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		svc := New(Config{})
		_, err := svc.Synthesize(context.Background(), "hello", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not configured")
	})

	t.Run("empty text", func(t *testing.T) {
		svc := New(Config{TTSEndpoint: "http://localhost:1/v1"})
		_, err := svc.Synthesize(context.Background(), "   ", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty text")
	})
}

func TestTranscribe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/audio/transcriptions", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "whisper-1", r.FormValue("model"))

		f, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "clip.wav", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"text": " whispered words "})
	}))
	defer server.Close()

	svc := New(Config{STTEndpoint: server.URL + "/v1"})

	text, err := svc.Transcribe(context.Background(), bytes.NewReader([]byte("WAVDATA")), "clip.wav")
	require.NoError(t, err)
	assert.Equal(t, "whispered words", text, "trimmed")
}

func TestPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/models", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	}))
	defer server.Close()

	t.Run("reachable", func(t *testing.T) {
		svc := New(Config{TTSEndpoint: server.URL + "/v1", STTEndpoint: server.URL + "/v1"})
		assert.NoError(t, svc.PingTTS(context.Background()))
		assert.NoError(t, svc.PingSTT(context.Background()))
	})

	t.Run("unreachable", func(t *testing.T) {
		svc := New(Config{TTSEndpoint: "http://127.0.0.1:1/v1"})
		err := svc.PingTTS(context.Background())
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotConfigured)
	})

	t.Run("not configured", func(t *testing.T) {
		svc := New(Config{TTSEndpoint: server.URL + "/v1"})
		err := svc.PingSTT(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotConfigured)
	})
}

func TestTranscribeNotConfigured(t *testing.T) {
	svc := New(Config{TTSEndpoint: "http://localhost:1/v1"})
	_, err := svc.Transcribe(context.Background(), bytes.NewReader(nil), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
