package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenarch/scenarch/pkg/domain"
	"github.com/scenarch/scenarch/pkg/llm"
	"github.com/scenarch/scenarch/pkg/room"
	"github.com/scenarch/scenarch/pkg/speech"
	"github.com/scenarch/scenarch/server/mocks"
)

func testConfig(modelsDir string) *mocks.ConfigProviderMock {
	return &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) { return ":8080", 30 * time.Second },
		ModelsDirFunc:       func() string { return modelsDir },
		DefaultModelFunc:    func() string { return "dolphin-mistral" },
	}
}

func TestServer_roomHandler(t *testing.T) {
	rooms := &mocks.RoomsMock{
		CreateFunc: func() string { return "AB12" },
		JoinFunc: func(code string) (string, error) {
			if code == "AB12" {
				return "AB12", nil
			}
			return "", room.ErrNotFound
		},
	}
	srv := New(testConfig(""), rooms, &mocks.GeneratorMock{}, nil, nil, "test", false)

	t.Run("create", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/room", strings.NewReader(`{}`))
		w := httptest.NewRecorder()
		srv.roomHandler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "AB12", resp["room_code"])
		assert.Equal(t, "host", resp["role"])
		assert.Equal(t, "created", resp["status"])
	})

	t.Run("join", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/room", strings.NewReader(`{"room_code":"AB12"}`))
		w := httptest.NewRecorder()
		srv.roomHandler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "partner", resp["role"])
		assert.Equal(t, "joined", resp["status"])
	})

	t.Run("join unknown room", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/room", strings.NewReader(`{"room_code":"ZZZZ"}`))
		w := httptest.NewRecorder()
		srv.roomHandler(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("bad body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/room", strings.NewReader(`{broken`))
		w := httptest.NewRecorder()
		srv.roomHandler(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestServer_roomStatusAndClose(t *testing.T) {
	rooms := &mocks.RoomsMock{
		StatusFunc: func(code string) (room.Status, error) {
			if code != "AB12" {
				return room.Status{}, room.ErrNotFound
			}
			return room.Status{Code: "AB12", PartnersConnected: 2, PartnerIDs: []string{"a", "b"}}, nil
		},
		CloseFunc: func(code string) error { return nil },
	}
	srv := New(testConfig(""), rooms, &mocks.GeneratorMock{}, nil, nil, "test", false)

	t.Run("status", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/room/AB12", http.NoBody)
		req.SetPathValue("code", "AB12")
		w := httptest.NewRecorder()
		srv.roomStatusHandler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp room.Status
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.PartnersConnected)
	})

	t.Run("status unknown", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/room/ZZZZ", http.NoBody)
		req.SetPathValue("code", "ZZZZ")
		w := httptest.NewRecorder()
		srv.roomStatusHandler(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("close", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/room/AB12", http.NoBody)
		req.SetPathValue("code", "AB12")
		w := httptest.NewRecorder()
		srv.roomCloseHandler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		require.Len(t, rooms.CloseCalls(), 1)
		assert.Equal(t, "AB12", rooms.CloseCalls()[0].Code)
	})
}

func TestServer_syncHandler(t *testing.T) {
	rooms := &mocks.RoomsMock{
		SyncFunc: func(code, userID string, sel room.Selection) (int, error) {
			assert.Equal(t, "AB12", code)
			assert.Equal(t, "user-1", userID)
			assert.Equal(t, "dom", sel.Role)
			return 2, nil
		},
	}
	srv := New(testConfig(""), rooms, &mocks.GeneratorMock{}, nil, nil, "test", false)

	body := `{"role":"dom","intensity":"weird","inventory":["rope"],"outfit":[],"kinks":["bondage"]}`
	req := httptest.NewRequest("POST", "/sync/AB12/user-1", strings.NewReader(body))
	req.SetPathValue("code", "AB12")
	req.SetPathValue("userID", "user-1")
	w := httptest.NewRecorder()
	srv.syncHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "synced", resp["status"])
	assert.InEpsilon(t, 2, resp["partners_ready"], 1e-9)
}

func TestServer_generateHandler(t *testing.T) {
	rooms := &mocks.RoomsMock{
		MergeFunc: func(code string) (room.Merged, error) {
			if code == "EMPT" {
				return room.Merged{}, room.ErrEmpty
			}
			return room.Merged{
				Intensity: domain.IntensityWeird,
				Roles:     []string{"dom", "sub"},
				Toys:      []string{"cuffs", "rope"},
				Kinks:     []string{"bondage"},
			}, nil
		},
	}
	generator := &mocks.GeneratorMock{
		GenerateFunc: func(ctx context.Context, req llm.Request) (string, error) {
			assert.Contains(t, req.Prompt, "PREFERRED (Must Include): cuffs, rope")
			assert.Contains(t, req.Prompt, "Intensity Level: weird")
			return "a generated scene", nil
		},
	}
	srv := New(testConfig(""), rooms, generator, nil, nil, "test", false)

	t.Run("room generation", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/generate/AB12", strings.NewReader(`{"solo":false}`))
		req.SetPathValue("code", "AB12")
		w := httptest.NewRecorder()
		srv.generateHandler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Scene  string      `json:"scene"`
			Merged room.Merged `json:"merged_data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "a generated scene", resp.Scene)
		assert.Equal(t, []string{"cuffs", "rope"}, resp.Merged.Toys)
	})

	t.Run("solo generation bypasses the room", func(t *testing.T) {
		body := `{"solo":true,"user_data":{"role":"switch","intensity":"casual","inventory":["blindfold"],"outfit":[],"kinks":[]}}`
		req := httptest.NewRequest("POST", "/generate/SOLO", strings.NewReader(body))
		req.SetPathValue("code", "SOLO")
		w := httptest.NewRecorder()

		mergeCallsBefore := len(rooms.MergeCalls())
		gen := &mocks.GeneratorMock{
			GenerateFunc: func(ctx context.Context, req llm.Request) (string, error) {
				assert.Contains(t, req.Prompt, "blindfold")
				return "solo scene", nil
			},
		}
		soloSrv := New(testConfig(""), rooms, gen, nil, nil, "test", false)
		soloSrv.generateHandler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, rooms.MergeCalls(), mergeCallsBefore, "room merge not consulted for solo")
	})

	t.Run("empty room", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/generate/EMPT", strings.NewReader(`{}`))
		req.SetPathValue("code", "EMPT")
		w := httptest.NewRecorder()
		srv.generateHandler(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("generator failure", func(t *testing.T) {
		gen := &mocks.GeneratorMock{
			GenerateFunc: func(ctx context.Context, req llm.Request) (string, error) {
				return "", errors.New("model unavailable")
			},
		}
		failSrv := New(testConfig(""), rooms, gen, nil, nil, "test", false)
		req := httptest.NewRequest("POST", "/generate/AB12", strings.NewReader(`{}`))
		req.SetPathValue("code", "AB12")
		w := httptest.NewRecorder()
		failSrv.generateHandler(w, req)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestServer_modelHandlers(t *testing.T) {
	modelsDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(modelsDir, "local.gguf"), []byte("x"), 0o600))

	generator := &mocks.GeneratorMock{
		ModelsFunc: func(ctx context.Context) ([]string, error) {
			return []string{"dolphin-mistral:latest"}, nil
		},
	}

	loaded := make(map[string]string)
	loader := loaderFunc(func(ctx context.Context, path, name string) error {
		loaded[name] = path
		return nil
	})
	srv := New(testConfig(modelsDir), &mocks.RoomsMock{}, generator, loader, nil, "test", false)

	t.Run("tags", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/models/tags", http.NoBody)
		w := httptest.NewRecorder()
		srv.modelTagsHandler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp map[string][]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, []string{"dolphin-mistral:latest"}, resp["models"])
	})

	t.Run("tags backend down reports in-band", func(t *testing.T) {
		gen := &mocks.GeneratorMock{
			ModelsFunc: func(ctx context.Context) ([]string, error) { return nil, errors.New("unreachable") },
		}
		downSrv := New(testConfig(modelsDir), &mocks.RoomsMock{}, gen, nil, nil, "test", false)
		req := httptest.NewRequest("GET", "/models/tags", http.NoBody)
		w := httptest.NewRecorder()
		downSrv.modelTagsHandler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Empty(t, resp["models"])
		assert.Contains(t, resp["error"], "unreachable")
	})

	t.Run("files", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/models/files", http.NoBody)
		w := httptest.NewRecorder()
		srv.modelFilesHandler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp map[string][]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, []string{"local.gguf"}, resp["files"])
	})

	t.Run("load", func(t *testing.T) {
		body := `{"filename":"local.gguf","model_name":"custom"}`
		req := httptest.NewRequest("POST", "/models/load", strings.NewReader(body))
		w := httptest.NewRecorder()
		srv.modelLoadHandler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, filepath.Join(modelsDir, "local.gguf"), loaded["custom"])
	})

	t.Run("load missing file", func(t *testing.T) {
		body := `{"filename":"nope.gguf","model_name":"custom"}`
		req := httptest.NewRequest("POST", "/models/load", strings.NewReader(body))
		w := httptest.NewRecorder()
		srv.modelLoadHandler(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("load rejects path escape", func(t *testing.T) {
		body := `{"filename":"../secrets.gguf","model_name":"custom"}`
		req := httptest.NewRequest("POST", "/models/load", strings.NewReader(body))
		w := httptest.NewRecorder()
		srv.modelLoadHandler(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("load without loader", func(t *testing.T) {
		noLoader := New(testConfig(modelsDir), &mocks.RoomsMock{}, generator, nil, nil, "test", false)
		body := `{"filename":"local.gguf","model_name":"custom"}`
		req := httptest.NewRequest("POST", "/models/load", strings.NewReader(body))
		w := httptest.NewRecorder()
		noLoader.modelLoadHandler(w, req)
		assert.Equal(t, http.StatusNotImplemented, w.Code)
	})
}

// loaderFunc adapts a function to the ModelLoader interface
type loaderFunc func(ctx context.Context, path, name string) error

func (f loaderFunc) Load(ctx context.Context, path, name string) error { return f(ctx, path, name) }

func TestServer_llmHandler(t *testing.T) {
	generator := &mocks.GeneratorMock{
		GenerateFunc: func(ctx context.Context, req llm.Request) (string, error) {
			return "continuation text", nil
		},
	}
	srv := New(testConfig(""), &mocks.RoomsMock{}, generator, nil, nil, "test", false)

	t.Run("generates with defaults filled in", func(t *testing.T) {
		body := `{"prompt":"continue the story","temperature":0.7}`
		req := httptest.NewRequest("POST", "/llm", strings.NewReader(body))
		w := httptest.NewRecorder()
		srv.llmHandler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "continuation text", resp["text"])
		assert.Equal(t, "dolphin-mistral", resp["model"], "default model applied")
		assert.Equal(t, true, resp["done"])

		require.Len(t, generator.GenerateCalls(), 1)
		params := generator.GenerateCalls()[0].Req.Params
		assert.InEpsilon(t, 0.7, params.Temperature, 1e-9, "explicit value kept")
		assert.Equal(t, 4096, params.MaxTokens, "missing value defaulted")
		assert.Equal(t, 16384, params.ContextLength)
	})

	t.Run("empty prompt rejected", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/llm", strings.NewReader(`{"prompt":"  "}`))
		w := httptest.NewRecorder()
		srv.llmHandler(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestServer_audioHandlers(t *testing.T) {
	sp := &mocks.SpeechMock{
		SynthesizeFunc: func(ctx context.Context, text, voice string) ([]byte, error) {
			assert.Equal(t, "speak this", text)
			return []byte("MP3DATA"), nil
		},
		TranscribeFunc: func(ctx context.Context, audio io.Reader, filename string) (string, error) {
			data, err := io.ReadAll(audio)
			require.NoError(t, err)
			assert.Equal(t, "WAVDATA", string(data))
			assert.Equal(t, "clip.wav", filename)
			return "spoken words", nil
		},
	}
	srv := New(testConfig(""), &mocks.RoomsMock{}, &mocks.GeneratorMock{}, nil, sp, "test", false)

	t.Run("tts", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/tts", strings.NewReader(`{"text":"speak this","voice":"default"}`))
		w := httptest.NewRecorder()
		srv.ttsHandler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("MP3DATA")), resp["audio"])
		assert.Equal(t, "mp3", resp["format"])
	})

	t.Run("stt", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("file", "clip.wav")
		require.NoError(t, err)
		_, err = part.Write([]byte("WAVDATA"))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest("POST", "/stt", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w := httptest.NewRecorder()
		srv.sttHandler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "spoken words", resp["text"])
	})

	t.Run("speech not configured", func(t *testing.T) {
		bare := New(testConfig(""), &mocks.RoomsMock{}, &mocks.GeneratorMock{}, nil, nil, "test", false)
		req := httptest.NewRequest("POST", "/tts", strings.NewReader(`{"text":"x"}`))
		w := httptest.NewRecorder()
		bare.ttsHandler(w, req)
		assert.Equal(t, http.StatusNotImplemented, w.Code)
	})
}

func TestServer_healthHandler(t *testing.T) {
	generator := &mocks.GeneratorMock{
		ModelsFunc: func(ctx context.Context) ([]string, error) { return []string{"m"}, nil },
	}

	t.Run("all directions checked", func(t *testing.T) {
		sp := &mocks.SpeechMock{
			PingTTSFunc: func(ctx context.Context) error { return nil },
			PingSTTFunc: func(ctx context.Context) error { return errors.New("whisper down") },
		}
		srv := New(testConfig(""), &mocks.RoomsMock{}, generator, nil, sp, "test", false)

		req := httptest.NewRequest("GET", "/health", http.NoBody)
		w := httptest.NewRecorder()
		srv.healthHandler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Status   string            `json:"status"`
			Services map[string]string `json:"services"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "running", resp.Status)
		assert.Equal(t, "connected", resp.Services["llm"])
		assert.Equal(t, "connected", resp.Services["tts"])
		assert.Equal(t, "unavailable", resp.Services["stt"])
		assert.Len(t, sp.PingTTSCalls(), 1)
		assert.Len(t, sp.PingSTTCalls(), 1)
	})

	t.Run("one direction not configured", func(t *testing.T) {
		sp := &mocks.SpeechMock{
			PingTTSFunc: func(ctx context.Context) error { return nil },
			PingSTTFunc: func(ctx context.Context) error { return fmt.Errorf("stt: %w", speech.ErrNotConfigured) },
		}
		srv := New(testConfig(""), &mocks.RoomsMock{}, generator, nil, sp, "test", false)

		req := httptest.NewRequest("GET", "/health", http.NoBody)
		w := httptest.NewRecorder()
		srv.healthHandler(w, req)

		var resp struct {
			Services map[string]string `json:"services"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "connected", resp.Services["tts"])
		assert.Equal(t, "not_configured", resp.Services["stt"])
	})

	t.Run("no speech service", func(t *testing.T) {
		srv := New(testConfig(""), &mocks.RoomsMock{}, generator, nil, nil, "test", false)

		req := httptest.NewRequest("GET", "/health", http.NoBody)
		w := httptest.NewRecorder()
		srv.healthHandler(w, req)

		var resp struct {
			Services map[string]string `json:"services"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "not_configured", resp.Services["tts"])
		assert.Equal(t, "not_configured", resp.Services["stt"])
	})
}
