// Package client is the HTTP consumer of the coordination backend. It
// covers the full API surface: room rendezvous, preference sync, scene
// generation, model management, free-form completion and the audio
// endpoints.
package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/scenarch/scenarch/pkg/domain"
	"github.com/scenarch/scenarch/pkg/room"
)

// Client talks to the coordination backend. The zero value is not usable;
// create one with New.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a backend client. A nil httpClient uses http.DefaultClient,
// leaving timeouts to the transport defaults.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimSuffix(baseURL, "/"), http: httpClient}
}

// RoomResult is the response to a create or join call.
type RoomResult struct {
	Code   string `json:"room_code"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

// GenerateResult is a generated scene plus the merged data that produced it.
type GenerateResult struct {
	Scene  string      `json:"scene"`
	Merged room.Merged `json:"merged_data"`
}

// Health reports the backend's view of its downstream services.
type Health struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

// CreateRoom opens a new rendezvous room and returns its code.
func (c *Client) CreateRoom(ctx context.Context) (RoomResult, error) {
	var out RoomResult
	err := c.postJSON(ctx, "/api/room", map[string]any{}, &out)
	return out, err
}

// JoinRoom joins an existing room by code.
func (c *Client) JoinRoom(ctx context.Context, code string) (RoomResult, error) {
	var out RoomResult
	err := c.postJSON(ctx, "/api/room", map[string]any{"room_code": code}, &out)
	return out, err
}

// LeaveRoom closes the room.
func (c *Client) LeaveRoom(ctx context.Context, code string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/api/room/"+code, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.do(req, nil)
}

// RoomStatus returns how many partners are connected to the room.
func (c *Client) RoomStatus(ctx context.Context, code string) (room.Status, error) {
	var out room.Status
	err := c.getJSON(ctx, "/api/room/"+code, &out)
	return out, err
}

// Sync pushes a participant's selection state to the room.
func (c *Client) Sync(ctx context.Context, code, userID string, sel room.Selection) error {
	return c.postJSON(ctx, "/api/sync/"+code+"/"+userID, sel, nil)
}

// GenerateRoom asks the backend to merge the room's synced selections and
// generate a scene.
func (c *Client) GenerateRoom(ctx context.Context, code string) (GenerateResult, error) {
	var out GenerateResult
	err := c.postJSON(ctx, "/api/generate/"+code, map[string]any{"solo": false}, &out)
	return out, err
}

// GenerateSolo generates a scene from a directly supplied selection without
// a room.
func (c *Client) GenerateSolo(ctx context.Context, sel room.Selection) (GenerateResult, error) {
	var out GenerateResult
	body := map[string]any{"solo": true, "user_data": sel}
	err := c.postJSON(ctx, "/api/generate/SOLO", body, &out)
	return out, err
}

// Models lists the model tags available on the generation backend.
func (c *Client) Models(ctx context.Context) ([]string, error) {
	var out struct {
		Models []string `json:"models"`
	}
	if err := c.getJSON(ctx, "/api/models/tags", &out); err != nil {
		return nil, err
	}
	return out.Models, nil
}

// ModelFiles lists the GGUF files available for loading.
func (c *Client) ModelFiles(ctx context.Context) ([]string, error) {
	var out struct {
		Files []string `json:"files"`
	}
	if err := c.getJSON(ctx, "/api/models/files", &out); err != nil {
		return nil, err
	}
	return out.Files, nil
}

// LoadModel registers a GGUF file under a model name.
func (c *Client) LoadModel(ctx context.Context, filename, modelName string) error {
	body := map[string]any{"filename": filename, "model_name": modelName}
	return c.postJSON(ctx, "/api/models/load", body, nil)
}

type completeRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model,omitempty"`
	domain.SamplingParams
}

// Complete submits free-form text with sampling parameters and returns the
// continuation.
func (c *Client) Complete(ctx context.Context, prompt, model string, params domain.SamplingParams) (string, error) {
	var out struct {
		Text string `json:"text"`
	}
	req := completeRequest{Prompt: prompt, Model: model, SamplingParams: params}
	if err := c.postJSON(ctx, "/api/llm", req, &out); err != nil {
		return "", err
	}
	return out.Text, nil
}

// Synthesize converts text to audio and returns the decoded audio bytes.
func (c *Client) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	var out struct {
		Audio  string `json:"audio"`
		Format string `json:"format"`
	}
	body := map[string]any{"text": text, "voice": voice}
	if err := c.postJSON(ctx, "/api/tts", body, &out); err != nil {
		return nil, err
	}
	audio, err := base64.StdEncoding.DecodeString(out.Audio)
	if err != nil {
		return nil, fmt.Errorf("decode audio payload: %w", err)
	}
	return audio, nil
}

// Transcribe uploads audio and returns the recognized text. Both the
// "text" and legacy "transcript" response fields are accepted.
func (c *Client) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return "", fmt.Errorf("copy audio: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/stt", &buf)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out struct {
		Text       string `json:"text"`
		Transcript string `json:"transcript"`
	}
	if err := c.do(req, &out); err != nil {
		return "", err
	}
	if out.Text != "" {
		return out.Text, nil
	}
	return out.Transcript, nil
}

// HealthCheck queries the backend's service connectivity report.
func (c *Client) HealthCheck(ctx context.Context) (Health, error) {
	var out Health
	err := c.getJSON(ctx, "/api/health", &out)
	return out, err
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body, nothing useful on close error

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s %s: status %d: %s", req.Method, req.URL.Path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
