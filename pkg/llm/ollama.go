package llm

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-pkgz/lgr"
	"github.com/ollama/ollama/api"
)

// Ollama talks to an Ollama server over its native API. The native API is
// preferred over the OpenAI-compatible shim because it exposes the full set
// of sampling knobs (top_k, min_p, num_ctx, repeat_penalty) and model
// management.
type Ollama struct {
	client *api.Client
	model  string
}

// NewOllama creates an Ollama provider for the given base URL, e.g.
// "http://localhost:11434". A trailing /v1 suffix is tolerated and removed.
func NewOllama(endpoint, model string) (*Ollama, error) {
	endpoint = strings.TrimSuffix(strings.TrimSuffix(endpoint, "/"), "/v1")
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse ollama endpoint %q: %w", endpoint, err)
	}
	return &Ollama{client: api.NewClient(parsed, http.DefaultClient), model: model}, nil
}

// Generate sends the prompt to Ollama and returns the completed text.
func (o *Ollama) Generate(ctx context.Context, req Request) (string, error) {
	model := req.Model
	if model == "" {
		model = o.model
	}

	stream := false
	apiReq := &api.GenerateRequest{
		Model:  model,
		Prompt: req.Prompt,
		Stream: &stream,
		Options: map[string]any{
			"temperature":       req.Params.Temperature,
			"num_predict":       req.Params.MaxTokens,
			"top_p":             req.Params.TopP,
			"top_k":             req.Params.TopK,
			"min_p":             req.Params.MinP,
			"num_ctx":           req.Params.ContextLength,
			"repeat_penalty":    req.Params.RepeatPenalty,
			"frequency_penalty": req.Params.FrequencyPenalty,
			"presence_penalty":  req.Params.PresencePenalty,
		},
	}

	var out strings.Builder
	err := o.client.Generate(ctx, apiReq, func(resp api.GenerateResponse) error {
		out.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama generate with model %s: %w", model, err)
	}
	return Sanitize(out.String()), nil
}

// Models lists the model tags currently available on the server.
func (o *Ollama) Models(ctx context.Context) ([]string, error) {
	resp, err := o.client.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list ollama models: %w", err)
	}
	names := make([]string, 0, len(resp.Models))
	for _, m := range resp.Models {
		names = append(names, m.Name)
	}
	sort.Strings(names)
	return names, nil
}

// Load registers a local GGUF file with the Ollama server under the given
// model name. The file is uploaded as a blob first so the server does not
// need filesystem access to the models directory.
func (o *Ollama) Load(ctx context.Context, path, name string) error {
	digest, err := blobDigest(path)
	if err != nil {
		return err
	}

	f, err := os.Open(path) //nolint:gosec // path is validated by the caller against the models dir
	if err != nil {
		return fmt.Errorf("open model file: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	if err := o.client.CreateBlob(ctx, digest, f); err != nil {
		return fmt.Errorf("upload model blob: %w", err)
	}

	stream := false
	createReq := &api.CreateRequest{
		Model:  name,
		Files:  map[string]string{filepath.Base(path): digest},
		Stream: &stream,
	}
	err = o.client.Create(ctx, createReq, func(resp api.ProgressResponse) error {
		if resp.Status != "" {
			lgr.Printf("[DEBUG] ollama create %s: %s", name, resp.Status)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("create model %s: %w", name, err)
	}
	return nil
}

// blobDigest computes the sha256 digest string Ollama expects for a blob
// upload.
func blobDigest(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // path is validated by the caller against the models dir
	if err != nil {
		return "", fmt.Errorf("open model file: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash model file: %w", err)
	}
	return fmt.Sprintf("sha256:%x", h.Sum(nil)), nil
}

// ListModelFiles returns the GGUF filenames in dir, sorted. A missing
// directory yields an empty list rather than an error.
func ListModelFiles(dir string) ([]string, error) {
	if dir == "" {
		return nil, nil
	}
	matches, err := filepath.Glob(filepath.Join(dir, "*.gguf"))
	if err != nil {
		return nil, fmt.Errorf("glob model files: %w", err)
	}
	files := make([]string, 0, len(matches))
	for _, m := range matches {
		files = append(files, filepath.Base(m))
	}
	sort.Strings(files)
	return files, nil
}
