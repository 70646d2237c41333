package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/scenarch/scenarch/pkg/catalog"
	"github.com/scenarch/scenarch/pkg/domain"
	"github.com/scenarch/scenarch/pkg/llm"
	"github.com/scenarch/scenarch/pkg/prompt"
	"github.com/scenarch/scenarch/pkg/room"
	"github.com/scenarch/scenarch/pkg/speech"
)

// roomHandler creates a new room or joins an existing one, depending on
// whether the request carries a room code.
func (s *Server) roomHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RoomCode string `json:"room_code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}

	if req.RoomCode == "" {
		code := s.rooms.Create()
		renderJSON(w, r, http.StatusOK, map[string]string{"room_code": code, "role": "host", "status": "created"})
		return
	}

	code, err := s.rooms.Join(req.RoomCode)
	if err != nil {
		renderError(w, r, err, roomErrorCode(err))
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]string{"room_code": code, "role": "partner", "status": "joined"})
}

// roomStatusHandler reports partner count for a room
func (s *Server) roomStatusHandler(w http.ResponseWriter, r *http.Request) {
	status, err := s.rooms.Status(r.PathValue("code"))
	if err != nil {
		renderError(w, r, err, roomErrorCode(err))
		return
	}
	renderJSON(w, r, http.StatusOK, status)
}

// roomCloseHandler deletes a room
func (s *Server) roomCloseHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.rooms.Close(r.PathValue("code")); err != nil {
		renderError(w, r, err, roomErrorCode(err))
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]string{"status": "closed"})
}

// syncHandler stores a participant's selection payload in the room
func (s *Server) syncHandler(w http.ResponseWriter, r *http.Request) {
	var sel room.Selection
	if err := json.NewDecoder(r.Body).Decode(&sel); err != nil {
		renderError(w, r, fmt.Errorf("invalid selection payload"), http.StatusBadRequest)
		return
	}

	ready, err := s.rooms.Sync(r.PathValue("code"), r.PathValue("userID"), sel)
	if err != nil {
		renderError(w, r, err, roomErrorCode(err))
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"status": "synced", "partners_ready": ready})
}

// generateHandler merges the room's selections (or uses a directly supplied
// solo payload), assembles the prompt and generates the scene.
func (s *Server) generateHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Solo     bool            `json:"solo"`
		UserData *room.Selection `json:"user_data"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
			return
		}
	}

	var merged room.Merged
	if req.Solo && req.UserData != nil {
		merged = room.MergeSelections(*req.UserData)
	} else {
		var err error
		merged, err = s.rooms.Merge(r.PathValue("code"))
		if err != nil {
			renderError(w, r, err, roomErrorCode(err))
			return
		}
	}

	text := prompt.Build(mergedData(merged), catalog.DefaultNoGoList(), "").Text
	scene, err := s.generator.Generate(r.Context(), llm.Request{Prompt: text, Params: domain.DefaultSamplingParams()})
	if err != nil {
		log.Printf("[ERROR] scene generation failed: %v", err)
		renderError(w, r, err, http.StatusServiceUnavailable)
		return
	}

	renderJSON(w, r, http.StatusOK, map[string]any{"scene": scene, "merged_data": merged})
}

// mergedData lifts a flat room merge into the tiered prompt structure. The
// wire payload carries no tiers, so everything lands in the preferred set.
func mergedData(m room.Merged) prompt.MergedData {
	return prompt.MergedData{
		Categories: map[domain.Category]domain.Grouped{
			domain.CategoryToys:     {Wants: m.Toys},
			domain.CategoryKinks:    {Wants: m.Kinks},
			domain.CategoryOutfits:  {Wants: m.Outfits},
			domain.CategorySettings: {},
		},
		Roles:     m.Roles,
		Intensity: m.Intensity,
	}
}

// modelTagsHandler lists models available on the generation backend. The
// backend being down is reported in-band with an empty list, matching what
// pollers expect.
func (s *Server) modelTagsHandler(w http.ResponseWriter, r *http.Request) {
	models, err := s.generator.Models(r.Context())
	if err != nil {
		renderJSON(w, r, http.StatusOK, map[string]any{"models": []string{}, "error": err.Error()})
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"models": models})
}

// modelFilesHandler lists GGUF files available for loading
func (s *Server) modelFilesHandler(w http.ResponseWriter, r *http.Request) {
	files, err := llm.ListModelFiles(s.config.ModelsDir())
	if err != nil {
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	if files == nil {
		files = []string{}
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"files": files})
}

// modelLoadHandler registers a GGUF file under a model name
func (s *Server) modelLoadHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Filename  string `json:"filename"`
		ModelName string `json:"model_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}
	if req.Filename == "" || req.ModelName == "" {
		renderError(w, r, fmt.Errorf("filename and model_name required"), http.StatusBadRequest)
		return
	}
	if s.loader == nil {
		renderError(w, r, fmt.Errorf("model loading not supported by the configured provider"), http.StatusNotImplemented)
		return
	}

	// keep the path inside the models directory
	if strings.Contains(req.Filename, "/") || strings.Contains(req.Filename, "\\") || strings.Contains(req.Filename, "..") {
		renderError(w, r, fmt.Errorf("invalid filename"), http.StatusBadRequest)
		return
	}
	path := filepath.Join(s.config.ModelsDir(), req.Filename)
	if _, err := os.Stat(path); err != nil {
		renderError(w, r, fmt.Errorf("file %s not found", req.Filename), http.StatusNotFound)
		return
	}

	if err := s.loader.Load(r.Context(), path, req.ModelName); err != nil {
		log.Printf("[ERROR] model load failed: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]string{"status": "success", "model": req.ModelName})
}

type llmRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model"`
	domain.SamplingParams
}

// llmHandler passes a free-form prompt with sampling parameters to the
// generation backend. Parameters missing from the request keep their stock
// defaults.
func (s *Server) llmHandler(w http.ResponseWriter, r *http.Request) {
	req := llmRequest{SamplingParams: domain.DefaultSamplingParams()}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		renderError(w, r, fmt.Errorf("prompt is required"), http.StatusBadRequest)
		return
	}

	model := req.Model
	if model == "" {
		model = s.config.DefaultModel()
	}

	text, err := s.generator.Generate(r.Context(), llm.Request{Prompt: req.Prompt, Model: model, Params: req.SamplingParams})
	if err != nil {
		log.Printf("[ERROR] llm generation failed: %v", err)
		renderError(w, r, err, http.StatusServiceUnavailable)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"text": text, "model": model, "done": true})
}

// ttsHandler converts text to speech, returning base64 audio
func (s *Server) ttsHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text  string `json:"text"`
		Voice string `json:"voice"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}
	if s.speech == nil {
		renderError(w, r, fmt.Errorf("speech services not configured"), http.StatusNotImplemented)
		return
	}

	audio, err := s.speech.Synthesize(r.Context(), req.Text, req.Voice)
	if err != nil {
		log.Printf("[ERROR] tts failed: %v", err)
		renderError(w, r, err, http.StatusServiceUnavailable)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]string{
		"audio":  base64.StdEncoding.EncodeToString(audio),
		"format": "mp3",
	})
}

// sttHandler transcribes uploaded audio to text
func (s *Server) sttHandler(w http.ResponseWriter, r *http.Request) {
	if s.speech == nil {
		renderError(w, r, fmt.Errorf("speech services not configured"), http.StatusNotImplemented)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		renderError(w, r, fmt.Errorf("audio file required"), http.StatusBadRequest)
		return
	}
	defer file.Close() //nolint:errcheck // read-only upload

	text, err := s.speech.Transcribe(r.Context(), file, header.Filename)
	if err != nil {
		log.Printf("[ERROR] stt failed: %v", err)
		renderError(w, r, err, http.StatusServiceUnavailable)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]string{"text": text})
}

// healthHandler reports reachability of the llm, tts and stt backends
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	services := map[string]string{}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if _, err := s.generator.Models(ctx); err != nil {
		services["llm"] = "unavailable"
	} else {
		services["llm"] = "connected"
	}

	if s.speech == nil {
		services["tts"], services["stt"] = "not_configured", "not_configured"
	} else {
		services["tts"] = speechStatus(s.speech.PingTTS(ctx))
		services["stt"] = speechStatus(s.speech.PingSTT(ctx))
	}

	renderJSON(w, r, http.StatusOK, map[string]any{"status": "running", "services": services})
}

// speechStatus maps a ping result to the health report vocabulary
func speechStatus(err error) string {
	switch {
	case err == nil:
		return "connected"
	case errors.Is(err, speech.ErrNotConfigured):
		return "not_configured"
	default:
		return "unavailable"
	}
}
