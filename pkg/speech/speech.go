// Package speech wraps the audio side services: text-to-speech synthesis
// and speech-to-text transcription. Both talk to OpenAI-compatible
// endpoints, which local engines such as Kokoro and Whisper shims expose.
package speech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// maxClipChars bounds the text sent for synthesis; longer inputs are cut at
// the limit to keep clip latency predictable.
const maxClipChars = 500

// ErrNotConfigured is returned when the requested audio direction has no
// endpoint set.
var ErrNotConfigured = errors.New("speech service not configured")

// Service provides speech synthesis and transcription.
type Service struct {
	tts *openai.Client
	stt *openai.Client

	ttsModel string
	sttModel string
}

// Config holds the endpoints and models for both audio directions. Empty
// endpoints disable the corresponding direction.
type Config struct {
	TTSEndpoint string
	TTSModel    string
	STTEndpoint string
	STTModel    string
	APIKey      string
}

// New creates the speech service.
func New(cfg Config) *Service {
	svc := &Service{ttsModel: cfg.TTSModel, sttModel: cfg.STTModel}
	if svc.ttsModel == "" {
		svc.ttsModel = "tts-1"
	}
	if svc.sttModel == "" {
		svc.sttModel = "whisper-1"
	}

	if cfg.TTSEndpoint != "" {
		c := openai.DefaultConfig(cfg.APIKey)
		c.BaseURL = cfg.TTSEndpoint
		svc.tts = openai.NewClientWithConfig(c)
	}
	if cfg.STTEndpoint != "" {
		c := openai.DefaultConfig(cfg.APIKey)
		c.BaseURL = cfg.STTEndpoint
		svc.stt = openai.NewClientWithConfig(c)
	}
	return svc
}

// Synthesize converts text to spoken audio and returns the raw audio bytes.
// Text beyond the clip limit is truncated, not rejected.
func (s *Service) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	if s.tts == nil {
		return nil, fmt.Errorf("tts: %w", ErrNotConfigured)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("empty text")
	}
	if len(text) > maxClipChars {
		text = text[:maxClipChars]
	}
	if voice == "" || voice == "default" {
		voice = string(openai.VoiceAlloy)
	}

	resp, err := s.tts.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model: openai.SpeechModel(s.ttsModel),
		Input: text,
		Voice: openai.SpeechVoice(voice),
	})
	if err != nil {
		return nil, fmt.Errorf("synthesize speech: %w", err)
	}
	defer resp.Close() //nolint:errcheck // fully consumed below

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("read audio stream: %w", err)
	}
	return audio, nil
}

// PingTTS checks that the synthesis endpoint answers. Returns
// ErrNotConfigured when no endpoint is set.
func (s *Service) PingTTS(ctx context.Context) error {
	if s.tts == nil {
		return fmt.Errorf("tts: %w", ErrNotConfigured)
	}
	if _, err := s.tts.ListModels(ctx); err != nil {
		return fmt.Errorf("tts endpoint unreachable: %w", err)
	}
	return nil
}

// PingSTT checks that the transcription endpoint answers. Returns
// ErrNotConfigured when no endpoint is set.
func (s *Service) PingSTT(ctx context.Context) error {
	if s.stt == nil {
		return fmt.Errorf("stt: %w", ErrNotConfigured)
	}
	if _, err := s.stt.ListModels(ctx); err != nil {
		return fmt.Errorf("stt endpoint unreachable: %w", err)
	}
	return nil
}

// Transcribe converts spoken audio to text. The filename hints the audio
// container format to the transcription engine.
func (s *Service) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	if s.stt == nil {
		return "", fmt.Errorf("stt: %w", ErrNotConfigured)
	}
	if filename == "" {
		filename = "audio.wav"
	}

	resp, err := s.stt.CreateTranscription(ctx, openai.AudioRequest{
		Model:    s.sttModel,
		Reader:   audio,
		FilePath: filename,
	})
	if err != nil {
		return "", fmt.Errorf("transcribe audio: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}
