package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/privnurse/privnurse/internal/config"
	"github.com/privnurse/privnurse/internal/filestore"
	appErr "github.com/privnurse/privnurse/internal/pkg/errors"
	"github.com/privnurse/privnurse/internal/pkg/logutil"
	"github.com/privnurse/privnurse/internal/repo"
)

var allowedAudioExts = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".flac": true,
	".m4a":  true,
	".ogg":  true,
	".webm": true,
}

// Lead-in phrases the transcription model sometimes prepends despite the
// instruction; stripped case-insensitively, first match only.
var unwantedPrefixes = []string{
	"Okay, here's the transcription of the audio:",
	"Here's the transcription:",
	"Here is the transcription:",
	"Transcription:",
	"Okay,",
	"Sure,",
	"The transcription is:",
	"I've transcribed the following:",
	"The audio says:",
}

const transcribeInstruction = "IMPORTANT: Return ONLY the exact words spoken in the audio. " +
	"Do NOT add phrases like \"Here is the transcription\" or \"Okay\" or any other text. " +
	"Start directly with the first word spoken."

const transcribeSystemPrompt = "You are a medical transcription system. " +
	"Output only the exact spoken words without any additions or modifications."

type transcribeAPIResponse struct {
	GeneratedText  string  `json:"generated_text"`
	Text           string  `json:"text"`
	Transcription  string  `json:"transcription"`
	ProcessingTime float64 `json:"processing_time"`
	ModelVersion   string  `json:"model_version"`
}

type TranscribeResult struct {
	Transcription string  `json:"transcription"`
	AudioKey      string  `json:"audio_key"`
	ProcessingSec float64 `json:"processing_time"`
	ModelVersion  string  `json:"model_version,omitempty"`
}

// TranscribeService calls the external speech-to-text microservice and
// archives the uploaded audio in the file store.
type TranscribeService struct {
	patients *repo.PatientRepo
	store    filestore.Store
	client   *http.Client
	apiURL   string
	apiKey   string
	maxBytes int64
}

func NewTranscribeService(patients *repo.PatientRepo, store filestore.Store, cfg config.AudioConfig) *TranscribeService {
	return &TranscribeService{
		patients: patients,
		store:    store,
		client:   &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		apiURL:   strings.TrimSuffix(cfg.APIURL, "/"),
		apiKey:   cfg.APIKey,
		maxBytes: cfg.MaxUploadBytes,
	}
}

type TranscribeInput struct {
	PatientID  int64
	Filename   string
	Size       int64
	RecordType string
	Context    string
	File       filestore.ReadSeekCloser
}

func (s *TranscribeService) Transcribe(ctx context.Context, in TranscribeInput) (*TranscribeResult, error) {
	patient, err := s.patients.GetByID(ctx, in.PatientID)
	if err != nil {
		return nil, err
	}
	ext := strings.ToLower(filepath.Ext(in.Filename))
	if !allowedAudioExts[ext] {
		return nil, fmt.Errorf("%w: unsupported audio format %q", appErr.ErrInvalid, ext)
	}
	if s.maxBytes > 0 && in.Size > s.maxBytes {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", appErr.ErrInvalid, s.maxBytes)
	}

	contextText := fmt.Sprintf("Patient: %s", patient.Name)
	if in.RecordType != "" {
		contextText += fmt.Sprintf(", Record Type: %s", in.RecordType)
	}
	if in.Context != "" {
		contextText += ", " + in.Context
	}

	result, err := s.callAPI(ctx, in.Filename, in.File, contextText)
	if err != nil {
		return nil, err
	}
	text := firstNonEmpty(result.GeneratedText, result.Text, result.Transcription)
	if text == "" {
		return nil, fmt.Errorf("%w: no transcription in response", appErr.ErrUpstream)
	}
	text = stripUnwantedPrefix(text)

	key := uuid.NewString() + ext
	if err := s.store.Save(ctx, key, in.File, in.Size); err != nil {
		logutil.GetLogger(ctx).Error("audio archive failed", zap.String("key", key), zap.Error(err))
		key = ""
	}
	return &TranscribeResult{
		Transcription: text,
		AudioKey:      key,
		ProcessingSec: result.ProcessingTime,
		ModelVersion:  result.ModelVersion,
	}, nil
}

// TestConnection probes the transcription service health endpoint.
func (s *TranscribeService) TestConnection(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", appErr.ErrUpstream, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health check returned %d", appErr.ErrUpstream, resp.StatusCode)
	}
	return nil
}

func (s *TranscribeService) callAPI(ctx context.Context, filename string, file io.ReadSeeker, contextText string) (*transcribeAPIResponse, error) {
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("audio_file", filepath.Base(filename))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}
	fields := map[string]string{
		"instruction":   transcribeInstruction,
		"system_prompt": transcribeSystemPrompt,
		"context":       contextText,
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL+"/generate/audio-text", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", appErr.ErrUpstream, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: transcription api returned %d: %s", appErr.ErrUpstream, resp.StatusCode, string(detail))
	}
	result := &transcribeAPIResponse{}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return nil, fmt.Errorf("%w: decode transcription response: %v", appErr.ErrUpstream, err)
	}
	return result, nil
}

func stripUnwantedPrefix(text string) string {
	cleaned := strings.TrimSpace(text)
	for _, prefix := range unwantedPrefixes {
		if strings.HasPrefix(strings.ToLower(cleaned), strings.ToLower(prefix)) {
			cleaned = strings.TrimSpace(cleaned[len(prefix):])
			break
		}
	}
	return cleaned
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
