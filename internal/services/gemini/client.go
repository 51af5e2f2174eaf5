package gemini

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"google.golang.org/genai"
)

const (
	defaultModel             = "gemini-2.5-flash"
	defaultMaxOutputTokens   = 16000
	defaultScriptPrefixLimit = 8000
)

// audioMIMETypes maps recognized prompt extensions to the MIME type
// sent alongside the uploaded audio bytes.
var audioMIMETypes = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
	".ogg":  "audio/ogg",
	".flac": "audio/flac",
}

// Config carries the settings for the script and metadata calls.
type Config struct {
	APIKey            string
	Model             string
	MaxOutputTokens   int32
	PodcastName       string
	HostName          string
	CoHostName        string
	ScriptPrefixLimit int
}

// Client wraps the Gemini API for script generation and metadata
// derivation.
type Client struct {
	cfg      Config
	generate generateFunc
}

type generateFunc func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

// NewClient constructs a Gemini client. The API key is required; the
// remaining fields fall back to defaults when unset.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	cfg = withDefaults(cfg)
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("gemini: api key required")
	}
	api, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &Client{cfg: cfg, generate: api.Models.GenerateContent}, nil
}

func withDefaults(cfg Config) Config {
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = defaultModel
	}
	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = defaultMaxOutputTokens
	}
	if cfg.ScriptPrefixLimit <= 0 {
		cfg.ScriptPrefixLimit = defaultScriptPrefixLimit
	}
	return cfg
}

// GenerateScript uploads the prompt audio and asks the model for a
// diarized two-host dialogue script.
func (c *Client) GenerateScript(ctx context.Context, audioPath string) (string, error) {
	mimeType, err := mimeForAudio(audioPath)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(audioPath)
	if err != nil {
		return "", fmt.Errorf("gemini script: read prompt audio: %w", err)
	}

	contents := []*genai.Content{{
		Role: "user",
		Parts: []*genai.Part{
			genai.NewPartFromText(scriptPrompt(c.cfg.PodcastName, c.cfg.HostName, c.cfg.CoHostName)),
			genai.NewPartFromBytes(data, mimeType),
		},
	}}
	resp, err := c.generate(ctx, c.cfg.Model, contents, &genai.GenerateContentConfig{
		MaxOutputTokens: c.cfg.MaxOutputTokens,
	})
	if err != nil {
		return "", fmt.Errorf("gemini script: generate: %w", err)
	}
	script, err := responseText(resp)
	if err != nil {
		return "", fmt.Errorf("gemini script: %w", err)
	}
	return script, nil
}

// DeriveMetadata asks the model for a title and description over a
// prefix of the already-generated script.
func (c *Client) DeriveMetadata(ctx context.Context, script string) (Metadata, error) {
	contents := []*genai.Content{{
		Role: "user",
		Parts: []*genai.Part{
			genai.NewPartFromText(metadataPrompt(script, c.cfg.ScriptPrefixLimit)),
		},
	}}
	resp, err := c.generate(ctx, c.cfg.Model, contents, nil)
	if err != nil {
		return Metadata{}, fmt.Errorf("gemini metadata: generate: %w", err)
	}
	text, err := responseText(resp)
	if err != nil {
		return Metadata{}, fmt.Errorf("gemini metadata: %w", err)
	}
	return ParseMetadata(text), nil
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("no candidates in response")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return "", errors.New("candidate has no content")
	}
	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", errors.New("empty text response")
	}
	return text, nil
}

func mimeForAudio(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	mimeType, ok := audioMIMETypes[ext]
	if !ok {
		return "", fmt.Errorf("gemini script: unsupported audio extension %q", ext)
	}
	return mimeType, nil
}
