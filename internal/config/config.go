package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration for the pipeline.
type Paths struct {
	PendingDir  string `toml:"pending_dir"`
	DoneDir     string `toml:"done_dir"`
	EpisodesDir string `toml:"episodes_dir"`
	JinglesDir  string `toml:"jingles_dir"`
	LogDir      string `toml:"log_dir"`
}

// Podcast describes the show identity: the two host personas and the
// voice each one speaks with.
type Podcast struct {
	Name        string  `toml:"name"`
	Host        string  `toml:"host"`
	CoHost      string  `toml:"co_host"`
	HostVoice   string  `toml:"host_voice"`
	CoHostVoice string  `toml:"co_host_voice"`
	SpeechSpeed float64 `toml:"speech_speed"`
}

// Gemini contains configuration for the script and metadata generation calls.
type Gemini struct {
	APIKey               string `toml:"api_key"`
	Model                string `toml:"model"`
	MaxOutputTokens      int    `toml:"max_output_tokens"`
	MetadataScriptPrefix int    `toml:"metadata_script_prefix"`
}

// TTS contains configuration for the Kokoro synthesis server.
type TTS struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for Podmill.
//
// Configuration sections by subsystem:
//   - Paths: pending/done prompt queues, episode output, jingles, logs
//   - Podcast: host identities and the fixed speaker-to-voice mapping
//   - Gemini: script generation and metadata derivation settings
//   - TTS: Kokoro synthesis server connection and timeout
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	Podcast Podcast `toml:"podcast"`
	Gemini  Gemini  `toml:"gemini"`
	TTS     TTS     `toml:"tts"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/podmill/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("podmill.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the pipeline writes into.
// The jingles directory is optional and created best-effort so a missing
// jingle library never blocks episode generation.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.PendingDir, c.Paths.DoneDir, c.Paths.EpisodesDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if strings.TrimSpace(c.Paths.JinglesDir) != "" {
		_ = os.MkdirAll(c.Paths.JinglesDir, 0o755)
	}
	return nil
}

// FFmpegBinary returns the ffmpeg executable name used for audio assembly.
func (c *Config) FFmpegBinary() string {
	return "ffmpeg"
}

// FFprobeBinary returns the ffprobe executable name used for duration probes.
func (c *Config) FFprobeBinary() string {
	return "ffprobe"
}

// IntroJinglePath returns the fixed intro jingle location.
func (c *Config) IntroJinglePath() string {
	return filepath.Join(c.Paths.JinglesDir, "mixed-intro.mp3")
}

// OutroJinglePath returns the fixed outro jingle location.
func (c *Config) OutroJinglePath() string {
	return filepath.Join(c.Paths.JinglesDir, "mixed-outro.mp3")
}

// VoiceMap returns the fixed speaker-to-voice mapping for the two hosts.
func (c *Config) VoiceMap() map[string]string {
	return map[string]string{
		c.Podcast.Host:   c.Podcast.HostVoice,
		c.Podcast.CoHost: c.Podcast.CoHostVoice,
	}
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
