package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizePodcast()
	c.normalizeGemini()
	c.normalizeTTS()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.PendingDir, err = expandPath(c.Paths.PendingDir); err != nil {
		return fmt.Errorf("paths.pending_dir: %w", err)
	}
	if c.Paths.DoneDir, err = expandPath(c.Paths.DoneDir); err != nil {
		return fmt.Errorf("paths.done_dir: %w", err)
	}
	if c.Paths.EpisodesDir, err = expandPath(c.Paths.EpisodesDir); err != nil {
		return fmt.Errorf("paths.episodes_dir: %w", err)
	}
	if c.Paths.JinglesDir, err = expandPath(c.Paths.JinglesDir); err != nil {
		return fmt.Errorf("paths.jingles_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizePodcast() {
	c.Podcast.Name = strings.TrimSpace(c.Podcast.Name)
	if c.Podcast.Name == "" {
		c.Podcast.Name = defaultPodcastName
	}
	c.Podcast.Host = strings.TrimSpace(c.Podcast.Host)
	if c.Podcast.Host == "" {
		c.Podcast.Host = defaultHostName
	}
	c.Podcast.CoHost = strings.TrimSpace(c.Podcast.CoHost)
	if c.Podcast.CoHost == "" {
		c.Podcast.CoHost = defaultCoHostName
	}
	c.Podcast.HostVoice = strings.TrimSpace(c.Podcast.HostVoice)
	if c.Podcast.HostVoice == "" {
		c.Podcast.HostVoice = defaultHostVoice
	}
	c.Podcast.CoHostVoice = strings.TrimSpace(c.Podcast.CoHostVoice)
	if c.Podcast.CoHostVoice == "" {
		c.Podcast.CoHostVoice = defaultCoHostVoice
	}
	if c.Podcast.SpeechSpeed <= 0 {
		c.Podcast.SpeechSpeed = defaultSpeechSpeed
	}
}

func (c *Config) normalizeGemini() {
	c.Gemini.APIKey = strings.TrimSpace(c.Gemini.APIKey)
	if c.Gemini.APIKey == "" {
		if value, ok := os.LookupEnv("GEMINI_API_KEY"); ok {
			c.Gemini.APIKey = strings.TrimSpace(value)
		}
	}
	c.Gemini.Model = strings.TrimSpace(c.Gemini.Model)
	if c.Gemini.Model == "" {
		c.Gemini.Model = defaultGeminiModel
	}
	if c.Gemini.MaxOutputTokens <= 0 {
		c.Gemini.MaxOutputTokens = defaultMaxOutputTokens
	}
	if c.Gemini.MetadataScriptPrefix <= 0 {
		c.Gemini.MetadataScriptPrefix = defaultMetadataScriptPrefix
	}
}

func (c *Config) normalizeTTS() {
	c.TTS.BaseURL = strings.TrimRight(strings.TrimSpace(c.TTS.BaseURL), "/")
	if c.TTS.BaseURL == "" {
		c.TTS.BaseURL = defaultTTSBaseURL
	}
	if c.TTS.TimeoutSeconds <= 0 {
		c.TTS.TimeoutSeconds = defaultTTSTimeoutSeconds
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
