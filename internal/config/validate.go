package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validatePodcast(); err != nil {
		return err
	}
	if err := c.validateGemini(); err != nil {
		return err
	}
	if err := c.validateTTS(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.PendingDir) == "" {
		return errors.New("paths.pending_dir must be set")
	}
	if strings.TrimSpace(c.Paths.DoneDir) == "" {
		return errors.New("paths.done_dir must be set")
	}
	if strings.TrimSpace(c.Paths.EpisodesDir) == "" {
		return errors.New("paths.episodes_dir must be set")
	}
	return nil
}

func (c *Config) validatePodcast() error {
	if c.Podcast.Host == c.Podcast.CoHost {
		return fmt.Errorf("podcast.host and podcast.co_host must be distinct, both are %q", c.Podcast.Host)
	}
	if !IsKnownVoice(c.Podcast.HostVoice) {
		return fmt.Errorf("podcast.host_voice %q is not in the voice catalog (known: %s)",
			c.Podcast.HostVoice, strings.Join(KnownVoices(), ", "))
	}
	if !IsKnownVoice(c.Podcast.CoHostVoice) {
		return fmt.Errorf("podcast.co_host_voice %q is not in the voice catalog (known: %s)",
			c.Podcast.CoHostVoice, strings.Join(KnownVoices(), ", "))
	}
	if c.Podcast.SpeechSpeed <= 0 || c.Podcast.SpeechSpeed > 3 {
		return errors.New("podcast.speech_speed must be between 0 and 3")
	}
	return nil
}

func (c *Config) validateGemini() error {
	if c.Gemini.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/podmill/config.toml"
		}
		return fmt.Errorf("gemini.api_key is required. Set GEMINI_API_KEY env var or edit %s (create with 'podmill config init')", defaultPath)
	}
	if c.Gemini.MaxOutputTokens <= 0 {
		return errors.New("gemini.max_output_tokens must be positive")
	}
	if c.Gemini.MetadataScriptPrefix <= 0 {
		return errors.New("gemini.metadata_script_prefix must be positive")
	}
	return nil
}

func (c *Config) validateTTS() error {
	if strings.TrimSpace(c.TTS.BaseURL) == "" {
		return errors.New("tts.base_url must be set")
	}
	if c.TTS.TimeoutSeconds <= 0 {
		return errors.New("tts.timeout_seconds must be positive (seconds)")
	}
	return nil
}
