package config

const (
	defaultPendingDir  = "~/.local/share/podmill/prompts/to-process"
	defaultDoneDir     = "~/.local/share/podmill/prompts/done"
	defaultEpisodesDir = "~/.local/share/podmill/episodes"
	defaultJinglesDir  = "~/.local/share/podmill/jingles"
	defaultLogDir      = "~/.local/share/podmill/logs"

	defaultPodcastName = "AI Conversations"
	defaultHostName    = "Herman"
	defaultCoHostName  = "Emma"
	defaultHostVoice   = "am_adam"
	defaultCoHostVoice = "bf_emma"
	defaultSpeechSpeed = 1.0

	defaultGeminiModel          = "gemini-2.5-flash"
	defaultMaxOutputTokens      = 16000
	defaultMetadataScriptPrefix = 8000

	defaultTTSBaseURL        = "http://localhost:8880"
	defaultTTSTimeoutSeconds = 300

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			PendingDir:  defaultPendingDir,
			DoneDir:     defaultDoneDir,
			EpisodesDir: defaultEpisodesDir,
			JinglesDir:  defaultJinglesDir,
			LogDir:      defaultLogDir,
		},
		Podcast: Podcast{
			Name:        defaultPodcastName,
			Host:        defaultHostName,
			CoHost:      defaultCoHostName,
			HostVoice:   defaultHostVoice,
			CoHostVoice: defaultCoHostVoice,
			SpeechSpeed: defaultSpeechSpeed,
		},
		Gemini: Gemini{
			Model:                defaultGeminiModel,
			MaxOutputTokens:      defaultMaxOutputTokens,
			MetadataScriptPrefix: defaultMetadataScriptPrefix,
		},
		TTS: TTS{
			BaseURL:        defaultTTSBaseURL,
			TimeoutSeconds: defaultTTSTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
