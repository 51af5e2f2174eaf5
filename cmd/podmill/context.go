package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"podmill/internal/assemble"
	"podmill/internal/config"
	"podmill/internal/episode"
	"podmill/internal/logging"
	"podmill/internal/media/ffmpeg"
	"podmill/internal/media/ffprobe"
	"podmill/internal/queue"
	"podmill/internal/services/gemini"
	"podmill/internal/services/kokoro"
	"podmill/internal/synth"
)

type commandContext struct {
	configFlag *string

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configExists = exists
	})
	return c.config, c.configErr
}

// pipeline bundles everything a run command needs.
type pipeline struct {
	cfg       *config.Config
	store     *queue.Store
	processor *queue.Processor
	logger    *slog.Logger
}

func (p *pipeline) Close() {
	_ = p.store.Close()
}

// buildPipeline wires the full episode pipeline: Gemini scripting,
// Kokoro synthesis, ffmpeg assembly, the sqlite ledger, and the queue
// processor on top.
func (c *commandContext) buildPipeline(ctx context.Context) (*pipeline, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	store, err := queue.Open(cfg)
	if err != nil {
		return nil, err
	}

	scripts, err := gemini.NewClient(ctx, gemini.Config{
		APIKey:            cfg.Gemini.APIKey,
		Model:             cfg.Gemini.Model,
		MaxOutputTokens:   int32(cfg.Gemini.MaxOutputTokens),
		PodcastName:       cfg.Podcast.Name,
		HostName:          cfg.Podcast.Host,
		CoHostName:        cfg.Podcast.CoHost,
		ScriptPrefixLimit: cfg.Gemini.MetadataScriptPrefix,
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	speech := kokoro.NewClient(
		kokoro.WithBaseURL(cfg.TTS.BaseURL),
		kokoro.WithTimeout(time.Duration(cfg.TTS.TimeoutSeconds)*time.Second),
	)
	synthesizer := synth.New(speech, cfg.Podcast.SpeechSpeed, logging.NewComponentLogger(logger, "synth"))

	runner := ffmpeg.NewCLI(ffmpeg.WithBinary(cfg.FFmpegBinary()))
	assembler := assemble.New(runner, logging.NewComponentLogger(logger, "assemble"))

	duration := func(ctx context.Context, path string) (float64, error) {
		probe, err := ffprobe.Inspect(ctx, cfg.FFprobeBinary(), path)
		if err != nil {
			return 0, err
		}
		return probe.DurationSeconds(), nil
	}

	orchestrator := episode.New(cfg, scripts, synthesizer, assembler, duration, store,
		logging.NewComponentLogger(logger, "episode"))
	processor := queue.NewProcessor(cfg, store, orchestrator,
		logging.NewComponentLogger(logger, "queue"))

	return &pipeline{
		cfg:       cfg,
		store:     store,
		processor: processor,
		logger:    logger,
	}, nil
}

// openStore opens only the ledger, for queue inspection commands that
// never talk to external services.
func (c *commandContext) openStore() (*queue.Store, *config.Config, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	store, err := queue.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	return store, cfg, nil
}
