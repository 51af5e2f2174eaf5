// Package episode drives the whole pipeline for one episode: script
// drafting, diarized parsing, per-segment synthesis, audio assembly,
// metadata derivation, and artifact persistence.
package episode

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"podmill/internal/assemble"
	"podmill/internal/config"
	"podmill/internal/logging"
	"podmill/internal/script"
	"podmill/internal/services"
	"podmill/internal/services/gemini"
	"podmill/internal/synth"
	"podmill/internal/textutil"
)

const ttsEngineName = "kokoro"

// ScriptService covers the two generation calls the pipeline makes.
type ScriptService interface {
	GenerateScript(ctx context.Context, audioPath string) (string, error)
	DeriveMetadata(ctx context.Context, scriptText string) (gemini.Metadata, error)
}

// SynthRunner renders segments to per-segment audio files.
type SynthRunner interface {
	Run(ctx context.Context, segments []script.Segment, dir string) ([]string, synth.GenerationStats, error)
}

// AudioAssembler joins ordered audio inputs into mixed-down files.
type AudioAssembler interface {
	ConcatenateDialogue(ctx context.Context, segmentFiles []string, output string) error
	AssembleEpisode(ctx context.Context, inputs assemble.EpisodeInputs, output string) error
}

// DurationFunc reports an audio file's duration in seconds.
type DurationFunc func(ctx context.Context, path string) (float64, error)

// Ledger records stage transitions for observability. Implementations
// must tolerate being called for every stage of every episode.
type Ledger interface {
	SetStage(ctx context.Context, id int64, stage Stage) error
	MarkCompleted(ctx context.Context, id int64, finalFile string, segmentCount int) error
	MarkFailed(ctx context.Context, id int64, message string) error
}

// Request names one episode to generate.
type Request struct {
	PromptPath  string
	Name        string
	MaxSegments int
	// ItemID links the run to a ledger row. Zero means untracked.
	ItemID int64
}

// Result summarizes a completed episode.
type Result struct {
	EpisodeName string
	EpisodeDir  string
	FinalFile   string
	Metadata    Metadata
	Stats       synth.GenerationStats
}

// Orchestrator owns the per-episode state machine.
type Orchestrator struct {
	cfg       *config.Config
	scripts   ScriptService
	synth     SynthRunner
	assembler AudioAssembler
	duration  DurationFunc
	ledger    Ledger
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string
}

// New constructs an Orchestrator. The ledger may be nil for untracked
// single runs.
func New(cfg *config.Config, scripts ScriptService, synthesizer SynthRunner, assembler AudioAssembler, duration DurationFunc, ledger Ledger, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Orchestrator{
		cfg:       cfg,
		scripts:   scripts,
		synth:     synthesizer,
		assembler: assembler,
		duration:  duration,
		ledger:    ledger,
		logger:    logger,
		now:       time.Now,
		newID:     func() string { return uuid.NewString() },
	}
}

// Generate runs the full pipeline for one prompt recording. Stages run
// in strict sequence and each persists its artifact before the next
// begins, so a failed run leaves a diagnosable partial directory.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Result, error) {
	var result Result

	name := textutil.SanitizeFileName(req.Name)
	if name == "" {
		name = fmt.Sprintf("episode_%s", o.now().Format("20060102_150405"))
	}
	result.EpisodeName = name

	requestID := o.newID()
	ctx = services.WithEpisode(ctx, name)
	ctx = services.WithRequestID(ctx, requestID)
	logger := o.logger.With(
		logging.String(logging.FieldEpisode, name),
		logging.String(logging.FieldRequestID, requestID),
	)

	episodeDir := filepath.Join(o.cfg.Paths.EpisodesDir, name)
	if err := os.MkdirAll(episodeDir, 0o755); err != nil {
		return result, o.fail(ctx, req.ItemID, services.Wrap(services.ErrConfiguration, "episode", "prepare", "create episode directory", err))
	}
	result.EpisodeDir = episodeDir

	logger.Info("generating episode",
		logging.String("prompt", req.PromptPath),
		logging.String("dir", episodeDir),
	)

	// Stage 1: draft the dialogue script.
	o.enterStage(ctx, req.ItemID, StageDraftingScript, logger)
	scriptText, err := o.scripts.GenerateScript(ctx, req.PromptPath)
	if err != nil {
		return result, o.fail(ctx, req.ItemID, services.Wrap(services.ErrExternalTool, string(StageDraftingScript), "generate script", "", err))
	}
	scriptPath := filepath.Join(episodeDir, "script.txt")
	if err := os.WriteFile(scriptPath, []byte(scriptText), 0o644); err != nil {
		return result, o.fail(ctx, req.ItemID, services.Wrap(services.ErrConfiguration, string(StageDraftingScript), "persist script", "", err))
	}

	// Stage 2: parse into ordered segments.
	o.enterStage(ctx, req.ItemID, StageParsing, logger)
	segments, err := script.Parse(scriptText, o.cfg.VoiceMap())
	if err != nil {
		return result, o.fail(ctx, req.ItemID, services.Wrap(services.ErrValidation, string(StageParsing), "parse script", "", err))
	}
	if req.MaxSegments > 0 && len(segments) > req.MaxSegments {
		logger.Info("truncating segments", logging.Int("max", req.MaxSegments), logging.Int("parsed", len(segments)))
		segments = segments[:req.MaxSegments]
	}
	if err := writeSegments(filepath.Join(episodeDir, "segments.json"), segments); err != nil {
		return result, o.fail(ctx, req.ItemID, services.Wrap(services.ErrConfiguration, string(StageParsing), "persist segments", "", err))
	}

	// Stage 3: synthesize each segment.
	o.enterStage(ctx, req.ItemID, StageSynthesizing, logger)
	segmentDir := filepath.Join(episodeDir, "_segments")
	segmentFiles, stats, err := o.synth.Run(ctx, segments, segmentDir)
	if err != nil {
		return result, o.fail(ctx, req.ItemID, err)
	}
	result.Stats = stats

	// Stage 4: join segments into the dialogue track.
	o.enterStage(ctx, req.ItemID, StageAssemblingDialogue, logger)
	dialoguePath := filepath.Join(episodeDir, "dialogue.wav")
	if err := o.assembler.ConcatenateDialogue(ctx, segmentFiles, dialoguePath); err != nil {
		return result, o.fail(ctx, req.ItemID, err)
	}
	durationSeconds, err := o.duration(ctx, dialoguePath)
	if err != nil {
		logger.Warn("dialogue duration unavailable", logging.Error(err))
		durationSeconds = 0
	}

	// Stage 5: assemble the final episode with jingles and prompt.
	o.enterStage(ctx, req.ItemID, StageAssemblingEpisode, logger)
	finalPath := filepath.Join(episodeDir, name+".mp3")
	err = o.assembler.AssembleEpisode(ctx, assemble.EpisodeInputs{
		Intro:    o.cfg.IntroJinglePath(),
		Prompt:   req.PromptPath,
		Dialogue: dialoguePath,
		Outro:    o.cfg.OutroJinglePath(),
	}, finalPath)
	if err != nil {
		return result, o.fail(ctx, req.ItemID, err)
	}
	result.FinalFile = finalPath
	o.cleanupIntermediates(segmentDir, dialoguePath, logger)

	// Stage 6: derive title and description. Failure here is recorded
	// but does not fail the episode.
	o.enterStage(ctx, req.ItemID, StageDerivingMetadata, logger)
	derived, err := o.scripts.DeriveMetadata(ctx, scriptText)
	if err != nil {
		logger.Warn("metadata derivation failed", logging.Error(err))
		derived = gemini.Metadata{}
	}
	if derived.Title == "" {
		derived.Title = displayTitle(name)
	}

	// Stage 7: persist the metadata record.
	o.enterStage(ctx, req.ItemID, StagePersisting, logger)
	meta := Metadata{
		Title:                derived.Title,
		Description:          derived.Description,
		EpisodeName:          name,
		AudioFile:            finalPath,
		ScriptFile:           scriptPath,
		SegmentCount:         len(segments),
		TTSEngine:            ttsEngineName,
		Voices:               o.cfg.VoiceMap(),
		GeneratedAt:          o.now().UTC(),
		TotalTTSSeconds:      stats.TotalGenerationSeconds,
		AvgSegmentSeconds:    stats.AvgSecondsPerSegment,
		AudioDurationSeconds: durationSeconds,
		RealtimeFactor:       RealtimeFactor(stats.TotalGenerationSeconds, durationSeconds),
	}
	if err := writeMetadataFiles(episodeDir, meta); err != nil {
		return result, o.fail(ctx, req.ItemID, services.Wrap(services.ErrConfiguration, string(StagePersisting), "write metadata", "", err))
	}
	result.Metadata = meta

	o.complete(ctx, req.ItemID, finalPath, len(segments), logger)
	logger.Info("episode complete",
		logging.String("final", finalPath),
		logging.Int("segments", len(segments)),
		logging.Float64("realtime_factor", meta.RealtimeFactor),
	)
	return result, nil
}

func (o *Orchestrator) enterStage(ctx context.Context, itemID int64, stage Stage, logger *slog.Logger) {
	logger.Info("stage", logging.String(logging.FieldStage, string(stage)))
	if o.ledger == nil || itemID == 0 {
		return
	}
	if err := o.ledger.SetStage(ctx, itemID, stage); err != nil {
		logger.Warn("ledger update failed", logging.String(logging.FieldStage, string(stage)), logging.Error(err))
	}
}

func (o *Orchestrator) fail(ctx context.Context, itemID int64, err error) error {
	if o.ledger != nil && itemID != 0 {
		if lerr := o.ledger.MarkFailed(ctx, itemID, err.Error()); lerr != nil {
			o.logger.Warn("ledger failure update failed", logging.Error(lerr))
		}
	}
	return err
}

func (o *Orchestrator) complete(ctx context.Context, itemID int64, finalFile string, segmentCount int, logger *slog.Logger) {
	if o.ledger == nil || itemID == 0 {
		return
	}
	if err := o.ledger.MarkCompleted(ctx, itemID, finalFile, segmentCount); err != nil {
		logger.Warn("ledger completion update failed", logging.Error(err))
	}
}

// cleanupIntermediates removes the per-segment files and the dialogue
// track once the final episode exists. Best effort.
func (o *Orchestrator) cleanupIntermediates(segmentDir, dialoguePath string, logger *slog.Logger) {
	if err := os.RemoveAll(segmentDir); err != nil {
		logger.Warn("segment cleanup failed", logging.Error(err))
	}
	if err := os.Remove(dialoguePath); err != nil && !os.IsNotExist(err) {
		logger.Warn("dialogue cleanup failed", logging.Error(err))
	}
}

func writeSegments(path string, segments []script.Segment) error {
	encoded, err := marshalSegments(segments)
	if err != nil {
		return err
	}
	return os.WriteFile(path, encoded, 0o644)
}

// displayTitle turns an episode name like "deep_sea_mining" into a
// presentable fallback title when metadata derivation yields none.
func displayTitle(name string) string {
	cleaned := strings.NewReplacer("_", " ", "-", " ").Replace(name)
	return cases.Title(language.English).String(cleaned)
}
