package queue

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofrs/flock"

	"podmill/internal/config"
	"podmill/internal/episode"
	"podmill/internal/fileutil"
	"podmill/internal/logging"
	"podmill/internal/services"
	"podmill/internal/textutil"
)

var _ episode.Ledger = (*Store)(nil)

// audioExtensions are the prompt file types the processor recognizes.
var audioExtensions = map[string]struct{}{
	".mp3":  {},
	".wav":  {},
	".m4a":  {},
	".ogg":  {},
	".flac": {},
}

// EpisodeGenerator runs the whole pipeline for one prompt.
type EpisodeGenerator interface {
	Generate(ctx context.Context, req episode.Request) (episode.Result, error)
}

// Processor walks the pending directory and generates one episode per
// recognized prompt file.
type Processor struct {
	cfg       *config.Config
	store     *Store
	generator EpisodeGenerator
	logger    *slog.Logger
	lockPath  string
}

// Summary reports the outcome of one batch run.
type Summary struct {
	Discovered int
	Succeeded  int
	Failed     int
}

// NewProcessor constructs a Processor over the given store and generator.
func NewProcessor(cfg *config.Config, store *Store, generator EpisodeGenerator, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Processor{
		cfg:       cfg,
		store:     store,
		generator: generator,
		logger:    logger,
		lockPath:  filepath.Join(cfg.Paths.LogDir, "podmill.lock"),
	}
}

// Discover lists the recognized prompt files in the pending directory.
// Order follows file names for predictable batches.
func (p *Processor) Discover() ([]string, error) {
	entries, err := os.ReadDir(p.cfg.Paths.PendingDir)
	if err != nil {
		return nil, fmt.Errorf("read pending directory: %w", err)
	}

	var prompts []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, ok := audioExtensions[ext]; !ok {
			continue
		}
		prompts = append(prompts, filepath.Join(p.cfg.Paths.PendingDir, entry.Name()))
	}
	sort.Strings(prompts)
	return prompts, nil
}

// Run processes the whole pending queue. Each prompt is handled in
// isolation: a failed item is logged and left in place for a later
// retry while the batch continues. A file lock prevents two concurrent
// batch runs from racing on the same queue.
func (p *Processor) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	lock := flock.New(p.lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return summary, services.Wrap(services.ErrConfiguration, "queue", "lock", p.lockPath, err)
	}
	if !locked {
		return summary, services.Wrap(services.ErrTransient, "queue", "lock", "another podmill run holds the queue lock", nil)
	}
	defer func() { _ = lock.Unlock() }()

	prompts, err := p.Discover()
	if err != nil {
		return summary, err
	}
	summary.Discovered = len(prompts)
	if len(prompts) == 0 {
		p.logger.Info("no prompts in pending queue", logging.String("dir", p.cfg.Paths.PendingDir))
		return summary, nil
	}

	p.logger.Info("processing queue", logging.Int("prompts", len(prompts)))
	for _, prompt := range prompts {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if err := p.processOne(ctx, prompt); err != nil {
			summary.Failed++
			p.logger.Error("prompt failed",
				logging.String("prompt", filepath.Base(prompt)),
				logging.Error(err),
			)
			continue
		}
		summary.Succeeded++
	}
	return summary, nil
}

// ProcessFile runs the pipeline for one explicit prompt path, outside
// the pending queue. The source file stays where it is.
func (p *Processor) ProcessFile(ctx context.Context, promptPath, name string, maxSegments int) (episode.Result, error) {
	if _, err := os.Stat(promptPath); err != nil {
		return episode.Result{}, services.Wrap(services.ErrNotFound, "queue", "process file", promptPath, err)
	}
	item, err := p.store.NewItem(ctx, promptPath, name)
	if err != nil {
		return episode.Result{}, err
	}
	return p.generator.Generate(ctx, episode.Request{
		PromptPath:  promptPath,
		Name:        name,
		MaxSegments: maxSegments,
		ItemID:      item.ID,
	})
}

func (p *Processor) processOne(ctx context.Context, promptPath string) error {
	name := textutil.SanitizeToken(strings.TrimSuffix(filepath.Base(promptPath), filepath.Ext(promptPath)))

	item, err := p.store.NewItem(ctx, promptPath, name)
	if err != nil {
		return err
	}

	if _, err := p.generator.Generate(ctx, episode.Request{
		PromptPath: promptPath,
		Name:       name,
		ItemID:     item.ID,
	}); err != nil {
		return err
	}

	donePath := filepath.Join(p.cfg.Paths.DoneDir, filepath.Base(promptPath))
	if err := fileutil.MoveFile(promptPath, donePath); err != nil {
		return services.Wrap(services.ErrConfiguration, "queue", "archive prompt", promptPath, err)
	}
	p.logger.Info("prompt archived", logging.String("done", donePath))
	return nil
}
