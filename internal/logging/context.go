package logging

import (
	"context"
	"log/slog"

	"podmill/internal/services"
)

// WithContext returns a logger enriched with any episode, stage, and request
// identifiers carried by the context. A nil logger yields a no-op logger.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	if ctx == nil {
		return logger
	}
	attrs := make([]Attr, 0, 3)
	if episode, ok := services.EpisodeFromContext(ctx); ok {
		attrs = append(attrs, String(FieldEpisode, episode))
	}
	if stage, ok := services.StageFromContext(ctx); ok {
		attrs = append(attrs, String(FieldStage, stage))
	}
	if requestID, ok := services.RequestIDFromContext(ctx); ok {
		attrs = append(attrs, String(FieldRequestID, requestID))
	}
	if len(attrs) == 0 {
		return logger
	}
	return logger.With(Args(attrs...)...)
}
