package services

import (
	"context"
	"log/slog"
	"time"

	"subsmanager-miniapp/internal/models"
	"subsmanager-miniapp/internal/repositories"
)

// ActionJournal writes user actions to the action log and mirrors them to slog.
// A failed write never fails the action itself.
type ActionJournal struct {
	repo   repositories.ActionLogRepositoryInterface
	logger *slog.Logger
}

func NewActionJournal(repo repositories.ActionLogRepositoryInterface, logger *slog.Logger) ActionJournalInterface {
	return &ActionJournal{
		repo:   repo,
		logger: logger,
	}
}

func (j *ActionJournal) Record(ctx context.Context, entry *models.ActionLog) {
	if entry == nil {
		return
	}
	if entry.TraceID == "" {
		entry.TraceID = TraceIDFromContext(ctx)
	}

	j.logger.InfoContext(ctx, "user action",
		slog.String("event_type", entry.Action),
		slog.Int64("user_id", entry.UserID),
		slog.String("resource", entry.Resource),
		slog.String("resource_id", entry.ResourceID),
		slog.String("trace_id", entry.TraceID),
	)

	if j.repo == nil {
		return
	}
	if err := j.repo.Create(entry); err != nil {
		j.logger.WarnContext(ctx, "failed to write action log",
			slog.String("event_type", entry.Action),
			slog.String("error", err.Error()),
			slog.String("trace_id", entry.TraceID),
		)
	}
}

// Prune removes action logs older than retention. A non-positive retention keeps everything.
func (j *ActionJournal) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	if j.repo == nil || retention <= 0 {
		return 0, nil
	}
	removed, err := j.repo.DeleteOlderThan(retention)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		j.logger.InfoContext(ctx, "pruned action logs", slog.Int64("removed", removed), slog.Duration("retention", retention))
	}
	return removed, nil
}
