package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// ExportTask is the payload of a background catalog export.
type ExportTask struct {
	TaskID      uuid.UUID `json:"task_id"`
	BrandID     uuid.UUID `json:"brand_id"`
	RequestedBy string    `json:"requested_by,omitempty"`
}

// TaskEnqueuer hands fire-and-forget work to whatever task backend the
// application wires (a queue worker, or the in-process runner below).
type TaskEnqueuer interface {
	Enqueue(ctx context.Context, payload any) error
}

// TaskEnqueuerFunc adapts a function to TaskEnqueuer.
type TaskEnqueuerFunc func(ctx context.Context, payload any) error

func (f TaskEnqueuerFunc) Enqueue(ctx context.Context, payload any) error {
	return f(ctx, payload)
}

// exportTimeout bounds a single background export run.
const exportTimeout = 10 * time.Minute

// ExportRunner is a TaskEnqueuer that runs export tasks on a goroutine,
// detached from the request context so in-flight exports survive the
// response. Suitable for single-instance deployments; multi-instance
// setups should back TaskEnqueuer with a durable queue instead.
type ExportRunner struct {
	exporter *Exporter
	log      *slog.Logger
}

// NewExportRunner creates the in-process export runner.
func NewExportRunner(exporter *Exporter, log *slog.Logger) *ExportRunner {
	if exporter == nil {
		panic("catalog: Exporter is required")
	}
	if log == nil {
		log = slog.Default()
	}
	return &ExportRunner{exporter: exporter, log: log}
}

// Enqueue implements TaskEnqueuer for ExportTask payloads.
func (r *ExportRunner) Enqueue(_ context.Context, payload any) error {
	task, ok := payload.(ExportTask)
	if !ok {
		return ErrExportFailed
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()
		defer func() {
			if rec := recover(); rec != nil {
				r.log.Error("export task panicked",
					slog.String("task_id", task.TaskID.String()),
					slog.Any("panic", rec))
			}
		}()

		if _, err := r.exporter.Export(ctx, task.BrandID, task.TaskID); err != nil {
			r.log.ErrorContext(ctx, "export task failed",
				slog.String("task_id", task.TaskID.String()),
				slog.String("brand_id", task.BrandID.String()),
				slog.Any("error", err))
		}
	}()

	return nil
}
