package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dkarlsen/notedoc/internal/notes"
	"github.com/dkarlsen/notedoc/internal/parser"
	"github.com/dkarlsen/notedoc/internal/render"
)

// Worker processes a single conversion job: parse, duplicate check, render.
type Worker struct {
	renderers map[string]render.Renderer
	store     *JobStore
	stats     *render.Stats
	log       *slog.Logger
}

func NewWorker(renderers map[string]render.Renderer, store *JobStore, stats *render.Stats, log *slog.Logger) *Worker {
	return &Worker{
		renderers: renderers,
		store:     store,
		stats:     stats,
		log:       log,
	}
}

// Process runs the full conversion pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename, "renderer", job.Renderer)

	// Phase 1: Parse.
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFormat(job.Format, job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	paras, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	mentions := 0
	for _, para := range paras {
		mentions += len(para.Mentions)
	}
	job.SetCounts(len(paras), mentions)

	hash := ContentHashHex([]byte(notes.FlattenText(paras)))
	job.SetContentHash(hash)
	log.Info("parsed notes", "paragraphs", len(paras), "mentions", mentions)

	// Phase 2: Duplicate check against the result cache.
	if cached := w.store.CachedResult(job.Renderer, hash); cached != nil {
		log.Info("duplicate content, reusing cached render")
		job.SetResult(cached)
		job.SetStatus(StatusDuplicate, "done")
		return
	}

	// Phase 3: Render with bounded retry on transient backend errors.
	job.SetStatus(StatusRendering, "rendering")
	renderer, ok := w.renderers[job.Renderer]
	if !ok {
		job.AddError(fmt.Sprintf("unknown renderer: %s", job.Renderer))
		job.SetStatus(StatusFailed, "rendering")
		return
	}

	var res *render.Result
	var lastErr error
	started := time.Now()
	for attempt := 0; attempt < MaxRetries; attempt++ {
		res, lastErr = renderer.Render(ctx, job.Title, paras)
		if lastErr == nil || !IsRetryable(lastErr) {
			break
		}
		log.Warn("retryable render error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			job.AddError(ctx.Err().Error())
			job.SetStatus(StatusFailed, "rendering")
			return
		}
	}
	if w.stats != nil {
		w.stats.Record(time.Since(started).Milliseconds())
	}
	if lastErr != nil {
		log.Error("render failed", "error", lastErr)
		job.AddError(fmt.Sprintf("render: %s", lastErr))
		job.SetStatus(StatusFailed, "rendering")
		return
	}

	w.store.CacheResult(job.Renderer, hash, res)
	job.SetResult(res)
	job.SetStatus(StatusCompleted, "done")
	log.Info("render complete", "url", res.URL, "bytes", len(res.Data))
}
