package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dkarlsen/notedoc/internal/notes"
	"github.com/dkarlsen/notedoc/internal/render"
)

// fakeRenderer returns a fixed result or error and counts calls.
type fakeRenderer struct {
	calls int
	res   *render.Result
	err   error
}

func (f *fakeRenderer) Render(_ context.Context, _ string, _ []notes.Paragraph) (*render.Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.res, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestJob(id, text string) *Job {
	job := &Job{
		ID:        id,
		Filename:  "notes.txt",
		Title:     "Test Notes",
		Renderer:  "fake",
		Status:    StatusQueued,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	job.SetFileData([]byte(text))
	return job
}

func TestWorker_Process_Success(t *testing.T) {
	store := NewJobStore(time.Hour)
	fake := &fakeRenderer{res: &render.Result{URL: "https://docs.example/d/1"}}
	w := NewWorker(map[string]render.Renderer{"fake": fake}, store, render.NewStats(time.Hour), testLogger())

	job := newTestJob("j1", "# Standup - Monday\n- @alice on deploys\n")
	w.Process(context.Background(), job)

	if job.Status != StatusCompleted {
		t.Fatalf("expected status completed, got %q", job.Status)
	}
	if fake.calls != 1 {
		t.Errorf("expected 1 render call, got %d", fake.calls)
	}
	snap := job.Snapshot()
	// h1 + subtitle + bullet, plus the blank record for the line after the
	// trailing newline.
	if snap.Progress.Paragraphs != 4 {
		t.Errorf("expected 4 paragraphs, got %d", snap.Progress.Paragraphs)
	}
	if snap.Progress.Mentions != 1 {
		t.Errorf("expected 1 mention, got %d", snap.Progress.Mentions)
	}
	if snap.ResultURL != "https://docs.example/d/1" {
		t.Errorf("expected result url, got %q", snap.ResultURL)
	}
}

func TestWorker_Process_DuplicateContent(t *testing.T) {
	store := NewJobStore(time.Hour)
	fake := &fakeRenderer{res: &render.Result{URL: "https://docs.example/d/1"}}
	w := NewWorker(map[string]render.Renderer{"fake": fake}, store, render.NewStats(time.Hour), testLogger())

	first := newTestJob("j1", "same notes\n")
	w.Process(context.Background(), first)
	if first.Status != StatusCompleted {
		t.Fatalf("expected first job completed, got %q", first.Status)
	}

	second := newTestJob("j2", "same notes\n")
	w.Process(context.Background(), second)
	if second.Status != StatusDuplicate {
		t.Fatalf("expected second job duplicate, got %q", second.Status)
	}
	if fake.calls != 1 {
		t.Errorf("expected single render for duplicate content, got %d", fake.calls)
	}
	if second.Result() != first.Result() {
		t.Error("expected duplicate job to reuse the cached result")
	}
}

func TestWorker_Process_NonRetryableError(t *testing.T) {
	store := NewJobStore(time.Hour)
	fake := &fakeRenderer{err: errors.New("document too large")}
	w := NewWorker(map[string]render.Renderer{"fake": fake}, store, render.NewStats(time.Hour), testLogger())

	job := newTestJob("j1", "notes\n")
	w.Process(context.Background(), job)

	if job.Status != StatusFailed {
		t.Fatalf("expected status failed, got %q", job.Status)
	}
	if fake.calls != 1 {
		t.Errorf("expected no retries for non-retryable error, got %d calls", fake.calls)
	}
	snap := job.Snapshot()
	if len(snap.Progress.Errors) == 0 {
		t.Error("expected error recorded on job")
	}
}

func TestWorker_Process_UnknownRenderer(t *testing.T) {
	store := NewJobStore(time.Hour)
	w := NewWorker(map[string]render.Renderer{}, store, render.NewStats(time.Hour), testLogger())

	job := newTestJob("j1", "notes\n")
	w.Process(context.Background(), job)

	if job.Status != StatusFailed {
		t.Fatalf("expected status failed, got %q", job.Status)
	}
}

func TestWorker_Process_UnsupportedFormat(t *testing.T) {
	store := NewJobStore(time.Hour)
	w := NewWorker(map[string]render.Renderer{}, store, render.NewStats(time.Hour), testLogger())

	job := newTestJob("j1", "notes\n")
	job.Format = "xlsx"
	w.Process(context.Background(), job)

	if job.Status != StatusFailed {
		t.Fatalf("expected status failed, got %q", job.Status)
	}
	if job.Phase != "parsing" {
		t.Errorf("expected failure in parsing phase, got %q", job.Phase)
	}
}
