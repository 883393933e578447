package update

import (
	"context"
	"fmt"
	"time"

	"blushhush.app/internal/audit"
	"blushhush.app/internal/auth"
	"blushhush.app/internal/ids"
	"blushhush.app/internal/obs"
	"blushhush.app/internal/project"
)

// Pipeline executes a submission as three dependent remote steps, each
// gated on the previous one's success:
//
//  1. upload all staged assets (Coordinator)
//  2. create the update record referencing the returned URLs
//  3. overwrite the project's progress percentage
//
// Failures are tagged with the step they occurred in. After step 2 the
// operation is never retried wholesale: a StepProgress failure carries
// the record id so the UI retries only the mutation.
type Pipeline struct {
	uploads  *Coordinator
	records  Store
	projects project.Store
	now      func() time.Time
}

// PipelineOption configures Pipeline behavior.
type PipelineOption func(*Pipeline)

// WithPipelineClock overrides the time source (useful for tests).
func WithPipelineClock(fn func() time.Time) PipelineOption {
	return func(p *Pipeline) {
		if fn != nil {
			p.now = fn
		}
	}
}

// NewPipeline constructs the submission pipeline.
func NewPipeline(uploads *Coordinator, records Store, projects project.Store, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		uploads:  uploads,
		records:  records,
		projects: projects,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Submit runs the full pipeline. Validation happens before any remote
// call; a validation failure leaves project and update history exactly
// as they were.
func (p *Pipeline) Submit(ctx context.Context, in SubmitInput) (*Record, error) {
	start := p.now()

	if err := validate(in); err != nil {
		obs.SubmissionStep(string(StepValidate), "error")
		return nil, &SubmitError{Step: StepValidate, Err: err}
	}
	obs.SubmissionStep(string(StepValidate), "ok")

	refs, err := p.uploads.UploadAll(ctx, in.ProjectID, in.Assets)
	if err != nil {
		obs.SubmissionStep(string(StepUpload), "error")
		return nil, &SubmitError{Step: StepUpload, Err: err}
	}
	obs.SubmissionStep(string(StepUpload), "ok")

	author, _ := auth.IdentityFromContext(ctx)
	date := in.Date
	if date.IsZero() {
		date = p.now().UTC()
	}
	rec := &Record{
		ID:          ids.NewAt(date),
		ProjectID:   in.ProjectID,
		Title:       in.Title,
		Description: in.Description,
		Date:        date,
		Images:      refs,
		CreatedBy:   author,
		CreatedAt:   p.now().UTC(),
	}
	if err := p.records.Create(ctx, rec); err != nil {
		obs.SubmissionStep(string(StepRecord), "error")
		// Uploaded objects stay behind; make the leak visible.
		obs.UploadOrphans(len(refs))
		return nil, &SubmitError{Step: StepRecord, Err: err}
	}
	obs.SubmissionStep(string(StepRecord), "ok")

	if err := p.projects.SetProgress(ctx, in.ProjectID, in.Progress); err != nil {
		obs.SubmissionStep(string(StepProgress), "error")
		// The record is persisted; only the counter is stale.
		return rec, &SubmitError{Step: StepProgress, RecordID: rec.ID, Err: err}
	}
	obs.SubmissionStep(string(StepProgress), "ok")

	obs.ObserveSubmission(p.now().Sub(start).Seconds())
	_ = audit.LogEvent(ctx, "update_submitted", map[string]any{
		"project_id": in.ProjectID,
		"update_id":  rec.ID,
		"images":     len(refs),
		"progress":   in.Progress,
	})
	return rec, nil
}

// RetryProgress redoes only step 3 after a StepProgress failure, so the
// UI never resubmits (and duplicates) the record.
func (p *Pipeline) RetryProgress(ctx context.Context, projectID string, progress int) error {
	if projectID == "" {
		return fmt.Errorf("%w: project id is required", ErrValidation)
	}
	if err := p.projects.SetProgress(ctx, projectID, progress); err != nil {
		obs.SubmissionStep(string(StepProgress), "error")
		return &SubmitError{Step: StepProgress, Err: err}
	}
	obs.SubmissionStep(string(StepProgress), "ok")
	_ = audit.LogEvent(ctx, "progress_mutated", map[string]any{
		"project_id": projectID,
		"progress":   progress,
	})
	return nil
}

// Outcome is the terminal result of an asynchronous submission.
type Outcome struct {
	Record *Record
	Err    error
}

// SubmitAsync starts the pipeline detached from the caller's lifetime:
// once started it runs to completion or failure even if the originating
// screen unmounts. The outcome lands on a buffered channel, so an
// abandoned listener never blocks the pipeline.
func (p *Pipeline) SubmitAsync(ctx context.Context, in SubmitInput) <-chan Outcome {
	out := make(chan Outcome, 1)
	detached := context.WithoutCancel(ctx)
	go func() {
		rec, err := p.Submit(detached, in)
		out <- Outcome{Record: rec, Err: err}
		close(out)
	}()
	return out
}
