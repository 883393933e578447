// Package update implements the progress-update submission pipeline:
// attachment upload, record persistence and the project progress
// mutation, sequenced as one logical operation.
package update

import (
	"errors"
	"fmt"
	"time"

	"blushhush.app/internal/attach"
)

// Record is a persisted progress update. Images holds durable attachment
// references in canonical (stager) order; a record is never persisted
// with references that do not yet exist in storage.
type Record struct {
	ID          string
	ProjectID   string
	Title       string
	Description string
	Date        time.Time
	Images      []string
	CreatedBy   string
	CreatedAt   time.Time
}

// SubmitInput is everything a manager supplies for one submission.
// Progress is clamped to [0,100] by the input control, not re-validated
// here.
type SubmitInput struct {
	ProjectID   string
	Title       string
	Description string
	Date        time.Time
	Progress    int
	Assets      []attach.Asset
}

var (
	ErrNotFound   = errors.New("update: not found")
	ErrValidation = errors.New("update: validation failed")
)

// Step identifies which stage of the pipeline an error belongs to, so
// the UI can choose between a full retry and a progress-only retry.
type Step string

const (
	StepValidate Step = "validate"
	StepUpload   Step = "upload"
	StepRecord   Step = "record"
	StepProgress Step = "progress"
)

// SubmitError tags a failure with the pipeline step that produced it.
// RecordID is set only for StepProgress failures: the record exists and
// only the progress mutation should be retried.
type SubmitError struct {
	Step     Step
	RecordID string
	Err      error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("update: step %s: %v", e.Step, e.Err)
}

func (e *SubmitError) Unwrap() error { return e.Err }

// FailedStep extracts the pipeline step from an error chain, if any.
func FailedStep(err error) (Step, bool) {
	var se *SubmitError
	if errors.As(err, &se) {
		return se.Step, true
	}
	return "", false
}

func validate(in SubmitInput) error {
	if in.ProjectID == "" {
		return fmt.Errorf("%w: project id is required", ErrValidation)
	}
	if in.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if in.Description == "" {
		return fmt.Errorf("%w: description is required", ErrValidation)
	}
	if len(in.Assets) > attach.MaxStaged {
		return fmt.Errorf("%w: at most %d attachments", ErrValidation, attach.MaxStaged)
	}
	return nil
}
