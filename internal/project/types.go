package project

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle state of a construction project.
type Status string

const (
	StatusPlanning  Status = "planning"
	StatusActive    Status = "active"
	StatusOnHold    Status = "on_hold"
	StatusCompleted Status = "completed"
)

// ParseStatus maps a raw value onto a known status, failing closed.
func ParseStatus(raw string) (Status, error) {
	switch Status(strings.TrimSpace(strings.ToLower(raw))) {
	case StatusPlanning:
		return StatusPlanning, nil
	case StatusActive:
		return StatusActive, nil
	case StatusOnHold:
		return StatusOnHold, nil
	case StatusCompleted:
		return StatusCompleted, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
}

// Project is a construction project. Progress is an explicit, manager-set
// percentage; it is not derived from update history.
type Project struct {
	ID        string
	Name      string
	Location  string
	ClientID  string
	ManagerID string
	Status    Status
	StartDate time.Time
	EndDate   time.Time
	Progress  int
	CreatedAt time.Time
}

var (
	ErrNotFound        = errors.New("project: not found")
	ErrInvalidInput    = errors.New("project: invalid input")
	ErrInvalidStatus   = errors.New("project: invalid status")
	ErrInvalidProgress = errors.New("project: progress out of range")
)
