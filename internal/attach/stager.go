// Package attach manages locally selected binary assets before they are
// uploaded as part of an update submission.
package attach

import (
	"errors"
	"sync"
)

// MaxStaged is the hard cap on simultaneously staged attachments.
const MaxStaged = 6

// ErrPermissionDenied is returned by pickers when the platform denies
// media library access. It is a user-facing error, never a pipeline one.
var ErrPermissionDenied = errors.New("attach: media library permission denied")

// Asset is a locally selected binary asset, addressed by a local URI
// until it is uploaded. Assets belong to exactly one submission.
type Asset struct {
	URI         string
	Name        string
	ContentType string
}

// Stager collects assets for the submission in progress. Insertion order
// is preserved (oldest first) and becomes the canonical attachment order
// on the persisted record.
type Stager struct {
	mu     sync.Mutex
	assets []Asset
}

// NewStager returns an empty stager.
func NewStager() *Stager {
	return &Stager{}
}

// Add appends assets, truncating the combined sequence to MaxStaged.
// Already-staged entries are never evicted to make room; excess new
// entries are dropped. Returns the number of assets actually staged.
func (s *Stager) Add(assets ...Asset) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	room := MaxStaged - len(s.assets)
	if room <= 0 {
		return 0
	}
	if len(assets) > room {
		assets = assets[:room]
	}
	s.assets = append(s.assets, assets...)
	return len(assets)
}

// Remove deletes the asset at index. Out-of-bounds indices are a no-op.
func (s *Stager) Remove(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.assets) {
		return
	}
	s.assets = append(s.assets[:index], s.assets[index+1:]...)
}

// List returns a copy of the staged assets in insertion order.
func (s *Stager) List() []Asset {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Asset, len(s.assets))
	copy(out, s.assets)
	return out
}

// Len reports the number of staged assets.
func (s *Stager) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.assets)
}

// Clear drops all staged assets. Called after a successful submission.
func (s *Stager) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets = nil
}
