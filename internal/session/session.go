// Package session stores per-browser state that outlives a single request:
// the listing draft being built in the wizard and the listings already
// counted as viewed.
package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrInvalidID is returned for empty session identifiers.
var ErrInvalidID = errors.New("invalid session id")

// MaxViewed bounds the view history kept per session. The oldest entries
// are dropped first.
const MaxViewed = 200

// Session is the serialisable state kept for one browsing session.
type Session struct {
	ListingInProgress *uuid.UUID        `json:"listing_in_progress,omitempty"`
	LPData            map[string]string `json:"LP_data,omitempty"`
	Viewed            []uuid.UUID       `json:"viewed,omitempty"`
}

// Store persists sessions by id. Get returns an empty session when none exists.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, id string, s *Session) error
	Delete(ctx context.Context, id string) error
}

// HasDraft reports whether a listing is being built.
func (s *Session) HasDraft() bool {
	return s.ListingInProgress != nil
}

// HasLPData reports whether plate lookup data is present.
func (s *Session) HasLPData() bool {
	return len(s.LPData) > 0
}

// SetLP merges values into LP_data.
func (s *Session) SetLP(values map[string]string) {
	if s.LPData == nil {
		s.LPData = make(map[string]string, len(values))
	}
	for k, v := range values {
		s.LPData[k] = v
	}
}

// ClearDraft forgets the in-progress listing and the plate data. Persisted
// listing records are not touched.
func (s *Session) ClearDraft() {
	s.ListingInProgress = nil
	s.LPData = nil
}

// MarkViewed records a listing view and reports whether it is the first in
// this session. Only the most recent MaxViewed listings are remembered.
func (s *Session) MarkViewed(listingID uuid.UUID) bool {
	for _, id := range s.Viewed {
		if id == listingID {
			return false
		}
	}
	if len(s.Viewed) >= MaxViewed {
		s.Viewed = append(s.Viewed[:0:0], s.Viewed[len(s.Viewed)-MaxViewed+1:]...)
	}
	s.Viewed = append(s.Viewed, listingID)
	return true
}
