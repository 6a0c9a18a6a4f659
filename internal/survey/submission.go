package survey

import (
	"encoding/json"
	"fmt"
	"time"

	"NYCU-SDC/photo-survey-backend/internal/fingerprint"

	"github.com/google/uuid"
)

// Metadata is the capture context stored next to the answers. Session and
// first/last seen timestamps are only recorded for photographer submissions.
type Metadata struct {
	IP          string     `json:"ip"                    bson:"ip"`
	UserAgent   string     `json:"userAgent"             bson:"userAgent"`
	SessionID   string     `json:"sessionId,omitempty"   bson:"sessionId,omitempty"`
	FirstSeenAt *time.Time `json:"firstSeenAt,omitempty" bson:"firstSeenAt,omitempty"`
	LastSeenAt  *time.Time `json:"lastSeenAt,omitempty"  bson:"lastSeenAt,omitempty"`
}

// Submission is a stored survey document. It is created once and never
// updated.
type Submission[A Answers] struct {
	ID          uuid.UUID
	Fingerprint string
	Answers     A
	Metadata    Metadata
	CreatedAt   time.Time
}

// NewSubmission builds the record to persist for a visitor. Timestamps are
// truncated to milliseconds so every backing store round-trips them exactly.
func NewSubmission[A Answers](visitor fingerprint.Visitor, answers A, now time.Time) Submission[A] {
	now = now.UTC().Truncate(time.Millisecond)

	metadata := Metadata{
		IP:        visitor.IP,
		UserAgent: visitor.UserAgent,
	}
	if metadata.IP == "" {
		metadata.IP = fingerprint.UnknownIP
	}

	if answers.Variant() == VariantPhotographer {
		firstSeen, lastSeen := now, now
		metadata.SessionID = visitor.Fingerprint
		metadata.FirstSeenAt = &firstSeen
		metadata.LastSeenAt = &lastSeen
	}

	return Submission[A]{
		ID:          uuid.New(),
		Fingerprint: visitor.Fingerprint,
		Answers:     answers,
		Metadata:    metadata,
		CreatedAt:   now,
	}
}

// MarshalJSON renders the submission as one flat document with the answers
// next to the bookkeeping fields.
func (s Submission[A]) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(s.Answers)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s answers: %w", s.Answers.Variant(), err)
	}

	document := make(map[string]json.RawMessage)
	if err := json.Unmarshal(raw, &document); err != nil {
		return nil, fmt.Errorf("failed to flatten %s answers: %w", s.Answers.Variant(), err)
	}

	bookkeeping := map[string]any{
		"id":          s.ID,
		"fingerprint": s.Fingerprint,
		"metadata":    s.Metadata,
		"createdAt":   s.CreatedAt,
	}
	for key, value := range bookkeeping {
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s: %w", key, err)
		}
		document[key] = encoded
	}

	return json.Marshal(document)
}
