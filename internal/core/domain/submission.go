package domain

import (
	"strings"
	"time"
)

// SubmissionDraft is an in-progress client record as typed into the intake
// form. It is mutable until accepted by the backend, at which point the form
// resets it.
type SubmissionDraft struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

// Canonicalize returns a copy of the draft with surrounding whitespace
// trimmed, the email lowercased and the phone number rendered in the
// canonical +1-DDD-DDD-DDDD form.
func (d SubmissionDraft) Canonicalize() SubmissionDraft {
	return SubmissionDraft{
		FullName:    strings.TrimSpace(d.FullName),
		Email:       strings.ToLower(strings.TrimSpace(d.Email)),
		PhoneNumber: FormatPhone(strings.TrimSpace(d.PhoneNumber)),
	}
}

// SubmissionRecord is a stored submission as reported by the intake backend.
// Records are owned by the backend and never constructed locally.
type SubmissionRecord struct {
	ID          string    `json:"id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// StatsSnapshot holds the aggregate counters shown on the admin dashboard.
// It is refetched on every dashboard load.
type StatsSnapshot struct {
	TotalClients      int `json:"total_clients"`
	RecentSubmissions int `json:"recent_submissions"`
}
