package backend

import (
	"context"
	"net/http"

	"github.com/clientportal/intake-gateway/internal/core/domain"
)

// SubmissionGateway implements ports.SubmissionGateway against
// POST /api/clients. The endpoint is public: no credential is attached.
type SubmissionGateway struct {
	client *Client
}

func NewSubmissionGateway(client *Client) *SubmissionGateway {
	return &SubmissionGateway{client: client}
}

// submitResponse tolerates both backend response shapes: the full stored
// record, and the envelope carrying only a client_id.
type submitResponse struct {
	domain.SubmissionRecord
	ClientID string `json:"client_id"`
}

func (g *SubmissionGateway) Submit(ctx context.Context, draft domain.SubmissionDraft) (*domain.SubmissionRecord, error) {
	var resp submitResponse
	if err := g.client.doJSON(ctx, "submit", http.MethodPost, "/api/clients", draft, &resp, false); err != nil {
		return nil, err
	}

	record := resp.SubmissionRecord
	if record.ID == "" {
		record.ID = resp.ClientID
	}
	// Envelope-only responses omit the echoed fields; fill from the draft so
	// the caller always gets a complete record.
	if record.Email == "" {
		record.FullName = draft.FullName
		record.Email = draft.Email
		record.PhoneNumber = draft.PhoneNumber
	}
	return &record, nil
}
