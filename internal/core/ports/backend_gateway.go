package ports

import (
	"context"
	"io"

	"github.com/clientportal/intake-gateway/internal/core/domain"
)

// SubmissionGateway creates submissions on the intake backend.
//
// Submit returns the stored record on success, domain.ErrDuplicateEmail when
// the backend signals a duplicate-email conflict, *domain.RejectionError for
// any other rejection carrying a detail message, and
// domain.ErrBackendUnavailable for transport failures or detail-less errors.
type SubmissionGateway interface {
	Submit(ctx context.Context, draft domain.SubmissionDraft) (*domain.SubmissionRecord, error)
}

// AdminGateway covers the authenticated admin surface of the intake backend
// plus the login exchange that establishes the credential.
//
// The three read operations are independent: each fails on its own and no
// ordering is assumed between them. ExportCSV returns the raw byte stream
// together with the filename it should be offered under; the caller owns
// closing the stream.
type AdminGateway interface {
	Login(ctx context.Context, username, password string) (token string, err error)
	ListSubmissions(ctx context.Context) ([]domain.SubmissionRecord, error)
	GetStats(ctx context.Context) (*domain.StatsSnapshot, error)
	ExportCSV(ctx context.Context) (io.ReadCloser, string, error)
}
