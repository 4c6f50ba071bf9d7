package ports

import (
	"context"
	"io"

	"github.com/clientportal/intake-gateway/internal/core/domain"
)

// SubmitInput carries the raw form fields exactly as typed; canonicalisation
// (trimming, email lowercasing, phone formatting) is the service's job.
type SubmitInput struct {
	FullName    string
	Email       string
	PhoneNumber string
}

// IntakeService owns the public submission flow: canonicalise, validate,
// submit. Validation failures come back as domain.FieldErrors; nothing
// reaches the wire until the draft is fully valid.
type IntakeService interface {
	Submit(ctx context.Context, input SubmitInput) (*domain.SubmissionRecord, error)
}

// AuthService drives the admin session transitions against the backend
// login endpoint and the process-wide session store.
type AuthService interface {
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
}

// DashboardView is the merged result of the two concurrent dashboard
// fetches. Each section carries its own error so one failure never hides
// the other section's data.
type DashboardView struct {
	Submissions []domain.SubmissionRecord
	ListErr     error

	Stats    *domain.StatsSnapshot
	StatsErr error
}

// Partial reports whether exactly one of the two sections failed.
func (v *DashboardView) Partial() bool {
	return (v.ListErr == nil) != (v.StatsErr == nil)
}

// DashboardService loads the admin dashboard and streams the CSV export.
type DashboardService interface {
	Load(ctx context.Context) (*DashboardView, error)
	Export(ctx context.Context) (io.ReadCloser, string, error)
}
