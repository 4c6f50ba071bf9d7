package service

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/clientportal/intake-gateway/internal/api/metrics"
	"github.com/clientportal/intake-gateway/internal/core/domain"
	"github.com/clientportal/intake-gateway/internal/core/ports"
	"github.com/clientportal/intake-gateway/internal/core/validate"
)

// IntakeService implements the public submission flow: canonicalise the
// draft, validate every field, and only then hand it to the backend
// gateway. One submit may be in flight at a time; a second concurrent
// attempt is refused with domain.ErrActionInFlight instead of issuing a
// duplicate request.
type IntakeService struct {
	gateway   ports.SubmissionGateway
	validator *validate.Validator
	inFlight  atomic.Bool
	log       zerolog.Logger
}

func NewIntakeService(gateway ports.SubmissionGateway, validator *validate.Validator, log zerolog.Logger) *IntakeService {
	return &IntakeService{gateway: gateway, validator: validator, log: log}
}

func (s *IntakeService) Submit(ctx context.Context, input ports.SubmitInput) (*domain.SubmissionRecord, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, domain.ErrActionInFlight
	}
	defer s.inFlight.Store(false)

	draft := domain.SubmissionDraft{
		FullName:    input.FullName,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
	}.Canonicalize()

	if fieldErrs := s.validator.Draft(draft); !fieldErrs.Valid() {
		metrics.SubmissionsTotal.WithLabelValues("validation_failed").Inc()
		return nil, fieldErrs
	}

	record, err := s.gateway.Submit(ctx, draft)
	switch {
	case err == nil:
		metrics.SubmissionsTotal.WithLabelValues("accepted").Inc()
		s.log.Info().Str("email", draft.Email).Msg("submission accepted")
	case errors.Is(err, domain.ErrDuplicateEmail):
		metrics.SubmissionsTotal.WithLabelValues("duplicate").Inc()
		s.log.Info().Str("email", draft.Email).Msg("submission rejected as duplicate")
	case errors.Is(err, domain.ErrBackendUnavailable):
		metrics.SubmissionsTotal.WithLabelValues("backend_unavailable").Inc()
	default:
		metrics.SubmissionsTotal.WithLabelValues("rejected").Inc()
		s.log.Warn().Err(err).Msg("submission rejected by backend")
	}
	return record, err
}
