package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/clientportal/intake-gateway/internal/api/metrics"
	"github.com/clientportal/intake-gateway/internal/core/domain"
	"github.com/clientportal/intake-gateway/internal/core/ports"
)

// DashboardService loads the admin dashboard and drives the CSV export.
type DashboardService struct {
	gateway        ports.AdminGateway
	exportInFlight atomic.Bool
	log            zerolog.Logger
}

func NewDashboardService(gateway ports.AdminGateway, log zerolog.Logger) *DashboardService {
	return &DashboardService{gateway: gateway, log: log}
}

// Load fetches the submission list and the stats snapshot concurrently;
// neither fetch blocks or hides the other, and each result lands in its own
// cell of the view.
//
// Failure policy: a stale or missing credential on either side fails the
// whole view with domain.ErrUnauthenticated; both sides failing fails the
// view with domain.ErrBackendUnavailable; a single failure yields a partial
// view whose failed section carries its error.
func (s *DashboardService) Load(ctx context.Context) (*ports.DashboardView, error) {
	view := &ports.DashboardView{}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		view.Submissions, view.ListErr = s.gateway.ListSubmissions(ctx)
	}()
	go func() {
		defer wg.Done()
		view.Stats, view.StatsErr = s.gateway.GetStats(ctx)
	}()
	wg.Wait()

	if errors.Is(view.ListErr, domain.ErrUnauthenticated) || errors.Is(view.StatsErr, domain.ErrUnauthenticated) {
		metrics.DashboardLoadsTotal.WithLabelValues("failed").Inc()
		return nil, domain.ErrUnauthenticated
	}
	if view.ListErr != nil && view.StatsErr != nil {
		metrics.DashboardLoadsTotal.WithLabelValues("failed").Inc()
		s.log.Error().AnErr("list_err", view.ListErr).AnErr("stats_err", view.StatsErr).
			Msg("dashboard load failed on both sections")
		return nil, domain.ErrBackendUnavailable
	}

	if view.Partial() {
		metrics.DashboardLoadsTotal.WithLabelValues("partial").Inc()
		s.log.Warn().AnErr("list_err", view.ListErr).AnErr("stats_err", view.StatsErr).
			Msg("dashboard loaded partially")
	} else {
		metrics.DashboardLoadsTotal.WithLabelValues("full").Inc()
	}
	return view, nil
}

// Export fetches the CSV byte stream. One export may be issued at a time;
// the guard covers issuing the request, while the returned stream is the
// caller's to drain and close.
func (s *DashboardService) Export(ctx context.Context) (io.ReadCloser, string, error) {
	if !s.exportInFlight.CompareAndSwap(false, true) {
		return nil, "", domain.ErrActionInFlight
	}
	defer s.exportInFlight.Store(false)

	stream, filename, err := s.gateway.ExportCSV(ctx)
	if err != nil {
		metrics.ExportsTotal.WithLabelValues("error").Inc()
		return nil, "", err
	}
	metrics.ExportsTotal.WithLabelValues("ok").Inc()
	return stream, filename, nil
}
