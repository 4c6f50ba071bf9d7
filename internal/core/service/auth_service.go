package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/clientportal/intake-gateway/internal/api/metrics"
	"github.com/clientportal/intake-gateway/internal/core/domain"
	"github.com/clientportal/intake-gateway/internal/core/ports"
	"github.com/clientportal/intake-gateway/internal/core/session"
)

// AuthService exchanges admin credentials for a token at the backend and
// drives the session store transitions. Credentials pass through verbatim;
// this side never hashes, parses or validates them beyond presence.
type AuthService struct {
	gateway  ports.AdminGateway
	sessions *session.Store
	log      zerolog.Logger
}

func NewAuthService(gateway ports.AdminGateway, sessions *session.Store, log zerolog.Logger) *AuthService {
	return &AuthService{gateway: gateway, sessions: sessions, log: log}
}

func (s *AuthService) Login(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return &domain.RejectionError{Message: "Username and password are required"}
	}

	token, err := s.gateway.Login(ctx, username, password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}

	if err := s.sessions.Login(ctx, token); err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		s.log.Error().Err(err).Msg("token obtained but session persistence failed")
		return err
	}
	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	return s.sessions.Logout(ctx)
}
