package backend

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/clientportal/intake-gateway/internal/api/metrics"
	"github.com/clientportal/intake-gateway/internal/core/domain"
)

// exportFilename is the name the CSV stream is offered under when the
// backend does not dictate one.
const exportFilename = "client_submissions.csv"

// AdminGateway implements ports.AdminGateway. All reads attach the current
// session token as a bearer credential; Login is the unauthenticated
// exchange that obtains it.
type AdminGateway struct {
	client *Client
}

func NewAdminGateway(client *Client) *AdminGateway {
	return &AdminGateway{client: client}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// Login exchanges credentials for an opaque token. A 401 here is a bad
// credential, not a stale session, so the backend's message is surfaced
// verbatim instead of being folded into ErrUnauthenticated.
func (g *AdminGateway) Login(ctx context.Context, username, password string) (string, error) {
	req, err := g.client.newRequest(ctx, http.MethodPost, "/api/admin/login",
		loginRequest{Username: username, Password: password}, false)
	if err != nil {
		return "", err
	}

	start := time.Now()
	resp, err := g.client.http.Do(req)
	if err != nil {
		metrics.BackendRequestDuration.WithLabelValues("login", "error").Observe(time.Since(start).Seconds())
		g.client.log.Error().Err(err).Msg("backend login request failed")
		return "", domain.ErrBackendUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.BackendRequestDuration.WithLabelValues("login", "error").Observe(time.Since(start).Seconds())
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if msg := rejectionMessage(body); msg != "" {
			return "", &domain.RejectionError{Message: msg}
		}
		return "", domain.ErrBackendUnavailable
	}
	metrics.BackendRequestDuration.WithLabelValues("login", "ok").Observe(time.Since(start).Seconds())

	var out loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.AccessToken == "" {
		g.client.log.Error().AnErr("decode_err", err).Msg("backend login response unusable")
		return "", domain.ErrBackendUnavailable
	}
	return out.AccessToken, nil
}

func (g *AdminGateway) ListSubmissions(ctx context.Context) ([]domain.SubmissionRecord, error) {
	var records []domain.SubmissionRecord
	if err := g.client.doJSON(ctx, "list_clients", http.MethodGet, "/api/admin/clients", nil, &records, true); err != nil {
		return nil, err
	}
	return records, nil
}

func (g *AdminGateway) GetStats(ctx context.Context) (*domain.StatsSnapshot, error) {
	var stats domain.StatsSnapshot
	if err := g.client.doJSON(ctx, "stats", http.MethodGet, "/api/admin/stats", nil, &stats, true); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ExportCSV returns the raw CSV byte stream and the filename to offer it
// under. The stream is the caller's to drain and close; no decoding or
// reformatting happens here.
func (g *AdminGateway) ExportCSV(ctx context.Context) (io.ReadCloser, string, error) {
	req, err := g.client.newRequest(ctx, http.MethodGet, "/api/admin/clients/export", nil, true)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := g.client.send("export", req)
	if err != nil {
		return nil, "", err
	}

	filename := exportFilename
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		if name := params["filename"]; name != "" {
			filename = name
		}
	}
	return resp.Body, filename, nil
}
