package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clientportal/intake-gateway/internal/core/domain"
)

func TestAdminLogin_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/admin/login" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if req.Username != "admin" || req.Password != "secret" {
			t.Fatalf("unexpected credentials: %+v", req)
		}
		json.NewEncoder(w).Encode(map[string]string{
			"access_token": "tok-abc",
			"message":      "Login successful",
		})
	}))
	defer srv.Close()

	gw := NewAdminGateway(newTestClient(t, srv.URL, ""))
	token, err := gw.Login(context.Background(), "admin", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token != "tok-abc" {
		t.Fatalf("token = %q", token)
	}
}

func TestAdminLogin_BadCredentialsSurfacesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid username or password"})
	}))
	defer srv.Close()

	gw := NewAdminGateway(newTestClient(t, srv.URL, ""))
	_, err := gw.Login(context.Background(), "admin", "wrong")

	var rejection *domain.RejectionError
	if !errors.As(err, &rejection) {
		t.Fatalf("expected RejectionError, got %v", err)
	}
	if rejection.Message != "Invalid username or password" {
		t.Fatalf("message not verbatim: %q", rejection.Message)
	}
}

func TestListSubmissions_AttachesBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-abc" {
			t.Fatalf("authorization header = %q", got)
		}
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": "rec-1", "full_name": "Jane Doe", "email": "jane@example.com",
				"phone_number": "+1-555-123-4567", "submitted_at": "2025-08-30T12:00:00Z"},
		})
	}))
	defer srv.Close()

	gw := NewAdminGateway(newTestClient(t, srv.URL, "tok-abc"))
	records, err := gw.ListSubmissions(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 || records[0].ID != "rec-1" {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestListSubmissions_NoSessionFailsFast(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	gw := NewAdminGateway(newTestClient(t, srv.URL, ""))
	_, err := gw.ListSubmissions(context.Background())
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if called {
		t.Fatalf("request must not reach the backend without a token")
	}
}

func TestGetStats_StaleTokenMapsToUnauthenticated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid or expired token"})
	}))
	defer srv.Close()

	gw := NewAdminGateway(newTestClient(t, srv.URL, "stale"))
	_, err := gw.GetStats(context.Background())
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestGetStats_Decodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]int{"total_clients": 42, "recent_submissions": 7})
	}))
	defer srv.Close()

	gw := NewAdminGateway(newTestClient(t, srv.URL, "tok"))
	stats, err := gw.GetStats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalClients != 42 || stats.RecentSubmissions != 7 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestExportCSV_StreamsBytes(t *testing.T) {
	const payload = "ID,Full Name,Email\nrec-1,Jane Doe,jane@example.com\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Fatalf("authorization header = %q", got)
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename=client_submissions.csv`)
		io.WriteString(w, payload)
	}))
	defer srv.Close()

	gw := NewAdminGateway(newTestClient(t, srv.URL, "tok"))
	stream, filename, err := gw.ExportCSV(context.Background())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	defer stream.Close()

	if filename != "client_submissions.csv" {
		t.Fatalf("filename = %q", filename)
	}
	raw, err := io.ReadAll(stream)
	if err != nil {
		t.Fatalf("read stream: %v", err)
	}
	if string(raw) != payload {
		t.Fatalf("stream altered: %q", raw)
	}
}

func TestExportCSV_DefaultFilename(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "ID\n")
	}))
	defer srv.Close()

	gw := NewAdminGateway(newTestClient(t, srv.URL, "tok"))
	stream, filename, err := gw.ExportCSV(context.Background())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	stream.Close()
	if filename != exportFilename {
		t.Fatalf("filename = %q", filename)
	}
}
