package handler

import "time"

// Response types owned by the transport layer. These mirror the three
// surfaces the intake form shows — success banner, duplicate dialog, field
// errors — so the rendering layer stays a pure function of the payload.

// errorResponse is the standard error envelope returned on 4xx/5xx.
type errorResponse struct {
	Error string `json:"error"`
}

type recordResponse struct {
	ID          string    `json:"id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type submitRequest struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

// submitAcceptedResponse drives the success banner; reset_draft tells the
// form to clear its fields.
type submitAcceptedResponse struct {
	Message    string          `json:"message"`
	ResetDraft bool            `json:"reset_draft"`
	Record     *recordResponse `json:"record,omitempty"`
}

// submitDuplicateResponse drives the dedicated duplicate-email dialog,
// never the inline banner. The draft is retained for correction.
type submitDuplicateResponse struct {
	Dialog     string `json:"dialog"`
	ResetDraft bool   `json:"reset_draft"`
}

// fieldErrorsResponse carries one message per failing field.
type fieldErrorsResponse struct {
	FieldErrors map[string]string `json:"field_errors"`
}

type phonePreviewResponse struct {
	Formatted string `json:"formatted"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string `json:"message"`
}

// Dashboard sections carry their own state so one failed fetch never hides
// the other's data.
const (
	sectionLoaded = "loaded"
	sectionFailed = "failed"
)

type clientsSection struct {
	Status string           `json:"status"`
	Items  []recordResponse `json:"items,omitempty"`
}

type statsSection struct {
	Status            string `json:"status"`
	TotalClients      int    `json:"total_clients,omitempty"`
	RecentSubmissions int    `json:"recent_submissions,omitempty"`
}

type dashboardResponse struct {
	Clients clientsSection `json:"clients"`
	Stats   statsSection   `json:"stats"`
	Banner  string         `json:"banner,omitempty"`
}
