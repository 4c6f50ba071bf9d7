package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clientportal/intake-gateway/internal/core/domain"
	"github.com/clientportal/intake-gateway/internal/core/ports"
)

// Form copy shown on the two terminal submit surfaces.
const (
	successBanner   = "Thank you! Your information has been submitted successfully."
	duplicateDialog = "A client with this email already exists"
)

// IntakeHandler handles the public intake form surface.
type IntakeHandler struct {
	service ports.IntakeService
}

func NewIntakeHandler(service ports.IntakeService) *IntakeHandler {
	return &IntakeHandler{service: service}
}

// Submit handles POST /api/submissions.
//
// Outcomes map one-to-one onto the form's surfaces: 201 success banner
// (draft resets), 409 duplicate dialog (draft retained), 422 per-field
// messages. Rejections and transport failures fall through to the central
// error handler.
func (h *IntakeHandler) Submit(c echo.Context) error {
	var req submitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	record, err := h.service.Submit(c.Request().Context(), ports.SubmitInput{
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		var fieldErrs domain.FieldErrors
		if errors.As(err, &fieldErrs) {
			return c.JSON(http.StatusUnprocessableEntity, fieldErrorsResponse{FieldErrors: fieldErrs})
		}
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return c.JSON(http.StatusConflict, submitDuplicateResponse{
				Dialog:     duplicateDialog,
				ResetDraft: false,
			})
		}
		return err
	}

	resp := submitAcceptedResponse{
		Message:    successBanner,
		ResetDraft: true,
	}
	if record != nil {
		resp.Record = &recordResponse{
			ID:          record.ID,
			FullName:    record.FullName,
			Email:       record.Email,
			PhoneNumber: record.PhoneNumber,
			SubmittedAt: record.SubmittedAt,
		}
	}
	return c.JSON(http.StatusCreated, resp)
}

// PhonePreview handles GET /api/submissions/phone-preview?raw=...
//
// The form calls it on every keystroke so the phone field always displays
// the canonical formatting of the digits typed so far.
func (h *IntakeHandler) PhonePreview(c echo.Context) error {
	return c.JSON(http.StatusOK, phonePreviewResponse{
		Formatted: domain.FormatPhone(c.QueryParam("raw")),
	})
}
