package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clientportal/intake-gateway/internal/core/ports"
)

// partialLoadBanner is the page-level notice shown when one dashboard
// section failed while the other loaded.
const partialLoadBanner = "Failed to load data"

// AdminHandler serves the protected dashboard and export views.
type AdminHandler struct {
	service ports.DashboardService
}

func NewAdminHandler(service ports.DashboardService) *AdminHandler {
	return &AdminHandler{service: service}
}

// Dashboard handles GET /api/admin/dashboard.
//
// The response is the dashboard view model: each section carries its own
// loaded/failed state, and a banner appears when exactly one failed.
// Whole-view failures (stale session, both sections down) come back through
// the central error handler.
func (h *AdminHandler) Dashboard(c echo.Context) error {
	view, err := h.service.Load(c.Request().Context())
	if err != nil {
		return err
	}

	resp := dashboardResponse{
		Clients: clientsSection{Status: sectionLoaded},
		Stats:   statsSection{Status: sectionLoaded},
	}

	if view.ListErr != nil {
		resp.Clients.Status = sectionFailed
	} else {
		resp.Clients.Items = make([]recordResponse, 0, len(view.Submissions))
		for _, record := range view.Submissions {
			resp.Clients.Items = append(resp.Clients.Items, recordResponse{
				ID:          record.ID,
				FullName:    record.FullName,
				Email:       record.Email,
				PhoneNumber: record.PhoneNumber,
				SubmittedAt: record.SubmittedAt,
			})
		}
	}

	if view.StatsErr != nil {
		resp.Stats.Status = sectionFailed
	} else if view.Stats != nil {
		resp.Stats.TotalClients = view.Stats.TotalClients
		resp.Stats.RecentSubmissions = view.Stats.RecentSubmissions
	}

	if view.Partial() {
		resp.Banner = partialLoadBanner
	}
	return c.JSON(http.StatusOK, resp)
}

// Export handles GET /api/admin/export, streaming the backend's CSV bytes
// through as a download attachment. The bytes pass through untouched.
func (h *AdminHandler) Export(c echo.Context) error {
	stream, filename, err := h.service.Export(c.Request().Context())
	if err != nil {
		return err
	}
	defer stream.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename=`+filename)
	return c.Stream(http.StatusOK, "text/csv", stream)
}
