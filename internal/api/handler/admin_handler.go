package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/futtest/voting-system/internal/core/ports"
)

// AdminHandler serves data reserved for the super admin. The route is gated by
// the RequireRole middleware; by the time a request reaches Data it carries a
// super_admin identity.
type AdminHandler struct {
	repo ports.UserRepository
}

func NewAdminHandler(repo ports.UserRepository) *AdminHandler {
	return &AdminHandler{repo: repo}
}

type adminStats struct {
	UserCount     int    `json:"userCount"`
	ServerTime    string `json:"serverTime"`
	SecurityLevel string `json:"securityLevel"`
}

type adminDataResponse struct {
	Message string     `json:"message"`
	Stats   adminStats `json:"stats"`
}

// Data returns the protected admin panel payload.
//
// @Summary      Admin panel data
// @Tags         admin
// @Produce      json
// @Success      200  {object}  adminDataResponse
// @Failure      403  {object}  map[string]string
// @Router       /api/admin/data [get]
func (h *AdminHandler) Data(c echo.Context) error {
	count, err := h.repo.Count(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, adminDataResponse{
		Message: "Welcome to the protected super admin panel.",
		Stats: adminStats{
			UserCount:     count,
			ServerTime:    time.Now().UTC().Format(time.RFC3339),
			SecurityLevel: "maximum",
		},
	})
}
