package export

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/multiweb/multiweb-backend/internal/auth"
	"github.com/multiweb/multiweb-backend/internal/export/domain"
)

type Handler struct {
	service    *Service
	production bool
}

// Register wires the export endpoint under the authenticated projects group.
func Register(rg *gin.RouterGroup, service *Service, production bool) {
	h := &Handler{service: service, production: production}

	rg.POST("/:slug/export", h.export)
}

func (h *Handler) export(c *gin.Context) {
	archive, filename, err := h.service.ExportProject(c.Request.Context(), c.Param("slug"), auth.UserID(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		case errors.Is(err, domain.ErrPermissionDenied):
			c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "only verified owners can export projects"})
		default:
			msg := "export failed"
			if !h.production {
				msg = err.Error()
			}
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": msg})
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/zip", archive)
}
