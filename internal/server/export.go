package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/formease/formease-server/internal/export"
)

// ExportHandler serves admin XLSX downloads of submissions.
type ExportHandler struct {
	svc    *export.Service
	logger *slog.Logger
}

func NewExportHandler(svc *export.Service, logger *slog.Logger) *ExportHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportHandler{svc: svc, logger: logger}
}

// Export handles GET /api/v1/admin/submissions/export?userId=...
func (h *ExportHandler) Export(c *gin.Context) {
	var userID *uuid.UUID
	if raw := c.Query("userId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userId must be a UUID"})
			return
		}
		userID = &id
	}

	data, err := h.svc.ExportSubmissionsXLSX(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	filename := fmt.Sprintf("submissions-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
