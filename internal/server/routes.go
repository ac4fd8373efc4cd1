package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/formease/formease-server/internal/server/middleware"
)

// Handlers groups the HTTP handlers the router needs.
type Handlers struct {
	Extract     *ExtractHandler
	Submissions *SubmissionHandler
	Export      *ExportHandler
}

// SetupRoutes wires middleware and all routes onto the engine.
func SetupRoutes(r *gin.Engine, h *Handlers, logger *slog.Logger) {
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Recovery(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		v1.POST("/extract-details", h.Extract.ExtractDetails)
		v1.POST("/extract-details/upload", h.Extract.AutofillUpload)

		v1.POST("/submissions", h.Submissions.Create)
		v1.GET("/submissions/:id", h.Submissions.Get)
		v1.PUT("/submissions/:id", h.Submissions.Update)

		admin := v1.Group("/admin")
		{
			admin.GET("/submissions", h.Submissions.ListAll)
			admin.GET("/submissions/export", h.Export.Export)
			admin.GET("/users", h.Submissions.ListUsers)
			admin.GET("/users/:userId/submissions", h.Submissions.ListByUser)
		}
	}
}
