package server

import (
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/formease/formease-server/constants"
	"github.com/formease/formease-server/internal/common"
	"github.com/formease/formease-server/internal/extract"
	"github.com/formease/formease-server/internal/form"
	"github.com/formease/formease-server/internal/ingest"
)

// ExtractHandler exposes the document-to-details pipeline.
type ExtractHandler struct {
	svc    *extract.Service
	logger *slog.Logger
}

func NewExtractHandler(svc *extract.Service, logger *slog.Logger) *ExtractHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExtractHandler{svc: svc, logger: logger}
}

type extractDetailsRequest struct {
	FileDataURI string `json:"fileDataUri" binding:"required"`
}

// ExtractDetails handles POST /api/v1/extract-details. The response body is
// exactly the six contract keys; an all-empty object means the document had
// nothing to find, which is not a failure.
func (h *ExtractHandler) ExtractDetails(c *gin.Context) {
	var req extractDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fileDataUri is required"})
		return
	}

	fields, err := h.svc.ExtractFromDataURI(c.Request.Context(), req.FileDataURI)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, fields)
}

// AutofillUpload handles POST /api/v1/extract-details/upload: a multipart
// upload plus the caller's current form values. It runs the full
// ingest-extract-merge pipeline and reports how many fields were filled so
// the client can show "N field(s) have been pre-filled for you".
func (h *ExtractHandler) AutofillUpload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	defer file.Close()

	mediaType := header.Header.Get("Content-Type")
	if mediaType == "" || mediaType == "application/octet-stream" {
		// Browsers often send octet-stream; fall back to the extension.
		mediaType = constants.MediaTypeForExt(filepath.Ext(header.Filename))
	}
	mediaType = strings.TrimSpace(strings.Split(mediaType, ";")[0])

	state := form.State{
		FirstName:         c.PostForm("firstName"),
		Surname:           c.PostForm("surname"),
		Address:           c.PostForm("address"),
		Postcode:          c.PostForm("postcode"),
		Email:             c.PostForm("email"),
		FavoriteTimeOfDay: c.PostForm("favoriteTimeOfDay"),
	}

	doc := ingest.Document{
		Filename:  header.Filename,
		MediaType: mediaType,
		Size:      header.Size,
		Content:   file,
	}

	filled, fields, err := h.svc.AutofillDocument(c.Request.Context(), doc, &state)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := gin.H{
		"fields":       fields,
		"form":         state,
		"fieldsFilled": filled,
		"outcome":      "ok",
	}
	if fields.IsEmpty() {
		// Nothing found is not a failure; the client shows "no details found"
		// and leaves the form alone.
		resp["outcome"] = "empty"
		resp["code"] = common.CodeEmptyExtraction
	}
	c.JSON(http.StatusOK, resp)
}
