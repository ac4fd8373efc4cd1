package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/formease/formease-server/internal/common"
)

// writeError maps an AppError code onto an HTTP response. The extraction
// taxonomy is part of the client contract: UNSUPPORTED_TYPE and TOO_LARGE
// mean "pick a different file", BACKEND_UNAVAILABLE and SCHEMA_VIOLATION both
// mean the extraction failed wholesale and nothing was pre-filled.
func writeError(c *gin.Context, err error) {
	code := common.ErrorCode(err)

	status := http.StatusInternalServerError
	message := "internal server error"

	switch code {
	case common.CodeUnsupportedType:
		status = http.StatusUnsupportedMediaType
		message = "Please upload a PDF or TXT file."
	case common.CodeTooLarge:
		status = http.StatusRequestEntityTooLarge
		message = "Please upload a file smaller than 5MB."
	case common.CodeInvalidInput:
		status = http.StatusBadRequest
		message = err.Error()
	case common.CodeNotFound:
		status = http.StatusNotFound
		message = "not found"
	case common.CodeBackendUnavailable, common.CodeSchemaViolation:
		status = http.StatusBadGateway
		message = "An error occurred during extraction. This may be due to a missing or invalid API key."
	}

	c.JSON(status, gin.H{"error": message, "code": code})
}
