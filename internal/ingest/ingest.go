package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/formease/formease-server/constants"
	"github.com/formease/formease-server/internal/common"
)

// Document is an uploaded file before encoding: its bytes, the declared media
// type, and the declared length. It is consumed exactly once.
type Document struct {
	Filename  string
	MediaType string
	Size      int64
	Content   io.Reader
}

// Ingestor validates an uploaded document and encodes it for the extractor.
type Ingestor interface {
	// Ingest returns the data-URI payload for a valid document, or a
	// rejection (UNSUPPORTED_TYPE, TOO_LARGE) that never reaches the backend.
	Ingest(ctx context.Context, doc Document) (string, error)
}

type documentIngestor struct {
	logger *slog.Logger
}

func NewIngestor(logger *slog.Logger) Ingestor {
	if logger == nil {
		logger = slog.Default()
	}
	return &documentIngestor{logger: logger}
}

func (g *documentIngestor) Ingest(ctx context.Context, doc Document) (string, error) {
	mt := strings.ToLower(strings.TrimSpace(doc.MediaType))

	// Order matters: type first, then size.
	if !constants.IsAllowedMediaType(mt) {
		g.logger.Warn("ingest.rejected", "reason", "unsupported_type", "media_type", doc.MediaType, "filename", doc.Filename)
		return "", common.NewAppError(common.CodeUnsupportedType, "only PDF and plain-text uploads are accepted", nil)
	}
	if doc.Size > constants.MaxUploadBytes {
		g.logger.Warn("ingest.rejected", "reason", "too_large", "size", doc.Size, "filename", doc.Filename)
		return "", common.NewAppError(common.CodeTooLarge, "file exceeds the 5 MiB upload limit", nil)
	}

	// Read once, capped just past the ceiling so an understated declared
	// length cannot smuggle an oversized body through.
	data, err := io.ReadAll(io.LimitReader(doc.Content, constants.MaxUploadBytes+1))
	if err != nil {
		return "", common.NewAppError(common.CodeInvalidInput, "read uploaded file", err)
	}
	if int64(len(data)) > constants.MaxUploadBytes {
		g.logger.Warn("ingest.rejected", "reason", "too_large", "size", len(data), "filename", doc.Filename)
		return "", common.NewAppError(common.CodeTooLarge, "file exceeds the 5 MiB upload limit", nil)
	}

	if mt != constants.MediaTypePDF {
		if sniffed := http.DetectContentType(data); strings.HasPrefix(sniffed, "application/pdf") {
			// Declared text/plain but the bytes say PDF; trust the bytes.
			mt = constants.MediaTypePDF
		}
	}
	if mt == constants.MediaTypePDF {
		if err := checkPDF(data); err != nil {
			g.logger.Warn("ingest.rejected", "reason", "not_a_pdf", "filename", doc.Filename, "error", err)
			return "", common.NewAppError(common.CodeUnsupportedType, "file is not a readable PDF", err)
		}
	}

	g.logger.Info("ingest.ok", "media_type", mt, "bytes", len(data), "filename", doc.Filename)
	return EncodeDataURI(mt, data), nil
}

// checkPDF runs a structural read over the document so corrupt files fail
// here instead of after a paid backend call.
func checkPDF(data []byte) error {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	pdfCtx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return fmt.Errorf("read pdf: %w", err)
	}
	if err := pdfCtx.EnsurePageCount(); err != nil {
		return fmt.Errorf("pdf page count: %w", err)
	}
	return nil
}
