package extract

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"

	"github.com/formease/formease-server/constants"
	"github.com/formease/formease-server/internal/cache"
	"github.com/formease/formease-server/internal/common"
	"github.com/formease/formease-server/internal/form"
	"github.com/formease/formease-server/internal/ingest"
	"github.com/formease/formease-server/internal/llm"
)

// Service runs the document-to-details pipeline: ingest (validate + encode),
// extract (schema-bound backend call), and optionally the form merge. It is
// stateless per request; the cache and extractor clients are the only shared
// handles.
type Service struct {
	ingestor  ingest.Ingestor
	extractor llm.DetailExtractor
	cache     cache.ExtractionCache
	logger    *slog.Logger
}

func NewService(ing ingest.Ingestor, ex llm.DetailExtractor, c cache.ExtractionCache, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if c == nil {
		c = cache.NewNoopCache()
	}
	return &Service{ingestor: ing, extractor: ex, cache: c, logger: logger}
}

// ExtractFromDataURI runs extraction for an already-encoded document. The
// same type and size gates apply as for raw uploads, so a caller cannot
// bypass the ingest rules by encoding the file itself. An all-empty result
// is not an error; callers check DetailFields.IsEmpty.
func (s *Service) ExtractFromDataURI(ctx context.Context, fileDataURI string) (llm.DetailFields, error) {
	mediaType, data, err := ingest.ParseDataURI(fileDataURI)
	if err != nil {
		return llm.DetailFields{}, common.NewAppError(common.CodeInvalidInput, "fileDataUri must be a base64 data URI", err)
	}
	if !constants.IsAllowedMediaType(mediaType) {
		return llm.DetailFields{}, common.NewAppError(common.CodeUnsupportedType, "only PDF and plain-text documents are accepted", nil)
	}
	if len(data) > constants.MaxUploadBytes {
		return llm.DetailFields{}, common.NewAppError(common.CodeTooLarge, "document exceeds the 5 MiB limit", nil)
	}

	sum := sha256.Sum256(data)
	key := hex.EncodeToString(sum[:])
	if fields, ok := s.cache.Get(ctx, key); ok {
		s.logger.Info("extract.cache_hit", "content_hash", key)
		return fields, nil
	}

	fields, _, err := s.extractor.ExtractDetails(ctx, llm.ExtractRequest{FileDataURI: fileDataURI})
	if err != nil {
		return llm.DetailFields{}, err
	}

	s.cache.Set(ctx, key, fields)
	if fields.IsEmpty() {
		s.logger.Info("extract.empty", "content_hash", key)
	}
	return fields, nil
}

// ExtractDocument ingests a raw upload and runs extraction on the result.
// An ingest rejection returns before the backend is ever invoked.
func (s *Service) ExtractDocument(ctx context.Context, doc ingest.Document) (llm.DetailFields, error) {
	payload, err := s.ingestor.Ingest(ctx, doc)
	if err != nil {
		return llm.DetailFields{}, err
	}
	return s.ExtractFromDataURI(ctx, payload)
}

// AutofillDocument extracts from a raw upload and merges the result into the
// caller's form state, returning the number of fields filled. On any
// extraction failure the state is left exactly as it was; there is no
// partial merge.
func (s *Service) AutofillDocument(ctx context.Context, doc ingest.Document, state *form.State) (int, llm.DetailFields, error) {
	fields, err := s.ExtractDocument(ctx, doc)
	if err != nil {
		return 0, llm.DetailFields{}, err
	}
	filled := form.MergeExtracted(fields, state)
	return filled, fields, nil
}
