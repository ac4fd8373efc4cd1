package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/formease/formease-server/constants"
	"github.com/formease/formease-server/internal/common"
	"github.com/formease/formease-server/internal/ingest"
	"github.com/formease/formease-server/internal/llm"
)

// ExtractDetails implements llm.DetailExtractor over chat/completions.
// Plain-text documents are decoded and inlined into the user prompt; PDFs
// travel as a file content part so the backend reads them natively.
func (c *Client) ExtractDetails(ctx context.Context, req llm.ExtractRequest) (llm.DetailFields, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	mediaType, data, err := ingest.ParseDataURI(req.FileDataURI)
	if err != nil {
		return llm.DetailFields{}, nil, common.NewAppError(common.CodeInvalidInput, "payload is not a base64 data URI", err)
	}

	c.log.Info("llm.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"media_type", mediaType,
		"doc_bytes", len(data),
	)

	schema := llm.BuildDetailsJSONSchema()
	sys := llm.BuildSystemPrompt()

	var userContent any
	if mediaType == constants.MediaTypePDF {
		userContent = []map[string]any{
			{
				"type": "file",
				"file": map[string]any{
					"filename":  "document.pdf",
					"file_data": req.FileDataURI,
				},
			},
			{"type": "text", "text": llm.BuildUserPrompt("", true)},
		}
	} else {
		userContent = llm.BuildUserPrompt(string(data), false)
	}

	body := map[string]any{
		"model":           c.cfg.Model,
		"temperature":     c.cfg.Temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": sys},
			{"role": "system", "content": "JSON Schema:\n" + mustJSON(schema)},
			{"role": "user", "content": userContent},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	raw, err := c.post(ctx, endpoint, body)
	if err != nil {
		c.log.Error("llm.extract.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.DetailFields{}, nil, common.NewAppError(common.CodeBackendUnavailable, "extraction backend unreachable", err)
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.log.Error("llm.extract.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.DetailFields{}, raw, common.NewAppError(common.CodeBackendUnavailable, "decode backend response", err)
	}
	if len(cc.Choices) == 0 {
		c.log.Error("llm.extract.no_choices", "req_id", rid, "elapsed_ms", time.Since(start).Milliseconds())
		return llm.DetailFields{}, raw, common.NewAppError(common.CodeBackendUnavailable, "no choices in backend response", nil)
	}
	rawContent := []byte(strings.TrimSpace(cc.Choices[0].Message.Content))

	// Sanitize first (fill missing keys with "", trim, canonicalize enum
	// casing), then validate strictly. Either the whole record conforms or
	// the extraction fails; no partial data escapes.
	cleaned, adjusted, sErr := llm.SanitizeDetailFields(rawContent)
	if sErr != nil {
		c.log.Error("llm.extract.sanitize_failed",
			"req_id", rid, "error", sErr,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.DetailFields{}, rawContent, common.NewAppError(common.CodeSchemaViolation, "backend returned non-JSON content", sErr)
	}
	if len(adjusted) > 0 {
		c.log.Warn("llm.extract.sanitize_applied", "req_id", rid, "adjusted", adjusted)
	}
	if vErr := llm.ValidateJSONAgainstSchema(schema, cleaned); vErr != nil {
		c.log.Error("llm.extract.schema_validation_failed",
			"req_id", rid, "error", vErr, "content", string(rawContent),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.DetailFields{}, rawContent, common.NewAppError(common.CodeSchemaViolation, "backend output does not match the extraction contract", vErr)
	}

	var out llm.DetailFields
	if err := json.Unmarshal(cleaned, &out); err != nil {
		return llm.DetailFields{}, cleaned, common.NewAppError(common.CodeSchemaViolation, "unmarshal fields", err)
	}

	c.log.Info("llm.extract.ok",
		"req_id", rid,
		"empty", out.IsEmpty(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, cleaned, nil
}

func (c *Client) post(ctx context.Context, url string, body map[string]any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai http error: %w", err)
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			c.log.Warn("openai response body close error", "error", err)
		}
	}(resp.Body)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read openai response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openai status %d: %s", resp.StatusCode, string(raw))
	}
	return raw, nil
}

func mustJSON(v any) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}
