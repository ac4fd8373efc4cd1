package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formease/formease-server/constants"
	"github.com/formease/formease-server/internal/common"
	"github.com/formease/formease-server/internal/ingest"
	"github.com/formease/formease-server/internal/llm"
)

// chatBackend fakes /chat/completions, answering every request with the
// given message content.
func chatBackend(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":{"message":"nope"}}`))
			return
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func testClient(baseURL string) *Client {
	return NewClient(Config{APIKey: "test-key", BaseURL: baseURL, Model: "gpt-4o-mini"}, nil)
}

func textReq(doc string) llm.ExtractRequest {
	return llm.ExtractRequest{FileDataURI: ingest.EncodeDataURI(constants.MediaTypeText, []byte(doc))}
}

func TestExtractDetailsHappyPath(t *testing.T) {
	srv := chatBackend(t, http.StatusOK,
		`{"firstName":"John","surname":"Doe","address":"10 Elm St, Anytown","postcode":"AN1 1AA","email":"john@x.com","favoriteTimeOfDay":"Morning"}`)
	defer srv.Close()

	out, raw, err := testClient(srv.URL).ExtractDetails(context.Background(), textReq("My name is John Doe. I love sunrises."))

	require.NoError(t, err)
	assert.Equal(t, "John", out.FirstName)
	assert.Equal(t, "Doe", out.Surname)
	assert.Equal(t, "Morning", out.FavoriteTimeOfDay)
	assert.NotEmpty(t, raw)
}

func TestExtractDetailsFillsMissingKeys(t *testing.T) {
	// Backend omits everything but the name; sanitize pads the record so it
	// still conforms.
	srv := chatBackend(t, http.StatusOK, `{"firstName":"John","surname":"Doe"}`)
	defer srv.Close()

	out, _, err := testClient(srv.URL).ExtractDetails(context.Background(), textReq("John Doe"))

	require.NoError(t, err)
	assert.Equal(t, "John", out.FirstName)
	assert.Equal(t, "", out.Address)
	assert.Equal(t, "", out.FavoriteTimeOfDay)
}

func TestExtractDetailsUnauthorizedIsBackendUnavailable(t *testing.T) {
	srv := chatBackend(t, http.StatusUnauthorized, "")
	defer srv.Close()

	_, _, err := testClient(srv.URL).ExtractDetails(context.Background(), textReq("doc"))

	require.Error(t, err)
	assert.Equal(t, common.CodeBackendUnavailable, common.ErrorCode(err))
}

func TestExtractDetailsUnreachableBackend(t *testing.T) {
	srv := chatBackend(t, http.StatusOK, "{}")
	srv.Close() // connection refused from here on

	_, _, err := testClient(srv.URL).ExtractDetails(context.Background(), textReq("doc"))

	require.Error(t, err)
	assert.Equal(t, common.CodeBackendUnavailable, common.ErrorCode(err))
}

func TestExtractDetailsTruncatedResponseIsBackendUnavailable(t *testing.T) {
	// The backend promises more bytes than it sends; the client must report
	// the failed read instead of limping on with a partial body.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "4096")
		_, _ = w.Write([]byte(`{"choices":[`))
	}))
	defer srv.Close()

	_, _, err := testClient(srv.URL).ExtractDetails(context.Background(), textReq("doc"))

	require.Error(t, err)
	assert.Equal(t, common.CodeBackendUnavailable, common.ErrorCode(err))
}

func TestExtractDetailsOutOfEnumValueIsSchemaViolation(t *testing.T) {
	srv := chatBackend(t, http.StatusOK,
		`{"firstName":"","surname":"","address":"","postcode":"","email":"","favoriteTimeOfDay":"Dawn"}`)
	defer srv.Close()

	_, _, err := testClient(srv.URL).ExtractDetails(context.Background(), textReq("dawn person"))

	require.Error(t, err)
	assert.Equal(t, common.CodeSchemaViolation, common.ErrorCode(err))
}

func TestExtractDetailsProseAnswerIsSchemaViolation(t *testing.T) {
	srv := chatBackend(t, http.StatusOK, "I'm sorry, I could not find any details.")
	defer srv.Close()

	_, _, err := testClient(srv.URL).ExtractDetails(context.Background(), textReq("doc"))

	require.Error(t, err)
	assert.Equal(t, common.CodeSchemaViolation, common.ErrorCode(err))
}

func TestExtractDetailsRejectsMalformedDataURI(t *testing.T) {
	srv := chatBackend(t, http.StatusOK, "{}")
	defer srv.Close()

	_, _, err := testClient(srv.URL).ExtractDetails(context.Background(), llm.ExtractRequest{FileDataURI: "plain text, no scheme"})

	require.Error(t, err)
	assert.Equal(t, common.CodeInvalidInput, common.ErrorCode(err))
}
