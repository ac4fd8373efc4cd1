package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formease/formease-server/internal/common"
	"github.com/formease/formease-server/internal/entity"
	"github.com/formease/formease-server/internal/repository"
)

type stubSubmissionRepo struct {
	created   *repository.CreateSubmissionRequest
	updated   *repository.UpdateSubmissionRequest
	updatedID uuid.UUID
	sub       *entity.Submission
	err       error
}

func (s *stubSubmissionRepo) Create(_ context.Context, req *repository.CreateSubmissionRequest) (*entity.Submission, error) {
	s.created = req
	return s.sub, s.err
}

func (s *stubSubmissionRepo) Update(_ context.Context, id uuid.UUID, req *repository.UpdateSubmissionRequest) (*entity.Submission, error) {
	s.updatedID = id
	s.updated = req
	return s.sub, s.err
}

func (s *stubSubmissionRepo) GetByID(context.Context, uuid.UUID) (*entity.Submission, error) {
	return s.sub, s.err
}

func (s *stubSubmissionRepo) ListAll(context.Context) ([]*entity.Submission, error) {
	return nil, s.err
}

func (s *stubSubmissionRepo) ListByUser(context.Context, uuid.UUID) ([]*entity.Submission, error) {
	return nil, s.err
}

type stubUserRepo struct {
	exists    bool
	existsErr error
}

func (s *stubUserRepo) UpsertByEmail(_ context.Context, email string) (*entity.User, error) {
	return &entity.User{ID: uuid.New(), Email: email}, nil
}

func (s *stubUserRepo) GetByID(context.Context, uuid.UUID) (*entity.User, error) {
	return nil, common.NewAppError(common.CodeNotFound, "user not found", nil)
}

func (s *stubUserRepo) List(context.Context) ([]*entity.User, error) { return nil, nil }

func (s *stubUserRepo) Exists(context.Context, uuid.UUID) (bool, error) {
	return s.exists, s.existsErr
}

func newSubmissionRouter(subs *stubSubmissionRepo, users *stubUserRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewSubmissionHandler(subs, users, nil)

	r := gin.New()
	r.POST("/api/v1/submissions", h.Create)
	r.PUT("/api/v1/submissions/:id", h.Update)
	r.GET("/api/v1/admin/users/:userId/submissions", h.ListByUser)
	return r
}

func storedSubmission() *entity.Submission {
	return &entity.Submission{
		ID:                uuid.New(),
		FirstName:         "John",
		Surname:           "Doe",
		Address:           "10 Elm St, Anytown",
		Postcode:          "AN1 1AA",
		Email:             "john@x.com",
		FavoriteTimeOfDay: "Morning",
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
}

func validSubmissionBody() gin.H {
	return gin.H{
		"firstName":         "John",
		"surname":           "Doe",
		"address":           "10 Elm St, Anytown",
		"postcode":          "AN1 1AA",
		"email":             "john@x.com",
		"favoriteTimeOfDay": "Morning",
	}
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpdateSubmissionHappyPath(t *testing.T) {
	subs := &stubSubmissionRepo{sub: storedSubmission()}
	r := newSubmissionRouter(subs, &stubUserRepo{})

	id := uuid.New()
	body := validSubmissionBody()
	body["address"] = "22 Oak Ave, Newtown"
	w := doJSON(r, http.MethodPut, "/api/v1/submissions/"+id.String(), body)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, subs.updated)
	assert.Equal(t, id, subs.updatedID)
	assert.Equal(t, "22 Oak Ave, Newtown", subs.updated.Address)
	assert.Equal(t, "Morning", subs.updated.FavoriteTimeOfDay)
}

func TestUpdateSubmissionValidatesLikeCreate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(gin.H)
	}{
		{"blank surname", func(b gin.H) { b["surname"] = "" }},
		{"bad email", func(b gin.H) { b["email"] = "not-an-email" }},
		{"out-of-enum time of day", func(b gin.H) { b["favoriteTimeOfDay"] = "Dawn" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subs := &stubSubmissionRepo{sub: storedSubmission()}
			r := newSubmissionRouter(subs, &stubUserRepo{})

			body := validSubmissionBody()
			tt.mutate(body)
			w := doJSON(r, http.MethodPut, "/api/v1/submissions/"+uuid.NewString(), body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Nil(t, subs.updated, "invalid input must not reach the repository")
		})
	}
}

func TestUpdateUnknownSubmissionIs404(t *testing.T) {
	subs := &stubSubmissionRepo{err: common.NewAppError(common.CodeNotFound, "submission not found", nil)}
	r := newSubmissionRouter(subs, &stubUserRepo{})

	w := doJSON(r, http.MethodPut, "/api/v1/submissions/"+uuid.NewString(), validSubmissionBody())

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateSubmissionRejectsMalformedUserID(t *testing.T) {
	subs := &stubSubmissionRepo{sub: storedSubmission()}
	r := newSubmissionRouter(subs, &stubUserRepo{exists: true})

	body := validSubmissionBody()
	body["userId"] = "not-a-uuid"
	w := doJSON(r, http.MethodPost, "/api/v1/submissions", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "userId")
	assert.Nil(t, subs.created)
}

func TestCreateSubmissionUserLookupFailureIsNotUserNotFound(t *testing.T) {
	// A database outage during the account check must surface as a server
	// error, not as a 400 blaming the caller's userId.
	subs := &stubSubmissionRepo{sub: storedSubmission()}
	r := newSubmissionRouter(subs, &stubUserRepo{existsErr: errors.New("db down")})

	body := validSubmissionBody()
	body["userId"] = uuid.NewString()
	w := doJSON(r, http.MethodPost, "/api/v1/submissions", body)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "user not found")
	assert.Nil(t, subs.created)
}

func TestListByUserLookupFailureIsNotUserNotFound(t *testing.T) {
	r := newSubmissionRouter(&stubSubmissionRepo{}, &stubUserRepo{existsErr: errors.New("db down")})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users/"+uuid.NewString()+"/submissions", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "user not found")
}

func TestListByUserUnknownUserIs404(t *testing.T) {
	r := newSubmissionRouter(&stubSubmissionRepo{}, &stubUserRepo{exists: false})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users/"+uuid.NewString()+"/submissions", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
