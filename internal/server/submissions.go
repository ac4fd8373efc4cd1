package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/formease/formease-server/constants"
	"github.com/formease/formease-server/internal/common"
	"github.com/formease/formease-server/internal/repository"
)

// SubmissionHandler persists and lists form submissions.
type SubmissionHandler struct {
	submissions repository.SubmissionRepository
	users       repository.UserRepository
	logger      *slog.Logger
}

func NewSubmissionHandler(subs repository.SubmissionRepository, users repository.UserRepository, logger *slog.Logger) *SubmissionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SubmissionHandler{submissions: subs, users: users, logger: logger}
}

type createSubmissionRequest struct {
	FirstName         string `json:"firstName"`
	Surname           string `json:"surname"`
	Address           string `json:"address"`
	Postcode          string `json:"postcode"`
	Email             string `json:"email"`
	FavoriteTimeOfDay string `json:"favoriteTimeOfDay"`
	CreateLogin       bool   `json:"createLogin"`
	UserID            string `json:"userId"`
}

// Create handles POST /api/v1/submissions. All six fields are required, the
// way the portal form validates them. With createLogin set an account record
// is attached by email; credentials are the identity provider's problem.
func (h *SubmissionHandler) Create(c *gin.Context) {
	var req createSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	v := newDetailFieldsValidator(req.FirstName, req.Surname, req.Address, req.Postcode, req.Email, req.FavoriteTimeOfDay)
	if raw := strings.TrimSpace(req.UserID); raw != "" {
		v.Field("userId", raw, common.UUID)
	}
	if err := v.Error(); err != nil {
		writeError(c, err)
		return
	}

	var userID *uuid.UUID
	switch {
	case strings.TrimSpace(req.UserID) != "":
		id := uuid.MustParse(strings.TrimSpace(req.UserID))
		exists, err := h.users.Exists(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		if !exists {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user not found"})
			return
		}
		userID = &id
	case req.CreateLogin:
		u, err := h.users.UpsertByEmail(c.Request.Context(), req.Email)
		if err != nil {
			writeError(c, err)
			return
		}
		userID = &u.ID
	}

	sub, err := h.submissions.Create(c.Request.Context(), &repository.CreateSubmissionRequest{
		UserID:            userID,
		FirstName:         req.FirstName,
		Surname:           req.Surname,
		Address:           req.Address,
		Postcode:          req.Postcode,
		Email:             req.Email,
		FavoriteTimeOfDay: req.FavoriteTimeOfDay,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	h.logger.Info("submission.created", "submission_id", sub.ID, "has_account", userID != nil)
	c.JSON(http.StatusCreated, sub)
}

type updateSubmissionRequest struct {
	FirstName         string `json:"firstName"`
	Surname           string `json:"surname"`
	Address           string `json:"address"`
	Postcode          string `json:"postcode"`
	Email             string `json:"email"`
	FavoriteTimeOfDay string `json:"favoriteTimeOfDay"`
}

// Update handles PUT /api/v1/submissions/:id, the "edit submission" flow.
// The six fields are validated exactly like Create; the account linkage is
// not editable here.
func (h *SubmissionHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a UUID"})
		return
	}

	var req updateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	v := newDetailFieldsValidator(req.FirstName, req.Surname, req.Address, req.Postcode, req.Email, req.FavoriteTimeOfDay)
	if err := v.Error(); err != nil {
		writeError(c, err)
		return
	}

	sub, err := h.submissions.Update(c.Request.Context(), id, &repository.UpdateSubmissionRequest{
		FirstName:         req.FirstName,
		Surname:           req.Surname,
		Address:           req.Address,
		Postcode:          req.Postcode,
		Email:             req.Email,
		FavoriteTimeOfDay: req.FavoriteTimeOfDay,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	h.logger.Info("submission.updated", "submission_id", sub.ID)
	c.JSON(http.StatusOK, sub)
}

// newDetailFieldsValidator applies the portal form rules shared by Create
// and Update: all six fields required, email shape, enum for the time of day.
func newDetailFieldsValidator(firstName, surname, address, postcode, email, favoriteTimeOfDay string) *common.Validator {
	v := common.NewValidator()
	v.Field("firstName", firstName, common.Required)
	v.Field("surname", surname, common.Required)
	v.Field("address", address, common.Required)
	v.Field("postcode", postcode, common.Required)
	v.Field("email", email, common.Required, common.Email)
	v.Field("favoriteTimeOfDay", favoriteTimeOfDay, common.Required, common.OneOf(constants.TimesOfDay...))
	return v
}

// Get handles GET /api/v1/submissions/:id.
func (h *SubmissionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a UUID"})
		return
	}
	sub, err := h.submissions.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// ListAll handles GET /api/v1/admin/submissions (the admin dashboard view).
func (h *SubmissionHandler) ListAll(c *gin.Context) {
	subs, err := h.submissions.ListAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"submissions": subs})
}

// ListByUser handles GET /api/v1/admin/users/:userId/submissions.
func (h *SubmissionHandler) ListByUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId must be a UUID"})
		return
	}
	exists, err := h.users.Exists(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	subs, err := h.submissions.ListByUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"submissions": subs})
}

// ListUsers handles GET /api/v1/admin/users.
func (h *SubmissionHandler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}
