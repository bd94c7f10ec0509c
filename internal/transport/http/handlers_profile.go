package httptransport

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"facet/internal/platform/middleware"
	"facet/internal/profile"
	dErrors "facet/pkg/domain-errors"
)

//go:generate mockgen -source=handlers_profile.go -destination=mocks/mock_profile_service.go -package=mocks

// ProfileService is the surface of the profile domain this transport needs.
type ProfileService interface {
	GetProfileParams(ctx context.Context, ownerID, visitorID string) (profile.ProfileParams, error)
	IsPropertyVisible(ctx context.Context, ownerID, visitorID, property string) (bool, error)
	QueueAction(ctx context.Context, identifier string)
}

type ProfileHandler struct {
	profiles ProfileService
}

func NewProfileHandler(profiles ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func (h *ProfileHandler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "userID")
	if ownerID == "" {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "user id is required"))
		return
	}

	params, err := h.profiles.GetProfileParams(r.Context(), ownerID, middleware.GetVisitorID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, params)
}

type visibilityResponse struct {
	Property string `json:"property"`
	Visible  bool   `json:"visible"`
}

func (h *ProfileHandler) handleGetVisibility(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "userID")
	property := chi.URLParam(r, "property")
	if ownerID == "" || property == "" {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "user id and property are required"))
		return
	}

	visible, err := h.profiles.IsPropertyVisible(r.Context(), ownerID, middleware.GetVisitorID(r.Context()), property)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, visibilityResponse{Property: property, Visible: visible})
}

type queueActionRequest struct {
	Action string `json:"action"`
}

func (h *ProfileHandler) handleQueueAction(w http.ResponseWriter, r *http.Request) {
	var req queueActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	req.Action = strings.TrimSpace(req.Action)
	if req.Action == "" {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "action identifier is required"))
		return
	}

	h.profiles.QueueAction(r.Context(), req.Action)
	respondJSON(w, http.StatusAccepted, map[string]string{"queued": req.Action})
}
