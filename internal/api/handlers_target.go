package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	respond "github.com/pinwords/keyword-backend/internal/api/respond"
	"github.com/pinwords/keyword-backend/internal/api/validate"
	"github.com/pinwords/keyword-backend/internal/model"
	"github.com/pinwords/keyword-backend/internal/service"
)

// TargetHandler is a thin HTTP transport over the keyword service.
type TargetHandler struct {
	svc    *service.KeywordService
	scopes *scopeResolver
}

func NewTargetHandler(svc *service.KeywordService, scopes *scopeResolver) *TargetHandler {
	return &TargetHandler{svc: svc, scopes: scopes}
}

// CreateTarget POST /v0/projects/{projectId}/targets
func (h *TargetHandler) CreateTarget(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.scopes.resolve(w, r, "targets.create")
	if !ok {
		return
	}
	var req struct {
		Name     string `json:"name"`
		FolderID string `json:"folderId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.TargetName(req.Name); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	out, err := h.svc.AddMainTarget(r.Context(), sc, req.Name, req.FolderID)
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

// ListTargets GET /v0/projects/{projectId}/targets
func (h *TargetHandler) ListTargets(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.scopes.resolve(w, r, "targets.list")
	if !ok {
		return
	}
	targets, err := h.svc.ListMainTargets(r.Context(), sc)
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"mainTargets": targets, "count": len(targets)})
}

// GetTarget GET /v0/projects/{projectId}/targets/{targetId}
func (h *TargetHandler) GetTarget(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.scopes.resolve(w, r, "targets.get")
	if !ok {
		return
	}
	out, err := h.svc.GetMainTarget(r.Context(), sc, mux.Vars(r)["targetId"])
	if errors.Is(err, model.ErrNotFound) {
		respond.WriteNotFound(w, "target not found")
		return
	}
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// UpdateTarget PATCH /v0/projects/{projectId}/targets/{targetId}
func (h *TargetHandler) UpdateTarget(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.scopes.resolve(w, r, "targets.update")
	if !ok {
		return
	}
	var req struct {
		Name     *string `json:"name"`
		IsDone   *bool   `json:"isDone"`
		Priority *string `json:"priority"`
		Category *string `json:"category"`
		FolderID *string `json:"folderId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if req.Name != nil {
		if err := validate.TargetName(*req.Name); err != nil {
			respond.WriteBadRequest(w, err.Error())
			return
		}
	}
	if err := validate.PriorityValue(req.Priority); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	upd := model.TargetUpdate{
		Name:     req.Name,
		IsDone:   req.IsDone,
		Category: req.Category,
		FolderID: req.FolderID,
	}
	if req.Priority != nil {
		p := model.Priority(*req.Priority)
		upd.Priority = &p
	}
	if upd.IsZero() {
		respond.WriteBadRequest(w, "no updatable fields in request")
		return
	}
	if err := h.svc.UpdateMainTarget(r.Context(), sc, mux.Vars(r)["targetId"], upd); err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteTarget DELETE /v0/projects/{projectId}/targets/{targetId}
func (h *TargetHandler) DeleteTarget(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.scopes.resolve(w, r, "targets.delete")
	if !ok {
		return
	}
	if err := h.svc.DeleteMainTarget(r.Context(), sc, mux.Vars(r)["targetId"]); err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleTargetDone POST /v0/projects/{projectId}/targets/{targetId}/toggle
func (h *TargetHandler) ToggleTargetDone(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.scopes.resolve(w, r, "targets.toggle")
	if !ok {
		return
	}
	if err := h.svc.ToggleMainTargetDone(r.Context(), sc, mux.Vars(r)["targetId"]); err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReorderTargets POST /v0/projects/{projectId}/targets/reorder
func (h *TargetHandler) ReorderTargets(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.scopes.resolve(w, r, "targets.reorder")
	if !ok {
		return
	}
	var req struct {
		OldIndex int `json:"oldIndex"`
		NewIndex int `json:"newIndex"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	err := h.svc.ReorderMainTargets(r.Context(), sc, req.OldIndex, req.NewIndex)
	if errors.Is(err, model.ErrValidation) {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MoveTargetToFolder POST /v0/projects/{projectId}/targets/{targetId}/folder
func (h *TargetHandler) MoveTargetToFolder(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.scopes.resolve(w, r, "targets.move")
	if !ok {
		return
	}
	var req struct {
		FolderID string `json:"folderId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := h.svc.MoveToFolder(r.Context(), sc, mux.Vars(r)["targetId"], req.FolderID); err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddKeywords POST /v0/projects/{projectId}/targets/{targetId}/keywords
func (h *TargetHandler) AddKeywords(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.scopes.resolve(w, r, "keywords.add")
	if !ok {
		return
	}
	var req struct {
		Keywords []string `json:"keywords"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.BulkKeywords(req.Keywords); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	res, err := h.svc.AddRelevantKeywords(r.Context(), sc, mux.Vars(r)["targetId"], req.Keywords)
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, res)
}

// RemoveKeyword DELETE /v0/projects/{projectId}/targets/{targetId}/keywords?text=...
func (h *TargetHandler) RemoveKeyword(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.scopes.resolve(w, r, "keywords.remove")
	if !ok {
		return
	}
	text := r.URL.Query().Get("text")
	if err := validate.NonEmpty("text", text); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	if err := h.svc.RemoveRelevantKeyword(r.Context(), sc, mux.Vars(r)["targetId"], text); err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleKeywordDone POST /v0/projects/{projectId}/targets/{targetId}/keywords/toggle
func (h *TargetHandler) ToggleKeywordDone(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.scopes.resolve(w, r, "keywords.toggle")
	if !ok {
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.NonEmpty("text", req.Text); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	if err := h.svc.ToggleRelevantKeywordDone(r.Context(), sc, mux.Vars(r)["targetId"], req.Text); err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
