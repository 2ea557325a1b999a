package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	respond "github.com/pinwords/keyword-backend/internal/api/respond"
	"github.com/pinwords/keyword-backend/internal/api/validate"
	"github.com/pinwords/keyword-backend/internal/model"
	"github.com/pinwords/keyword-backend/internal/service"
)

// FolderHandler exposes folder CRUD.
type FolderHandler struct {
	svc    *service.KeywordService
	scopes *scopeResolver
}

func NewFolderHandler(svc *service.KeywordService, scopes *scopeResolver) *FolderHandler {
	return &FolderHandler{svc: svc, scopes: scopes}
}

// CreateFolder POST /v0/projects/{projectId}/folders
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.scopes.resolve(w, r, "folders.create")
	if !ok {
		return
	}
	var req struct {
		Name  string `json:"name"`
		Icon  string `json:"icon"`
		Color string `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.FolderName(req.Name); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	out, err := h.svc.AddFolder(r.Context(), sc, req.Name, req.Icon, req.Color)
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

// ListFolders GET /v0/projects/{projectId}/folders
func (h *FolderHandler) ListFolders(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.scopes.resolve(w, r, "folders.list")
	if !ok {
		return
	}
	folders, err := h.svc.ListFolders(r.Context(), sc)
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"folders": folders, "count": len(folders)})
}

// UpdateFolder PATCH /v0/projects/{projectId}/folders/{folderId}
func (h *FolderHandler) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.scopes.resolve(w, r, "folders.update")
	if !ok {
		return
	}
	var req struct {
		Name  *string `json:"name"`
		Icon  *string `json:"icon"`
		Color *string `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if req.Name != nil {
		if err := validate.FolderName(*req.Name); err != nil {
			respond.WriteBadRequest(w, err.Error())
			return
		}
	}
	upd := model.FolderUpdate{Name: req.Name, Icon: req.Icon, Color: req.Color}
	if err := h.svc.UpdateFolder(r.Context(), sc, mux.Vars(r)["folderId"], upd); err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteFolder DELETE /v0/projects/{projectId}/folders/{folderId}
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.scopes.resolve(w, r, "folders.delete")
	if !ok {
		return
	}
	if err := h.svc.DeleteFolder(r.Context(), sc, mux.Vars(r)["folderId"]); err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
