package api

import (
	"io"
	"net/http"

	respond "github.com/pinwords/keyword-backend/internal/api/respond"
	"github.com/pinwords/keyword-backend/internal/model"
	"github.com/pinwords/keyword-backend/internal/service"
)

// ViewHandler exposes the derived read views plus export and import.
type ViewHandler struct {
	svc    *service.KeywordService
	scopes *scopeResolver
}

func NewViewHandler(svc *service.KeywordService, scopes *scopeResolver) *ViewHandler {
	return &ViewHandler{svc: svc, scopes: scopes}
}

// Search GET /v0/projects/{projectId}/search?q=...
func (h *ViewHandler) Search(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.scopes.resolve(w, r, "views.search")
	if !ok {
		return
	}
	matches, err := h.svc.SearchKeywords(r.Context(), sc, r.URL.Query().Get("q"))
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"results": matches, "count": len(matches)})
}

// Active GET /v0/projects/{projectId}/active
func (h *ViewHandler) Active(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.scopes.resolve(w, r, "views.active")
	if !ok {
		return
	}
	items, err := h.svc.GetActiveItems(r.Context(), sc)
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, items)
}

// Archive GET /v0/projects/{projectId}/archive
func (h *ViewHandler) Archive(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.scopes.resolve(w, r, "views.archive")
	if !ok {
		return
	}
	items, err := h.svc.GetArchivedItems(r.Context(), sc)
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, items)
}

// Export GET /v0/projects/{projectId}/export
func (h *ViewHandler) Export(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.scopes.resolve(w, r, "data.export")
	if !ok {
		return
	}
	doc, err := h.svc.ExportData(r.Context(), sc)
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, doc)
}

// Import PUT /v0/projects/{projectId}/import
// The body is a full keyword document; the stored document is replaced, not
// merged. Legacy documents with string keywords are upgraded on decode.
func (h *ViewHandler) Import(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.scopes.resolve(w, r, "data.import")
	if !ok {
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, 16<<20))
	if err != nil {
		respond.WriteBadRequest(w, "cannot read request body")
		return
	}
	doc, err := model.DecodeDocument(body)
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	if err := h.svc.ImportData(r.Context(), sc, doc); err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
