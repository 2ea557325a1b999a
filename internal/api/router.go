// Package api wires the HTTP transport: routing, request validation,
// authorization, and response encoding. Business rules live in the service
// package; handlers stay thin.
package api

import (
	"github.com/gorilla/mux"

	"github.com/pinwords/keyword-backend/internal/api/recovery"
	"github.com/pinwords/keyword-backend/internal/auth"
	"github.com/pinwords/keyword-backend/internal/service"
)

// NewRouter builds the HTTP router. The user id for every data route comes
// from the authorized API key; the project id comes from the path.
func NewRouter(svc *service.KeywordService, authorizer auth.Authorizer, defaultProject string) *mux.Router {
	router := mux.NewRouter()
	router.Use(recovery.Middleware)

	scopes := newScopeResolver(authorizer, defaultProject)
	targets := NewTargetHandler(svc, scopes)
	folders := NewFolderHandler(svc, scopes)
	views := NewViewHandler(svc, scopes)

	// Health
	healthHandler := NewHealthHandler()
	router.HandleFunc("/v0/health", healthHandler.CheckHealth).Methods("GET")

	// Main targets
	router.HandleFunc("/v0/projects/{projectId}/targets", targets.CreateTarget).Methods("POST")
	router.HandleFunc("/v0/projects/{projectId}/targets", targets.ListTargets).Methods("GET")
	router.HandleFunc("/v0/projects/{projectId}/targets/reorder", targets.ReorderTargets).Methods("POST")
	router.HandleFunc("/v0/projects/{projectId}/targets/{targetId}", targets.GetTarget).Methods("GET")
	router.HandleFunc("/v0/projects/{projectId}/targets/{targetId}", targets.UpdateTarget).Methods("PATCH")
	router.HandleFunc("/v0/projects/{projectId}/targets/{targetId}", targets.DeleteTarget).Methods("DELETE")
	router.HandleFunc("/v0/projects/{projectId}/targets/{targetId}/toggle", targets.ToggleTargetDone).Methods("POST")
	router.HandleFunc("/v0/projects/{projectId}/targets/{targetId}/folder", targets.MoveTargetToFolder).Methods("POST")

	// Relevant keywords
	router.HandleFunc("/v0/projects/{projectId}/targets/{targetId}/keywords", targets.AddKeywords).Methods("POST")
	router.HandleFunc("/v0/projects/{projectId}/targets/{targetId}/keywords", targets.RemoveKeyword).Methods("DELETE")
	router.HandleFunc("/v0/projects/{projectId}/targets/{targetId}/keywords/toggle", targets.ToggleKeywordDone).Methods("POST")

	// Folders
	router.HandleFunc("/v0/projects/{projectId}/folders", folders.CreateFolder).Methods("POST")
	router.HandleFunc("/v0/projects/{projectId}/folders", folders.ListFolders).Methods("GET")
	router.HandleFunc("/v0/projects/{projectId}/folders/{folderId}", folders.UpdateFolder).Methods("PATCH")
	router.HandleFunc("/v0/projects/{projectId}/folders/{folderId}", folders.DeleteFolder).Methods("DELETE")

	// Views, export, import
	router.HandleFunc("/v0/projects/{projectId}/search", views.Search).Methods("GET")
	router.HandleFunc("/v0/projects/{projectId}/active", views.Active).Methods("GET")
	router.HandleFunc("/v0/projects/{projectId}/archive", views.Archive).Methods("GET")
	router.HandleFunc("/v0/projects/{projectId}/export", views.Export).Methods("GET")
	router.HandleFunc("/v0/projects/{projectId}/import", views.Import).Methods("PUT")

	return router
}
