package api

import (
	"net/http"

	"github.com/gorilla/mux"

	respond "github.com/pinwords/keyword-backend/internal/api/respond"
	"github.com/pinwords/keyword-backend/internal/api/validate"
	"github.com/pinwords/keyword-backend/internal/auth"
	"github.com/pinwords/keyword-backend/internal/store"
)

// scopeResolver turns an authorized request into a storage scope. The user id
// always comes from the API key, never from the URL, so one user cannot read
// another's data by editing the path.
type scopeResolver struct {
	authorizer     auth.Authorizer
	defaultProject string
}

func newScopeResolver(authorizer auth.Authorizer, defaultProject string) *scopeResolver {
	return &scopeResolver{authorizer: authorizer, defaultProject: defaultProject}
}

// resolve authenticates the request and builds the scope. It writes the error
// response itself and reports ok=false when the caller should return.
func (s *scopeResolver) resolve(w http.ResponseWriter, r *http.Request, operation string) (store.Scope, bool) {
	apiKey, err := auth.ExtractAPIKey(r)
	if err != nil {
		respond.WriteUnauthorized(w, err.Error())
		return store.Scope{}, false
	}

	actor, err := s.authorizer.Authorize(r.Context(), apiKey, operation)
	if err != nil {
		respond.WriteUnauthorized(w, err.Error())
		return store.Scope{}, false
	}
	if isMutating(operation) && !actor.CanWrite() {
		respond.WriteError(w, http.StatusForbidden, "API key lacks write permission")
		return store.Scope{}, false
	}

	projectID := mux.Vars(r)["projectId"]
	if projectID == "" {
		projectID = s.defaultProject
	}
	if err := validate.ProjectID(projectID); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return store.Scope{}, false
	}

	return store.Scope{UserID: actor.UserID, ProjectID: projectID}, true
}

// readOps are the operations a read-only key may perform; everything else
// mutates stored data.
var readOps = map[string]bool{
	"targets.list":  true,
	"targets.get":   true,
	"folders.list":  true,
	"views.search":  true,
	"views.active":  true,
	"views.archive": true,
	"data.export":   true,
}

func isMutating(operation string) bool { return !readOps[operation] }
