package web

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/grantflow/grantflow/pkg/backend"
	"github.com/grantflow/grantflow/pkg/proto"
)

// TeamController registers the team administration routes. Every route
// requires the Admin role.
func TeamController(_ context.Context, r *mux.Router) {
	r.Handle("/api/teams", requireAdmin(createTeam)).Methods(http.MethodPost)
	r.Handle(teamPath+"/groups", requireAdmin(listGroups)).Methods(http.MethodGet)
	r.Handle(teamPath+"/groups", requireAdmin(createGroup)).Methods(http.MethodPost)
	r.Handle(teamPath+"/groups/{group}/members/{user}", requireAdmin(addGroupMember)).Methods(http.MethodPut)
	r.Handle(teamPath+"/groups/{group}/members/{user}", requireAdmin(removeGroupMember)).Methods(http.MethodDelete)
	r.Handle(teamPath+"/field-access/{field}", requireAdmin(setFieldAccess)).Methods(http.MethodPut)
}

type createTeamRequest struct {
	Name string `json:"name"`
}

// POST /api/teams
func createTeam(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	var req createTeamRequest
	if err := decodeJSON(w, r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	team, err := be.CreateTeam(ctx, req.Name)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, r, http.StatusCreated, team)
}

// GET /api/teams/{team}/groups
func listGroups(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	groups, err := be.Groups(ctx, mux.Vars(r)["team"])
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, r, http.StatusOK, groups)
}

// POST /api/teams/{team}/groups
func createGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	var opts proto.GroupOptions
	if err := decodeJSON(w, r, &opts); err != nil {
		renderError(w, r, err)
		return
	}

	g, err := be.CreateGroup(ctx, mux.Vars(r)["team"], opts)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, r, http.StatusCreated, g)
}

// PUT /api/teams/{team}/groups/{group}/members/{user}
func addGroupMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	vars := mux.Vars(r)

	if err := be.AddGroupMember(ctx, vars["team"], vars["group"], vars["user"]); err != nil {
		renderError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DELETE /api/teams/{team}/groups/{group}/members/{user}
func removeGroupMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	vars := mux.Vars(r)

	if err := be.RemoveGroupMember(ctx, vars["team"], vars["group"], vars["user"]); err != nil {
		renderError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type fieldAccessRequest struct {
	GroupIDs []string `json:"groupIds"`
}

// PUT /api/teams/{team}/field-access/{field}
func setFieldAccess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	vars := mux.Vars(r)

	var req fieldAccessRequest
	if err := decodeJSON(w, r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	if err := be.SetFieldAccess(ctx, vars["team"], vars["field"], req.GroupIDs); err != nil {
		renderError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
