package web

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/grantflow/grantflow/pkg/access"
	"github.com/grantflow/grantflow/pkg/backend"
	"github.com/grantflow/grantflow/pkg/filter"
	"github.com/grantflow/grantflow/pkg/proto"
)

const teamPath = "/api/teams/{team}"

// ContactController registers the contact routes of a team.
func ContactController(_ context.Context, r *mux.Router) {
	r.HandleFunc(teamPath+"/contacts", listContacts).Methods(http.MethodGet)
	r.HandleFunc(teamPath+"/contacts", createContact).Methods(http.MethodPost)
	r.HandleFunc(teamPath+"/contacts", deleteContacts).Methods(http.MethodDelete)
	r.HandleFunc(teamPath+"/contacts/{id}", getContact).Methods(http.MethodGet)
	r.HandleFunc(teamPath+"/contacts/{id}", updateContact).Methods(http.MethodPatch)
	r.HandleFunc(teamPath+"/contacts/{id}/changes", getContactChanges).Methods(http.MethodGet)
	r.HandleFunc(teamPath+"/attribute-keys", getAttributeKeys).Methods(http.MethodGet)
	r.HandleFunc(teamPath+"/submodules", getSubmodules).Methods(http.MethodGet)
}

// GET /api/teams/{team}/contacts?q=&filters=
func listContacts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	query := r.URL.Query()

	filters, err := filter.Parse([]byte(query.Get("filters")))
	if err != nil {
		renderError(w, r, fmt.Errorf("%w: %v", proto.ErrInvalidFilter, err))
		return
	}

	contacts, err := be.ListContacts(ctx, mux.Vars(r)["team"], access.FromContext(ctx), backend.ListOptions{
		Query:   query.Get("q"),
		Filters: filters,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, r, http.StatusOK, contacts)
}

// POST /api/teams/{team}/contacts
func createContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	id := access.FromContext(ctx)

	var in proto.ContactInput
	if err := decodeJSON(w, r, &in); err != nil {
		renderError(w, r, err)
		return
	}
	in.TeamID = mux.Vars(r)["team"]

	c, err := be.CreateContact(ctx, in, id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	if err := be.RedactContact(ctx, in.TeamID, id, &c); err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, r, http.StatusCreated, c)
}

// GET /api/teams/{team}/contacts/{id}
func getContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	vars := mux.Vars(r)

	c, err := be.ContactByID(ctx, vars["team"], vars["id"], access.FromContext(ctx))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, r, http.StatusOK, c)
}

// PATCH /api/teams/{team}/contacts/{id}
func updateContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	id := access.FromContext(ctx)
	vars := mux.Vars(r)

	var in proto.ContactUpdate
	if err := decodeJSON(w, r, &in); err != nil {
		renderError(w, r, err)
		return
	}
	in.TeamID = vars["team"]
	in.ContactID = vars["id"]

	c, err := be.UpdateContact(ctx, in, id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	if err := be.RedactContact(ctx, in.TeamID, id, &c); err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, r, http.StatusOK, c)
}

type deleteContactsRequest struct {
	IDs []string `json:"ids"`
}

// DELETE /api/teams/{team}/contacts
func deleteContacts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	var req deleteContactsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	if _, err := be.DeleteContacts(ctx, mux.Vars(r)["team"], req.IDs); err != nil {
		renderError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GET /api/teams/{team}/contacts/{id}/changes
func getContactChanges(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	vars := mux.Vars(r)

	entries, err := be.ContactChangeLog(ctx, vars["team"], vars["id"], access.FromContext(ctx))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, r, http.StatusOK, entries)
}

// GET /api/teams/{team}/attribute-keys
func getAttributeKeys(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	keys, err := be.TeamContactAttributeKeys(ctx, mux.Vars(r)["team"], access.FromContext(ctx))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, r, http.StatusOK, keys)
}

// GET /api/teams/{team}/submodules
func getSubmodules(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	mods, err := be.AllowedSubmodules(ctx, mux.Vars(r)["team"], access.FromContext(ctx))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, r, http.StatusOK, mods)
}
