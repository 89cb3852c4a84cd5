package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/grantflow/grantflow/pkg/backend"
	"github.com/grantflow/grantflow/pkg/cache/lru"
	"github.com/grantflow/grantflow/pkg/config"
	"github.com/grantflow/grantflow/pkg/db"
	"github.com/grantflow/grantflow/pkg/proto"
	"github.com/grantflow/grantflow/pkg/store/database"
	"github.com/grantflow/grantflow/pkg/test"
	"github.com/matryer/is"
)

var (
	asAdmin = http.Header{HeaderUserID: {"root"}, HeaderRoles: {"admin"}}
	asU0    = http.Header{HeaderUserID: {"u0"}, HeaderUserName: {"Uma"}}
	asU1    = http.Header{HeaderUserID: {"u1"}}
)

type server struct {
	t    *testing.T
	h    http.Handler
	team string
}

func setup(t *testing.T) server {
	t.Helper()
	ctx := context.TODO()
	dbx := test.OpenDB(ctx, t)
	c, err := lru.NewCache(ctx)
	if err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	be := backend.New(ctx, cfg, dbx, database.New(ctx, dbx), c)
	team, err := be.CreateTeam(ctx, "Fund")
	if err != nil {
		t.Fatal(err)
	}

	ctx = config.WithContext(ctx, cfg)
	ctx = backend.WithContext(ctx, be)
	ctx = db.WithContext(ctx, dbx)
	return server{t: t, h: NewRouter(ctx), team: team.ID}
}

func (s server) do(method, path, body string, hdr http.Header) *httptest.ResponseRecorder {
	s.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range hdr {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	s.h.ServeHTTP(rec, req)
	return rec
}

func (s server) path(p string) string {
	return "/api/teams/" + s.team + p
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHealth(t *testing.T) {
	is := is.New(t)
	s := setup(t)

	is.Equal(s.do(http.MethodGet, "/livez", "", nil).Code, http.StatusOK)
	is.Equal(s.do(http.MethodGet, "/readyz", "", nil).Code, http.StatusOK)
	is.Equal(s.do(http.MethodPost, "/livez", "", nil).Code, http.StatusMethodNotAllowed)
	is.Equal(s.do(http.MethodGet, "/nope", "", nil).Code, http.StatusNotFound)
}

func TestCreateAndGetContact(t *testing.T) {
	is := is.New(t)
	s := setup(t)

	rec := s.do(http.MethodPost, s.path("/contacts"), `{"name":"Jane Doe","email":"JANE@Example.com","city":"Berlin"}`, asU0)
	is.Equal(rec.Code, http.StatusCreated)
	created := decode[proto.Contact](t, rec)
	is.Equal(created.Email, "jane@example.com")
	is.Equal(created.TeamID, s.team)

	rec = s.do(http.MethodGet, s.path("/contacts/"+created.ID), "", asU0)
	is.Equal(rec.Code, http.StatusOK)
	got := decode[proto.Contact](t, rec)
	is.Equal(got.ID, created.ID)
	is.Equal(*got.City, "Berlin")

	rec = s.do(http.MethodGet, s.path("/contacts/missing"), "", asU0)
	is.Equal(rec.Code, http.StatusNotFound)
	is.Equal(decode[errorResponse](t, rec).Error, "Contact not found")
}

func TestCreateContactErrors(t *testing.T) {
	s := setup(t)
	s.do(http.MethodPost, s.path("/contacts"), `{"name":"Jane","email":"jane@example.com"}`, asU0)

	cases := []struct {
		name string
		body string
		code int
		msg  string
	}{
		{"duplicate", `{"name":"Jane","email":"Jane@Example.com"}`, http.StatusConflict, "A contact with this email already exists for this team"},
		{"no name", `{"email":"a@example.com"}`, http.StatusBadRequest, "Name is required"},
		{"no email", `{"name":"A"}`, http.StatusBadRequest, "Email is required"},
		{"bad date", `{"name":"A","email":"a@example.com","breakUntil":"later"}`, http.StatusBadRequest, "Invalid break until date"},
		{"unknown group", `{"name":"A","email":"a@example.com","groupId":"nope"}`, http.StatusNotFound, "group not found"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			is := is.New(t)
			rec := s.do(http.MethodPost, s.path("/contacts"), c.body, asU0)
			is.Equal(rec.Code, c.code)
			is.Equal(decode[errorResponse](t, rec).Error, c.msg)
		})
	}

	is := is.New(t)
	rec := s.do(http.MethodPost, s.path("/contacts"), `{"name":`, asU0)
	is.Equal(rec.Code, http.StatusBadRequest)
}

func TestUpdateContactPresence(t *testing.T) {
	is := is.New(t)
	s := setup(t)

	rec := s.do(http.MethodPost, s.path("/contacts"), `{"name":"Jane","email":"jane@example.com","city":"Berlin","phone":"1"}`, asU0)
	is.Equal(rec.Code, http.StatusCreated)
	id := decode[proto.Contact](t, rec).ID

	rec = s.do(http.MethodPatch, s.path("/contacts/"+id), `{"phone":"2"}`, asU0)
	is.Equal(rec.Code, http.StatusOK)
	c := decode[proto.Contact](t, rec)
	is.Equal(*c.Phone, "2")
	is.Equal(*c.City, "Berlin")

	rec = s.do(http.MethodPatch, s.path("/contacts/"+id), `{"city":null}`, asU0)
	is.Equal(rec.Code, http.StatusOK)
	c = decode[proto.Contact](t, rec)
	is.Equal(c.City, nil)
	is.Equal(*c.Phone, "2")

	rec = s.do(http.MethodPatch, s.path("/contacts/"+id), `{"email":""}`, asU0)
	is.Equal(rec.Code, http.StatusBadRequest)

	rec = s.do(http.MethodGet, s.path("/contacts/"+id+"/changes"), "", asU0)
	is.Equal(rec.Code, http.StatusOK)
	entries := decode[[]proto.ChangeLogEntry](t, rec)
	is.Equal(len(entries), 3) // creation, phone, city
	is.Equal(*entries[0].UserName, "Uma")
}

func TestListContacts(t *testing.T) {
	is := is.New(t)
	s := setup(t)

	s.do(http.MethodPost, s.path("/contacts"), `{"name":"Ada","email":"ada@example.org","city":"Berlin","profileAttributes":[{"key":"role","type":"STRING","value":"mentor"}]}`, asU0)
	s.do(http.MethodPost, s.path("/contacts"), `{"name":"Bob","email":"bob@example.org","city":"Hamburg"}`, asU0)

	rec := s.do(http.MethodGet, s.path("/contacts"), "", asU0)
	is.Equal(rec.Code, http.StatusOK)
	is.Equal(len(decode[[]proto.Contact](t, rec)), 2)

	rec = s.do(http.MethodGet, s.path("/contacts?q=mentor"), "", asU0)
	is.Equal(rec.Code, http.StatusOK)
	got := decode[[]proto.Contact](t, rec)
	is.Equal(len(got), 1)
	is.Equal(got[0].Name, "Ada")

	filters := `[{"type":"contactField","field":"city","operator":"contains","value":"burg"}]`
	req := httptest.NewRequest(http.MethodGet, s.path("/contacts"), nil)
	q := req.URL.Query()
	q.Set("filters", filters)
	rec = s.do(http.MethodGet, s.path("/contacts?"+q.Encode()), "", asU0)
	is.Equal(rec.Code, http.StatusOK)
	got = decode[[]proto.Contact](t, rec)
	is.Equal(len(got), 1)
	is.Equal(got[0].Name, "Bob")

	rec = s.do(http.MethodGet, s.path("/contacts?filters=nope"), "", asU0)
	is.Equal(rec.Code, http.StatusBadRequest)

	rec = s.do(http.MethodGet, s.path("/attribute-keys"), "", asU0)
	is.Equal(rec.Code, http.StatusOK)
	is.Equal(decode[[]string](t, rec), []string{"role"})
}

func TestAdminRoutes(t *testing.T) {
	is := is.New(t)
	s := setup(t)

	is.Equal(s.do(http.MethodPost, "/api/teams", `{"name":"New"}`, nil).Code, http.StatusForbidden)
	is.Equal(s.do(http.MethodPost, "/api/teams", `{"name":"New"}`, asU0).Code, http.StatusForbidden)

	rec := s.do(http.MethodPost, "/api/teams", `{"name":"New"}`, asAdmin)
	is.Equal(rec.Code, http.StatusCreated)
	is.Equal(decode[proto.Team](t, rec).Name, "New")

	rec = s.do(http.MethodPost, s.path("/groups"), `{"name":"Default"}`, asAdmin)
	is.Equal(rec.Code, http.StatusBadRequest)

	rec = s.do(http.MethodGet, s.path("/groups"), "", asAdmin)
	is.Equal(rec.Code, http.StatusOK)
	is.Equal(len(decode[[]proto.Group](t, rec)), 1)
}

func TestFieldAccess(t *testing.T) {
	is := is.New(t)
	s := setup(t)

	rec := s.do(http.MethodPost, s.path("/groups"), `{"name":"Care","modules":["demographics"]}`, asAdmin)
	is.Equal(rec.Code, http.StatusCreated)
	g := decode[proto.Group](t, rec)

	is.Equal(s.do(http.MethodPut, s.path("/groups/"+g.ID+"/members/u0"), "", asAdmin).Code, http.StatusNoContent)
	is.Equal(s.do(http.MethodPut, s.path("/field-access/gender"), `{"groupIds":["`+g.ID+`"]}`, asAdmin).Code, http.StatusNoContent)
	is.Equal(s.do(http.MethodPut, s.path("/field-access/gender"), `{"groupIds":["nope"]}`, asAdmin).Code, http.StatusNotFound)

	rec = s.do(http.MethodPost, s.path("/contacts"), `{"name":"Jane","email":"jane@example.com","gender":"female"}`, asU0)
	is.Equal(rec.Code, http.StatusCreated)
	is.Equal(*decode[proto.Contact](t, rec).Gender, "female")

	rec = s.do(http.MethodGet, s.path("/contacts"), "", asU0)
	is.True(strings.Contains(rec.Body.String(), `"gender":"female"`))

	for _, hdr := range []http.Header{asU1, nil, asAdmin} {
		rec = s.do(http.MethodGet, s.path("/contacts"), "", hdr)
		is.Equal(rec.Code, http.StatusOK)
		is.True(!strings.Contains(rec.Body.String(), "gender"))
	}

	rec = s.do(http.MethodGet, s.path("/submodules"), "", nil)
	is.Equal(strings.TrimSpace(rec.Body.String()), "[]")

	is.Equal(s.do(http.MethodDelete, s.path("/groups/"+g.ID+"/members/u0"), "", asAdmin).Code, http.StatusNoContent)
	rec = s.do(http.MethodGet, s.path("/contacts"), "", asU0)
	is.True(!strings.Contains(rec.Body.String(), "gender"))
}

func TestDeleteContacts(t *testing.T) {
	is := is.New(t)
	s := setup(t)

	rec := s.do(http.MethodPost, s.path("/contacts"), `{"name":"Jane","email":"jane@example.com"}`, asU0)
	id := decode[proto.Contact](t, rec).ID

	rec = s.do(http.MethodDelete, s.path("/contacts"), `{"ids":["`+id+`"]}`, asU0)
	is.Equal(rec.Code, http.StatusNoContent)

	rec = s.do(http.MethodGet, s.path("/contacts"), "", asU0)
	is.Equal(strings.TrimSpace(rec.Body.String()), "[]")
}
