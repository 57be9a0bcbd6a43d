// Package routes is the client's page surface: which paths exist, which
// page each one shows and who may see it. Paths are matched with a chi
// router so patterns like /doctors/{id} behave as they would on a server.
package routes

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/medbook/internal/client/auth"
	"github.com/dmitrijs2005/medbook/internal/client/guard"
	"github.com/dmitrijs2005/medbook/internal/client/models"
	"github.com/go-chi/chi/v5"
)

type Page string

const (
	PageHome            Page = "home"
	PageDoctors         Page = "doctors"
	PageDoctorDetail    Page = "doctor-detail"
	PageLogin           Page = "login"
	PageRegister        Page = "register"
	PageDashboard       Page = "dashboard"
	PageProfile         Page = "profile"
	PageBookAppointment Page = "book-appointment"
	PageAppointments    Page = "appointments"
	PageDoctorProfile   Page = "doctor-profile"
	PageChat            Page = "chat"
	PageAdmin           Page = "admin"
)

// Access selects the guard applied to a route.
type Access int

const (
	// Open routes render for everyone.
	Open Access = iota
	// PublicOnly routes are entry pages hidden from logged-in users.
	PublicOnly
	// Protected routes need a login and, if Roles is set, one of Roles.
	Protected
)

type Route struct {
	Pattern string
	Page    Page
	Access  Access
	Roles   []models.Role
}

// Decide applies the route's guard to s.
func (r Route) Decide(s auth.State) guard.Decision {
	switch r.Access {
	case PublicOnly:
		return guard.Public(s)
	case Protected:
		return guard.Protected(s, r.Roles)
	}
	return guard.Render
}

var (
	patientOnly   = []models.Role{models.RolePatient}
	doctorOnly    = []models.Role{models.RoleDoctor}
	adminOnly     = []models.Role{models.RoleAdmin}
	careProviders = []models.Role{models.RolePatient, models.RoleDoctor}
)

// Default is the route surface of the client. The first route is the
// fallback for unknown paths.
func Default() []Route {
	return []Route{
		{Pattern: "/", Page: PageHome, Access: Open},
		{Pattern: "/doctors", Page: PageDoctors, Access: Open},
		{Pattern: "/doctors/{id}", Page: PageDoctorDetail, Access: Open},
		{Pattern: guard.LoginPath, Page: PageLogin, Access: PublicOnly},
		{Pattern: "/register", Page: PageRegister, Access: PublicOnly},
		{Pattern: guard.DashboardPath, Page: PageDashboard, Access: Protected},
		{Pattern: "/profile", Page: PageProfile, Access: Protected, Roles: patientOnly},
		{Pattern: "/book-appointment/{doctorId}", Page: PageBookAppointment, Access: Protected, Roles: patientOnly},
		{Pattern: "/appointments", Page: PageAppointments, Access: Protected, Roles: careProviders},
		{Pattern: "/doctor/profile", Page: PageDoctorProfile, Access: Protected, Roles: doctorOnly},
		{Pattern: "/chat/{roomId}", Page: PageChat, Access: Protected, Roles: careProviders},
		{Pattern: "/admin", Page: PageAdmin, Access: Protected, Roles: adminOnly},
	}
}

// Match is a path resolved against the table.
type Match struct {
	Route  Route
	Path   string
	Params map[string]string
	// Fallback is set when the requested path matched nothing.
	Fallback bool
}

// Param returns a URL parameter, or "" when absent.
func (m Match) Param(key string) string { return m.Params[key] }

// Table matches paths against a fixed set of routes.
type Table struct {
	mux      *chi.Mux
	byPattern map[string]Route
	fallback Route
}

// NewTable builds a table from rs. rs must not be empty; rs[0] is the
// fallback route.
func NewTable(rs []Route) (*Table, error) {
	if len(rs) == 0 {
		return nil, fmt.Errorf("routes: empty table")
	}
	t := &Table{mux: chi.NewRouter(), byPattern: make(map[string]Route, len(rs)), fallback: rs[0]}
	noop := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	for _, r := range rs {
		if _, dup := t.byPattern[r.Pattern]; dup {
			return nil, fmt.Errorf("routes: duplicate pattern %q", r.Pattern)
		}
		t.byPattern[r.Pattern] = r
		t.mux.Get(r.Pattern, noop)
	}
	return t, nil
}

// Match resolves path. Unknown paths resolve to the fallback route.
func (t *Table) Match(path string) Match {
	path = normalize(path)

	rctx := chi.NewRouteContext()
	if t.mux.Match(rctx, http.MethodGet, path) {
		if r, ok := t.byPattern[rctx.RoutePattern()]; ok {
			params := make(map[string]string, len(rctx.URLParams.Keys))
			for i, k := range rctx.URLParams.Keys {
				params[k] = rctx.URLParams.Values[i]
			}
			return Match{Route: r, Path: path, Params: params}
		}
	}
	return Match{Route: t.fallback, Path: t.fallback.Pattern, Params: map[string]string{}, Fallback: true}
}

// normalize drops the query string and a trailing slash.
func normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}
