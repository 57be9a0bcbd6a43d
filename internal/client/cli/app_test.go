package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/medbook/internal/client/api"
	"github.com/dmitrijs2005/medbook/internal/client/auth"
	"github.com/dmitrijs2005/medbook/internal/client/gateway"
	"github.com/dmitrijs2005/medbook/internal/client/models"
	"github.com/dmitrijs2005/medbook/internal/client/routes"
	"github.com/dmitrijs2005/medbook/internal/client/session"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// safeBuffer is written by the watcher goroutine while tests read it.
type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

type harness struct {
	app   *App
	out   *safeBuffer
	store *session.Store
	gw    *gateway.Client
}

func newHarness(t *testing.T, h http.Handler, input string) *harness {
	t.Helper()
	stubTerminal(t, false, nil, nil)

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	store := session.NewStore(session.NewMemoryBackend())
	gw := gateway.New(srv.URL, store)
	svc := api.New(gw)
	machine := auth.NewMachine(svc.Accounts, store, nil)
	table, err := routes.NewTable(routes.Default())
	require.NoError(t, err)
	nav := routes.NewNavigator(table, machine.State)

	out := &safeBuffer{}
	app := NewApp(Deps{
		API:                 svc,
		Auth:                machine,
		Nav:                 nav,
		Pinger:              okPinger{},
		Tokens:              store,
		In:                  strings.NewReader(input),
		Out:                 out,
		OnlineCheckInterval: time.Hour,
	})
	gw.SetSessionExpiredHandler(app.SessionExpired)

	return &harness{app: app, out: out, store: store, gw: gw}
}

func (h *harness) loginAs(t *testing.T, u *models.User) {
	t.Helper()
	require.NoError(t, h.store.Save(context.Background(), session.Session{AccessToken: "A1", RefreshToken: "R1", User: u}))
	_, err := h.app.auth.Restore(context.Background())
	require.NoError(t, err)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

var (
	pat = &models.User{ID: 3, Email: "pat@example.com", FirstName: "Pat", Role: models.RolePatient}
	doc = &models.User{ID: 4, Email: "doc@example.com", FullName: "Dr. House", Role: models.RoleDoctor}
	adm = &models.User{ID: 1, Email: "admin@example.com", FirstName: "Ada", Role: models.RoleAdmin}
)

func emptyPage(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"count": 0, "results": []any{}})
}

func TestApp_LoginShowsDashboard(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /accounts/login/", func(w http.ResponseWriter, r *http.Request) {
		var c models.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&c))
		assert.Equal(t, "pat@example.com", c.Email)
		assert.Equal(t, "pw", c.Password)
		writeJSON(w, http.StatusOK, models.AuthResponse{User: pat, Access: "A1", Refresh: "R1"})
	})
	mux.HandleFunc("GET /appointments/patient/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer A1", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{"count": 1, "results": []any{
			map[string]any{"id": 9, "appointment_date": "2026-11-02T10:00:00Z", "doctor_name": "Dr. House", "appointment_type": "checkup", "status": "accepted"},
		}})
	})

	h := newHarness(t, mux, "pat@example.com\npw\n")
	require.NoError(t, h.app.Login(context.Background()))

	out := h.out.String()
	assert.Contains(t, out, "Welcome, Pat!")
	assert.Contains(t, out, "Dashboard for Pat")
	assert.Contains(t, out, "Dr. House")
	assert.Equal(t, routes.PageDashboard, h.app.nav.Current().Route.Page)

	sess, err := h.store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "A1", sess.AccessToken)
	assert.Equal(t, pat, sess.User)
}

func TestApp_LoginFailureNotifies(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /accounts/login/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "No active account found with the given credentials"})
	})

	h := newHarness(t, mux, "pat@example.com\nwrong\n")
	require.Error(t, h.app.Login(context.Background()))

	assert.Contains(t, h.out.String(), "! No active account found with the given credentials")
	assert.False(t, h.app.isLoggedIn())
}

func TestApp_RegisterPasswordMismatch(t *testing.T) {
	var called atomic.Bool
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(http.ResponseWriter, *http.Request) { called.Store(true) })

	h := newHarness(t, mux, "n@example.com\nnew\nNew\nUser\n\ndoctor\npw1\npw2\n")
	require.Error(t, h.app.Register(context.Background()))
	assert.Contains(t, h.out.String(), "! Passwords don't match")
	assert.False(t, called.Load())
}

func TestApp_RegisterSuccess(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /accounts/register/", func(w http.ResponseWriter, r *http.Request) {
		var reg models.Registration
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reg))
		assert.Equal(t, models.RoleDoctor, reg.Role)
		assert.Equal(t, "pw1", reg.PasswordConfirm)
		writeJSON(w, http.StatusCreated, models.AuthResponse{User: doc, Access: "A1", Refresh: "R1", Message: "User registered successfully"})
	})
	mux.HandleFunc("GET /appointments/doctor/", emptyPage)
	mux.HandleFunc("GET /appointments/stats/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"total_appointments": 0, "pending_appointments": 0})
	})

	h := newHarness(t, mux, "doc@example.com\nhouse\nGregory\nHouse\n\ndoctor\npw1\npw1\n")
	require.NoError(t, h.app.Register(context.Background()))

	out := h.out.String()
	assert.Contains(t, out, "Account created. Welcome, Dr. House!")
	assert.Contains(t, out, "Pending requests:")
	assert.Contains(t, out, "Appointments: pending_appointments=0 total_appointments=0")
}

func TestApp_OpenGuardedPageRedirects(t *testing.T) {
	h := newHarness(t, http.NotFoundHandler(), "")

	require.NoError(t, h.app.Open(context.Background(), "/admin"))
	assert.Contains(t, h.out.String(), "-> /login")
	assert.Contains(t, h.out.String(), "Sign in with 'login'")
	assert.Equal(t, routes.PageLogin, h.app.nav.Current().Route.Page)
}

func TestApp_PatientCannotSeeAdmin(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /appointments/patient/", emptyPage)

	h := newHarness(t, mux, "")
	h.loginAs(t, pat)

	require.NoError(t, h.app.Open(context.Background(), "/admin"))
	assert.Contains(t, h.out.String(), "-> /dashboard")
	assert.Equal(t, routes.PageDashboard, h.app.nav.Current().Route.Page)
}

func TestApp_AdminPage(t *testing.T) {
	mux := http.NewServeMux()
	for _, p := range []string{"/accounts/stats/", "/doctors/stats/", "/patients/stats/", "/appointments/stats/"} {
		mux.HandleFunc("GET "+p, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"total": 2, "by_role": map[string]any{"x": 1}})
		})
	}
	mux.HandleFunc("GET /accounts/users/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "-date_joined", r.URL.Query().Get("ordering"))
		writeJSON(w, http.StatusOK, map[string]any{"count": 1, "results": []any{adm}})
	})

	h := newHarness(t, mux, "")
	h.loginAs(t, adm)

	require.NoError(t, h.app.Open(context.Background(), "/admin"))
	out := h.out.String()
	assert.Contains(t, out, "Users: total=2")
	assert.NotContains(t, out, "by_role")
	assert.Contains(t, out, "admin@example.com")
}

func TestApp_PageErrorsAreToasts(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"detail", http.StatusInternalServerError, `{"detail":"database is down"}`, "! database is down"},
		{"no detail", http.StatusBadGateway, `<html>bad gateway</html>`, "! Failed to load doctors"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}), "")

			err := h.app.Open(context.Background(), "/doctors")
			require.Error(t, err)
			assert.Contains(t, h.out.String(), tt.want)
		})
	}
}

func TestApp_UnavailableToast(t *testing.T) {
	h := newHarness(t, http.NotFoundHandler(), "")
	h.app.api = api.New(gateway.New("http://127.0.0.1:1", h.store, gateway.WithTimeout(time.Second)))

	err := h.app.Open(context.Background(), "/doctors")
	assert.ErrorIs(t, err, gateway.ErrUnavailable)
	assert.Contains(t, h.out.String(), "! Server unavailable")
}

func TestApp_SessionExpiry(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /accounts/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Token is blacklisted"})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Given token not valid for any token type"})
	})

	h := newHarness(t, mux, "")
	h.loginAs(t, pat)

	err := h.app.Open(context.Background(), "/appointments")
	require.Error(t, err)

	out := h.out.String()
	assert.Contains(t, out, "! Your session has expired, please log in again")
	assert.False(t, h.app.isLoggedIn())
	assert.Equal(t, routes.PageLogin, h.app.nav.Current().Route.Page)

	_, err = h.store.Load(context.Background())
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestApp_BookAppointment(t *testing.T) {
	var got models.AppointmentRequest
	mux := http.NewServeMux()
	mux.HandleFunc("GET /doctors/4/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.Doctor{ID: 4, UserName: "Dr. House", SpecializationDisplay: "Diagnostics"})
	})
	mux.HandleFunc("POST /appointments/", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusCreated, models.Appointment{ID: 12, Status: models.StatusPending})
	})

	h := newHarness(t, mux, "2026-11-02 10:30\ncheckup\nHeadache\nsince monday\n\n")
	h.loginAs(t, pat)

	require.NoError(t, h.app.Open(context.Background(), "/book-appointment/4"))
	assert.Equal(t, int64(4), got.Doctor)
	assert.Equal(t, models.TypeCheckup, got.AppointmentType)
	assert.Equal(t, "Headache", got.ReasonForVisit)
	assert.Equal(t, "since monday", got.Symptoms)
	assert.Equal(t, time.Date(2026, 11, 2, 10, 30, 0, 0, time.Local).Unix(), got.AppointmentDate.Unix())
	assert.Contains(t, h.out.String(), "Appointment #12 requested")
}

func TestApp_DoctorActions(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /appointments/7/accept/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.Appointment{ID: 7, Status: models.StatusAccepted})
	})
	mux.HandleFunc("POST /appointments/8/reject/", func(w http.ResponseWriter, r *http.Request) {
		var rej models.Rejection
		require.NoError(t, json.NewDecoder(r.Body).Decode(&rej))
		assert.Equal(t, "Fully booked", rej.RejectionReason)
		writeJSON(w, http.StatusOK, models.Appointment{ID: 8, Status: models.StatusRejected})
	})

	h := newHarness(t, mux, "Fully booked\n")
	h.loginAs(t, doc)

	require.NoError(t, h.app.Accept(context.Background(), 7))
	require.NoError(t, h.app.Reject(context.Background(), 8))
	out := h.out.String()
	assert.Contains(t, out, "Appointment #7 is now accepted")
	assert.Contains(t, out, "Appointment #8 is now rejected")
}

func TestApp_ActionsCheckRole(t *testing.T) {
	h := newHarness(t, http.NotFoundHandler(), "")
	h.loginAs(t, pat)

	require.NoError(t, h.app.Accept(context.Background(), 7))
	assert.Contains(t, h.out.String(), "Only a doctor can do that")
}

func TestApp_EditProfileMergesUser(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /accounts/profile/", func(w http.ResponseWriter, r *http.Request) {
		var p models.UserPatch
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		require.NotNil(t, p.FirstName)
		assert.Nil(t, p.LastName)
		u := *pat
		u.FirstName = *p.FirstName
		writeJSON(w, http.StatusOK, u)
	})

	h := newHarness(t, mux, "Patricia\n\n\n\n")
	h.loginAs(t, pat)

	require.NoError(t, h.app.EditProfile(context.Background()))
	sess, err := h.store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Patricia", sess.User.FirstName)
	assert.Equal(t, models.RolePatient, sess.User.Role)
	assert.Equal(t, pat.Email, sess.User.Email)
}

func TestApp_WhoAmI(t *testing.T) {
	h := newHarness(t, http.NotFoundHandler(), "")
	require.NoError(t, h.app.WhoAmI(context.Background()))
	assert.Contains(t, h.out.String(), "Not logged in")

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(5 * time.Minute).Unix(),
	}).SignedString([]byte("k"))
	require.NoError(t, err)
	require.NoError(t, h.store.Save(context.Background(), session.Session{AccessToken: token, RefreshToken: "R", User: doc}))
	_, err = h.app.auth.Restore(context.Background())
	require.NoError(t, err)

	require.NoError(t, h.app.WhoAmI(context.Background()))
	out := h.out.String()
	assert.Contains(t, out, "Dr. House <doc@example.com>")
	assert.Contains(t, out, "access token expires in")
}

func TestApp_ChatRoom(t *testing.T) {
	var marked atomic.Bool
	mux := http.NewServeMux()
	mux.HandleFunc("GET /chat/rooms/5/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.ChatRoom{ID: 5, PatientName: "Pat", DoctorName: "Dr. House", IsActive: true, UnreadCount: 1})
	})
	mux.HandleFunc("GET /chat/rooms/5/messages/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.ChatMessage{{ID: 1, SenderName: "Dr. House", Content: "How are you?", Timestamp: time.Now()}})
	})
	mux.HandleFunc("POST /chat/rooms/5/mark-read/", func(w http.ResponseWriter, r *http.Request) {
		marked.Store(true)
		writeJSON(w, http.StatusOK, models.Message{Message: "ok"})
	})

	h := newHarness(t, mux, "")
	h.loginAs(t, pat)

	require.NoError(t, h.app.Open(context.Background(), "/chat/5"))
	assert.Contains(t, h.out.String(), "Dr. House: How are you?")
	assert.True(t, marked.Load())
}

type flakyPinger struct {
	n      atomic.Int32
	cancel context.CancelFunc
}

func (p *flakyPinger) Ping(context.Context) error {
	if p.n.Add(1) == 1 {
		return errors.New("down")
	}
	p.cancel()
	return nil
}

func TestApp_OnlineStatusWatcher(t *testing.T) {
	h := newHarness(t, http.NotFoundHandler(), "")
	ctx, cancel := context.WithCancel(context.Background())
	p := &flakyPinger{cancel: cancel}
	h.app.pinger = p

	h.app.StartOnlineStatusWatcher(ctx, time.Millisecond)

	out := h.out.String()
	assert.Contains(t, out, "Switched to offline mode")
	assert.Contains(t, out, "Switched to online mode")
	assert.Less(t, strings.Index(out, "offline"), strings.Index(out, "online mode"))
	assert.Equal(t, ModeOnline, h.app.Mode())
}

func TestApp_RunRestoresSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /appointments/patient/", emptyPage)

	h := newHarness(t, mux, "whoami\nexit\n")
	require.NoError(t, h.store.Save(context.Background(), session.Session{AccessToken: "A1", RefreshToken: "R1", User: pat}))

	require.NoError(t, h.app.Run(context.Background()))
	out := h.out.String()
	assert.Contains(t, out, "Signed in as Pat (patient)")
	assert.Contains(t, out, "No appointments")
	assert.Contains(t, out, "pat@example.com")
	assert.Contains(t, out, "Bye!")
}

func TestApp_RunAnonymous(t *testing.T) {
	h := newHarness(t, http.NotFoundHandler(), "help\n")
	require.NoError(t, h.app.Run(context.Background()))
	out := h.out.String()
	assert.Contains(t, out, "Welcome to MedBook")
	assert.Contains(t, out, helpAnonymous)
}
