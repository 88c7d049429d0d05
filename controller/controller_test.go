package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"carelink/client"
	"carelink/models"
	"carelink/session"

	"golang.org/x/time/rate"
)

// fakeUI scripts prompt answers and records everything shown to the user.
type fakeUI struct {
	answers []string
	next    int

	alerts []string
	says   []string
	shows  []string
}

func (f *fakeUI) Prompt(label string) (string, bool) {
	if f.next >= len(f.answers) {
		return "", false
	}
	answer := f.answers[f.next]
	f.next++
	return answer, true
}

func (f *fakeUI) Say(msg string)       { f.says = append(f.says, msg) }
func (f *fakeUI) Alert(msg string)     { f.alerts = append(f.alerts, msg) }
func (f *fakeUI) Show(fragment string) { f.shows = append(f.shows, fragment) }

func (f *fakeUI) lastAlert() string {
	if len(f.alerts) == 0 {
		return ""
	}
	return f.alerts[len(f.alerts)-1]
}

func (f *fakeUI) shown() string { return strings.Join(f.shows, "") }

func newController(t *testing.T, handler http.Handler) (*Controller, *fakeUI, session.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := session.NewMemoryStore()
	c := client.New(srv.URL, store)
	c.Limiter = rate.NewLimiter(rate.Inf, 1)

	ui := &fakeUI{}
	return New(c, store, ui, nil), ui, store
}

func loggedIn(t *testing.T, store session.Store) {
	t.Helper()
	if err := session.Save(store, "t1", &models.User{Email: "a@b.com"}); err != nil {
		t.Fatalf("Save session: %v", err)
	}
}

func TestLoginSuccess(t *testing.T) {
	var loginBody models.LoginRequest
	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&loginBody)
		w.Write([]byte(`{"token":"t1","user":{"name":"A","email":"a@b.com"}}`))
	})
	mux.HandleFunc("/billing", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	ctl, ui, store := newController(t, mux)
	ctl.Login(context.Background(), "  A@B.com ", "pw")

	if loginBody.Email != "a@b.com" {
		t.Errorf("submitted email = %q, want trimmed lowercase", loginBody.Email)
	}
	token, _ := store.Token()
	if token != "t1" {
		t.Errorf("stored token = %q, want t1", token)
	}
	user, _ := store.User()
	if user == nil || user.Email != "a@b.com" {
		t.Errorf("stored user = %+v, want email a@b.com", user)
	}
	if !strings.Contains(ui.shown(), "Account: a@b.com") {
		t.Errorf("account panel not rendered:\n%s", ui.shown())
	}
	if ui.lastAlert() != "Login successful!" {
		t.Errorf("alert = %q", ui.lastAlert())
	}
}

func TestLoginFailureKeepsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"bad credentials"}`))
	})

	ctl, ui, store := newController(t, mux)
	ctl.Login(context.Background(), "a@b.com", "wrong")

	if got := ui.lastAlert(); got != "bad credentials" {
		t.Errorf("alert = %q, want the server's message", got)
	}
	token, _ := store.Token()
	if token != "" {
		t.Errorf("session must stay unchanged on failure, token = %q", token)
	}
	user, _ := store.User()
	if user != nil {
		t.Errorf("session must stay unchanged on failure, user = %+v", user)
	}
}

func TestLogoutClearsBothHalves(t *testing.T) {
	ctl, ui, store := newController(t, http.NewServeMux())
	loggedIn(t, store)

	ctl.Logout()

	token, _ := store.Token()
	user, _ := store.User()
	if token != "" || user != nil {
		t.Errorf("session not cleared: token=%q user=%+v", token, user)
	}
	if ui.lastAlert() != "Logged out successfully" {
		t.Errorf("alert = %q", ui.lastAlert())
	}
}

func TestBookRequiresSession(t *testing.T) {
	requests := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		requests++
	})

	ctl, ui, _ := newController(t, mux)
	ctl.Book(context.Background(), "sp1", "Dr. Aren Sharma")

	if requests != 0 {
		t.Errorf("no network call may happen without a session, got %d", requests)
	}
	if ui.lastAlert() != "Please login to book an appointment." {
		t.Errorf("alert = %q", ui.lastAlert())
	}
}

func TestBookSubmitsPromptedDetails(t *testing.T) {
	var body models.AppointmentRequest
	mux := http.NewServeMux()
	mux.HandleFunc("/appointments", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"_id":"ap1","specialistId":"sp1"}`))
	})

	ctl, ui, store := newController(t, mux)
	loggedIn(t, store)
	ui.answers = []string{"2025-04-01", "10:30", "headache"}

	ctl.Book(context.Background(), "sp1", "Dr. Aren Sharma")

	if body.SpecialistID != "sp1" || body.Date != "2025-04-01" || body.Time != "10:30" || body.Symptoms != "headache" {
		t.Errorf("unexpected request body: %+v", body)
	}
	if body.Notes != "Appointment with Dr. Aren Sharma" {
		t.Errorf("notes = %q", body.Notes)
	}
	if ui.lastAlert() != "Appointment booked successfully!" {
		t.Errorf("alert = %q", ui.lastAlert())
	}
}

func TestBookCancelledPromptAborts(t *testing.T) {
	requests := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/appointments", func(w http.ResponseWriter, r *http.Request) {
		requests++
	})

	ctl, ui, store := newController(t, mux)
	loggedIn(t, store)
	ui.answers = []string{"2025-04-01"} // time prompt cancelled

	ctl.Book(context.Background(), "sp1", "Dr. Aren Sharma")
	if requests != 0 {
		t.Errorf("cancelled prompt must abort before the call, got %d requests", requests)
	}
}

func TestShowAppointmentsRequiresSession(t *testing.T) {
	requests := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) { requests++ })

	ctl, ui, _ := newController(t, mux)
	ctl.ShowAppointments(context.Background())

	if requests != 0 {
		t.Errorf("no network call may happen without a session, got %d", requests)
	}
	if ui.lastAlert() != "Please login to view your appointments." {
		t.Errorf("alert = %q", ui.lastAlert())
	}
}

func TestSubmitFeedbackResetsRatingAndReloads(t *testing.T) {
	feedbackGets := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/feedback", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"_id":"f1","rating":4}`))
			return
		}
		feedbackGets++
		w.Write([]byte(`[]`))
	})

	ctl, ui, store := newController(t, mux)
	loggedIn(t, store)
	ctl.SetRating(4)

	ctl.SubmitFeedback(context.Background(), "Lab Tests", "Quick and clean.")

	if ctl.Rating() != 0 {
		t.Errorf("rating after submit = %d, want 0", ctl.Rating())
	}
	if feedbackGets != 1 {
		t.Errorf("feedback list reloads = %d, want exactly one re-fetch", feedbackGets)
	}
	if ui.lastAlert() == "" || !strings.Contains(ui.lastAlert(), "Thank you") {
		t.Errorf("alert = %q", ui.lastAlert())
	}
}

func TestSubmitFeedbackValidatesRating(t *testing.T) {
	requests := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) { requests++ })

	ctl, ui, store := newController(t, mux)
	loggedIn(t, store)

	ctl.SubmitFeedback(context.Background(), "Lab Tests", "text")
	if requests != 0 {
		t.Errorf("rating 0 must not reach the backend, got %d requests", requests)
	}
	if ui.lastAlert() != "Please pick a rating and write your feedback." {
		t.Errorf("alert = %q", ui.lastAlert())
	}
}

func TestPayInvoiceAlwaysReloadsBilling(t *testing.T) {
	cases := []struct {
		name      string
		payStatus int
		payBody   string
	}{
		{"pay succeeds", http.StatusOK, `{"_id":"x1","status":"paid"}`},
		{"pay fails", http.StatusInternalServerError, `{"error":"boom"}`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			billingGets := 0
			mux := http.NewServeMux()
			mux.HandleFunc("/billing/x1/pay", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(c.payStatus)
				w.Write([]byte(c.payBody))
			})
			mux.HandleFunc("/billing", func(w http.ResponseWriter, r *http.Request) {
				billingGets++
				w.Write([]byte(`[]`))
			})

			ctl, _, store := newController(t, mux)
			loggedIn(t, store)

			ctl.PayInvoice(context.Background(), "x1")
			if billingGets != 1 {
				t.Errorf("billing reloads = %d, want 1 regardless of pay outcome", billingGets)
			}
		})
	}
}

func TestSearchByCityPassesFilter(t *testing.T) {
	var gotCity string
	mux := http.NewServeMux()
	mux.HandleFunc("/specialists", func(w http.ResponseWriter, r *http.Request) {
		gotCity = r.URL.Query().Get("city")
		w.Write([]byte(`[]`))
	})

	ctl, ui, _ := newController(t, mux)
	ctl.SearchByCity(context.Background(), "Delhi")

	if gotCity != "Delhi" {
		t.Errorf("city filter = %q, want Delhi", gotCity)
	}
	joined := strings.Join(ui.says, "\n")
	if !strings.Contains(joined, "Showing specialists in Delhi") {
		t.Errorf("status messages = %v", ui.says)
	}
}

func TestSearchByCityEmpty(t *testing.T) {
	requests := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) { requests++ })

	ctl, ui, _ := newController(t, mux)
	ctl.SearchByCity(context.Background(), "  ")

	if requests != 0 {
		t.Errorf("empty city must not fetch, got %d requests", requests)
	}
	if len(ui.says) == 0 || ui.says[len(ui.says)-1] != "Please select a city" {
		t.Errorf("status messages = %v", ui.says)
	}
}

func TestSearchByLocation(t *testing.T) {
	var query map[string][]string
	mux := http.NewServeMux()
	mux.HandleFunc("/specialists", func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Write([]byte(`[{"_id":"sp1","name":"Dr. Aren Sharma","distance":3.462}]`))
	})

	ctl, ui, _ := newController(t, mux)
	ctl.Locator = FixedLocator{Point: models.GeoPoint{Lat: 28.6, Lng: 77.2}}
	ctl.SearchByLocation(context.Background())

	if got := query["lat"]; len(got) != 1 || got[0] != "28.6" {
		t.Errorf("lat = %v", query["lat"])
	}
	if got := query["maxDistance"]; len(got) != 1 || got[0] != "50" {
		t.Errorf("maxDistance = %v", query["maxDistance"])
	}
	if !strings.Contains(ui.shown(), "[3.5 km]") {
		t.Errorf("distance badge missing from render:\n%s", ui.shown())
	}
	if last := ui.says[len(ui.says)-1]; last != "Specialists loaded" {
		t.Errorf("last status = %q", last)
	}
}

func TestSearchByLocationDenied(t *testing.T) {
	requests := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) { requests++ })

	ctl, ui, _ := newController(t, mux)
	ctl.Locator = DeniedLocator{}
	ctl.SearchByLocation(context.Background())

	if requests != 0 {
		t.Errorf("denied location must not fetch, got %d requests", requests)
	}
	if last := ui.says[len(ui.says)-1]; last != "Location access denied" {
		t.Errorf("last status = %q", last)
	}
}

func TestSearchByLocationUnsupported(t *testing.T) {
	ctl, ui, _ := newController(t, http.NewServeMux())
	ctl.Locator = nil
	ctl.SearchByLocation(context.Background())

	if len(ui.says) != 1 || ui.says[0] != "Geolocation not supported" {
		t.Errorf("status messages = %v", ui.says)
	}
}

func TestShowSpecialistsEmpty(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/specialists", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	ctl, ui, _ := newController(t, mux)
	ctl.ShowSpecialists(context.Background())

	if !strings.Contains(ui.shown(), "No specialists found") {
		t.Errorf("placeholder missing:\n%s", ui.shown())
	}
}

func TestExpiredTokenTreatedAsLoggedOut(t *testing.T) {
	requests := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) { requests++ })

	ctl, ui, store := newController(t, mux)
	// Expired HS256 token; claims only, signature never checked client-side.
	expired := "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9." +
		"eyJzdWIiOiJ1MSIsImV4cCI6MTAwMDAwMDAwMH0." +
		"sig"
	if err := session.Save(store, expired, &models.User{Email: "a@b.com"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	ctl.Book(context.Background(), "sp1", "Dr. Aren Sharma")
	if requests != 0 {
		t.Errorf("expired session must not reach the backend, got %d requests", requests)
	}
	if ui.lastAlert() != "Please login to book an appointment." {
		t.Errorf("alert = %q", ui.lastAlert())
	}
}
