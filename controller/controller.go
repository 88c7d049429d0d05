// Package controller wires user actions to the API client, the session
// store, and the view renderers. Each action is a linear sequence: validate
// input, call the backend, branch on the typed result, update the session
// and views, acknowledge.
package controller

import (
	"context"
	"strings"

	"carelink/client"
	"carelink/models"
	"carelink/session"
	"carelink/utils"
	"carelink/views"

	"go.uber.org/zap"
)

// UI is the user-facing surface. Prompt returns ok=false when the user
// cancelled. Alert is a blocking acknowledgment; Say is a passing status
// line; Show displays a rendered fragment.
type UI interface {
	Prompt(label string) (value string, ok bool)
	Say(msg string)
	Alert(msg string)
	Show(fragment string)
}

// Controller drives every user-facing action.
type Controller struct {
	Client  *client.Client
	Session session.Store
	UI      UI
	Locator Locator
	Logger  *zap.Logger

	// MaxDistance is the search radius in kilometers for location search.
	MaxDistance float64

	// rating mirrors the star widget; submitting feedback resets it.
	rating int
}

// New assembles a Controller over an already-configured client.
func New(c *client.Client, store session.Store, ui UI, locator Locator) *Controller {
	return &Controller{
		Client:      c,
		Session:     store,
		UI:          ui,
		Locator:     locator,
		Logger:      utils.GetLogger(),
		MaxDistance: client.DefaultMaxDistance,
	}
}

// failureMessage prefers the backend's own message for application-level
// failures and falls back to a generic line for transport faults.
func failureMessage(err error, fallback string) string {
	if apiErr, ok := client.AsAPIError(err); ok {
		switch apiErr.Kind {
		case client.KindNetwork, client.KindDecode, client.KindServer:
			return fallback
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
	}
	return fallback
}

// renderAuthState shows the account panel or the signed-out hint, mirroring
// the visibility toggle between auth forms and the account section.
func (ctl *Controller) renderAuthState() {
	user, err := ctl.Session.User()
	if err != nil {
		ctl.Logger.Warn("failed to read session user", zap.Error(err))
		return
	}
	token, err := ctl.Session.Token()
	if err != nil {
		ctl.Logger.Warn("failed to read session token", zap.Error(err))
		return
	}
	if user != nil && token != "" {
		ctl.UI.Show("Account: " + user.Email + "\n")
	} else {
		ctl.UI.Show("Not signed in. Use register or login.\n")
	}
}

// ShowAccount renders the current auth state.
func (ctl *Controller) ShowAccount() {
	ctl.renderAuthState()
}

// requireSession checks for a live session before an authenticated action.
// An expired token counts as logged-out, no network call is spent on it.
func (ctl *Controller) requireSession(action string) bool {
	active, err := session.Active(ctl.Session)
	if err != nil {
		ctl.Logger.Warn("failed to read session", zap.Error(err))
	}
	if !active {
		ctl.UI.Alert("Please login to " + action + ".")
		return false
	}
	return true
}

// Register creates an account and starts a session. Fields are trimmed and
// the email lower-cased before the call.
func (ctl *Controller) Register(ctx context.Context, name, email, phone, password string) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	phone = strings.TrimSpace(phone)
	if name == "" || email == "" || password == "" {
		ctl.UI.Alert("Please fill in name, email and password.")
		return
	}

	resp, err := ctl.Client.Register(ctx, models.RegisterRequest{
		Name: name, Email: email, Phone: phone, Password: password,
	})
	if err != nil {
		ctl.UI.Alert(failureMessage(err, "Registration failed. Please try again."))
		return
	}

	if err := session.Save(ctl.Session, resp.Token, resp.User); err != nil {
		ctl.Logger.Error("failed to persist session", zap.Error(err))
		ctl.UI.Alert("Registration succeeded but the session could not be saved.")
		return
	}
	ctl.renderAuthState()
	ctl.UI.Alert("Account created successfully!")
}

// Login authenticates, persists the session, and refreshes the billing
// view for the new user.
func (ctl *Controller) Login(ctx context.Context, email, password string) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		ctl.UI.Alert("Please enter email and password.")
		return
	}

	resp, err := ctl.Client.Login(ctx, models.LoginRequest{Email: email, Password: password})
	if err != nil {
		ctl.UI.Alert(failureMessage(err, "Login failed. Please check your credentials."))
		return
	}

	if err := session.Save(ctl.Session, resp.Token, resp.User); err != nil {
		ctl.Logger.Error("failed to persist session", zap.Error(err))
		ctl.UI.Alert("Login succeeded but the session could not be saved.")
		return
	}
	ctl.renderAuthState()
	ctl.RefreshBilling(ctx)
	ctl.UI.Alert("Login successful!")
}

// Logout clears both halves of the session together.
func (ctl *Controller) Logout() {
	if err := session.Clear(ctl.Session); err != nil {
		ctl.Logger.Error("failed to clear session", zap.Error(err))
		ctl.UI.Alert("Logout failed. Please try again.")
		return
	}
	ctl.renderAuthState()
	ctl.UI.Alert("Logged out successfully")
}

// Book collects appointment details and creates the appointment. A
// cancelled date or time prompt aborts without a call; symptoms are
// optional. No appointment list is refreshed afterwards.
func (ctl *Controller) Book(ctx context.Context, specialistID, specialistName string) {
	if !ctl.requireSession("book an appointment") {
		return
	}

	date, ok := ctl.UI.Prompt("Enter appointment date for " + specialistName + " (YYYY-MM-DD)")
	if !ok || date == "" {
		return
	}
	timeOfDay, ok := ctl.UI.Prompt("Enter preferred time (HH:MM)")
	if !ok || timeOfDay == "" {
		return
	}
	symptoms, _ := ctl.UI.Prompt("Briefly describe your symptoms (optional)")

	_, err := ctl.Client.BookAppointment(ctx, models.AppointmentRequest{
		SpecialistID: specialistID,
		Date:         date,
		Time:         timeOfDay,
		Symptoms:     symptoms,
		Notes:        "Appointment with " + specialistName,
	})
	if err != nil {
		ctl.UI.Alert(failureMessage(err, "Error booking appointment. Please try again."))
		return
	}
	ctl.UI.Alert("Appointment booked successfully!")
}

// ShowAppointments fetches and renders the logged-in user's appointments.
func (ctl *Controller) ShowAppointments(ctx context.Context) {
	if !ctl.requireSession("view your appointments") {
		return
	}
	items, err := ctl.Client.Appointments(ctx)
	if err != nil {
		ctl.UI.Alert(failureMessage(err, "Error loading appointments. Please try again."))
		return
	}
	ctl.UI.Show(views.RenderAppointments(items))
}

// SetRating records the star-widget value used by the next feedback
// submission.
func (ctl *Controller) SetRating(rating int) {
	ctl.rating = rating
}

// Rating returns the current star-widget value.
func (ctl *Controller) Rating() int {
	return ctl.rating
}

// SubmitFeedback posts a review, resets the star widget, and re-fetches the
// feedback list. The list is never updated optimistically.
func (ctl *Controller) SubmitFeedback(ctx context.Context, serviceType, text string) {
	if !ctl.requireSession("submit feedback") {
		return
	}
	text = strings.TrimSpace(text)
	if ctl.rating < 1 || ctl.rating > 5 || text == "" {
		ctl.UI.Alert("Please pick a rating and write your feedback.")
		return
	}

	_, err := ctl.Client.SubmitFeedback(ctx, models.FeedbackRequest{
		Rating:      ctl.rating,
		ServiceType: serviceType,
		Feedback:    text,
	})
	if err != nil {
		ctl.UI.Alert(failureMessage(err, "Error submitting feedback. Please try again."))
		return
	}

	ctl.rating = 0
	ctl.UI.Alert("Thank you for your feedback!")
	ctl.RefreshFeedback(ctx)
}

// RefreshFeedback re-fetches and re-renders the feedback list.
func (ctl *Controller) RefreshFeedback(ctx context.Context) {
	items, err := ctl.Client.Feedback(ctx)
	if err != nil {
		ctl.Logger.Warn("failed to load feedback", zap.Error(err))
		return
	}
	ctl.UI.Show(views.RenderFeedback(items))
}

// PayInvoice pays one billing item. The billing view is reloaded whether or
// not the pay call succeeded, so the display always reflects backend state.
func (ctl *Controller) PayInvoice(ctx context.Context, billingID string) {
	_, err := ctl.Client.PayBilling(ctx, billingID)
	if err != nil {
		ctl.UI.Alert(failureMessage(err, "Payment failed. Please try again."))
	} else {
		ctl.UI.Alert("Payment successful!")
	}
	ctl.RefreshBilling(ctx)
}

// RefreshBilling re-fetches the billing collection and renders the summary,
// the two most recent invoices, and the full table. Skipped silently when
// no session is active.
func (ctl *Controller) RefreshBilling(ctx context.Context) {
	active, err := session.Active(ctl.Session)
	if err != nil || !active {
		return
	}
	items, err := ctl.Client.Billing(ctx)
	if err != nil {
		ctl.Logger.Warn("failed to load billing", zap.Error(err))
		return
	}
	ctl.UI.Show(views.RenderBillingSummary(items))
	ctl.UI.Show(views.RenderRecentInvoices(items))
	ctl.UI.Show(views.RenderInvoiceTable(items))
}

// ShowSpecialists fetches and renders the unfiltered specialist list.
func (ctl *Controller) ShowSpecialists(ctx context.Context) {
	specialists, err := ctl.Client.Specialists(ctx, models.SpecialistFilter{})
	if err != nil {
		ctl.UI.Say("Error loading specialists. Please try again.")
		ctl.Logger.Warn("failed to load specialists", zap.Error(err))
		return
	}
	ctl.UI.Show(views.RenderSpecialists(specialists))
}

// SearchByLocation resolves the current coordinate and renders specialists
// around it. On locator failure nothing is fetched.
func (ctl *Controller) SearchByLocation(ctx context.Context) {
	if ctl.Locator == nil {
		ctl.UI.Say("Geolocation not supported")
		return
	}
	ctl.UI.Say("Detecting location...")
	point, err := ctl.Locator.Current(ctx)
	if err != nil {
		ctl.UI.Say("Location access denied")
		return
	}

	ctl.UI.Say("Loading specialists...")
	specialists, err := ctl.Client.Specialists(ctx, models.SpecialistFilter{
		Lat:         &point.Lat,
		Lng:         &point.Lng,
		MaxDistance: ctl.MaxDistance,
	})
	if err != nil {
		ctl.UI.Say("Error loading specialists. Please try again.")
		ctl.Logger.Warn("failed to load specialists", zap.Error(err))
		return
	}
	ctl.UI.Show(views.RenderSpecialists(specialists))
	ctl.UI.Say("Specialists loaded")
}

// SearchByCity renders specialists filtered to one city. The filter is
// passed through to the backend.
func (ctl *Controller) SearchByCity(ctx context.Context, city string) {
	city = strings.TrimSpace(city)
	if city == "" {
		ctl.UI.Say("Please select a city")
		return
	}

	ctl.UI.Say("Loading specialists...")
	specialists, err := ctl.Client.Specialists(ctx, models.SpecialistFilter{City: city})
	if err != nil {
		ctl.UI.Say("Error loading specialists. Please try again.")
		ctl.Logger.Warn("failed to load specialists", zap.Error(err))
		return
	}
	ctl.UI.Show(views.RenderSpecialists(specialists))
	ctl.UI.Say("Showing specialists in " + city)
}
