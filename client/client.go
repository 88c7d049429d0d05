// Package client is the access layer for the healthcare-booking REST
// backend: one method per endpoint, bearer auth read from the session store
// at call time, and a typed error for every failure path.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"carelink/models"
	"carelink/session"
	"carelink/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultMaxDistance is the fallback radius, in kilometers, applied when a
// specialist search carries an origin but no explicit threshold.
const DefaultMaxDistance = 50

// Client talks to the backend API. Fields may be adjusted before first use;
// the zero timeout and limiter defaults suit interactive runs.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Session    session.Store
	Limiter    *rate.Limiter
	Logger     *zap.Logger
}

// New builds a Client against the given base URL (e.g.
// "http://localhost:3000/api"). The limiter spreads bursts of repeated
// actions, double-submits included, instead of letting them race.
func New(baseURL string, store session.Store) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		Session:    store,
		Limiter:    rate.NewLimiter(rate.Every(time.Minute/100), 5),
		Logger:     utils.GetLogger(),
	}
}

// errorBody is the error envelope the backend uses on failed requests.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// do performs one request and decodes a 2xx JSON body into out. Every
// failure comes back as *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, authed bool, out any) error {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return &APIError{Kind: KindNetwork, Message: "request cancelled", Err: err}
		}
	}

	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &APIError{Kind: KindDecode, Message: "failed to encode request body", Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return &APIError{Kind: KindNetwork, Message: "failed to build request", Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	if authed {
		// Read the token at call time so a login that happened after the
		// client was constructed is honored immediately.
		token, err := c.Session.Token()
		if err != nil {
			return &APIError{Kind: KindNetwork, Message: "failed to read session", Err: err}
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Logger.Warn("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return &APIError{Kind: KindNetwork, Message: "could not reach the server", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Kind: KindNetwork, Message: "failed to read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(data, &eb)
		msg := eb.Error
		if msg == "" {
			msg = eb.Message
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		c.Logger.Debug("api error",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg))
		return &APIError{Kind: kindForStatus(resp.StatusCode), Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &APIError{Kind: KindDecode, Status: resp.StatusCode, Message: "failed to decode response", Err: err}
	}
	return nil
}

// Register creates an account. On success the response carries the token and
// user to persist; a token-less body is reported as a validation failure
// with the backend's own message.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/register", nil, req, false, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		msg := resp.Error
		if msg == "" {
			msg = "Registration failed"
		}
		return nil, &APIError{Kind: KindValidation, Message: msg}
	}
	return &resp, nil
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/login", nil, req, false, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		msg := resp.Error
		if msg == "" {
			msg = "Login failed"
		}
		return nil, &APIError{Kind: KindUnauthorized, Message: msg}
	}
	return &resp, nil
}

// Specialists lists specialists, optionally filtered by origin, radius,
// city, and specialty. Distance on the returned records is populated by the
// server only when an origin was supplied.
func (c *Client) Specialists(ctx context.Context, filter models.SpecialistFilter) ([]models.Specialist, error) {
	query := url.Values{}
	if filter.HasOrigin() {
		query.Set("lat", strconv.FormatFloat(*filter.Lat, 'f', -1, 64))
		query.Set("lng", strconv.FormatFloat(*filter.Lng, 'f', -1, 64))
		maxDistance := filter.MaxDistance
		if maxDistance <= 0 {
			maxDistance = DefaultMaxDistance
		}
		query.Set("maxDistance", strconv.FormatFloat(maxDistance, 'f', -1, 64))
	}
	if filter.City != "" {
		query.Set("city", filter.City)
	}
	if filter.Specialty != "" {
		query.Set("specialty", filter.Specialty)
	}

	var specialists []models.Specialist
	if err := c.do(ctx, http.MethodGet, "/specialists", query, nil, false, &specialists); err != nil {
		return nil, err
	}
	return specialists, nil
}

// BookAppointment creates an appointment for the logged-in user.
func (c *Client) BookAppointment(ctx context.Context, req models.AppointmentRequest) (*models.Appointment, error) {
	var appt models.Appointment
	if err := c.do(ctx, http.MethodPost, "/appointments", nil, req, true, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

// Appointments lists the logged-in user's appointments.
func (c *Client) Appointments(ctx context.Context) ([]models.Appointment, error) {
	var appts []models.Appointment
	if err := c.do(ctx, http.MethodGet, "/appointments", nil, nil, true, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

// SubmitFeedback posts a review for the logged-in user.
func (c *Client) SubmitFeedback(ctx context.Context, req models.FeedbackRequest) (*models.Feedback, error) {
	var fb models.Feedback
	if err := c.do(ctx, http.MethodPost, "/feedback", nil, req, true, &fb); err != nil {
		return nil, err
	}
	return &fb, nil
}

// Feedback lists all reviews in the order the backend returns them.
func (c *Client) Feedback(ctx context.Context) ([]models.Feedback, error) {
	var items []models.Feedback
	if err := c.do(ctx, http.MethodGet, "/feedback", nil, nil, false, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Billing lists the logged-in user's billing items.
func (c *Client) Billing(ctx context.Context) ([]models.BillingItem, error) {
	var items []models.BillingItem
	if err := c.do(ctx, http.MethodGet, "/billing", nil, nil, true, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// PayBilling marks one billing item as paid and returns the updated record.
func (c *Client) PayBilling(ctx context.Context, id string) (*models.BillingItem, error) {
	var item models.BillingItem
	path := fmt.Sprintf("/billing/%s/pay", url.PathEscape(id))
	if err := c.do(ctx, http.MethodPatch, path, nil, nil, true, &item); err != nil {
		return nil, err
	}
	return &item, nil
}
