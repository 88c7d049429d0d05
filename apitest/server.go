// Package apitest hosts an in-memory implementation of the booking backend's
// REST contract for tests. It is test tooling, not a server product: state
// lives in maps, tokens are short-lived HS256 JWTs, and distance filtering
// uses the same haversine the real backend applies.
package apitest

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"carelink/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var signingKey = []byte("apitest-secret")

type account struct {
	user         models.User
	passwordHash []byte
}

// Server is the fake backend. Mutate the exported slices through the Add
// helpers before driving requests at Engine.
type Server struct {
	Engine *gin.Engine

	mu           sync.Mutex
	accounts     map[string]account // by email
	specialists  []models.Specialist
	feedback     []models.Feedback
	billing      []models.BillingItem
	appointments []models.Appointment

	// TokenTTL controls minted token lifetime; tests shorten it to exercise
	// expiry handling.
	TokenTTL time.Duration
}

// NewServer builds the fake backend with empty state.
func NewServer() *Server {
	gin.SetMode(gin.TestMode)
	s := &Server{
		Engine:   gin.New(),
		accounts: make(map[string]account),
		TokenTTL: time.Hour,
	}

	api := s.Engine.Group("/api")
	api.POST("/register", s.register)
	api.POST("/login", s.login)
	api.GET("/specialists", s.listSpecialists)
	api.GET("/feedback", s.listFeedback)

	authed := api.Group("", s.requireBearer)
	authed.POST("/appointments", s.createAppointment)
	authed.GET("/appointments", s.listAppointments)
	authed.POST("/feedback", s.createFeedback)
	authed.GET("/billing", s.listBilling)
	authed.PATCH("/billing/:id/pay", s.payBilling)

	return s
}

// AddSpecialist seeds one specialist record.
func (s *Server) AddSpecialist(sp models.Specialist) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sp.ID == "" {
		sp.ID = uuid.NewString()
	}
	s.specialists = append(s.specialists, sp)
}

// AddFeedback seeds one feedback record.
func (s *Server) AddFeedback(fb models.Feedback) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fb.ID == "" {
		fb.ID = uuid.NewString()
	}
	s.feedback = append(s.feedback, fb)
}

// AddBilling seeds one billing item.
func (s *Server) AddBilling(item models.BillingItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	s.billing = append(s.billing, item)
}

// Appointments returns a copy of the appointments created so far.
func (s *Server) Appointments() []models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Appointment, len(s.appointments))
	copy(out, s.appointments)
	return out
}

func (s *Server) mintToken(userID, email string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(signingKey)
}

func (s *Server) register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, email and password are required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[req.Email]; exists {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	user := models.User{ID: uuid.NewString(), Name: req.Name, Email: req.Email, Phone: req.Phone}
	s.accounts[req.Email] = account{user: user, passwordHash: hash}

	token, err := s.mintToken(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(http.StatusCreated, models.AuthResponse{Token: token, User: &user})
}

func (s *Server) login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	acct, exists := s.accounts[req.Email]
	if !exists || bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := s.mintToken(acct.user.ID, acct.user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	user := acct.user
	c.JSON(http.StatusOK, models.AuthResponse{Token: token, User: &user})
}

func (s *Server) requireBearer(c *gin.Context) {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing bearer token"})
		return
	}
	token, err := jwt.Parse(header[len(prefix):], func(t *jwt.Token) (interface{}, error) {
		return signingKey, nil
	})
	if err != nil || !token.Valid {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}
	c.Next()
}

// haversineKm computes the great-circle distance between two points.
func haversineKm(a, b models.GeoPoint) float64 {
	const earthRadiusKm = 6371
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func (s *Server) listSpecialists(c *gin.Context) {
	city := c.Query("city")
	specialty := c.Query("specialty")
	latStr, lngStr := c.Query("lat"), c.Query("lng")

	var origin *models.GeoPoint
	maxDistance := 50.0
	if latStr != "" && lngStr != "" {
		lat, errLat := strconv.ParseFloat(latStr, 64)
		lng, errLng := strconv.ParseFloat(lngStr, 64)
		if errLat == nil && errLng == nil {
			origin = &models.GeoPoint{Lat: lat, Lng: lng}
		}
		if md, err := strconv.ParseFloat(c.Query("maxDistance"), 64); err == nil {
			maxDistance = md
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Specialist, 0, len(s.specialists))
	for _, sp := range s.specialists {
		if city != "" && sp.City != city {
			continue
		}
		if specialty != "" && sp.Specialty != specialty {
			continue
		}
		if origin != nil {
			d := haversineKm(*origin, sp.Location)
			if d > maxDistance {
				continue
			}
			sp.Distance = &d
		}
		out = append(out, sp)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) listFeedback(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Feedback, len(s.feedback))
	copy(out, s.feedback)
	c.JSON(http.StatusOK, out)
}

func (s *Server) createFeedback(c *gin.Context) {
	var req models.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5"})
		return
	}

	fb := models.Feedback{
		ID:          uuid.NewString(),
		UserName:    "Test User",
		Rating:      req.Rating,
		ServiceType: req.ServiceType,
		Feedback:    req.Feedback,
		CreatedAt:   time.Now().UTC(),
	}
	s.mu.Lock()
	s.feedback = append(s.feedback, fb)
	s.mu.Unlock()
	c.JSON(http.StatusCreated, fb)
}

func (s *Server) createAppointment(c *gin.Context) {
	var req models.AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.SpecialistID == "" || req.Date == "" || req.Time == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Specialist, date and time are required"})
		return
	}

	appt := models.Appointment{
		ID:           uuid.NewString(),
		SpecialistID: req.SpecialistID,
		Date:         req.Date,
		Time:         req.Time,
		Symptoms:     req.Symptoms,
		Notes:        req.Notes,
		Status:       "scheduled",
		CreatedAt:    time.Now().UTC(),
	}
	s.mu.Lock()
	s.appointments = append(s.appointments, appt)
	s.mu.Unlock()
	c.JSON(http.StatusCreated, appt)
}

func (s *Server) listAppointments(c *gin.Context) {
	c.JSON(http.StatusOK, s.Appointments())
}

func (s *Server) listBilling(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.BillingItem, len(s.billing))
	copy(out, s.billing)
	c.JSON(http.StatusOK, out)
}

func (s *Server) payBilling(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.billing {
		if s.billing[i].ID == id {
			if s.billing[i].Status == models.BillingPaid {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invoice already paid"})
				return
			}
			s.billing[i].Status = models.BillingPaid
			c.JSON(http.StatusOK, s.billing[i])
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
}
