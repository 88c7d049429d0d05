// Package seed resets the specialists and feedbacks collections to a fixed
// sample data set.
package seed

import (
	"context"
	"fmt"
	"time"

	"carelink/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	specialistsCollection = "specialists"
	feedbackCollection    = "feedbacks"
)

// Result reports how many records each collection received.
type Result struct {
	Specialists int
	Feedback    int
}

// Run clears both collections and inserts the sample specialists and
// feedback entries.
func Run(ctx context.Context, db *mongo.Database) (Result, error) {
	specialists := db.Collection(specialistsCollection)
	feedback := db.Collection(feedbackCollection)

	if _, err := specialists.DeleteMany(ctx, bson.M{}); err != nil {
		return Result{}, fmt.Errorf("failed to clear specialists: %w", err)
	}
	if _, err := feedback.DeleteMany(ctx, bson.M{}); err != nil {
		return Result{}, fmt.Errorf("failed to clear feedback: %w", err)
	}

	specialistDocs := make([]interface{}, 0, len(SampleSpecialists))
	for _, s := range SampleSpecialists {
		s.ID = uuid.NewString()
		specialistDocs = append(specialistDocs, s)
	}
	if _, err := specialists.InsertMany(ctx, specialistDocs); err != nil {
		return Result{}, fmt.Errorf("failed to insert specialists: %w", err)
	}

	now := time.Now().UTC()
	feedbackDocs := make([]interface{}, 0, len(SampleFeedback))
	for _, f := range SampleFeedback {
		f.ID = uuid.NewString()
		f.CreatedAt = now
		feedbackDocs = append(feedbackDocs, f)
	}
	if _, err := feedback.InsertMany(ctx, feedbackDocs); err != nil {
		return Result{}, fmt.Errorf("failed to insert feedback: %w", err)
	}

	return Result{Specialists: len(specialistDocs), Feedback: len(feedbackDocs)}, nil
}

// SampleSpecialists is the fixed specialist data set.
var SampleSpecialists = []models.Specialist{
	{
		Name:       "Dr. Aren Sharma",
		Email:      "dr.aren@frankhospital.com",
		Phone:      "+91-9876543210",
		Specialty:  "General Physician",
		City:       "Delhi",
		Location:   models.GeoPoint{Lat: 28.64, Lng: 77.22},
		Experience: 10,
		Rating:     4.8,
		Available:  true,
		Contact:    "www.frankhospital.com",
	},
	{
		Name:       "Dr. Shalip Gupta",
		Email:      "dr.shalip@yahoo.com",
		Phone:      "+91-9876543211",
		Specialty:  "Pediatrics",
		City:       "Delhi",
		Location:   models.GeoPoint{Lat: 28.58, Lng: 77.18},
		Experience: 8,
		Rating:     4.6,
		Available:  true,
		Contact:    "Dr.Shalip@yahoo.com",
	},
	{
		Name:       "Dr. Hildi Kao",
		Email:      "dr.hildi@kongshu.com",
		Phone:      "+91-9876543212",
		Specialty:  "Dermatology",
		City:       "Mumbai",
		Location:   models.GeoPoint{Lat: 19.09, Lng: 72.88},
		Experience: 12,
		Rating:     4.9,
		Available:  true,
		Contact:    "Kongshu@yahoo.com",
	},
	{
		Name:       "Dr. R. Singh",
		Email:      "dr.singh@health.org",
		Phone:      "+91-9876543213",
		Specialty:  "Cardiology",
		City:       "Jaipur",
		Location:   models.GeoPoint{Lat: 26.90, Lng: 75.80},
		Experience: 15,
		Rating:     4.7,
		Available:  true,
		Contact:    "rsingh@health.org",
	},
	{
		Name:       "Dr. Meera Das",
		Email:      "dr.meera@example.com",
		Phone:      "+91-9876543214",
		Specialty:  "Gynecology",
		City:       "Mumbai",
		Location:   models.GeoPoint{Lat: 19.07, Lng: 72.84},
		Experience: 9,
		Rating:     4.8,
		Available:  true,
		Contact:    "meeradas@example.com",
	},
}

// SampleFeedback is the fixed feedback data set.
var SampleFeedback = []models.Feedback{
	{
		UserName:    "Rahul Kumar",
		Rating:      5,
		ServiceType: "General Consultation",
		Feedback:    "Excellent service! The doctors were very professional and caring. The online consultation was smooth.",
	},
	{
		UserName:    "Priya Singh",
		Rating:      4,
		ServiceType: "Lab Tests",
		Feedback:    "Good experience overall. The doctor was knowledgeable, but waiting time was a bit long.",
	},
	{
		UserName:    "Amit Patel",
		Rating:      5,
		ServiceType: "Emergency Care",
		Feedback:    "Life-saving service! The emergency team responded quickly and provided excellent care.",
	},
}
