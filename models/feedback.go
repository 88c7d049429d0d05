package models

import "time"

// Feedback is a service review left by a user.
type Feedback struct {
	ID          string    `bson:"_id" json:"_id"`
	UserName    string    `bson:"userName" json:"userName"`
	Rating      int       `bson:"rating" json:"rating"` // 1..5
	ServiceType string    `bson:"serviceType" json:"serviceType"`
	Feedback    string    `bson:"feedback" json:"feedback"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// FeedbackRequest is the body of POST /feedback.
type FeedbackRequest struct {
	Rating      int    `json:"rating"`
	ServiceType string `json:"serviceType"`
	Feedback    string `json:"feedback"`
}
