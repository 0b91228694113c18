package entity

import "time"

// Employer is the business record written when an admin approves a user's
// employer request.
type Employer struct {
	ID         string    `bson:"_id" json:"id"`
	UserID     string    `bson:"user_id" json:"user_id"`
	Name       string    `bson:"name" json:"name"`
	Email      string    `bson:"email" json:"email"`
	ApprovedBy string    `bson:"approved_by" json:"approved_by"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
