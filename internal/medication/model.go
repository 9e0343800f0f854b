package medication

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Dates are stored as "2006-01-02" strings; ISO dates order correctly
// under lexicographic comparison, which the range queries rely on.
type Medication struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	UserID        primitive.ObjectID `bson:"user_id" json:"user_id"`
	Name          string             `bson:"name" json:"name"`
	Dosage        string             `bson:"dosage" json:"dosage"`
	ScheduledTime string             `bson:"scheduled_time" json:"scheduled_time"` // "HH:MM"
	StartDate     string             `bson:"start_date" json:"start_date"`
	EndDate       *string            `bson:"end_date,omitempty" json:"end_date,omitempty"`
}

const (
	StatusTaken   = "taken"
	StatusMissed  = "missed"
	StatusPending = "pending"
)

type MedicationLog struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	MedicationID primitive.ObjectID `bson:"medication_id" json:"medication_id"`
	UserID       primitive.ObjectID `bson:"user_id" json:"user_id"`
	Date         string             `bson:"date" json:"date"`
	Status       string             `bson:"status" json:"status"`
	TakenAt      *time.Time         `bson:"taken_at,omitempty" json:"taken_at,omitempty"`
}
