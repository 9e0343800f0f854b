package medication

import "time"

type CreateMedicationRequest struct {
	Name          string  `json:"name" binding:"required"`
	Dosage        string  `json:"dosage" binding:"required"`
	ScheduledTime string  `json:"scheduled_time" binding:"required"`
	StartDate     string  `json:"start_date" binding:"required"`
	EndDate       *string `json:"end_date,omitempty"`
}

type RecordComplianceRequest struct {
	Date    string     `json:"date" binding:"required"`
	Status  string     `json:"status" binding:"required"`
	TakenAt *time.Time `json:"taken_at,omitempty"`
}
