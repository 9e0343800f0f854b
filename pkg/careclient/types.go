package careclient

import "time"

// Stage mirrors the emergency escalation stages published by the API.
type Stage string

const (
	StageNone               Stage = "none"
	StageVoiceAlert         Stage = "voice_alert"
	StageWaitingResponse    Stage = "waiting_response"
	StageNotifyingRelatives Stage = "notifying_relatives"
	StageCallingAmbulance   Stage = "calling_ambulance"
)

type User struct {
	ID         string `json:"id"`
	Fullname   string `json:"fullname"`
	Phone      string `json:"phone"`
	DOB        string `json:"dob"`
	BloodGroup string `json:"blood_group"`
	Address    string `json:"address"`
}

type Medication struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Dosage        string  `json:"dosage"`
	ScheduledTime string  `json:"scheduled_time"`
	StartDate     string  `json:"start_date"`
	EndDate       *string `json:"end_date,omitempty"`
}

type MedicationLog struct {
	ID           string     `json:"id"`
	MedicationID string     `json:"medication_id"`
	Date         string     `json:"date"`
	Status       string     `json:"status"`
	TakenAt      *time.Time `json:"taken_at,omitempty"`
}

type Nominee struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
}

type EmergencyAlert struct {
	ID          string     `json:"id"`
	Stage       Stage      `json:"stage"`
	IsActive    bool       `json:"is_active"`
	TriggeredBy string     `json:"triggered_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

type CheckUserResponse struct {
	Exists bool `json:"exists"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	IsRegistered bool   `json:"is_registered"`
}

type RegisterRequest struct {
	Fullname   string `json:"fullname"`
	Phone      string `json:"phone"`
	DOB        string `json:"dob"`
	BloodGroup string `json:"blood_group"`
	Address    string `json:"address"`
}

// APIError is the error envelope returned by the backend on failures.
type APIError struct {
	Kind   string `json:"error"`
	Detail string `json:"detail"`
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Kind
}
