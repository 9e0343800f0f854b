package emergency

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Stage is the escalation stage of an alert. Stages only ever advance in
// the order below; the client never moves an alert between stages itself.
type Stage string

const (
	StageNone               Stage = "none"
	StageVoiceAlert         Stage = "voice_alert"
	StageWaitingResponse    Stage = "waiting_response"
	StageNotifyingRelatives Stage = "notifying_relatives"
	StageCallingAmbulance   Stage = "calling_ambulance"
)

var escalationOrder = []Stage{
	StageVoiceAlert,
	StageWaitingResponse,
	StageNotifyingRelatives,
	StageCallingAmbulance,
}

// NextStage returns the stage an active alert escalates to. The final
// stage has no successor.
func NextStage(s Stage) (Stage, bool) {
	for i, stage := range escalationOrder {
		if stage == s && i+1 < len(escalationOrder) {
			return escalationOrder[i+1], true
		}
	}
	return s, false
}

func ValidStage(s Stage) bool {
	for _, stage := range escalationOrder {
		if stage == s {
			return true
		}
	}
	return false
}

type Alert struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"user_id"`
	Stage       Stage              `bson:"stage" json:"stage"`
	IsActive    bool               `bson:"is_active" json:"is_active"`
	TriggeredBy string             `bson:"triggered_by,omitempty" json:"triggered_by,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
	ResolvedAt  *time.Time         `bson:"resolved_at,omitempty" json:"resolved_at,omitempty"`
}
