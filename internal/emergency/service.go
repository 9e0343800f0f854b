package emergency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var ErrAlertNotFound = errors.New("alert not found")

type TriggerRequest struct {
	Stage       Stage  `json:"stage" binding:"required"`
	TriggeredBy string `json:"triggered_by"`
}

// Notifier delivers an alert event to the user's nominees. Implementations
// must tolerate being called with the same alert more than once.
type Notifier interface {
	NotifyNominees(ctx context.Context, alert *Alert)
}

type AlertService interface {
	Active(ctx context.Context, userID primitive.ObjectID) (*Alert, error)
	Trigger(ctx context.Context, userID primitive.ObjectID, req *TriggerRequest) (*Alert, error)
	Resolve(ctx context.Context, userID, alertID primitive.ObjectID) (*Alert, error)
	EscalateOverdue(ctx context.Context) error
}

type alertService struct {
	alertRepository  AlertRepository
	notifier         Notifier
	noResponseWindow time.Duration
	logger           *zap.SugaredLogger
	now              func() time.Time
}

func NewAlertService(repo AlertRepository, notifier Notifier, noResponseWindow time.Duration, logger *zap.SugaredLogger) AlertService {
	return &alertService{
		alertRepository:  repo,
		notifier:         notifier,
		noResponseWindow: noResponseWindow,
		logger:           logger,
		now:              time.Now,
	}
}

func (s *alertService) Active(ctx context.Context, userID primitive.ObjectID) (*Alert, error) {
	return s.alertRepository.FindActiveByUser(ctx, userID)
}

// Trigger raises a new alert, or updates the stage of the already-active
// one so a user can never hold two active alerts at once.
func (s *alertService) Trigger(ctx context.Context, userID primitive.ObjectID, req *TriggerRequest) (*Alert, error) {

	if !ValidStage(req.Stage) {
		return nil, fmt.Errorf("invalid stage %q", req.Stage)
	}

	existing, err := s.alertRepository.FindActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		existing.Stage = req.Stage
		existing.UpdatedAt = s.now()
		if err := s.alertRepository.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	alert := &Alert{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		Stage:       req.Stage,
		IsActive:    true,
		TriggeredBy: req.TriggeredBy,
		CreatedAt:   s.now(),
		UpdatedAt:   s.now(),
	}

	if err := s.alertRepository.Create(ctx, alert); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyNominees(ctx, alert)
	}

	return alert, nil
}

func (s *alertService) Resolve(ctx context.Context, userID, alertID primitive.ObjectID) (*Alert, error) {

	alert, err := s.alertRepository.FindByIDAndUser(ctx, alertID, userID)
	if err != nil {
		return nil, err
	}
	if alert == nil {
		return nil, ErrAlertNotFound
	}

	resolvedAt := s.now()
	alert.IsActive = false
	alert.ResolvedAt = &resolvedAt
	alert.UpdatedAt = resolvedAt

	if err := s.alertRepository.Update(ctx, alert); err != nil {
		return nil, err
	}

	return alert, nil
}

// EscalateOverdue advances every active alert that has sat unresolved for
// longer than the no-response window. Alerts already at the final stage
// are left alone; the cron keeps calling until someone resolves them.
func (s *alertService) EscalateOverdue(ctx context.Context) error {

	cutoff := s.now().Add(-s.noResponseWindow)

	alerts, err := s.alertRepository.FindActiveUpdatedBefore(ctx, cutoff)
	if err != nil {
		return err
	}

	for _, alert := range alerts {
		next, ok := NextStage(alert.Stage)
		if !ok {
			continue
		}

		alert.Stage = next
		alert.UpdatedAt = s.now()

		if err := s.alertRepository.Update(ctx, alert); err != nil {
			s.logger.Errorf("Failed to escalate alert %s: %v", alert.ID.Hex(), err)
			continue
		}

		s.logger.Infow("Escalated emergency alert",
			"alert_id", alert.ID.Hex(),
			"user_id", alert.UserID.Hex(),
			"stage", alert.Stage,
		)

		if s.notifier != nil {
			s.notifier.NotifyNominees(ctx, alert)
		}
	}

	return nil
}
