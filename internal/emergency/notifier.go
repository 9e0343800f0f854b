package emergency

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"go.uber.org/zap"

	"github.com/surya-tn99/lumi-your-voice-for-care/internal/nominee"
)

// fcmNotifier pushes alert events to nominees over Firebase Cloud
// Messaging. Nominees without a device token are skipped.
type fcmNotifier struct {
	fireBase *firebase.App
	nominees nominee.NomineeRepository
	logger   *zap.SugaredLogger
}

func NewFCMNotifier(app *firebase.App, nominees nominee.NomineeRepository, logger *zap.SugaredLogger) Notifier {
	return &fcmNotifier{
		fireBase: app,
		nominees: nominees,
		logger:   logger,
	}
}

func (n *fcmNotifier) NotifyNominees(ctx context.Context, alert *Alert) {

	nominees, err := n.nominees.FindAllByUser(ctx, alert.UserID)
	if err != nil {
		n.logger.Errorf("Failed to load nominees for user %s: %v", alert.UserID.Hex(), err)
		return
	}

	if len(nominees) == 0 {
		n.logger.Debugw("No nominees to notify", "user_id", alert.UserID.Hex())
		return
	}

	client, err := n.fireBase.Messaging(ctx)
	if err != nil {
		n.logger.Errorf("Firebase messaging client error: %v", err)
		return
	}

	title, body := alertMessage(alert)

	successCount := 0
	for _, contact := range nominees {
		if contact.DeviceToken == "" {
			continue
		}

		msg := newAlertMessage(contact.DeviceToken, title, body)
		if _, err := client.Send(ctx, msg); err != nil {
			n.logger.Errorf("Failed to notify nominee %s: %v", contact.ID.Hex(), err)
			continue
		}
		successCount++
	}

	n.logger.Infow("Nominee notifications sent",
		"alert_id", alert.ID.Hex(),
		"stage", alert.Stage,
		"sent", successCount,
		"nominees", len(nominees),
	)
}

func alertMessage(alert *Alert) (title, body string) {
	switch alert.Stage {
	case StageCallingAmbulance:
		return "Emergency: ambulance being called", "No response was received. Emergency services are being contacted."
	case StageNotifyingRelatives:
		return "Emergency: family being notified", "Your family member has not responded to an emergency alert."
	case StageWaitingResponse:
		return "Emergency alert waiting for response", "An emergency alert is active and waiting for a response."
	default:
		return "Emergency alert raised", fmt.Sprintf("An emergency alert was raised (%s).", alert.Stage)
	}
}
