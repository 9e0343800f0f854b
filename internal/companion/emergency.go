package companion

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/surya-tn99/lumi-your-voice-for-care/pkg/careclient"
)

// EmergencyAPI is the slice of the care client the monitor needs.
type EmergencyAPI interface {
	ActiveEmergency(ctx context.Context) (*careclient.EmergencyAlert, error)
	CreateEmergency(ctx context.Context, stage careclient.Stage) (*careclient.EmergencyAlert, error)
	ResolveEmergency(ctx context.Context, alertID string) error
}

// EmergencyStatus is the snapshot the UI renders from.
type EmergencyStatus struct {
	IsActive          bool
	Stage             careclient.Stage
	AlertID           string
	LastEmergencyTime string
	TriggeredBy       string
}

// EmergencyMonitor holds the client-side view of the emergency lifecycle.
//
// The only client-initiated transitions are none -> voice_alert (Trigger)
// and any-active -> none (Cancel). Later stages are server-driven and
// observed wholesale through Refresh, never inferred locally.
type EmergencyMonitor struct {
	mu       sync.Mutex
	api      EmergencyAPI
	notifier Notifier
	logger   *zap.SugaredLogger

	stage       careclient.Stage
	active      bool
	alertID     string
	lastEvent   string
	triggeredBy string
}

func NewEmergencyMonitor(api EmergencyAPI, notifier Notifier, logger *zap.SugaredLogger) *EmergencyMonitor {
	return &EmergencyMonitor{
		api:       api,
		notifier:  notifier,
		logger:    logger,
		stage:     careclient.StageNone,
		lastEvent: "No active alerts",
	}
}

func (m *EmergencyMonitor) Status() EmergencyStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return EmergencyStatus{
		IsActive:          m.active,
		Stage:             m.stage,
		AlertID:           m.alertID,
		LastEmergencyTime: m.lastEvent,
		TriggeredBy:       m.triggeredBy,
	}
}

// Trigger raises an alert. The local state flips to voice_alert before the
// network call resolves so the UI reflects intent immediately; a failed
// create leaves that optimistic state in place and only raises a failure
// notification.
func (m *EmergencyMonitor) Trigger(ctx context.Context) error {

	m.mu.Lock()
	if m.active {
		m.mu.Unlock()
		m.notifier.Failure("An emergency alert is already active")
		return nil
	}
	m.stage = careclient.StageVoiceAlert
	m.active = true
	m.triggeredBy = "manual"
	m.mu.Unlock()

	alert, err := m.api.CreateEmergency(ctx, careclient.StageVoiceAlert)
	if err != nil {
		m.notifier.Failure("Failed to trigger emergency")
		return err
	}

	m.mu.Lock()
	// A cancel may have landed while the create was in flight; in that
	// case the id is discarded so it can never be resolved later.
	if m.active {
		m.alertID = alert.ID
		if !alert.CreatedAt.IsZero() {
			m.lastEvent = alert.CreatedAt.Local().Format("3:04:05 PM")
		}
	}
	m.mu.Unlock()

	m.notifier.Success("Emergency alert triggered")
	return nil
}

// Cancel resolves the active alert. When no server id is known (trigger
// still in flight, or an active state reconstructed without an id) the
// reset is local-only and no network call is made.
func (m *EmergencyMonitor) Cancel(ctx context.Context) error {

	m.mu.Lock()
	if !m.active {
		m.mu.Unlock()
		return nil
	}

	alertID := m.alertID
	if alertID == "" {
		m.reset("Just now")
		m.mu.Unlock()
		return nil
	}
	m.mu.Unlock()

	if err := m.api.ResolveEmergency(ctx, alertID); err != nil {
		m.notifier.Failure("Failed to resolve emergency")
		return err
	}

	m.mu.Lock()
	m.reset("Resolved just now")
	m.mu.Unlock()

	m.notifier.Success("Emergency cancelled")
	return nil
}

// Refresh hydrates the local state from the server. Absence of an active
// alert resets the machine to idle regardless of prior local state.
// Transport failures are deliberately treated the same way: on every page
// load "no active emergency" is overwhelmingly the common case.
func (m *EmergencyMonitor) Refresh(ctx context.Context) {

	alert, err := m.api.ActiveEmergency(ctx)
	if err != nil {
		m.logger.Debugw("Active emergency check failed", "error", err)
		alert = nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if alert == nil || !alert.IsActive {
		if m.active {
			m.reset(m.lastEvent)
		}
		return
	}

	m.stage = alert.Stage
	m.active = true
	m.alertID = alert.ID
	m.triggeredBy = alert.TriggeredBy
	if !alert.CreatedAt.IsZero() {
		m.lastEvent = alert.CreatedAt.Local().Format("3:04:05 PM")
	}
}

// reset must be called with the mutex held.
func (m *EmergencyMonitor) reset(lastEvent string) {
	m.stage = careclient.StageNone
	m.active = false
	m.alertID = ""
	m.triggeredBy = ""
	m.lastEvent = lastEvent
}
