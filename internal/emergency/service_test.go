package emergency

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeAlertRepository struct {
	alerts  map[primitive.ObjectID]*Alert
	updates int
}

func newFakeAlertRepository() *fakeAlertRepository {
	return &fakeAlertRepository{alerts: make(map[primitive.ObjectID]*Alert)}
}

func (r *fakeAlertRepository) Create(_ context.Context, alert *Alert) error {
	copied := *alert
	r.alerts[alert.ID] = &copied
	return nil
}

func (r *fakeAlertRepository) Update(_ context.Context, alert *Alert) error {
	copied := *alert
	r.alerts[alert.ID] = &copied
	r.updates++
	return nil
}

func (r *fakeAlertRepository) FindActiveByUser(_ context.Context, userID primitive.ObjectID) (*Alert, error) {
	var latest *Alert
	for _, alert := range r.alerts {
		if alert.UserID != userID || !alert.IsActive {
			continue
		}
		if latest == nil || alert.CreatedAt.After(latest.CreatedAt) {
			latest = alert
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

func (r *fakeAlertRepository) FindByIDAndUser(_ context.Context, id, userID primitive.ObjectID) (*Alert, error) {
	alert, ok := r.alerts[id]
	if !ok || alert.UserID != userID {
		return nil, nil
	}
	copied := *alert
	return &copied, nil
}

func (r *fakeAlertRepository) FindActiveUpdatedBefore(_ context.Context, cutoff time.Time) ([]*Alert, error) {
	var out []*Alert
	for _, alert := range r.alerts {
		if alert.IsActive && alert.UpdatedAt.Before(cutoff) {
			copied := *alert
			out = append(out, &copied)
		}
	}
	return out, nil
}

type recordingNotifier struct {
	stages []Stage
}

func (n *recordingNotifier) NotifyNominees(_ context.Context, alert *Alert) {
	n.stages = append(n.stages, alert.Stage)
}

func newTestService(repo AlertRepository, notifier Notifier, window time.Duration) *alertService {
	return NewAlertService(repo, notifier, window, zap.NewNop().Sugar()).(*alertService)
}

func TestTriggerCreatesAlertAndNotifies(t *testing.T) {
	repo := newFakeAlertRepository()
	notifier := &recordingNotifier{}
	svc := newTestService(repo, notifier, 5*time.Minute)
	userID := primitive.NewObjectID()

	alert, err := svc.Trigger(context.Background(), userID, &TriggerRequest{Stage: StageVoiceAlert, TriggeredBy: "voice"})
	require.NoError(t, err)
	assert.True(t, alert.IsActive)
	assert.Equal(t, StageVoiceAlert, alert.Stage)
	assert.Equal(t, "voice", alert.TriggeredBy)
	assert.Equal(t, []Stage{StageVoiceAlert}, notifier.stages)
}

func TestTriggerReusesActiveAlert(t *testing.T) {
	repo := newFakeAlertRepository()
	svc := newTestService(repo, &recordingNotifier{}, 5*time.Minute)
	userID := primitive.NewObjectID()

	first, err := svc.Trigger(context.Background(), userID, &TriggerRequest{Stage: StageVoiceAlert})
	require.NoError(t, err)

	second, err := svc.Trigger(context.Background(), userID, &TriggerRequest{Stage: StageWaitingResponse})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "a user never holds two active alerts")
	assert.Equal(t, StageWaitingResponse, second.Stage)
	assert.Len(t, repo.alerts, 1)
}

func TestTriggerRejectsUnknownStage(t *testing.T) {
	svc := newTestService(newFakeAlertRepository(), nil, 5*time.Minute)

	_, err := svc.Trigger(context.Background(), primitive.NewObjectID(), &TriggerRequest{Stage: "panic"})
	require.Error(t, err)
}

func TestResolveDeactivatesAlert(t *testing.T) {
	repo := newFakeAlertRepository()
	svc := newTestService(repo, nil, 5*time.Minute)
	userID := primitive.NewObjectID()

	alert, err := svc.Trigger(context.Background(), userID, &TriggerRequest{Stage: StageVoiceAlert})
	require.NoError(t, err)

	resolved, err := svc.Resolve(context.Background(), userID, alert.ID)
	require.NoError(t, err)
	assert.False(t, resolved.IsActive)
	require.NotNil(t, resolved.ResolvedAt)

	active, err := svc.Active(context.Background(), userID)
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestResolveUnknownAlert(t *testing.T) {
	svc := newTestService(newFakeAlertRepository(), nil, 5*time.Minute)

	_, err := svc.Resolve(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrAlertNotFound)
}

func TestResolveSomeoneElsesAlert(t *testing.T) {
	repo := newFakeAlertRepository()
	svc := newTestService(repo, nil, 5*time.Minute)

	alert, err := svc.Trigger(context.Background(), primitive.NewObjectID(), &TriggerRequest{Stage: StageVoiceAlert})
	require.NoError(t, err)

	_, err = svc.Resolve(context.Background(), primitive.NewObjectID(), alert.ID)
	assert.ErrorIs(t, err, ErrAlertNotFound)
}

func TestEscalateOverdueAdvancesStaleAlerts(t *testing.T) {
	repo := newFakeAlertRepository()
	notifier := &recordingNotifier{}
	svc := newTestService(repo, notifier, 5*time.Minute)

	base := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	userID := primitive.NewObjectID()
	_, err := svc.Trigger(context.Background(), userID, &TriggerRequest{Stage: StageVoiceAlert})
	require.NoError(t, err)
	notifier.stages = nil

	// Not yet overdue: nothing moves.
	svc.now = func() time.Time { return base.Add(2 * time.Minute) }
	require.NoError(t, svc.EscalateOverdue(context.Background()))
	active, err := svc.Active(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, StageVoiceAlert, active.Stage)
	assert.Empty(t, notifier.stages)

	// Past the window: advance one stage and notify.
	svc.now = func() time.Time { return base.Add(6 * time.Minute) }
	require.NoError(t, svc.EscalateOverdue(context.Background()))
	active, err = svc.Active(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, StageWaitingResponse, active.Stage)
	assert.Equal(t, []Stage{StageWaitingResponse}, notifier.stages)
}

func TestEscalateStopsAtFinalStage(t *testing.T) {
	repo := newFakeAlertRepository()
	notifier := &recordingNotifier{}
	svc := newTestService(repo, notifier, 5*time.Minute)

	base := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	userID := primitive.NewObjectID()
	alert := &Alert{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Stage:     StageCallingAmbulance,
		IsActive:  true,
		CreatedAt: base,
		UpdatedAt: base,
	}
	require.NoError(t, repo.Create(context.Background(), alert))

	svc.now = func() time.Time { return base.Add(time.Hour) }
	require.NoError(t, svc.EscalateOverdue(context.Background()))

	active, err := svc.Active(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, StageCallingAmbulance, active.Stage, "final stage holds until resolved")
	assert.True(t, active.IsActive)
	assert.Empty(t, notifier.stages)
}

func TestNextStageOrdering(t *testing.T) {
	next, ok := NextStage(StageVoiceAlert)
	require.True(t, ok)
	assert.Equal(t, StageWaitingResponse, next)

	next, ok = NextStage(StageWaitingResponse)
	require.True(t, ok)
	assert.Equal(t, StageNotifyingRelatives, next)

	next, ok = NextStage(StageNotifyingRelatives)
	require.True(t, ok)
	assert.Equal(t, StageCallingAmbulance, next)

	_, ok = NextStage(StageCallingAmbulance)
	assert.False(t, ok)

	_, ok = NextStage(StageNone)
	assert.False(t, ok)
}
