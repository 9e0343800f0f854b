package companion

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/surya-tn99/lumi-your-voice-for-care/pkg/careclient"
)

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	failures  []string
}

func (n *recordingNotifier) Success(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, message)
}

func (n *recordingNotifier) Failure(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failures = append(n.failures, message)
}

func (n *recordingNotifier) failureCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.failures)
}

type fakeEmergencyAPI struct {
	mu           sync.Mutex
	active       *careclient.EmergencyAlert
	activeErr    error
	createFn     func(stage careclient.Stage) (*careclient.EmergencyAlert, error)
	resolveCalls []string
	resolveErr   error
}

func (f *fakeEmergencyAPI) ActiveEmergency(ctx context.Context) (*careclient.EmergencyAlert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active, f.activeErr
}

func (f *fakeEmergencyAPI) CreateEmergency(ctx context.Context, stage careclient.Stage) (*careclient.EmergencyAlert, error) {
	if f.createFn != nil {
		return f.createFn(stage)
	}
	return &careclient.EmergencyAlert{ID: "alert-1", Stage: stage, IsActive: true, CreatedAt: time.Now()}, nil
}

func (f *fakeEmergencyAPI) ResolveEmergency(ctx context.Context, alertID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.resolveErr != nil {
		return f.resolveErr
	}
	f.resolveCalls = append(f.resolveCalls, alertID)
	return nil
}

func (f *fakeEmergencyAPI) resolved() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.resolveCalls))
	copy(out, f.resolveCalls)
	return out
}

func newTestMonitor(api EmergencyAPI) (*EmergencyMonitor, *recordingNotifier) {
	notifier := &recordingNotifier{}
	return NewEmergencyMonitor(api, notifier, zap.NewNop().Sugar()), notifier
}

func TestTriggerSetsOptimisticStateBeforeResponse(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	api := &fakeEmergencyAPI{
		createFn: func(stage careclient.Stage) (*careclient.EmergencyAlert, error) {
			close(started)
			<-release
			return &careclient.EmergencyAlert{ID: "alert-1", Stage: stage, IsActive: true, CreatedAt: time.Now()}, nil
		},
	}
	monitor, _ := newTestMonitor(api)

	done := make(chan error, 1)
	go func() { done <- monitor.Trigger(context.Background()) }()

	<-started
	status := monitor.Status()
	assert.True(t, status.IsActive)
	assert.Equal(t, careclient.StageVoiceAlert, status.Stage)
	assert.Empty(t, status.AlertID, "id must not be known before the create resolves")

	close(release)
	require.NoError(t, <-done)

	status = monitor.Status()
	assert.Equal(t, "alert-1", status.AlertID)
	assert.True(t, status.IsActive)
}

func TestTriggerFailureKeepsOptimisticState(t *testing.T) {
	api := &fakeEmergencyAPI{
		createFn: func(stage careclient.Stage) (*careclient.EmergencyAlert, error) {
			return nil, errors.New("network down")
		},
	}
	monitor, notifier := newTestMonitor(api)

	err := monitor.Trigger(context.Background())
	require.Error(t, err)

	// The optimistic state stays; only a failure notification is raised.
	status := monitor.Status()
	assert.True(t, status.IsActive)
	assert.Equal(t, careclient.StageVoiceAlert, status.Stage)
	assert.Equal(t, 1, notifier.failureCount())
}

func TestCancelAfterTriggerResolvesExactID(t *testing.T) {
	api := &fakeEmergencyAPI{}
	monitor, _ := newTestMonitor(api)

	ctx := context.Background()
	require.NoError(t, monitor.Trigger(ctx))
	require.NoError(t, monitor.Cancel(ctx))

	assert.Equal(t, []string{"alert-1"}, api.resolved())

	status := monitor.Status()
	assert.False(t, status.IsActive)
	assert.Equal(t, careclient.StageNone, status.Stage)
	assert.Empty(t, status.AlertID)
}

func TestCancelWhileTriggerInFlightIsLocalOnly(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	api := &fakeEmergencyAPI{
		createFn: func(stage careclient.Stage) (*careclient.EmergencyAlert, error) {
			close(started)
			<-release
			return &careclient.EmergencyAlert{ID: "alert-9", Stage: stage, IsActive: true, CreatedAt: time.Now()}, nil
		},
	}
	monitor, _ := newTestMonitor(api)

	ctx := context.Background()
	done := make(chan error, 1)
	go func() { done <- monitor.Trigger(ctx) }()

	<-started
	require.NoError(t, monitor.Cancel(ctx))

	close(release)
	require.NoError(t, <-done)

	// No resolve call was made; the late create response did not
	// resurrect the alert id.
	assert.Empty(t, api.resolved())
	status := monitor.Status()
	assert.False(t, status.IsActive)
	assert.Equal(t, careclient.StageNone, status.Stage)
	assert.Empty(t, status.AlertID)
}

func TestCancelFailureKeepsActiveState(t *testing.T) {
	api := &fakeEmergencyAPI{resolveErr: errors.New("network down")}
	monitor, notifier := newTestMonitor(api)

	ctx := context.Background()
	require.NoError(t, monitor.Trigger(ctx))
	require.Error(t, monitor.Cancel(ctx))

	status := monitor.Status()
	assert.True(t, status.IsActive)
	assert.Equal(t, 1, notifier.failureCount())
}

func TestRefreshAbsenceResetsRegardlessOfPriorState(t *testing.T) {
	api := &fakeEmergencyAPI{}
	monitor, _ := newTestMonitor(api)

	ctx := context.Background()
	require.NoError(t, monitor.Trigger(ctx))
	require.True(t, monitor.Status().IsActive)

	// Backend reports no active alert.
	monitor.Refresh(ctx)

	status := monitor.Status()
	assert.False(t, status.IsActive)
	assert.Equal(t, careclient.StageNone, status.Stage)
	assert.Empty(t, status.AlertID)
}

func TestRefreshTransportErrorIsSwallowed(t *testing.T) {
	api := &fakeEmergencyAPI{activeErr: errors.New("connection refused")}
	monitor, notifier := newTestMonitor(api)

	monitor.Refresh(context.Background())

	status := monitor.Status()
	assert.False(t, status.IsActive)
	assert.Equal(t, careclient.StageNone, status.Stage)
	assert.Zero(t, notifier.failureCount(), "refresh failures must not surface to the user")
}

func TestRefreshHydratesServerDrivenStage(t *testing.T) {
	created := time.Date(2026, 8, 31, 9, 30, 0, 0, time.Local)
	api := &fakeEmergencyAPI{
		active: &careclient.EmergencyAlert{
			ID:          "alert-7",
			Stage:       careclient.StageNotifyingRelatives,
			IsActive:    true,
			TriggeredBy: "no_response",
			CreatedAt:   created,
		},
	}
	monitor, _ := newTestMonitor(api)

	monitor.Refresh(context.Background())

	status := monitor.Status()
	assert.True(t, status.IsActive)
	assert.Equal(t, careclient.StageNotifyingRelatives, status.Stage)
	assert.Equal(t, "alert-7", status.AlertID)
	assert.Equal(t, "no_response", status.TriggeredBy)
	assert.NotEmpty(t, status.LastEmergencyTime)
}

func TestTriggerWhileActiveIsRejectedLocally(t *testing.T) {
	calls := 0
	api := &fakeEmergencyAPI{
		createFn: func(stage careclient.Stage) (*careclient.EmergencyAlert, error) {
			calls++
			return &careclient.EmergencyAlert{ID: "alert-1", Stage: stage, IsActive: true, CreatedAt: time.Now()}, nil
		},
	}
	monitor, notifier := newTestMonitor(api)

	ctx := context.Background()
	require.NoError(t, monitor.Trigger(ctx))
	require.NoError(t, monitor.Trigger(ctx))

	assert.Equal(t, 1, calls, "second trigger must not hit the network")
	assert.Equal(t, 1, notifier.failureCount())
}
