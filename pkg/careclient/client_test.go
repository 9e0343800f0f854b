package careclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, StaticToken("test-token"), zap.NewNop().Sugar())
}

func TestBearerTokenAttached(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/medications", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]Medication{{ID: "1", Name: "Metformin"}})
	})

	meds, err := client.Medications(context.Background())
	require.NoError(t, err)
	require.Len(t, meds, 1)
	assert.Equal(t, "Metformin", meds[0].Name)
}

func TestLogin(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "9876543210", body["phone"])
		assert.Equal(t, "1234", body["otp"])

		_ = json.NewEncoder(w).Encode(TokenResponse{AccessToken: "fresh-token", TokenType: "bearer", IsRegistered: true})
	})

	resp, err := client.Login(context.Background(), "9876543210", "1234")
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", resp.AccessToken)
	assert.True(t, resp.IsRegistered)
}

func TestLoginRejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(APIError{Kind: "unauthorized", Detail: "invalid OTP"})
	})

	_, err := client.Login(context.Background(), "9876543210", "0000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid OTP")
}

func TestActiveEmergencyAbsenceIsNotAnError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emergency/active", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(APIError{Kind: "not_found", Detail: "no active emergency"})
	})

	alert, err := client.ActiveEmergency(context.Background())
	require.NoError(t, err)
	assert.Nil(t, alert)
}

func TestActiveEmergencyFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(EmergencyAlert{
			ID:        "alert-3",
			Stage:     StageWaitingResponse,
			IsActive:  true,
			CreatedAt: time.Now(),
		})
	})

	alert, err := client.ActiveEmergency(context.Background())
	require.NoError(t, err)
	require.NotNil(t, alert)
	assert.Equal(t, StageWaitingResponse, alert.Stage)
	assert.True(t, alert.IsActive)
}

func TestCreateAndResolveEmergency(t *testing.T) {
	var resolvedPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/emergency":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "voice_alert", body["stage"])
			_ = json.NewEncoder(w).Encode(EmergencyAlert{ID: "alert-5", Stage: StageVoiceAlert, IsActive: true})
		case r.Method == http.MethodPost:
			resolvedPath = r.URL.Path
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("{}"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	alert, err := client.CreateEmergency(context.Background(), StageVoiceAlert)
	require.NoError(t, err)
	assert.Equal(t, "alert-5", alert.ID)

	require.NoError(t, client.ResolveEmergency(context.Background(), alert.ID))
	assert.Equal(t, "/emergency/alert-5/resolve", resolvedPath)
}

func TestMedicationLogsQueryParams(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/medications/logs", r.URL.Path)
		assert.Equal(t, "2026-08-31", r.URL.Query().Get("start_date"))
		assert.Equal(t, "2026-08-31", r.URL.Query().Get("end_date"))
		_ = json.NewEncoder(w).Encode([]MedicationLog{})
	})

	logs, err := client.MedicationLogs(context.Background(), "2026-08-31", "2026-08-31")
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestRecordCompliance(t *testing.T) {
	now := time.Now()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/medications/med-1/log", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "2026-08-31", body["date"])
		assert.Equal(t, "taken", body["status"])
		assert.NotEmpty(t, body["taken_at"])

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("{}"))
	})

	require.NoError(t, client.RecordCompliance(context.Background(), "med-1", "2026-08-31", "taken", &now))
}

func TestNoTokenMeansNoAuthorizationHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(CheckUserResponse{Exists: true})
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, StaticToken(""), zap.NewNop().Sugar())
	exists, err := client.CheckUser(context.Background(), "9876543210")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestFileTokenStoreRoundTrip(t *testing.T) {
	path := t.TempDir() + "/token.json"
	store, err := NewFileTokenStore(path)
	require.NoError(t, err)

	token, err := store.Token()
	require.NoError(t, err)
	assert.Empty(t, token, "missing file is not an error")

	require.NoError(t, store.Save("abc123"))
	token, err = store.Token()
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	require.NoError(t, store.Clear())
	token, err = store.Token()
	require.NoError(t, err)
	assert.Empty(t, token)
}
