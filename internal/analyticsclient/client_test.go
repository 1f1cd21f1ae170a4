package analyticsclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/healthsync/healthsync/internal/dashboard"
	"github.com/healthsync/healthsync/internal/domain"
)

var _ dashboard.Source = (*Client)(nil)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(Config{BaseURL: srv.URL + "/"}, zap.NewNop())
	require.NoError(t, err)
	return c, srv
}

func TestNew_InvalidBaseURL(t *testing.T) {
	for _, base := range []string{"", "not a url", "/relative"} {
		_, err := New(Config{BaseURL: base}, zap.NewNop())
		assert.ErrorIs(t, err, domain.ErrInvalidInput, base)
	}
}

func TestWeightTrend_Success(t *testing.T) {
	userID := uuid.New()
	var gotPath, gotDays string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotDays = r.URL.Path, r.URL.Query().Get("days")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success",
			"first_measurement":{"date":"2024-01-01T08:00:00Z","weight_kg":80},
			"latest_measurement":{"date":"2024-01-15T08:00:00Z","weight_kg":78.5},
			"total_change_kg":-1.5,"percent_change":-1.9,"weekly_change_rate_kg":-0.75,
			"trend":"losing","insights":["You've lost 1.5 kg over this period."]}`))
	})

	a, err := c.WeightTrend(context.Background(), userID, 7)
	require.NoError(t, err)
	require.True(t, a.OK())
	assert.Equal(t, "/v1/users/"+userID.String()+"/trends/weight", gotPath)
	assert.Equal(t, "7", gotDays)
	assert.Equal(t, 78.5, a.Data.LatestMeasurement.WeightKG)
	assert.Equal(t, "losing", a.Data.Trend)
}

func TestBloodPressureTrend_InsufficientData(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"insufficient_data","message":"No blood pressure measurements found"}`))
	})

	a, err := c.BloodPressureTrend(context.Background(), uuid.New(), 30)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInsufficientData, a.Status)
	assert.Equal(t, "No blood pressure measurements found", a.Message)
	assert.Nil(t, a.Data)
}

func TestGoalProgress_Query(t *testing.T) {
	var gotPath, gotTarget string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotTarget = r.URL.Path, r.URL.Query().Get("target")
		w.Write([]byte(`{"status":"success","goal_type":"blood_sugar","target_value":95.5,
			"initial_value":120,"current_value":110,"progress_percentage":40.8,"insights":[]}`))
	})

	a, err := c.GoalProgress(context.Background(), uuid.New(), domain.GoalBloodSugar, 95.5)
	require.NoError(t, err)
	require.True(t, a.OK())
	assert.Contains(t, gotPath, "/goals/blood_sugar")
	assert.Equal(t, "95.5", gotTarget)
	assert.Equal(t, 40.8, a.Data.ProgressPercentage)
}

func TestHealthReport_NestedSections(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","user_id":"u1","report_date":"2024-03-15T12:00:00Z",
			"user_info":{"name":"Ada","gender":"female"},
			"summary":{"data_points_collected":3,"days_tracked":90,"metrics_tracked":["weight"]},
			"weight_analysis":null,
			"nutrition_summary":{"status":"insufficient_data","message":"No meal data available"},
			"recommendations":["Stay hydrated."]}`))
	})

	a, err := c.HealthReport(context.Background(), uuid.New())
	require.NoError(t, err)
	require.True(t, a.OK())
	assert.Nil(t, a.Data.WeightAnalysis)
	require.NotNil(t, a.Data.NutritionSummary)
	assert.False(t, a.Data.NutritionSummary.OK())
	assert.Equal(t, "No meal data available", a.Data.NutritionSummary.Message)
}

func TestCorrelations_BareAndTagged(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		wantOK bool
		rows   int
	}{
		{
			name:   "bare object",
			body:   `{"correlations":[{"food":"milk","symptom":"bloating","confidence":"high","correlation_percentage":80,"occurrences":5}]}`,
			wantOK: true,
			rows:   1,
		},
		{
			name:   "tagged success",
			body:   `{"status":"success","correlations":[],"recommendations":[]}`,
			wantOK: true,
		},
		{
			name: "tagged failure",
			body: `{"status":"insufficient_data","message":"Not enough symptom or meal data for correlation analysis"}`,
		},
		{
			name: "bare object with out of range percentage",
			body: `{"correlations":[{"food":"milk","symptom":"nausea","confidence":"low","correlation_percentage":200,"occurrences":2}]}`,
		},
		{
			name: "bare object missing food",
			body: `{"correlations":[{"symptom":"nausea","confidence":"low","correlation_percentage":50,"occurrences":2}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})
			a, err := c.Correlations(context.Background(), uuid.New())
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, a.OK())
			if tt.wantOK {
				assert.Len(t, a.Data.Correlations, tt.rows)
			}
		})
	}
}

func TestPredictions_DaysAhead(t *testing.T) {
	var got string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query().Get("days_ahead")
		w.Write([]byte(`{"predictions":[{"date":"2024-03-16","predicted_classification":"none","confidence":0.5,"possible_symptoms":[]}]}`))
	})

	a, err := c.Predictions(context.Background(), uuid.New(), 3)
	require.NoError(t, err)
	require.True(t, a.OK())
	assert.Equal(t, "3", got)
	assert.Len(t, a.Data.Predictions, 1)
}

func TestSymptomAnalysis_NoSymptoms(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"no_symptoms","message":"No symptoms reported"}`))
	})

	a, err := c.SymptomAnalysis(context.Background(), uuid.New(), 30)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNoSymptoms, a.Status)
}

func TestErrors_WrapUnavailable(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		})
		_, err := c.WeightTrend(context.Background(), uuid.New(), 30)
		assert.True(t, errors.Is(err, ErrUnavailable))
	})

	t.Run("malformed body", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{not json`))
		})
		_, err := c.HealthReport(context.Background(), uuid.New())
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("connection refused", func(t *testing.T) {
		c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
		srv.Close()
		_, err := c.Correlations(context.Background(), uuid.New())
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}

func TestClient_DrivesDashboard(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	})
	ctrl := dashboard.NewController(uuid.New(), c, zap.NewNop())
	ctrl.Start(context.Background())

	st := ctrl.State()
	assert.Contains(t, string(st.Surfaces[0].Output.HTML), dashboard.MsgUnavailable)
}
