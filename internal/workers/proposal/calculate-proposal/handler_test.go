package calculateproposal

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"proposal-workers/internal/common/config"
	"proposal-workers/internal/common/errors"
	"proposal-workers/internal/common/logger"
	"proposal-workers/internal/common/validation"
	"proposal-workers/internal/models"
	"proposal-workers/internal/proposal/catalog"
	"proposal-workers/internal/workers/proposal/shared"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 17, 10, 30, 0, 0, time.UTC)

var starterServices = []string{
	"discovery", "uiux-design", "core-pages", "online-ordering", "payment-gateway",
	"google-business", "local-seo", "analytics-dashboard", "gdpr-compliance",
	"hosting-platform", "maintenance-support",
}

func createMockJob(key int64, variables map[string]interface{}) entities.Job {
	variablesJSON, _ := json.Marshal(variables)
	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:                key,
		Type:               TaskType,
		ProcessInstanceKey: key * 10,
		BpmnProcessId:      "restaurant-proposal",
		ElementId:          "Activity_CalculateProposal",
		CustomHeaders:      "{}",
		Worker:             "test-worker",
		Retries:            1,
		Variables:          string(variablesJSON),
	}}
}

func createTestHandler(t *testing.T) *Handler {
	t.Helper()
	deps := shared.DefaultDependencies()
	deps.Now = func() time.Time { return fixedNow }

	h, err := NewHandler(HandlerOptions{
		CustomConfig: DefaultConfig(),
		Dependencies: deps,
		Logger:       logger.NewTestLogger(t),
	})
	require.NoError(t, err)
	return h
}

func intPtr(v int) *int { return &v }

func TestHandler_NewHandler(t *testing.T) {
	deps := shared.DefaultDependencies()

	tests := []struct {
		name    string
		opts    HandlerOptions
		wantErr string
	}{
		{
			name: "valid configuration",
			opts: HandlerOptions{CustomConfig: DefaultConfig(), Dependencies: deps},
		},
		{
			name:    "invalid timeout",
			opts:    HandlerOptions{CustomConfig: &Config{MaxJobsActive: 1}, Dependencies: deps},
			wantErr: "timeout must be positive",
		},
		{
			name:    "invalid max jobs active",
			opts:    HandlerOptions{CustomConfig: &Config{Timeout: time.Second}, Dependencies: deps},
			wantErr: "max_jobs_active must be positive",
		},
		{
			name:    "missing catalog",
			opts:    HandlerOptions{CustomConfig: DefaultConfig()},
			wantErr: "catalog and formatter are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewHandler(tt.opts)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, h)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, TaskType, h.GetTaskType())
			assert.True(t, h.IsEnabled())
		})
	}
}

func TestHandler_Execute_Starter(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{
		ProposalID:            "prop-1",
		Approach:              "nocode",
		SelectedServices:      starterServices,
		ContingencyPercentage: intPtr(15),
	})
	require.NoError(t, err)

	assert.Equal(t, "prop-1", out.ProposalID)
	assert.Equal(t, "No-Code Platform", out.ApproachLabel)
	assert.Equal(t, 4000, out.Totals.OneOffTotal)
	assert.Equal(t, 700, out.Totals.RecurringTotal)
	assert.Equal(t, 25, out.Totals.EffortDays)
	assert.Equal(t, 6, out.Totals.EstimatedWeeks)
	assert.Equal(t, 600, out.Totals.ContingencyAmount)
	assert.Equal(t, 4600, out.Totals.GrandTotal)
	assert.Equal(t, "€\u00a04.600", out.Formatted.GrandTotal)
	assert.Len(t, out.Lines, len(starterServices))
	assert.Empty(t, out.UnknownServices)

	require.Len(t, out.Comparison, 3)
	assert.Equal(t, catalog.NoCode, out.Comparison[0].Approach)
	assert.Equal(t, out.Totals, out.Comparison[0].Totals)
	assert.Equal(t, 7200, out.Comparison[1].Totals.OneOffTotal)
	assert.Equal(t, 40, out.Comparison[1].Totals.EffortDays)
	assert.Equal(t, 9, out.Comparison[1].Totals.EstimatedWeeks)
	assert.Equal(t, 18700, out.Comparison[2].Totals.OneOffTotal)
	assert.Equal(t, 86, out.Comparison[2].Totals.EffortDays)
	assert.Equal(t, 20, out.Comparison[2].Totals.EstimatedWeeks)
}

func TestHandler_Execute_Rush(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{
		Approach:         "nocode",
		SelectedServices: starterServices,
		RushDelivery:     true,
	})
	require.NoError(t, err)

	assert.Equal(t, 19, out.Totals.EffortDays)
	assert.Equal(t, 5, out.Totals.EstimatedWeeks)
	assert.Equal(t, 4600, out.Totals.GrandTotal, "rush never changes cost")
}

func TestHandler_Execute_Errors(t *testing.T) {
	h := createTestHandler(t)

	tests := []struct {
		name  string
		input *Input
		code  errors.ErrorCode
	}{
		{"unknown approach", &Input{Approach: "wordpress"}, errors.ErrCodeInvalidApproach},
		{"contingency above range", &Input{Approach: "cms", ContingencyPercentage: intPtr(45)}, errors.ErrCodeInvalidProposalInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Execute(context.Background(), tt.input)
			assert.True(t, errors.HasCode(err, tt.code), "got %v", err)
		})
	}
}

func TestHandler_Execute_UnknownServices(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{
		Approach:         "cms",
		SelectedServices: []string{"discovery", "jukebox"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"jukebox"}, out.UnknownServices)
	assert.Len(t, out.Lines, 1)
}

func TestHandler_ProcessJob(t *testing.T) {
	h := createTestHandler(t)
	job := createMockJob(42, map[string]interface{}{
		"restaurantName":   "De Gouden Lepel",
		"approach":         "custom",
		"selectedServices": starterServices,
	})

	got, err := h.runner.Process(context.Background(), job, h.execute)
	require.NoError(t, err)
	out := got.(*Output)
	assert.Equal(t, 18700, out.Totals.OneOffTotal)

	raw, err := json.Marshal(out)
	require.NoError(t, err)
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &doc))

	res := validation.ValidateInput(doc, GetOutputSchema())
	assert.True(t, res.Valid, "%v", res.GetErrorMessages())
}

func TestHandler_ProcessJob_EmptySelection(t *testing.T) {
	h := createTestHandler(t)

	got, err := h.runner.Process(context.Background(), createMockJob(1, map[string]interface{}{
		"approach":         "nocode",
		"selectedServices": []string{},
	}), h.execute)
	require.NoError(t, err)

	out := got.(*Output)
	assert.Equal(t, 0, out.Totals.GrandTotal)
	assert.Equal(t, 1, out.Totals.EstimatedWeeks)
	assert.NotNil(t, out.Lines)
}

func TestCreateConfigFromAppConfig(t *testing.T) {
	appCfg := &config.Config{Workers: map[string]config.WorkerConfig{
		TaskType: {Enabled: false, MaxJobsActive: 3, Timeout: 2500},
	}}

	cfg := createConfigFromAppConfig(appCfg, nil)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, 3, cfg.MaxJobsActive)
	assert.Equal(t, 2500*time.Millisecond, cfg.Timeout)
	assert.True(t, cfg.CompareApproaches)

	custom := &Config{Timeout: time.Second, MaxJobsActive: 1}
	assert.Same(t, custom, createConfigFromAppConfig(appCfg, custom))

	assert.Equal(t, DefaultConfig(), createConfigFromAppConfig(nil, nil))
}

func TestOutput_WithoutComparison(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CompareApproaches = false
	h, err := NewHandler(HandlerOptions{CustomConfig: cfg, Dependencies: shared.DefaultDependencies(), Logger: logger.NewTestLogger(t)})
	require.NoError(t, err)

	out, err := h.Execute(context.Background(), &models.ProposalRequest{Approach: "cms"})
	require.NoError(t, err)
	assert.Nil(t, out.Comparison)
}
