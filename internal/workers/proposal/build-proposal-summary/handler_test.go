package buildproposalsummary

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"proposal-workers/internal/common/config"
	"proposal-workers/internal/common/errors"
	"proposal-workers/internal/common/logger"
	"proposal-workers/internal/common/validation"
	"proposal-workers/internal/export/summary"
	"proposal-workers/internal/workers/proposal/shared"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createMockJob(key int64, variables map[string]interface{}) entities.Job {
	variablesJSON, _ := json.Marshal(variables)
	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:                key,
		Type:               TaskType,
		ProcessInstanceKey: key * 10,
		BpmnProcessId:      "restaurant-proposal",
		ElementId:          "Activity_BuildSummary",
		CustomHeaders:      "{}",
		Retries:            1,
		Variables:          string(variablesJSON),
	}}
}

func createTestHandler(t *testing.T) *Handler {
	t.Helper()
	deps := shared.DefaultDependencies()
	deps.Now = func() time.Time { return time.Date(2024, 5, 17, 10, 30, 0, 0, time.UTC) }

	h, err := NewHandler(HandlerOptions{
		CustomConfig: DefaultConfig(),
		Dependencies: deps,
		Logger:       logger.NewTestLogger(t),
	})
	require.NoError(t, err)
	return h
}

func TestHandler_NewHandler(t *testing.T) {
	_, err := NewHandler(HandlerOptions{CustomConfig: &Config{Timeout: time.Second}, Dependencies: shared.DefaultDependencies()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_jobs_active must be positive")

	h, err := NewHandler(HandlerOptions{Dependencies: shared.DefaultDependencies()})
	require.NoError(t, err)
	assert.True(t, h.IsEnabled())
	assert.Equal(t, DefaultConfig(), h.GetConfig())
}

func TestHandler_Execute(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{
		ProposalID:       "prop-3",
		ClientName:       "Sanne",
		Approach:         "cms",
		SelectedServices: []string{"core-pages", "discovery"},
		RushDelivery:     true,
	})
	require.NoError(t, err)

	assert.Equal(t, "prop-3", out.ProposalID)
	assert.True(t, strings.HasPrefix(out.Summary, summary.Title+"\n\n"))
	assert.Contains(t, out.Summary, "Client: Sanne\n")
	assert.Contains(t, out.Summary, "Restaurant: N/A\n")
	assert.Contains(t, out.Summary, "Development Approach: CMS Platform\n")
	assert.Contains(t, out.Summary, "Accelerated Delivery: Yes\n")
	assert.True(t, strings.HasSuffix(out.Summary, "Generated on: 17-05-2024"))

	discovery := strings.Index(out.Summary, "Discovery")
	pages := strings.Index(out.Summary, "Core Pages")
	require.NotEqual(t, -1, discovery)
	require.NotEqual(t, -1, pages)
	assert.Less(t, discovery, pages, "services are listed in catalog order")
}

func TestHandler_Execute_EmptySelection(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)
	assert.Contains(t, out.Summary, "SELECTED SERVICES:\n\nCOST BREAKDOWN:")
	assert.Contains(t, out.Summary, "Standard Delivery\n")
}

func TestHandler_ProcessJob(t *testing.T) {
	h := createTestHandler(t)

	got, err := h.runner.Process(context.Background(), createMockJob(2, map[string]interface{}{
		"restaurantName":   "De Gouden Lepel",
		"selectedServices": []string{"discovery"},
	}), h.execute)
	require.NoError(t, err)

	raw, err := json.Marshal(got)
	require.NoError(t, err)
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &doc))
	res := validation.ValidateInput(doc, GetOutputSchema())
	assert.True(t, res.Valid, "%v", res.GetErrorMessages())

	_, err = h.runner.Process(context.Background(), createMockJob(3, map[string]interface{}{
		"selectedServices":      []string{},
		"contingencyPercentage": 80,
	}), h.execute)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidProposalInput))
}

func TestCreateConfigFromAppConfig(t *testing.T) {
	cfg := createConfigFromAppConfig(&config.Config{Workers: map[string]config.WorkerConfig{
		"calculate-proposal": {Enabled: false},
	}}, nil)
	assert.Equal(t, DefaultConfig(), cfg, "other task types do not apply")
}
