package shared

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"proposal-workers/internal/common/config"
	"proposal-workers/internal/common/errors"
	"proposal-workers/internal/common/logger"
	"proposal-workers/internal/common/validation"
	"proposal-workers/internal/export"
	"proposal-workers/internal/export/storage"
	"proposal-workers/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

var fixedNow = time.Date(2024, 5, 17, 10, 30, 0, 0, time.UTC)

func createMockJob(key int64, variables map[string]interface{}) entities.Job {
	variablesJSON, _ := json.Marshal(variables)
	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:                key,
		Type:               "calculate-proposal",
		ProcessInstanceKey: key * 10,
		Retries:            1,
		Variables:          string(variablesJSON),
	}}
}

func testDeps() Dependencies {
	d := DefaultDependencies()
	d.Now = func() time.Time { return fixedNow }
	return d
}

func starterVariables() map[string]interface{} {
	return map[string]interface{}{
		"clientName":     "Sanne",
		"restaurantName": "De Gouden Lepel",
		"approach":       "nocode",
		"selectedServices": []string{
			"discovery", "uiux-design", "core-pages", "online-ordering", "payment-gateway",
			"google-business", "local-seo", "analytics-dashboard", "gdpr-compliance",
			"hosting-platform", "maintenance-support",
		},
		"contingencyPercentage": 15,
	}
}

func TestParseRequest(t *testing.T) {
	schema := validation.MustCompile(RequestSchema())

	tests := []struct {
		name     string
		vars     string
		wantCode errors.ErrorCode
	}{
		{"valid", `{"approach":"cms","selectedServices":["discovery"],"rushDelivery":true}`, ""},
		{"extra process variables allowed", `{"selectedServices":[],"processStep":"review"}`, ""},
		{"not json", `{"approach":`, errors.ErrCodeParseError},
		{"missing services", `{"approach":"cms"}`, errors.ErrCodeInvalidProposalInput},
		{"fractional contingency", `{"selectedServices":[],"contingencyPercentage":12.5}`, errors.ErrCodeInvalidProposalInput},
		{"negative contingency", `{"selectedServices":[],"contingencyPercentage":-1}`, errors.ErrCodeInvalidProposalInput},
		{"rush not bool", `{"selectedServices":[],"rushDelivery":"yes"}`, errors.ErrCodeInvalidProposalInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ParseRequest(tt.vars, schema)
			if tt.wantCode == "" {
				require.NoError(t, err)
				require.NotNil(t, req)
				return
			}
			assert.True(t, errors.HasCode(err, tt.wantCode), "got %v", err)
		})
	}
}

func TestParseRequest_Fields(t *testing.T) {
	req, err := ParseRequest(`{"clientEmail":"a@b.nl","approach":"custom","selectedServices":["x"],"contingencyPercentage":20}`,
		validation.MustCompile(RequestSchema()))
	require.NoError(t, err)

	assert.Equal(t, "a@b.nl", req.ClientEmail)
	assert.Equal(t, "custom", req.Approach)
	assert.Equal(t, []string{"x"}, req.SelectedServices)
	require.NotNil(t, req.ContingencyPercentage)
	assert.Equal(t, 20, *req.ContingencyPercentage)
}

func TestDependencies_Snapshot(t *testing.T) {
	log, logs := logger.NewObservedLogger(zapcore.DebugLevel)
	d := testDeps()

	pct := 15
	req := &models.ProposalRequest{
		Approach:              "",
		SelectedServices:      []string{"discovery", "no-such-item"},
		ContingencyPercentage: &pct,
	}
	s, unknown, err := d.Snapshot(req, log)
	require.NoError(t, err)

	assert.Equal(t, "nocode", string(s.Approach), "empty approach takes the configured default")
	assert.Equal(t, []string{"no-such-item"}, unknown)
	assert.Equal(t, fixedNow, s.GeneratedAt)
	assert.Equal(t, 1, logs.FilterMessage("ignoring unknown service ids").Len())
	assert.Equal(t, "", req.Approach, "request is not mutated")
}

func TestDependencies_SnapshotContingencyRange(t *testing.T) {
	d := testDeps()
	log := logger.NewTestLogger(t)

	for _, pct := range []int{-5, 31, 100} {
		p := pct
		_, _, err := d.Snapshot(&models.ProposalRequest{ContingencyPercentage: &p}, log)
		assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidProposalInput), "pct %d", pct)
	}

	s, _, err := d.Snapshot(&models.ProposalRequest{}, log)
	require.NoError(t, err)
	assert.Equal(t, 15, s.ContingencyPercentage)

	_, _, err = d.Snapshot(&models.ProposalRequest{Approach: "wordpress"}, log)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidApproach))
}

func TestNewDependencies(t *testing.T) {
	d, err := NewDependencies(config.ProposalConfig{
		Locale:          "nl-NL",
		Currency:        "EUR",
		DateLayout:      "2006-01-02",
		DefaultApproach: "cms",
		Contingency:     config.ContingencyConfig{Default: 10, Min: 0, Max: 20, Step: 5},
	})
	require.NoError(t, err)
	assert.Equal(t, "cms", string(d.DefaultApproach))
	assert.Equal(t, "2024-05-17", d.Formatter.Date(fixedNow))

	_, err = NewDependencies(config.ProposalConfig{Locale: "nl-NL", Currency: "EUR", DefaultApproach: "cms", CatalogPath: filepath.Join(t.TempDir(), "missing.json")})
	assert.Error(t, err)

	_, err = NewDependencies(config.ProposalConfig{Locale: "nl-NL", Currency: "EUR", DefaultApproach: "php"})
	assert.Error(t, err)
}

func TestRunner_Process(t *testing.T) {
	r := NewRunner("calculate-proposal", time.Second, nil, nil, logger.NewTestLogger(t))
	job := createMockJob(7, starterVariables())

	var gotKey int64
	out, err := r.Process(context.Background(), job, func(_ context.Context, job entities.Job, req *models.ProposalRequest) (interface{}, error) {
		gotKey = job.GetKey()
		return req.RestaurantName, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "De Gouden Lepel", out)
	assert.Equal(t, int64(7), gotKey)

	_, err = r.Process(context.Background(), createMockJob(8, map[string]interface{}{}), func(context.Context, entities.Job, *models.ProposalRequest) (interface{}, error) {
		t.Fatal("exec must not run for invalid input")
		return nil, nil
	})
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidProposalInput))
}

type failingSink struct{ err error }

func (f failingSink) Put(context.Context, string, string, []byte) (string, error) {
	return "", f.err
}

func newTestPublisher(t *testing.T) (*Publisher, *storage.LocalSink) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	sink, err := storage.NewLocalSink(t.TempDir())
	require.NoError(t, err)
	return NewPublisher(sink, storage.NewRedisLedger(rdb, "proposal:export", time.Hour), logger.NewTestLogger(t)), sink
}

func TestPublisher_PublishOncePerJob(t *testing.T) {
	p, sink := newTestPublisher(t)
	spec := ArtifactSpec{
		TaskType: "export-proposal-data", JobKey: 99, Kind: export.KindData,
		ProposalID: "p-1", Filename: "restaurant-proposal-data-x.json", ContentType: "application/json",
	}

	renders := 0
	render := func() ([]byte, int, error) {
		renders++
		return []byte(fmt.Sprintf(`{"n":%d}`, renders)), 0, nil
	}

	first, err := p.Publish(context.Background(), spec, render)
	require.NoError(t, err)
	assert.False(t, first.Reused)
	assert.Equal(t, filepath.Join(sink.Dir(), spec.Filename), first.Location)

	second, err := p.Publish(context.Background(), spec, render)
	require.NoError(t, err)
	assert.True(t, second.Reused)
	assert.Equal(t, first.Location, second.Location)
	assert.Equal(t, 1, renders)

	data, err := os.ReadFile(first.Location)
	require.NoError(t, err)
	assert.Equal(t, `{"n":1}`, string(data))
}

func TestPublisher_Failures(t *testing.T) {
	log := logger.NewTestLogger(t)
	spec := ArtifactSpec{TaskType: "render-proposal-document", JobKey: 1, Kind: export.KindDocument, Filename: "a.pdf"}

	p := NewPublisher(failingSink{err: errors.NewExportStorageFailedError("a.pdf", fmt.Errorf("disk full"))}, nil, log)
	_, err := p.Publish(context.Background(), spec, func() ([]byte, int, error) { return []byte("%PDF"), 1, nil })
	assert.True(t, errors.HasCode(err, errors.ErrCodeExportStorageFailed))

	_, err = p.Publish(context.Background(), spec, func() ([]byte, int, error) { return nil, 0, fmt.Errorf("font missing") })
	assert.True(t, errors.HasCode(err, errors.ErrCodeExportRenderFailed))
}
