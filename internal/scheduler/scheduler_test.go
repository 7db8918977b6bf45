package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mamadbah2/warehouse/internal/config"
	"github.com/mamadbah2/warehouse/internal/domain/models"
)

type stubExporter struct {
	calls int
	err   error
}

func (e *stubExporter) ExportInventory(ctx context.Context) (int, error) {
	e.calls++
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("job context has no deadline")
	}
	return 12, e.err
}

type stubAlerter struct{ calls int }

func (a *stubAlerter) SendLowStockAlert(context.Context) (*models.AlertResult, error) {
	a.calls++
	return &models.AlertResult{Sent: true}, nil
}

type stubSnapshotter struct{ calls int }

func (s *stubSnapshotter) SnapshotStatistics(context.Context) (*models.StatisticsSnapshot, error) {
	s.calls++
	return &models.StatisticsSnapshot{}, nil
}

var reportingCfg = config.ReportingConfig{
	ExportSchedule:   "0 20 * * *",
	AlertSchedule:    "0 8 * * *",
	SnapshotSchedule: "@hourly",
	Timezone:         "Africa/Dakar",
}

func TestNewSchedulerRejectsUnknownTimezone(t *testing.T) {
	cfg := reportingCfg
	cfg.Timezone = "Mars/Olympus"
	_, err := NewScheduler(cfg, Jobs{}, nil)
	assert.Error(t, err)
}

func TestStartRegistersOnlyConfiguredJobs(t *testing.T) {
	s, err := NewScheduler(reportingCfg, Jobs{Exporter: &stubExporter{}, Alerter: &stubAlerter{}}, nil)
	require.NoError(t, err)

	require.NoError(t, s.Start())
	defer s.Stop()
	assert.Len(t, s.cron.Entries(), 2)
}

func TestStartRejectsBadSchedule(t *testing.T) {
	cfg := reportingCfg
	cfg.SnapshotSchedule = "every now and then"
	s, err := NewScheduler(cfg, Jobs{Snapshotter: &stubSnapshotter{}}, nil)
	require.NoError(t, err)

	assert.ErrorContains(t, s.Start(), "statistics snapshot")
}

func TestJobsCallTargets(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	exporter := &stubExporter{}
	alerter := &stubAlerter{}
	snapshotter := &stubSnapshotter{}

	s, err := NewScheduler(reportingCfg, Jobs{Exporter: exporter, Alerter: alerter, Snapshotter: snapshotter}, zap.New(core))
	require.NoError(t, err)

	s.exportInventory()
	s.sendLowStockAlert()
	s.snapshotStatistics()

	assert.Equal(t, 1, exporter.calls)
	assert.Equal(t, 1, alerter.calls)
	assert.Equal(t, 1, snapshotter.calls)
	assert.Equal(t, 1, logs.FilterMessage("inventory export done").Len())
}

func TestExportFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s, err := NewScheduler(reportingCfg, Jobs{Exporter: &stubExporter{err: errors.New("quota exceeded")}}, zap.New(core))
	require.NoError(t, err)

	s.exportInventory()
	assert.Equal(t, 1, logs.FilterMessage("inventory export failed").Len())
}
