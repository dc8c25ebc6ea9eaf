package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSweeper struct {
	ttls []time.Duration
}

func (f *fakeSweeper) Sweep(ttl time.Duration) int {
	f.ttls = append(f.ttls, ttl)
	return 2
}

type fakeCatalog struct {
	refreshes int
	err       error
}

func (f *fakeCatalog) Refresh(context.Context) error {
	f.refreshes++
	return f.err
}

func TestMaintenance_SweepUsesTTL(t *testing.T) {
	sweeper := &fakeSweeper{}
	svc := NewMaintenanceService(sweeper, &fakeCatalog{}, MaintenanceConfig{SessionIdleTTL: time.Hour}, zap.NewNop())

	svc.SweepSessions()
	assert.Equal(t, []time.Duration{time.Hour}, sweeper.ttls)
}

func TestMaintenance_SweepDisabledWithoutTTL(t *testing.T) {
	sweeper := &fakeSweeper{}
	svc := NewMaintenanceService(sweeper, &fakeCatalog{}, MaintenanceConfig{}, zap.NewNop())

	svc.SweepSessions()
	assert.Empty(t, sweeper.ttls)
}

func TestMaintenance_RefreshFailureIsLogged(t *testing.T) {
	catalog := &fakeCatalog{err: errors.New("unreachable")}
	svc := NewMaintenanceService(&fakeSweeper{}, catalog, MaintenanceConfig{}, zap.NewNop())

	svc.RefreshCatalog(context.Background())
	assert.Equal(t, 1, catalog.refreshes)
}

func TestMaintenance_StartRejectsBadSchedule(t *testing.T) {
	svc := NewMaintenanceService(&fakeSweeper{}, &fakeCatalog{}, MaintenanceConfig{SweepSchedule: "every minute"}, zap.NewNop())

	err := svc.Start(context.Background())
	require.Error(t, err)
}

func TestMaintenance_StartStopsWithContext(t *testing.T) {
	svc := NewMaintenanceService(&fakeSweeper{}, &fakeCatalog{}, MaintenanceConfig{
		SessionIdleTTL:  time.Hour,
		SweepSchedule:   "*/5 * * * *",
		RefreshSchedule: "0 3 * * *",
	}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Start(ctx) }()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("maintenance did not stop")
	}
}
