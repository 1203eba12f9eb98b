package bot

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/tgidbot/internal/bot/tasks"
	"github.com/edgard/tgidbot/internal/config"
	"github.com/edgard/tgidbot/internal/logger"
)

func TestScheduler_RunsEnabledTasks(t *testing.T) {
	var runs atomic.Int32
	taskMap := map[string]tasks.ScheduledTaskFunc{
		"tick": func(context.Context) error {
			runs.Add(1)
			return nil
		},
		"unused": func(context.Context) error { return nil },
	}
	cfg := &config.SchedulerConfig{Tasks: map[string]config.TaskConfig{
		"tick":         {Enabled: true, Schedule: "* * * * * *"},
		"unused":       {Enabled: false, Schedule: "* * * * * *"},
		"unregistered": {Enabled: true, Schedule: "* * * * * *"},
		"bad_schedule": {Enabled: true, Schedule: "not a cron"},
	}}
	taskMap["bad_schedule"] = func(context.Context) error { return nil }

	s, err := NewScheduler(logger.Discard(), cfg, taskMap)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.Start(ctx))
	require.Error(t, s.Start(ctx))
	assert.Equal(t, []string{"tick"}, s.Jobs())

	require.Eventually(t, func() bool { return runs.Load() > 0 }, 5*time.Second, 50*time.Millisecond)

	require.NoError(t, s.Stop())
	require.NoError(t, s.Stop())
}

func TestScheduler_NoTasks(t *testing.T) {
	s, err := NewScheduler(logger.Discard(), &config.SchedulerConfig{}, nil)
	require.NoError(t, err)

	require.NoError(t, s.Start(context.Background()))
	assert.Empty(t, s.Jobs())
	require.NoError(t, s.Stop())
}
