package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestScheduler_RunAllPassesCutoff(t *testing.T) {
	now := time.Date(2026, time.March, 15, 3, 0, 0, 0, time.UTC)
	var got []time.Time
	sweep := func(_ context.Context, cutoff time.Time) (int64, error) {
		got = append(got, cutoff)
		return 3, nil
	}

	s, err := NewScheduler([]Task{
		{Name: "logs", Spec: "@daily", Retention: 30 * 24 * time.Hour, Sweep: sweep},
		{Name: "attempts", Spec: "@daily", Retention: 7 * 24 * time.Hour, Sweep: sweep},
	})
	require.NoError(t, err)
	s.now = func() time.Time { return now }

	s.RunAll()
	assert.Equal(t, []time.Time{now.AddDate(0, 0, -30), now.AddDate(0, 0, -7)}, got)
}

func TestScheduler_FailedSweepDoesNotStopOthers(t *testing.T) {
	ran := 0
	s, err := NewScheduler([]Task{
		{Name: "broken", Spec: "@hourly", Sweep: func(context.Context, time.Time) (int64, error) {
			return 0, errors.New("relation does not exist")
		}},
		{Name: "ok", Spec: "@hourly", Sweep: func(context.Context, time.Time) (int64, error) {
			ran++
			return 0, nil
		}},
	})
	require.NoError(t, err)

	s.RunAll()
	assert.Equal(t, 1, ran)
}

func TestNewScheduler_RejectsBadSpec(t *testing.T) {
	_, err := NewScheduler([]Task{{Name: "bad", Spec: "every tuesday"}})
	assert.Error(t, err)
}

func TestScheduler_StartStop(t *testing.T) {
	s, err := NewScheduler([]Task{{Name: "noop", Spec: "@yearly", Sweep: func(context.Context, time.Time) (int64, error) { return 0, nil }}})
	require.NoError(t, err)
	assert.Len(t, s.cron.Entries(), 1)

	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
