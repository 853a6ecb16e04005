package services

import (
	"context"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDentalService(f *fixture) *DentalTrackingService {
	svc := NewDentalTrackingService(f.store.Factory())
	svc.now = f.clock.Now
	return svc
}

func TestSaveRecord_UpsertsByDay(t *testing.T) {
	f := newFixture(t)
	svc := newDentalService(f)
	ctx := context.Background()
	userID := uuid.New()

	first, err := svc.SaveRecord(ctx, &dto.SaveDentalTrackingRequest{UserID: userID, Date: t0, MorningBrushing: true}, Actor{})
	require.NoError(t, err)
	assert.True(t, first.Date.Equal(models.Day(t0)))

	second, err := svc.SaveRecord(ctx, &dto.SaveDentalTrackingRequest{UserID: userID, Date: t0.Add(5 * time.Hour), EveningBrushing: true, Notes: "diş ipi bitti"}, Actor{Email: "u@example.com"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.False(t, second.MorningBrushing)
	assert.True(t, second.EveningBrushing)
	assert.Equal(t, "u@example.com", second.UpdatedBy)
	assert.Equal(t, 1, f.store.Count(&models.DentalTracking{}))

	got, err := svc.GetUserRecordByDate(ctx, userID, t0)
	require.NoError(t, err)
	assert.Equal(t, "diş ipi bitti", got.Notes)
}

func TestGetUserSummary(t *testing.T) {
	f := newFixture(t)
	svc := newDentalService(f)
	ctx := context.Background()
	userID := uuid.New()

	summary, err := svc.GetUserSummary(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, &dto.DentalTrackingSummary{UserID: userID}, summary)

	seed := func(daysAgo int, morning, evening, floss, mouthwash bool) {
		f.store.Seed(&models.DentalTracking{
			UserID:          userID,
			Date:            models.Day(t0).AddDate(0, 0, -daysAgo),
			MorningBrushing: morning,
			EveningBrushing: evening,
			UsedFloss:       floss,
			UsedMouthwash:   mouthwash,
		})
	}
	seed(0, true, true, true, false)
	seed(3, true, false, false, false)
	seed(6, false, false, true, true)
	seed(7, true, true, true, true) // outside the window
	f.store.Seed(&models.DentalTracking{UserID: uuid.New(), Date: models.Day(t0), UsedFloss: true})

	summary, err = svc.GetUserSummary(ctx, userID)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, summary.BrushingPercentage, 1e-9)
	assert.InDelta(t, 2.0/3, summary.FlossPercentage, 1e-9)
	assert.InDelta(t, 1.0/3, summary.MouthwashPercentage, 1e-9)
}

func TestGetUserRecordsForDateRange(t *testing.T) {
	f := newFixture(t)
	svc := newDentalService(f)
	ctx := context.Background()
	userID := uuid.New()
	for i := 0; i < 5; i++ {
		f.store.Seed(&models.DentalTracking{UserID: userID, Date: models.Day(t0).AddDate(0, 0, -i)})
	}

	records, err := svc.GetUserRecordsForDateRange(ctx, userID, t0.AddDate(0, 0, -3), t0.AddDate(0, 0, -1))
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.True(t, records[0].Date.Before(records[2].Date))

	_, err = svc.GetUserRecordsForDateRange(ctx, userID, t0, t0.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, ErrValidation)

	all, err := svc.GetUserRecords(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestDentalTrackingService_UpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	svc := newDentalService(f)
	ctx := context.Background()
	record := &models.DentalTracking{UserID: uuid.New(), Date: models.Day(t0)}
	f.store.Seed(record)

	updated, err := svc.UpdateRecord(ctx, record.ID, &dto.SaveDentalTrackingRequest{UserID: uuid.New(), Date: t0.AddDate(0, 0, 3), UsedFloss: true}, Actor{})
	require.NoError(t, err)
	assert.True(t, updated.UsedFloss)
	assert.Equal(t, record.UserID, updated.UserID)
	assert.True(t, updated.Date.Equal(models.Day(t0)))

	require.NoError(t, svc.DeleteRecord(ctx, record.ID))
	assert.ErrorIs(t, svc.DeleteRecord(ctx, record.ID), ErrNotFound)
}
