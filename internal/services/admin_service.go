package services

import (
	"context"
	"math"
	"time"

	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/repository"
	"github.com/google/uuid"
)

const dashboardPeriod = 30 * 24 * time.Hour

type AdminService struct {
	uow repository.Factory
	now func() time.Time
}

func NewAdminService(uow repository.Factory) *AdminService {
	return &AdminService{uow: uow, now: time.Now}
}

// GetDashboard compares the last 30 days with the 30 days before them.
func (s *AdminService) GetDashboard(ctx context.Context) (*dto.DashboardStats, error) {
	uow := s.uow()
	defer uow.Close()

	snap, err := loadSnapshot(ctx, uow)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := startOfDay(now)
	periodStart := now.Add(-dashboardPeriod)
	previousStart := now.Add(-2 * dashboardPeriod)
	previousDay := today.AddDate(0, 0, -30)

	var total, totalBefore int
	for _, p := range snap.patients() {
		total++
		if p.CreatedAt.Before(periodStart) {
			totalBefore++
		}
	}

	var todayCount, previousDayCount, pending, previousPending int
	active := make(map[uuid.UUID]bool)
	previousActive := make(map[uuid.UUID]bool)
	for i := range snap.appointments {
		a := &snap.appointments[i]
		day := startOfDay(a.Date.In(now.Location()))

		switch {
		case day.Equal(today):
			todayCount++
		case day.Equal(previousDay):
			previousDayCount++
		}

		switch {
		case !a.Date.Before(periodStart):
			active[a.PatientID] = true
		case !a.Date.Before(previousStart):
			previousActive[a.PatientID] = true
		}

		if a.Status == models.StatusPending {
			switch {
			case !day.Before(today):
				pending++
			case !day.Before(previousDay):
				previousPending++
			}
		}
	}

	return &dto.DashboardStats{
		TotalPatients:                 total,
		TotalPatientsPercentage:       percentChange(total, totalBefore),
		TodayAppointments:             todayCount,
		TodayAppointmentsPercentage:   percentChange(todayCount, previousDayCount),
		ActivePatients:                len(active),
		ActivePatientsPercentage:      percentChange(len(active), len(previousActive)),
		PendingAppointments:           pending,
		PendingAppointmentsPercentage: percentChange(pending, previousPending),
	}, nil
}

// percentChange is 100 when growing from zero and 0 when both are zero.
func percentChange(current, previous int) int {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return int(math.Round(float64(current-previous) * 100 / float64(previous)))
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
