package services

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/repository"
	"github.com/google/uuid"
)

// SummaryDays is the window GetUserSummary covers, today included.
const SummaryDays = 7

type DentalTrackingService struct {
	uow repository.Factory
	now func() time.Time
}

func NewDentalTrackingService(uow repository.Factory) *DentalTrackingService {
	return &DentalTrackingService{uow: uow, now: time.Now}
}

func (s *DentalTrackingService) GetAllRecords(ctx context.Context) ([]models.DentalTracking, error) {
	uow := s.uow()
	defer uow.Close()

	records, err := uow.DentalTrackings().GetAll(ctx)
	if err != nil {
		return nil, unknown(err)
	}
	return records, nil
}

func (s *DentalTrackingService) GetUserRecords(ctx context.Context, userID uuid.UUID) ([]models.DentalTracking, error) {
	uow := s.uow()
	defer uow.Close()

	records, err := uow.DentalTrackings().ListByUser(ctx, userID)
	if err != nil {
		return nil, unknown(err)
	}
	return records, nil
}

func (s *DentalTrackingService) GetUserRecordByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*models.DentalTracking, error) {
	uow := s.uow()
	defer uow.Close()

	record, err := uow.DentalTrackings().GetByUserAndDate(ctx, userID, date)
	if err != nil {
		return nil, notFound(err, "dental record")
	}
	return record, nil
}

// GetUserRecordsForDateRange returns the records for days in [start, end],
// oldest first.
func (s *DentalTrackingService) GetUserRecordsForDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]models.DentalTracking, error) {
	if models.Day(end).Before(models.Day(start)) {
		return nil, invalid("endDate must not be before startDate")
	}

	uow := s.uow()
	defer uow.Close()

	records, err := uow.DentalTrackings().ListByUserInRange(ctx, userID, start, end)
	if err != nil {
		return nil, unknown(err)
	}
	return records, nil
}

// SaveRecord upserts the record for the user and day of req. Two concurrent
// saves for a new day can both insert; the later read returns either.
func (s *DentalTrackingService) SaveRecord(ctx context.Context, req *dto.SaveDentalTrackingRequest, actor Actor) (*models.DentalTracking, error) {
	uow := s.uow()
	defer uow.Close()

	record, err := uow.DentalTrackings().GetByUserAndDate(ctx, req.UserID, req.Date)
	switch {
	case err == nil:
		applyDental(record, req)
		record.UpdatedBy = actor.label()
		uow.DentalTrackings().Update(record)
	case errors.Is(err, repository.ErrNotFound):
		record = &models.DentalTracking{
			ID:        uuid.New(),
			UserID:    req.UserID,
			Date:      models.Day(req.Date),
			CreatedBy: actor.label(),
		}
		applyDental(record, req)
		uow.DentalTrackings().Add(record)
	default:
		return nil, unknown(err)
	}

	if _, err := uow.Complete(ctx); err != nil {
		return nil, unknown(err)
	}
	return record, nil
}

// UpdateRecord changes the flags and notes of a record; its user and day stay.
func (s *DentalTrackingService) UpdateRecord(ctx context.Context, id uuid.UUID, req *dto.SaveDentalTrackingRequest, actor Actor) (*models.DentalTracking, error) {
	uow := s.uow()
	defer uow.Close()

	record, err := uow.DentalTrackings().Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "dental record")
	}
	applyDental(record, req)
	record.UpdatedBy = actor.label()

	uow.DentalTrackings().Update(record)
	if _, err := uow.Complete(ctx); err != nil {
		return nil, unknown(err)
	}
	return record, nil
}

func (s *DentalTrackingService) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	uow := s.uow()
	defer uow.Close()

	record, err := uow.DentalTrackings().Get(ctx, id)
	if err != nil {
		return notFound(err, "dental record")
	}
	uow.DentalTrackings().Delete(record)
	if _, err := uow.Complete(ctx); err != nil {
		return unknown(err)
	}
	return nil
}

// GetUserSummary scores the last SummaryDays days that have a record. Days
// without a record are not counted against the user.
func (s *DentalTrackingService) GetUserSummary(ctx context.Context, userID uuid.UUID) (*dto.DentalTrackingSummary, error) {
	end := models.Day(s.now())
	start := end.AddDate(0, 0, -(SummaryDays - 1))

	records, err := s.GetUserRecordsForDateRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	summary := &dto.DentalTrackingSummary{UserID: userID}
	if len(records) == 0 {
		return summary, nil
	}

	var brushings, floss, mouthwash int
	for i := range records {
		brushings += records[i].BrushingCount()
		if records[i].UsedFloss {
			floss++
		}
		if records[i].UsedMouthwash {
			mouthwash++
		}
	}
	days := float64(len(records))
	summary.BrushingPercentage = math.Min(1, float64(brushings)/(days*2))
	summary.FlossPercentage = float64(floss) / days
	summary.MouthwashPercentage = float64(mouthwash) / days
	return summary, nil
}

func applyDental(record *models.DentalTracking, req *dto.SaveDentalTrackingRequest) {
	record.MorningBrushing = req.MorningBrushing
	record.EveningBrushing = req.EveningBrushing
	record.UsedFloss = req.UsedFloss
	record.UsedMouthwash = req.UsedMouthwash
	record.Notes = req.Notes
}
