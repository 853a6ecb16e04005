package repotest

import (
	"context"
	"sort"
	"time"

	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/repository"
	"github.com/google/uuid"
)

// UnitOfWork is an in-memory repository.UnitOfWork.
type UnitOfWork struct {
	store   *Store
	changes *changes
}

var _ repository.UnitOfWork = (*UnitOfWork)(nil)

// UnitOfWork opens a new unit of work on s.
func (s *Store) UnitOfWork() *UnitOfWork {
	return &UnitOfWork{store: s, changes: &changes{}}
}

// Pending returns the number of staged, uncommitted changes.
func (u *UnitOfWork) Pending() int {
	u.changes.mu.Lock()
	defer u.changes.mu.Unlock()
	return len(u.changes.staged)
}

func (u *UnitOfWork) Complete(_ context.Context) (int64, error) {
	staged := u.changes.drain()
	if len(staged) == 0 {
		return 0, nil
	}
	return u.store.apply(staged)
}

func (u *UnitOfWork) Close() { u.changes.drain() }

func (u *UnitOfWork) Users() repository.UserRepository {
	return users{memRepository[models.User]{u.store, u.changes}}
}

func (u *UnitOfWork) Doctors() repository.DoctorRepository {
	return doctors{memRepository[models.Doctor]{u.store, u.changes}}
}

func (u *UnitOfWork) Appointments() repository.AppointmentRepository {
	return appointments{memRepository[models.Appointment]{u.store, u.changes}}
}

func (u *UnitOfWork) PasswordResetTokens() repository.PasswordResetTokenRepository {
	return tokens{memRepository[models.PasswordResetToken]{u.store, u.changes}}
}

func (u *UnitOfWork) PasswordResetAttempts() repository.PasswordResetAttemptRepository {
	return attempts{memRepository[models.PasswordResetAttempt]{u.store, u.changes}}
}

func (u *UnitOfWork) Activities() repository.ActivityRepository {
	return activities{memRepository[models.Activity]{u.store, u.changes}}
}

func (u *UnitOfWork) DentalTrackings() repository.DentalTrackingRepository {
	return dental{memRepository[models.DentalTracking]{u.store, u.changes}}
}

func (u *UnitOfWork) UserSettings() repository.UserSettingsRepository {
	return settings{memRepository[models.UserSettings]{u.store, u.changes}}
}

type users struct{ memRepository[models.User] }

func (r users) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return r.firstWhere(func(u *models.User) bool { return u.Email == email }, nil)
}

type doctors struct{ memRepository[models.Doctor] }

func (r doctors) GetByEmail(_ context.Context, email string) (*models.Doctor, error) {
	return r.firstWhere(func(d *models.Doctor) bool { return d.Email == email }, nil)
}

type appointments struct{ memRepository[models.Appointment] }

func byDateDesc(rows []models.Appointment) []models.Appointment {
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.After(rows[j].Date) })
	return rows
}

func (r appointments) ListByPatient(_ context.Context, patientID uuid.UUID) ([]models.Appointment, error) {
	return byDateDesc(r.where(func(a *models.Appointment) bool { return a.PatientID == patientID })), nil
}

func (r appointments) ListByDoctor(_ context.Context, doctorID uuid.UUID) ([]models.Appointment, error) {
	return byDateDesc(r.where(func(a *models.Appointment) bool { return a.DoctorID == doctorID })), nil
}

type tokens struct {
	memRepository[models.PasswordResetToken]
}

func newestToken(a, b *models.PasswordResetToken) bool { return a.CreatedAt.After(b.CreatedAt) }

func (r tokens) GetValidByEmail(_ context.Context, email string, now time.Time) (*models.PasswordResetToken, error) {
	return r.firstWhere(func(t *models.PasswordResetToken) bool {
		return t.Email == email && t.IsValid(now)
	}, newestToken)
}

func (r tokens) ListValidByEmail(_ context.Context, email string, now time.Time) ([]models.PasswordResetToken, error) {
	rows := r.where(func(t *models.PasswordResetToken) bool { return t.Email == email && t.IsValid(now) })
	sort.Slice(rows, func(i, j int) bool { return newestToken(&rows[i], &rows[j]) })
	return rows, nil
}

func (r tokens) GetValidByEmailAndCode(_ context.Context, email, code string, now time.Time) (*models.PasswordResetToken, error) {
	return r.firstWhere(func(t *models.PasswordResetToken) bool {
		return t.Email == email && t.Token == code && t.IsValid(now)
	}, newestToken)
}

type attempts struct {
	memRepository[models.PasswordResetAttempt]
}

func (r attempts) Count(_ context.Context, q repository.AttemptQuery) (int64, error) {
	rows := r.where(func(a *models.PasswordResetAttempt) bool {
		switch {
		case a.AttemptTime.Before(q.Since):
			return false
		case q.Email != "" && a.Email != q.Email:
			return false
		case q.IPAddress != "" && a.IPAddress != q.IPAddress:
			return false
		case q.AttemptType != "" && a.AttemptType != q.AttemptType:
			return false
		case q.FailedOnly && a.IsSuccessful:
			return false
		}
		return true
	})
	return int64(len(rows)), nil
}

type activities struct{ memRepository[models.Activity] }

func (r activities) Recent(_ context.Context, limit int) ([]models.Activity, error) {
	rows := r.where(func(*models.Activity) bool { return true })
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	if limit >= 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

type dental struct {
	memRepository[models.DentalTracking]
}

func (r dental) ListByUser(_ context.Context, userID uuid.UUID) ([]models.DentalTracking, error) {
	rows := r.where(func(d *models.DentalTracking) bool { return d.UserID == userID })
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.After(rows[j].Date) })
	return rows, nil
}

func (r dental) GetByUserAndDate(_ context.Context, userID uuid.UUID, day time.Time) (*models.DentalTracking, error) {
	day = models.Day(day)
	return r.firstWhere(func(d *models.DentalTracking) bool {
		return d.UserID == userID && models.Day(d.Date).Equal(day)
	}, nil)
}

func (r dental) ListByUserInRange(_ context.Context, userID uuid.UUID, start, end time.Time) ([]models.DentalTracking, error) {
	start, end = models.Day(start), models.Day(end)
	rows := r.where(func(d *models.DentalTracking) bool {
		day := models.Day(d.Date)
		return d.UserID == userID && !day.Before(start) && !day.After(end)
	})
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	return rows, nil
}

type settings struct {
	memRepository[models.UserSettings]
}

func (r settings) GetByUserID(_ context.Context, userID uuid.UUID) (*models.UserSettings, error) {
	return r.firstWhere(func(s *models.UserSettings) bool { return s.UserID == userID }, func(a, b *models.UserSettings) bool {
		return a.CreatedAt.After(b.CreatedAt)
	})
}
