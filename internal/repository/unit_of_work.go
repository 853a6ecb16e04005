package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"
	"gorm.io/gorm"
)

// UnitOfWork groups the repositories of one request behind a single
// transactional boundary.
type UnitOfWork interface {
	Users() UserRepository
	Doctors() DoctorRepository
	Appointments() AppointmentRepository
	PasswordResetTokens() PasswordResetTokenRepository
	PasswordResetAttempts() PasswordResetAttemptRepository
	Activities() ActivityRepository
	DentalTrackings() DentalTrackingRepository
	UserSettings() UserSettingsRepository

	// Complete writes every staged change in one transaction and returns the
	// number of affected rows. Zero means nothing was written.
	Complete(ctx context.Context) (int64, error)

	// Close discards changes that were staged but never completed.
	Close()
}

// Factory opens a fresh unit of work. Services call it once per operation.
type Factory func() UnitOfWork

// NewFactory returns a Factory backed by db.
func NewFactory(db *gorm.DB) Factory {
	return func() UnitOfWork { return NewUnitOfWork(db) }
}

type gormUnitOfWork struct {
	db      *gorm.DB
	changes *ChangeSet

	users        UserRepository
	doctors      DoctorRepository
	appointments AppointmentRepository
	tokens       PasswordResetTokenRepository
	attempts     PasswordResetAttemptRepository
	activities   ActivityRepository
	dental       DentalTrackingRepository
	settings     UserSettingsRepository
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	changes := &ChangeSet{}
	return &gormUnitOfWork{
		db:           db,
		changes:      changes,
		users:        newUserRepository(db, changes),
		doctors:      newDoctorRepository(db, changes),
		appointments: newAppointmentRepository(db, changes),
		tokens:       newPasswordResetTokenRepository(db, changes),
		attempts:     newPasswordResetAttemptRepository(db, changes),
		activities:   newActivityRepository(db, changes),
		dental:       newDentalTrackingRepository(db, changes),
		settings:     newUserSettingsRepository(db, changes),
	}
}

func (u *gormUnitOfWork) Users() UserRepository { return u.users }

func (u *gormUnitOfWork) Doctors() DoctorRepository { return u.doctors }

func (u *gormUnitOfWork) Appointments() AppointmentRepository { return u.appointments }

func (u *gormUnitOfWork) PasswordResetTokens() PasswordResetTokenRepository { return u.tokens }

func (u *gormUnitOfWork) PasswordResetAttempts() PasswordResetAttemptRepository { return u.attempts }

func (u *gormUnitOfWork) Activities() ActivityRepository { return u.activities }

func (u *gormUnitOfWork) DentalTrackings() DentalTrackingRepository { return u.dental }

func (u *gormUnitOfWork) UserSettings() UserSettingsRepository { return u.settings }

func (u *gormUnitOfWork) Complete(ctx context.Context) (int64, error) {
	staged := u.changes.drain()
	if len(staged) == 0 {
		return 0, nil
	}

	var affected int64
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, c := range staged {
			var res *gorm.DB
			switch c.kind {
			case changeCreate:
				res = tx.Create(c.entity)
			case changeUpdate:
				res = tx.Save(c.entity)
			case changeDelete:
				res = tx.Delete(c.entity)
			}
			if res.Error != nil {
				return res.Error
			}
			affected += res.RowsAffected
		}
		return nil
	})
	if err != nil {
		if IsUniqueViolation(err) {
			return 0, oops.Code("STORE_DUPLICATE").With("changes", len(staged)).Wrap(errors.Join(ErrDuplicate, err))
		}
		return 0, oops.Code("STORE_FLUSH_FAILED").With("changes", len(staged)).Wrap(err)
	}
	return affected, nil
}

func (u *gormUnitOfWork) Close() {
	u.changes.drain()
}

// IsUniqueViolation reports whether err carries a PostgreSQL unique_violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
